package catalog

import "math/rand"

// SpeciesID indexes into a Catalog's Species slice.
type SpeciesID uint16

// AbilityID indexes into a Catalog's Abilities slice.
type AbilityID uint8

type speciesData struct {
	Name             string
	Type1, Type2     Type
	Abilities        []AbilityID
	BaseStats        [6]uint8 // indexed by StatHp..StatSpd
	Weight           uint16   // tenths of a kg
	MaleChance       uint16   // per mille
	FemaleChance     uint16   // per mille
	AllowDuplicates  bool
	MovePool         []MoveID
}

// Species is the immutable, catalog-resident description of one
// species: typing, legal abilities, base stats, breeding odds and move
// pool.
type Species struct{ data speciesData }

func (s Species) Name() string         { return s.data.Name }
func (s Species) Type1() Type          { return s.data.Type1 }
func (s Species) Type2() Type          { return s.data.Type2 }
func (s Species) Abilities() []AbilityID { return s.data.Abilities }
func (s Species) Weight() uint16       { return s.data.Weight }
func (s Species) AllowDuplicates() bool { return s.data.AllowDuplicates }
func (s Species) MovePool() []MoveID   { return s.data.MovePool }

func (s Species) BaseStat(stat StatIndex) uint8 {
	return s.data.BaseStats[stat]
}

func (s Species) HasMaleAndFemale() bool {
	return s.data.FemaleChance > 0 && s.data.MaleChance > 0
}

// RandomGender draws a gender weighted by this species' per-mille
// male/female chances; the remainder is genderless.
func (s Species) RandomGender(rng *rand.Rand) Gender {
	i := rng.Intn(1000)
	switch {
	case i < int(s.data.FemaleChance):
		return GenderFemale
	case i < int(s.data.FemaleChance)+int(s.data.MaleChance):
		return GenderMale
	default:
		return GenderNone
	}
}

// RandomAbility draws uniformly between this species' one or two legal
// abilities.
func (s Species) RandomAbility(rng *rand.Rand) AbilityID {
	if len(s.data.Abilities) == 2 && rng.Intn(2) == 0 {
		return s.data.Abilities[1]
	}
	return s.data.Abilities[0]
}

// RandomMoveSet draws up to 4 distinct moves from this species' move
// pool.
func (s Species) RandomMoveSet(rng *rand.Rand) []MoveID {
	pool := s.data.MovePool
	n := len(pool)
	if n > 4 {
		n = 4
	}
	set := make([]MoveID, 0, n)
	for len(set) < n {
		candidate := pool[rng.Intn(len(pool))]
		found := false
		for _, m := range set {
			if m == candidate {
				found = true
				break
			}
		}
		if !found {
			set = append(set, candidate)
		}
	}
	return set
}
