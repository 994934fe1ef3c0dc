package battle

import (
	"fmt"
	"math/rand"

	"github.com/wallacewatler/battlesim/internal/catalog"
	"github.com/wallacewatler/battlesim/internal/rngutil"
)

// MoveInstance is one of a Pokemon's 1-4 known moves: the catalog id
// plus battle-local mutable state (remaining PP, disabled flag).
type MoveInstance struct {
	Move     catalog.MoveID
	PP       uint8
	Disabled bool
}

func newMoveInstance(cat *catalog.Catalog, id catalog.MoveID) MoveInstance {
	return MoveInstance{Move: id, PP: cat.MoveByID(id).MaxPP()}
}

// Pokemon is a battle instance derived from a PokemonBuild at the start
// of a battle; it is level 100 throughout.
type Pokemon struct {
	Species catalog.SpeciesID
	// Types usually match the species' type, but some effects can
	// change them mid-battle.
	FirstType, SecondType catalog.Type
	Gender                catalog.Gender
	Nature                catalog.Nature
	Ability               catalog.AbilityID
	IVs, EVs              [6]uint8
	MaxHP, CurrentHP      uint16
	StatStages            [8]int8

	MajorStatusAilment MajorStatusAilment
	MSACounter          Counter[uint16]
	// SnoreSleepTalkCounter is only meaningful under rule generation 3.
	SnoreSleepTalkCounter uint16

	ConfusionCounter Counter[uint16]
	IsFlinching      bool
	// SeededBy is the field position of the Pokemon that planted
	// Leech Seed on this one, resolved to a current occupant at
	// end-of-turn (an arena+index pattern, not a live pointer).
	SeededBy      *catalog.FieldPosition
	IsInfatuated  bool
	InfatuatedBy  catalog.FieldPosition
	IsCursed      bool
	HasNightmare  bool

	FieldPosition *catalog.FieldPosition
	KnownMoves    []MoveInstance
	// NextMoveAction handles two-turn moves: when set, action
	// generation emits it directly instead of the regular move list.
	NextMoveAction *Action
}

func newPokemonFromBuild(cat *catalog.Catalog, pb *PokemonBuild) Pokemon {
	sp := cat.SpeciesByID(pb.Species)
	known := make([]MoveInstance, len(pb.Moves))
	for i, id := range pb.Moves {
		known[i] = newMoveInstance(cat, id)
	}
	maxHP := pb.MaxHP(cat)
	return Pokemon{
		Species:    pb.Species,
		FirstType:  sp.Type1(),
		SecondType: sp.Type2(),
		Gender:     pb.Gender,
		Nature:     pb.Nature,
		Ability:    pb.Ability,
		IVs:        pb.IVs,
		EVs:        pb.EVs,
		MaxHP:      maxHP,
		CurrentHP:  maxHP,
		KnownMoves: known,
	}
}

func (p *Pokemon) IsType(t catalog.Type) bool {
	return p.FirstType == t || p.SecondType == t
}

// CanChooseMove reports whether the known move at moveIndex is legal
// to select (ignoring status gates checked separately by can-be-
// performed).
func (p *Pokemon) CanChooseMove(moveIndex int) bool {
	mi := p.KnownMoves[moveIndex]
	return p.CurrentHP > 0 && p.FieldPosition != nil && mi.PP > 0 && !mi.Disabled
}

func (p *Pokemon) String() string {
	return fmt.Sprintf("%d%s(%d/%d)", p.Species, p.Gender.Symbol(), p.CurrentHP, p.MaxHP)
}

// PokemonBuild is the immutable-within-a-battle description used to
// derive a Pokemon; it is also the unit the optimizer mutates.
type PokemonBuild struct {
	Species catalog.SpeciesID
	Gender  catalog.Gender
	Nature  catalog.Nature
	Ability catalog.AbilityID
	IVs     [6]uint8
	// EVs are assigned in 127 groups of 4 points, totaling 508 — two
	// short of the real cap of 510, since the last two points are
	// wasted by the stat formula's integer division anyway, and
	// restricting to multiples of 4 collapses a large, redundant
	// region of the build space.
	EVs   [6]uint8
	Moves []catalog.MoveID
}

// PokemonBuildNumVars is the optimizer's per-Pokemon variable count:
// species, gender, nature, ability, 6 IVs, 6 EVs, 4 moves.
const PokemonBuildNumVars = 20

// NewPokemonBuild draws a uniformly random legal build.
func NewPokemonBuild(cat *catalog.Catalog, rng *rand.Rand) PokemonBuild {
	var evs [6]uint8
	evSum := 0
	for evSum < 508 {
		i := rng.Intn(6)
		if evs[i] < 252 {
			evs[i] += 4
			evSum += 4
		}
	}

	species := cat.RandomSpeciesID(rng)
	sp := cat.SpeciesByID(species)
	var ivs [6]uint8
	for i := range ivs {
		ivs[i] = uint8(rng.Intn(32))
	}
	return PokemonBuild{
		Species: species,
		Gender:  sp.RandomGender(rng),
		Nature:  catalog.Nature(rng.Intn(25)),
		Ability: sp.RandomAbility(rng),
		IVs:     ivs,
		EVs:     evs,
		Moves:   sp.RandomMoveSet(rng),
	}
}

// MaxHP computes this build's level-100 max HP.
func (pb *PokemonBuild) MaxHP(cat *catalog.Catalog) uint16 {
	sp := cat.SpeciesByID(pb.Species)
	base := uint16(sp.BaseStat(catalog.StatHp))
	return 2*base + uint16(pb.IVs[catalog.StatHp]) + uint16(pb.EVs[catalog.StatHp])/4 + 110
}

// Equal is order-insensitive over Moves, per invariant 8.
func (pb *PokemonBuild) Equal(other *PokemonBuild) bool {
	if len(pb.Moves) != len(other.Moves) {
		return false
	}
	for _, m := range pb.Moves {
		if !containsMove(other.Moves, m) {
			return false
		}
	}
	return pb.Species == other.Species &&
		pb.Gender == other.Gender &&
		pb.Nature == other.Nature &&
		pb.Ability == other.Ability &&
		pb.IVs == other.IVs &&
		pb.EVs == other.EVs
}

func containsMove(moves []catalog.MoveID, m catalog.MoveID) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}

// TeamBuild is an ordered 6-tuple of PokemonBuild; slot 0 is the
// leader, always sent out first.
type TeamBuild struct {
	Members [6]PokemonBuild
}

// TeamBuildNumVars is the optimizer's per-team variable count.
const TeamBuildNumVars = PokemonBuildNumVars * 6

// NewTeamBuild draws six PokemonBuilds, re-rolling species that would
// violate the duplicate-allowed constraint (invariant 3).
func NewTeamBuild(cat *catalog.Catalog, rng *rand.Rand) TeamBuild {
	var nonDuplicates []catalog.SpeciesID
	newMember := func() PokemonBuild {
		result := NewPokemonBuild(cat, rng)
		for containsSpecies(nonDuplicates, result.Species) {
			result = NewPokemonBuild(cat, rng)
		}
		if !cat.SpeciesByID(result.Species).AllowDuplicates() {
			nonDuplicates = append(nonDuplicates, result.Species)
		}
		return result
	}

	var tb TeamBuild
	for i := range tb.Members {
		tb.Members[i] = newMember()
	}
	return tb
}

func containsSpecies(species []catalog.SpeciesID, s catalog.SpeciesID) bool {
	for _, x := range species {
		if x == s {
			return true
		}
	}
	return false
}

// Equal compares leaders directly and the remaining five slots as a
// multiset, per invariant 7.
func (tb *TeamBuild) Equal(other *TeamBuild) bool {
	var matched [6]bool
	for i := 1; i < 6; i++ {
		found := false
		for j := 1; j < 6; j++ {
			if !matched[j] && other.Members[j].Equal(&tb.Members[i]) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return tb.Members[0].Equal(&other.Members[0])
}

func teamContainsBuild(members []PokemonBuild, b *PokemonBuild) bool {
	for i := range members {
		if members[i].Equal(b) {
			return true
		}
	}
	return false
}

// mutationCategory names which part of a PokemonBuild MutatedChild
// rewrites, in the fixed order the weighted draw indexes into.
type mutationCategory int

const (
	mutateSpecies mutationCategory = iota
	mutateGender
	mutateNature
	mutateAbility
	mutateIV
	mutateEV
	mutateMove
)

// MutatedChild returns a copy of tb with exactly one PokemonBuild slot
// changed in exactly one category; a category is drawn with
// probability proportional to how many legal alternatives it has, so
// heavily constrained categories (e.g. a species with only one
// ability) mutate proportionally less often.
func (tb *TeamBuild) MutatedChild(cat *catalog.Catalog, rng *rand.Rand) TeamBuild {
	memberNum := rng.Intn(6)
	buildToMutate := &tb.Members[memberNum]
	sp := cat.SpeciesByID(buildToMutate.Species)

	nonDupCount := 0
	for _, m := range tb.Members {
		if !cat.SpeciesByID(m.Species).AllowDuplicates() {
			nonDupCount++
		}
	}
	speciesWeight := float64(int(cat.SpeciesCount()) - 1 - nonDupCount)
	if !sp.AllowDuplicates() {
		speciesWeight++
	}

	genderWeight := 0.0
	if sp.HasMaleAndFemale() {
		genderWeight = 1.0
	}

	abilityWeight := float64(len(sp.Abilities()) - 1)

	moveWeight := float64((len(sp.MovePool()) - len(buildToMutate.Moves)) * len(buildToMutate.Moves))

	weights := []float64{speciesWeight, genderWeight, 24.0, abilityWeight, 31.0 * 6.0, 60.0, moveWeight}

	child := *tb
	childBuild := &child.Members[memberNum]

	switch mutationCategory(rngutil.ChooseWeightedIndex(weights, rng)) {
	case mutateSpecies:
		for childBuild.Species == buildToMutate.Species || speciesConflicts(cat, &child, childBuild.Species) {
			childBuild.Species = cat.RandomSpeciesID(rng)
		}
		newSp := cat.SpeciesByID(childBuild.Species)
		childBuild.Gender = newSp.RandomGender(rng)
		childBuild.Ability = newSp.RandomAbility(rng)
		childBuild.Moves = newSp.RandomMoveSet(rng)
	case mutateGender:
		childBuild.Gender = childBuild.Gender.Opposite()
	case mutateNature:
		old := childBuild.Nature
		for childBuild.Nature == old {
			childBuild.Nature = catalog.Nature(rng.Intn(25))
		}
	case mutateAbility:
		old := childBuild.Ability
		for childBuild.Ability == old {
			childBuild.Ability = sp.RandomAbility(rng)
		}
	case mutateIV:
		i := rng.Intn(6)
		old := childBuild.IVs[i]
		for childBuild.IVs[i] == old {
			childBuild.IVs[i] = uint8(rng.Intn(32))
		}
	case mutateEV:
		mutateEVs(&childBuild.EVs, rng)
	default:
		movePool := sp.MovePool()
		newMove := movePool[rng.Intn(len(movePool))]
		for containsMove(childBuild.Moves, newMove) {
			newMove = movePool[rng.Intn(len(movePool))]
		}
		childBuild.Moves = append([]catalog.MoveID(nil), childBuild.Moves...)
		childBuild.Moves[rng.Intn(len(childBuild.Moves))] = newMove
	}

	return child
}

func speciesConflicts(cat *catalog.Catalog, team *TeamBuild, species catalog.SpeciesID) bool {
	if cat.SpeciesByID(species).AllowDuplicates() {
		return false
	}
	for _, m := range team.Members {
		if m.Species == species {
			return true
		}
	}
	return false
}

// mutateEVs either swaps two axes (preserving the sum) or transfers 4
// points from one axis to another, respecting the [0,252] bounds.
func mutateEVs(evs *[6]uint8, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		i := rng.Intn(6)
		j := rng.Intn(6)
		for j == i {
			j = rng.Intn(6)
		}
		evs[i], evs[j] = evs[j], evs[i]
		return
	}

	from := rng.Intn(6)
	for evs[from] < 4 {
		from = rng.Intn(6)
	}
	to := rng.Intn(6)
	for to == from || evs[to] >= 252 {
		to = rng.Intn(6)
	}
	evs[from] -= 4
	evs[to] += 4
}

// CalculatedStat computes a Pokemon's effective stat value at its
// current stages-free base: 2*base+IV+EV/4+5, nature-scaled, with
// Paralysis's Speed penalty and Chlorophyll's Speed boost folded in.
// Stat stage multipliers are applied separately by the damage/accuracy
// formulas, not here.
func CalculatedStat(state *State, pokemonID int, stat catalog.StatIndex) uint32 {
	p := state.PokemonByID(pokemonID)
	if stat == catalog.StatHp {
		return uint32(p.MaxHP)
	}

	sp := state.Catalog.SpeciesByID(p.Species)
	b := uint32(sp.BaseStat(stat))
	i := uint32(p.IVs[stat])
	e := uint32(p.EVs[stat])
	value := uint32(float64(2*b+i+e/4+5) * p.Nature.StatMod(stat))

	if stat == catalog.StatSpd {
		if p.MajorStatusAilment == MSAParalyzed {
			if state.Catalog.RuleGen <= 6 {
				value /= 4
			} else {
				value /= 2
			}
		}
		if chlorophyll, err := state.Catalog.AbilityIDByName("Chlorophyll"); err == nil && p.Ability == chlorophyll && state.Weather == WeatherHarshSunshine {
			value *= 2
		}
	}

	return value
}

// AddToField places pokemonID at position, panicking if it is already
// occupied (an invariant violation: callers must check first).
// Returns whether the battle has ended as a result.
func AddToField(state *State, pokemonID int, position catalog.FieldPosition) bool {
	p := state.PokemonByID(pokemonID)
	pos := position
	p.FieldPosition = &pos
	state.AddDisplayText(fmt.Sprintf("Adding %s to field position %d.", p, position))

	agent := state.AgentAt(position)
	if agent.OnField != nil {
		panic(fmt.Sprintf("battle: tried to add %s to position %d occupied by %s", p, position, state.PokemonByID(*agent.OnField)))
	}
	id := pokemonID
	agent.OnField = &id

	return state.HasBattleEnded()
}

// RemoveFromField clears pokemonID's field-local state and position.
func RemoveFromField(state *State, pokemonID int) {
	removeMinorStatusAilments(state, pokemonID)

	p := state.PokemonByID(pokemonID)
	if p.FieldPosition == nil {
		panic("battle: RemoveFromField called on a Pokemon with no field position")
	}
	oldPos := *p.FieldPosition
	p.StatStages = [8]int8{}
	switch {
	case state.Catalog.RuleGen == 3:
		p.SnoreSleepTalkCounter = 0
	case state.Catalog.RuleGen == 5 && p.MajorStatusAilment == MSAAsleep:
		p.MSACounter.Zero()
	}
	p.FieldPosition = nil
	for i := range p.KnownMoves {
		p.KnownMoves[i].Disabled = false
	}
	p.NextMoveAction = nil

	state.AddDisplayText(fmt.Sprintf("Removing %s from field position %d.", p, oldPos))

	agent := state.AgentAt(oldPos)
	if agent.OnField == nil || *agent.OnField != pokemonID {
		panic(fmt.Sprintf("battle: ID of %s does not match any ID on the field", p))
	}
	agent.OnField = nil
}

// IncrementStatStage adjusts pokemonID's stage for stat by
// requestedAmount, clamped to [-6, 6], and logs the flavor text.
func IncrementStatStage(state *State, pokemonID int, stat catalog.StatIndex, requestedAmount int8) {
	p := state.PokemonByID(pokemonID)
	old := p.StatStages[stat]
	updated := clampInt8(old+requestedAmount, -6, 6)
	p.StatStages[stat] = updated

	actualChange := updated - old
	var text string
	switch {
	case actualChange <= -3:
		text = "severely fell!"
	case actualChange == -2:
		text = "harshly fell!"
	case actualChange == -1:
		text = "fell!"
	case actualChange == 0:
		if requestedAmount < 0 {
			text = "won't go any lower!"
		} else {
			text = "won't go any higher!"
		}
	case actualChange == 1:
		text = "rose!"
	case actualChange == 2:
		text = "rose sharply!"
	default:
		text = "rose drastically!"
	}
	state.AddDisplayText(fmt.Sprintf("%s's %s %s", p, stat, text))
}

func clampInt8(v, lo, hi int8) int8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Poison reports whether the poisoning actually took hold.
func Poison(state *State, pokemonID int, toxic, corrosion bool) bool {
	p := state.PokemonByID(pokemonID)

	if !corrosion && (p.IsType(catalog.TypePoison) || p.IsType(catalog.TypeSteel)) {
		state.AddDisplayText(fmt.Sprintf("It doesn't affect the opponent's %s ...", p))
		return false
	}

	if p.MajorStatusAilment == MSAOkay {
		if toxic {
			p.MajorStatusAilment = MSABadlyPoisoned
		} else {
			p.MajorStatusAilment = MSAPoisoned
		}
		p.MSACounter.Clear()
		state.AddDisplayText(fmt.Sprintf("%s%s", p, p.MajorStatusAilment.DisplayTextWhenApplied()))
		return true
	}

	state.AddDisplayText("But it failed!")
	return false
}

// PutToSleep reports whether pokemonID fell asleep, sampling a
// rule-generation-dependent sleep-turn count.
func PutToSleep(state *State, pokemonID int, rng *rand.Rand) bool {
	p := state.PokemonByID(pokemonID)

	if p.MajorStatusAilment == MSAOkay {
		p.MajorStatusAilment = MSAAsleep
		target := sleepTurnCount(state.Catalog.RuleGen, rng)
		p.MSACounter = NewCounter(&target)
		state.AddDisplayText(fmt.Sprintf("%s%s", p, MSAAsleep.DisplayTextWhenApplied()))
		return true
	}

	state.AddDisplayText("But it failed!")
	return false
}

func sleepTurnCount(ruleGen catalog.RuleGen, rng *rand.Rand) uint16 {
	switch {
	case ruleGen == 1:
		return uint16(1 + rng.Intn(6))
	case ruleGen == 2:
		return uint16(1 + rng.Intn(4))
	case ruleGen <= 4:
		return uint16(2 + rng.Intn(3))
	default:
		return uint16(1 + rng.Intn(2))
	}
}

// IncrementMSACounter advances pokemonID's major-status counter by one
// past its sleep-talk/snore allowance and clears the ailment if it
// reaches target.
func IncrementMSACounter(state *State, pokemonID int) {
	p := state.PokemonByID(pokemonID)
	oldMSA := p.MajorStatusAilment
	cured := p.MSACounter.Add(p.SnoreSleepTalkCounter + 1)
	if cured {
		p.MajorStatusAilment = MSAOkay
	}
	p.SnoreSleepTalkCounter = 0

	if cured {
		state.AddDisplayText(fmt.Sprintf("%s%s", p, oldMSA.DisplayTextWhenCured()))
	}
}

// ApplyDamage applies amount (negative heals) to pokemonID, fainting
// and removing it from the field at 0, and reports whether the battle
// has ended as a result.
func ApplyDamage(state *State, pokemonID int, amount int32) bool {
	p := state.PokemonByID(pokemonID)
	newHP := int32(p.CurrentHP) - amount
	if newHP <= 0 {
		p.CurrentHP = 0
		state.AddDisplayText(fmt.Sprintf("%s fainted!", p))
		RemoveFromField(state, pokemonID)
		return state.HasBattleEnded()
	}

	if uint16(newHP) < p.MaxHP {
		p.CurrentHP = uint16(newHP)
	} else {
		p.CurrentHP = p.MaxHP
	}
	return false
}

// IncrementMovePP adjusts the PP of pokemonID's move at moveIndex by
// amount (negative spends), clamped to [0, move max PP].
func IncrementMovePP(state *State, pokemonID, moveIndex int, amount int8) {
	p := state.PokemonByID(pokemonID)
	mi := &p.KnownMoves[moveIndex]
	maxPP := int8(state.Catalog.MoveByID(mi.Move).MaxPP())
	updated := int8(mi.PP) + amount
	if updated < 0 {
		updated = 0
	} else if updated > maxPP {
		updated = maxPP
	}
	mi.PP = uint8(updated)
}

func removeMinorStatusAilments(state *State, pokemonID int) {
	p := state.PokemonByID(pokemonID)
	p.ConfusionCounter.Clear()
	p.IsFlinching = false
	p.SeededBy = nil
	p.IsInfatuated = false
	p.IsCursed = false
	p.HasNightmare = false
}
