package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// RuleGen selects a tabled ruleset; 3..8, mirroring the mainline game
// generations this engine's formulas and effectiveness table branch on.
type RuleGen int

// Catalog is the immutable, process-wide set of rule tables for one
// rule generation. Build with Load once at startup and pass the handle
// explicitly into the engine and optimizer; there is no mutable global
// registry (see SPEC_FULL.md §4.1).
type Catalog struct {
	RuleGen   RuleGen
	Moves     []Move
	Species   []Species
	Abilities []AbilityName
}

// AbilityName is the opaque display name behind an AbilityID; the
// abilities table itself has no other data in this rule subset.
type AbilityName string

// Load reads moves.json and species.json from resourceDir and builds a
// Catalog for ruleGen. Both files are loaded once per process; this is
// the catalog's sole I/O. A malformed or missing file, or a move name
// referenced by species.json that moves.json never defined, is a
// configuration error and is returned as a plain error for the caller
// (typically a cmd/ front door) to report and exit on. Ability names
// are not checked: each one species.json references is added to
// Abilities on first sight.
func Load(ruleGen RuleGen, resourceDir string) (*Catalog, error) {
	c := &Catalog{RuleGen: ruleGen}

	movesPath := filepath.Join(resourceDir, "moves.json")
	var rawMoves []moveJSON
	if err := readJSON(movesPath, &rawMoves); err != nil {
		return nil, fmt.Errorf("loading %s: %w", movesPath, err)
	}
	c.Moves = make([]Move, len(rawMoves))
	for i, rm := range rawMoves {
		mv, err := rm.toMove()
		if err != nil {
			return nil, fmt.Errorf("parsing %s, move %q: %w", movesPath, rm.Name, err)
		}
		c.Moves[i] = mv
	}

	speciesPath := filepath.Join(resourceDir, "species.json")
	var rawSpecies []speciesJSON
	if err := readJSON(speciesPath, &rawSpecies); err != nil {
		return nil, fmt.Errorf("loading %s: %w", speciesPath, err)
	}
	for _, rs := range rawSpecies {
		sp, err := c.toSpecies(rs)
		if err != nil {
			return nil, fmt.Errorf("parsing %s, species %q: %w", speciesPath, rs.Name, err)
		}
		c.Species = append(c.Species, sp)
	}

	return c, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// --- moves.json shape ---

type moveJSON struct {
	Name      string        `json:"name"`
	Type      string        `json:"type"`
	Category  string        `json:"category"`
	Accuracy  accuracyJSON  `json:"accuracy"`
	Targeting string        `json:"targeting"`
	MaxPP     uint8         `json:"max_pp"`
	Priority  int8          `json:"priority_stage"`
	Sound     bool          `json:"sound_based"`
	Effects   []effectJSON  `json:"effects"`
}

type accuracyJSON struct {
	Kind string `json:"kind"` // "Ignore", "Standard", "Toxic"
	Pct  uint8  `json:"pct"`  // only for "Standard"
}

type effectJSON struct {
	Kind                  string `json:"kind"`
	Power                 uint8  `json:"power,omitempty"`
	DamageType            string `json:"damage_type,omitempty"`
	Stat                  string `json:"stat,omitempty"`
	Stages                int8   `json:"stages,omitempty"`
	Chance                uint8  `json:"chance,omitempty"`
	Badly                 bool   `json:"badly,omitempty"`
	PowderBased           bool   `json:"powder_based,omitempty"`
	CriticalHitStageBonus uint8  `json:"critical_hit_stage_bonus,omitempty"`
}

func (rm moveJSON) toMove() (Move, error) {
	typ, err := typeByName(rm.Type)
	if err != nil {
		return Move{}, err
	}
	cat, err := categoryByName(rm.Category)
	if err != nil {
		return Move{}, err
	}
	acc, err := rm.Accuracy.toAccuracy()
	if err != nil {
		return Move{}, err
	}
	targeting, err := targetingByName(rm.Targeting)
	if err != nil {
		return Move{}, err
	}
	effects := make([]Effect, len(rm.Effects))
	for i, re := range rm.Effects {
		eff, err := re.toEffect()
		if err != nil {
			return Move{}, err
		}
		effects[i] = eff
	}
	return Move{data: moveData{
		Name:      rm.Name,
		Type:      typ,
		Category:  cat,
		Accuracy:  acc,
		Targeting: targeting,
		MaxPP:     rm.MaxPP,
		Priority:  rm.Priority,
		Sound:     rm.Sound,
		Effects:   effects,
	}}, nil
}

func (a accuracyJSON) toAccuracy() (MoveAccuracy, error) {
	switch a.Kind {
	case "Ignore":
		return MoveAccuracy{Kind: AccuracyIgnore}, nil
	case "Standard":
		return MoveAccuracy{Kind: AccuracyStandard, Pct: a.Pct}, nil
	case "Toxic":
		return MoveAccuracy{Kind: AccuracyToxic}, nil
	default:
		return MoveAccuracy{}, fmt.Errorf("invalid accuracy kind %q", a.Kind)
	}
}

func (re effectJSON) toEffect() (Effect, error) {
	var damageType Type
	var err error
	if re.DamageType != "" {
		damageType, err = typeByName(re.DamageType)
		if err != nil {
			return Effect{}, err
		}
	}
	var stat StatIndex
	if re.Stat != "" {
		stat, err = statByName(re.Stat)
		if err != nil {
			return Effect{}, err
		}
	}
	kind, err := effectKindByName(re.Kind)
	if err != nil {
		return Effect{}, err
	}
	return Effect{
		Kind:                  kind,
		Power:                 re.Power,
		DamageType:            damageType,
		CriticalHitStageBonus: re.CriticalHitStageBonus,
		Stat:                  stat,
		Stages:                re.Stages,
		Chance:                re.Chance,
		Badly:                 re.Badly,
		PowderBased:           re.PowderBased,
	}, nil
}

// --- species.json shape ---

type speciesJSON struct {
	Name            string   `json:"name"`
	Type1           string   `json:"type1"`
	Type2           string   `json:"type2"`
	Abilities       []string `json:"abilities"`
	BaseStats       [6]uint8 `json:"base_stats"`
	Weight          uint16   `json:"weight"`
	MaleChance      uint16   `json:"male_chance"`
	FemaleChance    uint16   `json:"female_chance"`
	AllowDuplicates bool     `json:"allow_duplicates"`
	MovePool        []string `json:"move_pool"`
}

func (c *Catalog) toSpecies(rs speciesJSON) (Species, error) {
	type1, err := typeByName(rs.Type1)
	if err != nil {
		return Species{}, err
	}
	type2 := TypeNone
	if rs.Type2 != "" {
		type2, err = typeByName(rs.Type2)
		if err != nil {
			return Species{}, err
		}
	}
	abilities := make([]AbilityID, len(rs.Abilities))
	for i, name := range rs.Abilities {
		abilities[i] = c.abilityIDByNameOrAdd(name)
	}
	movePool := make([]MoveID, len(rs.MovePool))
	for i, name := range rs.MovePool {
		id, err := c.MoveIDByName(name)
		if err != nil {
			return Species{}, err
		}
		movePool[i] = id
	}
	return Species{data: speciesData{
		Name:            rs.Name,
		Type1:           type1,
		Type2:           type2,
		Abilities:       abilities,
		BaseStats:       rs.BaseStats,
		Weight:          rs.Weight,
		MaleChance:      rs.MaleChance,
		FemaleChance:    rs.FemaleChance,
		AllowDuplicates: rs.AllowDuplicates,
		MovePool:        movePool,
	}}, nil
}

// abilityIDByNameOrAdd interns an ability name into the growing
// Abilities table, assigning the next free id on first sight. The
// source data has no separate abilities file; ability identity is
// whatever species.json actually references.
func (c *Catalog) abilityIDByNameOrAdd(name string) AbilityID {
	for id, existing := range c.Abilities {
		if strings.EqualFold(string(existing), name) {
			return AbilityID(id)
		}
	}
	c.Abilities = append(c.Abilities, AbilityName(name))
	return AbilityID(len(c.Abilities) - 1)
}

// --- lookups ---

func (c *Catalog) MoveIDByName(name string) (MoveID, error) {
	for id, m := range c.Moves {
		if strings.EqualFold(m.Name(), name) {
			return MoveID(id), nil
		}
	}
	return 0, fmt.Errorf("invalid move %q", name)
}

func (c *Catalog) MoveByID(id MoveID) Move { return c.Moves[id] }

func (c *Catalog) SpeciesIDByName(name string) (SpeciesID, error) {
	for id, s := range c.Species {
		if strings.EqualFold(s.Name(), name) {
			return SpeciesID(id), nil
		}
	}
	return 0, fmt.Errorf("invalid species %q", name)
}

func (c *Catalog) SpeciesByID(id SpeciesID) Species { return c.Species[id] }

func (c *Catalog) AbilityIDByName(name string) (AbilityID, error) {
	for id, a := range c.Abilities {
		if strings.EqualFold(string(a), name) {
			return AbilityID(id), nil
		}
	}
	return 0, fmt.Errorf("invalid ability %q", name)
}

func (c *Catalog) AbilityByID(id AbilityID) AbilityName { return c.Abilities[id] }

func (c *Catalog) SpeciesCount() SpeciesID { return SpeciesID(len(c.Species)) }

func (c *Catalog) RandomSpeciesID(rng *rand.Rand) SpeciesID {
	return SpeciesID(rng.Intn(len(c.Species)))
}

func typeByName(name string) (Type, error) {
	names := [...]string{"none", "normal", "fighting", "flying", "poison", "ground",
		"rock", "bug", "ghost", "steel", "fire", "water", "grass", "electric",
		"psychic", "ice", "dragon", "dark", "fairy"}
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return TypeNone, fmt.Errorf("invalid type %q", name)
}

func categoryByName(name string) (MoveCategory, error) {
	switch strings.ToLower(name) {
	case "physical":
		return CategoryPhysical, nil
	case "special":
		return CategorySpecial, nil
	case "status":
		return CategoryStatus, nil
	default:
		return 0, fmt.Errorf("invalid move category %q", name)
	}
}

func targetingByName(name string) (MoveTargeting, error) {
	targets := map[string]MoveTargeting{
		"random_opponent":          TargetRandomOpponent,
		"single_adjacent_ally":     TargetSingleAdjacentAlly,
		"single_adjacent_opponent": TargetSingleAdjacentOpponent,
		"single_adjacent_pokemon":  TargetSingleAdjacentPokemon,
		"single_pokemon":           TargetSinglePokemon,
		"user":                     TargetUser,
		"user_or_adjacent_ally":    TargetUserOrAdjacentAlly,
		"user_and_all_allies":      TargetUserAndAllAllies,
		"all_adjacent_opponents":   TargetAllAdjacentOpponents,
		"all_adjacent_pokemon":     TargetAllAdjacentPokemon,
		"all_allies":               TargetAllAllies,
		"all_opponents":            TargetAllOpponents,
		"all_pokemon":              TargetAllPokemon,
	}
	if t, ok := targets[strings.ToLower(name)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("invalid targeting %q", name)
}

func statByName(name string) (StatIndex, error) {
	stats := map[string]StatIndex{
		"hp": StatHp, "atk": StatAtk, "def": StatDef, "spatk": StatSpAtk,
		"spdef": StatSpDef, "spd": StatSpd, "acc": StatAcc, "eva": StatEva,
	}
	if s, ok := stats[strings.ToLower(name)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("invalid stat %q", name)
}

func effectKindByName(name string) (EffectKind, error) {
	kinds := map[string]EffectKind{
		"standard_damage": EffectStandardDamage,
		"stat_stage":      EffectStatStage,
		"leech_seed":      EffectLeechSeed,
		"poison":          EffectPoison,
		"sleep_powder":    EffectSleepPowder,
		"attract":         EffectAttract,
		"giga_drain":      EffectGigaDrain,
		"growth":          EffectGrowth,
		"sunny_day":       EffectSunnyDay,
		"synthesis":       EffectSynthesis,
		"struggle":        EffectStruggle,
	}
	if k, ok := kinds[strings.ToLower(name)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("invalid effect kind %q", name)
}
