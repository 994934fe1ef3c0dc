package catalog

// MoveID indexes into a Catalog's Moves slice.
type MoveID uint16

// AccuracyKind tags a MoveAccuracy's variant.
type AccuracyKind uint8

const (
	AccuracyIgnore AccuracyKind = iota
	AccuracyStandard
	AccuracyToxic
)

// MoveAccuracy is a tagged union: Ignore always hits, Standard(Pct)
// rolls against Pct modified by accuracy/evasion stages, and Toxic
// autohits for a Poison-type user under generation >= 6 and otherwise
// rolls a generation-dependent flat accuracy.
type MoveAccuracy struct {
	Kind AccuracyKind
	Pct  uint8 // only meaningful when Kind == AccuracyStandard
}

// MoveTargeting classifies which field positions a move's targeting
// predicate can reach.
type MoveTargeting uint8

const (
	TargetRandomOpponent MoveTargeting = iota
	TargetSingleAdjacentAlly
	TargetSingleAdjacentOpponent
	TargetSingleAdjacentPokemon
	TargetSinglePokemon
	TargetUser
	TargetUserOrAdjacentAlly
	TargetUserAndAllAllies
	TargetAllAdjacentOpponents
	TargetAllAdjacentPokemon
	TargetAllAllies
	TargetAllOpponents
	TargetAllPokemon
)

// CanHit reports whether a move with this targeting, used from userPos,
// can legally target targetPos.
func (t MoveTargeting) CanHit(userPos, targetPos FieldPosition) bool {
	switch t {
	case TargetRandomOpponent, TargetAllOpponents:
		return userPos.Opposes(targetPos)
	case TargetSingleAdjacentAlly:
		return !userPos.Opposes(targetPos) && userPos.AdjacentTo(targetPos)
	case TargetSingleAdjacentOpponent, TargetAllAdjacentOpponents:
		return userPos.Opposes(targetPos) && userPos.AdjacentTo(targetPos)
	case TargetSingleAdjacentPokemon, TargetAllAdjacentPokemon:
		return userPos.AdjacentTo(targetPos)
	case TargetSinglePokemon:
		return userPos != targetPos
	case TargetUser:
		return userPos == targetPos
	case TargetUserOrAdjacentAlly:
		return TargetUser.CanHit(userPos, targetPos) || TargetSingleAdjacentAlly.CanHit(userPos, targetPos)
	case TargetUserAndAllAllies:
		return !userPos.Opposes(targetPos)
	case TargetAllAllies:
		return userPos != targetPos && !userPos.Opposes(targetPos)
	case TargetAllPokemon:
		return true
	default:
		return false
	}
}

// EffectKind tags one entry of a Move's ordered effect descriptor list.
type EffectKind uint8

const (
	EffectStandardDamage EffectKind = iota
	EffectStatStage
	EffectLeechSeed
	EffectPoison
	EffectSleepPowder
	EffectAttract
	EffectGigaDrain
	EffectGrowth
	EffectSunnyDay
	EffectSynthesis
	EffectStruggle
)

// Effect is one tagged descriptor in a Move's effect list. Only the
// fields relevant to Kind are meaningful; see SPEC_FULL.md §4.2 for the
// semantics each kind implements.
type Effect struct {
	Kind EffectKind

	// EffectStandardDamage reads both; EffectGigaDrain reads DamageType
	// only and uses a fixed power; EffectStruggle reads neither.
	Power      uint8
	DamageType Type // may differ from the move's own declared Type
	// CriticalHitStageBonus adds to the critical-hit stage before the
	// rule-gen lookup table is applied (high-crit-ratio moves).
	CriticalHitStageBonus uint8

	// EffectStatStage
	Stat   StatIndex
	Stages int8

	// EffectPoison: chance in [0,100] that the status is applied.
	// EffectSleepPowder does not read it and has no chance roll.
	Chance uint8
	// EffectPoison: true selects BadlyPoisoned (toxic) over Poisoned.
	Badly bool
	// EffectPoison: true when delivered as a powder (no effect on
	// Grass-type targets under rule generation 6 and later).
	// EffectSleepPowder does not read it: it always gets that Grass check.
	PowderBased bool
}

// MoveCategory is declared on Move directly; Type.DefaultCategory
// supplies the rule-gen<=3 fallback.
type moveData struct {
	Name      string
	Type      Type
	Category  MoveCategory
	Accuracy  MoveAccuracy
	Targeting MoveTargeting
	MaxPP     uint8
	Priority  int8
	Sound     bool
	Effects   []Effect
}

// Move is the immutable, catalog-resident description of one move.
type Move struct{ data moveData }

func (m Move) Name() string          { return m.data.Name }
func (m Move) Type() Type            { return m.data.Type }
func (m Move) Accuracy() MoveAccuracy { return m.data.Accuracy }
func (m Move) Targeting() MoveTargeting { return m.data.Targeting }
func (m Move) MaxPP() uint8          { return m.data.MaxPP }
func (m Move) Priority() int8        { return m.data.Priority }
func (m Move) Sound() bool           { return m.data.Sound }
func (m Move) Effects() []Effect     { return m.data.Effects }

// Category returns the move's battle category, falling back to its
// type's default physical/special split under rule generation <= 3 (the
// declared category is ignored in that era for anything but Status
// moves).
func (m Move) Category(ruleGen int) MoveCategory {
	if m.data.Category != CategoryStatus && ruleGen <= 3 {
		return m.data.Type.DefaultCategory()
	}
	return m.data.Category
}
