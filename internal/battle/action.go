package battle

import (
	"math/rand"

	"github.com/wallacewatler/battlesim/internal/catalog"
	"github.com/wallacewatler/battlesim/internal/rngutil"
)

// ActionKind tags an Action's variant.
type ActionKind uint8

const (
	ActionNop ActionKind = iota
	ActionSwitch
	ActionMove
)

// Action is a flat tagged union of the three things an Agent can do on
// a turn. Only the fields relevant to Kind are meaningful.
type Action struct {
	Kind ActionKind

	// ActionMove
	UserID          int
	MoveID          catalog.MoveID
	MoveIndex       *int // index into the user's KnownMoves; nil for Struggle
	TargetPositions []catalog.FieldPosition

	// ActionSwitch. SwitcherID is nil for a mandatory send-out (no
	// Pokemon is being replaced, since none is on the field yet).
	SwitcherID     *int
	SwitchingInID  int
	TargetPosition catalog.FieldPosition
}

// CanBePerformed is the gate checked immediately before a queued
// action executes; a Move already committed to the queue can still
// fail to happen if its user fainted, fled, or is incapacitated by a
// major status ailment earlier in the same turn.
func CanBePerformed(state *State, action *Action, rng *rand.Rand) bool {
	if action.Kind != ActionMove {
		return true
	}

	user := state.PokemonByID(action.UserID)
	if user.CurrentHP == 0 || user.FieldPosition == nil {
		return false
	}
	if action.MoveIndex != nil {
		mi := user.KnownMoves[*action.MoveIndex]
		if mi.PP == 0 || mi.Disabled {
			return false
		}
	}

	switch user.MajorStatusAilment {
	case MSAAsleep, MSAFrozen:
		state.AddDisplayText(user.String() + user.MajorStatusAilment.DisplayTextWhenBlockingMove())
		return false
	case MSAParalyzed:
		if rng.Intn(4) == 0 {
			state.AddDisplayText(user.String() + MSAParalyzed.DisplayTextWhenBlockingMove())
			return false
		}
	}

	return true
}

// sortActions is the static pre-sort applied to an Agent's generated
// action list, ordering Nop first, then Switch, then Status-category
// moves, then damaging moves, so that identical subtrees collapse to
// the same traversal order regardless of how actions were generated.
func sortActions(state *State, actions []Action) {
	for i := 1; i < len(actions); i++ {
		for j := i; j > 0 && actionRank(state, &actions[j]) < actionRank(state, &actions[j-1]); j-- {
			actions[j], actions[j-1] = actions[j-1], actions[j]
		}
	}
}

func actionRank(state *State, a *Action) int {
	switch a.Kind {
	case ActionNop:
		return 0
	case ActionSwitch:
		return 1
	default:
		mv := state.Catalog.MoveByID(a.MoveID)
		if mv.Category(int(state.Catalog.RuleGen)) == catalog.CategoryStatus {
			return 2
		}
		return 3
	}
}

// actionQueueOrdering sorts a turn's committed action queue into
// execution order: switches first (in original agent order), then
// moves by descending priority tier, ties broken by the user's
// calculated Speed, further ties by a fair coin.
func actionQueueOrdering(state *State, queue []Action, rng *rand.Rand) {
	type keyed struct {
		action Action
		tier   int
		prio   int8
		speed  uint32
		coin   bool
	}

	keys := make([]keyed, len(queue))
	for i, a := range queue {
		k := keyed{action: a}
		switch a.Kind {
		case ActionSwitch:
			k.tier = 0
		case ActionNop:
			k.tier = 2
		default:
			k.tier = 1
			k.prio = state.Catalog.MoveByID(a.MoveID).Priority()
			k.speed = CalculatedStat(state, a.UserID, catalog.StatSpd)
			k.coin = rngutil.FairCoin(rng)
		}
		keys[i] = k
	}

	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && queueLess(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}

	for i, k := range keys {
		queue[i] = k.action
	}
}

func queueLess(a, b struct {
	action Action
	tier   int
	prio   int8
	speed  uint32
	coin   bool
}) bool {
	if a.tier != b.tier {
		return a.tier < b.tier
	}
	if a.tier != 1 {
		return false
	}
	if a.prio != b.prio {
		return a.prio > b.prio
	}
	if a.speed != b.speed {
		return a.speed > b.speed
	}
	return a.coin && !b.coin
}

// Perform executes action against state, applying its effects in
// order, and reports whether the battle has ended as a result.
func Perform(state *State, action *Action, rng *rand.Rand) bool {
	switch action.Kind {
	case ActionNop:
		return false

	case ActionSwitch:
		if action.SwitcherID != nil {
			RemoveFromField(state, *action.SwitcherID)
		}
		return AddToField(state, action.SwitchingInID, action.TargetPosition)

	default:
		return performMove(state, action, rng)
	}
}

func performMove(state *State, action *Action, rng *rand.Rand) bool {
	user := state.PokemonByID(action.UserID)
	mv := state.Catalog.MoveByID(action.MoveID)

	if action.MoveIndex != nil {
		IncrementMovePP(state, action.UserID, *action.MoveIndex, -1)
	}
	state.AddDisplayText(user.String() + " used " + mv.Name() + "!")

	for _, targetPos := range action.TargetPositions {
		targetAgent := state.AgentAt(targetPos)
		if targetAgent.OnField == nil {
			state.AddDisplayText("But it failed!")
			continue
		}
		targetID := *targetAgent.OnField

		if !rollAccuracy(state, action.UserID, targetID, mv.Accuracy(), rng) {
			state.AddDisplayText(user.String() + "'s attack missed!")
			continue
		}

		for _, effect := range mv.Effects() {
			DoEffect(state, action.UserID, targetID, mv, effect, rng)
			if state.HasBattleEnded() {
				return true
			}
		}
	}

	return state.HasBattleEnded()
}

// rollAccuracy resolves a MoveAccuracy tagged union against the
// attacker/defender's accuracy and evasion stages.
func rollAccuracy(state *State, userID, targetID int, acc catalog.MoveAccuracy, rng *rand.Rand) bool {
	switch acc.Kind {
	case catalog.AccuracyIgnore:
		return true
	case catalog.AccuracyToxic:
		user := state.PokemonByID(userID)
		if state.Catalog.RuleGen >= 6 && user.IsType(catalog.TypePoison) {
			return true
		}
		flat := uint8(85)
		if state.Catalog.RuleGen >= 5 {
			flat = 90
		}
		return rollStandardAccuracy(state, userID, targetID, flat, rng)
	default:
		return rollStandardAccuracy(state, userID, targetID, acc.Pct, rng)
	}
}

func rollStandardAccuracy(state *State, userID, targetID int, pct uint8, rng *rand.Rand) bool {
	user := state.PokemonByID(userID)
	target := state.PokemonByID(targetID)

	delta := clampInt8(user.StatStages[catalog.StatAcc]-target.StatStages[catalog.StatEva], -6, 6)
	m := accuracyStageMultiplier(delta)
	u := rng.Intn(100)
	return float64(u) < float64(pct)*m
}

func accuracyStageMultiplier(delta int8) float64 {
	if delta >= 0 {
		return float64(maxInt(3, int(3+delta))) / 3.0
	}
	return 3.0 / float64(maxInt(3, int(3-delta)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
