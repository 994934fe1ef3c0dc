package battle

import (
	"math/rand"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

// GenerateActions populates both Agents' legal actions for the state
// about to be searched, then rebuilds the action order and child slot
// vector to match.
func GenerateActions(state *State, rng *rand.Rand) {
	if state.Min.OnField == nil || state.Max.OnField == nil {
		agentsChoosePokemonToSendOut(state)
	} else {
		genActionsForUser(state, rng, catalog.Min)
		genActionsForUser(state, rng, catalog.Max)
		sortActions(state, state.Min.Actions)
		sortActions(state, state.Max.Actions)
	}

	state.Min.ActionOrder = identityOrder(len(state.Min.Actions))
	state.Max.ActionOrder = identityOrder(len(state.Max.Actions))
	state.Children = make([]*State, len(state.Min.Actions)*len(state.Max.Actions))
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// agentsChoosePokemonToSendOut is the send-out branch: the side(s)
// missing a field occupant get one Switch action per usable benched
// Pokemon; a side that already has someone out just waits with Nop.
func agentsChoosePokemonToSendOut(state *State) {
	if state.Min.OnField == nil {
		state.Min.Actions = sendOutActions(state, 0, 6, catalog.Min)
	} else {
		state.Min.Actions = []Action{{Kind: ActionNop}}
	}
	if state.Max.OnField == nil {
		state.Max.Actions = sendOutActions(state, 6, 12, catalog.Max)
	} else {
		state.Max.Actions = []Action{{Kind: ActionNop}}
	}
}

func sendOutActions(state *State, lo, hi int, position catalog.FieldPosition) []Action {
	var actions []Action
	for id := lo; id < hi; id++ {
		p := state.PokemonByID(id)
		if p.CurrentHP > 0 && p.FieldPosition == nil {
			actions = append(actions, Action{
				Kind:           ActionSwitch,
				SwitcherID:     nil,
				SwitchingInID:  id,
				TargetPosition: position,
			})
		}
	}
	return actions
}

// consecutiveSwitchCap is how many turns in a row an Agent may choose
// to switch before it must send out a move (or Struggle) instead.
const consecutiveSwitchCap = 2

// genActionsForUser fills in one Agent's action list for a regular
// (both-sides-present) turn: a pending two-turn move if still
// performable, else the legal move set (falling back to Struggle if
// none), plus switch actions while the consecutive-switch cap allows
// it. Each Move action carries every field position its targeting
// predicate reaches, resolved at perform-time.
func genActionsForUser(state *State, rng *rand.Rand, position catalog.FieldPosition) {
	agent := state.AgentAt(position)
	userID := *agent.OnField
	user := state.PokemonByID(userID)

	if user.NextMoveAction != nil {
		pending := *user.NextMoveAction
		if CanBePerformed(state, &pending, rng) {
			agent.Actions = []Action{pending}
			user.NextMoveAction = nil
			return
		}
		user.NextMoveAction = nil
	}

	var actions []Action
	for i, mi := range user.KnownMoves {
		if !user.CanChooseMove(i) {
			continue
		}
		mv := state.Catalog.MoveByID(mi.Move)
		idx := i
		actions = append(actions, Action{
			Kind:            ActionMove,
			UserID:          userID,
			MoveID:          mi.Move,
			MoveIndex:       &idx,
			TargetPositions: reachableTargets(mv.Targeting(), position),
		})
	}

	if len(actions) == 0 {
		id, err := state.Catalog.MoveIDByName("Struggle")
		if err != nil {
			panic("battle: catalog has no Struggle move: " + err.Error())
		}
		actions = append(actions, Action{
			Kind:            ActionMove,
			UserID:          userID,
			MoveID:          id,
			TargetPositions: reachableTargets(catalog.TargetRandomOpponent, position),
		})
	}

	if agent.ConsecutiveSwitches < consecutiveSwitchCap {
		lo, hi := 0, 6
		if position == catalog.Max {
			lo, hi = 6, 12
		}
		for id := lo; id < hi; id++ {
			p := state.PokemonByID(id)
			if p.CurrentHP == 0 || p.FieldPosition != nil || !hasAnyPP(p) {
				continue
			}
			actions = append(actions, Action{
				Kind:           ActionSwitch,
				SwitcherID:     &userID,
				SwitchingInID:  id,
				TargetPosition: position,
			})
		}
	}

	agent.Actions = actions
}

func hasAnyPP(p *Pokemon) bool {
	for _, mi := range p.KnownMoves {
		if mi.PP > 0 {
			return true
		}
	}
	return false
}

// reachableTargets lists every field position targeting's predicate
// allows from userPos, in Min-then-Max order.
func reachableTargets(targeting catalog.MoveTargeting, userPos catalog.FieldPosition) []catalog.FieldPosition {
	var hit []catalog.FieldPosition
	for _, pos := range []catalog.FieldPosition{catalog.Min, catalog.Max} {
		if targeting.CanHit(userPos, pos) {
			hit = append(hit, pos)
		}
	}
	return hit
}

// PlayOutTurn advances state through one battle turn given the two
// agents' chosen actions.
func PlayOutTurn(state *State, actionQueue []Action, rng *rand.Rand) {
	hasNop := false
	for _, a := range actionQueue {
		if a.Kind == ActionNop {
			hasNop = true
		}
	}

	if !hasNop {
		state.TurnNumber++
		for id := range state.Pokemon {
			p := state.PokemonByID(id)
			if p.FieldPosition != nil && p.MajorStatusAilment == MSAAsleep {
				IncrementMSACounter(state, id)
			}
		}
		if state.Weather != WeatherNone && state.WeatherCounter.Inc() {
			text := state.Weather.DisplayTextOnDisappearance()
			state.Weather = WeatherNone
			state.AddDisplayText(text)
		}
	}

	actionQueueOrdering(state, actionQueue, rng)

	for i := range actionQueue {
		action := &actionQueue[i]
		if !CanBePerformed(state, action, rng) {
			continue
		}
		if Perform(state, action, rng) {
			return
		}
	}

	if endOfTurnEffects(state, rng) {
		return
	}
}

// endOfTurnEffects applies poison/leech-seed upkeep in randomized
// per-side order, reporting whether the battle ended.
func endOfTurnEffects(state *State, rng *rand.Rand) bool {
	sides := []catalog.FieldPosition{catalog.Min, catalog.Max}
	if rng.Intn(2) == 0 {
		sides[0], sides[1] = sides[1], sides[0]
	}

	for _, side := range sides {
		agent := state.AgentAt(side)
		if agent.OnField == nil {
			continue
		}
		id := *agent.OnField
		p := state.PokemonByID(id)

		switch p.MajorStatusAilment {
		case MSAPoisoned:
			amount := maxInt(int(p.MaxHP)/8, 1)
			state.AddDisplayText(p.String() + " is hurt by poison!")
			if ApplyDamage(state, id, int32(amount)) {
				return true
			}
		case MSABadlyPoisoned:
			p.MSACounter.Value++
			amount := int(p.MSACounter.Value) * maxInt(int(p.MaxHP)/16, 1)
			state.AddDisplayText(p.String() + " is hurt by poison!")
			if ApplyDamage(state, id, int32(amount)) {
				return true
			}
		}

		if p.SeededBy == nil {
			continue
		}

		seedAmount := maxInt(int(p.MaxHP)/8, 1)
		state.AddDisplayText(p.String() + "'s health is sapped by Leech Seed!")
		if ApplyDamage(state, id, int32(seedAmount)) {
			return true
		}

		seederAgent := state.AgentAt(*p.SeededBy)
		if seederAgent.OnField != nil {
			if ApplyDamage(state, *seederAgent.OnField, -int32(seedAmount)) {
				return true
			}
		}
	}

	return false
}
