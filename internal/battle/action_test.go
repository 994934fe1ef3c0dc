package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

func TestCanBePerformedBlocksAsleepUser(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	state.Pokemon[0].MajorStatusAilment = MSAAsleep

	idx := 0
	action := Action{Kind: ActionMove, UserID: 0, MoveID: mustMoveID(t, cat, "Tackle"), MoveIndex: &idx}
	rng := rand.New(rand.NewSource(1))
	require.False(t, CanBePerformed(state, &action, rng))
}

func TestCanBePerformedBlocksZeroPP(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	state.Pokemon[0].KnownMoves[0].PP = 0

	idx := 0
	action := Action{Kind: ActionMove, UserID: 0, MoveID: mustMoveID(t, cat, "Tackle"), MoveIndex: &idx}
	rng := rand.New(rand.NewSource(1))
	require.False(t, CanBePerformed(state, &action, rng))
}

func TestCanBePerformedAllowsSwitchRegardlessOfStatus(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	action := Action{Kind: ActionSwitch, SwitchingInID: 0, TargetPosition: catalog.Min}
	rng := rand.New(rand.NewSource(1))
	require.True(t, CanBePerformed(state, &action, rng))
}

func TestSortActionsOrdersNopSwitchStatusDamaging(t *testing.T) {
	cat := testCatalog(t, 6)
	state := newTestState(t, cat, [12]Pokemon{})
	tackle := mustMoveID(t, cat, "Tackle")
	growth := mustMoveID(t, cat, "Growth")

	actions := []Action{
		{Kind: ActionMove, MoveID: tackle},
		{Kind: ActionMove, MoveID: growth},
		{Kind: ActionSwitch},
		{Kind: ActionNop},
	}
	sortActions(state, actions)

	require.Equal(t, ActionNop, actions[0].Kind)
	require.Equal(t, ActionSwitch, actions[1].Kind)
	require.Equal(t, growth, actions[2].MoveID)
	require.Equal(t, tackle, actions[3].MoveID)
}

func TestActionQueueOrderingPutsSwitchesBeforeMoves(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)

	idx := 0
	queue := []Action{
		{Kind: ActionMove, UserID: 0, MoveID: mustMoveID(t, cat, "Tackle"), MoveIndex: &idx, TargetPositions: []catalog.FieldPosition{catalog.Max}},
		{Kind: ActionSwitch, SwitcherID: intPtr(6), SwitchingInID: 1, TargetPosition: catalog.Max},
	}
	rng := rand.New(rand.NewSource(1))
	actionQueueOrdering(state, queue, rng)

	require.Equal(t, ActionSwitch, queue[0].Kind)
	require.Equal(t, ActionMove, queue[1].Kind)
}

func TestActionQueueOrderingBreaksSpeedTiesWithFairCoin(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)

	idx := 0
	base := func(userID int) Action {
		return Action{Kind: ActionMove, UserID: userID, MoveID: mustMoveID(t, cat, "Tackle"), MoveIndex: &idx}
	}

	sawFirstUser0, sawFirstUser6 := false, false
	for seed := int64(0); seed < 50; seed++ {
		queue := []Action{base(0), base(6)}
		rng := rand.New(rand.NewSource(seed))
		actionQueueOrdering(state, queue, rng)
		if queue[0].UserID == 0 {
			sawFirstUser0 = true
		} else {
			sawFirstUser6 = true
		}
	}
	require.True(t, sawFirstUser0)
	require.True(t, sawFirstUser6)
}

func TestRollAccuracyIgnoreAlwaysHits(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		require.True(t, rollAccuracy(state, 0, 6, catalog.MoveAccuracy{Kind: catalog.AccuracyIgnore}, rng))
	}
}

func TestAccuracyStageMultiplierBounds(t *testing.T) {
	require.InDelta(t, 1.0, accuracyStageMultiplier(0), 1e-9)
	require.InDelta(t, 3.0/9.0, accuracyStageMultiplier(-6), 1e-9)
	require.InDelta(t, 9.0/3.0, accuracyStageMultiplier(6), 1e-9)
}

func intPtr(i int) *int { return &i }
