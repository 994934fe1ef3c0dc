package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

func TestTerminalPayoffIsZeroAtFullHealth(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	for i := range pokemon {
		species := "Bulbasaur"
		if i >= 6 {
			species = "Charmander"
		}
		pokemon[i] = newTestPokemon(t, cat, species, "Tackle")
	}
	state := newTestState(t, cat, pokemon)
	require.InDelta(t, 0.0, terminalPayoff(state), 1e-9)
}

func TestTerminalPayoffFavorsHealthierSide(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	for i := range pokemon {
		species := "Bulbasaur"
		if i >= 6 {
			species = "Charmander"
		}
		pokemon[i] = newTestPokemon(t, cat, species, "Tackle")
	}
	state := newTestState(t, cat, pokemon)
	for i := 0; i < 6; i++ {
		state.Pokemon[i].CurrentHP = 0
	}
	require.Less(t, terminalPayoff(state), 0.0)
}

func TestSortActionOrderByStrategySortsDescending(t *testing.T) {
	order := []int{0, 1, 2}
	strategy := []float64{0.2, 0.7, 0.1}
	sortActionOrderByStrategy(order, strategy)
	// position 1 (strategy 0.7) should now lead, then position 0 (0.2),
	// then position 2 (0.1) - order holds raw action indices at those
	// positions, i.e. [1, 0, 2].
	require.Equal(t, []int{1, 0, 2}, order)
}

func TestSmabSearchTrivialOneByOneMatrix(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	// bench fainted so no switch actions are generated
	for i := 1; i < 6; i++ {
		pokemon[i] = newTestPokemon(t, cat, "Squirtle", "Tackle")
		pokemon[i].CurrentHP = 0
	}
	for i := 7; i < 12; i++ {
		pokemon[i] = newTestPokemon(t, cat, "Pikachu", "Tackle")
		pokemon[i].CurrentHP = 0
	}
	state := newTestState(t, cat, pokemon)
	rng := rand.New(rand.NewSource(1))
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)
	GenerateActions(state, rng)

	require.Len(t, state.Min.Actions, 1)
	require.Len(t, state.Max.Actions, 1)

	nashEq := SmabSearch(state, -1.0, 1.0, 2, rng)
	require.GreaterOrEqual(t, nashEq.ExpectedPayoff, -1.0)
	require.LessOrEqual(t, nashEq.ExpectedPayoff, 1.0)
}

func TestSmabSearchZeroRecursionsReturnsUniformTerminalStrategy(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)
	rng := rand.New(rand.NewSource(1))
	GenerateActions(state, rng)

	nashEq := SmabSearch(state, -1.0, 1.0, 0, rng)
	require.InDelta(t, terminalPayoff(state), nashEq.ExpectedPayoff, 1e-9)
	for _, p := range nashEq.MaxPlayerStrategy {
		require.InDelta(t, 1.0/float64(len(nashEq.MaxPlayerStrategy)), p, 1e-9)
	}
}
