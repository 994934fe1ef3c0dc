package battle

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

// testCatalog loads the small fixture catalog shared with
// internal/catalog's own tests.
func testCatalog(t *testing.T, ruleGen catalog.RuleGen) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(ruleGen, "../../resources/x_y")
	require.NoError(t, err)
	return c
}

func mustMoveID(t *testing.T, cat *catalog.Catalog, name string) catalog.MoveID {
	t.Helper()
	id, err := cat.MoveIDByName(name)
	require.NoError(t, err)
	return id
}

func mustSpeciesID(t *testing.T, cat *catalog.Catalog, name string) catalog.SpeciesID {
	t.Helper()
	id, err := cat.SpeciesIDByName(name)
	require.NoError(t, err)
	return id
}

// newTestPokemon builds a level-100 Pokemon at full IVs and zero EVs, hardy
// nature, with the given move names known at max PP.
func newTestPokemon(t *testing.T, cat *catalog.Catalog, species string, moves ...string) Pokemon {
	t.Helper()
	spID := mustSpeciesID(t, cat, species)
	var moveIDs []catalog.MoveID
	for _, m := range moves {
		moveIDs = append(moveIDs, mustMoveID(t, cat, m))
	}
	pb := PokemonBuild{
		Species: spID,
		Gender:  catalog.GenderNone,
		Nature:  catalog.NatureHardy,
		Ability: cat.SpeciesByID(spID).Abilities()[0],
		IVs:     [6]uint8{31, 31, 31, 31, 31, 31},
		EVs:     [6]uint8{0, 0, 0, 0, 0, 0},
		Moves:   moveIDs,
	}
	return newPokemonFromBuild(cat, &pb)
}

func newTestState(t *testing.T, cat *catalog.Catalog, pokemon [12]Pokemon) *State {
	t.Helper()
	return NewState(cat, zerolog.Nop(), pokemon, WeatherNone, TerrainNormal)
}
