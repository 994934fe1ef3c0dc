package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

func TestPokemonBuildMaxHP(t *testing.T) {
	cat := testCatalog(t, 6)
	pb := PokemonBuild{
		Species: mustSpeciesID(t, cat, "Bulbasaur"),
		IVs:     [6]uint8{31, 0, 0, 0, 0, 0},
		EVs:     [6]uint8{252, 0, 0, 0, 0, 0},
	}
	// base 45, iv 31, ev/4 63 -> 2*45 + 31 + 63 + 110 = 294
	require.EqualValues(t, 294, pb.MaxHP(cat))
}

func TestPokemonBuildEqualIsOrderInsensitiveOverMoves(t *testing.T) {
	cat := testCatalog(t, 6)
	a := PokemonBuild{
		Species: mustSpeciesID(t, cat, "Bulbasaur"),
		Moves:   []catalog.MoveID{mustMoveID(t, cat, "Tackle"), mustMoveID(t, cat, "Growth")},
	}
	b := PokemonBuild{
		Species: mustSpeciesID(t, cat, "Bulbasaur"),
		Moves:   []catalog.MoveID{mustMoveID(t, cat, "Growth"), mustMoveID(t, cat, "Tackle")},
	}
	require.True(t, a.Equal(&b))
}

func TestTeamBuildEqualComparesLeaderExactlyAndRestAsMultiset(t *testing.T) {
	cat := testCatalog(t, 6)
	bulba := mustSpeciesID(t, cat, "Bulbasaur")
	char := mustSpeciesID(t, cat, "Charmander")
	squirt := mustSpeciesID(t, cat, "Squirtle")

	var a, b TeamBuild
	a.Members[0] = PokemonBuild{Species: bulba}
	a.Members[1] = PokemonBuild{Species: char}
	a.Members[2] = PokemonBuild{Species: squirt}
	for i := 3; i < 6; i++ {
		a.Members[i] = PokemonBuild{Species: bulba}
	}

	b = a
	b.Members[1], b.Members[2] = a.Members[2], a.Members[1]
	require.True(t, a.Equal(&b))

	b.Members[0] = PokemonBuild{Species: char}
	require.False(t, a.Equal(&b))
}

func TestNewTeamBuildRespectsDuplicateConstraint(t *testing.T) {
	cat := testCatalog(t, 6)
	rng := rand.New(rand.NewSource(1))
	mewtwoID := mustSpeciesID(t, cat, "Mewtwo")

	for trial := 0; trial < 50; trial++ {
		tb := NewTeamBuild(cat, rng)
		mewtwoCount := 0
		for _, m := range tb.Members {
			if m.Species == mewtwoID {
				mewtwoCount++
			}
		}
		require.LessOrEqual(t, mewtwoCount, 1)
	}
}

func TestMutatedChildChangesExactlyOneMember(t *testing.T) {
	cat := testCatalog(t, 6)
	rng := rand.New(rand.NewSource(7))
	tb := NewTeamBuild(cat, rng)

	for trial := 0; trial < 20; trial++ {
		child := tb.MutatedChild(cat, rng)
		changed := 0
		for i := range tb.Members {
			if !tb.Members[i].Equal(&child.Members[i]) {
				changed++
			}
		}
		require.LessOrEqual(t, changed, 1)
		tb = child
	}
}

func TestCalculatedStatAppliesNatureAndParalysis(t *testing.T) {
	cat := testCatalog(t, 6)
	p := newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon := [12]Pokemon{}
	pokemon[0] = p
	state := newTestState(t, cat, pokemon)

	base := CalculatedStat(state, 0, catalog.StatSpd)
	state.Pokemon[0].MajorStatusAilment = MSAParalyzed
	paralyzed := CalculatedStat(state, 0, catalog.StatSpd)
	require.EqualValues(t, base/4, paralyzed)
}

func TestCalculatedStatChlorophyllDoublesSpeedInSun(t *testing.T) {
	cat := testCatalog(t, 6)
	p := newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	chlorophyll, err := cat.AbilityIDByName("Chlorophyll")
	require.NoError(t, err)
	p.Ability = chlorophyll

	pokemon := [12]Pokemon{}
	pokemon[0] = p
	state := newTestState(t, cat, pokemon)

	base := CalculatedStat(state, 0, catalog.StatSpd)
	state.Weather = WeatherHarshSunshine
	boosted := CalculatedStat(state, 0, catalog.StatSpd)
	require.EqualValues(t, base*2, boosted)
}

func TestAddToFieldPanicsOnOccupiedPosition(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[1] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)

	require.False(t, AddToField(state, 0, catalog.Min))
	require.Panics(t, func() { AddToField(state, 1, catalog.Min) })
}

func TestRemoveFromFieldClearsMinorStatusAndStages(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)

	p := state.PokemonByID(0)
	p.StatStages[catalog.StatAtk] = 3
	p.IsInfatuated = true
	p.IsCursed = true

	RemoveFromField(state, 0)
	require.Equal(t, [8]int8{}, p.StatStages)
	require.False(t, p.IsInfatuated)
	require.False(t, p.IsCursed)
	require.Nil(t, p.FieldPosition)
}

func TestApplyDamageFaintsAndRemovesFromField(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)

	ended := ApplyDamage(state, 0, int32(state.Pokemon[0].MaxHP))
	require.True(t, ended)
	require.EqualValues(t, 0, state.Pokemon[0].CurrentHP)
	require.Nil(t, state.Pokemon[0].FieldPosition)
	require.Nil(t, state.Min.OnField)
}

func TestApplyDamageNegativeHealsButClampsToMaxHP(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	state.Pokemon[0].CurrentHP = state.Pokemon[0].MaxHP - 5

	ApplyDamage(state, 0, -1000)
	require.Equal(t, state.Pokemon[0].MaxHP, state.Pokemon[0].CurrentHP)
}

func TestPoisonBlockedByPoisonType(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)

	require.False(t, Poison(state, 0, false, false))
	require.Equal(t, MSAOkay, state.Pokemon[0].MajorStatusAilment)
}

func TestPoisonCorrosionBypassesTypeImmunity(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)

	require.True(t, Poison(state, 0, false, true))
	require.Equal(t, MSAPoisoned, state.Pokemon[0].MajorStatusAilment)
}

func TestPoisonToxicSetsBadlyPoisoned(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)

	require.True(t, Poison(state, 0, true, false))
	require.Equal(t, MSABadlyPoisoned, state.Pokemon[0].MajorStatusAilment)
}

func TestIncrementStatStageClampsAtSix(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)

	for i := 0; i < 10; i++ {
		IncrementStatStage(state, 0, catalog.StatAtk, 2)
	}
	require.EqualValues(t, 6, state.Pokemon[0].StatStages[catalog.StatAtk])
}

func TestSleepTurnCountRangesByRuleGen(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		n := sleepTurnCount(1, rng)
		require.GreaterOrEqual(t, n, uint16(1))
		require.LessOrEqual(t, n, uint16(6))
	}
	for i := 0; i < 200; i++ {
		n := sleepTurnCount(7, rng)
		require.GreaterOrEqual(t, n, uint16(1))
		require.LessOrEqual(t, n, uint16(2))
	}
}
