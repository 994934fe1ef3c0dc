package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

func TestStdBaseDamageKnownInputs(t *testing.T) {
	// power 40, atk 100, def 100, no stage bonuses: 42*40*100/100 = 1680, /50 = 33, +2 = 35
	got := stdBaseDamage(40, 100, 100, 0, 0, false)
	require.EqualValues(t, 35, got)
}

func TestStdBaseDamageCritIgnoresNegativeAttackStage(t *testing.T) {
	normal := stdBaseDamage(40, 100, 100, -2, 0, false)
	crit := stdBaseDamage(40, 100, 100, -2, 0, true)
	require.Greater(t, crit, normal)
}

func TestCriticalHitChanceTableByRuleGen(t *testing.T) {
	require.InDelta(t, 1.0/16.0, criticalHitChance(5, 0), 1e-9)
	require.InDelta(t, 1.0/16.0, criticalHitChance(6, 0), 1e-9)
	require.InDelta(t, 1.0/24.0, criticalHitChance(7, 0), 1e-9)
	require.InDelta(t, 1.0, criticalHitChance(6, 3), 1e-9)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	require.Equal(t, 3.0, roundHalfAwayFromZero(2.5))
	require.Equal(t, -3.0, roundHalfAwayFromZero(-2.5))
	require.Equal(t, 2.0, roundHalfAwayFromZero(2.4))
}

func TestStdDamageNoEffectAgainstImmuneType(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Pikachu", "Thunderbolt")
	pokemon[6] = newTestPokemon(t, cat, "Gengar", "Thunderbolt")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)

	// Gengar has no Ground type, so this isn't a real immunity; use type
	// effectiveness directly via Normal into Ghost instead.
	result, _ := stdDamage(state, 0, 6, catalog.TypeNormal, catalog.CategoryPhysical, 40, 0, rand.New(rand.NewSource(1)))
	require.Equal(t, EffectNoEffect, result)
}

func TestStdDamageAppliesDamageToTarget(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Charmander", "Ember")
	pokemon[6] = newTestPokemon(t, cat, "Bulbasaur", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	AddToField(state, 6, catalog.Max)
	hpBefore := state.Pokemon[6].CurrentHP

	result, dealt := stdDamage(state, 0, 6, catalog.TypeFire, catalog.CategorySpecial, 40, 0, rand.New(rand.NewSource(1)))
	require.Equal(t, EffectSuccess, result)
	require.Greater(t, dealt, uint16(0))
	require.Less(t, state.Pokemon[6].CurrentHP, hpBefore)
}

func TestLeechSeedFailsWhenAlreadySeeded(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Leech Seed")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	pos := catalog.Min
	state.Pokemon[6].SeededBy = &pos

	require.Equal(t, EffectFail, leechSeed(state, 0, 6))
}

func TestLeechSeedNoEffectAgainstGrassType(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Charmander", "Tackle")
	pokemon[6] = newTestPokemon(t, cat, "Bulbasaur", "Leech Seed")
	state := newTestState(t, cat, pokemon)

	require.Equal(t, EffectNoEffect, leechSeed(state, 0, 6))
}

func TestLeechSeedSucceedsAgainstNonGrassType(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Leech Seed")
	pokemon[6] = newTestPokemon(t, cat, "Charmander", "Tackle")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)

	require.Equal(t, EffectSuccess, leechSeed(state, 0, 6))
	require.NotNil(t, state.Pokemon[6].SeededBy)
	require.Equal(t, catalog.Min, *state.Pokemon[6].SeededBy)
}

func TestAttractFailsForSameGender(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Charmander", "Attract")
	pokemon[6] = newTestPokemon(t, cat, "Squirtle", "Attract")
	state := newTestState(t, cat, pokemon)
	state.Pokemon[0].Gender = catalog.GenderMale
	state.Pokemon[6].Gender = catalog.GenderMale

	require.Equal(t, EffectFail, attract(state, 0, 6))
}

func TestAttractSucceedsForOppositeGender(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Charmander", "Attract")
	pokemon[6] = newTestPokemon(t, cat, "Squirtle", "Attract")
	state := newTestState(t, cat, pokemon)
	AddToField(state, 0, catalog.Min)
	state.Pokemon[0].Gender = catalog.GenderMale
	state.Pokemon[6].Gender = catalog.GenderFemale

	require.Equal(t, EffectSuccess, attract(state, 0, 6))
	require.True(t, state.Pokemon[6].IsInfatuated)
	require.Equal(t, catalog.Min, state.Pokemon[6].InfatuatedBy)
}

func TestGrowthBoostsBothStatsInGenSixUnderSun(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Growth")
	state := newTestState(t, cat, pokemon)
	state.Weather = WeatherHarshSunshine

	growth(state, 0)
	require.EqualValues(t, 2, state.Pokemon[0].StatStages[catalog.StatAtk])
	require.EqualValues(t, 2, state.Pokemon[0].StatStages[catalog.StatSpAtk])
}

func TestGrowthOnlyBoostsSpAtkInGenFour(t *testing.T) {
	cat := testCatalog(t, 4)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Growth")
	state := newTestState(t, cat, pokemon)

	growth(state, 0)
	require.EqualValues(t, 0, state.Pokemon[0].StatStages[catalog.StatAtk])
	require.EqualValues(t, 1, state.Pokemon[0].StatStages[catalog.StatSpAtk])
}

func TestSynthesisHealsFractionOfMaxHP(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Synthesis")
	state := newTestState(t, cat, pokemon)
	maxHP := state.Pokemon[0].MaxHP
	state.Pokemon[0].CurrentHP = 1

	synthesis(state, 0)
	require.EqualValues(t, 1+maxHP/2, state.Pokemon[0].CurrentHP)
}

func TestSunnyDayBlockedWhileAlreadySunny(t *testing.T) {
	cat := testCatalog(t, 6)
	state := newTestState(t, cat, [12]Pokemon{})
	state.Weather = WeatherHarshSunshine

	require.Equal(t, EffectFail, sunnyDay(state))
}

func TestSunnyDaySetsWeatherAndCounter(t *testing.T) {
	cat := testCatalog(t, 6)
	state := newTestState(t, cat, [12]Pokemon{})

	require.Equal(t, EffectSuccess, sunnyDay(state))
	require.Equal(t, WeatherHarshSunshine, state.Weather)
}

func TestRecoilDamageAtLeastOne(t *testing.T) {
	cat := testCatalog(t, 6)
	pokemon := [12]Pokemon{}
	pokemon[0] = newTestPokemon(t, cat, "Bulbasaur", "Struggle")
	state := newTestState(t, cat, pokemon)

	recoilDamage(state, 0, 1, 4)
	require.EqualValues(t, state.Pokemon[0].MaxHP-1, state.Pokemon[0].CurrentHP)
}
