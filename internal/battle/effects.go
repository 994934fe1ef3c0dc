package battle

import (
	"fmt"
	"math/rand"

	"github.com/wallacewatler/battlesim/internal/catalog"
)

// EffectResult is the closed outcome set every move effect reports;
// expected in-battle failures are never a Go error, only one of these
// four variants.
type EffectResult uint8

const (
	EffectSuccess EffectResult = iota
	EffectFail
	EffectNoEffect
	EffectSkip
)

// DoEffect applies one effect descriptor of a move to a single target,
// dispatching on its Kind.
func DoEffect(state *State, userID, targetID int, mv catalog.Move, effect catalog.Effect, rng *rand.Rand) EffectResult {
	switch effect.Kind {
	case catalog.EffectStandardDamage:
		result, _ := stdDamage(state, userID, targetID, effect.DamageType, mv.Category(int(state.Catalog.RuleGen)), effect.Power, effect.CriticalHitStageBonus, rng)
		return result
	case catalog.EffectStatStage:
		IncrementStatStage(state, targetID, effect.Stat, effect.Stages)
		return EffectSuccess
	case catalog.EffectLeechSeed:
		return leechSeed(state, userID, targetID)
	case catalog.EffectPoison:
		if effect.PowderBased && state.Catalog.RuleGen >= 6 && state.PokemonByID(targetID).IsType(catalog.TypeGrass) {
			return EffectNoEffect
		}
		if rng.Intn(100) >= int(effect.Chance) {
			return EffectSkip
		}
		if Poison(state, targetID, effect.Badly, false) {
			return EffectSuccess
		}
		return EffectFail
	case catalog.EffectSleepPowder:
		if state.Catalog.RuleGen >= 6 && state.PokemonByID(targetID).IsType(catalog.TypeGrass) {
			return EffectNoEffect
		}
		if PutToSleep(state, targetID, rng) {
			return EffectSuccess
		}
		return EffectFail
	case catalog.EffectAttract:
		return attract(state, userID, targetID)
	case catalog.EffectGigaDrain:
		return gigaDrain(state, userID, targetID, effect, rng)
	case catalog.EffectGrowth:
		return growth(state, userID)
	case catalog.EffectSunnyDay:
		return sunnyDay(state)
	case catalog.EffectSynthesis:
		return synthesis(state, userID)
	case catalog.EffectStruggle:
		return struggleEffect(state, userID, targetID, rng)
	default:
		return EffectSkip
	}
}

// criticalHitChance returns the Bernoulli probability of a critical
// hit given a stage bonus (capped at 4) and the active rule
// generation.
func criticalHitChance(ruleGen catalog.RuleGen, stageBonus uint8) float64 {
	c := int(stageBonus)
	if c > 4 {
		c = 4
	}
	switch {
	case ruleGen <= 5:
		return [5]float64{1.0 / 16.0, 1.0 / 8.0, 1.0 / 4.0, 1.0 / 3.0, 1.0 / 2.0}[c]
	case ruleGen == 6:
		return [5]float64{1.0 / 16.0, 1.0 / 8.0, 1.0 / 2.0, 1.0, 1.0}[c]
	default:
		return [5]float64{1.0 / 24.0, 1.0 / 8.0, 1.0 / 2.0, 1.0, 1.0}[c]
	}
}

func mainStatStageMultiplier(stage int8) float64 {
	return float64(maxInt(2, int(2+stage))) / float64(maxInt(2, int(2-stage)))
}

func stdBaseDamage(power uint8, calcAtk, calcDef uint32, offStage, defStage int8, crit bool) uint32 {
	attackMult := mainStatStageMultiplier(offStage)
	if crit && offStage < 0 {
		attackMult = 1.0
	}
	defenseMult := mainStatStageMultiplier(defStage)
	if crit && defStage > 0 {
		defenseMult = 1.0
	}

	a := uint32(float64(calcAtk) * attackMult)
	d := uint32(float64(calcDef) * defenseMult)
	return (42 * uint32(power) * a / d) / 50 + 2
}

// stdDamage is the shared damage pipeline behind standard damage,
// Giga Drain, and Struggle.
func stdDamage(state *State, userID, targetID int, damageType catalog.Type, category catalog.MoveCategory, power, critStageBonus uint8, rng *rand.Rand) (EffectResult, uint16) {
	user := state.PokemonByID(userID)
	target := state.PokemonByID(targetID)

	typeEffectiveness := state.Catalog.Effectiveness(damageType, target.FirstType, target.SecondType)
	if typeEffectiveness == 0 {
		return EffectNoEffect, 0
	}

	offStat, defStat := catalog.StatAtk, catalog.StatDef
	if category == catalog.CategorySpecial {
		offStat, defStat = catalog.StatSpAtk, catalog.StatSpDef
	}

	calcAtk := CalculatedStat(state, userID, offStat)
	calcDef := CalculatedStat(state, targetID, defStat)

	if overgrow, err := state.Catalog.AbilityIDByName("Overgrow"); err == nil && damageType == catalog.TypeGrass &&
		user.Ability == overgrow && user.CurrentHP < user.MaxHP/3 {
		calcAtk = uint32(float64(calcAtk) * 1.5)
	}

	offStage := user.StatStages[offStat]
	defStage := target.StatStages[defStat]

	var modifiedDamage float64
	if rng.Float64() < criticalHitChance(state.Catalog.RuleGen, critStageBonus) {
		state.AddDisplayText("It's a critical hit!")
		critMult := 2.0
		if state.Catalog.RuleGen >= 6 {
			critMult = 1.5
		}
		modifiedDamage = float64(stdBaseDamage(power, calcAtk, calcDef, offStage, defStage, true)) * critMult
	} else {
		modifiedDamage = float64(stdBaseDamage(power, calcAtk, calcDef, offStage, defStage, false))
	}

	if state.Weather == WeatherHarshSunshine {
		switch damageType {
		case catalog.TypeFire:
			modifiedDamage *= 1.5
		case catalog.TypeWater:
			modifiedDamage *= 0.5
		}
	}

	modifiedDamage *= float64(100-rng.Intn(16)) / 100.0

	if damageType != catalog.TypeNone && user.IsType(damageType) {
		modifiedDamage *= 1.5
	}

	modifiedDamage *= typeEffectiveness
	if typeEffectiveness < 0.9 {
		state.AddDisplayText("It's not very effective...")
	} else if typeEffectiveness > 1.1 {
		state.AddDisplayText("It's super effective!")
	}

	if user.MajorStatusAilment == MSABurned {
		modifiedDamage *= 0.5
	}

	if modifiedDamage < 1.0 {
		modifiedDamage = 1.0
	}

	damageDealt := uint16(roundHalfAwayFromZero(modifiedDamage))
	ApplyDamage(state, targetID, int32(damageDealt))
	return EffectSuccess, damageDealt
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

// recoilDamage applies self-inflicted recoil, grounded on a
// numerator/denominator (damage dealt, or max HP under rule gen >= 4).
func recoilDamage(state *State, userID int, numerator uint16, denominator uint8) EffectResult {
	user := state.PokemonByID(userID)
	state.AddDisplayText(user.String() + " took recoil damage!")

	var amount uint16
	if state.Catalog.RuleGen <= 4 {
		amount = numerator / uint16(denominator)
	} else {
		amount = uint16(roundHalfAwayFromZero(float64(numerator) / float64(denominator)))
	}
	if amount < 1 {
		amount = 1
	}
	ApplyDamage(state, userID, int32(amount))
	return EffectSuccess
}

func attract(state *State, userID, targetID int) EffectResult {
	user := state.PokemonByID(userID)
	target := state.PokemonByID(targetID)
	if user.Gender == target.Gender.Opposite() && target.Gender != catalog.GenderNone {
		target.IsInfatuated = true
		if user.FieldPosition != nil {
			target.InfatuatedBy = *user.FieldPosition
		}
		state.AddDisplayText(fmt.Sprintf("%s fell in love!", target))
		return EffectSuccess
	}
	return EffectFail
}

func gigaDrain(state *State, userID, targetID int, effect catalog.Effect, rng *rand.Rand) EffectResult {
	power := uint8(75)
	if state.Catalog.RuleGen <= 4 {
		power = 60
	}
	result, damageDealt := stdDamage(state, userID, targetID, effect.DamageType, catalog.CategorySpecial, power, 0, rng)

	if result == EffectSuccess && !state.HasBattleEnded() {
		state.AddDisplayText(state.PokemonByID(targetID).String() + " had its health drained!")
		heal := int32(damageDealt) / 2
		if heal < 1 {
			heal = 1
		}
		ApplyDamage(state, userID, -heal)
	}
	return result
}

func growth(state *State, userID int) EffectResult {
	if state.Catalog.RuleGen <= 4 {
		IncrementStatStage(state, userID, catalog.StatSpAtk, 1)
		return EffectSuccess
	}
	amount := int8(1)
	if state.Weather == WeatherHarshSunshine {
		amount = 2
	}
	IncrementStatStage(state, userID, catalog.StatAtk, amount)
	IncrementStatStage(state, userID, catalog.StatSpAtk, amount)
	return EffectSuccess
}

func leechSeed(state *State, userID, targetID int) EffectResult {
	target := state.PokemonByID(targetID)
	if target.SeededBy != nil {
		return EffectFail
	}
	if target.IsType(catalog.TypeGrass) {
		return EffectNoEffect
	}
	user := state.PokemonByID(userID)
	if user.FieldPosition != nil {
		pos := *user.FieldPosition
		target.SeededBy = &pos
	}
	state.AddDisplayText(fmt.Sprintf("A seed was planted on %s!", target))
	return EffectSuccess
}

func struggleEffect(state *State, userID, targetID int, rng *rand.Rand) EffectResult {
	result, damageDealt := stdDamage(state, userID, targetID, catalog.TypeNone, catalog.CategoryPhysical, 50, 0, rng)
	if result != EffectSuccess {
		return result
	}
	if state.Catalog.RuleGen <= 3 {
		return recoilDamage(state, userID, damageDealt, 4)
	}
	return recoilDamage(state, userID, state.PokemonByID(userID).MaxHP, 4)
}

func sunnyDay(state *State) EffectResult {
	blocked := state.Catalog.RuleGen >= 3 && state.Weather == WeatherHarshSunshine
	blocked = blocked || (state.Catalog.RuleGen >= 5 &&
		(state.Weather == WeatherHeavyRain || state.Weather == WeatherExtremelyHarshSunshine || state.Weather == WeatherStrongWinds))
	if blocked {
		return EffectFail
	}

	state.Weather = WeatherHarshSunshine
	target := uint16(5)
	state.WeatherCounter = NewCounter(&target)
	state.AddDisplayText(WeatherHarshSunshine.DisplayTextOnAppearance())
	return EffectSuccess
}

func synthesis(state *State, userID int) EffectResult {
	user := state.PokemonByID(userID)
	state.AddDisplayText(user.String() + " restored its HP!")

	heal := int32(user.MaxHP)
	switch state.Weather {
	case WeatherNone, WeatherStrongWinds:
		heal /= 2
	case WeatherHarshSunshine:
		heal = heal * 2 / 3
	default:
		heal /= 4
	}
	ApplyDamage(state, userID, -heal)
	return EffectSuccess
}
