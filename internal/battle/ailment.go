package battle

// Weather is the field-wide weather condition. At most one holds at a
// time; some weathers block others from being set (see effects.go's
// sunnyDay).
type Weather uint8

const (
	WeatherNone Weather = iota
	WeatherHarshSunshine
	WeatherExtremelyHarshSunshine
	WeatherRain
	WeatherHeavyRain
	WeatherHail
	WeatherSandstorm
	WeatherStrongWinds
	WeatherFog
)

func (w Weather) DisplayTextOnAppearance() string {
	switch w {
	case WeatherHarshSunshine:
		return "It became sunny!"
	case WeatherExtremelyHarshSunshine:
		return "The sunlight became intense!"
	case WeatherRain:
		return "It started to rain!"
	case WeatherHeavyRain:
		return "It started to rain heavily!"
	case WeatherHail:
		return "It started to hail!"
	case WeatherSandstorm:
		return "A sandstorm kicked up!"
	case WeatherStrongWinds:
		return "It became windy!"
	case WeatherFog:
		return "A fog set in!"
	default:
		return ""
	}
}

func (w Weather) DisplayTextOnDisappearance() string {
	switch w {
	case WeatherHarshSunshine, WeatherExtremelyHarshSunshine:
		return "The sunlight subsided."
	case WeatherRain, WeatherHeavyRain:
		return "The rain subsided."
	case WeatherHail:
		return "The hail subsided."
	case WeatherSandstorm:
		return "The sandstorm subsided."
	case WeatherStrongWinds:
		return "The winds subsided."
	case WeatherFog:
		return "The fog subsided."
	default:
		return ""
	}
}

// Terrain is the field-wide terrain condition.
type Terrain uint8

const (
	TerrainNormal Terrain = iota
	TerrainElectric
	TerrainGrassy
	TerrainMisty
	TerrainPsychic
)

// MajorStatusAilment is the at-most-one-per-Pokemon status condition.
type MajorStatusAilment uint8

const (
	MSAOkay MajorStatusAilment = iota
	MSAAsleep
	MSAPoisoned
	MSABadlyPoisoned
	MSAParalyzed
	MSABurned
	MSAFrozen
)

func (m MajorStatusAilment) DisplayTextWhenApplied() string {
	switch m {
	case MSAAsleep:
		return " fell asleep!"
	case MSAPoisoned:
		return " was poisoned!"
	case MSABadlyPoisoned:
		return " was badly poisoned!"
	case MSAParalyzed:
		return " was paralyzed!"
	case MSABurned:
		return " was burned!"
	case MSAFrozen:
		return " was frozen!"
	default:
		return ""
	}
}

func (m MajorStatusAilment) DisplayTextWhenCured() string {
	switch m {
	case MSAAsleep:
		return " woke up!"
	case MSAParalyzed:
		return " was cured of its paralysis!"
	case MSABurned:
		return " was cured of its burn!"
	case MSAFrozen:
		return " thawed out!"
	case MSAOkay:
		return ""
	default:
		return " was cured of its poisoning!"
	}
}

func (m MajorStatusAilment) DisplayTextWhenBlockingMove() string {
	switch m {
	case MSAAsleep:
		return " is fast asleep."
	case MSAParalyzed:
		return " is paralyzed! It can't move!"
	case MSAFrozen:
		return " is frozen solid!"
	default:
		return ""
	}
}

// counterInt is the set of integer types a Counter can track; every
// call site in this engine uses a small unsigned count (PP-like sleep
// turns, weather duration, the badly-poisoned stack), so the bound
// stays narrow rather than accepting every ordered numeric type.
type counterInt interface {
	~uint8 | ~uint16 | ~int
}

// Counter is a current value paired with an optional target. Add
// reports whether the running total has reached or passed the target
// and, if so, resets the counter to zero; with no target set it never
// fires. Used for weather duration, sleep-turn countdowns and the
// major-status-ailment turn counter.
type Counter[T counterInt] struct {
	Value  T
	Target *T
}

// NewCounter builds a Counter with no current value; target may be nil
// for "never fires".
func NewCounter[T counterInt](target *T) Counter[T] {
	return Counter[T]{Target: target}
}

// Inc adds one and reports whether the counter reached its target.
func (c *Counter[T]) Inc() bool {
	return c.Add(1)
}

// Add adds n and reports whether the counter reached or passed its
// target, resetting to zero in that case.
func (c *Counter[T]) Add(n T) bool {
	c.Value += n
	if c.Target != nil && c.Value >= *c.Target {
		c.Value = 0
		return true
	}
	return false
}

// Zero resets the current value to 0 without touching the target.
func (c *Counter[T]) Zero() { c.Value = 0 }

// Clear removes the target, so Inc/Add never fire again, and zeroes
// the current value.
func (c *Counter[T]) Clear() {
	c.Value = 0
	c.Target = nil
}
