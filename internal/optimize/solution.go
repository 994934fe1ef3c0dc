// Package optimize implements the co-evolutionary combinatorial
// optimizer: two populations of TeamBuild candidates, one per side,
// scored against each other by noisy battle.RunBattle samples and
// evolved by weighted mutation (see SPEC_FULL.md §4.6).
package optimize

import (
	"math"
	"math/rand"

	// distuv stands in for the original's statrs Normal/StudentsT
	// constructors, the same gonum subpackage family internal/mathx
	// draws its epsilon-compare helper from.
	"gonum.org/v1/gonum/stat/distuv"
	"github.com/wallacewatler/battlesim/internal/battle"
	"github.com/wallacewatler/battlesim/internal/catalog"
)

// monteCarloSamples is the Student-t comparison's sample count, used
// when either side has too few battle samples for the normal
// approximation to be trustworthy.
const monteCarloSamples = 100000

// Solution is one candidate TeamBuild together with its noisy fitness
// estimate, updated incrementally as it plays more battles.
type Solution struct {
	Fitness           float64          `json:"fitness"`
	FitVariance       float64          `json:"fitVariance"`
	NumSamples        int              `json:"numSamples"`
	ProbWorseThanBest float64          `json:"probWorseThanBest"`
	TeamBuild         battle.TeamBuild `json:"teamBuild"`
}

// NewSolution draws a fresh random TeamBuild with no fitness samples
// yet.
func NewSolution(cat *catalog.Catalog, rng *rand.Rand) Solution {
	return Solution{
		Fitness:   -1.0,
		TeamBuild: battle.NewTeamBuild(cat, rng),
	}
}

// Update folds one more battle payoff into the running mean/variance.
// The second sample sets the variance to the squared difference of the
// first two samples; from the third sample on, Welford's online
// recurrence updates it.
func (s *Solution) Update(fitnessSample float64) {
	switch s.NumSamples {
	case 0:
		s.Fitness = fitnessSample
	case 1:
		oldFitness := s.Fitness
		s.Fitness = (oldFitness*float64(s.NumSamples) + fitnessSample) / float64(s.NumSamples+1)
		s.FitVariance = math.Pow(fitnessSample-oldFitness, 2.0)
	default:
		oldFitness := s.Fitness
		oldVariance := s.FitVariance
		s.Fitness = (oldFitness*float64(s.NumSamples) + fitnessSample) / float64(s.NumSamples+1)
		s.FitVariance = (float64(s.NumSamples-1)*oldVariance + (fitnessSample-s.Fitness)*(fitnessSample-oldFitness)) / float64(s.NumSamples)
	}
	s.NumSamples++
}

// ProbWorseThan returns the probability that s performs worse than
// other: a closed-form normal CDF when both have enough samples for
// the central limit theorem to apply, otherwise a Monte-Carlo
// comparison of two Student-t samples (the direct analogue of the
// reference engine's statrs-based check).
func (s *Solution) ProbWorseThan(other *Solution, rng *rand.Rand) float64 {
	if almostZero(s.FitVariance) && almostZero(other.FitVariance) {
		switch {
		case s.Fitness > other.Fitness:
			return 0.0
		case s.Fitness < other.Fitness:
			return 1.0
		default:
			return 0.5
		}
	}

	if s.NumSamples > 30 && other.NumSamples > 30 {
		diff := distuv.Normal{
			Mu:    s.Fitness - other.Fitness,
			Sigma: math.Sqrt(s.FitVariance + other.FitVariance),
		}
		return diff.CDF(0.0)
	}

	dist1 := distuv.StudentsT{Mu: s.Fitness, Sigma: math.Sqrt(s.FitVariance), Nu: float64(s.NumSamples - 1), Src: rand.NewSource(rng.Int63())}
	dist2 := distuv.StudentsT{Mu: other.Fitness, Sigma: math.Sqrt(other.FitVariance), Nu: float64(other.NumSamples - 1), Src: rand.NewSource(rng.Int63())}

	count := 0
	for i := 0; i < monteCarloSamples; i++ {
		if dist1.Rand()-dist2.Rand() < 0.0 {
			count++
		}
	}
	return float64(count) / float64(monteCarloSamples)
}

func almostZero(v float64) bool {
	return math.Abs(v) < 1e-10
}
