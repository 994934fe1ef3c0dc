package optimize

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/wallacewatler/battlesim/internal/battle"
	"github.com/wallacewatler/battlesim/internal/catalog"
)

// populationSize is how many Solutions each side maintains; the
// reference engine's fixed 100 per population.
const populationSize = 100

// Solver co-evolves a maximizer and a minimizer population of
// TeamBuilds, scoring them against each other via noisy battle.RunBattle
// samples.
type Solver struct {
	Catalog          *catalog.Catalog `json:"-"`
	Log              zerolog.Logger   `json:"-"`
	FitnessFuncEvals int              `json:"fitnessFuncEvals"`
	MaximizerMeta    []Solution       `json:"maximizerMeta"`
	MinimizerMeta    []Solution       `json:"minimizerMeta"`
}

// NewSolver seeds both populations with fresh random TeamBuilds.
func NewSolver(cat *catalog.Catalog, log zerolog.Logger, rng *rand.Rand) *Solver {
	s := &Solver{
		Catalog:       cat,
		Log:           log,
		MaximizerMeta: make([]Solution, populationSize),
		MinimizerMeta: make([]Solution, populationSize),
	}
	for i := range s.MaximizerMeta {
		s.MaximizerMeta[i] = NewSolution(cat, rng)
	}
	for i := range s.MinimizerMeta {
		s.MinimizerMeta[i] = NewSolution(cat, rng)
	}
	return s
}

// DoIter runs one generation: a sparse round-robin of battles between
// the two populations, followed by a mutate/prune pass on each.
func (s *Solver) DoIter(rng *rand.Rand) {
	interactionChance := 1.0 / math.Sqrt(float64(len(s.MaximizerMeta))*float64(len(s.MinimizerMeta)))

	for i := range s.MaximizerMeta {
		for j := range s.MinimizerMeta {
			if rng.Float64() >= interactionChance {
				continue
			}
			maximizer := &s.MaximizerMeta[i]
			minimizer := &s.MinimizerMeta[j]
			fitnessSample := battle.RunBattle(s.Catalog, s.Log, &minimizer.TeamBuild, &maximizer.TeamBuild, rng)
			s.FitnessFuncEvals++
			maximizer.Update(fitnessSample)
			minimizer.Update(-fitnessSample)
		}
	}

	s.MaximizerMeta = updateMeta(s.Catalog, s.MaximizerMeta, rng)
	s.MinimizerMeta = updateMeta(s.Catalog, s.MinimizerMeta, rng)

	s.Log.Info().
		Int("fitnessFuncEvals", s.FitnessFuncEvals).
		Int("maximizerPop", len(s.MaximizerMeta)).
		Int("minimizerPop", len(s.MinimizerMeta)).
		Msg("completed optimizer iteration")
}

// updateMeta sorts a population by descending fitness, spawns mutated
// children from solutions with probability (1 - ProbWorseThanBest)
// divided by the population size, then prunes
// any solution judged too unlikely to beat the incumbent best.
func updateMeta(cat *catalog.Catalog, meta []Solution, rng *rand.Rand) []Solution {
	sort.Slice(meta, func(i, j int) bool {
		return meta[i].Fitness > meta[j].Fitness
	})

	numSols := len(meta)
	best := &meta[0]
	for i := range meta {
		if meta[i].NumSamples < 2 || best.NumSamples < 2 {
			meta[i].ProbWorseThanBest = 0.0
			continue
		}
		meta[i].ProbWorseThanBest = meta[i].ProbWorseThan(best, rng)

		if rng.Float64() < (1.0-meta[i].ProbWorseThanBest)/float64(numSols) {
			child := meta[i].TeamBuild.MutatedChild(cat, rng)
			alreadyPresent := lo.ContainsBy(meta, func(sol Solution) bool {
				return sol.TeamBuild.Equal(&child)
			})
			if !alreadyPresent {
				meta = append(meta, Solution{
					Fitness:           -1.0,
					FitVariance:       0.0,
					NumSamples:        0,
					ProbWorseThanBest: 0.0,
					TeamBuild:         child,
				})
			}
		}
	}

	pCutoff := meta[0].Fitness/4.0 + 0.75
	return lo.Filter(meta, func(sol Solution, _ int) bool {
		return sol.ProbWorseThanBest < pCutoff
	})
}
