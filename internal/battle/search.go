package battle

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"github.com/wallacewatler/battlesim/internal/catalog"
	"github.com/wallacewatler/battlesim/internal/mathx"
	"github.com/wallacewatler/battlesim/internal/rngutil"
)

// searchDepth is the recursion budget every root search is run with;
// AI_LEVEL in the reference engine.
const searchDepth = 3

// nashAddedConstant shifts the payoff matrix so every surviving entry
// is strictly positive before calc_nash_eq's simplex pivot runs on it.
const nashAddedConstant = 2.0

// SmabSearch is the simultaneous-move alpha-beta search: given bounds
// alpha <= beta in [-1, 1] and a recursion budget, it returns the
// solved zero-sum equilibrium of the (possibly pruned) action matrix
// rooted at state.
func SmabSearch(state *State, alpha, beta float64, recursions int, rng *rand.Rand) mathx.ZeroSumNashEq {
	m := len(state.Max.Actions)
	n := len(state.Min.Actions)

	if recursions < 1 || m == 0 || n == 0 {
		maxStrategy := make([]float64, m)
		for i := range maxStrategy {
			maxStrategy[i] = 1.0 / float64(m)
		}
		minStrategy := make([]float64, n)
		for j := range minStrategy {
			minStrategy[j] = 1.0 / float64(n)
		}
		return mathx.ZeroSumNashEq{
			MaxPlayerStrategy: maxStrategy,
			MinPlayerStrategy: minStrategy,
			ExpectedPayoff:    terminalPayoff(state),
		}
	}

	payoffMatrix := mathx.NewMatrixOf(0.0, m, n)
	rowDomination := make([]bool, m)
	colDomination := make([]bool, n)
	rowMins := make([]float64, m)
	colMaxes := make([]float64, n)
	for i := range rowMins {
		rowMins[i] = 1.0
	}
	for j := range colMaxes {
		colMaxes[j] = -1.0
	}

	exploreChild := func(i, j int) {
		if rowDomination[i] || colDomination[j] {
			return
		}
		child := state.GetOrGenChild(i, j, rng)
		childValue := SmabSearch(child, alpha, beta, recursions-1, rng).ExpectedPayoff
		switch {
		case childValue <= alpha:
			rowDomination[i] = true
		case childValue >= beta:
			colDomination[j] = true
		default:
			payoffMatrix.Set(i, j, childValue)
			if childValue < rowMins[i] {
				rowMins[i] = childValue
			}
			if childValue > colMaxes[j] {
				colMaxes[j] = childValue
			}
			if j == n-1 && rowMins[i] > alpha {
				alpha = rowMins[i]
			}
			if i == m-1 && colMaxes[j] < beta {
				beta = colMaxes[j]
			}
		}
	}

	for d := 0; d < minInt(m, n); d++ {
		for j := d; j < n; j++ {
			exploreChild(d, j)
		}
		for i := d + 1; i < m; i++ {
			exploreChild(i, d)
		}
	}

	if allTrue(rowDomination) {
		return mathx.ZeroSumNashEq{ExpectedPayoff: alpha}
	}
	if allTrue(colDomination) {
		return mathx.ZeroSumNashEq{ExpectedPayoff: beta}
	}

	nashEq := mathx.CalcNashEq(payoffMatrix, rowDomination, colDomination, nashAddedConstant)

	sortActionOrderByStrategy(state.Max.ActionOrder, nashEq.MaxPlayerStrategy)
	sortActionOrderByStrategy(state.Min.ActionOrder, nashEq.MinPlayerStrategy)

	return nashEq
}

// terminalPayoff is the leaf heuristic: fraction of remaining team HP
// for Max minus the same for Min, averaged over six team slots.
func terminalPayoff(state *State) float64 {
	maxHPFrac := 0.0
	for i := 6; i < 12; i++ {
		p := &state.Pokemon[i]
		maxHPFrac += float64(p.CurrentHP) / float64(p.MaxHP)
	}
	minHPFrac := 0.0
	for i := 0; i < 6; i++ {
		p := &state.Pokemon[i]
		minHPFrac += float64(p.CurrentHP) / float64(p.MaxHP)
	}
	return (maxHPFrac - minHPFrac) / 6.0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

// sortActionOrderByStrategy reorders order by descending strategy
// probability, exploiting iterative deepening: the next, tighter-
// windowed visit to this state explores the likeliest actions first.
// strategy is indexed by the current permutation position (matching
// how the payoff matrix was built), not by raw action index, so the
// reorder carries each position's raw action along with its
// probability rather than indexing strategy by the raw action itself.
// strategy is permuted in place alongside order, so afterwards
// strategy[k] is still the probability of the raw action order[k].
func sortActionOrderByStrategy(order []int, strategy []float64) {
	positions := make([]int, len(order))
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		return strategy[positions[a]] > strategy[positions[b]]
	})
	reordered := make([]int, len(order))
	reorderedStrategy := make([]float64, len(strategy))
	for k, pos := range positions {
		reordered[k] = order[pos]
		reorderedStrategy[k] = strategy[pos]
	}
	copy(order, reordered)
	copy(strategy, reorderedStrategy)
}

// RunBattle drives a full battle between two TeamBuilds to completion,
// returning the final equilibrium's expected payoff from the
// maximizer's perspective (see spec's run_battle contract).
func RunBattle(cat *catalog.Catalog, log zerolog.Logger, minimizer, maximizer *TeamBuild, rng *rand.Rand) float64 {
	var pokemon [12]Pokemon
	for i, pb := range minimizer.Members {
		pokemon[i] = newPokemonFromBuild(cat, &pb)
	}
	for i, pb := range maximizer.Members {
		pokemon[6+i] = newPokemonFromBuild(cat, &pb)
	}

	state := NewState(cat, log, pokemon, WeatherNone, TerrainNormal)
	nashEq := SmabSearch(state, -1.0, 1.0, searchDepth, rng)

	for len(state.Max.Actions) > 0 && len(state.Min.Actions) > 0 {
		maxChoice := rngutil.ChooseWeightedIndex(nashEq.MaxPlayerStrategy, rng)
		minChoice := rngutil.ChooseWeightedIndex(nashEq.MinPlayerStrategy, rng)
		state = state.RemoveChild(maxChoice, minChoice, rng)
		nashEq = SmabSearch(state, -1.0, 1.0, searchDepth, rng)
	}

	return nashEq.ExpectedPayoff
}
