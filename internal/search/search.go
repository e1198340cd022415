// Package search implements the adversarial search (component H):
// expectiminimax over F's chance nodes, a safest-choice (maximin)
// selector, alpha-beta pruning, and iterative deepening with move
// reordering — grounded on search.rs's literal algorithm and on
// janpfeifer-hiveGo's alphabeta.go for the Go idiom (struct-based
// searcher, a Stats accumulator, and a time-budgeted iterative-deepening
// loop).
package search

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nicoberrocal/battlecore/internal/battleerr"
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/config"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/evaluate"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/logging"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// Stats accumulates counters over one search call, the same diagnostic
// role ships/battle_report.go's persisted documents play in the teacher,
// but kept in memory since this engine has no persistence boundary.
type Stats struct {
	Nodes     int
	LeafEvals int
	Prunes    int
}

// Searcher holds the collaborators a search needs: the instruction
// generator, the static tables it evaluates against, and whether to
// alpha-beta prune.
type Searcher struct {
	Generator *generate.Generator
	Catalog   *tables.Catalog
	ABPrune   bool

	Stats Stats

	log *zap.Logger
}

// New builds a Searcher with the default generator/catalog.
func New(abPrune bool) *Searcher {
	return &Searcher{
		Generator: generate.New(),
		Catalog:   tables.Default(),
		ABPrune:   abPrune,
		log:       logging.L(),
	}
}

// Expectiminimax returns a |s1|*|s2| row-major score matrix (4.6.1).
// state is mutated and restored during the call; its final value equals
// its initial value bitwise.
func (se *Searcher) Expectiminimax(s *state.BattleState, depth int, s1opts, s2opts []choice.Choice) []float64 {
	se.Stats.Nodes++

	result := make([]float64, len(s1opts)*len(s2opts))

	if over := state.BattleIsOver(s); over != 0 {
		val := evaluate.Evaluate(s, se.Catalog) + float64(over)*config.WinBonus*float64(depth)
		for i := range result {
			result[i] = val
		}
		return result
	}

	for i, c1 := range s1opts {
		rowMax := math.Inf(-1) // largest value found so far in this row; pruning reads result via shouldPrune, not this
		for j, c2 := range s2opts {
			idx := i*len(s2opts) + j

			if se.ABPrune && se.shouldPrune(result, i, j, len(s2opts)) {
				result[idx] = math.NaN()
				se.Stats.Prunes++
				continue
			}

			val := se.chanceNode(s, depth, c1, c2)
			result[idx] = val
			if val > rowMax {
				rowMax = val
			}
		}
	}
	return result
}

// chanceNode asks the generator for branches of one move pair and
// accumulates their probability-weighted values, recursing through
// pick_safest at interior nodes (4.6.1).
func (se *Searcher) chanceNode(s *state.BattleState, depth int, c1, c2 choice.Choice) float64 {
	branches := se.Generator.GenerateInstructionsFromMovePair(s, c1, c2)

	acc := 0.0
	for _, b := range branches {
		delta.ApplyAll(s, b.Deltas)

		var val float64
		if over := state.BattleIsOver(s); over != 0 {
			val = evaluate.Evaluate(s, se.Catalog) + float64(over)*config.WinBonus*float64(depth)
			se.Stats.LeafEvals++
		} else if depth == 0 {
			val = evaluate.Evaluate(s, se.Catalog)
			se.Stats.LeafEvals++
		} else {
			s1n := se.Generator.GetAllOptions(s, state.SideOne)
			s2n := se.Generator.GetAllOptions(s, state.SideTwo)
			sub := se.Expectiminimax(s, depth-1, s1n, s2n)
			_, val = PickSafest(sub, len(s1n), len(s2n))
		}

		acc += (b.Probability / 100.0) * val
		delta.ReverseAll(s, b.Deltas)
	}
	return acc
}

// shouldPrune implements a coarse alpha-beta test: once the smallest
// completed entry in row i is no better than the best minimum already
// guaranteed by a prior row, remaining columns in this row cannot make it
// the winning row and are skipped. Skipped entries are marked with a NaN sentinel per
// 4.6.1, and PickSafest ignores them when taking each row's minimum.
func (se *Searcher) shouldPrune(result []float64, row, col, numCols int) bool {
	if col == 0 {
		return false
	}
	rowStart := row * numCols
	rowMin := math.Inf(1)
	for k := 0; k < col; k++ {
		v := result[rowStart+k]
		if !math.IsNaN(v) && v < rowMin {
			rowMin = v
		}
	}
	best := math.Inf(-1)
	for r := 0; r < row; r++ {
		m := rowMinOf(result, r, numCols)
		if !math.IsNaN(m) && m > best {
			best = m
		}
	}
	return !math.IsInf(best, -1) && rowMin <= best
}

func rowMinOf(result []float64, row, numCols int) float64 {
	min := math.Inf(1)
	for k := 0; k < numCols; k++ {
		v := result[row*numCols+k]
		if !math.IsNaN(v) && v < min {
			min = v
		}
	}
	return min
}

// PickSafest implements 4.6.2: the safest choice for side one is the row
// whose minimum (over side two's responses, ignoring NaN-pruned entries)
// is largest.
func PickSafest(scores []float64, numRows, numCols int) (int, float64) {
	bestRow := 0
	bestVal := math.Inf(-1)
	for r := 0; r < numRows; r++ {
		m := rowMinOf(scores, r, numCols)
		if m > bestVal {
			bestVal = m
			bestRow = r
		}
	}
	return bestRow, bestVal
}

// IterativeDeepeningResult is the last fully completed depth's matrix and
// the move ordering used to produce it (4.6.3).
type IterativeDeepeningResult struct {
	Depth      int
	Matrix     []float64
	S1Options  []choice.Choice
	S2Options  []choice.Choice
	SafestRow  int
	SafestVal  float64
}

// IterativeDeepen runs Expectiminimax at increasing depths, reordering
// side one's options by descending worst-case row-min between passes,
// until the time budget is exhausted; it returns the last depth that
// completed fully.
func (se *Searcher) IterativeDeepen(s *state.BattleState, s1opts, s2opts []choice.Choice, budget time.Duration) IterativeDeepeningResult {
	deadline := time.Now().Add(budget)
	var last IterativeDeepeningResult

	for depth := 1; ; depth++ {
		if depth > 1 && time.Now().After(deadline) {
			break
		}
		start := time.Now()
		matrix := se.Expectiminimax(s, depth, s1opts, s2opts)
		if time.Now().After(deadline) && depth > 1 {
			break
		}
		row, val := PickSafest(matrix, len(s1opts), len(s2opts))
		last = IterativeDeepeningResult{
			Depth: depth, Matrix: matrix, S1Options: s1opts, S2Options: s2opts,
			SafestRow: row, SafestVal: val,
		}
		se.log.Debug("iterative deepening pass",
			zap.Int("depth", depth),
			zap.Int("nodes", se.Stats.Nodes),
			zap.Int("prunes", se.Stats.Prunes),
			zap.Duration("elapsed", time.Since(start)),
		)

		s1opts = reorderByRowMin(s1opts, matrix, len(s2opts))

		if time.Now().After(deadline) {
			break
		}
	}
	return last
}

// reorderByRowMin sorts s1 options by descending row-min so the next
// iterative-deepening pass explores the best-looking moves first,
// improving alpha-beta efficacy (4.6.3).
func reorderByRowMin(opts []choice.Choice, matrix []float64, numCols int) []choice.Choice {
	type scored struct {
		c   choice.Choice
		min float64
	}
	rows := make([]scored, len(opts))
	for i, c := range opts {
		rows[i] = scored{c: c, min: rowMinOf(matrix, i, numCols)}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].min > rows[j].min })
	out := make([]choice.Choice, len(rows))
	for i, r := range rows {
		out[i] = r.c
	}
	return out
}

// CheckInvariantOrPanic panics with an InvariantViolation error when cond
// is false (spec §7). It is the only place that raises that error kind;
// nothing logs it.
func CheckInvariantOrPanic(cond bool, format string, args ...any) {
	if !cond {
		panic(battleerr.InvariantViolation(format, args...))
	}
}
