// Package generate implements the probabilistic instruction generator
// (component F): the 13-step per-move pipeline (4.4) plus the move-pair
// half-turn driver, grounded on ships/formation_combat.go's two-phase
// ExecuteFormationBattleRound for the attacker-then-defender shape, and
// on generate_instructions.rs for the pipeline's exact stage order.
package generate

import (
	"math"

	"github.com/nicoberrocal/battlecore/internal/config"
	"github.com/nicoberrocal/battlecore/internal/delta"
)

// Branch is one StateInstructions record: a probability (relative to a
// fixed input) and the ordered delta list that produces it. Frozen marks
// a branch that exited the pipeline early and must not be processed by
// any downstream transformer.
type Branch struct {
	Probability float64
	Deltas      delta.List
	Frozen      bool
}

// cloneDeltas returns a fresh slice so branches never alias each other's
// backing arrays, per 3.3's "delta lists are never shared across
// branches".
func cloneDeltas(d delta.List) delta.List {
	out := make(delta.List, len(d))
	copy(out, d)
	return out
}

// CombineDuplicateInstructions is step 13: branches whose delta lists are
// deeply equal have their probabilities summed into one branch. The merged
// branch is Frozen only if every branch merged into it was.
func CombineDuplicateInstructions(branches []Branch) []Branch {
	index := map[string]int{}
	var out []Branch
	for _, b := range branches {
		k := signature(b.Deltas)
		if i, ok := index[k]; ok {
			out[i].Probability += b.Probability
			out[i].Frozen = out[i].Frozen && b.Frozen
			continue
		}
		index[k] = len(out)
		out = append(out, b)
	}
	return out
}

// signature renders a delta list into a comparable string key. It is
// intentionally crude (fmt-based) since deltas are plain value structs;
// correctness, not speed, matters for deduplication.
func signature(d delta.List) string {
	s := ""
	for _, item := range d {
		s += deltaTag(item)
	}
	return s
}

// SumProbability adds up every branch's probability, used by callers
// that assert the 1.0-within-tolerance invariant (3.2.8 / 8.2).
func SumProbability(branches []Branch) float64 {
	total := 0.0
	for _, b := range branches {
		total += b.Probability
	}
	return total
}

// ProbabilitiesBalanced reports whether branches sum to want within the
// configured tolerance.
func ProbabilitiesBalanced(branches []Branch, want float64) bool {
	return math.Abs(SumProbability(branches)-want) <= config.ProbabilityTolerance
}

