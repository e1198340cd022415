// Package mcts implements an optional Monte Carlo tree search (component
// I) sharing the same instruction-generator interface as the expectiminimax
// searcher, grounded on brensch-aisnake's mcts.go for the
// select/expand/simulate/backpropagate node shape and UCT formula, adapted
// from a multi-snake free-for-all to a two-sided adversarial search with
// probabilistic branch sampling standing in for the dice roll a rollout
// would otherwise need.
package mcts

import (
	"math"
	"math/rand"
	"time"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/config"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/evaluate"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// Node is one position in the search tree: the move pair that led here,
// the branch taken to reach it (for apply/reverse bookkeeping), and
// aggregate visit/score statistics in the UCT convention (score is
// accumulated from side one's perspective).
type Node struct {
	Parent   *Node
	Children []*Node

	// Unexpanded holds move pairs not yet turned into children; takenOptions
	// is the parallel slice of move pairs already corresponding to Children,
	// indexed the same way.
	Unexpanded   []pairOption
	takenOptions []pairOption

	Visits int
	Score  float64
}

type pairOption struct {
	one, two choice.Choice
}

// Searcher drives the tree against a Generator/Catalog pair, matching
// the collaborator shape internal/search.Searcher uses so callers can
// pick either algorithm behind the same fields.
type Searcher struct {
	Generator   *generate.Generator
	Catalog     *tables.Catalog
	Exploration float64
	Rand        *rand.Rand
}

// New builds a Searcher with the default generator/catalog and the
// configured exploration constant. Rand is unseeded-deterministic
// (seed 1) so repeated runs against the same state are reproducible;
// callers that want true randomness can replace Searcher.Rand.
func New() *Searcher {
	return &Searcher{
		Generator:   generate.New(),
		Catalog:     tables.Default(),
		Exploration: config.MCTSExplorationConstant,
		Rand:        rand.New(rand.NewSource(1)),
	}
}

// Search runs simulations until budget elapses and returns the root's
// most-visited immediate child's move pair for side one, along with that
// child's mean score. state is restored to its original value on return.
func (se *Searcher) Search(s *state.BattleState, s1opts, s2opts []choice.Choice, budget time.Duration) (choice.Choice, float64) {
	root := &Node{Unexpanded: cartesian(s1opts, s2opts)}
	deadline := time.Now().Add(budget)

	for time.Now().Before(deadline) {
		se.simulate(s, root, 0)
	}

	best := mostVisited(root)
	if best == nil {
		return s1opts[0], evaluate.Evaluate(s, se.Catalog)
	}
	return best.optionOne, best.Score / math.Max(1, float64(best.Visits))
}

type childRef struct {
	*Node
	optionOne choice.Choice
}

func mostVisited(root *Node) *childRef {
	var best *childRef
	for i, child := range root.Children {
		if best == nil || child.Visits > best.Visits {
			opt := root.takenOptions[i]
			best = &childRef{Node: child, optionOne: opt.one}
		}
	}
	return best
}

func cartesian(s1, s2 []choice.Choice) []pairOption {
	out := make([]pairOption, 0, len(s1)*len(s2))
	for _, a := range s1 {
		for _, b := range s2 {
			out = append(out, pairOption{one: a, two: b})
		}
	}
	return out
}

// simulate performs one select-expand-rollout-backpropagate pass,
// mutating s for the duration of the recursion and restoring it fully
// before returning, matching the reversible-delta discipline the rest of
// the engine follows.
func (se *Searcher) simulate(s *state.BattleState, node *Node, depth int) float64 {
	if state.BattleIsOver(s) != 0 || depth > 40 {
		val := evaluate.Evaluate(s, se.Catalog)
		node.Visits++
		node.Score += val
		return val
	}

	// a child created by expansion gets its move pairs on its first visit.
	if len(node.Unexpanded) == 0 && len(node.Children) == 0 {
		node.Unexpanded = cartesian(
			se.Generator.GetAllOptions(s, state.SideOne),
			se.Generator.GetAllOptions(s, state.SideTwo),
		)
		if len(node.Unexpanded) == 0 {
			val := evaluate.Evaluate(s, se.Catalog)
			node.Visits++
			node.Score += val
			return val
		}
	}

	if len(node.Unexpanded) > 0 {
		idx := se.Rand.Intn(len(node.Unexpanded))
		opt := node.Unexpanded[idx]
		node.Unexpanded[idx] = node.Unexpanded[len(node.Unexpanded)-1]
		node.Unexpanded = node.Unexpanded[:len(node.Unexpanded)-1]

		branches := se.Generator.GenerateInstructionsFromMovePair(s, opt.one, opt.two)
		branch := se.sampleBranch(branches)

		delta.ApplyAll(s, branch.Deltas)
		val := se.rollout(s)
		delta.ReverseAll(s, branch.Deltas)

		child := &Node{Visits: 1, Score: val}
		node.Children = append(node.Children, child)
		node.takenOptions = append(node.takenOptions, opt)
		node.Visits++
		node.Score += val
		return val
	}

	child, opt := se.selectChild(node)
	branches := se.Generator.GenerateInstructionsFromMovePair(s, opt.one, opt.two)
	branch := se.sampleBranch(branches)

	delta.ApplyAll(s, branch.Deltas)
	val := se.simulate(s, child, depth+1)
	delta.ReverseAll(s, branch.Deltas)

	node.Visits++
	node.Score += val
	return val
}

// rollout evaluates the current position directly rather than playing
// out a full random game: the static evaluator already encodes the same
// per-side heuristics a longer rollout would average toward, and the
// engine has no lightweight random-legal-move playout policy defined.
func (se *Searcher) rollout(s *state.BattleState) float64 {
	return evaluate.Evaluate(s, se.Catalog)
}

func (se *Searcher) sampleBranch(branches []generate.Branch) generate.Branch {
	if len(branches) == 1 {
		return branches[0]
	}
	r := se.Rand.Float64() * 100.0
	acc := 0.0
	for _, b := range branches {
		acc += b.Probability
		if r <= acc {
			return b
		}
	}
	return branches[len(branches)-1]
}

// selectChild picks the child maximizing UCT (exploitation + exploration),
// per aisnake's Node.UCT.
func (se *Searcher) selectChild(node *Node) (*Node, pairOption) {
	bestIdx := 0
	bestUCT := math.Inf(-1)
	for i, child := range node.Children {
		uct := child.Score/float64(child.Visits) +
			se.Exploration*math.Sqrt(math.Log(float64(node.Visits))/float64(child.Visits))
		if uct > bestUCT {
			bestUCT = uct
			bestIdx = i
		}
	}
	return node.Children[bestIdx], node.takenOptions[bestIdx]
}
