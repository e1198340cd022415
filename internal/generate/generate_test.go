package generate_test

import (
	"reflect"
	"testing"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

func newMoveChoice(m tables.MoveData) choice.Choice {
	return choice.NewMoveChoice(0, m)
}

func TestProbabilitiesBalancedAcrossPipeline(t *testing.T) {
	s := testutil.NewState()
	g := generate.New()
	catalog := g.Catalog

	tackle, _ := catalog.Move("tackle")
	atk := newMoveChoice(tackle)
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	if !generate.ProbabilitiesBalanced(branches, 100.0) {
		t.Fatalf("branch probabilities should sum to 100, got %.4f", generate.SumProbability(branches))
	}
}

func TestThunderWaveAccuracyBranches(t *testing.T) {
	s := testutil.NewState()
	g := generate.New()
	catalog := g.Catalog

	tw := mustMove(catalog, "thunder-wave")
	atk := newMoveChoice(tw)
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	if !generate.ProbabilitiesBalanced(branches, 100.0) {
		t.Fatalf("thunder-wave branches should sum to 100, got %.4f", generate.SumProbability(branches))
	}

	var hitProb, missProb float64
	for _, b := range branches {
		hasParalyze := false
		for _, d := range b.Deltas {
			if cs, ok := d.(delta.ChangeStatus); ok && cs.New == state.StatusParalyze {
				hasParalyze = true
			}
		}
		if hasParalyze {
			hitProb += b.Probability
		} else {
			missProb += b.Probability
		}
	}
	if hitProb < 89.9 || hitProb > 90.1 {
		t.Fatalf("expected ~90%% hit probability for thunder-wave, got %.2f", hitProb)
	}
	if missProb < 9.9 || missProb > 10.1 {
		t.Fatalf("expected ~10%% miss probability for thunder-wave, got %.2f", missProb)
	}
}

func TestSubstituteSucceedsAboveCost(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].HP = 26 // cost = maxhp/4 = 25; 26 > 25 succeeds
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "substitute"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	if len(branches) != 1 {
		t.Fatalf("expected exactly one branch for an always-hits status move, got %d", len(branches))
	}
	if len(branches[0].Deltas) == 0 {
		t.Fatalf("expected substitute to produce deltas (volatile + self-damage + substitute HP) when HP exceeds cost")
	}
}

func TestSubstituteFailsAtExactCost(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].HP = 25 // cost = 25; HP<=cost fails
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "substitute"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	if len(branches) != 1 {
		t.Fatalf("expected exactly one branch, got %d", len(branches))
	}
	if len(branches[0].Deltas) != 0 {
		t.Fatalf("expected substitute to fail (no deltas) when HP<=cost, got %+v", branches[0].Deltas)
	}
}

func TestStealthRockCapsAtOneLayer(t *testing.T) {
	s := testutil.NewState()
	s.SideTwo.Conditions[state.ConditionStealthRock] = 1
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "stone-axe"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	for _, b := range branches {
		for _, d := range b.Deltas {
			if cc, ok := d.(delta.ChangeSideCondition); ok && cc.Condition == state.ConditionStealthRock {
				t.Fatalf("stealth rock already at cap should never be incremented again, got delta %+v", cc)
			}
		}
	}
}

func TestStoneAxeSetsStealthRockWhenAbsent(t *testing.T) {
	s := testutil.NewState()
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "stone-axe"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	found := false
	for _, b := range branches {
		for _, d := range b.Deltas {
			if cc, ok := d.(delta.ChangeSideCondition); ok && cc.Condition == state.ConditionStealthRock && cc.Delta == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected at least one hit branch to lay stealth rock when absent")
	}
}

func TestCourtChangeSwapsHazardsBetweenSides(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Conditions[state.ConditionStealthRock] = 1
	s.SideTwo.Conditions[state.ConditionSpikes] = 2
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "court-change"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})

	var sawAttackerStealthRockRemoved, sawAttackerSpikesAdded bool
	var sawDefenderStealthRockAdded, sawDefenderSpikesRemoved bool
	for _, b := range branches {
		for _, d := range b.Deltas {
			cc, ok := d.(delta.ChangeSideCondition)
			if !ok {
				continue
			}
			switch {
			case cc.Side == state.SideOne && cc.Condition == state.ConditionStealthRock && cc.Delta == -1:
				sawAttackerStealthRockRemoved = true
			case cc.Side == state.SideOne && cc.Condition == state.ConditionSpikes && cc.Delta == 2:
				sawAttackerSpikesAdded = true
			case cc.Side == state.SideTwo && cc.Condition == state.ConditionStealthRock && cc.Delta == 1:
				sawDefenderStealthRockAdded = true
			case cc.Side == state.SideTwo && cc.Condition == state.ConditionSpikes && cc.Delta == -2:
				sawDefenderSpikesRemoved = true
			}
		}
	}
	if !sawAttackerStealthRockRemoved || !sawAttackerSpikesAdded || !sawDefenderStealthRockAdded || !sawDefenderSpikesRemoved {
		t.Fatalf("court-change should swap hazards between sides, got branches %+v", branches)
	}
}

func TestSleepStatusBranchProbabilities(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].Status = state.StatusSleep
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "tackle"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})

	var wakeProb, asleepProb float64
	for _, b := range branches {
		wokeUp := false
		for _, d := range b.Deltas {
			if cs, ok := d.(delta.ChangeStatus); ok && cs.Old == state.StatusSleep && cs.New == state.StatusNone {
				wokeUp = true
			}
		}
		if wokeUp {
			wakeProb += b.Probability
		} else {
			asleepProb += b.Probability
		}
	}
	if wakeProb < 32.9 || wakeProb > 33.1 {
		t.Fatalf("expected ~33%% wake probability, got %.2f", wakeProb)
	}
	if asleepProb < 66.9 || asleepProb > 67.1 {
		t.Fatalf("expected ~67%% stay-asleep probability, got %.2f", asleepProb)
	}
}

func TestSubstituteBlocksOpponentStatusMove(t *testing.T) {
	s := testutil.NewState()
	s.SideTwo.Creatures[0].Volatiles[state.VolatileSubstitute] = true
	g := generate.New()
	catalog := g.Catalog

	tw := mustMove(catalog, "thunder-wave")
	atk := newMoveChoice(tw)
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})
	for _, b := range branches {
		for _, d := range b.Deltas {
			if cs, ok := d.(delta.ChangeStatus); ok && cs.New == state.StatusParalyze {
				t.Fatalf("substitute should block an opponent-targeted status move, got delta %+v", cs)
			}
		}
	}
}

func TestParalysisFullMissProbability(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].Status = state.StatusParalyze
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "tackle"))
	def := newMoveChoice(mustMove(catalog, "splash"))

	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})

	var frozenProb float64
	for _, b := range branches {
		if b.Frozen && len(b.Deltas) == 0 {
			frozenProb += b.Probability
		}
	}
	if frozenProb < 24.9 || frozenProb > 25.1 {
		t.Fatalf("expected ~25%% fully-paralyzed no-op probability, got %.2f", frozenProb)
	}
}

// TestDragMoveStub documents the drag-move open question: a choice marked
// Drag but not first-to-move this half-turn short-circuits to the incoming
// branch unchanged, rather than generating a forced-switch branch.
func TestDragMoveStub(t *testing.T) {
	s := testutil.NewState()
	g := generate.New()
	catalog := g.Catalog

	atk := newMoveChoice(mustMove(catalog, "tackle"))
	atk.Drag = true
	atk.IsFirstMoveOfHalfTurn = false
	def := newMoveChoice(mustMove(catalog, "splash"))

	incoming := generate.Branch{Probability: 100.0}
	branches := g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, incoming)
	if len(branches) != 1 {
		t.Fatalf("expected exactly one unchanged branch, got %d", len(branches))
	}
	if branches[0].Probability != incoming.Probability {
		t.Fatalf("expected probability unchanged, got %.2f", branches[0].Probability)
	}
	if len(branches[0].Deltas) != 0 {
		t.Fatalf("expected no deltas applied by the drag short-circuit, got %+v", branches[0].Deltas)
	}
}

func TestGenerateInstructionsFromMoveIsReversible(t *testing.T) {
	s := testutil.NewState()
	before := deepCopyState(&s)

	g := generate.New()
	catalog := g.Catalog
	atk := newMoveChoice(mustMove(catalog, "tackle"))
	def := newMoveChoice(mustMove(catalog, "splash"))
	g.GenerateInstructionsFromMove(&s, state.SideOne, atk, def, generate.Branch{Probability: 100.0})

	if !reflect.DeepEqual(before, &s) {
		t.Fatalf("state must be restored after GenerateInstructionsFromMove returns")
	}
}

func TestGenerateInstructionsFromMovePairIsReversible(t *testing.T) {
	s := testutil.NewState()
	before := deepCopyState(&s)

	g := generate.New()
	catalog := g.Catalog
	c1 := newMoveChoice(mustMove(catalog, "tackle"))
	c2 := newMoveChoice(mustMove(catalog, "splash"))
	branches := g.GenerateInstructionsFromMovePair(&s, c1, c2)

	if !reflect.DeepEqual(before, &s) {
		t.Fatalf("state must be restored after GenerateInstructionsFromMovePair returns")
	}
	if !generate.ProbabilitiesBalanced(branches, 100.0) {
		t.Fatalf("move-pair branches should still sum to 100, got %.4f", generate.SumProbability(branches))
	}
}

func mustMove(catalog *tables.Catalog, id string) tables.MoveData {
	m, ok := catalog.Move(id)
	if !ok {
		panic("unknown move in test: " + id)
	}
	return m
}

func deepCopyState(s *state.BattleState) *state.BattleState {
	cp := *s
	for i := range cp.SideOne.Creatures {
		cp.SideOne.Creatures[i] = copyCreatureForTest(s.SideOne.Creatures[i])
	}
	for i := range cp.SideTwo.Creatures {
		cp.SideTwo.Creatures[i] = copyCreatureForTest(s.SideTwo.Creatures[i])
	}
	cp.SideOne.Conditions = copyConditionsForTest(s.SideOne.Conditions)
	cp.SideTwo.Conditions = copyConditionsForTest(s.SideTwo.Conditions)
	return &cp
}

func copyCreatureForTest(c state.Creature) state.Creature {
	cp := c
	cp.Boosts = map[state.Stat]int{}
	for k, v := range c.Boosts {
		cp.Boosts[k] = v
	}
	cp.Volatiles = map[state.VolatileStatus]bool{}
	for k, v := range c.Volatiles {
		cp.Volatiles[k] = v
	}
	return cp
}

func copyConditionsForTest(c state.SideConditions) state.SideConditions {
	cp := state.SideConditions{}
	for k, v := range c {
		cp[k] = v
	}
	return cp
}
