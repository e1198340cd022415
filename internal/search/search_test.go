package search_test

import (
	"reflect"
	"testing"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/search"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

func TestPickSafestChoosesLargestRowMinimum(t *testing.T) {
	matrix := []float64{-10, 5, 0, 3}
	row, val := search.PickSafest(matrix, 2, 2)
	if row != 1 {
		t.Fatalf("expected row 1 to be safest, got row %d", row)
	}
	if val != 0.0 {
		t.Fatalf("expected safest value 0.0, got %.4f", val)
	}
}

func smallOptions(catalog *tables.Catalog) []choice.Choice {
	tackle, _ := catalog.Move("tackle")
	splash, _ := catalog.Move("splash")
	return []choice.Choice{choice.NewMoveChoice(0, tackle), choice.NewMoveChoice(0, splash)}
}

func TestExpectiminimaxIsReversible(t *testing.T) {
	s := testutil.NewState()
	before := deepCopyState(&s)

	catalog := tables.Default()
	opts := smallOptions(catalog)
	se := search.New(false)
	se.Expectiminimax(&s, 1, opts, opts)

	if !reflect.DeepEqual(before, &s) {
		t.Fatal("state must be restored bitwise after Expectiminimax returns")
	}
}

func TestExpectiminimaxTerminalStateShortCircuits(t *testing.T) {
	s := testutil.NewState()
	s.SideTwo.Creatures[0].HP = 0

	catalog := tables.Default()
	opts := smallOptions(catalog)
	se := search.New(false)
	result := se.Expectiminimax(&s, 3, opts, opts)

	for _, v := range result {
		if v <= 0 {
			t.Fatalf("a battle already won by side one should score positive at every cell, got %.4f", v)
		}
	}
}

func TestAlphaBetaPruningMatchesUnprunedSafestChoice(t *testing.T) {
	catalog := tables.Default()
	opts := smallOptions(catalog)

	s1 := testutil.NewState()
	unpruned := search.New(false)
	matrixUnpruned := unpruned.Expectiminimax(&s1, 1, opts, opts)
	rowUnpruned, valUnpruned := search.PickSafest(matrixUnpruned, len(opts), len(opts))

	s2 := testutil.NewState()
	pruned := search.New(true)
	matrixPruned := pruned.Expectiminimax(&s2, 1, opts, opts)
	rowPruned, valPruned := search.PickSafest(matrixPruned, len(opts), len(opts))

	if rowUnpruned != rowPruned {
		t.Fatalf("pruned and unpruned search should pick the same safest row: unpruned=%d pruned=%d", rowUnpruned, rowPruned)
	}
	if diff := valUnpruned - valPruned; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("pruned and unpruned search should agree on the safest value: unpruned=%.4f pruned=%.4f", valUnpruned, valPruned)
	}
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
