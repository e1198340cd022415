package evaluate_test

import (
	"testing"

	"github.com/nicoberrocal/battlecore/internal/evaluate"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

func TestEvaluateSymmetry(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].HP = 60
	s.SideTwo.Conditions[state.ConditionSpikes] = 2
	catalog := tables.Default()

	direct := evaluate.Evaluate(&s, catalog)

	swapped := s
	swapped.SideOne, swapped.SideTwo = s.SideTwo, s.SideOne
	reversed := evaluate.Evaluate(&swapped, catalog)

	if direct != -reversed {
		t.Fatalf("evaluate should be antisymmetric under side swap: direct=%.4f reversed=%.4f", direct, reversed)
	}
}

func TestEvaluateFreshStateFavorsNeitherSide(t *testing.T) {
	s := testutil.NewState()
	catalog := tables.Default()
	if got := evaluate.Evaluate(&s, catalog); got != 0 {
		t.Fatalf("identical fresh sides should evaluate to 0, got %.4f", got)
	}
}

func TestEvaluateLowerHPIsWorse(t *testing.T) {
	s := testutil.NewState()
	catalog := tables.Default()
	full := evaluate.Evaluate(&s, catalog)

	s.SideOne.Creatures[0].HP = 10
	hurt := evaluate.Evaluate(&s, catalog)

	if hurt >= full {
		t.Fatalf("lower HP should score lower: full=%.4f hurt=%.4f", full, hurt)
	}
}

func TestEvaluateGutsFlatBurnPenalty(t *testing.T) {
	s := testutil.NewState()
	catalog := tables.Default()
	baseline := evaluate.Evaluate(&s, catalog)

	s.SideOne.Creatures[0].Status = state.StatusBurn
	s.SideOne.Creatures[0].Ability = "guts"
	withGutsBurn := evaluate.Evaluate(&s, catalog)

	// with guts the burn penalty is a flat -2 whatever the moveset, so it
	// should be the entire swing versus baseline.
	if diff := baseline - withGutsBurn; diff < 1.9 || diff > 2.1 {
		t.Fatalf("expected guts' flat burn penalty of 2.0, got diff %.4f", diff)
	}
}

func TestEvaluateStealthRockScalesWithAliveCount(t *testing.T) {
	s := testutil.NewState()
	catalog := tables.Default()
	oneAliveClear := evaluate.Evaluate(&s, catalog)
	s.SideOne.Conditions[state.ConditionStealthRock] = 1
	oneAlive := evaluate.Evaluate(&s, catalog)

	s.SideOne.Creatures[1].HP = 50
	s.SideOne.Creatures[1].MaxHP = 100
	twoAlive := evaluate.Evaluate(&s, catalog)
	delete(s.SideOne.Conditions, state.ConditionStealthRock)
	twoAliveClear := evaluate.Evaluate(&s, catalog)

	// a revived creature adds its own alive and HP score, so compare the
	// stealth-rock penalty itself at each alive count.
	onePenalty := oneAliveClear - oneAlive
	twoPenalty := twoAliveClear - twoAlive
	if twoPenalty <= onePenalty {
		t.Fatalf("stealth rock's penalty should scale more negative with more alive creatures: one=%.4f two=%.4f", onePenalty, twoPenalty)
	}
}

func TestEvaluateBoostImprovesScore(t *testing.T) {
	s := testutil.NewState()
	catalog := tables.Default()
	before := evaluate.Evaluate(&s, catalog)

	s.SideOne.Creatures[0].Boosts[state.StatAttack] = 2
	after := evaluate.Evaluate(&s, catalog)

	if after <= before {
		t.Fatalf("positive attack boost should raise side one's score: before=%.4f after=%.4f", before, after)
	}
}
