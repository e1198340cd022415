package delta_test

import (
	"reflect"
	"testing"

	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

// assertReversible applies then reverses list and checks the state
// matches a deep copy taken before Apply, the core reversibility
// contract every pipeline stage depends on.
func assertReversible(t *testing.T, s *state.BattleState, list delta.List) {
	t.Helper()
	before := deepCopy(s)
	delta.ApplyAll(s, list)
	delta.ReverseAll(s, list)
	if !reflect.DeepEqual(before, s) {
		t.Fatalf("state not restored after apply+reverse:\nbefore=%+v\nafter=%+v", before, s)
	}
}

func deepCopy(s *state.BattleState) *state.BattleState {
	cp := *s
	for i := range cp.SideOne.Creatures {
		cp.SideOne.Creatures[i] = copyCreature(s.SideOne.Creatures[i])
	}
	for i := range cp.SideTwo.Creatures {
		cp.SideTwo.Creatures[i] = copyCreature(s.SideTwo.Creatures[i])
	}
	cp.SideOne.Conditions = copyConditions(s.SideOne.Conditions)
	cp.SideTwo.Conditions = copyConditions(s.SideTwo.Conditions)
	return &cp
}

func copyCreature(c state.Creature) state.Creature {
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

func copyConditions(c state.SideConditions) state.SideConditions {
	cp := state.SideConditions{}
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

func TestDamageReversible(t *testing.T) {
	s := testutil.NewState()
	assertReversible(t, &s, delta.List{delta.Damage{Side: state.SideOne, Amount: 40}})
}

func TestDamageClampsAndClearsOnFaint(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[0].Status = state.StatusBurn
	d := delta.Damage{Side: state.SideOne, Amount: 1000}
	d.Apply(&s)
	if s.SideOne.Creatures[0].HP != 0 {
		t.Fatalf("HP should clamp to 0, got %d", s.SideOne.Creatures[0].HP)
	}
	if s.SideOne.Creatures[0].Status != state.StatusNone {
		t.Fatalf("status should clear on faint, got %v", s.SideOne.Creatures[0].Status)
	}
}

func TestBoostReversibleAndClamped(t *testing.T) {
	s := testutil.NewState()
	assertReversible(t, &s, delta.List{delta.Boost{Side: state.SideOne, Stat: state.StatAttack, Delta: 3}})

	d := delta.Boost{Side: state.SideOne, Stat: state.StatSpeed, Delta: 10}
	d.Apply(&s)
	if got := s.SideOne.Active().Boosts[state.StatSpeed]; got != 6 {
		t.Fatalf("boost should clamp at 6, got %d", got)
	}
}

func TestChangeWeatherReversible(t *testing.T) {
	s := testutil.NewState()
	assertReversible(t, &s, delta.List{
		delta.ChangeWeather{NewKind: state.WeatherRain, NewTurns: 5, PreviousKind: state.WeatherNone, PreviousTurns: 0},
	})
}

func TestChangeSideConditionReversible(t *testing.T) {
	s := testutil.NewState()
	assertReversible(t, &s, delta.List{
		delta.ChangeSideCondition{Side: state.SideOne, Condition: state.ConditionSpikes, Delta: 1},
	})
}

func TestSwitchReversibleWhenNoVolatiles(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[1].HP = 50
	assertReversible(t, &s, delta.List{
		&delta.Switch{Side: state.SideOne, PreviousIndex: 0, NextIndex: 1},
	})
}

func TestSwitchReversibleWithVolatilesAndSubstitute(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[1].HP = 50
	s.SideOne.Creatures[0].Volatiles[state.VolatileConfusion] = true
	s.SideOne.Creatures[0].SubstituteHP = 25
	assertReversible(t, &s, delta.List{
		&delta.Switch{Side: state.SideOne, PreviousIndex: 0, NextIndex: 1},
	})
}

func TestSwitchClearsVolatilesAndSubstituteOnApply(t *testing.T) {
	s := testutil.NewState()
	s.SideOne.Creatures[1].HP = 50
	s.SideOne.Creatures[0].Volatiles[state.VolatileConfusion] = true
	s.SideOne.Creatures[0].SubstituteHP = 25

	sw := &delta.Switch{Side: state.SideOne, PreviousIndex: 0, NextIndex: 1}
	sw.Apply(&s)
	if s.SideOne.Creatures[0].Volatiles[state.VolatileConfusion] {
		t.Fatalf("volatiles should be cleared on switch-out")
	}
	if s.SideOne.Creatures[0].SubstituteHP != 0 {
		t.Fatalf("substitute HP should be cleared on switch-out, got %d", s.SideOne.Creatures[0].SubstituteHP)
	}

	sw.Reverse(&s)
	if !s.SideOne.Creatures[0].Volatiles[state.VolatileConfusion] {
		t.Fatalf("volatiles should be restored after reverse")
	}
	if s.SideOne.Creatures[0].SubstituteHP != 25 {
		t.Fatalf("substitute HP should be restored after reverse, got %d", s.SideOne.Creatures[0].SubstituteHP)
	}
}

func TestMultiDeltaListReversible(t *testing.T) {
	s := testutil.NewState()
	list := delta.List{
		delta.Damage{Side: state.SideTwo, Amount: 20},
		delta.Boost{Side: state.SideOne, Stat: state.StatAttack, Delta: 1},
		delta.ApplyVolatileStatus{Side: state.SideOne, Status: state.VolatileConfusion},
		delta.ChangeSideCondition{Side: state.SideTwo, Condition: state.ConditionStealthRock, Delta: 1},
	}
	assertReversible(t, &s, list)
}
