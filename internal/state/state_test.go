package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

func TestBattleIsOver(t *testing.T) {
	s := testutil.NewState()
	assert.Equal(t, 0, state.BattleIsOver(&s), "expected ongoing battle")

	s.SideTwo.Creatures[0].HP = 0
	assert.Equal(t, 1, state.BattleIsOver(&s), "expected side one win")

	s.SideOne.Creatures[0].HP = 0
	assert.Equal(t, 0, state.BattleIsOver(&s), "expected draw/ongoing when both sides are out")
}

func TestClampBoost(t *testing.T) {
	cases := map[int]int{7: 6, -7: -6, 3: 3, 0: 0, 6: 6, -6: -6}
	for in, want := range cases {
		assert.Equal(t, want, state.ClampBoost(in))
	}
}

func TestClampHP(t *testing.T) {
	assert.Equal(t, 0, state.ClampHP(-5, 100))
	assert.Equal(t, 100, state.ClampHP(150, 100))
	assert.Equal(t, 42, state.ClampHP(42, 100))
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, state.SideTwo, state.Opponent(state.SideOne))
	assert.Equal(t, state.SideOne, state.Opponent(state.SideTwo))
}

func TestAliveCount(t *testing.T) {
	s := testutil.NewState()
	assert.Equal(t, 1, s.SideOne.AliveCount(), "fresh fixture should have exactly 1 living creature per side")

	s.SideOne.Creatures[1].HP = 50
	assert.Equal(t, 2, s.SideOne.AliveCount(), "after reviving a bench slot")
}

func TestNewSessionCarriesStateAndAUniqueID(t *testing.T) {
	s := testutil.NewState()
	sess1 := state.NewSession(s)
	sess2 := state.NewSession(s)

	assert.Equal(t, s, sess1.State)
	assert.NotEqual(t, sess1.ID, sess2.ID, "each session should get a distinct correlation ID")
}
