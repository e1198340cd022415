// Package testutil builds small, consistent BattleState fixtures shared
// across package tests, so each _test.go file doesn't re-derive a valid
// six-creature-per-side state from scratch.
package testutil

import "github.com/nicoberrocal/battlecore/internal/state"

// NewCreature builds a full-HP, unstatused, move-stocked creature at the
// given HP (also used as max HP).
func NewCreature(id string, hp int) state.Creature {
	return state.Creature{
		ID: id, Type1: "normal", HP: hp, MaxHP: hp, Level: 100,
		Attack: 100, Defense: 100, SpecialAttack: 100, SpecialDefense: 100, Speed: 100,
		Boosts:    state.NewBoosts(),
		Status:    state.StatusNone,
		Volatiles: map[state.VolatileStatus]bool{},
		Ability:   "none", Item: "none",
		Moves: [4]state.Move{
			{ID: "tackle", PP: 35},
			{ID: "thunder-wave", PP: 20},
			{ID: "substitute", PP: 10},
			{ID: "splash", PP: 40},
		},
		Nature: "hardy",
	}
}

// NewState builds a two-side, six-creature-per-side battle state with
// every non-active slot fainted, so AliveCount()==1 per side unless a
// test overrides it.
func NewState() state.BattleState {
	var s state.BattleState
	for i := 0; i < 6; i++ {
		if i == 0 {
			s.SideOne.Creatures[i] = NewCreature("side-one-lead", 100)
			s.SideTwo.Creatures[i] = NewCreature("side-two-lead", 100)
		} else {
			s.SideOne.Creatures[i] = NewCreature("s1-bench", 0)
			s.SideTwo.Creatures[i] = NewCreature("s2-bench", 0)
		}
	}
	s.SideOne.Conditions = state.SideConditions{}
	s.SideTwo.Conditions = state.SideConditions{}
	s.Weather = state.Weather{Kind: state.WeatherNone}
	s.Terrain = state.Terrain{Kind: state.TerrainNone}
	return s
}
