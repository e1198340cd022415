// Package delta implements the closed vocabulary of reversible state
// mutations (component C) and the apply_all/reverse_all contract that
// the instruction generator and search driver rely on to mutate and
// restore a shared BattleState without ever copying it.
package delta

import "github.com/nicoberrocal/battlecore/internal/state"

// Delta is one tagged, reversible mutation. Every concrete delta carries
// whatever prior value it needs to reverse itself without consulting any
// other source.
type Delta interface {
	Apply(s *state.BattleState)
	Reverse(s *state.BattleState)
}

// List is an ordered delta list owned by a single branch.
type List []Delta

// ApplyAll applies deltas in order.
func ApplyAll(s *state.BattleState, list List) {
	for _, d := range list {
		d.Apply(s)
	}
}

// ReverseAll reverses deltas in reverse order, restoring s bitwise to its
// pre-ApplyAll value.
func ReverseAll(s *state.BattleState, list List) {
	for i := len(list) - 1; i >= 0; i-- {
		list[i].Reverse(s)
	}
}

// Switch replaces a side's active creature. ClearedVolatiles and
// ClearedSubstituteHP record what the outgoing creature carried immediately
// before switch-out so Reverse can restore them exactly.
type Switch struct {
	Side                state.SideID
	PreviousIndex       int
	NextIndex           int
	ClearedVolatiles    map[state.VolatileStatus]bool
	ClearedSubstituteHP int
}

func (d *Switch) Apply(s *state.BattleState) {
	side := s.Side(d.Side)
	outgoing := &side.Creatures[d.PreviousIndex]
	d.ClearedVolatiles = outgoing.Volatiles
	d.ClearedSubstituteHP = outgoing.SubstituteHP
	// volatile statuses clear on switch-out, per 3.3 lifecycle.
	outgoing.Volatiles = map[state.VolatileStatus]bool{}
	outgoing.SubstituteHP = 0
	side.ActiveIndex = d.NextIndex
}

func (d *Switch) Reverse(s *state.BattleState) {
	side := s.Side(d.Side)
	side.ActiveIndex = d.PreviousIndex
	outgoing := &side.Creatures[d.PreviousIndex]
	outgoing.Volatiles = d.ClearedVolatiles
	outgoing.SubstituteHP = d.ClearedSubstituteHP
}

// Damage reduces the side's active creature's HP by amount (>=0).
type Damage struct {
	Side   state.SideID
	Amount int
}

func (d Damage) Apply(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.HP = state.ClampHP(c.HP-d.Amount, c.MaxHP)
	if c.HP == 0 {
		c.Status = state.StatusNone
		c.Volatiles = map[state.VolatileStatus]bool{}
	}
}

func (d Damage) Reverse(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.HP = state.ClampHP(c.HP+d.Amount, c.MaxHP)
}

// Heal changes the side's active creature's HP by amount; amount may be
// negative to represent self-damage (e.g. Substitute's cost).
type Heal struct {
	Side   state.SideID
	Amount int
}

func (d Heal) Apply(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.HP = state.ClampHP(c.HP+d.Amount, c.MaxHP)
}

func (d Heal) Reverse(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.HP = state.ClampHP(c.HP-d.Amount, c.MaxHP)
}

// Boost changes a stat stage on the side's active creature by delta,
// clamped into [-6,6].
type Boost struct {
	Side  state.SideID
	Stat  state.Stat
	Delta int
}

func (d Boost) Apply(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.Boosts[d.Stat] = state.ClampBoost(c.Boosts[d.Stat] + d.Delta)
}

func (d Boost) Reverse(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.Boosts[d.Stat] = state.ClampBoost(c.Boosts[d.Stat] - d.Delta)
}

// ChangeStatus transitions a creature's non-volatile status.
type ChangeStatus struct {
	Side          state.SideID
	PokemonIndex  int
	Old, New      state.Status
}

func (d ChangeStatus) Apply(s *state.BattleState) {
	s.Side(d.Side).Creatures[d.PokemonIndex].Status = d.New
}

func (d ChangeStatus) Reverse(s *state.BattleState) {
	s.Side(d.Side).Creatures[d.PokemonIndex].Status = d.Old
}

// ApplyVolatileStatus adds a volatile to the side's active creature.
type ApplyVolatileStatus struct {
	Side   state.SideID
	Status state.VolatileStatus
}

func (d ApplyVolatileStatus) Apply(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	if c.Volatiles == nil {
		c.Volatiles = map[state.VolatileStatus]bool{}
	}
	c.Volatiles[d.Status] = true
}

func (d ApplyVolatileStatus) Reverse(s *state.BattleState) {
	delete(s.Side(d.Side).Active().Volatiles, d.Status)
}

// RemoveVolatileStatus removes a volatile from the side's active creature.
type RemoveVolatileStatus struct {
	Side   state.SideID
	Status state.VolatileStatus
}

func (d RemoveVolatileStatus) Apply(s *state.BattleState) {
	delete(s.Side(d.Side).Active().Volatiles, d.Status)
}

func (d RemoveVolatileStatus) Reverse(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	if c.Volatiles == nil {
		c.Volatiles = map[state.VolatileStatus]bool{}
	}
	c.Volatiles[d.Status] = true
}

// ChangeSideCondition layers (or unlayers) a persistent side effect. A
// condition whose layer count reaches zero is removed from the map, so an
// absent key and zero layers are one and the same state.
type ChangeSideCondition struct {
	Side      state.SideID
	Condition state.SideCondition
	Delta     int
}

func (d ChangeSideCondition) Apply(s *state.BattleState) {
	side := s.Side(d.Side)
	if side.Conditions == nil {
		side.Conditions = state.SideConditions{}
	}
	side.Conditions[d.Condition] += d.Delta
	if side.Conditions[d.Condition] == 0 {
		delete(side.Conditions, d.Condition)
	}
}

func (d ChangeSideCondition) Reverse(s *state.BattleState) {
	conds := s.Side(d.Side).Conditions
	conds[d.Condition] -= d.Delta
	if conds[d.Condition] == 0 {
		delete(conds, d.Condition)
	}
}

// ChangeWeather sets field weather, recording the previous value.
type ChangeWeather struct {
	NewKind           state.WeatherKind
	NewTurns          int
	PreviousKind      state.WeatherKind
	PreviousTurns     int
}

func (d ChangeWeather) Apply(s *state.BattleState) {
	s.Weather = state.Weather{Kind: d.NewKind, TurnsRemaining: d.NewTurns}
}

func (d ChangeWeather) Reverse(s *state.BattleState) {
	s.Weather = state.Weather{Kind: d.PreviousKind, TurnsRemaining: d.PreviousTurns}
}

// ChangeTerrain sets field terrain, recording the previous value.
type ChangeTerrain struct {
	NewKind       state.TerrainKind
	NewTurns      int
	PreviousKind  state.TerrainKind
	PreviousTurns int
}

func (d ChangeTerrain) Apply(s *state.BattleState) {
	s.Terrain = state.Terrain{Kind: d.NewKind, TurnsRemaining: d.NewTurns}
}

func (d ChangeTerrain) Reverse(s *state.BattleState) {
	s.Terrain = state.Terrain{Kind: d.PreviousKind, TurnsRemaining: d.PreviousTurns}
}

// ChangeType overwrites the active creature's types (e.g. Soak, Reflect
// Type style effects).
type ChangeType struct {
	Side           state.SideID
	PreviousTypes  [2]string
	NewTypes       [2]string
}

func (d ChangeType) Apply(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.Type1, c.Type2 = d.NewTypes[0], d.NewTypes[1]
}

func (d ChangeType) Reverse(s *state.BattleState) {
	c := s.Side(d.Side).Active()
	c.Type1, c.Type2 = d.PreviousTypes[0], d.PreviousTypes[1]
}

// EnableMove clears a move slot's disabled flag.
type EnableMove struct {
	Side      state.SideID
	MoveIndex int
}

func (d EnableMove) Apply(s *state.BattleState) {
	s.Side(d.Side).Active().Moves[d.MoveIndex].Disabled = false
}

func (d EnableMove) Reverse(s *state.BattleState) {
	s.Side(d.Side).Active().Moves[d.MoveIndex].Disabled = true
}

// DisableMove sets a move slot's disabled flag.
type DisableMove struct {
	Side      state.SideID
	MoveIndex int
}

func (d DisableMove) Apply(s *state.BattleState) {
	s.Side(d.Side).Active().Moves[d.MoveIndex].Disabled = true
}

func (d DisableMove) Reverse(s *state.BattleState) {
	s.Side(d.Side).Active().Moves[d.MoveIndex].Disabled = false
}

// ChangeItem swaps the active creature's held item.
type ChangeItem struct {
	Side                    state.SideID
	PreviousItem, NewItem   string
}

func (d ChangeItem) Apply(s *state.BattleState) {
	s.Side(d.Side).Active().Item = d.NewItem
}

func (d ChangeItem) Reverse(s *state.BattleState) {
	s.Side(d.Side).Active().Item = d.PreviousItem
}

// IncrementWish sets up a pending delayed heal.
type IncrementWish struct {
	Side       state.SideID
	HealAmount int
}

func (d IncrementWish) Apply(s *state.BattleState) {
	s.Side(d.Side).Wish = state.Wish{TurnsRemaining: 2, HealAmount: d.HealAmount}
}

func (d IncrementWish) Reverse(s *state.BattleState) {
	s.Side(d.Side).Wish = state.Wish{}
}

// DecrementWish counts down a pending wish by one turn.
type DecrementWish struct {
	Side state.SideID
}

func (d DecrementWish) Apply(s *state.BattleState) {
	side := s.Side(d.Side)
	if side.Wish.TurnsRemaining > 0 {
		side.Wish.TurnsRemaining--
	}
}

func (d DecrementWish) Reverse(s *state.BattleState) {
	s.Side(d.Side).Wish.TurnsRemaining++
}

// SetSubstituteHealth records the substitute's HP pool.
type SetSubstituteHealth struct {
	Side              state.SideID
	Previous, New     int
}

func (d SetSubstituteHealth) Apply(s *state.BattleState) {
	s.Side(d.Side).Active().SubstituteHP = d.New
}

func (d SetSubstituteHealth) Reverse(s *state.BattleState) {
	s.Side(d.Side).Active().SubstituteHP = d.Previous
}
