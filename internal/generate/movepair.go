package generate

import (
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/state"
)

// GenerateInstructionsFromMovePair is the move-pair driver (4.4, final
// paragraph): it orders the two movers, runs the single-move pipeline for
// each against every branch the first produced, then appends end-of-turn
// effects, and finally deduplicates (step 13). Grounded on
// ExecuteFormationBattleRound's two-phase attacker/defender loop, adapted
// from simultaneous fleet damage exchange to sequential, speed-ordered
// half-turns.
func (g *Generator) GenerateInstructionsFromMovePair(s *state.BattleState, sideOneChoice, sideTwoChoice choice.Choice) []Branch {
	firstSide, first, secondSide, second := g.orderMovers(s, sideOneChoice, sideTwoChoice)
	first.IsFirstMoveOfHalfTurn = true

	// Probabilities are carried as percentages (100.0 = certain) per the
	// design note on floating-point representation.
	firstBranches := g.GenerateInstructionsFromMove(s, firstSide, first, second, Branch{Probability: 100.0})

	var all []Branch
	for _, b1 := range firstBranches {
		delta.ApplyAll(s, b1.Deltas)

		if state.BattleIsOver(s) != 0 {
			all = append(all, b1)
			delta.ReverseAll(s, b1.Deltas)
			continue
		}

		secondBranches := g.GenerateInstructionsFromMove(s, secondSide, second, first, b1)
		for _, b2 := range secondBranches {
			newPart := b2.Deltas[len(b1.Deltas):]
			delta.ApplyAll(s, newPart)

			eot := g.endOfTurn(s)
			delta.ApplyAll(s, eot)

			full := mergeDeltas(b2.Deltas, eot)
			all = append(all, Branch{Probability: b2.Probability, Deltas: full, Frozen: b2.Frozen})

			delta.ReverseAll(s, eot)
			delta.ReverseAll(s, newPart)
		}

		delta.ReverseAll(s, b1.Deltas)
	}

	return CombineDuplicateInstructions(all)
}

// orderMovers determines half-turn order: switches first, then descending
// priority, then boost-modified speed (reversed under Trick Room), with a
// fixed side-one-first tiebreak, per the deterministic-tiebreak design note.
func (g *Generator) orderMovers(s *state.BattleState, c1, c2 choice.Choice) (state.SideID, choice.Choice, state.SideID, choice.Choice) {
	if c1.EffectivePriority() != c2.EffectivePriority() {
		if c1.EffectivePriority() > c2.EffectivePriority() {
			return state.SideOne, c1, state.SideTwo, c2
		}
		return state.SideTwo, c2, state.SideOne, c1
	}

	speed1 := effectiveSpeed(s.Side(state.SideOne).Active())
	speed2 := effectiveSpeed(s.Side(state.SideTwo).Active())
	if s.TrickRoom {
		speed1, speed2 = -speed1, -speed2
	}
	if speed1 == speed2 {
		return state.SideOne, c1, state.SideTwo, c2
	}
	if speed1 > speed2 {
		return state.SideOne, c1, state.SideTwo, c2
	}
	return state.SideTwo, c2, state.SideOne, c1
}

func effectiveSpeed(c *state.Creature) float64 {
	stage := state.ClampBoost(c.Boosts[state.StatSpeed])
	mult := 1.0
	if stage >= 0 {
		mult = float64(2+stage) / 2.0
	} else {
		mult = 2.0 / float64(2-stage)
	}
	speed := float64(c.Speed) * mult
	if c.Status == state.StatusParalyze {
		speed *= 0.5
	}
	return speed
}

// endOfTurn applies weather/status/volatile/wish/item end-of-turn
// effects for both sides, in side-one-then-side-two order, returning the
// deltas it applied (caller reverses).
func (g *Generator) endOfTurn(s *state.BattleState) delta.List {
	var local delta.List

	for _, side := range []state.SideID{state.SideOne, state.SideTwo} {
		local = append(local, g.endOfTurnStatusDamage(s, side)...)
		local = append(local, g.endOfTurnLeechSeed(s, side)...)
		local = append(local, g.endOfTurnWish(s, side)...)

		item := s.Side(side).Active().Item
		if hook := g.Registry.Item(item); hook.EndOfTurn != nil {
			d := hook.EndOfTurn(s, side)
			delta.ApplyAll(s, d)
			local = append(local, d...)
		}
	}

	local = append(local, g.endOfTurnField(s)...)
	return local
}

func (g *Generator) endOfTurnStatusDamage(s *state.BattleState, side state.SideID) delta.List {
	c := s.Side(side).Active()
	if !c.Alive() {
		return nil
	}
	var amount int
	switch c.Status {
	case state.StatusBurn:
		amount = fractional(c.MaxHP, 16)
	case state.StatusPoison, state.StatusToxic:
		amount = fractional(c.MaxHP, 8)
	default:
		return nil
	}
	if amount > c.HP {
		amount = c.HP
	}
	d := delta.Damage{Side: side, Amount: amount}
	d.Apply(s)
	return delta.List{d}
}

func (g *Generator) endOfTurnLeechSeed(s *state.BattleState, side state.SideID) delta.List {
	c := s.Side(side).Active()
	if !c.Alive() || !c.Volatiles[state.VolatileLeechSeed] {
		return nil
	}
	amount := fractional(c.MaxHP, 8)
	if amount > c.HP {
		amount = c.HP
	}
	dmg := delta.Damage{Side: side, Amount: amount}
	dmg.Apply(s)
	local := delta.List{dmg}

	opp := state.Opponent(side)
	oppC := s.Side(opp).Active()
	if oppC.Alive() {
		heal := amount
		if oppC.HP+heal > oppC.MaxHP {
			heal = oppC.MaxHP - oppC.HP
		}
		if heal > 0 {
			hd := delta.Heal{Side: opp, Amount: heal}
			hd.Apply(s)
			local = append(local, hd)
		}
	}
	return local
}

func (g *Generator) endOfTurnWish(s *state.BattleState, side state.SideID) delta.List {
	sideState := s.Side(side)
	if sideState.Wish.TurnsRemaining == 0 {
		return nil
	}
	wasOne := sideState.Wish.TurnsRemaining == 1
	healAmount := sideState.Wish.HealAmount

	dw := delta.DecrementWish{Side: side}
	dw.Apply(s)
	local := delta.List{dw}

	if wasOne {
		c := s.Side(side).Active()
		if c.Alive() {
			heal := healAmount
			if c.HP+heal > c.MaxHP {
				heal = c.MaxHP - c.HP
			}
			if heal > 0 {
				hd := delta.Heal{Side: side, Amount: heal}
				hd.Apply(s)
				local = append(local, hd)
			}
		}
	}
	return local
}

func (g *Generator) endOfTurnField(s *state.BattleState) delta.List {
	var local delta.List
	if s.Weather.Kind != state.WeatherNone && s.Weather.TurnsRemaining > 0 {
		newTurns := s.Weather.TurnsRemaining - 1
		newKind := s.Weather.Kind
		if newTurns == 0 {
			newKind = state.WeatherNone
		}
		d := delta.ChangeWeather{NewKind: newKind, NewTurns: newTurns, PreviousKind: s.Weather.Kind, PreviousTurns: s.Weather.TurnsRemaining}
		d.Apply(s)
		local = append(local, d)
	}
	if s.Terrain.Kind != state.TerrainNone && s.Terrain.TurnsRemaining > 0 {
		newTurns := s.Terrain.TurnsRemaining - 1
		newKind := s.Terrain.Kind
		if newTurns == 0 {
			newKind = state.TerrainNone
		}
		d := delta.ChangeTerrain{NewKind: newKind, NewTurns: newTurns, PreviousKind: s.Terrain.Kind, PreviousTurns: s.Terrain.TurnsRemaining}
		d.Apply(s)
		local = append(local, d)
	}
	return local
}

func fractional(maxhp, denom int) int {
	v := maxhp / denom
	if v < 1 {
		v = 1
	}
	return v
}
