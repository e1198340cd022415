package generate

import (
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/damage"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/effects"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

func accuracyFraction(atk choice.Choice) float64 {
	if atk.Kind != choice.KindMove {
		return 1.0
	}
	if atk.Move.AlwaysHits {
		return 1.0
	}
	return float64(atk.Move.Accuracy) / 100.0
}

// accuracyBranch is step 10: split into a miss-branch (crash damage,
// missed-blunder policy, frozen) and a hit-branch that proceeds into
// damage application.
func (g *Generator) accuracyBranch(s *state.BattleState, attackerSide, defenderSide state.SideID, atk choice.Choice, dmgResult damage.Result, incomingProb float64, prefix delta.List) []Branch {
	p := accuracyFraction(atk)
	var results []Branch

	if p < 1.0 {
		missProb := incomingProb * (1 - p)
		var missLocal delta.List
		if atk.Kind == choice.KindMove && atk.Move.CrashFractionPct > 0 {
			attacker := s.Side(attackerSide).Active()
			crash := attacker.MaxHP * atk.Move.CrashFractionPct / 100
			if crash > attacker.HP {
				crash = attacker.HP
			}
			if crash > 0 {
				d := delta.Damage{Side: attackerSide, Amount: crash}
				d.Apply(s)
				missLocal = append(missLocal, d)
			}
		}
		if atk.Kind == choice.KindMove && atk.Move.MissedBlunderPolicy {
			prevItem := s.Side(attackerSide).Active().Item
			if prevItem != "none" && prevItem != "" {
				di := delta.ChangeItem{Side: attackerSide, PreviousItem: prevItem, NewItem: "none"}
				di.Apply(s)
				missLocal = append(missLocal, di)
			}
			cur := s.Side(attackerSide).Active().Boosts[state.StatSpeed]
			if eff := state.ClampBoost(cur+2) - cur; eff != 0 {
				db := delta.Boost{Side: attackerSide, Stat: state.StatSpeed, Delta: eff}
				db.Apply(s)
				missLocal = append(missLocal, db)
			}
		}
		full := mergeDeltas(prefix, missLocal)
		results = append(results, Branch{Probability: missProb, Deltas: full, Frozen: true})
		delta.ReverseAll(s, missLocal)
	}

	if p > 0 {
		hitProb := incomingProb * p
		results = append(results, g.damageApplicationBranches(s, attackerSide, defenderSide, atk, dmgResult, hitProb, prefix)...)
	}

	return results
}

// damageApplicationBranches is step 11: split the hit-branch uniformly
// across every distinct precomputed damage roll, then run the per-hit
// appliers (drain, recoil, hooks) and the step-12 post-hit transformers.
func (g *Generator) damageApplicationBranches(s *state.BattleState, attackerSide, defenderSide state.SideID, atk choice.Choice, dmgResult damage.Result, hitProb float64, prefix delta.List) []Branch {
	if len(dmgResult.Damages) == 0 {
		local := g.applyPostHit(s, attackerSide, defenderSide, atk, 0)
		full := mergeDeltas(prefix, local)
		result := []Branch{{Probability: hitProb, Deltas: full}}
		delta.ReverseAll(s, local)
		return result
	}

	each := hitProb / float64(len(dmgResult.Damages))
	var results []Branch
	for _, dmg := range dmgResult.Damages {
		var local delta.List

		defender := s.Side(defenderSide).Active()
		amount := dmg
		if amount > defender.HP {
			amount = defender.HP
		}
		if effects.HasSturdy(defender.Ability) && defender.HP == defender.MaxHP && dmg >= defender.HP {
			amount = defender.HP - 1
		}
		dd := delta.Damage{Side: defenderSide, Amount: amount}
		dd.Apply(s)
		local = append(local, dd)

		atkAbility := g.Registry.Ability(s.Side(attackerSide).Active().Ability)
		if atkAbility.AfterDamageHit != nil {
			hooks := atkAbility.AfterDamageHit(s, attackerSide, atk, amount)
			delta.ApplyAll(s, hooks)
			local = append(local, hooks...)
		}

		if atk.Kind == choice.KindMove && atk.Move.DrainPercent > 0 {
			heal := amount * atk.Move.DrainPercent / 100
			attacker := s.Side(attackerSide).Active()
			if attacker.HP+heal > attacker.MaxHP {
				heal = attacker.MaxHP - attacker.HP
			}
			if heal > 0 {
				hd := delta.Heal{Side: attackerSide, Amount: heal}
				hd.Apply(s)
				local = append(local, hd)
			}
		}
		if atk.Kind == choice.KindMove && atk.Move.RecoilPercent > 0 {
			recoil := amount * atk.Move.RecoilPercent / 100
			attacker := s.Side(attackerSide).Active()
			if recoil > attacker.HP {
				recoil = attacker.HP
			}
			if recoil > 0 {
				rd := delta.Damage{Side: attackerSide, Amount: recoil}
				rd.Apply(s)
				local = append(local, rd)
			}
		}

		postHit := g.applyPostHit(s, attackerSide, defenderSide, atk, amount)
		local = append(local, postHit...)

		full := mergeDeltas(prefix, local)
		results = append(results, Branch{Probability: each, Deltas: full})
		delta.ReverseAll(s, local)
	}
	return results
}

// applyPostHit is step 12: side-condition layering, hazard clearing,
// volatile-status application, status-effect application, and stat
// boosts, each a non-branching transformer run in order. Returns the
// deltas it applied; the caller reverses them.
func (g *Generator) applyPostHit(s *state.BattleState, attackerSide, defenderSide state.SideID, atk choice.Choice, dmgDealt int) delta.List {
	var local delta.List
	if atk.Kind != choice.KindMove {
		return local
	}
	mv := atk.Move

	if mv.SetsSideCondition != "" {
		cond := state.SideCondition(mv.SetsSideCondition)
		targetSide := defenderSide
		if isSelfSideCondition(cond) {
			targetSide = attackerSide
		}
		if cond == state.ConditionAuroraVeil && s.Weather.Kind != state.WeatherHail {
			// requires Hail; no-op per 3.2.6.
		} else {
			cur := s.Side(targetSide).Conditions[cond]
			if cur < state.MaxLayers(cond) {
				d := delta.ChangeSideCondition{Side: targetSide, Condition: cond, Delta: 1}
				d.Apply(s)
				local = append(local, d)
			}
		}
	}

	if mv.Flags.Has(tables.FlagHazardClearingOwn) {
		local = append(local, g.clearHazards(s, attackerSide)...)
	}
	if mv.Flags.Has(tables.FlagHazardClearingBoth) {
		local = append(local, g.clearHazards(s, attackerSide)...)
		local = append(local, g.clearHazards(s, defenderSide)...)
		if s.Terrain.Kind != state.TerrainNone {
			d := delta.ChangeTerrain{NewKind: state.TerrainNone, NewTurns: 0, PreviousKind: s.Terrain.Kind, PreviousTurns: s.Terrain.TurnsRemaining}
			d.Apply(s)
			local = append(local, d)
		}
	}
	if mv.Flags.Has(tables.FlagHazardSwap) {
		local = append(local, g.swapHazards(s, attackerSide, defenderSide)...)
	}

	if mv.AppliesVolatile != "" {
		local = append(local, g.applyVolatile(s, attackerSide, defenderSide, state.VolatileStatus(mv.AppliesVolatile))...)
	}

	if mv.AppliesStatus != "" {
		st := state.Status(mv.AppliesStatus)
		defender := s.Side(defenderSide).Active()
		if canApplyStatus(s, defender, st) {
			d := delta.ChangeStatus{Side: defenderSide, PokemonIndex: s.Side(defenderSide).ActiveIndex, Old: state.StatusNone, New: st}
			d.Apply(s)
			local = append(local, d)
		}
	}

	for statName, amt := range mv.BoostSelf {
		cur := s.Side(attackerSide).Active().Boosts[state.Stat(statName)]
		eff := state.ClampBoost(cur+amt) - cur
		if eff == 0 {
			continue
		}
		d := delta.Boost{Side: attackerSide, Stat: state.Stat(statName), Delta: eff}
		d.Apply(s)
		local = append(local, d)
	}
	for statName, amt := range mv.BoostTarget {
		if amt < 0 && s.Side(defenderSide).Active().Ability == "clear-body" {
			continue
		}
		cur := s.Side(defenderSide).Active().Boosts[state.Stat(statName)]
		eff := state.ClampBoost(cur+amt) - cur
		if eff == 0 {
			continue
		}
		d := delta.Boost{Side: defenderSide, Stat: state.Stat(statName), Delta: eff}
		d.Apply(s)
		local = append(local, d)
	}

	return local
}

func (g *Generator) applyVolatile(s *state.BattleState, attackerSide, defenderSide state.SideID, vs state.VolatileStatus) delta.List {
	var local delta.List
	if vs == state.VolatileSubstitute {
		attacker := s.Side(attackerSide).Active()
		cost := attacker.MaxHP / 4
		if attacker.Volatiles[state.VolatileSubstitute] || attacker.HP <= cost {
			return local
		}
		av := delta.ApplyVolatileStatus{Side: attackerSide, Status: state.VolatileSubstitute}
		av.Apply(s)
		local = append(local, av)
		dd := delta.Damage{Side: attackerSide, Amount: cost}
		dd.Apply(s)
		local = append(local, dd)
		sh := delta.SetSubstituteHealth{Side: attackerSide, Previous: 0, New: cost}
		sh.Apply(s)
		local = append(local, sh)
		return local
	}
	defender := s.Side(defenderSide).Active()
	if defender.Volatiles[vs] {
		return local
	}
	av := delta.ApplyVolatileStatus{Side: defenderSide, Status: vs}
	av.Apply(s)
	local = append(local, av)
	return local
}

func (g *Generator) clearHazards(s *state.BattleState, side state.SideID) delta.List {
	hazards := []state.SideCondition{
		state.ConditionSpikes, state.ConditionToxicSpikes,
		state.ConditionStealthRock, state.ConditionStickyWeb,
	}
	var local delta.List
	for _, h := range hazards {
		cur := s.Side(side).Conditions[h]
		if cur > 0 {
			d := delta.ChangeSideCondition{Side: side, Condition: h, Delta: -cur}
			d.Apply(s)
			local = append(local, d)
		}
	}
	return local
}

// swapHazards exchanges each side's entry-hazard layer counts, court-change
// style; screens and other side conditions are untouched.
func (g *Generator) swapHazards(s *state.BattleState, attackerSide, defenderSide state.SideID) delta.List {
	hazards := []state.SideCondition{
		state.ConditionSpikes, state.ConditionToxicSpikes,
		state.ConditionStealthRock, state.ConditionStickyWeb,
	}
	var local delta.List
	for _, h := range hazards {
		atkCur := s.Side(attackerSide).Conditions[h]
		defCur := s.Side(defenderSide).Conditions[h]
		if atkCur == defCur {
			continue
		}
		da := delta.ChangeSideCondition{Side: attackerSide, Condition: h, Delta: defCur - atkCur}
		da.Apply(s)
		local = append(local, da)
		dd := delta.ChangeSideCondition{Side: defenderSide, Condition: h, Delta: atkCur - defCur}
		dd.Apply(s)
		local = append(local, dd)
	}
	return local
}

func isSelfSideCondition(cond state.SideCondition) bool {
	switch cond {
	case state.ConditionReflect, state.ConditionLightScreen, state.ConditionAuroraVeil,
		state.ConditionSafeguard, state.ConditionTailwind:
		return true
	default:
		return false
	}
}

func canApplyStatus(s *state.BattleState, c *state.Creature, st state.Status) bool {
	if c.Status != state.StatusNone || !c.Alive() {
		return false
	}
	if c.Volatiles[state.VolatileSubstitute] {
		return false
	}
	switch st {
	case state.StatusParalyze:
		if c.Type1 == "electric" || c.Type2 == "electric" || c.Ability == "limber" {
			return false
		}
	case state.StatusPoison, state.StatusToxic:
		if c.Type1 == "poison" || c.Type2 == "poison" || c.Type1 == "steel" || c.Type2 == "steel" {
			return false
		}
	case state.StatusBurn:
		if c.Type1 == "fire" || c.Type2 == "fire" || c.Ability == "water-veil" {
			return false
		}
	case state.StatusFreeze:
		if c.Type1 == "ice" || c.Type2 == "ice" {
			return false
		}
	}
	if s.Terrain.Kind == state.TerrainMisty && c.Type1 != "flying" && c.Type2 != "flying" {
		return false
	}
	return true
}
