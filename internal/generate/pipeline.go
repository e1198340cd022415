package generate

import (
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/damage"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/effects"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// Generator holds the immutable collaborators the pipeline consults:
// the static tables (A) and the effect-hook registry (E).
type Generator struct {
	Catalog    *tables.Catalog
	Registry   *effects.Registry
	RollPolicy damage.RollPolicy
}

// New builds a Generator against the default catalog/registry with the
// generator's default roll policy (every discrete roll becomes its own
// branch, per 4.4 step 11's uniform split).
func New() *Generator {
	return &Generator{
		Catalog:    tables.Default(),
		Registry:   effects.Default(),
		RollPolicy: damage.AllRolls,
	}
}

// GenerateInstructionsFromMove runs the 13-step pipeline for one side's
// move within one half-turn (4.4). state must reflect incoming.Deltas
// already applied; on return it is restored to exactly that position —
// every delta this call applies is reversed before returning.
func (g *Generator) GenerateInstructionsFromMove(s *state.BattleState, side state.SideID, atk, def choice.Choice, incoming Branch) []Branch {
	attackerSide := side
	defenderSide := state.Opponent(side)

	// Step 1: switch short-circuit.
	if atk.Kind == choice.KindSwitch {
		return g.generateSwitch(s, attackerSide, atk, incoming)
	}

	// Step 2: drag ordering short-circuit.
	if atk.Drag && !atk.IsFirstMoveOfHalfTurn {
		return []Branch{{Probability: incoming.Probability, Deltas: cloneDeltas(incoming.Deltas)}}
	}

	// Step 3: dead-attacker short-circuit.
	if !s.Side(attackerSide).Active().Alive() {
		return []Branch{{Probability: incoming.Probability, Deltas: cloneDeltas(incoming.Deltas), Frozen: true}}
	}

	// Step 4: choice modification (mutates atk in place only).
	atkAbility := g.Registry.Ability(s.Side(attackerSide).Active().Ability)
	defAbility := g.Registry.Ability(s.Side(defenderSide).Active().Ability)
	atkItem := g.Registry.Item(s.Side(attackerSide).Active().Item)
	defItem := g.Registry.Item(s.Side(defenderSide).Active().Item)
	if atkAbility.ModifyAttackBeingUsed != nil {
		atkAbility.ModifyAttackBeingUsed(s, attackerSide, &atk, def)
	}
	if defAbility.ModifyAttackAgainst != nil {
		defAbility.ModifyAttackAgainst(s, defenderSide, &atk, def)
	}
	if atkItem.ModifyAttackBeingUsed != nil {
		atkItem.ModifyAttackBeingUsed(s, attackerSide, &atk, def)
	}
	if defItem.ModifyAttackAgainst != nil {
		defItem.ModifyAttackAgainst(s, defenderSide, &atk, def)
	}

	var local delta.List

	// Step 5: before-move hook.
	if atkAbility.BeforeMove != nil {
		bm := atkAbility.BeforeMove(s, attackerSide, atk)
		delta.ApplyAll(s, bm)
		local = append(local, bm...)
	}

	// Step 6: damage pre-calc, computed before status branches.
	dmgResult := damage.Calculate(s, attackerSide, atk, g.RollPolicy, g.Catalog)

	// Step 7: pre-move status branching.
	results := g.statusBranches(s, attackerSide, defenderSide, atk, dmgResult, incoming, local)

	delta.ReverseAll(s, local)

	// Step 13: combine branches with identical delta lists.
	return CombineDuplicateInstructions(results)
}

type statusOutcome struct {
	prob        float64
	statusDelta *delta.ChangeStatus
	proceeds    bool
}

func (g *Generator) statusBranches(s *state.BattleState, attackerSide, defenderSide state.SideID, atk choice.Choice, dmgResult damage.Result, incoming Branch, local delta.List) []Branch {
	attacker := s.Side(attackerSide).Active()
	activeIdx := s.Side(attackerSide).ActiveIndex

	var outcomes []statusOutcome
	switch attacker.Status {
	case state.StatusParalyze:
		outcomes = []statusOutcome{{prob: 0.25, proceeds: false}, {prob: 0.75, proceeds: true}}
	case state.StatusFreeze:
		thaw := delta.ChangeStatus{Side: attackerSide, PokemonIndex: activeIdx, Old: state.StatusFreeze, New: state.StatusNone}
		outcomes = []statusOutcome{{prob: 0.20, statusDelta: &thaw, proceeds: true}, {prob: 0.80, proceeds: false}}
	case state.StatusSleep:
		wake := delta.ChangeStatus{Side: attackerSide, PokemonIndex: activeIdx, Old: state.StatusSleep, New: state.StatusNone}
		outcomes = []statusOutcome{{prob: 0.33, statusDelta: &wake, proceeds: true}, {prob: 0.67, proceeds: false}}
	default:
		outcomes = []statusOutcome{{prob: 1.0, proceeds: true}}
	}

	var results []Branch
	for _, oc := range outcomes {
		branchProb := incoming.Probability * oc.prob
		var branchLocal delta.List
		if oc.statusDelta != nil {
			oc.statusDelta.Apply(s)
			branchLocal = append(branchLocal, *oc.statusDelta)
		}

		if !oc.proceeds {
			full := mergeDeltas(incoming.Deltas, local, branchLocal)
			results = append(results, Branch{Probability: branchProb, Deltas: full, Frozen: true})
			if oc.statusDelta != nil {
				oc.statusDelta.Reverse(s)
			}
			continue
		}

		// Step 8: cannot-use-move gate.
		if g.cannotUseMove(s, attackerSide, atk) {
			full := mergeDeltas(incoming.Deltas, local, branchLocal)
			results = append(results, Branch{Probability: branchProb, Deltas: full, Frozen: true})
			if oc.statusDelta != nil {
				oc.statusDelta.Reverse(s)
			}
			continue
		}

		// Step 9: move-special-effect hook.
		specialLocal := g.applyMoveSpecialEffect(s, attackerSide, atk)

		// Step 10/11/12: accuracy branch -> damage application -> post-hit appliers.
		prefix := mergeDeltas(incoming.Deltas, local, branchLocal, specialLocal)
		sub := g.accuracyBranch(s, attackerSide, defenderSide, atk, dmgResult, branchProb, prefix)
		results = append(results, sub...)

		delta.ReverseAll(s, specialLocal)
		if oc.statusDelta != nil {
			oc.statusDelta.Reverse(s)
		}
	}
	return results
}

func (g *Generator) generateSwitch(s *state.BattleState, attackerSide state.SideID, atk choice.Choice, incoming Branch) []Branch {
	var local delta.List
	side := s.Side(attackerSide)
	activeIdx := side.ActiveIndex
	outgoing := &side.Creatures[activeIdx]
	for i, mv := range outgoing.Moves {
		if mv.Disabled {
			d := delta.EnableMove{Side: attackerSide, MoveIndex: i}
			d.Apply(s)
			local = append(local, d)
		}
	}
	sw := &delta.Switch{Side: attackerSide, PreviousIndex: activeIdx, NextIndex: atk.SwitchIndex}
	sw.Apply(s)
	local = append(local, sw)

	full := mergeDeltas(incoming.Deltas, local)
	result := []Branch{{Probability: incoming.Probability, Deltas: full}}
	delta.ReverseAll(s, local)
	return result
}

func (g *Generator) cannotUseMove(s *state.BattleState, attackerSide state.SideID, atk choice.Choice) bool {
	if atk.Kind != choice.KindMove {
		return false
	}
	attacker := s.Side(attackerSide).Active()
	if attacker.Volatiles[state.VolatileTaunt] && atk.Move.Category == tables.CategoryStatus {
		return true
	}
	if attacker.Volatiles[state.VolatileFlinch] {
		return true
	}
	defender := s.Side(state.Opponent(attackerSide)).Active()
	if atk.Move.Type == "electric" && (defender.Type1 == "ground" || defender.Type2 == "ground") {
		return true
	}
	if atk.Move.Flags.Has(tables.FlagPowder) && (defender.Type1 == "grass" || defender.Type2 == "grass") {
		return true
	}
	return false
}

func (g *Generator) applyMoveSpecialEffect(s *state.BattleState, attackerSide state.SideID, atk choice.Choice) delta.List {
	var local delta.List
	if atk.Kind != choice.KindMove {
		return local
	}
	mv := atk.Move
	if mv.WeatherSet != "" {
		newKind := state.WeatherKind(mv.WeatherSet)
		if s.Weather.Kind != newKind {
			d := delta.ChangeWeather{NewKind: newKind, NewTurns: mv.FieldTurns, PreviousKind: s.Weather.Kind, PreviousTurns: s.Weather.TurnsRemaining}
			d.Apply(s)
			local = append(local, d)
		}
	}
	if mv.TerrainSet != "" {
		newKind := state.TerrainKind(mv.TerrainSet)
		if s.Terrain.Kind != newKind {
			d := delta.ChangeTerrain{NewKind: newKind, NewTurns: mv.FieldTurns, PreviousKind: s.Terrain.Kind, PreviousTurns: s.Terrain.TurnsRemaining}
			d.Apply(s)
			local = append(local, d)
		}
	}
	return local
}

func mergeDeltas(lists ...delta.List) delta.List {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make(delta.List, 0, total)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
