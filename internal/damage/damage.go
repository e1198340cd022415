// Package damage implements the pure damage calculator (component D):
// given a state, the attacking side, and its choice, it returns the set
// of possible integer damage outcomes for the requested roll policy
// without mutating anything.
package damage

import (
	"math"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// RollPolicy selects which damage-roll outcomes Calculate returns,
// grounded on the original engine's calculate_damage_rolls policy knob.
type RollPolicy int

const (
	// Average collapses the roll range to its single mean value.
	Average RollPolicy = iota
	// MinMaxAverage returns the minimum, mean, and maximum rolls.
	MinMaxAverage
	// AllRolls returns every discrete roll the original 85-100% range
	// produces (16 rolls), matching the generation's damage formula.
	AllRolls
)

// rollMultipliers enumerates the classic 85%-100% damage roll range in
// whole percent steps.
func rollMultipliers(policy RollPolicy) []float64 {
	switch policy {
	case Average:
		return []float64{0.925}
	case MinMaxAverage:
		return []float64{0.85, 0.925, 1.0}
	default: // AllRolls
		out := make([]float64, 0, 16)
		for pct := 85; pct <= 100; pct++ {
			out = append(out, float64(pct)/100.0)
		}
		return out
	}
}

func statValue(c *state.Creature, s state.Stat) int {
	switch s {
	case state.StatAttack:
		return c.Attack
	case state.StatDefense:
		return c.Defense
	case state.StatSpecialAttack:
		return c.SpecialAttack
	case state.StatSpecialDefense:
		return c.SpecialDefense
	case state.StatSpeed:
		return c.Speed
	}
	return 0
}

// boostMultiplier mirrors the classic stage formula: positive stages
// multiply by (2+n)/2, negative stages by 2/(2-n).
func boostMultiplier(stage int) float64 {
	stage = state.ClampBoost(stage)
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

func effectiveStat(c *state.Creature, s state.Stat) float64 {
	return float64(statValue(c, s)) * boostMultiplier(c.Boosts[s])
}

// Result is the outcome of a damage calculation.
type Result struct {
	// Damages is nil when the move cannot deal damage (status move or
	// an immune target with effective base power 0).
	Damages []int
	Layers  []delta.ModifierLayer
}

// Calculate implements calculate_damage: a pure function of state, the
// attacking side, and its (possibly hook-mutated) choice.
func Calculate(s *state.BattleState, attackerSide state.SideID, c choice.Choice, policy RollPolicy, catalog *tables.Catalog) Result {
	if c.Kind != choice.KindMove || c.Move.Category == tables.CategoryStatus || c.Move.BasePower == 0 {
		return Result{}
	}

	defenderSide := state.Opponent(attackerSide)
	attacker := s.Side(attackerSide).Active()
	defender := s.Side(defenderSide).Active()

	typeEff := catalog.TypeChart.Effectiveness(c.Move.Type, defender.Type1, defender.Type2)
	if typeEff == 0 {
		return Result{Damages: nil}
	}

	stack := &delta.ModifierStack{}

	var atkStat, defStat float64
	if c.Move.Category == tables.CategoryPhysical {
		atkStat = effectiveStat(attacker, state.StatAttack)
		defStat = effectiveStat(defender, state.StatDefense)
	} else {
		atkStat = effectiveStat(attacker, state.StatSpecialAttack)
		defStat = effectiveStat(defender, state.StatSpecialDefense)
	}
	stack.Add(delta.ModifierLayer{Source: delta.SourceStatStage, Description: "stat stage baseline", Multiplier: 1.0, Priority: delta.PriorityBase})

	stab := 1.0
	if attacker.Type1 == c.Move.Type || attacker.Type2 == c.Move.Type {
		stab = 1.5
	}
	stack.Add(delta.ModifierLayer{Source: delta.SourceSTAB, Description: "same-type attack bonus", Multiplier: stab, Priority: delta.PriorityAbility})
	stack.Add(delta.ModifierLayer{Source: delta.SourceTypeChart, Description: "type effectiveness", Multiplier: typeEff, Priority: delta.PriorityAbility})

	weatherMult := weatherMultiplier(s.Weather.Kind, c.Move.Type)
	stack.Add(delta.ModifierLayer{Source: delta.SourceWeather, Description: "weather", Multiplier: weatherMult, Priority: delta.PriorityField})

	terrainMult := terrainMultiplier(s.Terrain.Kind, c.Move.Type, grounded(attacker))
	stack.Add(delta.ModifierLayer{Source: delta.SourceTerrain, Description: "terrain", Multiplier: terrainMult, Priority: delta.PriorityField})

	if screenMult := screenMultiplier(s.Side(defenderSide), c.Move.Category); screenMult != 1.0 {
		stack.Add(delta.ModifierLayer{Source: delta.SourceScreen, Description: "screen", Multiplier: screenMult, Priority: delta.PriorityScreen})
	}

	if c.Move.Category == tables.CategoryPhysical && attacker.Status == state.StatusBurn && !hasBurnImmuneAbility(attacker.Ability) {
		stack.Add(delta.ModifierLayer{Source: delta.SourceBurn, Description: "burn halves physical damage", Multiplier: 0.5, Priority: delta.PriorityFinal})
	}

	mult, layers := stack.Resolve()

	level := float64(attacker.Level)
	base := ((2*level/5 + 2) * float64(c.Move.BasePower) * (atkStat / math.Max(defStat, 1)) / 50) + 2
	base *= mult

	seen := map[int]bool{}
	var out []int
	for _, roll := range rollMultipliers(policy) {
		d := int(base * roll)
		if d < 0 {
			d = 0
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return Result{Damages: out, Layers: layers}
}

func grounded(c *state.Creature) bool {
	return c.Type1 != "flying" && c.Type2 != "flying"
}

func weatherMultiplier(w state.WeatherKind, moveType string) float64 {
	switch w {
	case state.WeatherHarshSun:
		switch moveType {
		case "fire":
			return 1.5
		case "water":
			return 0.5
		}
	case state.WeatherRain:
		switch moveType {
		case "water":
			return 1.5
		case "fire":
			return 0.5
		}
	}
	return 1.0
}

func terrainMultiplier(t state.TerrainKind, moveType string, grounded bool) float64 {
	if !grounded {
		return 1.0
	}
	switch t {
	case state.TerrainElectric:
		if moveType == "electric" {
			return 1.3
		}
	case state.TerrainGrassy:
		if moveType == "grass" {
			return 1.3
		}
	case state.TerrainPsychic:
		if moveType == "psychic" {
			return 1.3
		}
	}
	return 1.0
}

func screenMultiplier(defSide *state.Side, cat tables.MoveCategory) float64 {
	if defSide.Conditions[state.ConditionAuroraVeil] > 0 {
		return 0.5
	}
	if cat == tables.CategoryPhysical && defSide.Conditions[state.ConditionReflect] > 0 {
		return 0.5
	}
	if cat == tables.CategorySpecial && defSide.Conditions[state.ConditionLightScreen] > 0 {
		return 0.5
	}
	return 1.0
}

// hasBurnImmuneAbility reports abilities that ignore burn's physical
// attack halving (Guts actively benefits from being statused).
func hasBurnImmuneAbility(ability string) bool {
	return ability == "guts"
}
