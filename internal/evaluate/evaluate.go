// Package evaluate implements the scalar heuristic (component G): a fast,
// symmetric state score that the search package leafs out to, grounded
// on the evaluator constants given verbatim in the distilled spec.
package evaluate

import (
	"github.com/nicoberrocal/battlecore/internal/config"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// mainStats lists the five stats that carry an evaluator weight;
// accuracy/evasion stages are excluded per 4.5's weight table.
var mainStats = []state.Stat{
	state.StatAttack, state.StatDefense, state.StatSpecialAttack,
	state.StatSpecialDefense, state.StatSpeed,
}

// Evaluate scores state from side one's perspective: positive favors side
// one, negative favors side two. Swapping the sides negates the result
// (8.4's symmetry property) because every term is additive per side and
// subtracted for the other.
func Evaluate(s *state.BattleState, catalog *tables.Catalog) float64 {
	return sideScore(&s.SideOne, catalog) - sideScore(&s.SideTwo, catalog)
}

func sideScore(side *state.Side, catalog *tables.Catalog) float64 {
	total := 0.0
	for i := range side.Creatures {
		c := &side.Creatures[i]
		if c.Alive() {
			total += creatureScore(c, catalog)
		}
	}
	total += sideConditionScore(side)
	return total
}

func creatureScore(c *state.Creature, catalog *tables.Catalog) float64 {
	score := config.AliveBonus + config.HPWeight*(float64(c.HP)/float64(c.MaxHP))

	for _, st := range mainStats {
		weight := config.StatBoostWeight[string(st)]
		mult := config.BoostMultiplier[state.ClampBoost(c.Boosts[st])]
		score += weight * mult
	}

	score += statusPenalty(c, catalog)
	score += volatileScore(c)
	return score
}

func statusPenalty(c *state.Creature, catalog *tables.Catalog) float64 {
	switch c.Status {
	case state.StatusFreeze:
		return config.StatusFreeze
	case state.StatusSleep:
		return config.StatusSleep
	case state.StatusParalyze:
		return config.StatusParalyze
	case state.StatusToxic:
		return config.StatusToxic
	case state.StatusPoison:
		return config.StatusPoison
	case state.StatusBurn:
		return burnPenalty(c, catalog)
	default:
		return 0
	}
}

// burnPenalty is context-sensitive per 4.5: count physical moves in the
// moveset, halve if special attack exceeds attack, scale by -25; guts,
// marvel-scale, and quick-feet instead use a flat -2 (they actively
// benefit from being burned and don't fear it).
func burnPenalty(c *state.Creature, catalog *tables.Catalog) float64 {
	switch c.Ability {
	case "guts", "marvel-scale", "quick-feet":
		return config.StatusBurnFlat
	}
	count := 0.0
	for _, mv := range c.Moves {
		if mv.ID == "" {
			continue
		}
		if data, ok := catalog.Move(mv.ID); ok && data.Category == tables.CategoryPhysical {
			count++
		}
	}
	if c.SpecialAttack > c.Attack {
		count /= 2
	}
	return count * config.BurnPerPhysicalMove
}

func volatileScore(c *state.Creature) float64 {
	score := 0.0
	if c.Volatiles[state.VolatileLeechSeed] {
		score += config.VolatileLeechSeed
	}
	if c.Volatiles[state.VolatileSubstitute] {
		score += config.VolatileSubstitute
	}
	if c.Volatiles[state.VolatileConfusion] {
		score += config.VolatileConfusion
	}
	return score
}

func sideConditionScore(side *state.Side) float64 {
	score := 0.0
	if n := side.Conditions[state.ConditionReflect]; n > 0 {
		score += config.SideConditionScreen * float64(n)
	}
	if n := side.Conditions[state.ConditionLightScreen]; n > 0 {
		score += config.SideConditionScreen * float64(n)
	}
	if side.Conditions[state.ConditionAuroraVeil] > 0 {
		score += config.SideConditionAuroraVeil
	}
	if side.Conditions[state.ConditionSafeguard] > 0 {
		score += config.SideConditionSafeguard
	}
	if side.Conditions[state.ConditionTailwind] > 0 {
		score += config.SideConditionTailwind
	}
	if side.Conditions[state.ConditionStickyWeb] > 0 {
		score += config.SideConditionStickyWeb
	}

	alive := float64(side.AliveCount())
	score += config.HazardStealthRockPerAlive * float64(side.Conditions[state.ConditionStealthRock]) * alive
	score += config.HazardSpikesPerAlive * float64(side.Conditions[state.ConditionSpikes]) * alive
	score += config.HazardToxicSpikesPerAlive * float64(side.Conditions[state.ConditionToxicSpikes]) * alive
	return score
}
