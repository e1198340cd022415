// Package config centralizes the tunable constants that drive evaluation,
// search, and the CLI's defaults, the way klauern-clash-royale-api keeps
// its scoring constants in one documented block instead of scattered
// magic numbers.
package config

import "time"

// Evaluator weights (4.5). These mirror the constants of the engine this
// spec was distilled from and must not drift independently of evaluate.go.
const (
	AliveBonus   = 75.0
	HPWeight     = 100.0
	StatusFreeze    = -40.0
	StatusSleep     = -25.0
	StatusParalyze  = -25.0
	StatusToxic     = -30.0
	StatusPoison    = -10.0
	StatusBurnFlat  = -2.0
	// BurnPerPhysicalMove scales a burned creature's physical-moveset
	// count into a penalty (halved first if special_attack > attack).
	BurnPerPhysicalMove = -25.0

	VolatileLeechSeed  = -30.0
	VolatileSubstitute = 40.0
	VolatileConfusion  = -20.0

	SideConditionScreen    = 20.0
	SideConditionAuroraVeil = 40.0
	SideConditionSafeguard  = 5.0
	SideConditionTailwind   = 7.0
	SideConditionStickyWeb  = -25.0

	HazardStealthRockPerAlive = -10.0
	HazardSpikesPerAlive      = -7.0
	HazardToxicSpikesPerAlive = -7.0
)

// Per-stat boost weights, keyed in the same order as Stat enumerations.
var StatBoostWeight = map[string]float64{
	"attack":         15.0,
	"defense":        15.0,
	"special_attack": 15.0,
	"special_defense": 15.0,
	"speed":          25.0,
}

// BoostMultiplier maps a stage in [-6,6] to its evaluator multiplier.
var BoostMultiplier = map[int]float64{
	6: 3.3, 5: 3.15, 4: 3.0, 3: 2.5, 2: 2.0, 1: 1.0,
	0: 0.0,
	-1: -1.0, -2: -2.0, -3: -2.5, -4: -3.0, -5: -3.15, -6: -3.3,
}

// Search tuning (4.6).
const (
	// WinBonus scales with remaining depth so faster wins/losses are
	// preferred/avoided, matching the source engine's depth-scaled bonus.
	WinBonus = 1000.0

	// ProbabilityTolerance is the 1e-3 slack allowed when checking that
	// branch probabilities sum to their incoming branch's probability.
	ProbabilityTolerance = 1e-3

	// DefaultIterativeDeepeningBudget is used by the CLI when
	// --time-to-search-ms is not supplied.
	DefaultIterativeDeepeningBudget = 5000 * time.Millisecond

	// DefaultFixedDepth is expectiminimax's default --depth.
	DefaultFixedDepth = 2

	// MCTSExplorationConstant is UCB1's c parameter.
	MCTSExplorationConstant = 1.41421356
)

// EnvLogLevel is the environment variable internal/logging reads to
// override the default log level.
const EnvLogLevel = "BATTLECORE_LOG_LEVEL"
