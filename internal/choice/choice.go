// Package choice represents one side's selected action for a half-turn:
// either "use this move slot" or "switch to this party index". A Choice
// carries a mutable copy of the move's static data so that effect hooks
// (4.4 step 4) can rewrite base power, accuracy, or flags for this
// half-turn only, without touching the process-wide static tables.
package choice

import "github.com/nicoberrocal/battlecore/internal/tables"

type Kind int

const (
	KindMove Kind = iota
	KindSwitch
)

// Choice is the attacker's or defender's selected action, copied so the
// generator can mutate it locally per 4.4 step 4.
type Choice struct {
	Kind Kind

	// Move fields, valid when Kind == KindMove.
	MoveSlot int
	Move     tables.MoveData

	// Switch fields, valid when Kind == KindSwitch.
	SwitchIndex int

	// Drag marks a choice forced on the user by an opponent effect
	// (e.g. Roar/Whirlwind-style moves); see 4.4 step 2.
	Drag bool
	// IsFirstMoveOfHalfTurn distinguishes the mover-order position this
	// half-turn, used by the drag short-circuit.
	IsFirstMoveOfHalfTurn bool
}

// NewMoveChoice copies move data into a fresh per-turn Choice.
func NewMoveChoice(slot int, m tables.MoveData) Choice {
	return Choice{Kind: KindMove, MoveSlot: slot, Move: m}
}

// NewSwitchChoice builds a switch Choice targeting index idx.
func NewSwitchChoice(idx int) Choice {
	return Choice{Kind: KindSwitch, SwitchIndex: idx}
}

// EffectivePriority orders movers: switches always go before moves,
// matching standard turn-order conventions the source engine follows.
func (c Choice) EffectivePriority() int {
	if c.Kind == KindSwitch {
		return 100
	}
	return c.Move.Priority
}
