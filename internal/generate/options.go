package generate

import (
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/state"
)

// GetAllOptions enumerates a side's legal choices in the current state:
// team-preview lead selection, switch targets (absent if force_trapped),
// and non-disabled, non-exhausted move slots (restricted to last_used_move
// when slow_uturn_move locks the side in), grounded on io.rs's
// io_get_all_options.
func (g *Generator) GetAllOptions(s *state.BattleState, side state.SideID) []choice.Choice {
	if s.TeamPreview {
		return g.leadOptions(s, side)
	}

	sideState := s.Side(side)
	active := sideState.Active()

	if !active.Alive() {
		return g.switchOptions(s, side)
	}

	var opts []choice.Choice
	if !sideState.ForceTrapped {
		opts = append(opts, g.switchOptions(s, side)...)
	}

	for i, mv := range active.Moves {
		if mv.Disabled || mv.PP == 0 {
			continue
		}
		if sideState.SlowUTurnMove && sideState.LastUsedMove != "" && mv.ID != sideState.LastUsedMove {
			continue
		}
		data, ok := g.Catalog.Move(mv.ID)
		if !ok {
			continue
		}
		opts = append(opts, choice.NewMoveChoice(i, data))
	}
	return opts
}

func (g *Generator) switchOptions(s *state.BattleState, side state.SideID) []choice.Choice {
	var opts []choice.Choice
	sideState := s.Side(side)
	for i, c := range sideState.Creatures {
		if i == sideState.ActiveIndex {
			continue
		}
		if !c.Alive() {
			continue
		}
		opts = append(opts, choice.NewSwitchChoice(i))
	}
	return opts
}

func (g *Generator) leadOptions(s *state.BattleState, side state.SideID) []choice.Choice {
	var opts []choice.Choice
	for i, c := range s.Side(side).Creatures {
		if !c.Alive() {
			continue
		}
		opts = append(opts, choice.NewSwitchChoice(i))
	}
	return opts
}
