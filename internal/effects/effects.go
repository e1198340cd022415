// Package effects implements the ability/item hook tables (component E):
// small, keyed-by-identifier callback sets that the instruction generator
// consults at fixed pipeline points. Hooks are pure with respect to their
// inputs — they read state and return deltas; the generate package is responsible
// for applying and eventually reversing whatever they return, preserving
// the single reversibility contract.
package effects

import (
	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/state"
)

// BeforeMoveFn emits deltas that happen just before an attack resolves
// (e.g. a quiver-dance-before-move style effect).
type BeforeMoveFn func(s *state.BattleState, side state.SideID, c choice.Choice) delta.List

// ModifyAttackFn mutates a move choice in place (base power, accuracy,
// flags) for this half-turn only.
type ModifyAttackFn func(s *state.BattleState, side state.SideID, self *choice.Choice, other choice.Choice)

// AfterDamageHitFn emits deltas once a hit has landed and dealt damage.
type AfterDamageHitFn func(s *state.BattleState, side state.SideID, c choice.Choice, damageDealt int) delta.List

// SwitchInFn/EndOfTurnFn emit deltas on switch-in or at end of turn.
type SwitchInFn func(s *state.BattleState, side state.SideID) delta.List
type EndOfTurnFn func(s *state.BattleState, side state.SideID) delta.List

// HookSet groups every hook point an ability or item may implement; a nil
// field means that hook point is a no-op for this identifier.
type HookSet struct {
	BeforeMove            BeforeMoveFn
	ModifyAttackBeingUsed ModifyAttackFn
	ModifyAttackAgainst   ModifyAttackFn
	AfterDamageHit        AfterDamageHitFn
	OnSwitchIn            SwitchInFn
	EndOfTurn             EndOfTurnFn
}

// Registry is the process-wide, immutable table of ability/item hooks,
// keyed by identifier. Identifiers absent from these maps are treated as
// no-ops (UnknownIdentifier policy, spec §7), not an error.
type Registry struct {
	Abilities map[string]HookSet
	Items     map[string]HookSet
}

var defaultRegistry = buildDefaultRegistry()

// Default returns the process-wide hook registry.
func Default() *Registry { return defaultRegistry }

// Ability returns the hook set for an ability id, or the zero HookSet
// (every hook a no-op) if the id is unknown.
func (r *Registry) Ability(id string) HookSet { return r.Abilities[id] }

// Item returns the hook set for an item id, or the zero HookSet if the
// id is unknown.
func (r *Registry) Item(id string) HookSet { return r.Items[id] }

// HasSturdy reports whether ability id is Sturdy, which the generator's
// damage-application step (4.4 step 11) special-cases directly since it
// needs to compare against the defender's HP-before-hit, a piece of
// context a plain delta-returning hook can't express.
func HasSturdy(abilityID string) bool { return abilityID == "sturdy" }

func fractionalHeal(maxhp, denom int) int {
	v := maxhp / denom
	if v < 1 {
		v = 1
	}
	return v
}

func buildDefaultRegistry() *Registry {
	abilities := map[string]HookSet{}

	items := map[string]HookSet{
		"leftovers": {
			EndOfTurn: func(s *state.BattleState, side state.SideID) delta.List {
				c := s.Side(side).Active()
				if !c.Alive() {
					return nil
				}
				amt := fractionalHeal(c.MaxHP, 16)
				if amt > c.MaxHP-c.HP {
					amt = c.MaxHP - c.HP
				}
				if amt <= 0 {
					return nil
				}
				return delta.List{delta.Heal{Side: side, Amount: amt}}
			},
		},
		"black-sludge": {
			EndOfTurn: func(s *state.BattleState, side state.SideID) delta.List {
				c := s.Side(side).Active()
				if !c.Alive() {
					return nil
				}
				if c.Type1 == "poison" || c.Type2 == "poison" {
					amt := fractionalHeal(c.MaxHP, 16)
					if amt > c.MaxHP-c.HP {
						amt = c.MaxHP - c.HP
					}
					if amt <= 0 {
						return nil
					}
					return delta.List{delta.Heal{Side: side, Amount: amt}}
				}
				dmg := fractionalHeal(c.MaxHP, 8)
				if dmg > c.HP {
					dmg = c.HP
				}
				return delta.List{delta.Heal{Side: side, Amount: -dmg}}
			},
		},
		"flame-orb": {
			EndOfTurn: func(s *state.BattleState, side state.SideID) delta.List {
				c := s.Side(side).Active()
				if !c.Alive() || c.Status != state.StatusNone {
					return nil
				}
				return delta.List{delta.ChangeStatus{Side: side, PokemonIndex: s.Side(side).ActiveIndex, Old: state.StatusNone, New: state.StatusBurn}}
			},
		},
		"toxic-orb": {
			EndOfTurn: func(s *state.BattleState, side state.SideID) delta.List {
				c := s.Side(side).Active()
				if !c.Alive() || c.Status != state.StatusNone {
					return nil
				}
				return delta.List{delta.ChangeStatus{Side: side, PokemonIndex: s.Side(side).ActiveIndex, Old: state.StatusNone, New: state.StatusToxic}}
			},
		},
	}

	return &Registry{Abilities: abilities, Items: items}
}
