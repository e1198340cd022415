// Package serialize implements the §6.1 text (de)serialization format: a
// dash/semicolon-separated, human-typeable encoding that the CLI's REPL
// uses for both loading and displaying battle states, grounded on
// io.rs's State::deserialize/serialize field order.
package serialize

import (
	"strconv"
	"strings"

	"github.com/nicoberrocal/battlecore/internal/battleerr"
	"github.com/nicoberrocal/battlecore/internal/state"
)

const (
	sideSep     = "/"
	fieldSep    = "-"
	partSep     = ","
	moveSep     = ";"
	moveRecSep  = "|"
)

// creatureFieldCount is the fixed number of comma-separated fields one
// serialized creature occupies; used to split six creatures packed into
// a single comma-joined list without ambiguity.
const creatureFieldCount = 19

// Serialize renders a state to its text form:
// side_one/side_two/weather;turns/terrain;turns/trick_room
func Serialize(s *state.BattleState) string {
	parts := []string{
		serializeSide(&s.SideOne),
		serializeSide(&s.SideTwo),
		string(s.Weather.Kind) + moveSep + strconv.Itoa(s.Weather.TurnsRemaining),
		string(s.Terrain.Kind) + moveSep + strconv.Itoa(s.Terrain.TurnsRemaining),
		strconv.FormatBool(s.TrickRoom),
	}
	return strings.Join(parts, sideSep)
}

func serializeSide(side *state.Side) string {
	creatures := make([]string, len(side.Creatures))
	for i := range side.Creatures {
		creatures[i] = serializeCreature(&side.Creatures[i])
	}
	conditions := make([]string, 0, len(state.SideConditionOrder))
	for _, c := range state.SideConditionOrder {
		conditions = append(conditions, string(c)+moveSep+strconv.Itoa(side.Conditions[c]))
	}
	fields := []string{
		strings.Join(creatures, partSep),
		strconv.Itoa(side.ActiveIndex),
		strings.Join(conditions, partSep),
		strconv.Itoa(side.Wish.TurnsRemaining),
		strconv.Itoa(side.Wish.HealAmount),
		strconv.FormatBool(side.ForceTrapped),
		side.LastUsedMove,
	}
	return strings.Join(fields, fieldSep)
}

// serializeCreature writes creatureFieldCount comma-separated fields, in
// the fixed order deserializeCreature expects.
func serializeCreature(c *state.Creature) string {
	moves := make([]string, len(c.Moves))
	for i, mv := range c.Moves {
		moves[i] = mv.ID + moveSep + strconv.FormatBool(mv.Disabled) + moveSep + strconv.Itoa(mv.PP)
	}
	boosts := make([]string, 0, len(state.BoostableStats))
	for _, st := range state.BoostableStats {
		boosts = append(boosts, strconv.Itoa(c.Boosts[st]))
	}
	var volatiles []string
	for _, v := range []state.VolatileStatus{
		state.VolatileLeechSeed, state.VolatileSubstitute, state.VolatileConfusion,
		state.VolatileTaunt, state.VolatileFlinch, state.VolatileAquaRing, state.VolatileAttract,
	} {
		if c.Volatiles[v] {
			volatiles = append(volatiles, string(v))
		}
	}
	fields := []string{
		c.ID, c.Type1, c.Type2,
		strconv.Itoa(c.HP), strconv.Itoa(c.MaxHP), strconv.Itoa(c.Level),
		strconv.Itoa(c.Attack), strconv.Itoa(c.Defense),
		strconv.Itoa(c.SpecialAttack), strconv.Itoa(c.SpecialDefense), strconv.Itoa(c.Speed),
		strings.Join(boosts, moveSep),
		string(c.Status),
		strings.Join(volatiles, moveSep),
		c.Ability, c.Item,
		strings.Join(moves, moveRecSep),
		strconv.Itoa(c.SubstituteHP),
		c.Nature,
	}
	return strings.Join(fields, partSep)
}

// Deserialize parses text produced by Serialize, returning a typed
// battleerr.CodeStateParseError on any malformed or out-of-range field.
func Deserialize(text string) (state.BattleState, error) {
	sections := strings.Split(text, sideSep)
	if len(sections) != 5 {
		return state.BattleState{}, battleerr.StateParseError(nil, "expected 5 top-level sections separated by %q, got %d", sideSep, len(sections))
	}

	s1, err := deserializeSide(sections[0])
	if err != nil {
		return state.BattleState{}, err
	}
	s2, err := deserializeSide(sections[1])
	if err != nil {
		return state.BattleState{}, err
	}
	weatherKind, weatherTurns, err := deserializeFieldCondition(sections[2])
	if err != nil {
		return state.BattleState{}, err
	}
	terrainKind, terrainTurns, err := deserializeFieldCondition(sections[3])
	if err != nil {
		return state.BattleState{}, err
	}
	trickRoom, err := strconv.ParseBool(sections[4])
	if err != nil {
		return state.BattleState{}, battleerr.StateParseError(err, "trick_room must be a bool, got %q", sections[4])
	}

	return state.BattleState{
		SideOne:   s1,
		SideTwo:   s2,
		Weather:   state.Weather{Kind: state.WeatherKind(weatherKind), TurnsRemaining: weatherTurns},
		Terrain:   state.Terrain{Kind: state.TerrainKind(terrainKind), TurnsRemaining: terrainTurns},
		TrickRoom: trickRoom,
	}, nil
}

func deserializeFieldCondition(section string) (string, int, error) {
	parts := strings.Split(section, moveSep)
	if len(parts) != 2 {
		return "", 0, battleerr.StateParseError(nil, "field condition %q must be kind;turns", section)
	}
	turns, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, battleerr.StateParseError(err, "field condition turns %q is not an integer", parts[1])
	}
	return parts[0], turns, nil
}

func deserializeSide(section string) (state.Side, error) {
	fields := strings.Split(section, fieldSep)
	if len(fields) != 7 {
		return state.Side{}, battleerr.StateParseError(nil, "side section must have 7 %q-separated fields, got %d", fieldSep, len(fields))
	}

	creatureStrs := splitCreatures(fields[0])
	if len(creatureStrs) != 6 {
		return state.Side{}, battleerr.StateParseError(nil, "side must list exactly 6 creatures, got %d", len(creatureStrs))
	}
	var side state.Side
	for i, cs := range creatureStrs {
		c, err := deserializeCreature(cs)
		if err != nil {
			return state.Side{}, err
		}
		side.Creatures[i] = c
	}

	activeIdx, err := strconv.Atoi(fields[1])
	if err != nil || activeIdx < 0 || activeIdx > 5 {
		return state.Side{}, battleerr.StateParseError(err, "active_index %q must be an integer in [0,5]", fields[1])
	}
	side.ActiveIndex = activeIdx

	side.Conditions = state.SideConditions{}
	if fields[2] != "" {
		for _, cond := range strings.Split(fields[2], partSep) {
			kv := strings.Split(cond, moveSep)
			if len(kv) != 2 {
				return state.Side{}, battleerr.StateParseError(nil, "side condition %q must be name;layers", cond)
			}
			n, err := strconv.Atoi(kv[1])
			if err != nil {
				return state.Side{}, battleerr.StateParseError(err, "side condition layers %q is not an integer", kv[1])
			}
			if n != 0 {
				side.Conditions[state.SideCondition(kv[0])] = n
			}
		}
	}

	wishTurns, err := strconv.Atoi(fields[3])
	if err != nil {
		return state.Side{}, battleerr.StateParseError(err, "wish_turns %q is not an integer", fields[3])
	}
	wishAmount, err := strconv.Atoi(fields[4])
	if err != nil {
		return state.Side{}, battleerr.StateParseError(err, "wish_amount %q is not an integer", fields[4])
	}
	side.Wish = state.Wish{TurnsRemaining: wishTurns, HealAmount: wishAmount}

	forceTrapped, err := strconv.ParseBool(fields[5])
	if err != nil {
		return state.Side{}, battleerr.StateParseError(err, "force_trapped %q must be a bool", fields[5])
	}
	side.ForceTrapped = forceTrapped
	side.LastUsedMove = fields[6]
	side.SlowUTurnMove = side.LastUsedMove != ""

	return side, nil
}

// splitCreatures splits six comma-joined creature records, each of which
// itself contains commas, by counting the fixed number of comma-separated
// fields per creature instead of guessing at delimiters.
func splitCreatures(s string) []string {
	all := strings.Split(s, partSep)
	var out []string
	for i := 0; i+creatureFieldCount <= len(all); i += creatureFieldCount {
		out = append(out, strings.Join(all[i:i+creatureFieldCount], partSep))
	}
	return out
}

func deserializeCreature(s string) (state.Creature, error) {
	f := strings.Split(s, partSep)
	if len(f) != creatureFieldCount {
		return state.Creature{}, battleerr.StateParseError(nil, "creature record must have %d fields, got %d: %q", creatureFieldCount, len(f), s)
	}

	atoi := func(label, v string) (int, error) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, battleerr.StateParseError(err, "%s %q is not an integer", label, v)
		}
		return n, nil
	}

	hp, err := atoi("hp", f[3])
	if err != nil {
		return state.Creature{}, err
	}
	maxhp, err := atoi("maxhp", f[4])
	if err != nil {
		return state.Creature{}, err
	}
	if hp > maxhp || hp < 0 {
		return state.Creature{}, battleerr.StateParseError(nil, "hp %d out of range [0,%d]", hp, maxhp)
	}
	level, err := atoi("level", f[5])
	if err != nil {
		return state.Creature{}, err
	}
	atk, err := atoi("attack", f[6])
	if err != nil {
		return state.Creature{}, err
	}
	def, err := atoi("defense", f[7])
	if err != nil {
		return state.Creature{}, err
	}
	spa, err := atoi("special_attack", f[8])
	if err != nil {
		return state.Creature{}, err
	}
	spd, err := atoi("special_defense", f[9])
	if err != nil {
		return state.Creature{}, err
	}
	spe, err := atoi("speed", f[10])
	if err != nil {
		return state.Creature{}, err
	}

	boosts := state.NewBoosts()
	boostStrs := strings.Split(f[11], moveSep)
	if len(boostStrs) != len(state.BoostableStats) {
		return state.Creature{}, battleerr.StateParseError(nil, "boosts field must have %d entries, got %d", len(state.BoostableStats), len(boostStrs))
	}
	for i, st := range state.BoostableStats {
		v, err := atoi("boost."+string(st), boostStrs[i])
		if err != nil {
			return state.Creature{}, err
		}
		if v < -6 || v > 6 {
			return state.Creature{}, battleerr.StateParseError(nil, "boost %s=%d out of range [-6,6]", st, v)
		}
		boosts[st] = v
	}

	volatiles := map[state.VolatileStatus]bool{}
	if f[13] != "" {
		for _, v := range strings.Split(f[13], moveSep) {
			volatiles[state.VolatileStatus(v)] = true
		}
	}

	var moves [4]state.Move
	moveRecords := strings.Split(f[16], moveRecSep)
	if len(moveRecords) != 4 {
		return state.Creature{}, battleerr.StateParseError(nil, "moves field must list exactly 4 moves separated by %q, got %d", moveRecSep, len(moveRecords))
	}
	for i, mr := range moveRecords {
		mf := strings.Split(mr, moveSep)
		if len(mf) != 3 {
			return state.Creature{}, battleerr.StateParseError(nil, "move record %q must be id;disabled;pp", mr)
		}
		disabled, err := strconv.ParseBool(mf[1])
		if err != nil {
			return state.Creature{}, battleerr.StateParseError(err, "move disabled flag %q must be a bool", mf[1])
		}
		pp, err := atoi("move.pp", mf[2])
		if err != nil {
			return state.Creature{}, err
		}
		moves[i] = state.Move{ID: mf[0], Disabled: disabled, PP: pp}
	}

	substituteHP, err := atoi("substitute_hp", f[17])
	if err != nil {
		return state.Creature{}, err
	}

	return state.Creature{
		ID: f[0], Type1: f[1], Type2: f[2],
		HP: hp, MaxHP: maxhp, Level: level,
		Attack: atk, Defense: def, SpecialAttack: spa, SpecialDefense: spd, Speed: spe,
		Boosts:       boosts,
		Status:       state.Status(f[12]),
		Volatiles:    volatiles,
		Ability:      f[14],
		Item:         f[15],
		Moves:        moves,
		SubstituteHP: substituteHP,
		Nature:       f[18],
	}, nil
}
