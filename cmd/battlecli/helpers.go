package main

import (
	"fmt"
	"strings"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/damage"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/mcts"
	"github.com/nicoberrocal/battlecore/internal/search"
	"github.com/nicoberrocal/battlecore/internal/serialize"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

func loadState(text string) (*state.BattleState, error) {
	if text == "" {
		s := &state.BattleState{}
		return s, nil
	}
	s, err := serialize.Deserialize(text)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func allOptions(s *state.BattleState) ([]choice.Choice, []choice.Choice) {
	g := generate.New()
	return g.GetAllOptions(s, state.SideOne), g.GetAllOptions(s, state.SideTwo)
}

func newSearcher(abPrune bool) *search.Searcher {
	return search.New(abPrune)
}

func newMCTS() *mcts.Searcher {
	return mcts.New()
}

func describeChoice(side *state.Side, c choice.Choice) string {
	if c.Kind == choice.KindSwitch {
		return "switch " + strings.ToLower(side.Creatures[c.SwitchIndex].ID)
	}
	return strings.ToLower(c.Move.ID)
}

// stringToChoice resolves a REPL-typed token ("tackle", "pikachu") into a
// Choice against the given side's active moves/party, grounded on
// Side::string_to_movechoice.
func stringToChoice(g *generate.Generator, s *state.BattleState, side state.SideID, token string) (choice.Choice, bool) {
	token = strings.ToLower(token)
	sideState := s.Side(side)
	for i, c := range sideState.Creatures {
		if i == sideState.ActiveIndex {
			continue
		}
		if strings.ToLower(c.ID) == token {
			return choice.NewSwitchChoice(i), true
		}
	}
	active := sideState.Active()
	for i, mv := range active.Moves {
		if strings.ToLower(mv.ID) == token {
			data, ok := g.Catalog.Move(mv.ID)
			if !ok {
				return choice.Choice{}, false
			}
			return choice.NewMoveChoice(i, data), true
		}
	}
	return choice.Choice{}, false
}

func printSubcommandResult(result []float64, s1, s2 []choice.Choice, s *state.BattleState) {
	row, val := search.PickSafest(result, len(s1), len(s2))

	names1 := make([]string, len(s1))
	for i, c := range s1 {
		names1[i] = describeChoice(s.Side(state.SideOne), c)
	}
	names2 := make([]string, len(s2))
	for i, c := range s2 {
		names2[i] = describeChoice(s.Side(state.SideTwo), c)
	}

	fmt.Printf("side one options: %s\n", strings.Join(names1, ","))
	fmt.Printf("side two options: %s\n", strings.Join(names2, ","))

	rowsStr := make([]string, len(result))
	for i, v := range result {
		rowsStr[i] = fmt.Sprintf("%.2f", v)
	}
	fmt.Printf("matrix: %s\n", strings.Join(rowsStr, ","))
	fmt.Printf("choice: %s\n", names1[row])
	fmt.Printf("evaluation: %.2f\n", val)
}

func printExpectiminimaxTable(result []float64, s1, s2 []choice.Choice, s *state.BattleState) {
	row, val := search.PickSafest(result, len(s1), len(s2))

	fmt.Printf("%-12s", " ")
	for _, c := range s2 {
		fmt.Printf("%12s", describeChoice(s.Side(state.SideTwo), c))
	}
	fmt.Println()

	for i, c1 := range s1 {
		fmt.Printf("%-12s", describeChoice(s.Side(state.SideOne), c1))
		for j := range s2 {
			fmt.Printf("%11.2f ", result[i*len(s2)+j])
		}
		fmt.Println()
	}
	fmt.Printf("\nSafest Choice: %s, %.2f\n", describeChoice(s.Side(state.SideOne), s1[row]), val)
}

func calculateDamageIO(s *state.BattleState, moveOne, moveTwo string) error {
	catalog := tables.Default()
	m1, ok := catalog.Move(strings.ToLower(moveOne))
	if !ok {
		return fmt.Errorf("unknown move: %s", moveOne)
	}
	m2, ok := catalog.Move(strings.ToLower(moveTwo))
	if !ok {
		return fmt.Errorf("unknown move: %s", moveTwo)
	}

	c1 := choice.NewMoveChoice(0, m1)
	c2 := choice.NewMoveChoice(0, m2)

	r1 := damage.Calculate(s, state.SideOne, c1, damage.AllRolls, catalog)
	r2 := damage.Calculate(s, state.SideTwo, c2, damage.AllRolls, catalog)

	for _, r := range []damage.Result{r1, r2} {
		if len(r.Damages) == 0 {
			fmt.Println("Damage Rolls: 0")
			continue
		}
		parts := make([]string, len(r.Damages))
		for i, d := range r.Damages {
			parts[i] = fmt.Sprintf("%d", d)
		}
		fmt.Printf("Damage Rolls: %s\n", strings.Join(parts, ","))
	}
	return nil
}
