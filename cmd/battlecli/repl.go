package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nicoberrocal/battlecore/internal/delta"
	"github.com/nicoberrocal/battlecore/internal/evaluate"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/logging"
	"github.com/nicoberrocal/battlecore/internal/search"
	"github.com/nicoberrocal/battlecore/internal/serialize"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/tables"
)

// replData mirrors IOData: the live state, the undo stack of already
// applied delta lists, and the last batch of branches generate-instructions
// produced (so apply/pop can act on them by index). session correlates this
// REPL's lifetime with external log lines and, eventually, a persisted run.
type replData struct {
	state               *state.BattleState
	session             state.Session
	appliedStack        []delta.List
	lastGenerated       []generate.Branch
	generator           *generate.Generator
	catalog             *tables.Catalog
}

// runREPL implements command_loop's exact command set: state/s,
// serialize/ser, matchup/m, generate-instructions/g, calculate-damage/d,
// instructions/i, evaluate/ev, iterative-deepening/id, mcts,
// apply/a, pop/p, pop-all/pa, session/sess, expectiminimax/e, exit/quit/q.
func runREPL(initialState string) {
	rd := &replData{
		state:     &state.BattleState{},
		generator: generate.New(),
		catalog:   tables.Default(),
	}
	if initialState != "" {
		if s, err := serialize.Deserialize(initialState); err == nil {
			rd.state = &s
		} else {
			fmt.Printf("failed to parse initial state: %v\n", err)
		}
	}
	rd.session = state.NewSession(*rd.state)
	logging.L().Info("repl session started", zap.String("session_id", rd.session.ID.Hex()))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]
		rd.dispatch(command, args)
		if command == "exit" || command == "quit" || command == "q" {
			break
		}
	}
}

func (rd *replData) dispatch(command string, args []string) {
	switch command {
	case "state", "s":
		if len(args) == 0 {
			fmt.Println("Expected state string")
			return
		}
		s, err := serialize.Deserialize(args[0])
		if err != nil {
			fmt.Printf("failed to parse state: %v\n", err)
			return
		}
		rd.state = &s
		rd.session = state.NewSession(*rd.state)
		logging.L().Info("repl session started", zap.String("session_id", rd.session.ID.Hex()))
		fmt.Println("state initialized")

	case "serialize", "ser":
		fmt.Println(serialize.Serialize(rd.state))

	case "session", "sess":
		fmt.Println(rd.session.ID.Hex())

	case "matchup", "m":
		rd.printMatchup()

	case "generate-instructions", "g":
		rd.generateInstructions(args)

	case "calculate-damage", "d":
		if len(args) < 2 {
			fmt.Println("Usage: calculate-damage <side-1 move> <side-2 move>")
			return
		}
		if err := calculateDamageIO(rd.state, args[0], args[1]); err != nil {
			fmt.Println(err)
		}

	case "instructions", "i":
		fmt.Printf("%+v\n", rd.lastGenerated)

	case "evaluate", "ev":
		fmt.Printf("Evaluation: %.2f\n", evaluate.Evaluate(rd.state, rd.catalog))

	case "iterative-deepening", "id":
		rd.iterativeDeepening(args)

	case "monte-carlo-tree-search", "mcts":
		rd.monteCarlo(args)

	case "apply", "a":
		rd.apply(args)

	case "pop", "p":
		rd.pop()

	case "pop-all", "pa":
		rd.popAll()

	case "expectiminimax", "e":
		rd.expectiminimax(args)

	case "exit", "quit", "q":
		return

	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (rd *replData) printMatchup() {
	s1, s2 := allOptions(rd.state)
	active1 := rd.state.Side(state.SideOne).Active()
	active2 := rd.state.Side(state.SideTwo).Active()

	fmt.Printf("Active: %s\nHP: %d/%d\nStatus: %s\n\n", active1.ID, active1.HP, active1.MaxHP, active1.Status)
	fmt.Printf("vs\n\n")
	fmt.Printf("Active: %s\nHP: %d/%d\nStatus: %s\n\n", active2.ID, active2.HP, active2.MaxHP, active2.Status)

	names1 := make([]string, len(s1))
	for i, c := range s1 {
		names1[i] = describeChoice(rd.state.Side(state.SideOne), c)
	}
	names2 := make([]string, len(s2))
	for i, c := range s2 {
		names2[i] = describeChoice(rd.state.Side(state.SideTwo), c)
	}
	fmt.Printf("Available Choices: [%s]\nvs\nAvailable Choices: [%s]\n", strings.Join(names1, ", "), strings.Join(names2, ", "))
}

func (rd *replData) generateInstructions(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: generate-instructions <side-1 move> <side-2 move>")
		return
	}
	c1, ok := stringToChoice(rd.generator, rd.state, state.SideOne, args[0])
	if !ok {
		fmt.Printf("Invalid move choice for side one: %s\n", args[0])
		return
	}
	c2, ok := stringToChoice(rd.generator, rd.state, state.SideTwo, args[1])
	if !ok {
		fmt.Printf("Invalid move choice for side two: %s\n", args[1])
		return
	}
	branches := rd.generator.GenerateInstructionsFromMovePair(rd.state, c1, c2)
	fmt.Printf("%+v\n", branches)
	rd.lastGenerated = branches
}

func (rd *replData) iterativeDeepening(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: iterative-deepening <timeout_ms>")
		return
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("timeout_ms must be an integer")
		return
	}
	s1, s2 := allOptions(rd.state)
	se := search.New(true)
	start := time.Now()
	res := se.IterativeDeepen(rd.state, s1, s2, time.Duration(ms)*time.Millisecond)
	elapsed := time.Since(start)
	printExpectiminimaxTable(res.Matrix, res.S1Options, res.S2Options, rd.state)
	fmt.Printf("Took: %s\n", elapsed)
	fmt.Printf("Depth Searched: %d\n", res.Depth)
}

func (rd *replData) monteCarlo(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: monte-carlo-tree-search <timeout_ms>")
		return
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("timeout_ms must be an integer")
		return
	}
	s1, s2 := allOptions(rd.state)
	m := newMCTS()
	start := time.Now()
	best, score := m.Search(rd.state, s1, s2, time.Duration(ms)*time.Millisecond)
	elapsed := time.Since(start)
	fmt.Printf("Best choice: %s, score %.2f\n", describeChoice(rd.state.Side(state.SideOne), best), score)
	fmt.Printf("Took: %s\n", elapsed)
}

func (rd *replData) apply(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: apply <instruction index>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= len(rd.lastGenerated) {
		fmt.Println("invalid instruction index")
		return
	}
	branch := rd.lastGenerated[idx]
	delta.ApplyAll(rd.state, branch.Deltas)
	rd.appliedStack = append(rd.appliedStack, branch.Deltas)
	rd.lastGenerated = nil
}

func (rd *replData) pop() {
	if len(rd.appliedStack) == 0 {
		fmt.Println("No instructions to pop")
		return
	}
	last := rd.appliedStack[len(rd.appliedStack)-1]
	rd.appliedStack = rd.appliedStack[:len(rd.appliedStack)-1]
	delta.ReverseAll(rd.state, last)
}

func (rd *replData) popAll() {
	for i := len(rd.appliedStack) - 1; i >= 0; i-- {
		delta.ReverseAll(rd.state, rd.appliedStack[i])
	}
	rd.appliedStack = nil
}

func (rd *replData) expectiminimax(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: expectiminimax <depth> <ab_prune=false>")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("depth must be an integer")
		return
	}
	abPrune := false
	if len(args) > 1 {
		abPrune, _ = strconv.ParseBool(args[1])
	}
	s1, s2 := allOptions(rd.state)
	se := search.New(abPrune)
	start := time.Now()
	result := se.Expectiminimax(rd.state, depth, s1, s2)
	elapsed := time.Since(start)
	printExpectiminimaxTable(result, s1, s2, rd.state)
	fmt.Printf("\nTook: %s\n", elapsed)
}
