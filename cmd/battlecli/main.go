// Command battlecli exposes the search and generation engine as both a
// one-shot subcommand tool and an interactive REPL, grounded on
// cr-api/main.go for the urfave/cli/v3 command-tree shape and on io.rs's
// command_loop for the REPL's exact command set and behavior.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nicoberrocal/battlecore/internal/config"
	"github.com/nicoberrocal/battlecore/internal/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "battlecli",
		Usage: "creature-battle instruction generator and adversarial search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "serialized battle state (see internal/serialize)",
			},
		},
		Commands: []*cli.Command{
			expectiminimaxCommand(),
			iterativeDeepeningCommand(),
			monteCarloTreeSearchCommand(),
			calculateDamageCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			runREPL(cmd.String("state"))
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

func expectiminimaxCommand() *cli.Command {
	return &cli.Command{
		Name:  "expectiminimax",
		Usage: "run a fixed-depth expectiminimax search and print the safest choice",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "state", Required: true},
			&cli.BoolFlag{Name: "ab-prune"},
			&cli.IntFlag{Name: "depth", Value: config.DefaultFixedDepth},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadState(cmd.String("state"))
			if err != nil {
				return err
			}
			s1, s2 := allOptions(s)
			se := newSearcher(cmd.Bool("ab-prune"))
			result := se.Expectiminimax(s, int(cmd.Int("depth")), s1, s2)
			printSubcommandResult(result, s1, s2, s)
			return nil
		},
	}
}

func iterativeDeepeningCommand() *cli.Command {
	return &cli.Command{
		Name:  "iterative-deepening",
		Usage: "search with increasing depth until the time budget elapses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "state", Required: true},
			&cli.IntFlag{Name: "time-to-search-ms", Value: int64(config.DefaultIterativeDeepeningBudget / time.Millisecond)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadState(cmd.String("state"))
			if err != nil {
				return err
			}
			s1, s2 := allOptions(s)
			se := newSearcher(true)
			budget := time.Duration(cmd.Int("time-to-search-ms")) * time.Millisecond
			start := time.Now()
			res := se.IterativeDeepen(s, s1, s2, budget)
			printSubcommandResult(res.Matrix, res.S1Options, res.S2Options, s)
			fmt.Printf("Took: %s\n", time.Since(start))
			fmt.Printf("Depth Searched: %d\n", res.Depth)
			return nil
		},
	}
}

func monteCarloTreeSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "monte-carlo-tree-search",
		Usage: "run Monte Carlo tree search for the given time budget",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "state", Required: true},
			&cli.IntFlag{Name: "time-to-search-ms", Value: int64(config.DefaultIterativeDeepeningBudget / time.Millisecond)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadState(cmd.String("state"))
			if err != nil {
				return err
			}
			s1, s2 := allOptions(s)
			m := newMCTS()
			budget := time.Duration(cmd.Int("time-to-search-ms")) * time.Millisecond
			start := time.Now()
			best, score := m.Search(s, s1, s2, budget)
			fmt.Printf("Best choice: %s, score %.2f\n", describeChoice(s.Side(0), best), score)
			fmt.Printf("Took: %s\n", time.Since(start))
			return nil
		},
	}
}

func calculateDamageCommand() *cli.Command {
	return &cli.Command{
		Name:  "calculate-damage",
		Usage: "compute the damage roll set for a move pair",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "state", Required: true},
			&cli.StringFlag{Name: "side-one-move", Required: true},
			&cli.StringFlag{Name: "side-two-move", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadState(cmd.String("state"))
			if err != nil {
				return err
			}
			return calculateDamageIO(s, cmd.String("side-one-move"), cmd.String("side-two-move"))
		},
	}
}
