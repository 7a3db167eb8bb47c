package main

import (
	"context"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/ports"
	"github.com/metal-pony/bucket-go/internal/solver"
)

var (
	solveKind string
	solveSeed int64
)

func init() {
	commandSolve.Flags().StringVar(&solveKind, "solver", "search", "solver to use: search|dlx")
	commandSolve.Flags().Int64VarP(&solveSeed, "seed", "s", 0, "PRNG seed for the search solver (0 seeds from the clock)")
	mainCommand.AddCommand(commandSolve)
}

var commandSolve = &cobra.Command{
	Use:   "solve <board>",
	Short: "Solve an 81-character board and report uniqueness",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSolve(args[0]); err != nil {
			logger.Fatal("solve failed", zap.Error(err))
		}
	},
}

func runSolve(boardStr string) error {
	b, err := domain.Parse(strings.TrimSpace(boardStr))
	if err != nil {
		return err
	}
	var s ports.Solver
	switch strings.ToLower(strings.TrimSpace(solveKind)) {
	case "dlx":
		s = solver.NewDLXSolver()
	default:
		seed := solveSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s = solver.NewEngine(rand.New(rand.NewSource(seed)))
	}
	ctx := context.Background()
	sol, st, err := s.Solve(ctx, b)
	if err != nil {
		return err
	}
	unique, _, err := s.Unique(ctx, b)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(sol.String() + "\n")
	logger.Info("solved",
		zap.Bool("unique", unique),
		zap.Int("nodes", st.Nodes),
		zap.Duration("dur", st.Duration),
	)
	return nil
}
