package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/usecase"
)

var (
	generateClues     int
	generateAmount    int
	generateSeed      int64
	generateTimeout   time.Duration
	generateNormalize bool
	generateSieve     bool
	generateConfig    string
)

func init() {
	commandGenerate.Flags().IntVarP(&generateClues, "clues", "c", domain.Cells, "number of clues (17..81; 81 generates full configurations)")
	commandGenerate.Flags().IntVarP(&generateAmount, "amount", "n", 1, "number of boards to generate")
	commandGenerate.Flags().Int64VarP(&generateSeed, "seed", "s", 0, "PRNG seed (0 seeds from the clock)")
	commandGenerate.Flags().DurationVarP(&generateTimeout, "timeout", "t", 0, "global time budget (0 = none)")
	commandGenerate.Flags().BoolVar(&generateNormalize, "normalize", false, "relabel digits so the top row reads 1..9")
	commandGenerate.Flags().BoolVar(&generateSieve, "sieve", false, "guide puzzle generation with an unavoidable-set sieve")
	commandGenerate.Flags().StringVar(&generateConfig, "config", "", "solved 81-char board to carve puzzles from")
	mainCommand.AddCommand(commandGenerate)
}

var commandGenerate = &cobra.Command{
	Use:   "generate",
	Short: "Generate configurations or puzzles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(); err != nil {
			logger.Fatal("generate failed", zap.Error(err))
		}
	},
}

func runGenerate() error {
	opts := usecase.GenerateOptions{
		NumClues:  generateClues,
		Amount:    generateAmount,
		Timeout:   generateTimeout,
		Normalize: generateNormalize,
		UseSieve:  generateSieve,
		Seed:      generateSeed,
	}
	if generateConfig != "" {
		config, err := domain.Parse(generateConfig)
		if err != nil {
			return err
		}
		opts.Config = config
	}
	uc := usecase.NewService(nil, nil, nil, nil)
	results, err := uc.Generate(context.Background(), opts)
	if err != nil {
		return err
	}
	for i, res := range results {
		if res.Board == nil {
			logger.Warn("no board produced within budget",
				zap.Int("index", i),
				zap.Int("pops", res.Pops),
				zap.Int("resets", res.Resets),
			)
			continue
		}
		os.Stdout.WriteString(res.Board.String() + "\n")
		logger.Debug("generated",
			zap.Int("index", i),
			zap.Int("clues", res.Board.NumClues()),
			zap.Int("nodes", res.Stats.Nodes),
			zap.Int("pops", res.Pops),
			zap.Int("resets", res.Resets),
			zap.Duration("dur", res.Stats.Duration),
		)
	}
	return nil
}
