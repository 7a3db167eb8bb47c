package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/generator"
	"github.com/metal-pony/bucket-go/internal/ports"
	"github.com/metal-pony/bucket-go/internal/sieve"
	"github.com/metal-pony/bucket-go/internal/solver"
)

const (
	minNumClues = 17
	maxAmount   = 1000
	// chainLevel is how deep the sieve producer scans digit chains when
	// the caller enables the sieve without supplying one.
	chainLevel = 3
)

// GenerateOptions selects between config and puzzle generation and
// tunes the run. Zero values mean: one full configuration, no budget,
// time-based seed.
type GenerateOptions struct {
	// NumClues in [17,81]; 81 (the default) generates full configs.
	NumClues int
	// Amount of outputs requested, in [1,1000]; default 1.
	Amount int
	// Timeout is the global budget across all outputs; 0 means none.
	Timeout time.Duration
	// Config is the solved board to carve puzzles from. When nil in
	// puzzle mode a fresh configuration is generated. Ignored in config
	// mode.
	Config *domain.Board
	// Normalize relabels digits so the solution's top row reads 1..9.
	Normalize bool
	// UseSieve turns on sieve-guided generation. When Sieve is nil a
	// fresh one is populated for 2- and 3-digit chains.
	UseSieve bool
	Sieve    *sieve.Sieve
	// Seed fixes the PRNG stream; 0 seeds from the clock.
	Seed int64
	// Callback is invoked with each generated board.
	Callback func(*domain.Board)
}

// GenerateResult is one requested output. Board is nil when the search
// ran out of budget; Pops and Resets record the effort regardless.
type GenerateResult struct {
	Board     *domain.Board
	CellsKept []int
	Pops      int
	Resets    int
	Stats     ports.Stats
}

func (o *GenerateOptions) validate() error {
	if o.NumClues == 0 {
		o.NumClues = domain.Cells
	}
	if o.Amount == 0 {
		o.Amount = 1
	}
	if o.NumClues < minNumClues || o.NumClues > domain.Cells {
		return fmt.Errorf("%w: numClues %d out of range [%d,%d]", domain.ErrBadInput, o.NumClues, minNumClues, domain.Cells)
	}
	if o.Amount < 1 || o.Amount > maxAmount {
		return fmt.Errorf("%w: amount %d out of range [1,%d]", domain.ErrBadInput, o.Amount, maxAmount)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", domain.ErrBadInput)
	}
	if o.Config != nil && !o.Config.IsSolved() {
		return fmt.Errorf("%w: config board is not solved", domain.ErrBadInput)
	}
	if o.Sieve != nil && o.Config != nil && !o.Sieve.Config().Equals(o.Config) {
		return fmt.Errorf("%w: sieve is keyed to a different config", domain.ErrBadInput)
	}
	return nil
}

// Generate dispatches the config and puzzle generation paths. Only
// option validation errors surface as errors; everything the run can
// reason about is encoded in the results.
func (u *Service) Generate(ctx context.Context, opts GenerateOptions) ([]GenerateResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	eng := solver.NewEngine(rng)
	gen := generator.New(eng)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if opts.NumClues == domain.Cells {
		return u.generateConfigs(ctx, gen, opts)
	}
	return u.generatePuzzles(ctx, eng, gen, rng, opts)
}

func (u *Service) generateConfigs(ctx context.Context, gen *generator.Generator, opts GenerateOptions) ([]GenerateResult, error) {
	results := make([]GenerateResult, 0, opts.Amount)
	for i := 0; i < opts.Amount; i++ {
		cfg, stats, err := gen.Config(ctx)
		if err != nil {
			results = append(results, GenerateResult{Stats: stats})
			break
		}
		if opts.Normalize {
			if err := cfg.Normalize(); err != nil {
				return nil, err
			}
		}
		if opts.Callback != nil {
			opts.Callback(cfg)
		}
		results = append(results, GenerateResult{Board: cfg, Stats: stats})
	}
	return results, nil
}

func (u *Service) generatePuzzles(ctx context.Context, eng *solver.Engine, gen *generator.Generator, rng *rand.Rand, opts GenerateOptions) ([]GenerateResult, error) {
	config := opts.Config
	if config == nil && opts.Sieve != nil {
		config = opts.Sieve.Config()
	}
	if config == nil {
		fresh, _, err := gen.Config(ctx)
		if err != nil {
			return []GenerateResult{{}}, nil
		}
		config = fresh
	}

	var sv *sieve.Sieve
	if opts.UseSieve {
		sv = opts.Sieve
		if sv == nil {
			sv = sieve.New(config)
			if err := sv.PopulateChains(ctx, eng, chainLevel); err != nil && ctx.Err() == nil {
				return nil, err
			}
		}
	}

	results := make([]GenerateResult, 0, opts.Amount)
	for i := 0; i < opts.Amount; i++ {
		keep := domain.GridMask{}
		if sv != nil {
			for _, ci := range sv.CellsToKeep(rng) {
				keep = keep.With(ci)
			}
		}
		att := gen.Puzzle(ctx, config, opts.NumClues, keep)
		if att.Puzzle != nil {
			if opts.Normalize {
				if err := att.Puzzle.NormalizeLike(config); err != nil {
					return nil, err
				}
			}
			if opts.Callback != nil {
				opts.Callback(att.Puzzle)
			}
		}
		results = append(results, GenerateResult{
			Board:     att.Puzzle,
			CellsKept: att.CellsKept,
			Pops:      att.Pops,
			Resets:    att.Resets,
			Stats:     att.Stats,
		})
		if ctx.Err() != nil {
			break
		}
	}
	return results, nil
}
