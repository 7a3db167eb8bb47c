package solver

import (
	"context"
	"errors"
	"math/rand"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/ports"
)

// minClues is the fewest clues a uniquely solvable 9x9 puzzle can have.
const minClues = 17

// Engine binds the search to one PRNG stream. The generator and every
// solver specialization of a run draw from the same stream, so a fixed
// seed reproduces output bit for bit.
type Engine struct {
	Rand *rand.Rand
}

func NewEngine(rng *rand.Rand) *Engine { return &Engine{Rand: rng} }

// FirstSolution returns one solution of b, or nil when none exists or
// the context expired. A single stack suffices here.
func (e *Engine) FirstSolution(ctx context.Context, b *domain.Board) (*domain.Board, Result) {
	res := Search(ctx, b, Options{
		OnSolution:         func(*domain.Board, int) bool { return false },
		ConcurrentBranches: 1,
		Rand:               e.Rand,
	})
	if len(res.Solutions) == 0 {
		return nil, res
	}
	return res.Solutions[0], res
}

// SolutionsFlag summarizes b's solution count as 0, 1, or 2 ("2 or
// more"). Boards with fewer than 17 clues cannot be unique, so those
// short-circuit to 2 without searching.
func (e *Engine) SolutionsFlag(ctx context.Context, b *domain.Board) (int, Result) {
	if b.NumEmpty() > domain.Cells-minClues {
		return 2, Result{Complete: true}
	}
	res := Search(ctx, b, Options{
		OnSolution: func(_ *domain.Board, found int) bool { return found < 2 },
		Rand:       e.Rand,
	})
	if len(res.Solutions) > 2 {
		return 2, res
	}
	return len(res.Solutions), res
}

// AllSolutions enumerates every solution of b, distinct by digits.
func (e *Engine) AllSolutions(ctx context.Context, b *domain.Board, opts Options) Result {
	opts.Rand = e.Rand
	res := Search(ctx, b, opts)
	seen := make(map[string]struct{}, len(res.Solutions))
	distinct := res.Solutions[:0]
	for _, sol := range res.Solutions {
		key := sol.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, sol)
	}
	res.Solutions = distinct
	return res
}

// Stats converts the run metrics into the shared ports form.
func (r Result) Stats() ports.Stats {
	return ports.Stats{Nodes: r.Iterations, Branches: r.Branches, Duration: r.Elapsed}
}

// Solve implements ports.Solver.
func (e *Engine) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	sol, res := e.FirstSolution(ctx, b)
	if sol == nil {
		return nil, res.Stats(), errors.New("unsolvable or canceled")
	}
	return sol, res.Stats(), nil
}

// Unique implements ports.Solver: exactly one solution.
func (e *Engine) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	flag, res := e.SolutionsFlag(ctx, b)
	return flag == 1, res.Stats(), nil
}
