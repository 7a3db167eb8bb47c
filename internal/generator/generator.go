package generator

import (
	"context"
	"errors"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/ports"
	"github.com/metal-pony/bucket-go/internal/solver"
)

// Generator produces solved configurations and carves puzzles from them
// by subtractive search. All randomness comes from the engine's stream.
type Generator struct {
	Engine *solver.Engine
}

// New wires a generator around the given search engine.
func New(eng *solver.Engine) *Generator {
	return &Generator{Engine: eng}
}

// Config returns a random fully solved board: the first solution of the
// empty grid under the engine's randomized search.
func (g *Generator) Config(ctx context.Context) (*domain.Board, ports.Stats, error) {
	sol, res := g.Engine.FirstSolution(ctx, domain.NewBoard())
	if sol == nil {
		if err := ctx.Err(); err != nil {
			return nil, res.Stats(), err
		}
		return nil, res.Stats(), errors.New("no configuration found")
	}
	// Re-root so the solved digits become the board's initial clues.
	cfg, err := domain.FromDigits(sol.Digits())
	if err != nil {
		return nil, res.Stats(), err
	}
	return cfg, res.Stats(), nil
}
