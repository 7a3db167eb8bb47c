package ports

import (
	"context"
	"time"

	"github.com/metal-pony/bucket-go/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Branches int
	Duration time.Duration
}

// PuzzleAttempt is the outcome of one subtractive generation run.
// Puzzle is nil when the search exhausted its budget; Pops and Resets
// record the backtracking effort either way.
type PuzzleAttempt struct {
	Puzzle    *domain.Board
	CellsKept []int
	Pops      int
	Resets    int
	Stats     Stats
}

// Solver solves a board and can test uniqueness.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (*domain.Board, Stats, error)
	Unique(ctx context.Context, b *domain.Board) (bool, Stats, error)
}

// Generator produces solved configurations and carves puzzles from them.
type Generator interface {
	Config(ctx context.Context) (*domain.Board, Stats, error)
	Puzzle(ctx context.Context, config *domain.Board, numClues int, keep domain.GridMask) PuzzleAttempt
}

// Validator performs fast constraint checks (row/col/region).
type Validator interface {
	Validate(ctx context.Context, b *domain.Board) (ok bool, conflicts []domain.CellCoord, err error)
}

// Hinter returns the next logical step up to a max strategy tier.
type Hinter interface {
	Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
