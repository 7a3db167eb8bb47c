package usecase

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/sieve"
	"github.com/metal-pony/bucket-go/internal/solver"
)

const solvedGrid = "218574639573896124469123578721459386354681792986237415147962853695318247832745961"

// unavoidable49 is an 8/9 rectangle of solvedGrid (rows 0/2, cols 2/8).
var unavoidable49 = []int{2, 8, 20, 26}

func testService() *Service {
	return NewService(nil, nil, nil, nil)
}

func parseConfig(t *testing.T) *domain.Board {
	t.Helper()
	b, err := domain.Parse(solvedGrid)
	require.NoError(t, err)
	return b
}

func TestGenerateOptionValidation(t *testing.T) {
	uc := testService()
	ctx := context.Background()

	cases := []struct {
		name string
		opts GenerateOptions
	}{
		{"clues too low", GenerateOptions{NumClues: 16}},
		{"clues too high", GenerateOptions{NumClues: 82}},
		{"amount too high", GenerateOptions{Amount: 1001}},
		{"amount negative", GenerateOptions{Amount: -1}},
		{"negative timeout", GenerateOptions{Timeout: -time.Second}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Generate(ctx, tc.opts)
			require.ErrorIs(t, err, domain.ErrBadInput)
		})
	}

	unsolved, err := domain.Parse(solvedGrid[:80] + ".")
	require.NoError(t, err)
	_, err = uc.Generate(ctx, GenerateOptions{NumClues: 40, Config: unsolved})
	require.ErrorIs(t, err, domain.ErrBadInput)
}

func TestGenerateConfigs(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := testService().Generate(ctx, GenerateOptions{Amount: 3, Seed: 1})
	require.NoError(t, err)
	require.Len(t, results, 3)
	seen := map[string]bool{}
	for _, res := range results {
		require.NotNil(t, res.Board)
		require.True(t, res.Board.IsSolved())
		require.Zero(t, res.Board.NumEmpty())
		seen[res.Board.String()] = true
	}
	require.Len(t, seen, 3)
}

func TestGenerateConfigNormalized(t *testing.T) {
	results, err := testService().Generate(context.Background(), GenerateOptions{Seed: 2, Normalize: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	b := results[0].Board
	require.NotNil(t, b)
	for d := uint8(1); d <= domain.Size; d++ {
		require.Equal(t, d, b.Get(int(d-1)))
	}
}

func TestGeneratePuzzleFromConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	config := parseConfig(t)

	results, err := testService().Generate(ctx, GenerateOptions{
		NumClues: 30,
		Config:   config,
		Seed:     3,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	puzzle := results[0].Board
	require.NotNil(t, puzzle)
	require.Equal(t, 30, puzzle.NumClues())

	eng := solver.NewEngine(rand.New(rand.NewSource(99)))
	flag, _ := eng.SolutionsFlag(ctx, puzzle)
	require.Equal(t, 1, flag)
}

func TestGeneratePuzzleNormalized(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	config := parseConfig(t)

	results, err := testService().Generate(ctx, GenerateOptions{
		NumClues:  40,
		Config:    config,
		Seed:      4,
		Normalize: true,
	})
	require.NoError(t, err)
	puzzle := results[0].Board
	require.NotNil(t, puzzle)

	// The puzzle's solution is the normalized configuration.
	normalized := config.Clone()
	require.NoError(t, normalized.Normalize())
	for ci := 0; ci < domain.Cells; ci++ {
		if d := puzzle.Get(ci); d != 0 {
			require.Equal(t, normalized.Get(ci), d, "cell %d", ci)
		}
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	ctx := context.Background()
	opts := GenerateOptions{NumClues: 45, Config: parseConfig(t), Seed: 42}

	a, err := testService().Generate(ctx, opts)
	require.NoError(t, err)
	b, err := testService().Generate(ctx, opts)
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	require.NotNil(t, a[0].Board)
	require.NotNil(t, b[0].Board)
	require.Equal(t, a[0].Board.String(), b[0].Board.String())
	require.Equal(t, a[0].Pops, b[0].Pops)
	require.Equal(t, a[0].Resets, b[0].Resets)
}

func TestGenerateWithSieveKeepsCoverage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	config := parseConfig(t)

	sv := sieve.New(config)
	item := domain.GridMask{}
	for _, ci := range unavoidable49 {
		item = item.With(ci)
	}
	sv.Add(item)

	results, err := testService().Generate(ctx, GenerateOptions{
		NumClues: 40,
		Amount:   2,
		Config:   config,
		UseSieve: true,
		Sieve:    sv,
		Seed:     5,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		require.NotNil(t, res.Board)
		require.NotEmpty(t, res.CellsKept)
		for _, ci := range res.CellsKept {
			require.NotZero(t, res.Board.Get(ci), "kept cell %d cleared", ci)
		}
		require.True(t, item.Intersects(res.Board.Mask()), "no clue left in the unavoidable set")
	}
}

func TestGenerateCallback(t *testing.T) {
	var boards []string
	_, err := testService().Generate(context.Background(), GenerateOptions{
		Amount: 2,
		Seed:   6,
		Callback: func(b *domain.Board) {
			boards = append(boards, b.String())
		},
	})
	require.NoError(t, err)
	require.Len(t, boards, 2)
}
