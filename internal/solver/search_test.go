package solver

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/metal-pony/bucket-go/internal/domain"
)

const solvedGrid = "218574639573896124469123578721459386354681792986237415147962853695318247832745961"

// unavoidable49 is an 8/9 rectangle of solvedGrid (rows 0/2, cols 2/8,
// same band): blanking exactly these cells leaves two completions.
var unavoidable49 = []int{2, 8, 20, 26}

func blankCells(t *testing.T, s string, cells ...int) *domain.Board {
	t.Helper()
	buf := []byte(s)
	for _, ci := range cells {
		buf[ci] = '.'
	}
	b, err := domain.Parse(string(buf))
	require.NoError(t, err)
	return b
}

func testEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestSolutionsFlagSolvedBoard(t *testing.T) {
	b, err := domain.Parse(solvedGrid)
	require.NoError(t, err)
	require.True(t, b.IsSolved())
	flag, res := testEngine(1).SolutionsFlag(context.Background(), b)
	require.Equal(t, 1, flag)
	require.True(t, res.Complete)
}

func TestSolveNearEmpty(t *testing.T) {
	// The solved grid with 14 digits blanked keeps a unique solution.
	b := blankCells(t, solvedGrid, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
	eng := testEngine(2)
	ctx := context.Background()

	flag, _ := eng.SolutionsFlag(ctx, b)
	require.Equal(t, 1, flag)

	sol, _ := eng.FirstSolution(ctx, b)
	require.NotNil(t, sol)
	require.Equal(t, solvedGrid, sol.String())
}

func TestSolutionsFlagSub17Shortcut(t *testing.T) {
	// 16 clues cannot be unique; the flag short-circuits without search.
	cells := make([]int, 0, 65)
	for ci := 16; ci < domain.Cells; ci++ {
		cells = append(cells, ci)
	}
	b := blankCells(t, solvedGrid, cells...)
	require.Equal(t, 65, b.NumEmpty())

	flag, res := testEngine(3).SolutionsFlag(context.Background(), b)
	require.Equal(t, 2, flag)
	require.Zero(t, res.Iterations)
	require.Zero(t, res.Branches)
}

func TestAllSolutionsOfUnavoidableSet(t *testing.T) {
	b := blankCells(t, solvedGrid, unavoidable49...)
	eng := testEngine(4)
	res := eng.AllSolutions(context.Background(), b, Options{})
	require.True(t, res.Complete)
	require.Len(t, res.Solutions, 2)
	require.NotEqual(t, res.Solutions[0].String(), res.Solutions[1].String())
	for _, sol := range res.Solutions {
		require.True(t, sol.IsSolved())
	}

	flag, _ := eng.SolutionsFlag(context.Background(), b)
	require.Equal(t, 2, flag)
}

func TestUniquenessMonotonicity(t *testing.T) {
	// Fixing an empty cell to its unique-solution value keeps the
	// puzzle unique.
	b := blankCells(t, solvedGrid, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
	eng := testEngine(5)
	ctx := context.Background()

	sol, _ := eng.FirstSolution(ctx, b)
	require.NotNil(t, sol)
	ext := b.Clone()
	ext.Set(0, sol.Get(0))
	flag, _ := eng.SolutionsFlag(ctx, ext)
	require.Equal(t, 1, flag)
}

func TestSearchCallbackTermination(t *testing.T) {
	res := Search(context.Background(), domain.NewBoard(), Options{
		OnSolution: func(*domain.Board, int) bool { return false },
		Rand:       rand.New(rand.NewSource(6)),
	})
	require.True(t, res.TerminatedByCallback)
	require.False(t, res.Complete)
	require.Len(t, res.Solutions, 1)
	require.True(t, res.Solutions[0].IsSolved())
}

func TestSearchTimeout(t *testing.T) {
	res := Search(context.Background(), domain.NewBoard(), Options{
		Timeout: time.Nanosecond,
		Rand:    rand.New(rand.NewSource(7)),
	})
	require.True(t, res.TimedOut)
	require.False(t, res.Complete)
}

func TestSearchContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Search(ctx, domain.NewBoard(), Options{Rand: rand.New(rand.NewSource(8))})
	require.True(t, res.TimedOut)
	require.Empty(t, res.Solutions)
}

func TestFirstSolutionDeterministicUnderSeed(t *testing.T) {
	a, _ := testEngine(42).FirstSolution(context.Background(), domain.NewBoard())
	b, _ := testEngine(42).FirstSolution(context.Background(), domain.NewBoard())
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.Equal(t, a.String(), b.String())
	require.True(t, a.IsSolved())
}

func TestSearchMultiStack(t *testing.T) {
	// Wider frontier still finds both completions exactly once.
	b := blankCells(t, solvedGrid, unavoidable49...)
	res := Search(context.Background(), b, Options{
		ConcurrentBranches: 4,
		Rand:               rand.New(rand.NewSource(9)),
	})
	require.True(t, res.Complete)
	require.Len(t, res.Solutions, 2)
}
