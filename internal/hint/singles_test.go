package hint

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metal-pony/bucket-go/internal/domain"
)

func TestHintNakedSingle(t *testing.T) {
	// Row 0 holds 1..8, so cell 8 can only be 9.
	b, err := domain.Parse("12345678." + strings.Repeat(".", 72))
	require.NoError(t, err)
	h, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategyNakedSingle)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StrategyNakedSingle, h.Strategy)
	require.Equal(t, uint8(9), h.Digit)
	require.Equal(t, []domain.CellCoord{{Row: 0, Col: 8}}, h.Cells)
}

func TestHintHiddenSingle(t *testing.T) {
	// Four 1-clues leave cell (0,0) as the only spot for 1 in row 0,
	// and no naked single exists.
	b := domain.NewBoard()
	b.Set(12, 1) // r1c3
	b.Set(24, 1) // r2c6
	b.Set(37, 1) // r4c1
	b.Set(65, 1) // r7c2

	_, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategyNakedSingle)
	require.NoError(t, err)
	require.False(t, ok)

	h, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategyHiddenSingle)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.StrategyHiddenSingle, h.Strategy)
	require.Equal(t, uint8(1), h.Digit)
	require.Equal(t, []domain.CellCoord{{Row: 0, Col: 0}}, h.Cells)
}

func TestHintNoneOnEmptyBoard(t *testing.T) {
	_, ok, err := NewSingles().Hint(context.Background(), domain.NewBoard(), domain.StrategyHiddenSingle)
	require.NoError(t, err)
	require.False(t, ok)
}
