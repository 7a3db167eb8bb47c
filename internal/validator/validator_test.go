package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metal-pony/bucket-go/internal/domain"
)

const solvedGrid = "218574639573896124469123578721459386354681792986237415147962853695318247832745961"

func TestValidateSolvedGrid(t *testing.T) {
	b, err := domain.Parse(solvedGrid)
	require.NoError(t, err)
	ok, conflicts, err := New().Validate(context.Background(), b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, conflicts)
}

func TestValidateReportsConflicts(t *testing.T) {
	// Two 1s in row 0.
	b, err := domain.Parse("1.......1" + strings.Repeat(".", 72))
	require.NoError(t, err)
	ok, conflicts, err := New().Validate(context.Background(), b)
	require.NoError(t, err)
	require.False(t, ok)
	require.NotEmpty(t, conflicts)
	require.Contains(t, conflicts, domain.CellCoord{Row: 0, Col: 8})
}

func TestValidateEmptyBoard(t *testing.T) {
	ok, conflicts, err := New().Validate(context.Background(), domain.NewBoard())
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, conflicts)
}
