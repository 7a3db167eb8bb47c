package hint

import (
	"context"
	"fmt"

	"github.com/metal-pony/bucket-go/internal/domain"
)

// Singles implements a Hinter for naked and hidden singles, driven by
// the board's candidate masks.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first naked single, then, if the max tier allows it,
// the first hidden single.
func (h *Singles) Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error) {
	work := b.Clone()
	work.ResetEmptyCells()
	for ci := 0; ci < domain.Cells; ci++ {
		if work.Get(ci) != 0 {
			continue
		}
		open := work.CandidateMask(ci) & ^work.UsedMask(ci) & domain.AllCandidates
		if d := domain.DecodeDigit(open); d != 0 {
			return domain.Hint{
				Message:  fmt.Sprintf("Naked single: only %d fits here", d),
				Cells:    []domain.CellCoord{cellCoord(ci)},
				Digit:    d,
				Strategy: domain.StrategyNakedSingle,
			}, true, nil
		}
	}
	if max < domain.StrategyHiddenSingle {
		return domain.Hint{}, false, nil
	}
	if ci, d, ok := firstHiddenSingle(work); ok {
		return domain.Hint{
			Message:  fmt.Sprintf("Hidden single: %d fits nowhere else in the house", d),
			Cells:    []domain.CellCoord{cellCoord(ci)},
			Digit:    d,
			Strategy: domain.StrategyHiddenSingle,
		}, true, nil
	}
	return domain.Hint{}, false, nil
}

// firstHiddenSingle looks for a digit with exactly one open cell in
// some house.
func firstHiddenSingle(b *domain.Board) (int, uint8, bool) {
	houses := make([][domain.Size]int, 0, 3*domain.Size)
	for i := 0; i < domain.Size; i++ {
		houses = append(houses, domain.RowCells[i], domain.ColCells[i], domain.RegionCells[i])
	}
	for _, cells := range houses {
		for d := uint8(1); d <= domain.Size; d++ {
			bit := domain.EncodeDigit(d)
			spot := -1
			count := 0
			for _, ci := range cells {
				if b.Get(ci) != 0 {
					if b.Get(ci) == d {
						count = 0
						break
					}
					continue
				}
				if b.CandidateMask(ci)& ^b.UsedMask(ci)&bit != 0 {
					spot = ci
					count++
				}
			}
			if count == 1 {
				return spot, d, true
			}
		}
	}
	return 0, 0, false
}

func cellCoord(ci int) domain.CellCoord {
	return domain.CellCoord{Row: domain.CellRow[ci], Col: domain.CellCol[ci]}
}
