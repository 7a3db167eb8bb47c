package validator

import (
	"context"

	"github.com/metal-pony/bucket-go/internal/domain"
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate scans the 27 houses for duplicate digits and reports the
// offending cells.
func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	conf := make([]domain.CellCoord, 0, 8)
	scan := func(cells [domain.Size]int) {
		var m uint16
		for _, ci := range cells {
			d := b.Get(ci)
			if d == 0 {
				continue
			}
			bit := domain.EncodeDigit(d)
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: domain.CellRow[ci], Col: domain.CellCol[ci]})
			}
			m |= bit
		}
	}
	for i := 0; i < domain.Size; i++ {
		scan(domain.RowCells[i])
		scan(domain.ColCells[i])
		scan(domain.RegionCells[i])
	}
	return len(conf) == 0, conf, nil
}
