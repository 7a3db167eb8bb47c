package sieve

import (
	"context"
	"fmt"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/solver"
)

// PopulateChains fills the sieve with unavoidable sets found on digit
// chains of 2 up to level digits. For each digit combination, every
// cell holding one of those digits is cleared and all completions are
// enumerated; each completion other than the configuration differs on
// an unavoidable set, whose mask is added.
func (s *Sieve) PopulateChains(ctx context.Context, eng *solver.Engine, level int) error {
	if level < 2 || level > domain.Size {
		return fmt.Errorf("%w: chain level %d out of range [2,%d]", domain.ErrBadInput, level, domain.Size)
	}
	if !s.config.IsSolved() {
		return fmt.Errorf("%w: sieve configuration is not solved", domain.ErrBadInput)
	}
	for k := 2; k <= level; k++ {
		for _, combo := range digitCombos(k) {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scanChain(ctx, eng, combo)
		}
	}
	return nil
}

func (s *Sieve) scanChain(ctx context.Context, eng *solver.Engine, combo []uint8) {
	var digits uint16
	for _, d := range combo {
		digits |= domain.EncodeDigit(d)
	}
	b := s.config.Clone()
	for ci := 0; ci < domain.Cells; ci++ {
		if digits&domain.EncodeDigit(b.Get(ci)) != 0 {
			b.Set(ci, 0)
		}
	}
	res := eng.AllSolutions(ctx, b, solver.Options{})
	for _, sol := range res.Solutions {
		diff := domain.GridMask{}
		for ci := 0; ci < domain.Cells; ci++ {
			if sol.Get(ci) != s.config.Get(ci) {
				diff = diff.With(ci)
			}
		}
		if !diff.IsZero() {
			s.Add(diff)
		}
	}
}

// digitCombos enumerates the k-combinations of digits 1..9, ascending.
func digitCombos(k int) [][]uint8 {
	var out [][]uint8
	combo := make([]uint8, k)
	var walk func(pos int, next uint8)
	walk = func(pos int, next uint8) {
		if pos == k {
			out = append(out, append([]uint8(nil), combo...))
			return
		}
		for d := next; d <= domain.Size; d++ {
			combo[pos] = d
			walk(pos+1, d+1)
		}
	}
	walk(0, 1)
	return out
}
