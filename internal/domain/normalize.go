package domain

import "fmt"

// Normalize relabels digits so the top row reads 1..9 in order. The top
// row must be fully filled. Both the working digits and the initial
// clues are relabeled, so Reset stays consistent.
func (b *Board) Normalize() error {
	for ci := 0; ci < Size; ci++ {
		if b.digits[ci] == 0 {
			return fmt.Errorf("%w: normalize requires a filled top row", ErrBadInput)
		}
	}
	for d := uint8(1); d <= Size; d++ {
		cur := b.digits[d-1]
		if cur != d {
			b.swapDigits(cur, d)
		}
	}
	b.reindex()
	return nil
}

// NormalizeLike applies to b the same relabeling that Normalize would
// apply to full. Used to canonicalize a puzzle by way of its solved
// configuration, whose top row is always complete.
func (b *Board) NormalizeLike(full *Board) error {
	ref := full.Clone()
	for ci := 0; ci < Size; ci++ {
		if ref.digits[ci] == 0 {
			return fmt.Errorf("%w: normalize requires a filled top row", ErrBadInput)
		}
	}
	for d := uint8(1); d <= Size; d++ {
		cur := ref.digits[d-1]
		if cur != d {
			ref.swapDigits(cur, d)
			b.swapDigits(cur, d)
		}
	}
	b.reindex()
	return nil
}

func (b *Board) swapDigits(x, y uint8) {
	for ci := 0; ci < Cells; ci++ {
		switch b.digits[ci] {
		case x:
			b.digits[ci] = y
		case y:
			b.digits[ci] = x
		}
		switch b.initial[ci] {
		case x:
			b.initial[ci] = y
		case y:
			b.initial[ci] = x
		}
	}
}
