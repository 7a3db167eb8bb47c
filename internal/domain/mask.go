package domain

import "math/bits"

// GridMask is an 81-bit cell set. Cell ci maps to bit 80-ci, so the
// first cell of the grid occupies the most significant bit. The value
// does not fit a machine word and is split across two words: lo holds
// bits 0..63, hi holds bits 64..80.
type GridMask struct {
	hi uint64 // bits 64..80
	lo uint64 // bits 0..63
}

const gridMaskHiBits = uint64(1)<<(Cells-64) - 1

// CellMask returns the mask with only cell ci set.
func CellMask(ci int) GridMask {
	pos := uint(Cells - 1 - ci)
	if pos < 64 {
		return GridMask{lo: 1 << pos}
	}
	return GridMask{hi: 1 << (pos - 64)}
}

// RowMask returns the mask covering the nine cells of row r.
func RowMask(r int) GridMask {
	m := GridMask{}
	for _, ci := range RowCells[r] {
		m = m.Or(CellMask(ci))
	}
	return m
}

// ColMask returns the mask covering the nine cells of column c.
func ColMask(c int) GridMask {
	m := GridMask{}
	for _, ci := range ColCells[c] {
		m = m.Or(CellMask(ci))
	}
	return m
}

// RegionMask returns the mask covering the nine cells of region g.
func RegionMask(g int) GridMask {
	m := GridMask{}
	for _, ci := range RegionCells[g] {
		m = m.Or(CellMask(ci))
	}
	return m
}

// Test reports whether cell ci is set.
func (m GridMask) Test(ci int) bool {
	pos := uint(Cells - 1 - ci)
	if pos < 64 {
		return m.lo&(1<<pos) != 0
	}
	return m.hi&(1<<(pos-64)) != 0
}

// With returns m with cell ci set.
func (m GridMask) With(ci int) GridMask {
	return m.Or(CellMask(ci))
}

// Without returns m with cell ci cleared.
func (m GridMask) Without(ci int) GridMask {
	return m.AndNot(CellMask(ci))
}

func (m GridMask) And(o GridMask) GridMask {
	return GridMask{hi: m.hi & o.hi, lo: m.lo & o.lo}
}

func (m GridMask) Or(o GridMask) GridMask {
	return GridMask{hi: m.hi | o.hi, lo: m.lo | o.lo}
}

func (m GridMask) AndNot(o GridMask) GridMask {
	return GridMask{hi: m.hi &^ o.hi, lo: m.lo &^ o.lo}
}

// Not returns the complement within the 81-bit grid.
func (m GridMask) Not() GridMask {
	return GridMask{hi: ^m.hi & gridMaskHiBits, lo: ^m.lo}
}

// Intersects reports whether m and o share any cell.
func (m GridMask) Intersects(o GridMask) bool {
	return m.hi&o.hi != 0 || m.lo&o.lo != 0
}

// ContainsAll reports whether every cell of o is also in m.
func (m GridMask) ContainsAll(o GridMask) bool {
	return o.hi&^m.hi == 0 && o.lo&^m.lo == 0
}

// IsZero reports whether no cell is set.
func (m GridMask) IsZero() bool {
	return m.hi == 0 && m.lo == 0
}

// Count returns the number of set cells.
func (m GridMask) Count() int {
	return bits.OnesCount64(m.hi) + bits.OnesCount64(m.lo)
}

// Cells lists the set cell indices in ascending order.
func (m GridMask) Cells() []int {
	out := make([]int, 0, m.Count())
	for w := m.hi; w != 0; {
		pos := uint(bits.Len64(w)) - 1
		w &^= 1 << pos
		out = append(out, Cells-1-int(pos+64))
	}
	for w := m.lo; w != 0; {
		pos := uint(bits.Len64(w)) - 1
		w &^= 1 << pos
		out = append(out, Cells-1-int(pos))
	}
	return out
}

// String renders the mask as 81 bits, cell 0 first.
func (m GridMask) String() string {
	buf := make([]byte, Cells)
	for ci := 0; ci < Cells; ci++ {
		if m.Test(ci) {
			buf[ci] = '1'
		} else {
			buf[ci] = '0'
		}
	}
	return string(buf)
}
