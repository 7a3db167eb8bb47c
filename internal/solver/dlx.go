package solver

import (
	"context"
	"errors"
	"time"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/ports"
)

// DLXSolver solves boards as an exact-cover problem over dancing links.
// It is the stateless alternate ports.Solver next to the search engine:
// every call builds its own matrix, so concurrent use is safe.
//
// Constraints, 324 columns: each cell holds a digit; each (row, digit),
// (column, digit), and (region, digit) occurs once. Candidates, 729
// rows: one per (cell, digit) pair.
type DLXSolver struct{}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

const (
	coverCols = 4 * domain.Cells           // 324
	coverCand = domain.Cells * domain.Size // 729
	// node 0 is the root of the header ring, nodes 1..coverCols are
	// column headers, the rest belong to candidate rows (4 each).
	coverNodes = 1 + coverCols + coverCand*4
)

// coverColumns maps a candidate to its four constraint columns.
func coverColumns(ci int, d uint8) [4]int {
	k := int(d) - 1
	return [4]int{
		ci,
		domain.Cells + domain.CellRow[ci]*domain.Size + k,
		2*domain.Cells + domain.CellCol[ci]*domain.Size + k,
		3*domain.Cells + domain.CellRegion[ci]*domain.Size + k,
	}
}

// coverMatrix is the link structure laid out in flat index arrays
// rather than pointer nodes. A detached column is simply absent from
// the root ring; no per-column flags are kept.
type coverMatrix struct {
	left, right [coverNodes]int32
	up, down    [coverNodes]int32
	top         [coverNodes]int32 // owning column header, 0 for the root
	cand        [coverNodes]int32 // candidate id, -1 for root and headers
	size        [coverCols + 1]int32

	limit  int // stop after this many solutions
	found  int
	steps  int
	chosen []int32
	sol    []int32 // chosen candidates of the last completed assignment
}

func newCoverMatrix() *coverMatrix {
	m := &coverMatrix{}
	// Root and headers form one horizontal ring.
	for h := 0; h <= coverCols; h++ {
		m.left[h] = int32((h + coverCols) % (coverCols + 1))
		m.right[h] = int32((h + 1) % (coverCols + 1))
		m.up[h] = int32(h)
		m.down[h] = int32(h)
		m.cand[h] = -1
	}
	next := int32(coverCols + 1)
	for ci := 0; ci < domain.Cells; ci++ {
		for d := uint8(1); d <= domain.Size; d++ {
			id := int32(ci*domain.Size + int(d) - 1)
			first := next
			for _, col := range coverColumns(ci, d) {
				h := int32(col + 1)
				n := next
				next++
				m.top[n] = h
				m.cand[n] = id
				// Splice onto the bottom of column h.
				m.up[n] = m.up[h]
				m.down[n] = h
				m.down[m.up[h]] = n
				m.up[h] = n
				m.size[h]++
				// The candidate's four nodes are consecutive; close
				// the horizontal ring as they are appended.
				m.left[n] = n - 1
				m.right[n] = first
				if n == first {
					m.left[n] = n
				} else {
					m.right[n-1] = n
					m.left[first] = n
				}
			}
		}
	}
	return m
}

// coverColumn detaches header h from the ring and hides every other
// candidate that uses the column.
func (m *coverMatrix) coverColumn(h int32) {
	m.right[m.left[h]] = m.right[h]
	m.left[m.right[h]] = m.left[h]
	for i := m.down[h]; i != h; i = m.down[i] {
		for j := m.right[i]; j != i; j = m.right[j] {
			m.down[m.up[j]] = m.down[j]
			m.up[m.down[j]] = m.up[j]
			m.size[m.top[j]]--
		}
	}
}

// uncoverColumn is the exact inverse, walking the links bottom-up.
func (m *coverMatrix) uncoverColumn(h int32) {
	for i := m.up[h]; i != h; i = m.up[i] {
		for j := m.left[i]; j != i; j = m.left[j] {
			m.size[m.top[j]]++
			m.down[m.up[j]] = j
			m.up[m.down[j]] = j
		}
	}
	m.right[m.left[h]] = h
	m.left[m.right[h]] = h
}

// placeGiven commits a clue by covering its four columns up front, the
// same move the search would make for that candidate.
func (m *coverMatrix) placeGiven(ci int, d uint8) {
	for _, col := range coverColumns(ci, d) {
		m.coverColumn(int32(col + 1))
	}
}

// shortestColumn returns the ring header with the fewest candidates
// left, or 0 when the ring is empty and the assignment is complete.
func (m *coverMatrix) shortestColumn() int32 {
	var best int32
	for h := m.right[0]; h != 0; h = m.right[h] {
		if best == 0 || m.size[h] < m.size[best] {
			best = h
			if m.size[h] == 0 {
				break
			}
		}
	}
	return best
}

func (m *coverMatrix) search(ctx context.Context) {
	if ctx.Err() != nil || m.found >= m.limit {
		return
	}
	h := m.shortestColumn()
	if h == 0 {
		m.found++
		m.sol = append(m.sol[:0], m.chosen...)
		return
	}
	if m.size[h] == 0 {
		return
	}
	m.coverColumn(h)
	for i := m.down[h]; i != h && m.found < m.limit; i = m.down[i] {
		m.steps++
		m.chosen = append(m.chosen, m.cand[i])
		for j := m.right[i]; j != i; j = m.right[j] {
			m.coverColumn(m.top[j])
		}
		m.search(ctx)
		for j := m.left[i]; j != i; j = m.left[j] {
			m.uncoverColumn(m.top[j])
		}
		m.chosen = m.chosen[:len(m.chosen)-1]
	}
	m.uncoverColumn(h)
}

// run builds the matrix for b's givens and counts completions up to
// limit. Conflicting givens would corrupt the ring, so they are
// rejected before any covering happens.
func (s *DLXSolver) run(ctx context.Context, b *domain.Board, limit int) (*coverMatrix, error) {
	if !b.IsValid() {
		return nil, errors.New("board has conflicting givens")
	}
	m := newCoverMatrix()
	for ci := 0; ci < domain.Cells; ci++ {
		if d := b.Get(ci); d != 0 {
			m.placeGiven(ci, d)
		}
	}
	m.limit = limit
	m.search(ctx)
	return m, nil
}

func (s *DLXSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	m, err := s.run(ctx, b, 1)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	stats := ports.Stats{Nodes: m.steps, Duration: time.Since(start)}
	if m.found == 0 {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		return nil, stats, errors.New("no solution")
	}
	// Givens come from the input; the search supplies the rest.
	digits := b.Digits()
	for _, id := range m.sol {
		digits[int(id)/domain.Size] = uint8(int(id)%domain.Size) + 1
	}
	out, err := domain.FromDigits(digits)
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func (s *DLXSolver) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	m, err := s.run(ctx, b, 2)
	if err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, err
	}
	return m.found == 1, ports.Stats{Nodes: m.steps, Duration: time.Since(start)}, nil
}
