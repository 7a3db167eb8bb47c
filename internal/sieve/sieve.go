// Package sieve maintains an ordered set of unavoidable-set masks for
// one configuration. Any proper puzzle carved from the configuration
// must keep at least one clue inside every item; the generator uses the
// sieve to pick cells that may never be cleared.
package sieve

import (
	"math/rand"
	"sort"

	"github.com/metal-pony/bucket-go/internal/domain"
)

// Sieve holds unavoidable sets for config, ordered by size then mask
// value. Items are kept minimal: a mask that covers an existing item is
// never added, and adding a mask evicts the items it is a subset of.
type Sieve struct {
	config *domain.Board
	items  []domain.GridMask
}

// New returns an empty sieve keyed to config.
func New(config *domain.Board) *Sieve {
	return &Sieve{config: config}
}

// Config returns the configuration the sieve is keyed to.
func (s *Sieve) Config() *domain.Board { return s.config }

// Len returns the number of items.
func (s *Sieve) Len() int { return len(s.items) }

// Items returns a copy of the item list, smallest first.
func (s *Sieve) Items() []domain.GridMask {
	out := make([]domain.GridMask, len(s.items))
	copy(out, s.items)
	return out
}

// First returns the smallest item, if any.
func (s *Sieve) First() (domain.GridMask, bool) {
	if len(s.items) == 0 {
		return domain.GridMask{}, false
	}
	return s.items[0], true
}

// Add inserts masks, keeping the set minimal and ordered. Empty masks,
// duplicates, and supersets of existing items are dropped; existing
// supersets of a new item are evicted.
func (s *Sieve) Add(items ...domain.GridMask) {
	for _, m := range items {
		if m.IsZero() {
			continue
		}
		redundant := false
		kept := s.items[:0]
		for _, have := range s.items {
			if m.ContainsAll(have) {
				// have is a subset of m (or equal): m adds nothing.
				redundant = true
			}
			if !redundant && have.ContainsAll(m) {
				// have is a superset: evicted by the tighter m.
				continue
			}
			kept = append(kept, have)
		}
		s.items = kept
		if !redundant {
			s.items = append(s.items, m)
		}
	}
	sort.Slice(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if ac, bc := a.Count(), b.Count(); ac != bc {
			return ac < bc
		}
		return a.String() < b.String()
	})
}

// RemoveOverlapping deletes and returns every item intersecting m.
func (s *Sieve) RemoveOverlapping(m domain.GridMask) []domain.GridMask {
	var removed []domain.GridMask
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Intersects(m) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed
}

// CellsToKeep returns cell indices hitting every item, built by greedy
// max-cover: repeatedly tally how many remaining items each cell
// belongs to, pick one of the top-count cells at random, and drop the
// items it covers.
func (s *Sieve) CellsToKeep(rng *rand.Rand) []int {
	work := make([]domain.GridMask, len(s.items))
	copy(work, s.items)
	var out []int
	for len(work) > 0 {
		var count [domain.Cells]int
		for _, m := range work {
			for _, ci := range m.Cells() {
				count[ci]++
			}
		}
		max := 0
		for _, n := range count {
			if n > max {
				max = n
			}
		}
		var top []int
		for ci, n := range count {
			if n == max {
				top = append(top, ci)
			}
		}
		pick := top[0]
		if rng != nil {
			pick = top[rng.Intn(len(top))]
		}
		out = append(out, pick)
		kept := work[:0]
		for _, m := range work {
			if !m.Test(pick) {
				kept = append(kept, m)
			}
		}
		work = kept
	}
	return out
}

// GenerateMaskCells is the cheaper keep-cell selection: walk the items
// smallest first, pick one random cell from each item not yet covered.
func (s *Sieve) GenerateMaskCells(rng *rand.Rand) []int {
	var out []int
	covered := domain.GridMask{}
	for _, m := range s.items {
		if m.Intersects(covered) {
			continue
		}
		cells := m.Cells()
		pick := cells[0]
		if rng != nil {
			pick = cells[rng.Intn(len(cells))]
		}
		out = append(out, pick)
		covered = covered.With(pick)
	}
	return out
}
