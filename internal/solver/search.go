package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/metal-pony/bucket-go/internal/domain"
)

// Options tunes one Search run.
type Options struct {
	// Timeout bounds wall-clock time; 0 means no budget.
	Timeout time.Duration
	// OnSolution is called with each solution and the count found so
	// far; returning false stops the search.
	OnSolution func(b *domain.Board, found int) bool
	// ConcurrentBranches is the number of logical DFS frontiers
	// interleaved round-robin within the single search loop. Default 9.
	ConcurrentBranches int
	// Rand drives candidate shuffling and cell picks.
	Rand *rand.Rand
}

// Result reports the solutions and metrics of a Search run. Complete is
// true iff the search ran to exhaustion: neither the time budget nor
// the callback cut it short.
type Result struct {
	Solutions            []*domain.Board
	Iterations           int
	Branches             int
	Elapsed              time.Duration
	Complete             bool
	TimedOut             bool
	TerminatedByCallback bool
}

// frame is one DFS step: a board plus the lazily-built children derived
// by filling the picked empty cell with each of its candidates.
type frame struct {
	board    *domain.Board
	children []*domain.Board
	expanded bool
}

// Search enumerates solutions of b by depth-first search with reduction
// at every step. It keeps up to ConcurrentBranches independent stacks
// and expands them round-robin, which hedges against one branch diving
// into an expensive dead end while others would finish quickly. Purely
// cooperative: everything runs on the calling goroutine.
func Search(ctx context.Context, b *domain.Board, opts Options) Result {
	start := time.Now()
	var res Result

	maxStacks := opts.ConcurrentBranches
	if maxStacks <= 0 {
		maxStacks = domain.Size
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	root := b.Clone()
	root.ResetEmptyCells()
	stacks := [][]*frame{{{board: root}}}
	si := 0

loop:
	for len(stacks) > 0 {
		if ctx.Err() != nil || (opts.Timeout > 0 && time.Since(start) >= opts.Timeout) {
			res.TimedOut = true
			break
		}
		if si >= len(stacks) {
			si = 0
		}
		st := stacks[si]
		f := st[len(st)-1]
		res.Iterations++
		f.board.Reduce()

		switch {
		case f.board.IsSolved():
			sol := f.board.Clone()
			res.Solutions = append(res.Solutions, sol)
			stacks[si] = st[:len(st)-1]
			if opts.OnSolution != nil && !opts.OnSolution(sol, len(res.Solutions)) {
				res.TerminatedByCallback = true
				break loop
			}
		case f.board.HasDeadCell() || !f.board.IsValid():
			stacks[si] = st[:len(st)-1]
		case !f.expanded:
			f.expanded = true
			if ci := f.board.PickEmptyCell(rng); ci >= 0 {
				cands := f.board.Candidates(ci)
				kids := make([]*domain.Board, 0, len(cands))
				for _, d := range cands {
					child := f.board.Clone()
					child.Set(ci, d)
					kids = append(kids, child)
				}
				rng.Shuffle(len(kids), func(i, j int) { kids[i], kids[j] = kids[j], kids[i] })
				f.children = kids
				res.Branches += len(kids)
			}
		case len(f.children) > 0:
			child := f.children[len(f.children)-1]
			f.children = f.children[:len(f.children)-1]
			stacks[si] = append(st, &frame{board: child})
			// Peel spare children onto fresh stacks while below the cap.
			for len(stacks) < maxStacks && len(f.children) > 0 {
				extra := f.children[len(f.children)-1]
				f.children = f.children[:len(f.children)-1]
				stacks = append(stacks, []*frame{{board: extra}})
			}
		default:
			stacks[si] = st[:len(st)-1]
		}

		if len(stacks[si]) == 0 {
			stacks = append(stacks[:si], stacks[si+1:]...)
		} else {
			si++
		}
	}

	res.Elapsed = time.Since(start)
	res.Complete = !res.TimedOut && !res.TerminatedByCallback
	return res
}
