package generator

import (
	"context"
	"time"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/ports"
)

// popsUntilReset bounds how long the search follows one line before
// restarting from the configuration. Deep subtractive paths are often
// unrecoverable; periodic restarts bound worst-case latency at modest
// cost to the average.
const popsUntilReset = 100

// searchNode is one step of the subtractive search: a proper puzzle
// board plus the lazily-built boards reachable by clearing one more
// clue. Uniqueness is checked once, on first visit.
type searchNode struct {
	board    *domain.Board
	children []*domain.Board
	expanded bool
	visited  bool
	unique   bool
}

// Puzzle carves a puzzle with numClues clues out of the solved config.
// Cells in keep are never cleared. Every board kept on the stack has a
// unique solution; removals that break uniqueness are popped, and every
// popsUntilReset pops the stack restarts from the configuration. A nil
// Puzzle in the result means the search ran out of context budget.
func (g *Generator) Puzzle(ctx context.Context, config *domain.Board, numClues int, keep domain.GridMask) (att ports.PuzzleAttempt) {
	start := time.Now()
	att = ports.PuzzleAttempt{CellsKept: keep.Cells()}
	defer func() { att.Stats.Duration = time.Since(start) }()

	if numClues >= domain.Cells {
		att.Puzzle = config.Clone()
		return att
	}
	targetEmpty := domain.Cells - numClues
	rng := g.Engine.Rand

	root := &searchNode{board: config.Clone()}
	stack := []*searchNode{root}
	localPops := 0

	pop := func() {
		stack = stack[:len(stack)-1]
		att.Pops++
		localPops++
		if localPops >= popsUntilReset {
			localPops = 0
			att.Resets++
			root.children = nil
			root.expanded = false
			stack = append(stack[:0], root)
		}
	}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		t := stack[len(stack)-1]
		if !t.visited {
			t.visited = true
			flag, res := g.Engine.SolutionsFlag(ctx, t.board)
			att.Stats.Nodes += res.Iterations
			att.Stats.Branches += res.Branches
			t.unique = flag == 1
		}
		if !t.unique {
			pop()
			continue
		}
		if t.board.NumEmpty() >= targetEmpty {
			// Re-root so the remaining digits become the puzzle's clues.
			puzzle, err := domain.FromDigits(t.board.Digits())
			if err == nil {
				att.Puzzle = puzzle
			}
			return att
		}
		if !t.expanded {
			t.expanded = true
			var kids []*domain.Board
			for ci := 0; ci < domain.Cells; ci++ {
				if t.board.Get(ci) == 0 || keep.Test(ci) {
					continue
				}
				child := t.board.Clone()
				child.Set(ci, 0)
				kids = append(kids, child)
			}
			rng.Shuffle(len(kids), func(i, j int) { kids[i], kids[j] = kids[j], kids[i] })
			t.children = kids
		}
		if len(t.children) > 0 {
			child := t.children[len(t.children)-1]
			t.children = t.children[:len(t.children)-1]
			stack = append(stack, &searchNode{board: child})
			continue
		}
		pop()
	}
	return att
}
