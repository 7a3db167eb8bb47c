package domain

// Board geometry. Cells are indexed 0..80 in row-major order.
const (
	Size  = 9
	Cells = Size * Size
)

var (
	// CellRow[ci], CellCol[ci], CellRegion[ci] map a cell index to its houses.
	CellRow    [Cells]int
	CellCol    [Cells]int
	CellRegion [Cells]int

	// RowCells[r], ColCells[c], RegionCells[g] enumerate the cells of a house.
	RowCells    [Size][Size]int
	ColCells    [Size][Size]int
	RegionCells [Size][Size]int

	// CellPeers[ci] lists the 20 cells sharing a house with ci, excluding ci.
	CellPeers [Cells][20]int
)

func init() {
	for ci := 0; ci < Cells; ci++ {
		r := ci / Size
		c := ci % Size
		g := (ci/27)*3 + (ci%Size)/3
		CellRow[ci] = r
		CellCol[ci] = c
		CellRegion[ci] = g
		RowCells[r][c] = ci
		ColCells[c][r] = ci
	}
	for g := 0; g < Size; g++ {
		n := 0
		baseRow := (g / 3) * 3
		baseCol := (g % 3) * 3
		for dr := 0; dr < 3; dr++ {
			for dc := 0; dc < 3; dc++ {
				RegionCells[g][n] = (baseRow+dr)*Size + baseCol + dc
				n++
			}
		}
	}
	for ci := 0; ci < Cells; ci++ {
		var seen [Cells]bool
		n := 0
		add := func(cj int) {
			if cj != ci && !seen[cj] {
				seen[cj] = true
				CellPeers[ci][n] = cj
				n++
			}
		}
		for _, cj := range RowCells[CellRow[ci]] {
			add(cj)
		}
		for _, cj := range ColCells[CellCol[ci]] {
			add(cj)
		}
		for _, cj := range RegionCells[CellRegion[ci]] {
			add(cj)
		}
	}
}
