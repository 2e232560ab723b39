package game

import "fmt"

// BoardSide is the side length N of the triangular lattice. Rows run
// 0..2N; the middle row has N+1 nodes and the rotated coordinate grid is
// (N+1)x(N+1).
const BoardSide = 8

const maxRow = 2 * BoardSide

// Coord is a lattice address: row 0 is the second side's home vertex, row
// 2N the first side's.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// XY is a rotated square coordinate. Rotating the diamond 45 degrees maps
// the lattice onto an axial grid where the three straight-line families are
// "same x", "same y" and "x+y constant" (the lattice row).
type XY struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p XY) Add(d XY) XY { return XY{p.X + d.X, p.Y + d.Y} }

// RowWidth returns the number of nodes in a lattice row.
func RowWidth(row int) int {
	if row <= BoardSide {
		return row + 1
	}
	return maxRow + 1 - row
}

// RotateToSquare maps a lattice address into rotated coordinates.
func RotateToSquare(c Coord) XY {
	if c.Row <= BoardSide {
		return XY{c.Col, c.Row - c.Col}
	}
	return XY{c.Col + c.Row - BoardSide, BoardSide - c.Col}
}

// FromSquare is the inverse of RotateToSquare.
func FromSquare(p XY) Coord {
	row := p.X + p.Y
	if row <= BoardSide {
		return Coord{row, p.X}
	}
	return Coord{row, p.X - (row - BoardSide)}
}

// OnBoard reports whether a rotated coordinate lies on the 9x9 grid.
func OnBoard(p XY) bool {
	return p.X >= 0 && p.X <= BoardSide && p.Y >= 0 && p.Y <= BoardSide
}

// ValidCoord reports whether a lattice address exists on the board.
func ValidCoord(c Coord) bool {
	return c.Row >= 0 && c.Row <= maxRow && c.Col >= 0 && c.Col < RowWidth(c.Row)
}

// Label is the display name of a cell: file letter from the rotated x
// coordinate, 1-indexed rank from y. a1 through i9.
func Label(c Coord) string {
	p := RotateToSquare(c)
	return string([]byte{byte('a' + p.X), byte('1' + p.Y)})
}

// Steps are the six lattice-adjacency offsets in rotated coordinates:
// two per straight-line family.
var Steps = []XY{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, -1}, {-1, 1}}

// Verticals are the two single-step offsets available to the griffin in
// addition to same-row travel. They cross two lattice rows at once and are
// not lattice-adjacent.
var Verticals = []XY{{1, 1}, {-1, -1}}

// AssassinHops are the four parallelogram-diagonal offsets: the completion
// of an equilateral triangle over any two mutually adjacent neighbors that
// lie on different lattice rows. Each has delta sum +1 or -1.
var AssassinHops = []XY{{2, -1}, {-2, 1}, {1, -2}, {-1, 2}}

// SameRowDirs is the straight-line family used by the griffin.
var SameRowDirs = []XY{{1, -1}, {-1, 1}}

// Adjacent reports lattice adjacency between two cells.
func Adjacent(a, b Coord) bool {
	pa, pb := RotateToSquare(a), RotateToSquare(b)
	d := XY{pb.X - pa.X, pb.Y - pa.Y}
	for _, s := range Steps {
		if d == s {
			return true
		}
	}
	return false
}

// Node is a lattice position with planar coordinates for rendering.
type Node struct {
	Coord Coord   `json:"coord"`
	PX    float64 `json:"px"`
	PY    float64 `json:"py"`
}

// BuildNodes constructs the node list for a triangular board of the given
// side, row by row. Horizontal spacing is 1.0, vertical spacing half of
// that, rows centered on the origin.
func BuildNodes(size int) []Node {
	top := 2 * size
	var nodes []Node
	for row := 0; row <= top; row++ {
		width := row + 1
		if row > size {
			width = top + 1 - row
		}
		y := (float64(row) - float64(size)) * 0.5
		for col := 0; col < width; col++ {
			x := float64(col) - float64(width-1)/2
			nodes = append(nodes, Node{Coord: Coord{row, col}, PX: x, PY: y})
		}
	}
	return nodes
}

// BuildAdjacency computes the symmetric neighbor relation over the nodes.
func BuildAdjacency(nodes []Node) map[Coord][]Coord {
	adj := make(map[Coord][]Coord, len(nodes))
	for _, n := range nodes {
		p := RotateToSquare(n.Coord)
		for _, s := range Steps {
			q := p.Add(s)
			if OnBoard(q) {
				adj[n.Coord] = append(adj[n.Coord], FromSquare(q))
			}
		}
	}
	return adj
}

// Neighbors returns the lattice-adjacent cells of c.
func Neighbors(c Coord) []Coord {
	p := RotateToSquare(c)
	out := make([]Coord, 0, 6)
	for _, s := range Steps {
		q := p.Add(s)
		if OnBoard(q) {
			out = append(out, FromSquare(q))
		}
	}
	return out
}

// Mirror reflects a cell across the middle row, mapping one side's home
// layout onto the other's.
func Mirror(c Coord) Coord {
	return Coord{maxRow - c.Row, c.Col}
}

// lineFamily classifies the straight line through two distinct rotated
// coordinates: 0 same-x, 1 same-y, 2 same-row (x+y constant), -1 none.
func lineFamily(a, b XY) int {
	switch {
	case a.X == b.X && a.Y != b.Y:
		return 0
	case a.Y == b.Y && a.X != b.X:
		return 1
	case a.X+a.Y == b.X+b.Y && a != b:
		return 2
	default:
		return -1
	}
}

// lineDistance is the number of unit steps between two cells on a shared
// straight line, or -1 if they are not aligned.
func lineDistance(a, b XY) int {
	switch lineFamily(a, b) {
	case 0:
		return abs(a.Y - b.Y)
	case 1:
		return abs(a.X - b.X)
	case 2:
		return abs(a.X - b.X)
	default:
		return -1
	}
}

// lineStep is the unit offset from a toward b along their shared line.
func lineStep(a, b XY) XY {
	return XY{sign(b.X - a.X), sign(b.Y - a.Y)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
