package game

// dragonCandidates: unlimited travel along all six lattice directions,
// stopping at the first occupied cell. The scorch trail is laid down at
// resolution time, not here.
func (gs *GameState) dragonCandidates(p *Piece) []Action {
	return gs.slideCandidates(p, Steps)
}

// dragonTrail lists the cells a dragon traverses moving from one cell to
// another along a straight line: the origin and every intermediate cell,
// excluding the destination.
func dragonTrail(from, to Coord) []Coord {
	a, b := RotateToSquare(from), RotateToSquare(to)
	step := lineStep(a, b)
	trail := []Coord{from}
	for q := a.Add(step); q != b; q = q.Add(step) {
		trail = append(trail, FromSquare(q))
	}
	return trail
}
