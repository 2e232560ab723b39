package game

// griffinCandidates: unlimited travel along the same-row family plus a
// single step in the two vertical diagonals of the rotated grid.
func (gs *GameState) griffinCandidates(p *Piece) []Action {
	out := gs.slideCandidates(p, SameRowDirs)
	return append(out, gs.stepCandidates(p, Verticals, true)...)
}
