package game

// rangerCandidates: king steps plus the cannon rule. Scanning a ray,
// stealthed enemy assassins and guard lights are fully transparent; the
// first counted piece is a mandatory screen (an unactivated bard cannot
// serve) and a visible enemy non-bard on the cell immediately beyond it may
// be captured by a jump.
func (gs *GameState) rangerCandidates(p *Piece) []Action {
	out := gs.stepCandidates(p, Steps, true)
	from := RotateToSquare(p.Pos)
	for _, d := range Steps {
		var screen XY
		found := false
		for q := from.Add(d); OnBoard(q); q = q.Add(d) {
			occ := gs.PieceAt(FromSquare(q))
			if occ == nil || occ.HiddenFrom(p.Side) {
				continue
			}
			screen = q
			found = occ.Kind != Bard || occ.Activated
			break
		}
		if !found {
			continue
		}
		land := screen.Add(d)
		if !OnBoard(land) {
			continue
		}
		cell := FromSquare(land)
		occ := gs.PieceAt(cell)
		if visibleTarget(occ, p.Side) && gs.canStop(cell, p.Kind, p.Side) {
			out = append(out, Action{Type: ActionAttack, PieceID: p.ID, To: cell, TargetID: occ.ID})
		}
	}
	return out
}
