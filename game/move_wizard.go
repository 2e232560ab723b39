package game

// wizardCandidates: one-step moves to open adjacent cells, a swap per
// not-yet-used friendly apprentice, and at most one attack supplied by the
// conductor beam.
func (gs *GameState) wizardCandidates(p *Piece) []Action {
	out := gs.stepCandidates(p, Steps, false)
	for i := range gs.Pieces {
		a := &gs.Pieces[i]
		if a.Kind == Apprentice && a.Side == p.Side && !a.SwapUsed {
			out = append(out, Action{Type: ActionSwap, PieceID: p.ID, To: a.Pos, TargetID: a.ID})
		}
	}
	if _, target := gs.TraceBeam(p); target != nil {
		out = append(out, Action{Type: ActionAttack, PieceID: p.ID, To: target.Pos, TargetID: target.ID})
	}
	return out
}
