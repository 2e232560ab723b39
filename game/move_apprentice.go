package game

// apprenticeCandidates: one-step moves and attacks restricted to the two
// directions facing the enemy side, plus the one-time swap with the own
// side's wizard.
func (gs *GameState) apprenticeCandidates(p *Piece) []Action {
	out := gs.stepCandidates(p, forwardOffsets(p.Side), true)
	if !p.SwapUsed {
		if wiz := gs.findPiece(Wizard, p.Side); wiz != nil {
			out = append(out, Action{Type: ActionSwap, PieceID: p.ID, To: wiz.Pos, TargetID: wiz.ID})
		}
	}
	return out
}
