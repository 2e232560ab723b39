package game

// bardCandidates: nothing until activated. Then one-step moves to open
// adjacent cells or onto a stealthed ENEMY assassin, plus one straight-line
// jump over an adjacent piece. Neither an unactivated bard nor a stealthed
// assassin of either side may be jumped. Every bard move is followed by the
// mandatory swap sub-turn, handled at resolution.
func (gs *GameState) bardCandidates(p *Piece) []Action {
	if !p.Activated {
		return nil
	}
	var out []Action
	from := RotateToSquare(p.Pos)
	consider := func(q XY) {
		if !OnBoard(q) {
			return
		}
		cell := FromSquare(q)
		if !gs.canStop(cell, p.Kind, p.Side) {
			return
		}
		occ := gs.PieceAt(cell)
		switch {
		case occ == nil:
			out = append(out, Action{Type: ActionMove, PieceID: p.ID, To: cell})
		case occ.Kind == Assassin && occ.HiddenFrom(p.Side):
			out = append(out, Action{Type: ActionAttack, PieceID: p.ID, To: cell, TargetID: occ.ID})
		}
	}
	for _, d := range Steps {
		consider(from.Add(d))
	}
	for _, d := range Steps {
		overCell := from.Add(d)
		if !OnBoard(overCell) {
			continue
		}
		over := gs.PieceAt(FromSquare(overCell))
		if over == nil {
			continue
		}
		if over.Kind == Bard && !over.Activated {
			continue
		}
		if over.Kind == Assassin && over.Stealthed {
			continue
		}
		consider(overCell.Add(d))
	}
	return out
}

// bardSwapPartners lists the friendly pieces a bard must swap with after
// moving: anything of its side except bards, dragons and wizards.
func (gs *GameState) bardSwapPartners(bard *Piece) []string {
	var ids []string
	for i := range gs.Pieces {
		q := &gs.Pieces[i]
		if q.Side != bard.Side || q.ID == bard.ID {
			continue
		}
		switch q.Kind {
		case Bard, Dragon, Wizard:
		default:
			ids = append(ids, q.ID)
		}
	}
	return ids
}
