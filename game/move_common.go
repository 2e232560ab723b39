package game

// candidatesFor enumerates the candidate actions of a piece at its current
// position under the active terrain and visibility rules.
func (gs *GameState) candidatesFor(p *Piece) []Action {
	switch p.Kind {
	case Apprentice:
		return gs.apprenticeCandidates(p)
	case Wizard:
		return gs.wizardCandidates(p)
	case Dragon:
		return gs.dragonCandidates(p)
	case Ranger:
		return gs.rangerCandidates(p)
	case Griffin:
		return gs.griffinCandidates(p)
	case Assassin:
		return gs.assassinCandidates(p)
	case Paladin:
		return gs.paladinCandidates(p)
	case Bard:
		return gs.bardCandidates(p)
	default:
		return nil
	}
}

// visibleTarget reports whether occ can be offered as an explicit attack
// target to side: a visible enemy that is not a bard.
func visibleTarget(occ *Piece, side Side) bool {
	return occ != nil && occ.Side != side && occ.Side != Neutral &&
		occ.Kind != Bard && !occ.HiddenFrom(side)
}

// physicalTarget is the capture predicate for line travel: a hidden
// assassin still physically blocks a slider and is captured (and thereby
// revealed) when the slider stops on it.
func physicalTarget(occ *Piece, side Side) bool {
	return occ != nil && occ.Side != side && occ.Side != Neutral && occ.Kind != Bard
}

// stepCandidates produces one-step moves (and, when wantAttacks is set,
// one-step attacks) over the given rotated-coordinate offsets.
func (gs *GameState) stepCandidates(p *Piece, offsets []XY, wantAttacks bool) []Action {
	var out []Action
	from := RotateToSquare(p.Pos)
	for _, d := range offsets {
		q := from.Add(d)
		if !OnBoard(q) {
			continue
		}
		cell := FromSquare(q)
		if !gs.canStop(cell, p.Kind, p.Side) {
			continue
		}
		occ := gs.PieceAt(cell)
		if occ == nil {
			out = append(out, Action{Type: ActionMove, PieceID: p.ID, To: cell})
		} else if wantAttacks && visibleTarget(occ, p.Side) {
			out = append(out, Action{Type: ActionAttack, PieceID: p.ID, To: cell, TargetID: occ.ID})
		}
	}
	return out
}

// slideCandidates produces straight-line travel along the given directions:
// a move at every reachable empty cell the piece may stop on, an attack at
// the first occupied cell when it holds a capturable enemy. Scorch is
// passable but not stoppable; hostile guard lights truncate the line.
func (gs *GameState) slideCandidates(p *Piece, dirs []XY) []Action {
	var out []Action
	from := RotateToSquare(p.Pos)
	for _, d := range dirs {
		for q := from.Add(d); OnBoard(q); q = q.Add(d) {
			cell := FromSquare(q)
			if gs.lightBlocks(cell, p.Side) {
				break
			}
			occ := gs.PieceAt(cell)
			if occ != nil {
				if physicalTarget(occ, p.Side) && gs.canStop(cell, p.Kind, p.Side) {
					out = append(out, Action{Type: ActionAttack, PieceID: p.ID, To: cell, TargetID: occ.ID})
				}
				break
			}
			if gs.canStop(cell, p.Kind, p.Side) {
				out = append(out, Action{Type: ActionMove, PieceID: p.ID, To: cell})
			}
		}
	}
	return out
}

// forwardOffsets are the two one-step advances toward the enemy side.
func forwardOffsets(side Side) []XY {
	if side == First {
		return []XY{{-1, 0}, {0, -1}}
	}
	return []XY{{1, 0}, {0, 1}}
}
