package game

// A conductor relays the wizard's beam: a friendly apprentice, or an
// activated bard of the wizard's side or the neutral side.
func (gs *GameState) isConductor(p *Piece, side Side) bool {
	switch p.Kind {
	case Apprentice:
		return p.Side == side
	case Bard:
		return p.Activated && (p.Side == side || p.Side == Neutral)
	default:
		return false
	}
}

// beamLinked reports whether two cells form a valid beam link for the given
// side: aligned on one of the three straight-line families at distance 1 or
// 2. A distance-2 link needs its midpoint unoccupied (physically - a
// stealthed piece still blocks) and free of hostile guard light; a hostile
// light on the endpoint invalidates the link outright.
func (gs *GameState) beamLinked(from, to Coord, side Side) bool {
	a, b := RotateToSquare(from), RotateToSquare(to)
	dist := lineDistance(a, b)
	if dist != 1 && dist != 2 {
		return false
	}
	if gs.lightBlocks(to, side) {
		return false
	}
	if dist == 2 {
		mid := FromSquare(a.Add(lineStep(a, b)))
		if gs.PieceAt(mid) != nil || gs.lightBlocks(mid, side) {
			return false
		}
	}
	return true
}

// TraceBeam walks the conductor chain from a wizard. The branch rule is
// absolute: any step with more than one candidate link of either kind, or
// with none at all, aborts the trace. On success the returned path runs
// wizard, conductors..., target.
func (gs *GameState) TraceBeam(w *Piece) ([]Coord, *Piece) {
	var conductors, enemies []*Piece
	for i := range gs.Pieces {
		p := &gs.Pieces[i]
		if p.ID == w.ID {
			continue
		}
		if gs.isConductor(p, w.Side) {
			conductors = append(conductors, p)
		} else if p.Side == w.Side.Opposite() && p.Kind != Bard && !p.HiddenFrom(w.Side) {
			enemies = append(enemies, p)
		}
	}

	used := make(map[string]bool)
	linked := func(from Coord, pool []*Piece) []*Piece {
		var out []*Piece
		for _, p := range pool {
			if !used[p.ID] && gs.beamLinked(from, p.Pos, w.Side) {
				out = append(out, p)
			}
		}
		return out
	}

	path := []Coord{w.Pos}
	first := linked(w.Pos, conductors)
	if len(first) != 1 {
		return nil, nil
	}

	cur := first[0]
	for {
		used[cur.ID] = true
		path = append(path, cur.Pos)

		targets := linked(cur.Pos, enemies)
		next := linked(cur.Pos, conductors)
		if len(targets) > 1 || len(next) > 1 {
			return nil, nil
		}
		if len(targets) == 1 {
			return append(path, targets[0].Pos), targets[0]
		}
		if len(next) != 1 {
			return nil, nil
		}
		cur = next[0]
	}
}
