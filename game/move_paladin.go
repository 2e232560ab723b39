package game

// paladinCandidates: king steps; the paladin is the only archetype allowed
// to stop on scorch, which canStop already encodes. The protection zone is
// not an action, it is consulted by the resolution engine.
func (gs *GameState) paladinCandidates(p *Piece) []Action {
	return gs.stepCandidates(p, Steps, true)
}

// guardians lists the pieces of the defending side eligible to intercept an
// attack on the given cell: its paladins whose protection zone covers the
// cell, excluding the target itself.
func (gs *GameState) guardians(defender Side, cell Coord, targetID string) []string {
	var ids []string
	for i := range gs.Pieces {
		g := &gs.Pieces[i]
		if g.Kind == Paladin && g.Side == defender && g.ID != targetID && zoneContains(g.Pos, cell) {
			ids = append(ids, g.ID)
		}
	}
	return ids
}
