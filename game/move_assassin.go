package game

// assassinCandidates: the four parallelogram-diagonal hops. Stealth
// toggling is a side effect of the hop's direction, applied at resolution.
func (gs *GameState) assassinCandidates(p *Piece) []Action {
	return gs.stepCandidates(p, AssassinHops, true)
}

// stealthDelta applies the stealth state machine for a displacement from
// one cell to another: a delta sum equal to the side's forward sum enters
// stealth, its negation exits, anything else leaves the state unchanged.
func stealthDelta(p *Piece, from, to Coord) {
	if p.Kind != Assassin {
		return
	}
	a, b := RotateToSquare(from), RotateToSquare(to)
	sum := (b.X - a.X) + (b.Y - a.Y)
	switch sum {
	case p.Side.ForwardSum():
		p.Stealthed = true
	case -p.Side.ForwardSum():
		p.Stealthed = false
		p.StealthExpiresOn = SideNone
	}
}
