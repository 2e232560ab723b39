package game

// kindValue weights material for cutoff evaluation. The wizard dominates:
// losing it loses the game. The bard is worthless material since it cannot
// be captured.
func kindValue(k Kind) float64 {
	switch k {
	case Wizard:
		return 50
	case Dragon:
		return 9
	case Ranger, Griffin:
		return 5
	case Paladin, Assassin:
		return 4
	case Apprentice:
		return 2
	default:
		return 0
	}
}

// EvaluateMaterial scores a state between -1 and 1 from the deciding
// player's perspective using relative material.
func EvaluateMaterial(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		return 0
	}
	var mine, theirs float64
	me := gs.Decider()
	for i := range gs.Pieces {
		p := &gs.Pieces[i]
		switch p.Side {
		case me:
			mine += kindValue(p.Kind)
		case me.Opposite():
			theirs += kindValue(p.Kind)
		}
	}
	total := mine + theirs
	if total == 0 {
		return 0
	}
	return (mine - theirs) / total
}
