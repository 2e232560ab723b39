package game

// ScorchMark is a cell burnt by a dragon's traversal. Every archetype may
// pass through it; only a paladin may stop on it. Marks are scoped to the
// dragon that produced them and replaced wholesale on its next move.
type ScorchMark struct {
	Cell     Coord  `json:"cell"`
	DragonID string `json:"dragonId"`
}

// GuardLight is left behind by a paladin that died intercepting an attack.
// Opposing pieces may neither stop on nor pass through the cell. A light is
// born Fresh in the middle of the opposing side's turn; it survives the
// creator's imminent turn, blocks the opponent for one full turn, and is
// cleared when the creator's following turn starts. A paladin moving onto
// the cell clears it early.
type GuardLight struct {
	Cell  Coord `json:"cell"`
	Side  Side  `json:"side"`
	Fresh bool  `json:"fresh,omitempty"`
}

func (gs *GameState) scorchAt(c Coord) bool {
	for _, m := range gs.Scorch {
		if m.Cell == c {
			return true
		}
	}
	return false
}

func (gs *GameState) clearScorchOf(dragonID string) {
	kept := gs.Scorch[:0]
	for _, m := range gs.Scorch {
		if m.DragonID != dragonID {
			kept = append(kept, m)
		}
	}
	gs.Scorch = kept
}

func (gs *GameState) clearScorchAt(c Coord) {
	kept := gs.Scorch[:0]
	for _, m := range gs.Scorch {
		if m.Cell != c {
			kept = append(kept, m)
		}
	}
	gs.Scorch = kept
}

// lightBlocks reports whether the cell carries a guard light hostile to the
// given side. Hostile lights bar both stopping and passing through.
func (gs *GameState) lightBlocks(c Coord, side Side) bool {
	for _, l := range gs.Lights {
		if l.Cell == c && l.Side != side && l.Side != Neutral {
			return true
		}
	}
	return false
}

func (gs *GameState) clearLightAt(c Coord) {
	kept := gs.Lights[:0]
	for _, l := range gs.Lights {
		if l.Cell != c {
			kept = append(kept, l)
		}
	}
	gs.Lights = kept
}

// expireLights runs at the start of a side's turn: that side's fresh lights
// age, its stale ones clear.
func (gs *GameState) expireLights(toMove Side) {
	kept := gs.Lights[:0]
	for _, l := range gs.Lights {
		if l.Side == toMove {
			if !l.Fresh {
				continue
			}
			l.Fresh = false
		}
		kept = append(kept, l)
	}
	gs.Lights = kept
}

// canStop reports whether a piece of the given kind and side may end its
// move on the cell, assuming it is unoccupied or being captured. Scorch
// forbids stopping for everyone but the paladin; hostile guard lights
// forbid the cell outright.
func (gs *GameState) canStop(c Coord, kind Kind, side Side) bool {
	if gs.lightBlocks(c, side) {
		return false
	}
	if kind != Paladin && gs.scorchAt(c) {
		return false
	}
	return true
}
