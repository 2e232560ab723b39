package game

// MoveRecord is the human-readable description of a resolved step, stored
// in three redaction variants: a move involving a currently-stealthed piece
// is obscured for the opposing viewer only.
type MoveRecord struct {
	Full       string `json:"full"`
	FirstView  string `json:"firstView"`
	SecondView string `json:"secondView"`
}

const hiddenMoveText = "hidden move"

// addRecord appends a record; each involved piece that is stealthed after
// the action obscures the variant shown to its opposing side.
func (gs *GameState) addRecord(full string, involved ...*Piece) {
	rec := MoveRecord{Full: full, FirstView: full, SecondView: full}
	for _, p := range involved {
		if p == nil {
			continue
		}
		if p.HiddenFrom(First) {
			rec.FirstView = hiddenMoveText
		}
		if p.HiddenFrom(Second) {
			rec.SecondView = hiddenMoveText
		}
	}
	gs.History = append(gs.History, rec)
}

// View returns the history variant a viewer is allowed to see. Spectators
// and the neutral side get the full record.
func (r MoveRecord) View(viewer Side) string {
	switch viewer {
	case First:
		return r.FirstView
	case Second:
		return r.SecondView
	default:
		return r.Full
	}
}
