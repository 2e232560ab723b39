package game

import "github.com/google/uuid"

// Piece is a stable-identity game piece. Pieces are created once at setup
// and removed only by capture; the ID never changes, which is also what
// scopes a dragon's scorch marks to that specific dragon.
type Piece struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Side Side   `json:"side"`
	Pos  Coord  `json:"pos"`

	// Assassin: current stealth state and the deferred-reveal marker. The
	// marker names the side whose completed turn clears the stealth flag.
	Stealthed        bool `json:"stealthed,omitempty"`
	StealthExpiresOn Side `json:"stealthExpiresOn,omitempty"`

	// Bard: set permanently once any capture has occurred in the game.
	Activated bool `json:"activated,omitempty"`

	// Apprentice: the one-time wizard swap has been consumed.
	SwapUsed bool `json:"swapUsed,omitempty"`
}

// HiddenFrom reports whether the piece is invisible to the viewer: an enemy
// piece currently in stealth. A side always sees its own pieces.
func (p *Piece) HiddenFrom(viewer Side) bool {
	return p.Stealthed && viewer != SideNone && viewer != p.Side
}

func newPiece(kind Kind, side Side, pos Coord) Piece {
	return Piece{ID: uuid.NewString(), Kind: kind, Side: side, Pos: pos}
}

// firstSideLayout is the home arrangement of one side, given for First
// (high rows). Second's layout is the Mirror image.
var firstSideLayout = []struct {
	Kind Kind
	Pos  Coord
}{
	{Wizard, Coord{16, 0}},
	{Paladin, Coord{15, 0}},
	{Paladin, Coord{15, 1}},
	{Assassin, Coord{14, 0}},
	{Dragon, Coord{14, 1}},
	{Assassin, Coord{14, 2}},
	{Ranger, Coord{13, 0}},
	{Griffin, Coord{13, 3}},
	{Bard, Coord{12, 2}},
	{Apprentice, Coord{10, 0}},
	{Apprentice, Coord{10, 6}},
}

// centerCell hosts the single neutral bard.
var centerCell = Coord{BoardSide, BoardSide / 2}

func initialPieces() []Piece {
	pieces := make([]Piece, 0, 2*len(firstSideLayout)+1)
	for _, e := range firstSideLayout {
		pieces = append(pieces, newPiece(e.Kind, First, e.Pos))
	}
	for _, e := range firstSideLayout {
		pieces = append(pieces, newPiece(e.Kind, Second, Mirror(e.Pos)))
	}
	pieces = append(pieces, newPiece(Bard, Neutral, centerCell))
	return pieces
}

// pieceByID returns a pointer into the state's piece slice, or nil.
func (gs *GameState) pieceByID(id string) *Piece {
	for i := range gs.Pieces {
		if gs.Pieces[i].ID == id {
			return &gs.Pieces[i]
		}
	}
	return nil
}

// PieceAt is the physical lookup: any piece occupies its cell, stealthed or
// not.
func (gs *GameState) PieceAt(c Coord) *Piece {
	for i := range gs.Pieces {
		if gs.Pieces[i].Pos == c {
			return &gs.Pieces[i]
		}
	}
	return nil
}

// VisiblePieceAt is the visible-to-side lookup: an enemy piece in stealth is
// treated as absent.
func (gs *GameState) VisiblePieceAt(c Coord, viewer Side) *Piece {
	p := gs.PieceAt(c)
	if p == nil || p.HiddenFrom(viewer) {
		return nil
	}
	return p
}

// findPiece returns the first piece of the given kind and side, or nil.
func (gs *GameState) findPiece(kind Kind, side Side) *Piece {
	for i := range gs.Pieces {
		if gs.Pieces[i].Kind == kind && gs.Pieces[i].Side == side {
			return &gs.Pieces[i]
		}
	}
	return nil
}

// removePiece deletes a piece by ID, purging a captured dragon's scorch
// marks, and returns the removed piece.
func (gs *GameState) removePiece(id string) (Piece, bool) {
	for i := range gs.Pieces {
		if gs.Pieces[i].ID == id {
			removed := gs.Pieces[i]
			gs.Pieces = append(gs.Pieces[:i], gs.Pieces[i+1:]...)
			if removed.Kind == Dragon {
				gs.clearScorchOf(removed.ID)
			}
			return removed, true
		}
	}
	return Piece{}, false
}

// ProtectionZone is a paladin's own cell plus all adjacent cells.
func ProtectionZone(c Coord) []Coord {
	return append([]Coord{c}, Neighbors(c)...)
}

func zoneContains(center, cell Coord) bool {
	return center == cell || Adjacent(center, cell)
}
