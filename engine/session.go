package engine

import (
	"fmt"
	"sync"

	"archon/game"
)

// Update is emitted after every applied action: the move, a snapshot of the
// resulting state, and its hash for tree re-rooting.
type Update struct {
	Move  game.Move
	State *game.GameState
	Hash  game.StateHash
}

// Session owns the canonical state of one game and is the only place moves
// get applied. Submissions are validated against the deciding side; an
// action the resolution engine declines leaves the state untouched and is
// reported as an error.
type Session struct {
	mu      sync.Mutex
	state   *game.GameState
	updates chan Update
}

func NewSession() *Session {
	return &Session{
		state:   game.NewGameState(),
		updates: make(chan Update, 16),
	}
}

// State returns a copy of the canonical state.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Copy()
}

// Updates delivers one Update per applied action, in order.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Seat binds a participant name to a side.
func (s *Session) Seat(side game.Side, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Seats[side] = name
	s.state.Ready[side] = true
}

// Select marks a piece of the deciding side as selected. Invalid selections
// are declined silently, mirroring the resolution engine.
func (s *Session) Select(side game.Side, pieceID string) *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if side != s.state.Decider() {
		return s.state.Copy()
	}
	s.state = s.state.Select(pieceID)
	return s.state.Copy()
}

// Apply submits an action on behalf of a side. The side must own the
// current decision, and the action must be accepted by the resolution
// engine; anything else returns an error with the state unchanged.
func (s *Session) Apply(side game.Side, a game.Action) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Winner() != "" {
		return s.state.Copy(), fmt.Errorf("game is over")
	}
	if side != s.state.Decider() {
		return s.state.Copy(), fmt.Errorf("side %s does not own the current decision", side)
	}

	next := s.state.Play(a).(*game.GameState)
	if next == s.state { // Declined
		return s.state.Copy(), fmt.Errorf("illegal action %s", a)
	}
	s.state = next

	// Slow consumers miss intermediate updates; they can resync from
	// State() at any time.
	u := Update{Move: a, State: next.Copy(), Hash: next.Hash()}
	select {
	case s.updates <- u:
	default:
	}
	if next.Winner() != "" {
		close(s.updates)
	}
	return next.Copy(), nil
}
