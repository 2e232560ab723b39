package game

// Move is any action the engine can resolve. Every action in this game is
// deterministic; the method exists so searchers can branch on stochastic
// outcomes in games that have them.
type Move interface {
	IsDeterministic() bool
}

type StateHash uint64

// State is immutable from the caller's perspective: Play always returns a
// new copy. Player reports the side that owns the NEXT decision, which
// during a suspended sub-turn may differ from the side whose turn it is.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluate scores a state between -1 and 1 from the deciding player's
// perspective, positive meaning favorable.
type Evaluate func(State) float64
