package agent

import (
	"archon/game"
	"archon/metrics"
	"archon/searcher"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal move. It exists as a baseline
// opponent and for fast engine tests.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
