package agent

import (
	"archon/game"
	"archon/metrics"
	"archon/searcher"
)

// MCTSAgent decides by Monte Carlo tree search, reusing the tree between
// turns when the lineage allows.
type MCTSAgent struct {
	mcts *searcher.MCTS
}

func NewMCTSAgent(goroutines int, options ...searcher.Option) *MCTSAgent {
	return &MCTSAgent{mcts: searcher.NewMCTS(goroutines, options...)}
}

func (a *MCTSAgent) FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, lineage)

	var best game.Move
	bestShare := -1.0
	for move, share := range policy {
		if share > bestShare {
			best = move
			bestShare = share
		}
	}
	if best == nil {
		// Degenerate search budget: fall back to any legal move.
		if moves := state.LegalMoves(); len(moves) > 0 {
			best = moves[0]
		}
	}
	return best, metric
}
