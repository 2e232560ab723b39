package searcher

import (
	"math"

	"archon/game"
)

// MCTS hyperparameters.
const (
	CSquared = 2.0 // Exploration constant (squared)

	Win  = 1.0  // Reward for a winning outcome
	Loss = -Win // Reward for a losing outcome, and the virtual loss
)

// MaxCutoff effectively disables the rollout depth cutoff.
const MaxCutoff = math.MaxInt32

type Node interface {
	// SelectOrExpand picks the max-policy child of a fully expanded node
	// (selected=true) or attaches a child for the next unexplored move
	// (selected=false). A terminal node returns itself.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup records the playout outcome and returns the parent.
	Backup(player string, score float64) Node
	Value() int
	applyLoss()
	score(normalizer float64, pov string) float64
}

func ucb1(q, n, normalizer float64) float64 {
	if n == 0 {
		panic("cannot compute UCB1: 0 visits")
	}
	return q/n + math.Sqrt(normalizer/n)
}
