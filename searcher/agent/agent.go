package agent

import (
	"archon/game"
	"archon/metrics"
	"archon/searcher"
)

// Agent picks a move for the deciding player of a state. lineage lists the
// moves applied since the agent's previous decision, letting search agents
// carry their tree across turns.
type Agent interface {
	FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric)
}
