package engine

import (
	"time"

	"archon/game"
	"archon/metrics"
	"archon/searcher"
	"archon/searcher/agent"

	"github.com/rs/zerolog/log"
)

// MaxMoves caps a match that neither side manages to win.
const MaxMoves = 1000

// Match drives two agents against one Session until a winner or MaxMoves.
// The agent owning a pending sub-turn decision (a guard call belongs to the
// defender) is the one asked, not the agent whose turn it is.
type Match struct {
	session *Session
	agents  map[game.Side]agent.Agent
}

func NewMatch(first, second agent.Agent) *Match {
	s := NewSession()
	s.Seat(game.First, "first")
	s.Seat(game.Second, "second")
	return &Match{
		session: s,
		agents:  map[game.Side]agent.Agent{game.First: first, game.Second: second},
	}
}

func (m *Match) Session() *Session { return m.session }

func (m *Match) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	state := m.session.State()
	startTime := time.Now()
	startingPlayer := state.Player()
	log.Info().Msgf("%s is starting", startingPlayer)

	lineages := make(map[game.Side][]searcher.Segment, len(m.agents))
	var moveMetrics []metrics.MoveMetric

	step := 1
	for state.Winner() == "" && step <= MaxMoves {
		side := state.Decider()

		move, metric := m.agents[side].FindMove(state, lineages[side])
		if move == nil {
			log.Warn().Msgf("%s has no move to play", side)
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       side.String(),
			SearchMetric: metric,
		})

		next, err := m.session.Apply(side, move.(game.Action))
		if err != nil {
			log.Error().Err(err).Msgf("%s submitted an unplayable move %s", side, move)
			break
		}

		segment := searcher.Segment{Move: move, StateHash: next.Hash()}
		lineages[side] = nil
		for s := range m.agents {
			lineages[s] = append(lineages[s], segment)
		}

		state = next
		step++
	}

	winner := state.Winner()
	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: startingPlayer,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     step - 1,
	}
	if winner != "" {
		log.Info().Msgf("%s wins after %d moves", winner, gameMetric.TotalMoves)
	} else {
		log.Info().Msgf("no winner after %d moves", gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics
}
