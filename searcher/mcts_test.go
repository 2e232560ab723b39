package searcher

import (
	"testing"
	"time"

	"archon/game"

	"github.com/stretchr/testify/require"
)

// twoPlyState is a one-decision game: move 1 wins for first, move 0 wins
// for second.
type twoPlyState struct {
	winner string
}

func (s twoPlyState) Player() string { return "first" }

func (s twoPlyState) LegalMoves() []game.Move {
	if s.winner != "" {
		return nil
	}
	return []game.Move{mockMove{id: 0}, mockMove{id: 1}}
}

func (s twoPlyState) Play(m game.Move) game.State {
	if m.(mockMove).id == 1 {
		return twoPlyState{winner: "first"}
	}
	return twoPlyState{winner: "second"}
}

func (s twoPlyState) Hash() game.StateHash {
	if s.winner == "" {
		return 0
	}
	return game.StateHash(len(s.winner))
}

func (s twoPlyState) Winner() string { return s.winner }

func TestMCTSFindsTheWinningMove(t *testing.T) {
	m := NewMCTS(2, WithEpisodes(200), WithMetrics())

	policy, metric := m.Simulate(twoPlyState{}, nil)

	require.Equal(t, 200, metric.Episodes)
	require.True(t, metric.IsTreeReset, "first search starts a fresh tree")
	require.Greater(t, policy[mockMove{id: 1}], policy[mockMove{id: 0}],
		"the immediately winning move should dominate visits")
	require.Equal(t, mockMove{id: 1}, m.root.findBestMove())
}

func TestMCTSWithDuration(t *testing.T) {
	m := NewMCTS(2, WithDuration(50*time.Millisecond), WithMetrics())

	policy, metric := m.Simulate(twoPlyState{}, nil)

	require.NotEmpty(t, policy)
	require.Greater(t, metric.Episodes, 0)
}

func TestMCTSTreeReuse(t *testing.T) {
	state := game.NewGameState()
	m := NewMCTS(4, WithEpisodes(300), WithCutoff(15), WithMetrics())

	policy, _ := m.Simulate(state, nil)
	require.NotEmpty(t, policy)

	// Advance the game by the best root move and search again with the
	// lineage: the subtree should be reused, not rebuilt.
	move := m.root.findBestMove()
	next := state.Play(move)
	_, metric := m.Simulate(next, []Segment{{Move: move, StateHash: next.Hash()}})

	require.False(t, metric.IsTreeReset, "lineage within the tree re-roots instead of resetting")
}

func TestMCTSRequiresBudget(t *testing.T) {
	require.Panics(t, func() { NewMCTS(1) },
		"a search without episodes or duration has no stopping rule")
}
