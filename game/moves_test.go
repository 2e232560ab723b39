package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func movesOf(actions []Action, typ ActionType) []Coord {
	var cells []Coord
	for _, a := range actions {
		if a.Type == typ {
			cells = append(cells, a.To)
		}
	}
	return cells
}

func TestApprenticeCandidates(t *testing.T) {
	gs := NewGameState()
	app := gs.PieceAt(Coord{10, 0})
	require.NotNil(t, app)
	require.Equal(t, Apprentice, app.Kind)

	actions := gs.candidatesFor(app)

	require.ElementsMatch(t, []Coord{{9, 0}, {9, 1}}, movesOf(actions, ActionMove),
		"apprentice advances toward the enemy side only")
	swaps := movesOf(actions, ActionSwap)
	require.Len(t, swaps, 1, "one-time wizard swap")
	require.Equal(t, Coord{16, 0}, swaps[0])

	app.SwapUsed = true
	require.Empty(t, movesOf(gs.candidatesFor(app), ActionSwap),
		"consumed swap is not offered again")
}

func TestWizardCandidatesInitial(t *testing.T) {
	gs := NewGameState()
	w := gs.findPiece(Wizard, First)

	actions := gs.candidatesFor(w)

	require.Empty(t, movesOf(actions, ActionMove), "home wizard is boxed in by paladins")
	require.Empty(t, movesOf(actions, ActionAttack), "no beam from the home row")
	require.Len(t, movesOf(actions, ActionSwap), 2, "a swap per unused apprentice")
}

func TestAssassinCandidates(t *testing.T) {
	gs := testState(First,
		pc("a", Assassin, First, 4, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)

	actions := gs.candidatesFor(gs.pieceByID("a"))

	require.ElementsMatch(t,
		[]Coord{at(6, 3), at(2, 5), at(5, 2), at(3, 6)},
		movesOf(actions, ActionMove),
		"four parallelogram-diagonal hops")
}

func TestDragonCandidatesStopAtBlocker(t *testing.T) {
	gs := testState(First,
		pc("d", Dragon, First, 4, 4),
		pc("own", Paladin, First, 4, 6),
		pc("e", Griffin, Second, 6, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)

	actions := gs.candidatesFor(gs.pieceByID("d"))

	require.Contains(t, movesOf(actions, ActionMove), at(4, 5),
		"open cell before the friendly blocker")
	require.NotContains(t, movesOf(actions, ActionMove), at(4, 6), "friendly piece blocks")
	require.NotContains(t, movesOf(actions, ActionMove), at(4, 7), "no jumping over pieces")
	require.Contains(t, movesOf(actions, ActionAttack), at(6, 4),
		"first blocker on an open ray is capturable")
}

func TestGriffinCandidates(t *testing.T) {
	gs := testState(First,
		pc("g", Griffin, First, 4, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)

	actions := gs.candidatesFor(gs.pieceByID("g"))
	moves := movesOf(actions, ActionMove)

	for _, c := range []Coord{at(5, 3), at(8, 0), at(3, 5), at(0, 8)} {
		require.Contains(t, moves, c, "same-row travel is unlimited")
	}
	require.Contains(t, moves, at(5, 5), "single vertical step")
	require.Contains(t, moves, at(3, 3), "single vertical step")
	require.NotContains(t, moves, at(6, 6), "verticals do not slide")
	require.NotContains(t, moves, at(4, 5), "no travel on the other line families")
}

func TestRangerCannon(t *testing.T) {
	t.Run("screen plus adjacent target", func(t *testing.T) {
		gs := testState(First,
			pc("r", Ranger, First, 4, 4),
			pc("s", Apprentice, First, 4, 6),
			pc("e", Griffin, Second, 4, 7),
		)

		attacks := movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionAttack)

		require.Contains(t, attacks, at(4, 7), "target immediately beyond the screen")
	})

	t.Run("hidden assassin is transparent to the scan", func(t *testing.T) {
		gs := testState(First,
			pc("r", Ranger, First, 4, 4),
			pc("ghost", Assassin, Second, 4, 5),
			pc("s", Apprentice, First, 4, 6),
			pc("e", Griffin, Second, 4, 7),
		)
		gs.pieceByID("ghost").Stealthed = true

		attacks := movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionAttack)

		require.Contains(t, attacks, at(4, 7),
			"stealthed assassin neither screens nor is captured")
		require.NotContains(t, attacks, at(4, 5))
	})

	t.Run("unactivated bard cannot screen", func(t *testing.T) {
		gs := testState(First,
			pc("r", Ranger, First, 4, 4),
			pc("b", Bard, Neutral, 4, 6),
			pc("e", Griffin, Second, 4, 7),
		)

		attacks := movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionAttack)

		require.NotContains(t, attacks, at(4, 7), "inert bard aborts the ray")
	})

	t.Run("gap after screen yields no capture", func(t *testing.T) {
		gs := testState(First,
			pc("r", Ranger, First, 4, 4),
			pc("s", Apprentice, First, 4, 6),
			pc("e", Griffin, Second, 4, 8),
		)

		attacks := movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionAttack)

		require.NotContains(t, attacks, at(4, 8),
			"target must sit immediately beyond the screen")
	})
}

func TestScorchBlocksStopping(t *testing.T) {
	gs := testState(First,
		pc("r", Ranger, First, 4, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)
	gs.Scorch = []ScorchMark{{Cell: at(4, 5), DragonID: "other"}}

	require.NotContains(t, movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionMove),
		at(4, 5), "ranger cannot stop on scorch")
}

func TestSliderPassesThroughScorch(t *testing.T) {
	gs := testState(First,
		pc("d", Dragon, First, 4, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)
	gs.Scorch = []ScorchMark{{Cell: at(4, 5), DragonID: "other"}}

	moves := movesOf(gs.candidatesFor(gs.pieceByID("d")), ActionMove)

	require.NotContains(t, moves, at(4, 5), "no stopping on scorch")
	require.Contains(t, moves, at(4, 6), "scorch is passable")
}

func TestPaladinStopsOnScorch(t *testing.T) {
	gs := testState(First,
		pc("p", Paladin, First, 4, 4),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)
	gs.Scorch = []ScorchMark{{Cell: at(4, 5), DragonID: "other"}}

	require.Contains(t, movesOf(gs.candidatesFor(gs.pieceByID("p")), ActionMove),
		at(4, 5), "paladin alone may stop on scorch")
}

func TestGuardLightBlocksMovement(t *testing.T) {
	gs := testState(First,
		pc("r", Ranger, First, 4, 4),
		pc("d", Dragon, First, 5, 4),
		pc("friend", Ranger, Second, 4, 6),
		pc("w1", Wizard, First, 8, 8),
		pc("w2", Wizard, Second, 0, 0),
	)
	gs.Lights = []GuardLight{{Cell: at(4, 5), Side: Second}}

	require.NotContains(t, movesOf(gs.candidatesFor(gs.pieceByID("r")), ActionMove),
		at(4, 5), "hostile light bars entry")
	dragonMoves := movesOf(gs.candidatesFor(gs.pieceByID("d")), ActionMove)
	require.Contains(t, dragonMoves, at(5, 5), "open rays are unaffected")
	require.NotContains(t, dragonMoves, at(4, 5), "hostile light truncates the ray")
	require.NotContains(t, dragonMoves, at(3, 6), "no travel past a hostile light")

	gs.Turn = Second
	require.Contains(t, movesOf(gs.candidatesFor(gs.pieceByID("friend")), ActionMove),
		at(4, 5), "own light does not block")
}

func TestBardCandidates(t *testing.T) {
	t.Run("inert bard has no moves", func(t *testing.T) {
		gs := testState(First, pc("b", Bard, First, 4, 4))
		require.Empty(t, gs.candidatesFor(gs.pieceByID("b")))
	})

	t.Run("activated bard steps and jumps", func(t *testing.T) {
		gs := testState(First,
			pc("b", Bard, First, 4, 4),
			pc("over", Ranger, First, 4, 5),
		)
		gs.pieceByID("b").Activated = true

		actions := gs.candidatesFor(gs.pieceByID("b"))
		moves := movesOf(actions, ActionMove)

		require.Contains(t, moves, at(4, 3), "open adjacent step")
		require.NotContains(t, moves, at(4, 5), "occupied cell is not a step")
		require.Contains(t, moves, at(4, 6), "straight-line jump over the adjacent piece")
	})

	t.Run("stealthed assassin cannot be jumped", func(t *testing.T) {
		gs := testState(First,
			pc("b", Bard, First, 4, 4),
			pc("ghost", Assassin, Second, 4, 5),
		)
		gs.pieceByID("b").Activated = true
		gs.pieceByID("ghost").Stealthed = true

		actions := gs.candidatesFor(gs.pieceByID("b"))

		require.NotContains(t, movesOf(actions, ActionMove), at(4, 6))
		require.Contains(t, movesOf(actions, ActionAttack), at(4, 5),
			"bard may land on the hidden assassin, capturing it")
	})
}
