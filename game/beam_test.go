package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceBeam(t *testing.T) {
	t.Run("unique chain reaches the target", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
			pc("e", Ranger, Second, 4, 7),
		)

		path, target := gs.TraceBeam(gs.pieceByID("w"))

		require.NotNil(t, target, "single conductor and single enemy link should trace")
		require.Equal(t, "e", target.ID)
		require.Equal(t, []Coord{at(4, 4), at(4, 5), at(4, 7)}, path,
			"path should run wizard, conductor, target")
	})

	t.Run("two first-link conductors abort the trace", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c1", Apprentice, First, 4, 5),
			pc("c2", Apprentice, First, 5, 4),
			pc("e", Ranger, Second, 4, 7),
		)

		path, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target, "branching at the wizard should fail the beam")
		require.Nil(t, path)
	})

	t.Run("two enemy links abort the trace", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
			pc("e1", Ranger, Second, 4, 7),
			pc("e2", Griffin, Second, 5, 5),
		)

		_, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target, "two candidate targets should fail the beam")
	})

	t.Run("occupied midpoint breaks a distance-2 link", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
			pc("block", Paladin, First, 4, 6),
			pc("e", Ranger, Second, 4, 7),
		)

		_, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target, "a piece on the midpoint should break the link")
	})

	t.Run("hostile guard light on the midpoint breaks the link", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
			pc("e", Ranger, Second, 4, 7),
		)
		gs.Lights = []GuardLight{{Cell: at(4, 6), Side: Second}}

		_, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target)
	})

	t.Run("hidden assassin is never a beam target", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
			pc("e", Assassin, Second, 4, 7),
		)
		gs.pieceByID("e").Stealthed = true

		_, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target)
	})

	t.Run("unactivated bard does not conduct", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("b", Bard, Neutral, 4, 5),
			pc("e", Ranger, Second, 4, 7),
		)

		_, target := gs.TraceBeam(gs.pieceByID("w"))
		require.Nil(t, target, "inert bard cannot start a chain")

		gs.pieceByID("b").Activated = true
		_, target = gs.TraceBeam(gs.pieceByID("w"))
		require.NotNil(t, target, "activated neutral bard conducts")
		require.Equal(t, "e", target.ID)
	})

	t.Run("multi-conductor chain", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c1", Apprentice, First, 4, 5),
			pc("c2", Apprentice, First, 4, 7),
			pc("e", Griffin, Second, 5, 7),
		)

		path, target := gs.TraceBeam(gs.pieceByID("w"))

		require.NotNil(t, target)
		require.Equal(t, "e", target.ID)
		require.Len(t, path, 4)
	})

	t.Run("chain dead-end fails", func(t *testing.T) {
		gs := testState(First,
			pc("w", Wizard, First, 4, 4),
			pc("c", Apprentice, First, 4, 5),
		)

		_, target := gs.TraceBeam(gs.pieceByID("w"))

		require.Nil(t, target, "no enemy link and no next conductor dead-ends")
	})
}

func TestWizardBeamCandidate(t *testing.T) {
	gs := testState(First,
		pc("w", Wizard, First, 4, 4),
		pc("c", Apprentice, First, 4, 5),
		pc("e", Ranger, Second, 4, 7),
	)

	var attacks []Action
	for _, a := range gs.wizardCandidates(gs.pieceByID("w")) {
		if a.Type == ActionAttack {
			attacks = append(attacks, a)
		}
	}

	require.Len(t, attacks, 1, "wizard exposes at most one attack, the beam target")
	require.Equal(t, "e", attacks[0].TargetID)
	require.Equal(t, at(4, 7), attacks[0].To)
}
