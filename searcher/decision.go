package searcher

import (
	"math"
	"sync"

	"archon/game"
)

// decision is a tree node owned by the player to decide at its state. Every
// action in this game is deterministic, so the whole tree is decision nodes.
// Rewards are stored from the node player's perspective; virtual losses keep
// parallel workers off each other's paths.
type decision struct {
	sync.RWMutex
	parent     Node
	player     string
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []Node
	rewards    float64
	visits     float64
}

func newDecision(parent Node, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.explored) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		childState := state.Play(move)
		child := newDecision(d, childState)
		child.applyLoss()
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := CSquared * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer, d.player)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

// score is the UCB1 value from pov's perspective: a child owned by the
// opponent contributes its rewards negated.
func (d *decision) score(normalizer float64, pov string) float64 {
	d.RLock()
	defer d.RUnlock()

	q := d.rewards
	if d.player != pov {
		q = -q
	}
	return ucb1(q, d.visits, normalizer)
}

func (d *decision) Backup(player string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node: reverse the virtual loss
		d.rewards -= Loss
		d.visits--
	}

	if d.player == player {
		d.rewards += score
	} else {
		d.rewards -= score
	}
	d.visits++

	return d.parent
}

func (d *decision) Value() int {
	d.RLock()
	defer d.RUnlock()

	return int(d.visits)
}

// Policy reports the visit share of each explored root move.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0
	for _, child := range d.children {
		total += child.Value()
	}
	policy := make(map[game.Move]float64, len(d.explored))
	if total == 0 {
		return policy
	}
	for i, move := range d.explored {
		policy[move] = float64(d.children[i].Value()) / float64(total)
	}
	return policy
}

func (d *decision) findBestMove() game.Move {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return nil
	}

	bestIndex := 0
	maxValue := d.children[0].Value()
	for i, child := range d.children[1:] {
		if v := child.Value(); v > maxValue {
			maxValue = v
			bestIndex = i + 1
		}
	}
	return d.explored[bestIndex]
}
