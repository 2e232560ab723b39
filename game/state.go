package game

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// CapturedPiece is one entry of the captured-piece tally.
type CapturedPiece struct {
	Kind Kind `json:"kind"`
	Side Side `json:"side"`
}

// PendingGuard suspends an attack whose target cell lies inside at least
// one defending paladin's protection zone. It lives for exactly one
// decision: guard or decline.
type PendingGuard struct {
	AttackerID    string     `json:"attackerId"`
	TargetID      string     `json:"targetId"`
	TargetCell    Coord      `json:"targetCell"`
	DefendingSide Side       `json:"defendingSide"`
	Mode          AttackMode `json:"mode"`
	GuardianIDs   []string   `json:"guardianIds"`
}

// PendingAttack suspends a wizard beam whose target is adjacent, where both
// the stationary shot and walk-and-melee are legal.
type PendingAttack struct {
	AttackerID string  `json:"attackerId"`
	TargetID   string  `json:"targetId"`
	TargetCell Coord   `json:"targetCell"`
	Path       []Coord `json:"path,omitempty"`
}

// PendingSwap suspends a completed bard move until the mandatory swap
// partner is chosen.
type PendingSwap struct {
	BardID     string   `json:"bardId"`
	PartnerIDs []string `json:"partnerIds"`
}

// GameState is the complete canonical snapshot of a game: everything a
// participant needs to reconstruct play with no additional context. It
// marshals to the opaque state blob the relay passes around.
type GameState struct {
	Pieces     []Piece         `json:"pieces"`
	Turn       Side            `json:"turn"`
	Phase      Phase           `json:"phase"`
	SelectedID string          `json:"selectedId,omitempty"`
	Scorch     []ScorchMark    `json:"scorch,omitempty"`
	Lights     []GuardLight    `json:"guardLights,omitempty"`
	Pending    *PendingGuard   `json:"pendingGuard,omitempty"`
	Attack     *PendingAttack  `json:"pendingAttack,omitempty"`
	Swap       *PendingSwap    `json:"pendingSwap,omitempty"`
	Captured   []CapturedPiece `json:"captured,omitempty"`
	History    []MoveRecord    `json:"history,omitempty"`
	Seats      map[Side]string `json:"seats,omitempty"`
	Ready      map[Side]bool   `json:"ready,omitempty"`
	WinnerSide Side            `json:"winner"`
}

// NewGameState sets up the initial layout with the first side to move.
func NewGameState() *GameState {
	return &GameState{
		Pieces: initialPieces(),
		Turn:   First,
		Phase:  PhaseIdle,
		Seats:  make(map[Side]string),
		Ready:  make(map[Side]bool),
	}
}

func (gs *GameState) Copy() *GameState {
	out := *gs
	out.Pieces = append([]Piece(nil), gs.Pieces...)
	out.Scorch = append([]ScorchMark(nil), gs.Scorch...)
	out.Lights = append([]GuardLight(nil), gs.Lights...)
	out.Captured = append([]CapturedPiece(nil), gs.Captured...)
	out.History = append([]MoveRecord(nil), gs.History...)
	if gs.Pending != nil {
		pg := *gs.Pending
		pg.GuardianIDs = append([]string(nil), gs.Pending.GuardianIDs...)
		out.Pending = &pg
	}
	if gs.Attack != nil {
		pa := *gs.Attack
		pa.Path = append([]Coord(nil), gs.Attack.Path...)
		out.Attack = &pa
	}
	if gs.Swap != nil {
		ps := *gs.Swap
		ps.PartnerIDs = append([]string(nil), gs.Swap.PartnerIDs...)
		out.Swap = &ps
	}
	out.Seats = make(map[Side]string, len(gs.Seats))
	for k, v := range gs.Seats {
		out.Seats[k] = v
	}
	out.Ready = make(map[Side]bool, len(gs.Ready))
	for k, v := range gs.Ready {
		out.Ready[k] = v
	}
	return &out
}

// Decider is the side that owns the next decision. During a guard
// intervention that is the defending side, not the side whose turn it is.
func (gs *GameState) Decider() Side {
	if gs.Phase == PhaseAwaitingGuardDecision && gs.Pending != nil {
		return gs.Pending.DefendingSide
	}
	return gs.Turn
}

func (gs *GameState) Player() string { return gs.Decider().String() }

// Winner reports the winning player, "" while the game is live.
func (gs *GameState) Winner() string {
	if gs.WinnerSide == SideNone {
		return ""
	}
	return gs.WinnerSide.String()
}

// Select enters the Selected phase for a piece of the side to move.
// Anything else - an enemy piece, an unknown id, a pending sub-turn - is
// silently declined and the state returned unchanged.
func (gs *GameState) Select(pieceID string) *GameState {
	if gs.Phase != PhaseIdle && gs.Phase != PhaseSelected {
		return gs
	}
	p := gs.pieceByID(pieceID)
	if p == nil || p.Side != gs.Turn {
		return gs
	}
	next := gs.Copy()
	next.Phase = PhaseSelected
	next.SelectedID = pieceID
	return next
}

// Deselect returns to Idle from Selected.
func (gs *GameState) Deselect() *GameState {
	if gs.Phase != PhaseSelected {
		return gs
	}
	next := gs.Copy()
	next.Phase = PhaseIdle
	next.SelectedID = ""
	return next
}

// LegalMoves enumerates every action the deciding side may submit in the
// current phase. In Idle that is every candidate of every piece of the side
// to move; pending phases offer their decision actions only.
func (gs *GameState) LegalMoves() []Move {
	var actions []Action
	switch gs.Phase {
	case PhaseIdle:
		if gs.WinnerSide != SideNone {
			return nil
		}
		for i := range gs.Pieces {
			p := &gs.Pieces[i]
			if p.Side == gs.Turn {
				actions = append(actions, gs.candidatesFor(p)...)
			}
		}
	case PhaseSelected:
		if p := gs.pieceByID(gs.SelectedID); p != nil {
			actions = gs.candidatesFor(p)
		}
	case PhaseAwaitingGuardDecision:
		if gs.Pending != nil {
			for _, id := range gs.Pending.GuardianIDs {
				actions = append(actions, Action{Type: ActionGuard, PieceID: id, To: gs.Pending.TargetCell})
			}
			actions = append(actions, Action{Type: ActionDeclineGuard, To: gs.Pending.TargetCell})
		}
	case PhaseAwaitingWizardAttackChoice:
		if gs.Attack != nil {
			actions = append(actions,
				Action{Type: ActionResolveAttack, PieceID: gs.Attack.AttackerID, To: gs.Attack.TargetCell, Mode: ModeStationary},
				Action{Type: ActionResolveAttack, PieceID: gs.Attack.AttackerID, To: gs.Attack.TargetCell, Mode: ModeStep},
			)
		}
	case PhaseAwaitingBardSwapTarget:
		if gs.Swap != nil {
			for _, id := range gs.Swap.PartnerIDs {
				if partner := gs.pieceByID(id); partner != nil {
					actions = append(actions, Action{Type: ActionBardSwap, PieceID: id, To: partner.Pos, TargetID: gs.Swap.BardID})
				}
			}
		}
	}
	moves := make([]Move, len(actions))
	for i, a := range actions {
		moves[i] = a
	}
	return moves
}

// Play resolves an action against a copy of the state. Illegal submissions
// are silently declined: the receiver itself is returned unchanged.
func (gs *GameState) Play(m Move) State {
	a, ok := m.(Action)
	if !ok {
		return gs
	}
	next := gs.Copy()
	if !next.apply(a) {
		return gs
	}
	return next
}

func (gs *GameState) apply(a Action) bool {
	if gs.WinnerSide != SideNone {
		return false
	}
	switch gs.Phase {
	case PhaseIdle, PhaseSelected:
		return gs.applyMain(a)
	case PhaseAwaitingGuardDecision:
		return gs.applyGuardDecision(a)
	case PhaseAwaitingWizardAttackChoice:
		return gs.applyAttackChoice(a)
	case PhaseAwaitingBardSwapTarget:
		return gs.applyBardSwap(a)
	default:
		return false
	}
}

func (gs *GameState) applyMain(a Action) bool {
	if a.Type != ActionMove && a.Type != ActionSwap && a.Type != ActionAttack {
		return false
	}
	p := gs.pieceByID(a.PieceID)
	if p == nil || p.Side != gs.Turn {
		return false
	}
	if gs.Phase == PhaseSelected && gs.SelectedID != a.PieceID {
		return false
	}
	matched := false
	for _, c := range gs.candidatesFor(p) {
		if c.Type == a.Type && c.To == a.To && c.TargetID == a.TargetID {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	gs.Phase = PhaseIdle
	gs.SelectedID = ""
	switch a.Type {
	case ActionMove:
		gs.resolveMove(p, a.To)
	case ActionSwap:
		gs.resolveSwap(p, a.TargetID)
	case ActionAttack:
		gs.resolveAttack(p, a.TargetID)
	}
	return true
}

func (gs *GameState) resolveMove(p *Piece, to Coord) {
	from := p.Pos
	p.Pos = to
	switch p.Kind {
	case Dragon:
		gs.clearScorchOf(p.ID)
		for _, c := range dragonTrail(from, to) {
			gs.Scorch = append(gs.Scorch, ScorchMark{Cell: c, DragonID: p.ID})
		}
	case Paladin:
		gs.clearScorchAt(to)
		gs.clearLightAt(to)
	case Assassin:
		stealthDelta(p, from, to)
	}
	gs.addRecord(fmt.Sprintf("%s %s %s-%s", p.Side, p.Kind, Label(from), Label(to)), p)
	if p.Kind == Bard && gs.enterBardSwap(p) {
		gs.revealChecks(p.ID)
		return
	}
	gs.finishTurn(p.ID)
}

func (gs *GameState) resolveSwap(p *Piece, targetID string) {
	q := gs.pieceByID(targetID)
	if q == nil {
		return
	}
	fromP, fromQ := p.Pos, q.Pos
	p.Pos, q.Pos = fromQ, fromP
	if p.Kind == Apprentice {
		p.SwapUsed = true
	}
	if q.Kind == Apprentice {
		q.SwapUsed = true
	}
	for _, moved := range []*Piece{p, q} {
		old := fromQ
		if moved == p {
			old = fromP
		}
		stealthDelta(moved, old, moved.Pos)
		gs.forceReveal(moved)
	}
	gs.addRecord(fmt.Sprintf("%s %s swaps with %s (%s/%s)",
		p.Side, p.Kind, q.Kind, Label(fromP), Label(fromQ)), p, q)
	gs.finishTurn(p.ID, q.ID)
}

func (gs *GameState) resolveAttack(p *Piece, targetID string) {
	target := gs.pieceByID(targetID)
	if target == nil {
		return
	}
	if p.Kind == Wizard {
		// A wizard attack is always a beam attack. An adjacent target may
		// be taken by walking in or shot in place: ask. Walking in is off
		// the table when the wizard may not stop on the cell (scorch).
		if Adjacent(p.Pos, target.Pos) && gs.canStop(target.Pos, p.Kind, p.Side) {
			path, _ := gs.TraceBeam(p)
			gs.Attack = &PendingAttack{AttackerID: p.ID, TargetID: targetID, TargetCell: target.Pos, Path: path}
			gs.Phase = PhaseAwaitingWizardAttackChoice
			return
		}
		gs.stageAttack(p.ID, targetID, ModeStationary)
		return
	}
	gs.stageAttack(p.ID, targetID, ModeStep)
}

// stageAttack interposes the guard check between an accepted attack and its
// capture commit.
func (gs *GameState) stageAttack(attackerID, targetID string, mode AttackMode) {
	target := gs.pieceByID(targetID)
	if target == nil {
		return
	}
	guards := gs.guardians(target.Side, target.Pos, targetID)
	if len(guards) > 0 {
		gs.Pending = &PendingGuard{
			AttackerID:    attackerID,
			TargetID:      targetID,
			TargetCell:    target.Pos,
			DefendingSide: target.Side,
			Mode:          mode,
			GuardianIDs:   guards,
		}
		gs.Phase = PhaseAwaitingGuardDecision
		return
	}
	gs.commitAttack(attackerID, targetID, mode)
}

func (gs *GameState) commitAttack(attackerID, targetID string, mode AttackMode) {
	attacker := gs.pieceByID(attackerID)
	target := gs.pieceByID(targetID)
	if attacker == nil || target == nil {
		return
	}
	from, cell := attacker.Pos, target.Pos
	if target.Kind == Bard {
		// The bard cannot be removed; record the attempt and move on.
		gs.addRecord(fmt.Sprintf("%s %s strikes %s at %s to no effect",
			attacker.Side, attacker.Kind, target.Kind, Label(cell)), attacker)
		gs.finishTurn(attackerID)
		return
	}
	removed, _ := gs.removePiece(targetID)
	gs.Captured = append(gs.Captured, CapturedPiece{Kind: removed.Kind, Side: removed.Side})
	gs.activateBards()
	attacker = gs.pieceByID(attackerID)
	if mode == ModeStep {
		gs.relocateAttacker(attacker, from, cell)
	}
	gs.forceReveal(attacker)
	verb := fmt.Sprintf("%s %s %sx%s %s", attacker.Side, attacker.Kind, Label(from), Label(cell), removed.Kind)
	if mode == ModeStationary {
		verb = fmt.Sprintf("%s wizard beam x%s %s", attacker.Side, Label(cell), removed.Kind)
	}
	gs.addRecord(verb, attacker)
	if attacker.Kind == Bard && gs.enterBardSwap(attacker) {
		gs.revealChecks(attackerID)
		return
	}
	gs.finishTurn(attackerID)
}

// relocateAttacker moves a committed attacker onto the captured cell and
// applies its archetype side effects.
func (gs *GameState) relocateAttacker(attacker *Piece, from, cell Coord) {
	attacker.Pos = cell
	switch attacker.Kind {
	case Dragon:
		gs.clearScorchOf(attacker.ID)
		for _, c := range dragonTrail(from, cell) {
			gs.Scorch = append(gs.Scorch, ScorchMark{Cell: c, DragonID: attacker.ID})
		}
	case Paladin:
		gs.clearScorchAt(cell)
		gs.clearLightAt(cell)
	case Assassin:
		stealthDelta(attacker, from, cell)
	}
}

func (gs *GameState) applyGuardDecision(a Action) bool {
	pg := gs.Pending
	if pg == nil {
		return false
	}
	switch a.Type {
	case ActionDeclineGuard:
		gs.Pending = nil
		gs.Phase = PhaseIdle
		gs.commitAttack(pg.AttackerID, pg.TargetID, pg.Mode)
		return true
	case ActionGuard:
		eligible := false
		for _, id := range pg.GuardianIDs {
			if id == a.PieceID {
				eligible = true
				break
			}
		}
		if !eligible {
			return false
		}
		gs.Pending = nil
		gs.Phase = PhaseIdle
		gs.resolveGuard(pg, a.PieceID)
		return true
	default:
		return false
	}
}

// resolveGuard executes an accepted interception: the guardian swaps into
// the target's cell and is captured there, leaving a guard light; the
// target escapes into the guardian's cell; the attacker relocates as its
// attack kind dictates.
func (gs *GameState) resolveGuard(pg *PendingGuard, guardianID string) {
	guardian := gs.pieceByID(guardianID)
	if guardian == nil {
		return
	}
	guardPos := guardian.Pos
	removed, _ := gs.removePiece(guardianID)
	gs.Captured = append(gs.Captured, CapturedPiece{Kind: removed.Kind, Side: removed.Side})
	gs.activateBards()

	target := gs.pieceByID(pg.TargetID)
	attacker := gs.pieceByID(pg.AttackerID)
	if target == nil || attacker == nil {
		return
	}
	target.Pos = guardPos
	stealthDelta(target, pg.TargetCell, guardPos)
	gs.forceReveal(target)
	if target.Kind == Paladin {
		gs.clearScorchAt(guardPos)
		gs.clearLightAt(guardPos)
	}

	attackerFrom := attacker.Pos
	if pg.Mode == ModeStep {
		gs.relocateAttacker(attacker, attackerFrom, pg.TargetCell)
	}
	gs.forceReveal(attacker)

	gs.Lights = append(gs.Lights, GuardLight{Cell: pg.TargetCell, Side: pg.DefendingSide, Fresh: true})
	gs.addRecord(fmt.Sprintf("%s paladin falls guarding %s at %s",
		pg.DefendingSide, target.Kind, Label(pg.TargetCell)), attacker, target)

	if attacker.Kind == Bard && gs.enterBardSwap(attacker) {
		gs.revealChecks(pg.AttackerID, pg.TargetID)
		return
	}
	gs.finishTurn(pg.AttackerID, pg.TargetID)
}

func (gs *GameState) applyAttackChoice(a Action) bool {
	pa := gs.Attack
	if pa == nil || a.Type != ActionResolveAttack {
		return false
	}
	gs.Attack = nil
	gs.Phase = PhaseIdle
	gs.stageAttack(pa.AttackerID, pa.TargetID, a.Mode)
	return true
}

func (gs *GameState) applyBardSwap(a Action) bool {
	ps := gs.Swap
	if ps == nil || a.Type != ActionBardSwap {
		return false
	}
	eligible := false
	for _, id := range ps.PartnerIDs {
		if id == a.PieceID {
			eligible = true
			break
		}
	}
	if !eligible {
		return false
	}
	bard := gs.pieceByID(ps.BardID)
	partner := gs.pieceByID(a.PieceID)
	if bard == nil || partner == nil {
		return false
	}
	gs.Swap = nil
	gs.Phase = PhaseIdle
	bardPos, partnerPos := bard.Pos, partner.Pos
	bard.Pos, partner.Pos = partnerPos, bardPos
	stealthDelta(partner, partnerPos, bardPos)
	gs.forceReveal(partner)
	if partner.Kind == Paladin {
		gs.clearScorchAt(bardPos)
		gs.clearLightAt(bardPos)
	}
	gs.addRecord(fmt.Sprintf("%s bard swaps with %s (%s/%s)",
		bard.Side, partner.Kind, Label(bardPos), Label(partnerPos)), bard, partner)
	gs.finishTurn(ps.BardID, a.PieceID)
	return true
}

// enterBardSwap suspends the turn for the mandatory swap, unless no
// eligible partner exists, in which case the turn completes without one.
func (gs *GameState) enterBardSwap(bard *Piece) bool {
	partners := gs.bardSwapPartners(bard)
	if len(partners) == 0 {
		return false
	}
	gs.Swap = &PendingSwap{BardID: bard.ID, PartnerIDs: partners}
	gs.Phase = PhaseAwaitingBardSwapTarget
	return true
}

// forceReveal marks a stealthed assassin for deferred reveal after a
// capture, swap, or protection-zone trigger. The mark names the opposing
// side; the assassin stays hidden until that side's next turn completes.
func (gs *GameState) forceReveal(p *Piece) {
	if p != nil && p.Kind == Assassin && p.Stealthed {
		p.StealthExpiresOn = p.Side.Opposite()
	}
}

// revealChecks runs the protection-zone triggers for pieces that just
// relocated: a paladin entering a new zone marks every enemy stealthed
// assassin inside it, and a stealthed assassin ending inside an opposing
// paladin's zone marks itself.
func (gs *GameState) revealChecks(movedIDs ...string) {
	for _, id := range movedIDs {
		p := gs.pieceByID(id)
		if p == nil {
			continue
		}
		switch p.Kind {
		case Paladin:
			for i := range gs.Pieces {
				q := &gs.Pieces[i]
				if q.Kind == Assassin && q.Stealthed && q.Side != p.Side && zoneContains(p.Pos, q.Pos) {
					gs.forceReveal(q)
				}
			}
		case Assassin:
			if !p.Stealthed {
				continue
			}
			for i := range gs.Pieces {
				q := &gs.Pieces[i]
				if q.Kind == Paladin && q.Side != p.Side && q.Side != Neutral && zoneContains(q.Pos, p.Pos) {
					gs.forceReveal(p)
				}
			}
		}
	}
}

func (gs *GameState) activateBards() {
	for i := range gs.Pieces {
		if gs.Pieces[i].Kind == Bard {
			gs.Pieces[i].Activated = true
		}
	}
}

func (gs *GameState) checkWinner() {
	firstAlive := gs.findPiece(Wizard, First) != nil
	secondAlive := gs.findPiece(Wizard, Second) != nil
	switch {
	case firstAlive && !secondAlive:
		gs.WinnerSide = First
	case secondAlive && !firstAlive:
		gs.WinnerSide = Second
	}
}

// finishTurn runs the common tail of a resolved action: reveal checks, win
// check, then the side handoff with its deferred lifecycle work.
func (gs *GameState) finishTurn(movedIDs ...string) {
	gs.revealChecks(movedIDs...)
	gs.checkWinner()
	if gs.WinnerSide != SideNone {
		gs.Phase = PhaseIdle
		return
	}
	completing := gs.Turn
	gs.Turn = completing.Opposite()
	// Deferred stealth reveals resolve once the marked side's turn is done.
	for i := range gs.Pieces {
		p := &gs.Pieces[i]
		if p.StealthExpiresOn == completing {
			p.Stealthed = false
			p.StealthExpiresOn = SideNone
		}
	}
	gs.expireLights(gs.Turn)
	gs.Phase = PhaseIdle
}

func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	write := func(v int64) { binary.Write(h, binary.LittleEndian, v) }
	write(int64(gs.Turn))
	write(int64(gs.Phase))
	write(int64(gs.WinnerSide))
	for i := range gs.Pieces {
		p := &gs.Pieces[i]
		h.Write([]byte(p.ID))
		write(int64(p.Kind))
		write(int64(p.Side))
		write(int64(p.Pos.Row))
		write(int64(p.Pos.Col))
		flags := int64(0)
		if p.Stealthed {
			flags |= 1
		}
		if p.Activated {
			flags |= 2
		}
		if p.SwapUsed {
			flags |= 4
		}
		flags |= int64(p.StealthExpiresOn) << 3
		write(flags)
	}
	for _, m := range gs.Scorch {
		h.Write([]byte(m.DragonID))
		write(int64(m.Cell.Row))
		write(int64(m.Cell.Col))
	}
	for _, l := range gs.Lights {
		write(int64(l.Side))
		write(int64(l.Cell.Row))
		write(int64(l.Cell.Col))
	}
	if gs.Pending != nil {
		h.Write([]byte("g" + gs.Pending.AttackerID + gs.Pending.TargetID))
	}
	if gs.Attack != nil {
		h.Write([]byte("a" + gs.Attack.AttackerID + gs.Attack.TargetID))
	}
	if gs.Swap != nil {
		h.Write([]byte("s" + gs.Swap.BardID))
	}
	return StateHash(h.Sum64())
}

// Encode marshals the snapshot for the relay.
func (gs *GameState) Encode() ([]byte, error) { return json.Marshal(gs) }

// Decode reconstructs a state from a relay snapshot.
func Decode(data []byte) (*GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if gs.Seats == nil {
		gs.Seats = make(map[Side]string)
	}
	if gs.Ready == nil {
		gs.Ready = make(map[Side]bool)
	}
	return &gs, nil
}
