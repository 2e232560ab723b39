package game

import (
	"fmt"
	"strings"
)

// ActionType discriminates the actions a side can submit. Move, Swap and
// Attack are main-turn actions; the rest answer a suspended sub-turn.
type ActionType uint8

const (
	ActionMove ActionType = iota
	ActionSwap
	ActionAttack
	ActionGuard
	ActionDeclineGuard
	ActionBardSwap
	ActionResolveAttack
)

func (t ActionType) String() string {
	switch t {
	case ActionMove:
		return "move"
	case ActionSwap:
		return "swap"
	case ActionAttack:
		return "attack"
	case ActionGuard:
		return "guard"
	case ActionDeclineGuard:
		return "declineGuard"
	case ActionBardSwap:
		return "bardSwap"
	case ActionResolveAttack:
		return "resolveAttack"
	default:
		return fmt.Sprintf("action(%d)", t)
	}
}

func ParseActionType(s string) (ActionType, bool) {
	switch strings.TrimSpace(s) {
	case "move":
		return ActionMove, true
	case "swap":
		return ActionSwap, true
	case "attack":
		return ActionAttack, true
	case "guard":
		return ActionGuard, true
	case "declineGuard":
		return ActionDeclineGuard, true
	case "bardSwap":
		return ActionBardSwap, true
	case "resolveAttack":
		return ActionResolveAttack, true
	default:
		return ActionMove, false
	}
}

func (t ActionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ActionType) UnmarshalText(text []byte) error {
	parsed, ok := ParseActionType(string(text))
	if !ok {
		return fmt.Errorf("invalid action type %q", string(text))
	}
	*t = parsed
	return nil
}

// AttackMode says how an attacker relocates when its capture commits.
type AttackMode uint8

const (
	// ModeStep moves the attacker onto the target cell.
	ModeStep AttackMode = iota
	// ModeStationary leaves the attacker in place (wizard beam shot).
	ModeStationary
)

func (m AttackMode) String() string {
	if m == ModeStationary {
		return "stationary"
	}
	return "step"
}

func ParseAttackMode(s string) (AttackMode, bool) {
	switch strings.TrimSpace(s) {
	case "", "step":
		return ModeStep, true
	case "stationary":
		return ModeStationary, true
	default:
		return ModeStep, false
	}
}

func (m AttackMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *AttackMode) UnmarshalText(text []byte) error {
	parsed, ok := ParseAttackMode(string(text))
	if !ok {
		return fmt.Errorf("invalid attack mode %q", string(text))
	}
	*m = parsed
	return nil
}

// Action is a candidate action or sub-turn decision. PieceID names the
// acting piece (the guardian for ActionGuard, the swap partner for
// ActionBardSwap); TargetID names the piece captured or swapped with.
type Action struct {
	Type     ActionType `json:"type"`
	PieceID  string     `json:"pieceId,omitempty"`
	To       Coord      `json:"to"`
	TargetID string     `json:"targetId,omitempty"`
	Mode     AttackMode `json:"mode,omitempty"`
}

func (a Action) IsDeterministic() bool { return true }

func (a Action) String() string {
	switch a.Type {
	case ActionGuard, ActionDeclineGuard, ActionBardSwap, ActionResolveAttack:
		return fmt.Sprintf("%s %s", a.Type, a.PieceID)
	default:
		return fmt.Sprintf("%s %s", a.Type, Label(a.To))
	}
}
