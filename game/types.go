package game

import (
	"fmt"
	"strings"
)

// Side identifies the owner of a piece. Neutral owns exactly one piece, the
// center bard, which no player may move.
type Side uint8

const (
	SideNone Side = iota
	First
	Second
	Neutral
)

func (s Side) Opposite() Side {
	switch s {
	case First:
		return Second
	case Second:
		return First
	default:
		return SideNone
	}
}

func (s Side) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	case Neutral:
		return "neutral"
	default:
		return "none"
	}
}

func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return First, true
	case "second":
		return Second, true
	case "neutral":
		return Neutral, true
	case "", "none":
		return SideNone, true
	default:
		return SideNone, false
	}
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(text []byte) error {
	parsed, ok := ParseSide(string(text))
	if !ok {
		return fmt.Errorf("invalid side %q", string(text))
	}
	*s = parsed
	return nil
}

// ForwardSum is the rotated-coordinate delta sum of a one-step advance
// toward the enemy side. It doubles as the stealth-entry delta for
// assassins of this side.
func (s Side) ForwardSum() int {
	switch s {
	case First:
		return -1
	case Second:
		return 1
	default:
		return 0
	}
}

// Kind is a piece archetype.
type Kind uint8

const (
	Apprentice Kind = iota
	Wizard
	Dragon
	Ranger
	Griffin
	Assassin
	Paladin
	Bard
)

var AllKinds = []Kind{Apprentice, Wizard, Dragon, Ranger, Griffin, Assassin, Paladin, Bard}

func (k Kind) String() string {
	switch k {
	case Apprentice:
		return "apprentice"
	case Wizard:
		return "wizard"
	case Dragon:
		return "dragon"
	case Ranger:
		return "ranger"
	case Griffin:
		return "griffin"
	case Assassin:
		return "assassin"
	case Paladin:
		return "paladin"
	case Bard:
		return "bard"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apprentice":
		return Apprentice, true
	case "wizard":
		return Wizard, true
	case "dragon":
		return Dragon, true
	case "ranger":
		return Ranger, true
	case "griffin":
		return Griffin, true
	case "assassin":
		return Assassin, true
	case "paladin":
		return Paladin, true
	case "bard":
		return Bard, true
	default:
		return Apprentice, false
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("invalid kind %q", string(text))
	}
	*k = parsed
	return nil
}

// Phase is the turn-resolution state machine. Selected is a session-level
// affordance; the pending phases suspend a half-resolved action until the
// deciding side supplies the missing choice.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSelected
	PhaseAwaitingGuardDecision
	PhaseAwaitingWizardAttackChoice
	PhaseAwaitingBardSwapTarget
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelected:
		return "selected"
	case PhaseAwaitingGuardDecision:
		return "awaitingGuardDecision"
	case PhaseAwaitingWizardAttackChoice:
		return "awaitingWizardAttackChoice"
	case PhaseAwaitingBardSwapTarget:
		return "awaitingBardSwapTarget"
	default:
		return fmt.Sprintf("phase(%d)", p)
	}
}

func ParsePhase(s string) (Phase, bool) {
	switch strings.TrimSpace(s) {
	case "", "idle":
		return PhaseIdle, true
	case "selected":
		return PhaseSelected, true
	case "awaitingGuardDecision":
		return PhaseAwaitingGuardDecision, true
	case "awaitingWizardAttackChoice":
		return PhaseAwaitingWizardAttackChoice, true
	case "awaitingBardSwapTarget":
		return PhaseAwaitingBardSwapTarget, true
	default:
		return PhaseIdle, false
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, ok := ParsePhase(string(text))
	if !ok {
		return fmt.Errorf("invalid phase %q", string(text))
	}
	*p = parsed
	return nil
}
