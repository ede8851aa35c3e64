package scene

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid scene transition")

// State decides what the host draws.
type State int

const (
	MenuIdle State = iota
	MenuAnimating
	GameplayRunning
	GameplayPaused
)

func (s State) String() string {
	switch s {
	case MenuIdle:
		return "menu_idle"
	case MenuAnimating:
		return "menu_animating"
	case GameplayRunning:
		return "gameplay_running"
	case GameplayPaused:
		return "gameplay_paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) Menu() bool { return s == MenuIdle || s == MenuAnimating }

func (s State) Gameplay() bool { return s == GameplayRunning || s == GameplayPaused }

// Machine walks the menu to gameplay lifecycle. Leaving the menu is final.
type Machine struct {
	state State
}

func (m *Machine) State() State { return m.state }

func (m *Machine) transition(from, to State) error {
	if m.state != from {
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, m.state)
	}
	m.state = to
	return nil
}

// ModelLoaded starts the menu animation.
func (m *Machine) ModelLoaded() error { return m.transition(MenuIdle, MenuAnimating) }

// Play leaves the menu for good.
func (m *Machine) Play() error { return m.transition(MenuAnimating, GameplayRunning) }

func (m *Machine) Pause() error { return m.transition(GameplayRunning, GameplayPaused) }

func (m *Machine) Resume() error { return m.transition(GameplayPaused, GameplayRunning) }
