// Package session holds the game mode and difficulty chosen in the menu and
// the immutable configuration a gameplay session is started with.
package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrInvalidDifficulty = errors.New("difficulty must be positive")
)

// Mode selects who drives the left paddle.
type Mode int

const (
	// Auto plays the human against the enemy controller.
	Auto Mode = iota
	// Player lets a second human drive the left paddle.
	Player
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "Auto"
	case Player:
		return "Player"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names used by the menu buttons.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return Auto, nil
	case "player", "players":
		return Player, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Difficulty scales the enemy paddle speed.
type Difficulty float64

// Menu presets.
const (
	Low      Difficulty = 0.35
	Middle   Difficulty = 0.45
	Hard     Difficulty = 0.6
	VeryHard Difficulty = 1.0

	// Default is what the menu stores when no level is given (two players).
	Default Difficulty = 1.0
)

// Presets lists the Auto mode levels from easiest to hardest.
var Presets = []Difficulty{Low, Middle, Hard, VeryHard}

func (d Difficulty) Validate() error {
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDifficulty, float64(d))
	}
	return nil
}

// Side identifies a paddle.
type Side int

const (
	// Right is the player's paddle at +X.
	Right Side = iota
	// Left is the enemy (or second player) paddle at -X.
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Config is fixed at the menu to game transition and never mutated.
type Config struct {
	mode       Mode
	difficulty Difficulty
}

// NewConfig validates and freezes a selection.
func NewConfig(mode Mode, difficulty Difficulty) (Config, error) {
	if mode != Auto && mode != Player {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if err := difficulty.Validate(); err != nil {
		return Config{}, err
	}
	return Config{mode: mode, difficulty: difficulty}, nil
}

func (c Config) Mode() Mode { return c.mode }

func (c Config) Difficulty() Difficulty { return c.difficulty }

// HumanSides returns the paddles driven by the keyboard.
func (c Config) HumanSides() []Side {
	if c.mode == Player {
		return []Side{Right, Left}
	}
	return []Side{Right}
}

// Human reports whether side is keyboard driven.
func (c Config) Human(side Side) bool {
	for _, s := range c.HumanSides() {
		if s == side {
			return true
		}
	}
	return false
}
