// Package menu holds everything the player touches before the game starts:
// the animated logo, the settings panel and the mode selection.
package menu

import (
	"errors"

	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/session"
)

var ErrNoSelection = errors.New("no game mode selected")

// Controller owns the menu state of one room.
type Controller struct {
	Follow   *MouseFollow
	Settings Settings

	log       *zap.Logger
	selection *selection
}

type selection struct {
	mode       session.Mode
	difficulty session.Difficulty
}

func NewController(follow *MouseFollow, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		Follow:   follow,
		Settings: DefaultSettings(),
		log:      log,
	}
}

// Select stores the mode chosen with the difficulty buttons. A zero
// difficulty means the menu default.
func (c *Controller) Select(mode session.Mode, difficulty session.Difficulty) error {
	if difficulty == 0 {
		difficulty = session.Default
	}
	if _, err := session.NewConfig(mode, difficulty); err != nil {
		return err
	}
	c.selection = &selection{mode: mode, difficulty: difficulty}
	c.log.Debug("mode selected",
		zap.Stringer("mode", mode),
		zap.Float64("difficulty", float64(difficulty)))
	return nil
}

// Selected reports whether Play can build a session.
func (c *Controller) Selected() bool { return c.selection != nil }

// Play freezes the stored selection into a session configuration.
func (c *Controller) Play() (session.Config, error) {
	if c.selection == nil {
		return session.Config{}, ErrNoSelection
	}
	return session.NewConfig(c.selection.mode, c.selection.difficulty)
}

// SetVolume stores the volume. There is no audio yet; the value is logged.
func (c *Controller) SetVolume(v int) error {
	if err := c.Settings.SetVolume(v); err != nil {
		return err
	}
	c.log.Info("volume changed", zap.Int("volume", v))
	return nil
}
