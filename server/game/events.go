package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/input"
	"github.com/mo-shahab/go-pong/server/model"
	"github.com/mo-shahab/go-pong/server/scene"
	"github.com/mo-shahab/go-pong/server/session"
)

// Event is something the page asked for. Events are applied on the engine
// goroutine at the start of the next tick.
type Event interface {
	apply(e *Engine) error
}

// SelectMode is one of the difficulty or two-player buttons.
type SelectMode struct {
	Mode       session.Mode
	Difficulty session.Difficulty
}

func (ev SelectMode) apply(e *Engine) error {
	if e.machine.State().Gameplay() {
		return nil
	}
	return e.menu.Select(ev.Mode, ev.Difficulty)
}

// Play starts the game with the stored selection.
type Play struct{}

func (Play) apply(e *Engine) error {
	state := e.machine.State()
	if state.Gameplay() {
		return nil
	}
	if state != scene.MenuAnimating {
		return fmt.Errorf("%w: menu is %s", ErrNotReady, state)
	}
	cfg, err := e.menu.Play()
	if err != nil {
		return err
	}
	if err := e.machine.Play(); err != nil {
		return err
	}
	return e.startGame(cfg)
}

type KeyDown struct{ Key input.Key }

func (ev KeyDown) apply(e *Engine) error {
	e.keyboard.Press(ev.Key)
	return nil
}

type KeyUp struct{ Key input.Key }

func (ev KeyUp) apply(e *Engine) error {
	e.keyboard.Release(ev.Key)
	return nil
}

// KeyTap presses a key for a number of ticks.
type KeyTap struct {
	Key   input.Key
	Ticks int
}

func (ev KeyTap) apply(e *Engine) error {
	e.keyboard.Tap(ev.Key, ev.Ticks)
	return nil
}

// Pointer is the mouse position in normalised device coordinates.
type Pointer struct{ X, Y float64 }

func (ev Pointer) apply(e *Engine) error {
	e.menu.Follow.Point(ev.X, ev.Y)
	return nil
}

type SetVolume struct{ Volume int }

func (ev SetVolume) apply(e *Engine) error { return e.menu.SetVolume(ev.Volume) }

type SetResolution struct{ ID string }

func (ev SetResolution) apply(e *Engine) error { return e.menu.Settings.SetResolution(ev.ID) }

type SetShadows struct{ On bool }

func (ev SetShadows) apply(e *Engine) error {
	e.menu.Settings.SetShadows(ev.On)
	return nil
}

// Resize reports the browser window size.
type Resize struct{ Width, Height int }

func (ev Resize) apply(e *Engine) error {
	if ev.Width <= 0 || ev.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadWindow, ev.Width, ev.Height)
	}
	e.host.Resize(e.machine.State(), ev.Width, ev.Height)
	return nil
}

type modelLoaded struct {
	mesh *model.Mesh
	err  error
}

func (ev modelLoaded) apply(e *Engine) error {
	if ev.err != nil {
		e.log.Error("menu model failed to load", zap.Error(ev.err))
		return ev.err
	}
	if err := e.machine.ModelLoaded(); err != nil {
		return err
	}
	if err := e.host.UploadMesh(scene.LogoName, ev.mesh); err != nil {
		e.log.Warn("mesh upload failed", zap.Error(err))
	}
	e.log.Debug("menu model loaded",
		zap.Int("vertices", len(ev.mesh.Vertices)),
		zap.Int("faces", len(ev.mesh.Faces)))
	return nil
}
