// Package enemy drives the computer-controlled paddle. It chases the ball's
// current lateral position and never predicts where the ball will go.
package enemy

import (
	"errors"
	"math"

	"github.com/mo-shahab/go-pong/server/ball"
	"github.com/mo-shahab/go-pong/server/paddle"
	"github.com/mo-shahab/go-pong/server/session"
)

var ErrSpeedLocked = errors.New("difficulty already set for this session")

type Controller struct {
	paddle    *paddle.Paddle
	ball      *ball.Ball
	mode      session.Mode
	baseSpeed float64
	factor    float64
	locked    bool
}

// New returns a controller for p. In Player mode it never moves the paddle.
func New(p *paddle.Paddle, b *ball.Ball, mode session.Mode, baseSpeed float64) *Controller {
	return &Controller{
		paddle:    p,
		ball:      b,
		mode:      mode,
		baseSpeed: baseSpeed,
		factor:    float64(session.Default),
	}
}

// Speed fixes the difficulty factor. It can be called once per session.
func (c *Controller) Speed(hardLevel session.Difficulty) error {
	if c.locked {
		return ErrSpeedLocked
	}
	if err := hardLevel.Validate(); err != nil {
		return err
	}
	c.factor = float64(hardLevel)
	c.locked = true
	return nil
}

func (c *Controller) Factor() float64 { return c.factor }

// Step is the largest displacement the paddle makes in one tick.
func (c *Controller) Step() float64 { return c.baseSpeed * c.factor }

// UpdatePosition moves the paddle toward the ball and returns the applied
// displacement.
func (c *Controller) UpdatePosition() float64 {
	if c.mode != session.Auto {
		return 0
	}
	step := c.Step()
	delta := c.ball.Position.Z - c.paddle.Z()
	delta = math.Max(-step, math.Min(step, delta))
	return c.paddle.Move(delta)
}
