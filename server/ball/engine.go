package ball

import (
	"math"

	"github.com/mo-shahab/go-pong/server/arena"
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/paddle"
	"github.com/mo-shahab/go-pong/server/session"
)

// State tells whether Simulate moves the ball.
type State int

const (
	// Idle waits at the serve spot for Start.
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// DefaultMaxBounceAngle is the steepest deflection off a paddle edge.
const DefaultMaxBounceAngle = math.Pi / 3

// Miss is reported when the ball gets past a paddle.
type Miss struct {
	Side session.Side
	At   geom.Vec3
}

// Misses counts how often each side let the ball through.
type Misses struct {
	Left  int
	Right int
}

func (m Misses) Of(side session.Side) int {
	if side == session.Left {
		return m.Left
	}
	return m.Right
}

// Outcome describes what happened during one Simulate call.
type Outcome struct {
	Border    bool
	Paddle    bool
	PaddleHit session.Side
	Miss      *Miss
}

// Physics owns the ball's motion. It is not safe for concurrent use; the
// game loop is its only caller.
type Physics struct {
	ball      *Ball
	paddles   []*paddle.Paddle
	field     arena.Field
	serve     geom.Vec3
	maxBounce float64
	state     State
	misses    Misses
}

// NewPhysics wires a ball to the field and the paddles it can bounce off.
func NewPhysics(b *Ball, field arena.Field, serve geom.Vec3, maxBounce float64, paddles ...*paddle.Paddle) *Physics {
	if maxBounce <= 0 {
		maxBounce = DefaultMaxBounceAngle
	}
	return &Physics{
		ball:      b,
		paddles:   paddles,
		field:     field,
		serve:     serve,
		maxBounce: maxBounce,
	}
}

func (p *Physics) State() State { return p.state }

func (p *Physics) Misses() Misses { return p.misses }

func (p *Physics) Ball() *Ball { return p.ball }

// Start sets the ball in motion. An idle ball is served; a paused ball
// resumes with the velocity it had. Returns false if already running.
func (p *Physics) Start() bool {
	switch p.state {
	case Running:
		return false
	case Idle:
		p.ball.Velocity = p.serve
	}
	p.state = Running
	return true
}

// Pause freezes the ball in place. Returns false unless it was running.
func (p *Physics) Pause() bool {
	if p.state != Running {
		return false
	}
	p.state = Paused
	return true
}

// Toggle flips between running and paused. An idle ball stays idle.
func (p *Physics) Toggle() bool {
	switch p.state {
	case Running:
		p.state = Paused
	case Paused:
		p.state = Running
	default:
		return false
	}
	return true
}

// Simulate advances the ball by one tick.
func (p *Physics) Simulate() Outcome {
	var out Outcome
	if p.state != Running {
		return out
	}

	b := p.ball
	prev := b.Position
	b.Position = prev.Add(b.Velocity)

	for _, pad := range p.paddles {
		if p.bounceOffPaddle(prev, pad) || p.bounceOffCap(prev, pad) {
			out.Paddle = true
			out.PaddleHit = pad.Side
			break
		}
	}

	out.Border = p.bounceOffBorders()

	if !out.Paddle {
		if m, ok := p.checkMiss(); ok {
			out.Miss = &m
		}
	}
	return out
}

func (p *Physics) bounceOffBorders() bool {
	b := p.ball
	minZ := p.field.InnerMinZ() + b.Radius
	maxZ := p.field.InnerMaxZ() - b.Radius

	switch {
	case b.Position.Z <= minZ:
		b.Position.Z = minZ
		if b.Velocity.Z < 0 {
			b.Velocity.Z = -b.Velocity.Z
			return true
		}
	case b.Position.Z >= maxZ:
		b.Position.Z = maxZ
		if b.Velocity.Z > 0 {
			b.Velocity.Z = -b.Velocity.Z
			return true
		}
	}
	return false
}

// bounceOffPaddle sweeps the ball from prev to its current position against
// the plane where its surface meets the paddle face.
func (p *Physics) bounceOffPaddle(prev geom.Vec3, pad *paddle.Paddle) bool {
	b := p.ball
	dir := 1.0
	if pad.Position.X < 0 {
		dir = -1
	}
	if b.Velocity.X*dir <= 0 {
		return false
	}

	contact := pad.Face() - dir*b.Radius
	crossed := (prev.X-contact)*dir <= 0 && (b.Position.X-contact)*dir >= 0
	inside := (b.Position.X-contact)*dir >= 0 && (b.Position.X-pad.Position.X)*dir <= 0

	var z float64
	switch {
	case crossed:
		t := (contact - prev.X) / b.Velocity.X
		z = prev.Z + b.Velocity.Z*t
	case inside:
		z = b.Position.Z
	default:
		return false
	}

	halfDepth := pad.Size.Z / 2
	if math.Abs(z-pad.Z()) > halfDepth+b.Radius {
		return false
	}

	speed := math.Hypot(b.Velocity.X, b.Velocity.Z)
	offset := geom.Clamp((z-pad.Z())/halfDepth, -1, 1)
	angle := offset * p.maxBounce

	b.Velocity.X = -dir * speed * math.Cos(angle)
	b.Velocity.Z = speed * math.Sin(angle)
	b.Position.X = contact
	b.Position.Z = z
	return true
}

// bounceOffCap catches a ball that slipped past the face and moves into the
// paddle through its top or bottom end. Only the Z component is reflected.
func (p *Physics) bounceOffCap(prev geom.Vec3, pad *paddle.Paddle) bool {
	b := p.ball
	if b.Velocity.Z == 0 {
		return false
	}

	reach := pad.Size.Z/2 + b.Radius
	end := pad.Z() + reach
	if b.Velocity.Z > 0 {
		end = pad.Z() - reach
	}
	if (prev.Z-end)*b.Velocity.Z > 0 || (b.Position.Z-end)*b.Velocity.Z < 0 {
		return false
	}

	t := (end - prev.Z) / b.Velocity.Z
	x := prev.X + b.Velocity.X*t
	if math.Abs(x-pad.Position.X) > pad.Size.X/2+b.Radius {
		return false
	}

	b.Velocity.Z = -b.Velocity.Z
	b.Position.Z = end
	return true
}

func (p *Physics) checkMiss() (Miss, bool) {
	b := p.ball
	for _, pad := range p.paddles {
		beyond := b.Position.X > pad.Position.X
		if pad.Position.X < 0 {
			beyond = b.Position.X < pad.Position.X
		}
		if !beyond {
			continue
		}

		m := Miss{Side: pad.Side, At: b.Position}
		if pad.Side == session.Left {
			p.misses.Left++
		} else {
			p.misses.Right++
		}
		p.reset()
		return m, true
	}
	return Miss{}, false
}

// reset puts the ball back on the serve spot, waiting for Start.
func (p *Physics) reset() {
	p.ball.Position = p.field.BallStart
	p.ball.Velocity = geom.Vec3{}
	p.state = Idle
}
