package paddle

import (
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/session"
)

// Paddle is a box that only moves along Z, inside its travel range.
type Paddle struct {
	Side     session.Side
	Position geom.Vec3
	Size     geom.Vec3
	travel   geom.Range
}

// New places a paddle at the centre of its lane.
func New(side session.Side, x float64, size geom.Vec3, travel geom.Range) *Paddle {
	return &Paddle{
		Side:     side,
		Position: geom.Vec3{X: x, Z: travel.Clamp(0)},
		Size:     size,
		travel:   travel,
	}
}

// Move displaces the paddle by dz, clamped to the travel range, and returns
// the displacement actually applied.
func (p *Paddle) Move(dz float64) float64 {
	before := p.Position.Z
	p.Position.Z = p.travel.Clamp(before + dz)
	return p.Position.Z - before
}

// Z is the paddle's lateral coordinate.
func (p *Paddle) Z() float64 { return p.Position.Z }

func (p *Paddle) Travel() geom.Range { return p.travel }

// Box returns the paddle's bounding volume.
func (p *Paddle) Box() geom.Box {
	return geom.BoxOf(p.Position, p.Size)
}

// Face is the X coordinate of the side facing the centre of the field.
func (p *Paddle) Face() float64 {
	if p.Position.X > 0 {
		return p.Position.X - p.Size.X/2
	}
	return p.Position.X + p.Size.X/2
}
