package ball

import (
	"math"

	"github.com/mo-shahab/go-pong/server/geom"
)

type Ball struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Radius   float64
}

// New returns a resting ball at pos.
func New(pos geom.Vec3, radius float64) *Ball {
	return &Ball{Position: pos, Radius: radius}
}

// Speed is the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 { return b.Velocity.Len() }

// ServeVelocity aims a serve toward the enemy side (-X), tilted by angle
// radians toward +Z.
func ServeVelocity(speed, angle float64) geom.Vec3 {
	return geom.Vec3{
		X: -speed * math.Cos(angle),
		Z: speed * math.Sin(angle),
	}
}
