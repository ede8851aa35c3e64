package menu

import (
	"github.com/mo-shahab/go-pong/server/geom"
)

// DefaultEase is the fraction of the remaining rotation covered per tick.
const DefaultEase = 0.1

// MouseFollow turns the logo toward the pointer.
type MouseFollow struct {
	factorX  float64
	factorY  float64
	ease     float64
	target   geom.Vec3
	rotation geom.Vec3
}

// NewMouseFollow scales the pointer's horizontal and vertical offsets by
// factorX and factorY radians.
func NewMouseFollow(factorX, factorY, ease float64) *MouseFollow {
	if ease <= 0 || ease > 1 {
		ease = DefaultEase
	}
	return &MouseFollow{factorX: factorX, factorY: factorY, ease: ease}
}

// Point sets the pointer in normalised device coordinates, x right and
// y up, both in [-1, 1].
func (m *MouseFollow) Point(x, y float64) {
	x = geom.Clamp(x, -1, 1)
	y = geom.Clamp(y, -1, 1)
	m.target = geom.Vec3{X: -y * m.factorY, Y: x * m.factorX}
}

// Update eases the rotation one step toward the target and returns it.
func (m *MouseFollow) Update() geom.Vec3 {
	m.rotation = m.rotation.Add(m.target.Sub(m.rotation).Scale(m.ease))
	return m.rotation
}

func (m *MouseFollow) Rotation() geom.Vec3 { return m.rotation }

func (m *MouseFollow) Target() geom.Vec3 { return m.target }
