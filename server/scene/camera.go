package scene

import (
	"math"

	"github.com/mo-shahab/go-pong/server/geom"
)

// Perspective camera parameters shared by both scenes.
const (
	FieldOfView = 45.0
	NearPlane   = 0.1
	FarPlane    = 10000.0
)

type Camera struct {
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
	Position geom.Vec3
	Rotation geom.Vec3
}

// MenuCamera looks at the logo from in front.
func MenuCamera(width, height int) Camera {
	return Camera{
		FOV:      FieldOfView,
		Aspect:   aspect(width, height),
		Near:     NearPlane,
		Far:      FarPlane,
		Position: geom.Vec3{Z: ratio(height, width) * 7},
	}
}

// GameCamera looks straight down at the field.
func GameCamera(width, height int) Camera {
	return Camera{
		FOV:      FieldOfView,
		Aspect:   aspect(width, height),
		Near:     NearPlane,
		Far:      FarPlane,
		Position: geom.Vec3{Y: 150},
		Rotation: geom.Vec3{X: -math.Pi / 2},
	}
}

// resize follows a window resize. The menu camera backs off to (h/w)*15
// and the game camera rises to (w/h)*100.
func (c *Camera) resize(state State, width, height int) {
	c.Aspect = aspect(width, height)
	if state.Gameplay() {
		c.Position.Y = ratio(width, height) * 100
		return
	}
	c.Position.Z = ratio(height, width) * 15
}

func aspect(width, height int) float64 { return ratio(width, height) }

func ratio(a, b int) float64 {
	if b <= 0 {
		return 1
	}
	return float64(a) / float64(b)
}

// Light is the single shadow-casting spot light.
type Light struct {
	Color         uint32
	Intensity     float64
	Distance      float64
	Position      geom.Vec3
	CastShadow    bool
	ShadowMapSize int
	ShadowNear    float64
	ShadowFar     float64
}

func MenuLight() Light {
	return Light{
		Color:         0xffffff,
		Intensity:     1.3,
		Distance:      500,
		Position:      geom.Vec3{X: 1, Y: 1, Z: 7},
		CastShadow:    true,
		ShadowMapSize: 512,
		ShadowNear:    0.5,
		ShadowFar:     500,
	}
}

// GameLight hangs the menu light above the field.
func GameLight() Light {
	l := MenuLight()
	l.Position = geom.Vec3{Y: 100}
	return l
}
