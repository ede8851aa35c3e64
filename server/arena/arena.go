// Package arena describes the static playing field: floor, borders, the
// paddle lanes and the ball's serve spot.
package arena

import "github.com/mo-shahab/go-pong/server/geom"

// Field geometry, in world units.
const (
	FloorLength = 150.0
	FloorWidth  = 80.0
	FloorY      = -4.0

	BorderZ         = 40.0
	BorderThickness = 4.0

	CentreLineY     = -3.0
	CentreLineDepth = 84.0

	PaddleWidth  = 4.0
	PaddleHeight = 4.0
	PaddleDepth  = 15.0
	PlayerX      = 73.0
	EnemyX       = -73.0

	BallRadius = 3.0
	BallStartX = 68.0

	// PlatformSpeed is the paddle displacement per tick at difficulty 1.
	PlatformSpeed = 1.2
)

// Field is the immutable collision layout of one game.
type Field struct {
	Floor      geom.Box
	Borders    [2]geom.Box // north (-Z) and south (+Z)
	CentreLine geom.Box
	PaddleSize geom.Vec3
	PlayerX    float64
	EnemyX     float64
	BallRadius float64
	BallStart  geom.Vec3
	HalfLength float64
}

// Default returns the field used by every session.
func Default() Field {
	return Field{
		Floor: geom.BoxOf(geom.Vec3{Y: FloorY}, geom.Vec3{X: FloorLength, Z: FloorWidth}),
		Borders: [2]geom.Box{
			geom.BoxOf(geom.Vec3{Z: -BorderZ}, geom.Vec3{X: FloorLength, Y: BorderThickness, Z: BorderThickness}),
			geom.BoxOf(geom.Vec3{Z: BorderZ}, geom.Vec3{X: FloorLength, Y: BorderThickness, Z: BorderThickness}),
		},
		CentreLine: geom.BoxOf(geom.Vec3{Y: CentreLineY}, geom.Vec3{X: BorderThickness, Y: BorderThickness, Z: CentreLineDepth}),
		PaddleSize: geom.Vec3{X: PaddleWidth, Y: PaddleHeight, Z: PaddleDepth},
		PlayerX:    PlayerX,
		EnemyX:     EnemyX,
		BallRadius: BallRadius,
		BallStart:  geom.Vec3{X: BallStartX},
		HalfLength: FloorLength / 2,
	}
}

// InnerMinZ is the border face the ball bounces off on the north side.
func (f Field) InnerMinZ() float64 { return f.Borders[0].Max().Z }

// InnerMaxZ is the border face the ball bounces off on the south side.
func (f Field) InnerMaxZ() float64 { return f.Borders[1].Min().Z }

// TravelRange is the interval of legal paddle centre positions along Z.
func (f Field) TravelRange() geom.Range {
	half := f.PaddleSize.Z / 2
	return geom.Range{Min: f.InnerMinZ() + half, Max: f.InnerMaxZ() - half}
}
