package geom

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Box is an axis-aligned bounding box described by its centre and half extents.
type Box struct {
	Center Vec3
	Half   Vec3
}

// BoxOf builds a box from a centre and full size, the way meshes are declared.
func BoxOf(center, size Vec3) Box {
	return Box{Center: center, Half: size.Scale(0.5)}
}

func (b Box) Min() Vec3 { return b.Center.Sub(b.Half) }

func (b Box) Max() Vec3 { return b.Center.Add(b.Half) }

func (b Box) Size() Vec3 { return b.Half.Scale(2) }

// Range is a closed interval of legal values along one axis.
type Range struct {
	Min, Max float64
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
