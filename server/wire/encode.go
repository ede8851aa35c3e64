package wire

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/model"
	"github.com/mo-shahab/go-pong/server/scene"
)

// Outbound message types.
const (
	TypeFrame = "frame"
	TypeModel = "model"
	TypeError = "error"
)

type object map[string]*structpb.Value

func (o object) value() *structpb.Value {
	return structpb.NewStructValue(o.msg())
}

func (o object) msg() *structpb.Struct {
	return &structpb.Struct{Fields: o}
}

func num[T ~int | ~uint32 | ~uint64 | ~float64](v T) *structpb.Value {
	return structpb.NewNumberValue(float64(v))
}

func vec(v geom.Vec3) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
		num(v.X), num(v.Y), num(v.Z),
	}})
}

// Frame encodes a rendered frame. Vectors are [x, y, z] lists.
func Frame(f scene.Frame) *structpb.Struct {
	nodes := make([]*structpb.Value, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes = append(nodes, object{
			"name":          structpb.NewStringValue(n.Name),
			"kind":          structpb.NewStringValue(string(n.Kind)),
			"position":      vec(n.Position),
			"rotation":      vec(n.Rotation),
			"size":          vec(n.Size),
			"radius":        num(n.Radius),
			"color":         num(n.Color),
			"castShadow":    structpb.NewBoolValue(n.CastShadow),
			"receiveShadow": structpb.NewBoolValue(n.ReceiveShadow),
		}.value())
	}

	c, l := f.Camera, f.Light
	return object{
		"type":  structpb.NewStringValue(TypeFrame),
		"tick":  num(f.Tick),
		"state": structpb.NewStringValue(f.State.String()),
		"camera": object{
			"fov":      num(c.FOV),
			"aspect":   num(c.Aspect),
			"near":     num(c.Near),
			"far":      num(c.Far),
			"position": vec(c.Position),
			"rotation": vec(c.Rotation),
		}.value(),
		"light": object{
			"color":         num(l.Color),
			"intensity":     num(l.Intensity),
			"distance":      num(l.Distance),
			"position":      vec(l.Position),
			"castShadow":    structpb.NewBoolValue(l.CastShadow),
			"shadowMapSize": num(l.ShadowMapSize),
			"shadowNear":    num(l.ShadowNear),
			"shadowFar":     num(l.ShadowFar),
		}.value(),
		"viewport": object{
			"width":  num(f.Viewport.Width),
			"height": num(f.Viewport.Height),
		}.value(),
		"shadows":    structpb.NewBoolValue(f.Shadows),
		"background": num(f.Background),
		"nodes":      structpb.NewListValue(&structpb.ListValue{Values: nodes}),
		"ball":       structpb.NewStringValue(f.BallState.String()),
		"misses": object{
			"left":  num(f.Misses.Left),
			"right": num(f.Misses.Right),
		}.value(),
	}.msg()
}

// Model encodes a mesh as flat vertex and index arrays, the layout a
// BufferGeometry takes directly.
func Model(name string, m *model.Mesh) *structpb.Struct {
	vertices := make([]*structpb.Value, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		vertices = append(vertices, num(v.X), num(v.Y), num(v.Z))
	}
	indices := make([]*structpb.Value, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		indices = append(indices, num(f[0]), num(f[1]), num(f[2]))
	}
	return object{
		"type":     structpb.NewStringValue(TypeModel),
		"name":     structpb.NewStringValue(name),
		"vertices": structpb.NewListValue(&structpb.ListValue{Values: vertices}),
		"indices":  structpb.NewListValue(&structpb.ListValue{Values: indices}),
	}.msg()
}

// Error encodes an error shown to the player.
func Error(err error) *structpb.Struct {
	return object{
		"type":  structpb.NewStringValue(TypeError),
		"error": structpb.NewStringValue(err.Error()),
	}.msg()
}
