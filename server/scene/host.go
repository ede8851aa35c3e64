// Package scene is the render host: camera, light, the menu/gameplay state
// machine and the frame handed to a Renderer once per tick.
package scene

import (
	"math"

	"github.com/mo-shahab/go-pong/server/arena"
	"github.com/mo-shahab/go-pong/server/ball"
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/menu"
	"github.com/mo-shahab/go-pong/server/model"
)

// LogoName is the mesh the menu animates.
const LogoName = "name"

// LogoPosition is where the logo sits in front of the menu camera.
var LogoPosition = geom.Vec3{X: 0.7}

const (
	colorShine = 0xffffff
	colorFloor = 0x202020
	colorClear = 0x000000
)

type Kind string

const (
	KindBox    Kind = "box"
	KindPlane  Kind = "plane"
	KindSphere Kind = "sphere"
	KindMesh   Kind = "mesh"
)

// Node is one drawable object. Size is the box extent, or the plane's
// width and depth; spheres use Radius.
type Node struct {
	Name          string
	Kind          Kind
	Position      geom.Vec3
	Rotation      geom.Vec3
	Size          geom.Vec3
	Radius        float64
	Color         uint32
	CastShadow    bool
	ReceiveShadow bool
}

// World is the dynamic state the host draws from.
type World struct {
	LogoRotation geom.Vec3
	Player       geom.Vec3
	Enemy        geom.Vec3
	Ball         geom.Vec3
	BallState    ball.State
	Misses       ball.Misses
}

type Frame struct {
	Tick       uint64
	State      State
	Camera     Camera
	Light      Light
	Viewport   menu.Resolution
	Shadows    bool
	Background uint32
	Nodes      []Node
	BallState  ball.State
	Misses     ball.Misses
}

// Node looks a node up by name.
func (f Frame) Node(name string) (Node, bool) {
	for _, n := range f.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Renderer presents frames.
type Renderer interface {
	Render(Frame) error
}

// MeshUploader is implemented by renderers that draw meshes themselves and
// need the geometry once before the first frame.
type MeshUploader interface {
	UploadMesh(name string, mesh *model.Mesh) error
}

// ErrorReporter is implemented by renderers that can show errors.
type ErrorReporter interface {
	ReportError(err error)
}

type Host struct {
	field    arena.Field
	camera   Camera
	light    Light
	window   menu.Resolution
	renderer Renderer
}

// NewHost starts with the menu camera for a window of the given size.
func NewHost(field arena.Field, width, height int, r Renderer) *Host {
	return &Host{
		field:    field,
		camera:   MenuCamera(width, height),
		light:    MenuLight(),
		window:   menu.Resolution{Width: width, Height: height},
		renderer: r,
	}
}

func (h *Host) Camera() Camera { return h.camera }

func (h *Host) Light() Light { return h.light }

func (h *Host) Window() menu.Resolution { return h.window }

// Resize follows the browser window.
func (h *Host) Resize(state State, width, height int) {
	h.window = menu.Resolution{Width: width, Height: height}
	h.camera.resize(state, width, height)
}

// EnterGameplay moves the camera and light above the field.
func (h *Host) EnterGameplay() {
	h.camera = GameCamera(h.window.Width, h.window.Height)
	h.light = GameLight()
}

// Compose builds the frame for the current state.
func (h *Host) Compose(tick uint64, state State, settings menu.Settings, w World) Frame {
	f := Frame{
		Tick:       tick,
		State:      state,
		Camera:     h.camera,
		Light:      h.light,
		Viewport:   settings.Size(h.window.Width, h.window.Height),
		Shadows:    settings.Shadows,
		Background: colorClear,
		BallState:  w.BallState,
		Misses:     w.Misses,
	}
	if state.Menu() {
		f.Nodes = []Node{{
			Name:     LogoName,
			Kind:     KindMesh,
			Position: LogoPosition,
			Rotation: w.LogoRotation,
			Color:    colorShine,
		}}
		return f
	}
	f.Nodes = h.fieldNodes(w)
	return f
}

func (h *Host) fieldNodes(w World) []Node {
	fl := h.field
	box := func(name string, b geom.Box) Node {
		return Node{Name: name, Kind: KindBox, Position: b.Center, Size: b.Size(), Color: colorShine}
	}
	paddle := func(name string, pos geom.Vec3) Node {
		return box(name, geom.BoxOf(pos, fl.PaddleSize))
	}
	return []Node{
		{
			Name:          "floor",
			Kind:          KindPlane,
			Position:      fl.Floor.Center,
			Rotation:      geom.Vec3{X: -math.Pi / 2},
			Size:          fl.Floor.Size(),
			Color:         colorFloor,
			CastShadow:    true,
			ReceiveShadow: true,
		},
		box("border_north", fl.Borders[0]),
		box("border_south", fl.Borders[1]),
		box("centre_line", fl.CentreLine),
		paddle("player", w.Player),
		paddle("enemy", w.Enemy),
		{
			Name:       "ball",
			Kind:       KindSphere,
			Position:   w.Ball,
			Radius:     fl.BallRadius,
			Color:      colorShine,
			CastShadow: true,
		},
	}
}

// Present hands a frame to the renderer.
func (h *Host) Present(f Frame) error {
	return h.renderer.Render(f)
}

// UploadMesh forwards a loaded mesh to renderers that want it.
func (h *Host) UploadMesh(name string, m *model.Mesh) error {
	if u, ok := h.renderer.(MeshUploader); ok {
		return u.UploadMesh(name, m)
	}
	return nil
}

// ReportError shows err on renderers that can.
func (h *Host) ReportError(err error) {
	if r, ok := h.renderer.(ErrorReporter); ok {
		r.ReportError(err)
	}
}
