package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/go-pong/server/arena"
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/menu"
	"github.com/mo-shahab/go-pong/server/model"
)

type recorder struct {
	frames []Frame
	meshes []string
	errs   []error
}

func (r *recorder) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) UploadMesh(name string, _ *model.Mesh) error {
	r.meshes = append(r.meshes, name)
	return nil
}

func (r *recorder) ReportError(err error) { r.errs = append(r.errs, err) }

type plainRenderer struct{}

func (plainRenderer) Render(Frame) error { return nil }

func TestMachineLifecycle(t *testing.T) {
	var m Machine
	assert.Equal(t, MenuIdle, m.State())

	assert.ErrorIs(t, m.Play(), ErrInvalidTransition, "cannot play before the menu loads")
	require.NoError(t, m.ModelLoaded())
	assert.Equal(t, MenuAnimating, m.State())

	require.NoError(t, m.Play())
	assert.Equal(t, GameplayRunning, m.State())
	assert.ErrorIs(t, m.Play(), ErrInvalidTransition, "play is one-way")

	require.NoError(t, m.Pause())
	assert.Equal(t, GameplayPaused, m.State())
	assert.ErrorIs(t, m.Pause(), ErrInvalidTransition)
	require.NoError(t, m.Resume())
	assert.Equal(t, GameplayRunning, m.State())
	assert.ErrorIs(t, m.ModelLoaded(), ErrInvalidTransition)
}

func TestStatePredicates(t *testing.T) {
	assert.True(t, MenuIdle.Menu())
	assert.True(t, MenuAnimating.Menu())
	assert.False(t, GameplayPaused.Menu())
	assert.True(t, GameplayPaused.Gameplay())
	assert.Equal(t, "gameplay_running", GameplayRunning.String())
}

func TestCameras(t *testing.T) {
	c := MenuCamera(1600, 800)
	assert.Equal(t, 3.5, c.Position.Z)
	assert.Equal(t, 2.0, c.Aspect)
	assert.Equal(t, 45.0, c.FOV)

	c.resize(MenuAnimating, 1000, 500)
	assert.Equal(t, 7.5, c.Position.Z)

	g := GameCamera(1600, 800)
	assert.Equal(t, geom.Vec3{Y: 150}, g.Position)
	assert.Equal(t, -math.Pi/2, g.Rotation.X)

	g.resize(GameplayRunning, 1600, 800)
	assert.Equal(t, 200.0, g.Position.Y)
	assert.Equal(t, 0.0, g.Position.Z)
}

func TestHostSwapsToGameplay(t *testing.T) {
	h := NewHost(arena.Default(), 1200, 600, plainRenderer{})
	assert.Equal(t, geom.Vec3{X: 1, Y: 1, Z: 7}, h.Light().Position)

	h.EnterGameplay()

	assert.Equal(t, geom.Vec3{Y: 150}, h.Camera().Position)
	assert.Equal(t, geom.Vec3{Y: 100}, h.Light().Position)
	assert.Equal(t, 1.3, h.Light().Intensity)
}

func TestComposeMenuDrawsOnlyLogo(t *testing.T) {
	h := NewHost(arena.Default(), 800, 600, plainRenderer{})
	rot := geom.Vec3{X: 0.1, Y: -0.2}

	f := h.Compose(3, MenuAnimating, menu.DefaultSettings(), World{LogoRotation: rot})

	require.Len(t, f.Nodes, 1)
	assert.Equal(t, LogoName, f.Nodes[0].Name)
	assert.Equal(t, rot, f.Nodes[0].Rotation)
	assert.Equal(t, LogoPosition, f.Nodes[0].Position)
	assert.Equal(t, menu.Resolution{Width: 800, Height: 600}, f.Viewport)
	assert.Equal(t, uint64(3), f.Tick)
}

func TestComposeGameplayDrawsField(t *testing.T) {
	h := NewHost(arena.Default(), 800, 600, plainRenderer{})
	settings := menu.DefaultSettings()
	require.NoError(t, settings.SetResolution("9"))
	settings.SetShadows(false)

	w := World{
		Player: geom.Vec3{X: 73, Z: 4},
		Enemy:  geom.Vec3{X: -73, Z: -2},
		Ball:   geom.Vec3{X: 10, Z: 3},
	}
	f := h.Compose(1, GameplayPaused, settings, w)

	assert.Len(t, f.Nodes, 7)
	_, ok := f.Node(LogoName)
	assert.False(t, ok)

	p, ok := f.Node("player")
	require.True(t, ok)
	assert.Equal(t, w.Player, p.Position)
	assert.Equal(t, geom.Vec3{X: 4, Y: 4, Z: 15}, p.Size)

	b, ok := f.Node("ball")
	require.True(t, ok)
	assert.Equal(t, 3.0, b.Radius)
	assert.Equal(t, KindSphere, b.Kind)

	floor, _ := f.Node("floor")
	assert.Equal(t, -4.0, floor.Position.Y)
	assert.Equal(t, menu.Resolution{Width: 800, Height: 600}, f.Viewport)
	assert.False(t, f.Shadows)
}

func TestHostOptionalRendererFeatures(t *testing.T) {
	rec := &recorder{}
	h := NewHost(arena.Default(), 800, 600, rec)

	require.NoError(t, h.UploadMesh(LogoName, &model.Mesh{}))
	h.ReportError(errors.New("boom"))
	require.NoError(t, h.Present(Frame{Tick: 9}))

	assert.Equal(t, []string{LogoName}, rec.meshes)
	assert.Len(t, rec.errs, 1)
	assert.Equal(t, uint64(9), rec.frames[0].Tick)

	plain := NewHost(arena.Default(), 800, 600, plainRenderer{})
	assert.NoError(t, plain.UploadMesh(LogoName, &model.Mesh{}))
	plain.ReportError(errors.New("ignored"))
}
