package wire

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mo-shahab/go-pong/server/arena"
	"github.com/mo-shahab/go-pong/server/ball"
	"github.com/mo-shahab/go-pong/server/game"
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/input"
	"github.com/mo-shahab/go-pong/server/menu"
	"github.com/mo-shahab/go-pong/server/model"
	"github.com/mo-shahab/go-pong/server/scene"
	"github.com/mo-shahab/go-pong/server/session"
)

func TestLookup(t *testing.T) {
	c, err := Lookup("binary")
	require.NoError(t, err)
	assert.False(t, c.Text())

	c, err = Lookup("json")
	require.NoError(t, err)
	assert.True(t, c.Text())
	assert.Equal(t, "json", c.Name())

	_, err = Lookup("xml")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []game.Event
	}{
		{"select hard", `{"type":"select","mode":"auto","difficulty":0.6}`,
			[]game.Event{game.SelectMode{Mode: session.Auto, Difficulty: session.Hard}}},
		{"select players", `{"type":"select","mode":"players"}`,
			[]game.Event{game.SelectMode{Mode: session.Player}}},
		{"play", `{"type":"play"}`, []game.Event{game.Play{}}},
		{"key down", `{"type":"key","code":"ArrowUp","down":true}`,
			[]game.Event{game.KeyDown{Key: input.ArrowUp}}},
		{"key up", `{"type":"key","code":"KeyW","down":false}`,
			[]game.Event{game.KeyUp{Key: input.KeyW}}},
		{"key tap", `{"type":"key","code":"Space","ticks":3}`,
			[]game.Event{game.KeyTap{Key: input.Space, Ticks: 3}}},
		{"unbound key", `{"type":"key","code":"KeyQ","down":true}`, nil},
		{"pointer", `{"type":"pointer","x":-0.5,"y":0.25}`,
			[]game.Event{game.Pointer{X: -0.5, Y: 0.25}}},
		{"settings", `{"type":"settings","volume":30,"resolution":"7","shadows":false}`,
			[]game.Event{game.SetVolume{Volume: 30}, game.SetResolution{ID: "7"}, game.SetShadows{On: false}}},
		{"volume only", `{"type":"settings","volume":0}`,
			[]game.Event{game.SetVolume{Volume: 0}}},
		{"resize", `{"type":"resize","width":1280,"height":720}`,
			[]game.Event{game.Resize{Width: 1280, Height: 720}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(JSON{}, []byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{`not json`, ErrBadMessage},
		{`{"mode":"auto"}`, ErrBadMessage},
		{`{"type":"teleport"}`, ErrUnknownType},
		{`{"type":"select"}`, ErrBadMessage},
		{`{"type":"select","mode":"robot"}`, session.ErrUnknownMode},
		{`{"type":"key"}`, ErrBadMessage},
		{`{"type":"pointer","x":1}`, ErrBadMessage},
		{`{"type":"resize","width":"wide","height":1}`, ErrBadMessage},
	}
	for _, tt := range tests {
		_, err := Decode(JSON{}, []byte(tt.in))
		assert.ErrorIs(t, err, tt.want, tt.in)
	}
}

func TestDecodeBinary(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]any{"type": "key", "code": "KeyP", "down": true})
	require.NoError(t, err)
	data, err := proto.Marshal(msg)
	require.NoError(t, err)

	got, err := Decode(Binary{}, data)
	require.NoError(t, err)
	assert.Equal(t, []game.Event{game.KeyDown{Key: input.KeyP}}, got)

	_, err = Decode(Binary{}, []byte{0xff, 0xff})
	assert.True(t, errors.Is(err, ErrBadMessage))
}

func gameplayFrame() scene.Frame {
	host := scene.NewHost(arena.Default(), 800, 600, nil)
	host.EnterGameplay()
	return host.Compose(42, scene.GameplayPaused, menu.DefaultSettings(), scene.World{
		Player:    geom.Vec3{X: 73, Z: 4},
		Enemy:     geom.Vec3{X: -73},
		Ball:      geom.Vec3{X: 10, Z: -2},
		BallState: ball.Paused,
		Misses:    ball.Misses{Left: 1, Right: 2},
	})
}

func TestFrameJSON(t *testing.T) {
	data, err := JSON{}.Marshal(Frame(gameplayFrame()))
	require.NoError(t, err)

	var got struct {
		Type   string
		Tick   float64
		State  string
		Ball   string
		Camera struct {
			Position []float64
		}
		Viewport struct{ Width, Height int }
		Misses   struct{ Left, Right int }
		Nodes    []struct {
			Name     string
			Kind     string
			Position []float64
			Size     []float64
			Radius   float64
		}
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, TypeFrame, got.Type)
	assert.Equal(t, 42.0, got.Tick)
	assert.Equal(t, "gameplay_paused", got.State)
	assert.Equal(t, "paused", got.Ball)
	assert.Equal(t, []float64{0, 150, 0}, got.Camera.Position)
	assert.Equal(t, 800, got.Viewport.Width)
	assert.Equal(t, 2, got.Misses.Right)
	require.Len(t, got.Nodes, 7)

	byName := map[string]int{}
	for i, n := range got.Nodes {
		byName[n.Name] = i
	}
	player := got.Nodes[byName["player"]]
	assert.Equal(t, []float64{73, 0, 4}, player.Position)
	assert.Equal(t, []float64{4, 4, 15}, player.Size)
	b := got.Nodes[byName["ball"]]
	assert.Equal(t, "sphere", b.Kind)
	assert.Equal(t, 3.0, b.Radius)
}

func TestFrameBinaryRoundTrip(t *testing.T) {
	msg := Frame(gameplayFrame())
	data, err := Binary{}.Marshal(msg)
	require.NoError(t, err)

	back, err := Binary{}.Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, proto.Equal(msg, back))
}

func TestModel(t *testing.T) {
	mesh := &model.Mesh{
		Vertices: []geom.Vec3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		Faces:    [][3]int{{0, 1, 2}, {1, 3, 2}},
	}

	m := Model(scene.LogoName, mesh).AsMap()

	assert.Equal(t, TypeModel, m["type"])
	assert.Equal(t, "name", m["name"])
	assert.Len(t, m["vertices"], 12)
	assert.Equal(t, []any{0.0, 1.0, 2.0, 1.0, 3.0, 2.0}, m["indices"])
}

func TestError(t *testing.T) {
	m := Error(game.ErrNotReady).AsMap()
	assert.Equal(t, TypeError, m["type"])
	assert.Equal(t, "game is not ready", m["error"])
}
