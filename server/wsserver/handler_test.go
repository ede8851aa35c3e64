package wsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mo-shahab/go-pong/server/config"
	"github.com/mo-shahab/go-pong/server/wire"
)

type message struct {
	Type  string
	State string
	Name  string
	Error string
}

func newServer(t *testing.T, assets fstest.MapFS) (*WebSocketHandler, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Game.FrameRate = 120

	wsh, err := NewWebSocketHandler(context.Background(), cfg, assets, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(wsh)
	t.Cleanup(func() {
		wsh.Close()
		srv.Close()
	})
	return wsh, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

// await reads JSON messages until one satisfies match.
func await(t *testing.T, conn *websocket.Conn, match func(message) bool) message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		mt, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.TextMessage, mt)

		var m message
		require.NoError(t, json.Unmarshal(data, &m))
		if match(m) {
			return m
		}
	}
}

func assets() fstest.MapFS {
	return fstest.MapFS{"models/name.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")}}
}

func TestJSONSessionReachesGameplay(t *testing.T) {
	wsh, srv := newServer(t, assets())
	conn := dial(t, srv, "/?codec=json")

	m := await(t, conn, func(m message) bool { return m.Type == wire.TypeModel })
	assert.Equal(t, "name", m.Name)
	await(t, conn, func(m message) bool { return m.Type == wire.TypeFrame && m.State == "menu_animating" })
	assert.Equal(t, 1, wsh.RoomManager.Len())

	send(t, conn, `{"type":"play"}`)
	m = await(t, conn, func(m message) bool { return m.Type == wire.TypeError })
	assert.Contains(t, m.Error, "no game mode selected")

	send(t, conn, `{"type":"select","mode":"auto","difficulty":0.45}`)
	send(t, conn, `{"type":"play"}`)
	await(t, conn, func(m message) bool { return m.Type == wire.TypeFrame && m.State == "gameplay_running" })

	send(t, conn, `{"type":"teleport"}`)
	m = await(t, conn, func(m message) bool { return m.Type == wire.TypeError })
	assert.Contains(t, m.Error, "unknown message type")
}

func TestMissingModelIsReported(t *testing.T) {
	_, srv := newServer(t, fstest.MapFS{})
	conn := dial(t, srv, "/?codec=json")

	m := await(t, conn, func(m message) bool { return m.Type == wire.TypeError })
	assert.Contains(t, m.Error, "model not found")
}

func TestBinaryCodecIsDefault(t *testing.T) {
	_, srv := newServer(t, assets())
	conn := dial(t, srv, "")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, mt)

	msg := &structpb.Struct{}
	require.NoError(t, proto.Unmarshal(data, msg))
	assert.Equal(t, wire.TypeModel, msg.GetFields()["type"].GetStringValue())
}

func TestUnknownCodecIsRejected(t *testing.T) {
	_, srv := newServer(t, assets())

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDisconnectRemovesRoom(t *testing.T) {
	wsh, srv := newServer(t, assets())
	conn := dial(t, srv, "/?codec=json")
	await(t, conn, func(m message) bool { return m.Type == wire.TypeModel })
	require.Equal(t, 1, wsh.RoomManager.Len())

	conn.Close()

	assert.Eventually(t, func() bool { return wsh.RoomManager.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEachPageGetsItsOwnRoom(t *testing.T) {
	wsh, srv := newServer(t, assets())
	a := dial(t, srv, "/?codec=json")
	b := dial(t, srv, "/?codec=json")
	await(t, a, func(m message) bool { return m.Type == wire.TypeModel })
	await(t, b, func(m message) bool { return m.Type == wire.TypeModel })

	assert.Equal(t, 2, wsh.RoomManager.Len())

	send(t, a, `{"type":"select","mode":"players"}`)
	send(t, a, `{"type":"play"}`)
	await(t, a, func(m message) bool { return m.State == "gameplay_running" })
	await(t, b, func(m message) bool { return m.State == "menu_animating" })
}
