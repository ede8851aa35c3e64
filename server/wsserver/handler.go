// wsserver/handler.go

package wsserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/client"
	"github.com/mo-shahab/go-pong/server/config"
	"github.com/mo-shahab/go-pong/server/game"
	"github.com/mo-shahab/go-pong/server/room"
	"github.com/mo-shahab/go-pong/server/wire"
)

// NewWebSocketHandler creates a handler whose rooms live until ctx is done.
func NewWebSocketHandler(ctx context.Context, cfg config.Config, assets fs.FS, log *zap.Logger) (*WebSocketHandler, error) {
	codec, err := wire.Lookup(cfg.Server.Codec)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WebSocketHandler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		RoomManager: room.NewRoomManager(log),
		Config:      cfg,
		Assets:      assets,
		Log:         log,
		ctx:         ctx,
		codec:       codec,
	}, nil
}

// Close hangs up on every client and stops every room. Hijacked
// connections are not closed by http.Server.Shutdown.
func (wsh *WebSocketHandler) Close() {
	wsh.RoomManager.Mu.Lock()
	for _, rm := range wsh.RoomManager.Rooms {
		rm.Client.Conn.Close()
	}
	wsh.RoomManager.Mu.Unlock()

	wsh.RoomManager.CloseAll()
}

// codecFor honours ?codec= on the upgrade request.
func (wsh *WebSocketHandler) codecFor(r *http.Request) (wire.Codec, error) {
	if name := r.URL.Query().Get("codec"); name != "" {
		return wire.Lookup(name)
	}
	return wsh.codec, nil
}

// ServeHTTP upgrades the connection and gives it a room of its own.
func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	codec, err := wsh.codecFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsh.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := client.New(conn, uuid.NewString(), wsh.Config.Server.SendQueue, codec.Text(), wsh.Config.Server.WriteTimeout)
	log := wsh.Log.With(zap.String("client", c.ID))
	out := &presenter{client: c, codec: codec, log: log}

	rm := wsh.RoomManager.CreateRoom(wsh.ctx, c, func(roomId string) *game.Engine {
		return game.NewEngine(game.Options{
			ID:       roomId,
			Config:   wsh.Config.Game,
			Assets:   wsh.Assets,
			Renderer: out,
			Logger:   wsh.Log,
		})
	})
	log = log.With(zap.String("room", rm.ID))
	log.Info("client connected", zap.String("codec", codec.Name()), zap.String("remote", conn.RemoteAddr().String()))

	go func() {
		if err := c.WritePump(); err != nil && !errors.Is(err, client.ErrClosed) {
			log.Debug("write failed", zap.Error(err))
			conn.Close()
		}
	}()

	wsh.readLoop(rm, out, log)
	wsh.disconnect(rm, log)
}

func (wsh *WebSocketHandler) readLoop(rm *room.Room, out *presenter, log *zap.Logger) {
	for {
		_, p, err := rm.Client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", zap.Error(err))
			}
			return
		}

		events, err := wire.Decode(out.codec, p)
		if err != nil {
			log.Debug("bad message", zap.Error(err))
			out.ReportError(err)
			continue
		}
		for _, ev := range events {
			rm.Engine.Post(ev)
		}
	}
}

// disconnect stops the page's engine and releases the connection.
func (wsh *WebSocketHandler) disconnect(rm *room.Room, log *zap.Logger) {
	wsh.RoomManager.RemoveRoom(rm.ID)
	rm.Client.Close()
	rm.Client.Conn.Close()
	log.Info("client disconnected")
}
