package wsserver

import (
	"context"
	"errors"
	"io/fs"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/client"
	"github.com/mo-shahab/go-pong/server/config"
	"github.com/mo-shahab/go-pong/server/model"
	"github.com/mo-shahab/go-pong/server/room"
	"github.com/mo-shahab/go-pong/server/scene"
	"github.com/mo-shahab/go-pong/server/wire"
)

var ErrQueueFull = errors.New("send queue full")

type WebSocketHandler struct {
	Upgrader    websocket.Upgrader
	RoomManager *room.RoomManager
	Config      config.Config
	Assets      fs.FS
	Log         *zap.Logger

	// ctx bounds every room; cancelling it stops all engines.
	ctx   context.Context
	codec wire.Codec
}

// presenter sends what the engine renders to one client.
type presenter struct {
	client *client.Client
	codec  wire.Codec
	log    *zap.Logger
}

func (p *presenter) send(msg []byte, err error) error {
	if err != nil {
		return err
	}
	if !p.client.Enqueue(msg) {
		return ErrQueueFull
	}
	return nil
}

func (p *presenter) Render(f scene.Frame) error {
	return p.send(p.codec.Marshal(wire.Frame(f)))
}

func (p *presenter) UploadMesh(name string, m *model.Mesh) error {
	return p.send(p.codec.Marshal(wire.Model(name, m)))
}

func (p *presenter) ReportError(err error) {
	if sendErr := p.send(p.codec.Marshal(wire.Error(err))); sendErr != nil {
		p.log.Warn("could not report error", zap.Error(err), zap.NamedError("send", sendErr))
	}
}
