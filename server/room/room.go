// Package room keeps track of the running games. Every browser page gets a
// room of its own with one engine.
package room

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/client"
	"github.com/mo-shahab/go-pong/server/game"
)

// Room is one page's game.
type Room struct {
	ID     string
	Client *client.Client
	Engine *game.Engine

	cancel context.CancelFunc
	done   chan struct{}
}

// Done is closed once the engine has stopped.
func (r *Room) Done() <-chan struct{} { return r.done }

// state of all the rooms
type RoomManager struct {
	Rooms map[string]*Room
	Mu    sync.Mutex

	log *zap.Logger
}

func NewRoomManager(log *zap.Logger) *RoomManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomManager{
		Rooms: make(map[string]*Room),
		log:   log,
	}
}

func generateRoomId() string {
	return uuid.New().String()[:6]
}

// NewEngineFunc builds the engine for a new room.
type NewEngineFunc func(roomId string) *game.Engine

// CreateRoom registers a room for c and starts its engine. The engine stops
// when ctx is done or the room is removed.
func (rm *RoomManager) CreateRoom(ctx context.Context, c *client.Client, newEngine NewEngineFunc) *Room {
	rm.Mu.Lock()
	roomId := generateRoomId()
	for rm.Rooms[roomId] != nil {
		roomId = generateRoomId()
	}
	ctx, cancel := context.WithCancel(ctx)
	room := &Room{
		ID:     roomId,
		Client: c,
		Engine: newEngine(roomId),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	rm.Rooms[roomId] = room
	rm.Mu.Unlock()

	c.RoomId = roomId
	go func() {
		defer close(room.done)
		_ = room.Engine.Run(ctx)
	}()

	rm.log.Info("room created", zap.String("room", roomId), zap.String("client", c.ID))
	return room
}

func (rm *RoomManager) GetRoom(roomId string) (*Room, bool) {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	room, exists := rm.Rooms[roomId]
	return room, exists
}

// RemoveRoom stops the room's engine and waits for it to exit.
func (rm *RoomManager) RemoveRoom(roomId string) {
	rm.Mu.Lock()
	room, exists := rm.Rooms[roomId]
	delete(rm.Rooms, roomId)
	rm.Mu.Unlock()

	if !exists {
		return
	}
	room.cancel()
	<-room.done
	rm.log.Info("room closed", zap.String("room", roomId))
}

// CloseAll removes every room.
func (rm *RoomManager) CloseAll() {
	rm.Mu.Lock()
	ids := make([]string, 0, len(rm.Rooms))
	for id := range rm.Rooms {
		ids = append(ids, id)
	}
	rm.Mu.Unlock()

	for _, id := range ids {
		rm.RemoveRoom(id)
	}
}

func (rm *RoomManager) Len() int {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()
	return len(rm.Rooms)
}
