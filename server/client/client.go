// Package client is one browser connection and its outgoing queue.
package client

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("client closed")

// Client owns the write side of a connection. Anything may Enqueue; only
// WritePump writes to the socket.
type Client struct {
	Conn      *websocket.Conn
	SendQueue chan []byte
	ID        string
	RoomId    string

	messageType  int
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// New wraps conn. Text clients get text frames, the others binary frames.
func New(conn *websocket.Conn, id string, queue int, text bool, writeTimeout time.Duration) *Client {
	mt := websocket.BinaryMessage
	if text {
		mt = websocket.TextMessage
	}
	return &Client{
		Conn:         conn,
		SendQueue:    make(chan []byte, queue),
		ID:           id,
		messageType:  mt,
		writeTimeout: writeTimeout,
	}
}

// Enqueue queues msg without blocking. It reports false if the queue is
// full or the client is closed; the message is dropped.
func (c *Client) Enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendQueue <- msg:
		return true
	default:
		return false
	}
}

// WritePump writes queued messages until Close or a write error.
func (c *Client) WritePump() error {
	for msg := range c.SendQueue {
		if c.writeTimeout > 0 {
			if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				return err
			}
		}
		if err := c.Conn.WriteMessage(c.messageType, msg); err != nil {
			return err
		}
	}
	return ErrClosed
}

// Close stops the write pump once the queue is drained. It is safe to call
// more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.SendQueue)
	}
}
