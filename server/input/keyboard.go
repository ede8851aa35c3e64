// Package input turns keyboard events into paddle displacement and the two
// global ball triggers.
package input

import (
	"github.com/mo-shahab/go-pong/server/paddle"
	"github.com/mo-shahab/go-pong/server/session"
)

// Key is a DOM KeyboardEvent.code value.
type Key string

const (
	ArrowUp   Key = "ArrowUp"
	ArrowDown Key = "ArrowDown"
	KeyW      Key = "KeyW"
	KeyS      Key = "KeyS"
	Space     Key = "Space"
	KeyP      Key = "KeyP"
)

type Trigger int

const (
	// Start serves or resumes the ball.
	Start Trigger = iota
	// Pause toggles the ball between running and paused.
	Pause
)

func (t Trigger) String() string {
	if t == Pause {
		return "pause"
	}
	return "start"
}

// Binding moves one paddle. Dir is -1 for up (toward -Z) and +1 for down.
type Binding struct {
	Side session.Side
	Dir  float64
}

var DefaultBindings = map[Key]Binding{
	ArrowUp:   {Side: session.Right, Dir: -1},
	ArrowDown: {Side: session.Right, Dir: 1},
	KeyW:      {Side: session.Left, Dir: -1},
	KeyS:      {Side: session.Left, Dir: 1},
}

var DefaultTriggers = map[Key]Trigger{
	Space: Start,
	KeyP:  Pause,
}

// held marks a key pressed until it is released.
const held = -1

// Keyboard tracks which keys are down. Everything starts disabled; the game
// enables the human paddles and the triggers when play begins.
type Keyboard struct {
	speed    float64
	bindings map[Key]Binding
	triggers map[Key]Trigger
	keys     map[Key]int
	sides    map[session.Side]bool
	armed    bool
	pending  []Trigger
}

// NewKeyboard moves paddles by speed per tick while a key is down.
func NewKeyboard(speed float64) *Keyboard {
	return &Keyboard{
		speed:    speed,
		bindings: DefaultBindings,
		triggers: DefaultTriggers,
		keys:     make(map[Key]int),
		sides:    make(map[session.Side]bool),
	}
}

// Enable hands the given paddles to the keyboard.
func (k *Keyboard) Enable(sides ...session.Side) {
	for _, s := range sides {
		k.sides[s] = true
	}
}

func (k *Keyboard) Enabled(side session.Side) bool { return k.sides[side] }

// Arm starts listening for the start and pause keys. Arming twice does not
// double the triggers.
func (k *Keyboard) Arm() { k.armed = true }

// Press records a key going down. It reports whether the key was up before;
// auto-repeat presses of a held key return false and fire no trigger.
func (k *Keyboard) Press(key Key) bool {
	if _, down := k.keys[key]; down {
		return false
	}
	k.keys[key] = held
	k.fire(key)
	return true
}

func (k *Keyboard) Release(key Key) {
	delete(k.keys, key)
}

// Tap holds key for the given number of ticks. Terminals report presses
// but never releases, so every tap is a fresh press and fires its trigger.
// A key held with Press stays held and fires nothing.
func (k *Keyboard) Tap(key Key, ticks int) {
	if ticks <= 0 {
		ticks = 1
	}
	if remaining, down := k.keys[key]; down && remaining == held {
		return
	}
	k.fire(key)
	k.keys[key] = ticks
}

func (k *Keyboard) fire(key Key) {
	if t, ok := k.triggers[key]; ok && k.armed {
		k.pending = append(k.pending, t)
	}
}

// Down reports whether key is currently pressed.
func (k *Keyboard) Down(key Key) bool {
	_, down := k.keys[key]
	return down
}

// Triggers returns and clears the triggers fired since the last call.
func (k *Keyboard) Triggers() []Trigger {
	out := k.pending
	k.pending = nil
	return out
}

// Displacement is how far the side's paddle moves this tick.
func (k *Keyboard) Displacement(side session.Side) float64 {
	if !k.sides[side] {
		return 0
	}
	var dir float64
	for key := range k.keys {
		if b, ok := k.bindings[key]; ok && b.Side == side {
			dir += b.Dir
		}
	}
	return dir * k.speed
}

// Apply moves p by its displacement; the paddle keeps it in range.
func (k *Keyboard) Apply(p *paddle.Paddle) float64 {
	return p.Move(k.Displacement(p.Side))
}

// Tick ages tapped keys. Call once at the end of every tick.
func (k *Keyboard) Tick() {
	for key, remaining := range k.keys {
		if remaining == held {
			continue
		}
		if remaining <= 1 {
			delete(k.keys, key)
			continue
		}
		k.keys[key] = remaining - 1
	}
}
