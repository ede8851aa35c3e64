// game/engine.go
package game

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/arena"
	"github.com/mo-shahab/go-pong/server/ball"
	"github.com/mo-shahab/go-pong/server/config"
	"github.com/mo-shahab/go-pong/server/enemy"
	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/input"
	"github.com/mo-shahab/go-pong/server/menu"
	"github.com/mo-shahab/go-pong/server/model"
	"github.com/mo-shahab/go-pong/server/paddle"
	"github.com/mo-shahab/go-pong/server/scene"
	"github.com/mo-shahab/go-pong/server/session"
)

var (
	ErrNotReady  = errors.New("game is not ready")
	ErrBadWindow = errors.New("invalid window size")
)

// Options configures one engine.
type Options struct {
	ID       string
	Config   config.Game
	Assets   fs.FS
	Renderer scene.Renderer
	Logger   *zap.Logger
}

// Engine runs one room: the menu, then the game, one tick at a time. All
// game state is owned by the goroutine calling Step; other goroutines talk
// to it through Post and read it through Snapshot.
type Engine struct {
	id     string
	cfg    config.Game
	log    *zap.Logger
	assets fs.FS

	field    arena.Field
	machine  scene.Machine
	host     *scene.Host
	menu     *menu.Controller
	keyboard *input.Keyboard
	player   *paddle.Paddle
	enemy    *paddle.Paddle
	ball     *ball.Ball
	physics  *ball.Physics
	ai       *enemy.Controller
	session  *session.Config

	inbox chan Event
	tick  uint64

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewEngine creates every entity up front; nothing is destroyed before the
// room closes.
func NewEngine(opts Options) *Engine {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("room", opts.ID))

	r := opts.Renderer
	if r == nil {
		r = discard{}
	}

	field := arena.Default()
	travel := field.TravelRange()
	player := paddle.New(session.Right, field.PlayerX, field.PaddleSize, travel)
	opponent := paddle.New(session.Left, field.EnemyX, field.PaddleSize, travel)
	b := ball.New(field.BallStart, field.BallRadius)
	serve := ball.ServeVelocity(cfg.BallSpeed, radians(cfg.ServeAngle))

	e := &Engine{
		id:       opts.ID,
		cfg:      cfg,
		log:      log,
		assets:   opts.Assets,
		field:    field,
		host:     scene.NewHost(field, cfg.WindowWidth, cfg.WindowHeight, r),
		menu:     menu.NewController(menu.NewMouseFollow(cfg.FollowX, cfg.FollowY, cfg.FollowEase), log),
		keyboard: input.NewKeyboard(cfg.PlatformSpeed),
		player:   player,
		enemy:    opponent,
		ball:     b,
		physics:  ball.NewPhysics(b, field, serve, radians(cfg.MaxBounceAngle), player, opponent),
		inbox:    make(chan Event, cfg.InboxSize),
	}
	e.publish()
	return e
}

type discard struct{}

func (discard) Render(scene.Frame) error { return nil }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func (e *Engine) ID() string { return e.id }

// Run loads the menu model and ticks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	go e.loadModel(ctx)

	ticker := time.NewTicker(e.cfg.FrameInterval())
	defer ticker.Stop()

	e.log.Info("game engine started", zap.Duration("tick", e.cfg.FrameInterval()))
	for {
		select {
		case <-ctx.Done():
			e.log.Info("game engine stopped", zap.Uint64("ticks", e.tick))
			return ctx.Err()
		case <-ticker.C:
			e.Step()
		}
	}
}

func (e *Engine) loadModel(ctx context.Context) {
	mesh, err := model.Load(e.assets, e.cfg.ModelPath)
	select {
	case e.inbox <- modelLoaded{mesh: mesh, err: err}:
	case <-ctx.Done():
	}
}

// LoadModel loads the menu model synchronously. Use it instead of Run when
// the caller drives Step itself.
func (e *Engine) LoadModel() error {
	mesh, err := model.Load(e.assets, e.cfg.ModelPath)
	return e.handle(modelLoaded{mesh: mesh, err: err})
}

// Post queues ev for the next tick. It never blocks and reports false when
// the inbox is full.
func (e *Engine) Post(ev Event) bool {
	select {
	case e.inbox <- ev:
		return true
	default:
		e.log.Warn("dropping event, inbox full")
		return false
	}
}

// Step runs one tick: queued events, human input, AI, physics, render.
func (e *Engine) Step() {
	e.tick++
	e.drain()

	switch state := e.machine.State(); {
	case state == scene.MenuIdle:
		// nothing to draw until the logo is loaded
	case state.Menu():
		e.menu.Follow.Update()
		e.render()
	default:
		e.handleTriggers()
		e.keyboard.Apply(e.player)
		e.keyboard.Apply(e.enemy)
		e.ai.UpdatePosition()
		out := e.physics.Simulate()
		if out.Miss != nil {
			e.log.Info("ball missed",
				zap.Stringer("side", out.Miss.Side),
				zap.Int("left_misses", e.physics.Misses().Left),
				zap.Int("right_misses", e.physics.Misses().Right))
		}
		e.render()
	}

	e.keyboard.Tick()
	e.publish()
}

func (e *Engine) drain() {
	for n := len(e.inbox); n > 0; n-- {
		_ = e.handle(<-e.inbox)
	}
}

func (e *Engine) handle(ev Event) error {
	err := ev.apply(e)
	if err != nil {
		e.log.Warn("event rejected", zap.Error(err))
		e.host.ReportError(err)
	}
	return err
}

func (e *Engine) startGame(cfg session.Config) error {
	e.session = &cfg
	e.ai = enemy.New(e.enemy, e.ball, cfg.Mode(), e.cfg.PlatformSpeed)
	if err := e.ai.Speed(cfg.Difficulty()); err != nil {
		return err
	}
	e.keyboard.Enable(cfg.HumanSides()...)
	e.keyboard.Arm()
	e.host.EnterGameplay()

	e.log.Info("game started",
		zap.Stringer("mode", cfg.Mode()),
		zap.Float64("difficulty", float64(cfg.Difficulty())))
	return nil
}

func (e *Engine) handleTriggers() {
	for _, t := range e.keyboard.Triggers() {
		switch t {
		case input.Start:
			e.physics.Start()
		case input.Pause:
			e.physics.Toggle()
		}
		e.syncPause()
	}
}

// syncPause mirrors the ball's paused flag into the scene state.
func (e *Engine) syncPause() {
	paused := e.physics.State() == ball.Paused
	switch e.machine.State() {
	case scene.GameplayRunning:
		if paused {
			_ = e.machine.Pause()
		}
	case scene.GameplayPaused:
		if !paused {
			_ = e.machine.Resume()
		}
	}
}

func (e *Engine) world() scene.World {
	return scene.World{
		LogoRotation: e.menu.Follow.Rotation(),
		Player:       e.player.Position,
		Enemy:        e.enemy.Position,
		Ball:         e.ball.Position,
		BallState:    e.physics.State(),
		Misses:       e.physics.Misses(),
	}
}

func (e *Engine) render() {
	f := e.host.Compose(e.tick, e.machine.State(), e.menu.Settings, e.world())
	if err := e.host.Present(f); err != nil {
		e.log.Debug("render failed", zap.Error(err))
	}
}

// Snapshot is a copy of the engine state taken at the end of a tick.
type Snapshot struct {
	Tick         uint64
	State        scene.State
	Started      bool
	Mode         session.Mode
	Difficulty   session.Difficulty
	AIFactor     float64
	HumanSides   []session.Side
	Ball         ball.Ball
	BallState    ball.State
	Player       geom.Vec3
	Enemy        geom.Vec3
	Misses       ball.Misses
	LogoRotation geom.Vec3
	Settings     menu.Settings
	Camera       scene.Camera
}

func (e *Engine) publish() {
	s := Snapshot{
		Tick:         e.tick,
		State:        e.machine.State(),
		Ball:         *e.ball,
		BallState:    e.physics.State(),
		Player:       e.player.Position,
		Enemy:        e.enemy.Position,
		Misses:       e.physics.Misses(),
		LogoRotation: e.menu.Follow.Rotation(),
		Settings:     e.menu.Settings,
		Camera:       e.host.Camera(),
	}
	if e.session != nil {
		s.Started = true
		s.Mode = e.session.Mode()
		s.Difficulty = e.session.Difficulty()
		s.AIFactor = e.ai.Factor()
		s.HumanSides = e.session.HumanSides()
	}

	e.mu.Lock()
	e.snapshot = s
	e.mu.Unlock()
}

// Snapshot returns the state as of the last completed tick.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}
