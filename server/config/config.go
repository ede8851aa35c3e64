// Package config loads the server configuration from YAML on top of
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server Server `yaml:"server"`
	Game   Game   `yaml:"game"`
	Log    Log    `yaml:"log"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	Codec           string        `yaml:"codec"`
	SendQueue       int           `yaml:"send_queue"`
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	StaticDir       string        `yaml:"static_dir"`
}

type Game struct {
	FrameRate      int     `yaml:"frame_rate"`
	PlatformSpeed  float64 `yaml:"platform_speed"`
	BallSpeed      float64 `yaml:"ball_speed"`
	ServeAngle     float64 `yaml:"serve_angle"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle"`
	ModelPath      string  `yaml:"model_path"`
	FollowX        float64 `yaml:"follow_x"`
	FollowY        float64 `yaml:"follow_y"`
	FollowEase     float64 `yaml:"follow_ease"`
	InboxSize      int     `yaml:"inbox_size"`
	WindowWidth    int     `yaml:"window_width"`
	WindowHeight   int     `yaml:"window_height"`
}

// FrameInterval is the time between two ticks.
func (g Game) FrameInterval() time.Duration {
	return time.Second / time.Duration(g.FrameRate)
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Codecs accepted for the server's default wire format.
var Codecs = []string{"binary", "json"}

// Default returns the configuration used when no file is given. Angles are
// in degrees.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			Codec:           "binary",
			SendQueue:       100,
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Game: Game{
			FrameRate:      60,
			PlatformSpeed:  1.2,
			BallSpeed:      1.6,
			ServeAngle:     30,
			MaxBounceAngle: 60,
			ModelPath:      "models/name.obj",
			FollowX:        0.5,
			FollowY:        0.5,
			FollowEase:     0.1,
			InboxSize:      256,
			WindowWidth:    1280,
			WindowHeight:   720,
		},
		Log: Log{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Server.Addr != "", "server.addr is empty")
	check(contains(Codecs, c.Server.Codec), "server.codec %q is not one of %v", c.Server.Codec, Codecs)
	check(c.Server.SendQueue > 0, "server.send_queue must be positive")
	check(c.Game.FrameRate > 0 && c.Game.FrameRate <= 240, "game.frame_rate must be in 1..240")
	check(c.Game.PlatformSpeed > 0, "game.platform_speed must be positive")
	check(c.Game.BallSpeed > 0, "game.ball_speed must be positive")
	check(c.Game.ServeAngle > -90 && c.Game.ServeAngle < 90, "game.serve_angle must be within (-90, 90)")
	check(c.Game.MaxBounceAngle > 0 && c.Game.MaxBounceAngle < 90, "game.max_bounce_angle must be within (0, 90)")
	check(c.Game.ModelPath != "", "game.model_path is empty")
	check(c.Game.InboxSize > 0, "game.inbox_size must be positive")
	check(c.Game.WindowWidth > 0 && c.Game.WindowHeight > 0, "game window size must be positive")
	check(contains([]string{"debug", "info", "warn", "error"}, c.Log.Level), "log.level %q is unknown", c.Log.Level)
	check(contains([]string{"json", "console"}, c.Log.Encoding), "log.encoding %q is unknown", c.Log.Encoding)

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
