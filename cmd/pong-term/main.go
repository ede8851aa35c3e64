// pong-term plays go-pong in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/mo-shahab/go-pong/server/config"
	"github.com/mo-shahab/go-pong/server/game"
	"github.com/mo-shahab/go-pong/server/logger"
	"github.com/mo-shahab/go-pong/server/static"
	"github.com/mo-shahab/go-pong/server/term"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logPath := flag.String("log", os.DevNull, "file to write logs to")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// the screen owns stderr
	log, err := logger.NewTo(cfg.Log, logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := game.NewEngine(game.Options{
		ID:       "terminal",
		Config:   cfg.Game,
		Assets:   static.Files,
		Renderer: term.NewRenderer(screen),
		Logger:   log,
	})
	err = term.Run(ctx, screen, e)
	log.Info("terminal game ended", zap.Error(err))
	return err
}
