package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/rockfall/internal/asset"
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/loop"
)

func main() {
	configPath := flag.String("config", config.GetEnv("ROCKFALL_CONFIG", ""), "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "rockfall: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := cfg.Log.NewLogger(logOut, "game")
	if err != nil {
		return err
	}

	catalog, err := asset.Load(cfg.Assets.Manifest)
	if err != nil {
		logger.Warn("sprites incomplete, using fallback shapes", "err", err, "loaded", catalog.Len())
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := loop.NewGame(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Seed:       cfg.Game.Seed,
		TickPeriod: cfg.Game.TickPeriod,
		Width:      cfg.Game.Width,
		Height:     cfg.Game.Height,
		Catalog:    catalog,
		Logger:     logger,
	})
	return game.Run(ctx)
}
