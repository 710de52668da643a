package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/rockfall/internal/asset"
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/loop"
	"github.com/tomz197/rockfall/internal/session"
)

// serverShutdownTimeout bounds how long closing the SSH listener may take
// once every game has been told to stop.
const serverShutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", config.GetEnv("ROCKFALL_CONFIG", ""), "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rockfall-ssh: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.Log.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rockfall-ssh: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to get working directory", "err", err)
	}
	logger.Info("ssh config", "host", cfg.SSH.Host, "port", cfg.SSH.Port,
		"hostKey", cfg.SSH.HostKey, "workingDir", workingDir)

	catalog, err := asset.Load(cfg.Assets.Manifest)
	if err != nil {
		logger.Warn("sprites incomplete, using fallback shapes", "err", err, "loaded", catalog.Len())
	}

	registry := session.NewRegistry(logger.WithPrefix("sessions"))
	games := &gameHandler{cfg: cfg, catalog: catalog, registry: registry, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", "sessions", registry.Count())
		for _, info := range registry.Sessions() {
			logger.Debug("notifying session", "session", info.ID, "user", info.Username,
				"age", time.Since(info.Started).Round(time.Second))
		}

		// Players see the shutdown notice, then their games end on their own.
		if left := registry.Shutdown(cfg.SSH.ShutdownGrace); left > 0 {
			logger.Warn("closing sessions that did not exit", "sessions", left)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// gameHandler runs one game per SSH session.
type gameHandler struct {
	cfg      *config.Config
	catalog  *asset.Catalog
	registry *session.Registry
	logger   *log.Logger
}

func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		handle := h.registry.Register(sess.User())
		defer h.registry.Unregister(handle.ID)

		logger := h.logger.With("session", handle.ID, "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		game := loop.NewGame(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc:   sizeTracker.getSize,
			Seed:           h.cfg.Game.Seed,
			TickPeriod:     h.cfg.Game.TickPeriod,
			Width:          h.cfg.Game.Width,
			Height:         h.cfg.Game.Height,
			Catalog:        h.catalog,
			Logger:         logger,
			Events:         handle.Events,
			IdleWarn:       h.cfg.Game.IdleWarn,
			IdleDisconnect: h.cfg.Game.IdleDisconnect,
		})
		if err := game.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
