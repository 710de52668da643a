package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	configPath := flag.String("config", config.GetEnv("ROCKFALL_CONFIG", ""), "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rockfall-web: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.Log.NewLogger(os.Stderr, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rockfall-web: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	page := renderPage(cfg.Web.DisplayHost, cfg.SSH.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Web.Host, cfg.Web.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// renderPage fills the connection details into the landing page.
func renderPage(sshHost, sshPort string) string {
	cmd := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		cmd = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}
	return strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SSHCommand}}", cmd,
	).Replace(htmlPage)
}
