package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/rng"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the runtime configuration shared by the commands.
type Config struct {
	Game   GameConfig   `toml:"game"`
	SSH    SSHConfig    `toml:"ssh"`
	Web    WebConfig    `toml:"web"`
	Assets AssetsConfig `toml:"assets"`
	Log    LogConfig    `toml:"log"`
}

type GameConfig struct {
	Seed           int32         `toml:"seed"`
	TickPeriod     time.Duration `toml:"tick_period"`
	Width          int           `toml:"width"`  // Playfield, logical pixels
	Height         int           `toml:"height"` // Playfield, logical pixels
	IdleWarn       time.Duration `toml:"idle_warn"`
	IdleDisconnect time.Duration `toml:"idle_disconnect"`
}

type SSHConfig struct {
	Host          string        `toml:"host"`
	Port          string        `toml:"port"`
	HostKey       string        `toml:"host_key"`
	ShutdownGrace time.Duration `toml:"shutdown_grace"` // How long sessions see the shutdown notice
}

type WebConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"` // SSH host shown on the landing page
}

type AssetsConfig struct {
	Manifest string `toml:"manifest"` // Empty selects the built-in sprites
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
	File   string `toml:"file"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Seed:           rng.DefaultSeed,
			TickPeriod:     40 * time.Millisecond,
			Width:          240,
			Height:         320,
			IdleWarn:       90 * time.Second,
			IdleDisconnect: 120 * time.Second,
		},
		SSH: SSHConfig{
			Host:          "::",
			Port:          "2222",
			HostKey:       "/app/keys/host_key",
			ShutdownGrace: 15 * time.Second,
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path over Defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("ROCKFALL_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: ROCKFALL_SEED=%q: %w", ErrInvalid, v, err)
		}
		c.Game.Seed = int32(seed)
	}
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKey = GetEnv("SSH_HOST_KEY", c.SSH.HostKey)
	c.Web.Host = GetEnv("WEB_HOST", c.Web.Host)
	c.Web.Port = GetEnv("WEB_PORT", c.Web.Port)
	c.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", c.Web.DisplayHost)
	c.Assets.Manifest = GetEnv("ROCKFALL_ASSETS", c.Assets.Manifest)
	c.Log.Level = GetEnv("ROCKFALL_LOG_LEVEL", c.Log.Level)
	c.Log.Format = GetEnv("ROCKFALL_LOG_FORMAT", c.Log.Format)
	c.Log.File = GetEnv("ROCKFALL_LOG_FILE", c.Log.File)
	return nil
}

// Validate reports every field that is out of range.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Game.TickPeriod > 0, "game.tick_period must be positive, got %s", c.Game.TickPeriod)
	check(c.Game.Width >= 48, "game.width must be at least 48, got %d", c.Game.Width)
	check(c.Game.Height >= 96, "game.height must be at least 96, got %d", c.Game.Height)
	check(c.Game.IdleWarn >= 0 && c.Game.IdleDisconnect >= 0, "game idle timeouts must not be negative")
	check(c.Game.IdleDisconnect == 0 || c.Game.IdleWarn < c.Game.IdleDisconnect,
		"game.idle_warn (%s) must be shorter than game.idle_disconnect (%s)", c.Game.IdleWarn, c.Game.IdleDisconnect)
	check(c.SSH.Port != "", "ssh.port is empty")
	check(c.SSH.ShutdownGrace >= 0, "ssh.shutdown_grace must not be negative")
	check(c.Web.Port != "", "web.port is empty")

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalid, err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		check(false, "log.format must be text or json, got %q", c.Log.Format)
	}

	return errors.Join(errs...)
}

// NewLogger builds the root logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	formatter := log.TextFormatter
	if strings.EqualFold(c.Format, "json") {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          prefix,
		Formatter:       formatter,
	}), nil
}
