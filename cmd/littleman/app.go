package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/littleman/internal/config"
	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/level"
	"github.com/vovakirdan/littleman/internal/storage"
)

// app holds what every command needs: the resolved configuration and the
// root logger.
type app struct {
	cfg     config.Config
	log     *log.Logger
	logFile *os.File
}

// newApp loads the configuration and sets up logging. Full-screen commands
// log to a file, since anything written to the terminal would tear the UI.
func newApp(fullScreen bool) (*app, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	// Config problems are reported on stderr before the UI starts.
	boot := log.NewWithOptions(os.Stderr, log.Options{Level: lvl, Prefix: "littleman"})
	cfg, err := config.Load(flagConfig, boot.WithPrefix("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)

	a := &app{cfg: cfg}

	var out io.Writer = os.Stderr
	logPath := flagLogFile
	if logPath == "" && fullScreen {
		logPath = cfg.Paths.Log
	}
	if logPath != "" {
		path := config.ExpandPath(logPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		out = f
	}

	a.log = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "littleman",
	})
	return a, nil
}

// applyFlags lets explicit command-line flags override the config file.
func applyFlags(cfg *config.Config) {
	if flagFPS > 0 {
		cfg.Game.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	if flagMapsDir != "" {
		cfg.Paths.Maps = flagMapsDir
	}
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// mapsDir returns the configured level directory, or "" for the built-in maps.
func (a *app) mapsDir() string {
	if a.cfg.Paths.Maps == "" {
		return ""
	}
	return config.ExpandPath(a.cfg.Paths.Maps)
}

// maps returns a loader over the level directory or the built-in maps.
func (a *app) maps() *level.Loader {
	logger := a.log.WithPrefix("level")
	if dir := a.mapsDir(); dir != "" {
		return level.NewDirLoader(dir, logger)
	}
	return level.Builtin(logger)
}

// openStore opens the play journal. The game works without it, so a
// failure is only a warning.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(config.ExpandPath(a.cfg.Paths.DB))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		a.log.Warn("journal disabled", "err", err)
		return nil
	}
	return store
}

// runtime builds the game runtime config for the current terminal.
func (a *app) runtime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.Game.FPS,
		ScaleX:   a.cfg.Render.ScaleX,
		ScaleY:   a.cfg.Render.ScaleY,
		Hitbox:   a.cfg.Render.Hitbox,
		HUD:      a.cfg.Render.HUD,
	}
}

// fail prints an error and exits like every other command failure.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
