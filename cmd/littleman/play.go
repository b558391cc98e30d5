package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/littleman/internal/game"
	"github.com/vovakirdan/littleman/internal/level"
	"github.com/vovakirdan/littleman/internal/platform/tui"
	"github.com/vovakirdan/littleman/internal/storage"
)

var (
	flagStartMap int
	flagWatch    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play littleman",
	Long: `Start playing from the start map.

Controls:
  Left/Right, A/D   - Walk
  Up, W, Space      - Jump, or climb up a ladder
  Down, S           - Climb down
  R                 - Respawn on the current map
  H                 - Toggle the hit box overlay
  P                 - Pause
  B/Esc             - Back to the map picker
  Q/Ctrl+C          - Quit

With --watch, level files edited while playing are reloaded on the fly.
Watching needs a level directory (--maps or paths.maps in the config).

Examples:
  littleman play
  littleman play --map 2
  littleman play --maps ./levels --watch
  littleman play --config ./my-littleman.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartMap, "map", 0, "Start map id (0 = from config)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change")
}

func runPlay(cmd *cobra.Command, _ []string) {
	a, err := newApp(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if cmd.Flags().Changed("watch") {
		a.cfg.Game.Watch = flagWatch
	}
	startMap := a.cfg.Game.StartMap
	if flagStartMap > 0 {
		startMap = flagStartMap
	}

	maps := a.maps()
	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	back, err := playMap(a, maps, store, startMap)
	if err != nil {
		fail("%v", err)
	}
	if back {
		if err := menuLoop(a, maps, store, startMap); err != nil {
			fail("%v", err)
		}
	}
}

// playMap runs one game from startMap. It reports whether the player
// asked for the map picker on the way out.
func playMap(a *app, maps *level.Loader, store *storage.Store, startMap int) (bool, error) {
	g, err := game.New(maps, game.Options{
		StartMap: startMap,
		Tuning:   a.cfg.Physics,
	}, a.log.WithPrefix("game"))
	if err != nil {
		return false, fmt.Errorf("cannot start on map %d: %w", startMap, err)
	}

	opts := tui.Options{
		Game:   g,
		Maps:   maps,
		Store:  store,
		Player: playerName(),
		Config: a.runtime(),
		Logger: a.log.WithPrefix("tui"),
	}

	if a.cfg.Game.Watch {
		dir := a.mapsDir()
		if dir == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs a level directory; the built-in maps never change")
		} else {
			w, err := level.NewWatcher(dir, 0, a.log.WithPrefix("watch"))
			if err != nil {
				return false, fmt.Errorf("cannot watch %s: %w", dir, err)
			}
			defer w.Close()
			opts.Changes = w.Events
			a.log.Info("watching level files", "dir", dir)
		}
	}

	back, err := tui.Run(opts)
	stats := g.Stats()
	a.log.Info("game over",
		"map", g.State().MapID,
		"ticks", stats.Ticks,
		"moves", stats.Moves,
		"warps", stats.Warps,
		"failures", stats.Failures,
	)
	if err != nil {
		return false, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}

// playerName names local sessions in the journal after the OS user.
func playerName() string {
	for _, v := range []string{"USER", "USERNAME", "LOGNAME"} {
		if name := os.Getenv(v); name != "" {
			return name
		}
	}
	return "local"
}
