package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/littleman/internal/level"
	"github.com/vovakirdan/littleman/internal/platform/tui"
	"github.com/vovakirdan/littleman/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start littleman with a map picker",
	Long: `Start littleman in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start on a map.
Press B or Esc while playing to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play the selected map
  Tab          - Play history
  Q            - Quit

Examples:
  littleman menu
  littleman menu --fps 60
  littleman menu --maps ./levels`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	if err := menuLoop(a, a.maps(), store, a.cfg.Game.StartMap); err != nil {
		fail("%v", err)
	}
}

// menuLoop alternates between the map picker, the history screen and
// games until the player quits.
func menuLoop(a *app, maps *level.Loader, store *storage.Store, startMap int) error {
	cursor := startMap
	for {
		cfg := a.runtime()
		result, err := tui.RunMenu(maps, cursor, cfg)
		if err != nil {
			return err
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsHistory:
			back, err := tui.RunHistory(store, result.Config.ScreenW, result.Config.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			cursor = result.MapID
			back, err := playMap(a, maps, store, result.MapID)
			if err != nil {
				a.log.Error("game failed", "map", result.MapID, "err", err)
				continue
			}
			if !back {
				return nil
			}
		}
	}
}
