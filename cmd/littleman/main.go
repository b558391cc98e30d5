// littleman is a terminal platformer: one character walking, jumping and
// climbing through level maps linked by edge and in-map warps.
//
// Usage:
//
//	littleman play              - Play from the start map
//	littleman menu              - Pick a start map interactively
//	littleman maps list         - List the available maps
//	littleman maps check        - Validate every map and its links
//	littleman maps show <id>    - Describe and preview one map
//	littleman maps convert <in> <out> - Convert between level formats
//	littleman serve             - Start SSH server for remote play
//	littleman history           - Show the play journal
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--fps <rate>        - Tick rate (default from config: 30)
//	--db <path>         - Journal database (default: ~/.littleman/journal.db)
//	--maps <dir>        - Level directory (default: built-in maps)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagMapsDir  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "littleman",
	Short: "Littleman - a little platformer in your terminal",
	Long: `Littleman is a terminal platformer. Walk, jump and climb through
hand-made maps linked by their edges and by hidden warps.

Available commands:
  play     - Play from the start map
  menu     - Interactive start map picker
  maps     - List, check, preview and convert level files
  serve    - Start SSH server for remote play
  history  - View the play journal

Examples:
  littleman play
  littleman play --map 2 --maps ./levels --watch
  littleman maps check --maps ./levels
  littleman serve --ssh :2222
  littleman history --limit 5`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	pf.StringVar(&flagDBPath, "db", "", "Path to journal database (default from config)")
	pf.StringVar(&flagMapsDir, "maps", "", "Level directory (default: built-in maps)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
