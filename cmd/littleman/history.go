package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the play journal",
	Long: `Display the most recent play sessions and how often each map was visited.

The journal only keeps statistics; a session cannot be resumed from it.

Examples:
  littleman history
  littleman history --limit 5
  littleman history --db ./journal.db`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	a, err := newApp(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store := a.openStore()
	if store == nil {
		fail("the play journal is not available")
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		fail("retrieving sessions: %v", err)
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("Nothing played yet.")
		fmt.Println()
		fmt.Println("Run 'littleman play' to start the journal!")
		return
	}

	now := time.Now()
	fmt.Printf("  %-16s  %-12s  %-4s  %-4s  %-12s  %8s  %6s\n", "Started", "Player", "Map", "Maps", "Played", "Moves", "Warps")
	fmt.Printf("  %-16s  %-12s  %-4s  %-4s  %-12s  %8s  %6s\n", "-------", "------", "---", "----", "------", "-----", "-----")
	for _, s := range sessions {
		played := "open"
		if !s.EndedAt.IsZero() {
			played = strings.TrimSpace(humanize.RelTime(s.StartedAt, s.EndedAt, "", ""))
		}
		fmt.Printf("  %-16s  %-12s  %-4d  %-4d  %-12s  %8s  %6s\n",
			humanize.RelTime(s.StartedAt, now, "ago", "from now"),
			s.Player,
			s.StartMap,
			s.MapsVisited,
			played,
			humanize.Comma(int64(s.Moves)),
			humanize.Comma(int64(s.Warps)),
		)
	}

	stats, err := store.AllMapStats()
	if err != nil {
		fail("retrieving map stats: %v", err)
	}
	fmt.Println()
	fmt.Println("Maps")
	fmt.Println()
	fmt.Printf("  %-4s  %8s  %8s  %s\n", "Map", "Visits", "Sessions", "Last visit")
	fmt.Printf("  %-4s  %8s  %8s  %s\n", "---", "------", "--------", "----------")
	for _, m := range stats {
		fmt.Printf("  %-4d  %8s  %8s  %s\n",
			m.MapID,
			humanize.Comma(int64(m.Visits)),
			humanize.Comma(int64(m.Sessions)),
			humanize.Time(m.LastVisit),
		)
	}
}
