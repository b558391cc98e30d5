package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/littleman/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the littleman SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a map picker and its own
character. Maps are shared and read once; the play journal records
every session under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.littleman/host_key

Examples:
  littleman serve                           # Listen on :23234 with auto-generated key
  littleman serve --ssh :2222               # Listen on port 2222
  littleman serve --host-key ./my_host_key  # Use specific host key
  littleman serve --maps ./levels           # Serve your own maps

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := newApp(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	runtime := a.runtime()
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Maps:        a.maps(),
		Store:       store,
		StartMap:    a.cfg.Game.StartMap,
		Tuning:      a.cfg.Physics,
		Runtime:     runtime,
	}

	server, err := tui.NewSSHServer(cfg, a.log)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting littleman SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
