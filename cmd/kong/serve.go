package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxogod/AI-Donkey-Kong/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServePolicy string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the viewer SSH server",
	Long: `Start an SSH server where every connection watches its own episode.

Each session gets a fresh environment driven by --policy; tab switches the
session to manual control. Finished episodes go to the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kong/host_key

Examples:
  kong serve                           # Listen on :23234 with auto-generated key
  kong serve --ssh :2222               # Listen on port 2222
  kong serve --policy ""               # Manual control only

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServePolicy, "policy", "climber", "Policy each session watches (empty for manual)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("kong-ssh")
	if err != nil {
		return err
	}
	agentCfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Policy:      flagServePolicy,
		Agent:       agentCfg,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting kong SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
