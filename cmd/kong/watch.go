package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maxogod/AI-Donkey-Kong/internal/env"
	"github.com/maxogod/AI-Donkey-Kong/internal/platform/tui"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

var (
	flagWatchPolicy string
	flagWatchManual bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a policy play, or play manually",
	Long: `Run the arena in the terminal at the tick rate.

Controls:
  Left/Right  - Move (manual)
  Up/Down     - Climb (manual)
  Space       - Jump (manual)
  Enter       - Warp to the debug point (manual)
  Tab         - Switch between policy and manual control
  P/Esc       - Pause
  R           - Restart episode
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Examples:
  kong watch
  kong watch --policy random
  kong watch --manual --preset hard`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchPolicy, "policy", "climber", "Policy to watch (see 'kong list')")
	watchCmd.Flags().BoolVar(&flagWatchManual, "manual", false, "Drive the agent with the keyboard")
}

func runWatch(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("kong")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := runtimeConfig(width, height)

	var p registry.Policy
	if !flagWatchManual {
		p, err = registry.Create(flagWatchPolicy)
		if err != nil {
			return fmt.Errorf("%w (run 'kong list')", err)
		}
	}

	// The viewer owns the terminal; only errors reach stderr.
	quiet := logger.WithPrefix("env")
	quiet.SetLevel(max(logger.GetLevel(), log.ErrorLevel))
	e, err := env.New(cfg, rt, env.WithLogger(quiet))
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open episodes database", "error", err)
		// Continue without storage
		store = nil
	}

	runErr := tui.Run(e, p, store, rt, quiet)

	if store != nil {
		store.Close()
	}
	return runErr
}
