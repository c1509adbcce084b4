// kong runs, watches and serves the climbing agent.
//
// Usage:
//
//	kong list                - List registered policies
//	kong run                 - Run episodes headless and record them
//	kong watch               - Watch a policy play, or play manually
//	kong serve               - Serve the viewer over SSH
//	kong bridge              - Serve environments to external trainers over websocket
//	kong episodes            - Show recorded episodes
//	kong config              - Print or validate the agent configuration
//
// Global flags:
//
//	--config <path>     - Agent config YAML (default: search path, then embedded)
//	--preset <name>     - Curriculum preset: easy, normal, hard, fixed
//	--log-level <level> - debug, info, warn, error
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed (0 = random based on time)
//	--db <path>         - Episodes database (default: ~/.kong/episodes.db)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"

	// Import policies to register them
	_ "github.com/maxogod/AI-Donkey-Kong/internal/policy"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kong",
	Short: "Climbing agent environment, viewer and trainer bridge",
	Long: `kong hosts a climbing agent in a small barrel-rolling arena. The agent
climbs ladders, passes zone checkpoints and avoids hazards to reach the goal.

Available commands:
  list      - Show registered policies
  run       - Run episodes headless and record them
  watch     - Watch a policy play, or play with the keyboard
  serve     - Start SSH server for remote viewing
  bridge    - Serve environments to external trainers over websocket
  episodes  - Show recorded episodes and stats
  config    - Print or validate the agent configuration

Examples:
  kong run --policy climber --episodes 20
  kong watch --manual
  kong bridge --addr :8765
  kong episodes --best`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to agent config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Curriculum preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kong/episodes.db", "Path to episodes database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the agent config and applies --preset.
func loadConfig() (config.AgentConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.AgentConfig{}, err
	}
	switch p := config.DifficultyPreset(flagPreset); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(&cfg, p)
	default:
		return config.AgentConfig{}, fmt.Errorf("unknown preset %q (expected easy, normal, hard or fixed)", flagPreset)
	}
	return cfg, nil
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
