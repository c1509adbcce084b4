package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maxogod/AI-Donkey-Kong/internal/env"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
	"github.com/maxogod/AI-Donkey-Kong/internal/transcript"
)

var (
	flagRunPolicy     string
	flagRunEpisodes   int
	flagRunTranscript string
	flagRunEpsilon    float64
	flagRunNoSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run episodes headless",
	Long: `Run episodes as fast as possible with a policy. Each finished episode is
saved to the episodes database; with --transcript every tick is also written
as zstd-compressed JSON lines, one file per episode.

Examples:
  kong run --policy climber --episodes 50
  kong run --policy random --epsilon 0.1 --seed 42
  kong run --policy climber --transcript ./transcripts`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunPolicy, "policy", "climber", "Policy to run (see 'kong list')")
	runCmd.Flags().IntVar(&flagRunEpisodes, "episodes", 1, "Number of episodes")
	runCmd.Flags().StringVar(&flagRunTranscript, "transcript", "", "Directory for per-tick transcripts")
	runCmd.Flags().Float64Var(&flagRunEpsilon, "epsilon", 0, "Exploration rate: chance of a random action per tick")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record episodes in the database")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("kong")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := registry.Create(flagRunPolicy)
	if err != nil {
		return fmt.Errorf("%w (run 'kong list')", err)
	}

	rt := runtimeConfig(80, 24)
	e, err := env.New(cfg, rt, env.WithLogger(logger.WithPrefix("env")), env.WithExploration(flagRunEpsilon))
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagRunNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open episodes database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var tw *transcript.Writer
	var writeErr error
	if flagRunTranscript != "" {
		tw = transcript.NewWriter(flagRunTranscript, p.ID())
		defer tw.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onTick := func(t env.Tick) {
		if tw == nil || writeErr != nil {
			return
		}
		if writeErr = tw.Write(t.Record()); writeErr != nil {
			logger.Error("transcript write failed, disabling transcripts", "error", writeErr)
		}
	}

	logger.Info("running", "policy", p.ID(), "episodes", flagRunEpisodes, "seed", rt.Seed)

	var total float64
	for i := 0; i < flagRunEpisodes; i++ {
		sum, runErr := env.RunEpisode(ctx, e, p, onTick)
		if errors.Is(runErr, context.Canceled) {
			logger.Warn("interrupted", "completed", i)
			break
		}
		if runErr != nil {
			return runErr
		}

		total += sum.Reward
		fmt.Printf("%4d  %-8s  reward %+8.3f  ticks %5d  zones %d  best y %6.2f  %s\n",
			i+1, sum.Outcome, sum.Reward, sum.Ticks, sum.ZonesVisited, sum.HighestY, sum.Cause)

		if store != nil {
			if _, err := store.SaveEpisode(sum.Episode(p.ID())); err != nil {
				logger.Warn("cannot save episode", "id", sum.EpisodeID, "error", err)
			}
		}
	}

	episodes, wins := e.Episodes()
	if episodes > 0 {
		fmt.Println()
		fmt.Printf("%d episodes, %d wins, mean reward %+.3f\n", episodes, wins, total/float64(episodes))
	}
	return nil
}
