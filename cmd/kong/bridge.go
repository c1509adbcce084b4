package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxogod/AI-Donkey-Kong/internal/bridge"
	"github.com/maxogod/AI-Donkey-Kong/internal/env"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

const bridgePolicy = "bridge"

var (
	flagBridgeAddr    string
	flagBridgePath    string
	flagBridgeEpsilon float64
	flagBridgeNoSave  bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve environments to external trainers",
	Long: `Start a websocket server. Every connection drives its own environment:

  -> {"type":"hello","protocol_version":"1"}
  <- {"type":"welcome","observation_size":N,"schema":[...],"branches":[3,4]}
  -> {"type":"reset"}
  <- {"type":"obs","observation":[...]}
  -> {"type":"step","action":[h,v]}
  <- {"type":"obs","observation":[...],"reward":r,"done":false}

Finished episodes are recorded under the policy name "bridge".

Examples:
  kong bridge
  kong bridge --addr 127.0.0.1:9000 --preset hard`,
	RunE: runBridge,
}

func init() {
	bridgeCmd.Flags().StringVar(&flagBridgeAddr, "addr", ":8765", "HTTP listen address")
	bridgeCmd.Flags().StringVar(&flagBridgePath, "path", "/ws", "Websocket endpoint path")
	bridgeCmd.Flags().Float64Var(&flagBridgeEpsilon, "epsilon", 0, "Exploration rate applied to trainer actions")
	bridgeCmd.Flags().BoolVar(&flagBridgeNoSave, "no-save", false, "Do not record episodes in the database")
}

func runBridge(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("bridge")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	envLog := logger.WithPrefix("env")
	var sessions atomic.Int64
	factory := func() (*env.Env, error) {
		// Each session gets its own seed sequence.
		rt := runtimeConfig(80, 24)
		rt.Seed += sessions.Add(1) * 1_000_003
		return env.New(cfg, rt, env.WithLogger(envLog), env.WithExploration(flagBridgeEpsilon))
	}

	var opts []bridge.Option
	if !flagBridgeNoSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open episodes database", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, bridge.WithEpisodeHook(func(session string, sum env.Summary) {
				if _, err := store.SaveEpisode(sum.Episode(bridgePolicy)); err != nil {
					logger.Warn("cannot save episode", "session", session, "error", err)
				}
			}))
		}
	}

	mux := http.NewServeMux()
	mux.Handle(flagBridgePath, bridge.NewServer(factory, logger, opts...).Handler())
	srv := &http.Server{
		Addr:              flagBridgeAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", flagBridgeAddr, "path", flagBridgePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
