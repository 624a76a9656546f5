package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hive/internal/config"
	"hive/internal/hivelog"
	"hive/internal/kernel"
	"hive/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the dispatcher worker pool and block until shutdown",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := hivelog.New(cfg)
	registry := metrics.NewRegistry()

	rt := kernel.New(kernel.Config{
		Logger:  logger,
		Metrics: registry,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", registry.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	registerDemoActor(rt, logger)

	logger.Info().Int("workers", cfg.Workers).Msg("starting dispatcher worker pool")

	runCtx, runCancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- rt.Run(runCtx, cfg.Workers, cfg.IdleBackoff)
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received, releasing all actors")
	rt.Exit()

	// Give the worker pool a bounded window to drain the ready queue
	// before forcing a stop.
	drainDeadline := time.After(5 * time.Second)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
drain:
	for {
		select {
		case <-ticker.C:
			if rt.Count() == 0 && rt.ReadyLen() == 0 {
				break drain
			}
		case <-drainDeadline:
			logger.Warn().Int("remaining_actors", rt.Count()).Msg("drain deadline exceeded, forcing stop")
			break drain
		}
	}

	runCancel()
	<-done
	rt.Free()
	return nil
}

// registerDemoActor creates a single built-in actor that logs each message
// it receives, so a freshly started hived process has observable activity
// without depending on an external producer.
func registerDemoActor(rt *kernel.Runtime, logger zerolog.Logger) {
	cb := func(source, self kernel.Handle, msgType int32, session int64, payload []byte, userData any) {
		switch msgType {
		case kernel.TypeCreate:
			logger.Info().Uint32("handle", uint32(self)).Msg("demo actor created")
		case kernel.TypeRelease:
			logger.Info().Uint32("handle", uint32(self)).Msg("demo actor released")
		default:
			logger.Info().
				Uint32("handle", uint32(self)).
				Uint32("source", uint32(source)).
				Int32("type", msgType).
				Int64("session", session).
				Int("payload_len", len(payload)).
				Msg("demo actor received message")
		}
	}

	rt.Create("demo-echo", cb, nil, nil)
}
