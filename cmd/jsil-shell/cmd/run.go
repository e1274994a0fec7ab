package cmd

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jsil-dev/host-sdk/go/internal/shell"
	"github.com/spf13/cobra"
)

var (
	frames      int
	metricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run <script.js>",
	Short: "Run a script in the headless shell",
	Long: `Evaluates a script with the JSIL global installed, runs the queued init
callbacks, flushes run-later actions and then drives the frame loop.

The exit status is non-zero when the script throws or reports a fatal error.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().IntVar(&frames, "frames", -1, "Frames to run after the script (overrides the config)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running (enables metrics)")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if frames >= 0 {
		cfg.Ticks.Frames = frames
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: shell.ParseLevel(cfg.LogLevel)}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := shell.New(ctx, cfg,
		shell.WithLogger(logger),
		shell.WithStdout(cmd.OutOrStdout()),
		shell.WithStderr(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close shell", "error", err)
		}
	}()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           s.Metrics().Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", "addr", metricsAddr)
	}

	started := time.Now()
	res, err := s.Run(ctx, filepath.Base(args[0]), source)
	logger.Debug("run finished", "frames", res.Frames, "elapsed", time.Since(started))
	return err
}
