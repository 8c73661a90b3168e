// Package cmd — serve command.
// Runs the HTTP API until interrupted.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaurav-prasanna/navpipe/core/api"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve navigation detection over HTTP",
	Long: `Serve starts an HTTP API exposing GET /health and POST /api/detect.

Examples:
  navpipe serve
  navpipe serve --addr :9000 --selectors selectors.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8091", "Listen address")
	serveCmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", api.DefaultMaxBodyBytes, "Maximum request body size")
	addDetectionFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagMaxDepth < 1 {
		return fmt.Errorf("--max-depth must be at least 1 (got %d)", flagMaxDepth)
	}

	log := newLogger()
	if !flagVerbose {
		// Request lines are logged at Info.
		log.SetLevel(logrus.InfoLevel)
	}

	opts, err := detectorOptions(log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         flagAddr,
		Handler:      api.NewServer(log, flagMaxBytes, opts...),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", flagAddr).Info("starting navpipe server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
