package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiprobe/apiprobe/internal/mock"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve the local stub API",
	Long: `Starts a local stub API the built-in suite runs green against.

Endpoints:
  GET  /api/users/:id   single user wrapped in a data envelope
  GET  /api/users       paged user list
  POST /api/users       create user (201, echoes name/job with id/createdAt)
  POST /api/login       issue a token, 400 on missing credentials
  GET  /api/health      liveness

Every served exchange is recorded; inspect recent ones at /_admin/requests
or stream them live over the WebSocket at /_admin/requests/stream.`,
	RunE: runMock,
}

var mockPortFlag int

func init() {
	mockCmd.Flags().IntVarP(&mockPortFlag, "port", "p", 0, "override mock server port")
}

func runMock(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if mockPortFlag > 0 {
		cfg.Mock.Port = mockPortFlag
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store := mock.NewUserStore()
	recorder := mock.NewRecorder(cfg.Mock.MaxRecorded)
	stub := mock.NewServer(store, recorder, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Mock.Host, cfg.Mock.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      stub.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("mock: serving stub API on http://%s/api", addr)
		logger.Printf("mock: recorded exchanges at http://%s/_admin/requests", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("mock server failed: %w", err)
	case <-quit:
	}

	logger.Printf("mock: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("mock: shutdown error: %v", err)
	}
	logger.Printf("mock: stopped")
	return nil
}
