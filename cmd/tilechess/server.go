// server.go - HTTP analysis API mode
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/tilechess-go/internal/config"
	"github.com/lgbarn/tilechess-go/internal/httpapi"
)

// runServer serves the API until SIGINT or SIGTERM.
func runServer(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpapi.NewServer(cfg.Server, logger, cfg.LogFile)
	return srv.ListenAndServe(ctx)
}
