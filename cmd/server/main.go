// Command server serves the venues exported by the scraper from the Redis geo index.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"venue-scraper/config"
	"venue-scraper/di"
	"venue-scraper/logging"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewServerContainer(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := container.VenuesHttpServer.Run(ctx); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		container.Close()
		os.Exit(1)
	}
}
