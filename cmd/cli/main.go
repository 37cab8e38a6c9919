package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"gymdash/internal/cli"
	"gymdash/internal/config"
	"gymdash/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := cli.NewApp(cfg, logger)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
