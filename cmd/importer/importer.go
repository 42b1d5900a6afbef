package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DRSN-tech/semantic-search/internal/app"
	config "github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	// Ctrl+C прерывает прогон, уже записанные батчи остаются в коллекции
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunImport(ctx, cfg, log); err != nil {
		os.Exit(1)
	}
}
