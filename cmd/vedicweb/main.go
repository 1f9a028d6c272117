package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	vedicweb "github.com/vedicsages/vedicweb"
	"github.com/vedicsages/vedicweb/images"
	"github.com/vedicsages/vedicweb/views"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := vedicweb.ConfigFromEnv()

	resolver := images.NewResolver(images.CDN{
		ProjectID: cfg.ContentProjectID,
		Dataset:   cfg.ContentDataset,
	})

	app := vedicweb.New(cfg, views.Default(resolver), vedicweb.WithLogger(log))
	defer app.Close()

	go func() {
		if err := app.Start(); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
