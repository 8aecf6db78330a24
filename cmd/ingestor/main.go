// Claims ingestor process entrypoint.
//
// Data flow:
//  1. Load config.
//  2. Build app wiring (ports + adapters + use cases).
//  3. Run until SIGINT/SIGTERM, then drain and close.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/internal/app/bootstrap"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/internal/platform/config"
)

func main() {
	log.Println("claims ingestor starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("shutdown close failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("received signal %s, shutting down", sig)
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("claims ingestor stopped with error: %v", err)
	}
}
