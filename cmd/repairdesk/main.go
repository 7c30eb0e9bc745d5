package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"repairdesk/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New()
	if err != nil {
		log.Fatalf("app.New: %v", err)
	}
	defer application.Close() //nolint:errcheck

	if err := application.Run(ctx); err != nil {
		log.Fatalf("app.Run: %v", err)
	}
}
