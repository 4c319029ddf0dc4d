package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/copperhead-cup/cup-bot/app"
	"github.com/copperhead-cup/cup-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := &app.App{}
	if err := application.Initialize(ctx, cfg); err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("app stopped with error: %v", err)
	}
}
