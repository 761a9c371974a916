package main

import (
	"context"
	"log"

	"handyman-chat-be/internal/bootstrap"
	"handyman-chat-be/internal/config"
	"handyman-chat-be/internal/server"
	"handyman-chat-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load & Validate Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize & Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
