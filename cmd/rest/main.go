package main

import (
	"context"
	"log"

	"study-tutor-be/internal/bootstrap"
	"study-tutor-be/internal/config"
	"study-tutor-be/internal/server"
	"study-tutor-be/internal/tracer"
	"study-tutor-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("[WARN] Failed to shut down tracer: %v", err)
		}
	}()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("[FATAL] Failed to connect to database: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)

	go func() {
		if err := container.NotificationService.Start(context.Background()); err != nil {
			log.Printf("[WARN] Notification consumer failed to start: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
