package main

import (
	"context"
	"log"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/bootstrap"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/config"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/server"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/tracer"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
