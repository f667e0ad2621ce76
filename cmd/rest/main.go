package main

import (
	"context"
	"log"

	"vetcare-be/internal/bootstrap"
	"vetcare-be/internal/config"
	"vetcare-be/internal/server"
	"vetcare-be/internal/tracer"
	"vetcare-be/pkg/database"
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

	if err := container.DeliveryConsumer.Start(context.Background()); err != nil {
		log.Printf("Background delivery consumer error: %v", err)
	}

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
