package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/app"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/config"
)

func main() {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
