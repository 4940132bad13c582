package main

import (
	"log"

	"github.com/aussiebroadwan/gatekeep/internal/auth/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
