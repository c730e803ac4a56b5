package main

import (
	"log"

	"github.com/joho/godotenv"

	"invoicegen/cmd"
	"invoicegen/internal/config"
	"invoicegen/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()
}
