package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fieldtrack-backend/config"
	"fieldtrack-backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env not found, using system environment")
	}

	config.ConnectDB()
	database.SeedAll(config.DB)
}
