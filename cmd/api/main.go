package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fieldtrack-backend/config"
	"fieldtrack-backend/internal/mailer"
	"fieldtrack-backend/internal/push"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/routes"
	"fieldtrack-backend/internal/ws"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env not found, using system environment")
	}

	config.ConnectDB()
	db := config.DB
	log.Info().Msg("database connected")

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	hub := ws.NewHub()
	notifier := push.NewNotifier(context.Background(), repository.NewDeviceRepository(db))
	mail := mailer.New()

	routes.SetupAuthRoutes(app, db)
	routes.SetupUserRoutes(app, db, mail)
	routes.SetupOfficeRoutes(app, db)
	routes.SetupLocationRoutes(app, db, hub)
	routes.SetupAttendanceRoutes(app, db)
	routes.SetupMessageRoutes(app, db, hub, notifier)
	routes.SetupWSRoutes(app, db, hub)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info().Str("addr", addr).Msg("server ready")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
