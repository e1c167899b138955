package main

import (
	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/di"
	"sportshub/helper"
	"sportshub/shared/logger"
)

// @title Sports Hub Reservation API
// @version 1.0
// @description Reservations, pricing and settlement for sports clubs.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if sink := logger.AttachFileSink(cfg); sink != nil {
		defer sink.Close()
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
