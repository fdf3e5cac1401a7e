package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/di"
	"locally/helper"
	"locally/shared/logger"
)

// @title Locally API
// @version 1.0
// @description Space rental marketplace: owners list spaces, tenants search and request bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSON(cfg, os.Stdout)
	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
