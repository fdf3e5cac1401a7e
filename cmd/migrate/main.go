package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/helper"
	"locally/shared/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	var err error

	switch os.Args[1] {
	case helper.ActionUp:
		err = helper.Up(cfg)
	case helper.ActionDown:
		err = helper.Down(cfg)
	case helper.ActionDrop:
		err = helper.Drop(cfg)
	case helper.ActionStepUp:
		err = helper.StepUp(cfg)
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
