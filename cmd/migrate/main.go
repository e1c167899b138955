package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/helper"
	"sportshub/shared/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/step-up/drop/version) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	switch action := os.Args[1]; action {
	case helper.ActionUp, helper.ActionDown, helper.ActionStepUp, helper.ActionDrop, helper.ActionVersion:
		if err := helper.Runner(cfg, action); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	default:
		log.Fatal().Str("action", action).Msg("Invalid direction. Use 'up', 'down', 'step-up', 'drop' or 'version'")
	}
}
