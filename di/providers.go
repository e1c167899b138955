package di

import (
	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/internal/engine/pricing"
	"sportshub/internal/engine/settlement"
	"sportshub/shared/money"
)

func providePricingCalculator(cfg *config.Config) *pricing.Calculator {
	rate, err := money.Parse(cfg.Engine.MembershipDiscountRate)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid membership discount rate")
	}

	return pricing.NewCalculator(rate)
}

func provideSettlementPolicy(cfg *config.Config) settlement.Policy {
	policy, err := settlement.NewPolicy(cfg.Engine.DefaultCommissionRate, cfg.Engine.AllowedCommissionRates)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid commission rates")
	}

	return policy
}
