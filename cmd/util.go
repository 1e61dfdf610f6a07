package cmd

import (
	"fmt"

	"portfoliopulse/api"
	"portfoliopulse/internal"
	"portfoliopulse/internal/logger"
	"portfoliopulse/internal/repository"
	"portfoliopulse/internal/service"
	"portfoliopulse/internal/util"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	log := logger.New()

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	if secrets.HoldingsURL == "" {
		return nil, fmt.Errorf("secrets.json is missing holdingsUrl")
	}

	var marketDataRepository repository.MarketDataRepository
	switch secrets.Provider {
	case "", "fmp":
		if secrets.FMPApiKey == "" {
			return nil, fmt.Errorf("secrets.json is missing fmpApiKey")
		}
		marketDataRepository = repository.NewFMPRepository(secrets.FMPApiKey, "")
	case "yahoo":
		marketDataRepository = repository.NewYahooRepository()
	default:
		return nil, fmt.Errorf("unknown provider %q", secrets.Provider)
	}

	holdingsRepository := repository.NewSheetHoldingsRepository(secrets.HoldingsURL)
	sentimentService := internal.NewSentimentService()

	onProgress := func(ticker string, index, total int) {
		log.Infow("analyzing holding", "ticker", ticker, "index", index, "total", total)
	}

	analysisService := service.NewAnalysisService(
		holdingsRepository,
		marketDataRepository,
		sentimentService,
		service.DefaultAnalysisConfig(),
		onProgress,
	)

	return &api.ApiHandler{
		AnalysisService: analysisService,
		Log:             log,
	}, nil
}
