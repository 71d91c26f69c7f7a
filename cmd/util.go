package cmd

import (
	"fmt"
	"os"
	"portfoliowidget/api"
	integration_tests "portfoliowidget/integration-tests"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/repository"
	"portfoliowidget/internal/service"
	"portfoliowidget/internal/util"
	"strconv"
	"strings"
)

// useMockAlpaca serves canned data instead of hitting alpaca, for demos
// and ALPHA_ENV=test
func useMockAlpaca() bool {
	if strings.EqualFold(os.Getenv("ALPHA_ENV"), "test") {
		return true
	}
	v, _ := strconv.ParseBool(os.Getenv("USE_MOCK_ALPACA"))
	return v
}

func InitializeDependencies() (*api.ApiHandler, *util.Secrets, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	log := logger.New()

	var alpacaRepository repository.AlpacaRepository
	if useMockAlpaca() {
		log.Warn("using mock alpaca repository")
		alpacaRepository = integration_tests.NewMockAlpacaRepositoryForTests()
	} else {
		if err := secrets.Alpaca.Validate(); err != nil {
			return nil, nil, err
		}
		alpacaRepository = repository.NewAlpacaRepository(
			secrets.Alpaca.ApiKey,
			secrets.Alpaca.ApiSecret,
			secrets.Alpaca.Endpoint,
		)
	}
	portfolioHistoryService := service.NewPortfolioHistoryService(alpacaRepository)

	apiHandler := &api.ApiHandler{
		PortfolioHistoryService: portfolioHistoryService,
		Logger:                  log,
		JwtDecodeToken:          secrets.Jwt,
		HistoryDays:             service.DefaultHistoryDays,
	}

	return apiHandler, secrets, nil
}
