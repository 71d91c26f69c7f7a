package service

import (
	"context"
	"fmt"
	"portfoliowidget/internal/calculator"
	"portfoliowidget/internal/domain"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
)

const DefaultHistoryDays = 30

// PortfolioHistoryService assembles the payload served at
// /api/v1/portfolio/alpaca/history.
type PortfolioHistoryService interface {
	// GetHistory returns the daily equity series over the last days days
	// together with the current account metrics. Both reads must succeed.
	GetHistory(ctx context.Context, days int) (*domain.PortfolioHistory, error)
}

type portfolioHistoryServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
}

func NewPortfolioHistoryService(alpacaRepository repository.AlpacaRepository) PortfolioHistoryService {
	return &portfolioHistoryServiceHandler{
		AlpacaRepository: alpacaRepository,
	}
}

func (h portfolioHistoryServiceHandler) GetHistory(ctx context.Context, days int) (*domain.PortfolioHistory, error) {
	log := logger.FromContext(ctx)

	points, err := h.AlpacaRepository.GetPortfolioHistory(ctx, days)
	if err != nil {
		return nil, err
	}

	account, err := h.AlpacaRepository.GetAccount(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := metricsFromAccount(account)
	if err != nil {
		return nil, err
	}

	result, err := calculator.CalculateEquityMetrics(points)
	if err != nil {
		log.Infof("skipping equity metrics: %v", err)
	} else {
		extras := map[string]float64{
			"period_return_pct": result.PeriodReturnPct,
			"annualized_stdev":  result.AnnualizedStdev,
			"max_drawdown_pct":  result.MaxDrawdownPct,
		}
		for k, v := range extras {
			if err := metrics.SetExtra(k, v); err != nil {
				return nil, err
			}
		}
	}

	return &domain.PortfolioHistory{
		Equity:  points,
		Metrics: metrics,
	}, nil
}

func metricsFromAccount(account *alpaca.Account) (*domain.Metrics, error) {
	if account == nil {
		return nil, fmt.Errorf("failed to build metrics: no account returned")
	}

	metrics := domain.NewMetrics()
	metrics.SetEquity(account.Equity)

	extras := map[string]any{
		"last_equity":  account.LastEquity.InexactFloat64(),
		"cash":         account.Cash.InexactFloat64(),
		"buying_power": account.BuyingPower.InexactFloat64(),
		"currency":     account.Currency,
		"status":       account.Status,
	}
	for k, v := range extras {
		if err := metrics.SetExtra(k, v); err != nil {
			return nil, err
		}
	}

	return metrics, nil
}
