package repository

import (
	"context"
	"fmt"
	"portfoliowidget/internal/domain"
	"portfoliowidget/internal/logger"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
)

const DefaultAlpacaEndpoint = "https://paper-api.alpaca.markets"

type AlpacaRepository interface {
	GetAccount(ctx context.Context) (*alpaca.Account, error)
	GetPortfolioHistory(ctx context.Context, days int) ([]domain.HistoryPoint, error)
}

func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) AlpacaRepository {
	if endpoint == "" {
		endpoint = DefaultAlpacaEndpoint
	}
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    endpoint,
		RetryLimit: 3,
	})

	return &alpacaRepositoryHandler{
		Client: client,
	}
}

type alpacaRepositoryHandler struct {
	Client *alpaca.Client
}

func (h alpacaRepositoryHandler) GetAccount(ctx context.Context) (*alpaca.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	acct, err := h.Client.GetAccount()
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acct, nil
}

func (h alpacaRepositoryHandler) GetPortfolioHistory(ctx context.Context, days int) ([]domain.HistoryPoint, error) {
	log := logger.FromContext(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, fmt.Errorf("invalid history window: %d days", days)
	}

	history, err := h.Client.GetPortfolioHistory(alpaca.GetPortfolioHistoryRequest{
		Period:    fmt.Sprintf("%dD", days),
		TimeFrame: alpaca.TimeFrame("1D"),
		DateEnd:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio history: %w", err)
	}

	points, err := historyPointsFromAlpaca(history)
	if err != nil {
		return nil, err
	}
	log.Debugf("fetched %d portfolio history point(s) over %d day(s)", len(points), days)

	return points, nil
}

// alpaca sends parallel timestamp/equity arrays
func historyPointsFromAlpaca(history *alpaca.PortfolioHistory) ([]domain.HistoryPoint, error) {
	if history == nil {
		return []domain.HistoryPoint{}, nil
	}
	if len(history.Timestamp) != len(history.Equity) {
		return nil, fmt.Errorf(
			"malformed portfolio history: %d timestamp(s) but %d equity value(s)",
			len(history.Timestamp),
			len(history.Equity),
		)
	}

	out := make([]domain.HistoryPoint, 0, len(history.Equity))
	for i, ts := range history.Timestamp {
		out = append(out, domain.HistoryPoint{
			Date:  time.Unix(ts, 0).UTC().Format(time.DateOnly),
			Value: history.Equity[i],
		})
	}

	return out, nil
}
