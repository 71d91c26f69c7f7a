package integration_tests

import (
	"context"
	"fmt"
	"portfoliowidget/internal/domain"
	"portfoliowidget/internal/repository"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

// MockStartDate is the first day of the canned history
var MockStartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewMockAlpacaRepositoryForTests serves a deterministic account that
// gains $500 a day from $100,000. Used by ALPHA_ENV=test and the
// integration tests, no credentials needed.
func NewMockAlpacaRepositoryForTests() repository.AlpacaRepository {
	return mockAlpacaForTestsHandler{}
}

type mockAlpacaForTestsHandler struct {
}

func mockEquity(day int) decimal.Decimal {
	return decimal.NewFromInt(100000).Add(decimal.NewFromInt(500).Mul(decimal.NewFromInt(int64(day))))
}

func (m mockAlpacaForTestsHandler) GetPortfolioHistory(ctx context.Context, days int) ([]domain.HistoryPoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("invalid history window: %d days", days)
	}
	out := []domain.HistoryPoint{}
	for i := 0; i < days; i++ {
		out = append(out, domain.HistoryPoint{
			Date:  MockStartDate.AddDate(0, 0, i).Format(time.DateOnly),
			Value: mockEquity(i),
		})
	}
	return out, nil
}

func (m mockAlpacaForTestsHandler) GetAccount(ctx context.Context) (*alpaca.Account, error) {
	return &alpaca.Account{
		Equity:      mockEquity(30),
		LastEquity:  mockEquity(29),
		Cash:        decimal.NewFromInt(2500),
		BuyingPower: decimal.NewFromInt(5000),
		Currency:    "USD",
		Status:      "ACTIVE",
	}, nil
}

type failingAlpacaHandler struct {
	err error
}

func (f failingAlpacaHandler) GetPortfolioHistory(ctx context.Context, days int) ([]domain.HistoryPoint, error) {
	return nil, f.err
}

func (f failingAlpacaHandler) GetAccount(ctx context.Context) (*alpaca.Account, error) {
	return nil, f.err
}
