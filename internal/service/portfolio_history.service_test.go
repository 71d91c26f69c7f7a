package service

import (
	"context"
	"encoding/json"
	"fmt"
	"portfoliowidget/internal/domain"
	mock_repository "portfoliowidget/internal/repository/mocks"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_portfolioHistoryServiceHandler_GetHistory(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := NewPortfolioHistoryService(alpacaRepository)
		ctx := context.Background()

		points := []domain.HistoryPoint{
			{Date: "2024-01-01", Value: decimal.NewFromInt(100000)},
			{Date: "2024-01-02", Value: decimal.NewFromInt(100500)},
			{Date: "2024-01-03", Value: decimal.NewFromInt(101000)},
		}
		alpacaRepository.EXPECT().
			GetPortfolioHistory(ctx, DefaultHistoryDays).
			Return(points, nil)
		alpacaRepository.EXPECT().
			GetAccount(ctx).
			Return(&alpaca.Account{
				Equity:      decimal.NewFromInt(101000),
				LastEquity:  decimal.NewFromInt(100500),
				Cash:        decimal.NewFromInt(2500),
				BuyingPower: decimal.NewFromInt(5000),
				Currency:    "USD",
			}, nil)

		history, err := handler.GetHistory(ctx, DefaultHistoryDays)
		require.NoError(t, err)

		require.Equal(t, points, history.Equity)
		require.Equal(t, "101000", history.Metrics.Equity.String())
		require.Equal(t, `"USD"`, string(history.Metrics.Extra["currency"]))
		require.Equal(t, "2500", string(history.Metrics.Extra["cash"]))

		periodReturn := 0.0
		require.NoError(t, json.Unmarshal(history.Metrics.Extra["period_return_pct"], &periodReturn))
		require.InDelta(t, 1.0, periodReturn, 0.0001)
		require.Contains(t, history.Metrics.Extra, "annualized_stdev")
		require.Contains(t, history.Metrics.Extra, "max_drawdown_pct")
	})

	t.Run("single point skips equity metrics", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := NewPortfolioHistoryService(alpacaRepository)
		ctx := context.Background()

		alpacaRepository.EXPECT().
			GetPortfolioHistory(ctx, 7).
			Return([]domain.HistoryPoint{{Date: "2024-01-01", Value: decimal.NewFromInt(1)}}, nil)
		alpacaRepository.EXPECT().
			GetAccount(ctx).
			Return(&alpaca.Account{Equity: decimal.NewFromInt(1)}, nil)

		history, err := handler.GetHistory(ctx, 7)
		require.NoError(t, err)
		require.Len(t, history.Equity, 1)
		require.NotContains(t, history.Metrics.Extra, "period_return_pct")
	})

	t.Run("history failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := NewPortfolioHistoryService(alpacaRepository)
		ctx := context.Background()

		alpacaRepository.EXPECT().
			GetPortfolioHistory(ctx, DefaultHistoryDays).
			Return(nil, fmt.Errorf("alpaca is down"))

		_, err := handler.GetHistory(ctx, DefaultHistoryDays)
		require.ErrorContains(t, err, "alpaca is down")
	})

	t.Run("account failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := NewPortfolioHistoryService(alpacaRepository)
		ctx := context.Background()

		alpacaRepository.EXPECT().
			GetPortfolioHistory(ctx, DefaultHistoryDays).
			Return([]domain.HistoryPoint{}, nil)
		alpacaRepository.EXPECT().
			GetAccount(ctx).
			Return(nil, fmt.Errorf("failed to get account: forbidden"))

		_, err := handler.GetHistory(ctx, DefaultHistoryDays)
		require.ErrorContains(t, err, "forbidden")
	})
}
