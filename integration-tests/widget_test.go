package integration_tests

import (
	"context"
	"fmt"
	"net/http/httptest"
	"portfoliowidget/api"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/repository"
	"portfoliowidget/internal/service"
	"portfoliowidget/internal/widget"
	"portfoliowidget/pkg/portfolioclient"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func startApi(t *testing.T, alpacaRepository repository.AlpacaRepository) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := api.ApiHandler{
		PortfolioHistoryService: service.NewPortfolioHistoryService(alpacaRepository),
		Logger:                  logger.Nop(),
		HistoryDays:             service.DefaultHistoryDays,
	}
	server := httptest.NewServer(handler.InitializeRouterEngine())
	t.Cleanup(server.Close)
	return server
}

func mountAndWait(t *testing.T, baseURL string) *widget.PortfolioView {
	t.Helper()
	view := widget.NewPortfolioView(portfolioclient.New(baseURL))
	require.NoError(t, view.Mount(context.Background()))
	select {
	case <-view.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("widget never settled")
	}
	return view
}

func TestWidgetAgainstApi(t *testing.T) {
	t.Run("loads the mock account", func(t *testing.T) {
		server := startApi(t, NewMockAlpacaRepositoryForTests())
		view := mountAndWait(t, server.URL)

		state := view.State()
		require.Equal(t, widget.Loaded, state.Phase)
		require.Len(t, state.EquityPoints, service.DefaultHistoryDays)
		require.Equal(t, "2024-01-01", state.EquityPoints[0].Date)
		require.Contains(t, state.Metrics.Extra, "max_drawdown_pct")

		require.Equal(
			t,
			"Portfolio (Alpaca)\nEquity: $115000\n[Chart placeholder]\n",
			view.Render(),
		)
	})

	t.Run("alpaca failure shows an error", func(t *testing.T) {
		server := startApi(t, failingAlpacaHandler{err: fmt.Errorf("failed to get account: forbidden")})
		view := mountAndWait(t, server.URL)

		require.Equal(t, widget.Failed, view.State().Phase)
		require.Equal(
			t,
			"Portfolio (Alpaca)\nError: portfolio service returned 503: failed to get account: forbidden\n",
			view.Render(),
		)
	})
}
