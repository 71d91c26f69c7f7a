package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"portfoliowidget/internal/domain"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/service"
	mock_service "portfoliowidget/internal/service/mocks"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T, jwtSecret string) (ApiHandler, *mock_service.MockPortfolioHistoryService) {
	ctrl := gomock.NewController(t)
	historyService := mock_service.NewMockPortfolioHistoryService(ctrl)
	return ApiHandler{
		PortfolioHistoryService: historyService,
		Logger:                  logger.Nop(),
		JwtDecodeToken:          jwtSecret,
	}, historyService
}

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   subject,
		ExpiresAt: expiresAt.Unix(),
		IssuedAt:  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestApiHandler_getAlpacaPortfolioHistory(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		handler, historyService := newTestHandler(t, "")
		metrics := domain.NewMetrics()
		metrics.SetEquity(decimal.NewFromInt(1050))
		require.NoError(t, metrics.SetExtra("currency", "USD"))

		historyService.EXPECT().
			GetHistory(gomock.Any(), service.DefaultHistoryDays).
			Return(&domain.PortfolioHistory{
				Equity:  []domain.HistoryPoint{{Date: "2024-01-01", Value: decimal.NewFromInt(1000)}},
				Metrics: metrics,
			}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/alpaca/history", nil)
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(
			t,
			`{"equity":[{"date":"2024-01-01","value":1000}],"metrics":{"equity":1050,"currency":"USD"}}`,
			w.Body.String(),
		)
	})

	t.Run("service failure is a 503", func(t *testing.T) {
		handler, historyService := newTestHandler(t, "")
		handler.HistoryDays = 7

		historyService.EXPECT().
			GetHistory(gomock.Any(), 7).
			Return(nil, fmt.Errorf("failed to get account: forbidden"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/alpaca/history", nil)
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "failed to get account: forbidden", body["error"])
	})
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "shh"

	t.Run("missing token", func(t *testing.T) {
		handler, _ := newTestHandler(t, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/alpaca/history", nil)
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		handler, _ := newTestHandler(t, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/alpaca/history", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other", "user-1", time.Now().Add(time.Hour)))
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := parseUserJWT(signToken(t, secret, "user-1", time.Now().Add(-time.Hour)), secret)
		require.Error(t, err)
	})

	t.Run("valid token", func(t *testing.T) {
		handler, historyService := newTestHandler(t, secret)
		historyService.EXPECT().
			GetHistory(gomock.Any(), service.DefaultHistoryDays).
			Return(&domain.PortfolioHistory{Equity: []domain.HistoryPoint{}, Metrics: domain.NewMetrics()}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/alpaca/history", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "user-1", time.Now().Add(time.Hour)))
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"equity":[],"metrics":{"equity":null}}`, w.Body.String())
	})

	t.Run("root is public", func(t *testing.T) {
		handler, _ := newTestHandler(t, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.InitializeRouterEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})
}
