package api

import (
	"net/http"
	"portfoliowidget/internal/service"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getAlpacaPortfolioHistory(c *gin.Context) {
	days := m.HistoryDays
	if days <= 0 {
		days = service.DefaultHistoryDays
	}

	history, err := m.PortfolioHistoryService.GetHistory(c.Request.Context(), days)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusOK, history)
}
