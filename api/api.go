package api

import (
	"fmt"
	"portfoliowidget/internal/logger"
	"portfoliowidget/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	PortfolioHistoryService service.PortfolioHistoryService
	Logger                  *zap.SugaredLogger
	// JwtDecodeToken enables bearer auth on /api/v1 when set
	JwtDecodeToken string
	HistoryDays    int
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to the portfolio widget api"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware(m.JwtDecodeToken))
	v1.GET("/portfolio/alpaca/history", m.getAlpacaPortfolioHistory)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorw("request failed", "status", code, "error", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	base := m.Logger
	if base == nil {
		base = zap.S()
	}
	log := base.With(
		"requestID", uuid.NewString(),
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

	start := time.Now().UTC()
	c.Next()

	log.Infow("request completed",
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
	)
}
