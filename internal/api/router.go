package api

import (
	"net/http"

	"trading-journal-go/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes onto a new gin engine.
func NewRouter(h *APIHandler, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	g := gin.New()
	g.Use(RequestID(), Logger(log.Named("http")), Metrics(m), Recovery(log), CORS())
	g.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})

	g.GET("/metrics", gin.WrapH(m.Handler()))

	base := g.Group("/api")
	base.GET("/health", h.Health)

	methods := base.Group("/methods")
	{
		methods.GET("/list", h.ListMethods)
		methods.GET("/detail/:id", h.GetMethod)
		methods.POST("/create", h.CreateMethod)
		methods.PUT("/update/:id", h.UpdateMethod)
		methods.DELETE("/delete/:id", h.DeleteMethod)
	}

	trades := base.Group("/trades")
	{
		trades.GET("/list", h.ListTrades)
		trades.GET("/detail/:id", h.GetTrade)
		trades.POST("/create", h.CreateTrade)
		trades.PUT("/update/:id", h.UpdateTrade)
		trades.DELETE("/delete/:id", h.DeleteTrade)
	}

	stats := base.Group("/stats")
	{
		stats.GET("", h.GetStats)
		stats.GET("/recent", h.RecentTrades)
	}

	return g
}
