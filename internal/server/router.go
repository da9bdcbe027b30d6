package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"storefront/internal/database"
	"storefront/internal/service"
)

type RouterConfig struct {
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *redis.Client
	RateLimit   int
	RateWindow  time.Duration
}

func NewRouter(svc service.OrderService, db database.Service, cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	orders := NewOrderHandler(svc)

	create := []gin.HandlerFunc{orders.CreateOrder}
	if cfg.RateLimiter != nil {
		create = []gin.HandlerFunc{RateLimit(cfg.RateLimiter, cfg.RateLimit, cfg.RateWindow), orders.CreateOrder}
	}

	r.POST("/orders", create...)
	r.GET("/orders", orders.ListOrders)
	r.GET("/orders/:id", orders.GetOrder)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, db.Health())
	})

	return r
}
