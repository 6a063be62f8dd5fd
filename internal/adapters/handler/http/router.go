package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/concentria/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/concentria/internal/core/services"

	_ "github.com/comitanigiacomo/concentria/docs"
)

const defaultRateLimit = 100

type RouterDependencies struct {
	DashboardHandler *DashboardHandler
	EntryHandler     *EntryHandler
	ExportHandler    *ExportHandler
	TokenService     *services.TokenService
	DB               *sqlx.DB
	Redis            *redis.Client
	RateLimit        int
	StartTime        time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		limit := deps.RateLimit
		if limit <= 0 {
			limit = defaultRateLimit
		}
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, limit, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode, status := http.StatusOK, "ok"
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode, status = http.StatusServiceUnavailable, "error"
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	deps.DashboardHandler.RegisterPages(router)

	apiV1 := router.Group("/api/v1")

	deps.DashboardHandler.RegisterRoutes(apiV1)
	deps.ExportHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))

	deps.EntryHandler.RegisterRoutes(apiV1, protected)

	return router
}
