package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/zenkitchen/backend/internal/api"
	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/metrics"
	"github.com/pageza/zenkitchen/backend/internal/middleware"
)

// Dependencies is everything the router needs. DB, Redis and Metrics may be
// nil, in which case the matching check or endpoint is left out.
type Dependencies struct {
	Services    api.Services
	CORSOrigins []string
	DB          *gorm.DB
	Redis       *redis.Client
	Metrics     *metrics.Metrics
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	router.Use(middleware.CORS(deps.CORSOrigins))

	router.GET("/health", healthHandler(deps.DB, deps.Redis))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api.SetupAPI(router, deps.Services)
	return router
}

func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		healthy := true
		if db != nil {
			checks["database"] = "ok"
			if err := database.HealthCheck(ctx, db); err != nil {
				checks["database"] = err.Error()
				healthy = false
			}
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			}
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
	}
}
