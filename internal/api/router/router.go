package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/config"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/api/handler"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/api/middleware"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/redis"
)

// Setup builds the Gin engine with all middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBytes))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		faculty := v1.Group("/faculty")
		{
			faculty.POST("/upload", h.Faculty.Upload)
			faculty.POST("/enrich", h.Faculty.Enrich)
			faculty.GET("/search", h.Faculty.Search)
		}

		courses := v1.Group("/courses")
		{
			courses.POST("/upload", h.Course.Upload)
			courses.GET("/search", h.Course.Search)
			courses.GET("/export", h.Course.Export)

			// Secret-gated record endpoints get a guessing throttle.
			secretLimited := courses.Group("")
			secretLimited.Use(middleware.RateLimit(rdb, 10, time.Minute))
			{
				secretLimited.POST("/:id/lookup", h.Course.Lookup)
				secretLimited.POST("/:id/apply", h.Course.Apply)
			}
		}
	}

	return r
}
