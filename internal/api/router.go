package api

import (
	"context"
	"net/http"
	"time"

	groceryHandler "github.com/ryan-miles/meals.stellation.one/internal/api/handlers/grocery"
	"github.com/ryan-miles/meals.stellation.one/internal/api/handlers/health"
	recipesHandler "github.com/ryan-miles/meals.stellation.one/internal/api/handlers/recipes"
	scheduleHandler "github.com/ryan-miles/meals.stellation.one/internal/api/handlers/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/api/middleware"
	"github.com/ryan-miles/meals.stellation.one/internal/core/ai/gemini"
	"github.com/ryan-miles/meals.stellation.one/internal/core/grocery"
	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 60 * time.Second
	// Request body limit (1MB); raw recipe text is small.
	maxBodySize = 1 << 20
)

// SetupRouter wires middleware, services and routes into a gin engine.
func SetupRouter(cfg *config.Config, st store.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequireOrigin(cfg.CORS.AllowedOrigin))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	// Per-request timeout and config injection.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	normalizer := recipe.NewNormalizer(gemini.NewClient(&cfg.Gemini), st)

	var invalidator *schedule.Invalidator
	if cfg.CDN.Enabled && cfg.CDN.InvalidationURL != "" {
		invalidator = schedule.NewInvalidator(cfg.CDN.InvalidationURL)
	}
	generator := schedule.NewGenerator(st, invalidator)

	recipesH := recipesHandler.NewHandler(normalizer, st)
	scheduleH := scheduleHandler.NewHandler(generator, st)
	groceryH := groceryHandler.NewHandler(st, grocery.Options{
		ShowEmptyGroups: cfg.Grocery.ShowEmptyGroups,
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/normalize", recipesH.HandleNormalize)
			recipeGroup.GET("", recipesH.HandleList)
			recipeGroup.GET("/:id", recipesH.HandleGet)
		}

		scheduleGroup := api.Group("/schedule")
		{
			// Both methods trigger generation; everything else gets 405
			// from HandleMethodNotAllowed above.
			scheduleGroup.GET("/generate", scheduleH.HandleGenerate)
			scheduleGroup.POST("/generate", scheduleH.HandleGenerate)
			scheduleGroup.GET("", scheduleH.HandleGet)
		}

		api.GET("/week", scheduleH.HandleWeek)
		api.GET("/grocery", groceryH.HandleGet)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("allowed_origin", cfg.CORS.AllowedOrigin),
		zap.Bool("cdn_invalidation", invalidator != nil),
		zap.Duration("timeout", timeoutDuration),
	)

	return router, nil
}
