package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/anilist"
	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/handler"
	"github.com/animeworld/animeworld-api/internal/recognition"
	"github.com/animeworld/animeworld-api/internal/repository"
	"github.com/animeworld/animeworld-api/internal/service"
	"github.com/animeworld/animeworld-api/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	catalog := anilist.NewClient(cfg.Catalog, infra.Logger())
	mediaCache := service.NewMediaCache(infra.Redis(), infra.Logger())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	userService := service.NewUserService(repos.User, infra.Logger())
	mediaService := service.NewMediaService(catalog, mediaCache, cfg.Catalog)
	analyzer := recognition.NewAnalyzer(cfg.Recognition, infra.Logger())

	userHandler := handler.NewUserHandler(userService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	analyzeHandler := handler.NewAnalyzeHandler(analyzer, catalog, infra.Logger())

	router := gin.Default()
	router.Use(otelgin.Middleware("animeworld-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, userHandler, mediaHandler, analyzeHandler, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	mediaHandler *handler.MediaHandler,
	analyzeHandler *handler.AnalyzeHandler,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	// Search and uploads hit metered upstream APIs, so they are the only
	// rate limited routes.
	limited := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthChecker.Handler)

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateOrTouch)
			users.GET("", userHandler.List)
			users.GET("/:externalId", userHandler.GetByExternalID)
		}

		media := api.Group("/media")
		{
			media.GET("/trending", mediaHandler.Trending)
			media.GET("/search", limited, mediaHandler.Search)
			media.POST("/filter", mediaHandler.Filter)
			media.GET("/upcoming", mediaHandler.Upcoming)
			media.GET("/schedule", mediaHandler.Schedule)
			media.GET("/:id", mediaHandler.ByID)
			media.GET("/:id/recommendations", mediaHandler.Recommendations)
			media.GET("/:id/episodes", mediaHandler.Episodes)
			media.GET("/:id/chapters", mediaHandler.Chapters)
		}

		api.GET("/studios", mediaHandler.Studios)
		api.POST("/analyze", limited, analyzeHandler.Analyze)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
