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

	"github.com/dkhalizov/movielog/internal/config"
	"github.com/dkhalizov/movielog/internal/handler"
	"github.com/dkhalizov/movielog/internal/repository"
	"github.com/dkhalizov/movielog/internal/service"
	"github.com/dkhalizov/movielog/internal/tmdb"
	"github.com/dkhalizov/movielog/internal/utils"
	"github.com/dkhalizov/movielog/pkg/observability"
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

	jwtManager := utils.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	metadataClient := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout.Duration)
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(repos.User, jwtManager, cfg.Security.BCryptCost)
	userService := service.NewUserService(repos.User)
	movieService := service.NewMovieService(repos.Movie, metadataClient, infra.Logger())
	watchlistService := service.NewWatchlistService(repos.Watchlist, movieService)
	ratingService := service.NewRatingService(repos.Rating, movieService)

	handlers := &handlers{
		auth:      handler.NewAuthHandler(authService),
		user:      handler.NewUserHandler(userService),
		movie:     handler.NewMovieHandler(movieService),
		watchlist: handler.NewWatchlistHandler(watchlistService),
		rating:    handler.NewRatingHandler(ratingService),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, handlers, authService, rateLimiter, healthChecker, infra.MetricsHandler())

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

type handlers struct {
	auth      *handler.AuthHandler
	user      *handler.UserHandler
	movie     *handler.MovieHandler
	watchlist *handler.WatchlistHandler
	rating    *handler.RatingHandler
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h *handlers,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	authRequired := handler.AuthMiddleware(authService)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				h.auth.Register,
			)
			auth.POST("/login",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				h.auth.Login,
			)
			auth.POST("/refresh", h.auth.Refresh)
		}

		users := api.Group("/users", authRequired)
		{
			users.GET("/profile", h.user.GetProfile)
			users.PUT("/profile", h.user.UpdateProfile)
			users.GET("/watchlist", h.watchlist.List)
			users.POST("/watchlist", h.watchlist.Add)
			users.DELETE("/watchlist/:movieId", h.watchlist.Remove)
			users.GET("/ratings", h.rating.ListByUser)
		}

		movies := api.Group("/movies")
		{
			movies.GET("/search", h.movie.Search)
			movies.GET("/popular", h.movie.Popular)
			movies.GET("/:id", h.movie.Details)
			movies.GET("/:id/similar", h.movie.Similar)
			movies.GET("/:id/ratings", h.rating.ListByMovie)
			movies.POST("/:id/ratings", authRequired, h.rating.Upsert)
			movies.DELETE("/:id/ratings", authRequired, h.rating.Delete)
		}
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
