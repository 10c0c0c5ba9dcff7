package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lara783/lensandlaunch.com-sub001/common/logger"
	"github.com/lara783/lensandlaunch.com-sub001/common/otel"
	"github.com/lara783/lensandlaunch.com-sub001/core/config"
	"github.com/lara783/lensandlaunch.com-sub001/core/db"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	httprouter "github.com/lara783/lensandlaunch.com-sub001/internal/http/router"
	"github.com/lara783/lensandlaunch.com-sub001/internal/oauthstate"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "portal integrations starting",
		"env", cfg.Env,
		"service", cfg.OTel.ServiceName,
		"meta_enabled", cfg.Meta.Enabled(),
		"tiktok_enabled", cfg.TikTok.Enabled(),
	)

	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.DB.DSN); err != nil {
			slog.ErrorContext(ctx, "failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected")
	}

	states := newStateManager(ctx, cfg, redisClient)

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, states, cfg)

	authCtx, stopAuth := context.WithCancel(ctx)
	defer stopAuth()
	auth, err := middleware.NewAuthenticator(authCtx, cfg.Auth, stores.Profiles())
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize authenticator", "error", err)
		os.Exit(1)
	}
	if !cfg.Auth.Enabled() {
		slog.WarnContext(ctx, "no AUTH_JWT_SECRET or AUTH_JWKS_URL set, protected routes will answer 500")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, auth)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// newStateManager returns nil without OAUTH_STATE_SECRET; Connect and Callback
// then answer 500 while the rest of the API keeps working.
func newStateManager(ctx context.Context, cfg config.Config, redisClient *redis.Client) *oauthstate.Manager {
	if !cfg.OAuthState.Enabled() {
		slog.WarnContext(ctx, "OAUTH_STATE_SECRET not set, oauth connect flows disabled")
		return nil
	}

	var nonces oauthstate.NonceStore
	if redisClient != nil {
		nonces = oauthstate.NewRedisNonceStore(redisClient)
	} else {
		slog.WarnContext(ctx, "REDIS_URL not set, oauth state nonces are tracked in memory")
		nonces = oauthstate.NewMemoryNonceStore(0, cfg.OAuthState.TTL)
	}
	states := oauthstate.NewManager(cfg.OAuthState.Secret, cfg.OAuthState.TTL, nonces)
	slog.InfoContext(ctx, "oauth state signing enabled", "ttl", states.TTL())
	return states
}

func setupRouter(cfg config.Config, services *service.Services, auth *middleware.Authenticator) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	httprouter.SetupRoutes(router, services, auth, httprouter.RouterConfig{
		AppBaseURL: cfg.AppBaseURL,
	})

	return router
}
