package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/scratchboard/dashboard/handlers"
	"github.com/scratchboard/dashboard/internal/bootstrap"
	"github.com/scratchboard/dashboard/internal/config"
	"github.com/scratchboard/dashboard/internal/dashboard/handler"
	"github.com/scratchboard/dashboard/internal/sessions"
	"github.com/scratchboard/dashboard/internal/tokens"
	"github.com/scratchboard/dashboard/pkg/logger"
	"github.com/scratchboard/dashboard/pkg/metrics"
	"github.com/scratchboard/dashboard/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL / LOG_FORMAT are read again from config below; this covers config errors
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Infof("config loaded: backend=%s auth=%s redis=%v minio=%v", cfg.Store.Backend, cfg.Admin.AuthMode, cfg.Redis.Addr() != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestLogger(logger.With("http")), gin.Recovery())

	// Redis backs the shared rate limiter and JWT revocation when configured
	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		c := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = c.Close()
		} else {
			redisClient = c
			defer redisClient.Close()
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
		logger.Infof("rate limiter enabled: rps=%.2f burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && redisClient != nil)
	}

	repo, cleanup, err := bootstrap.OpenRepository(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}
	defer cleanup()

	svc, err := bootstrap.NewService(cfg, repo)
	if err != nil {
		logger.Fatalf("failed to build dashboard service: %v", err)
	}
	// bring the daily data up to date before the first request
	if _, err := svc.Refresh(ctx); err != nil {
		logger.Fatalf("initial refresh failed: %v", err)
	}

	auth, err := tokens.New(cfg, sessions.NewBlacklist(redisClient))
	if err != nil {
		logger.Fatalf("failed to build authenticator: %v", err)
	}
	if cfg.Admin.AuthMode == config.AuthModeJWT && redisClient == nil {
		logger.Warnf("JWT auth without Redis: logout cannot revoke tokens")
	}
	gate := middleware.AdminAuth(auth)

	handlers.RegisterHealth(r, startTime, map[string]handlers.Pinger{"store": svc})
	handlers.RegisterSwagger(r)
	handlers.RegisterPages(r, cfg.Server.StaticDir)
	handlers.NewAuthHandler(svc, auth).Register(r, gate)
	handler.New(svc).Register(r, gate)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting dashboard on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
