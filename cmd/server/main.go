package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"glassworks/internal/app"
	"glassworks/internal/config"
	"glassworks/internal/ratelimit"
	"glassworks/internal/server"
	"glassworks/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{
		DatabaseURL:     cfg.DatabaseURL,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		SessionTTL:      sessionTTL,
		SessionStrategy: cfg.SessionStrategy,
		JWTSecret:       cfg.JWTSecret,
		AdminPassword:   cfg.AdminPassword,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	if err := appCore.BootstrapDefaultAdmin(); err != nil {
		log.Fatalf("failed to bootstrap admin user: %v", err)
	}

	var loginLimiter *ratelimit.FixedWindowLimiter
	if cfg.LoginRateLimitPerMinute > 0 {
		if cfg.RedisAddr != "" {
			loginLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
				cfg.RedisAddr, cfg.RedisPassword, "glassworks:ratelimit:login",
				cfg.LoginRateLimitPerMinute, time.Minute)
		} else {
			loginLimiter, err = ratelimit.NewMemoryFixedWindowLimiter(
				cfg.LoginRateLimitPerMinute, time.Minute)
		}
		if err != nil {
			log.Fatalf("failed to init login rate limiter: %v", err)
		}
	}

	httpServer := server.New(server.Config{
		App:          appCore,
		LoginLimiter: loginLimiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("workshop server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
