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

	"delivery-chain/config"
	"delivery-chain/handlers"
	"delivery-chain/logger"
	"delivery-chain/middleware"
	"delivery-chain/routes"
	"delivery-chain/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := config.OpenStorage(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer kv.Close()

	facade, err := session.New(ctx, kv, session.WithLogger(log.Component("session")))
	if err != nil {
		log.Fatal().Err(err).Msg("load state")
	}
	go session.NewRefresher(facade, cfg.RefreshInterval).Run(ctx)

	gin.SetMode(cfg.HTTP.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger(log.Component("http")))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Delivery Chain Tracking API",
			"version": "1.0.0",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "📦 Welcome to the Delivery Chain Tracking API",
			"docs":    "/api/status-presets",
			"health":  "/health",
			"roles":   []string{"customer", "rider", "admin"},
			"demo": gin.H{
				"customer": "customer@demo.com / customer123",
				"rider":    "rider@demo.com / rider123",
			},
		})
	})

	secret := []byte(cfg.JWT.Secret)
	h := handlers.New(facade, secret, cfg.JWT.Expiration, log.Component("handlers"))
	routes.SetupRoutes(r, h, secret, facade)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// no WriteTimeout: /api/stream stays open
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
