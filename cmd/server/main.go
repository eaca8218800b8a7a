// Package main runs the site backend HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/config"
	"github.com/mediaarise/backend/internal/app"
	"github.com/mediaarise/backend/internal/contact"
	"github.com/mediaarise/backend/internal/content"
	"github.com/mediaarise/backend/internal/middleware"
	"github.com/mediaarise/backend/internal/registrations"
	"github.com/mediaarise/backend/internal/webhook"
	"github.com/mediaarise/backend/pkg/cache"
	"github.com/mediaarise/backend/pkg/redis"
	"github.com/mediaarise/backend/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := app.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()
	store := app.NewSanityClient(cfg, logger)
	if !store.Configured() {
		logger.Warn("content store not configured; content and form endpoints will fail")
	}
	sheet := app.NewSheetSync(ctx, cfg, logger)

	var contentCache *cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("content cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			contentCache = cache.New(rdb, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second, logger)
		}
	}

	// Contact form
	contactHandler := contact.NewHandler(contact.NewService(store), logger)

	// Registrations (create, lookup, participant view)
	registrationRepo := registrations.NewRepository(store)
	registrationSvc := registrations.NewService(registrationRepo, sheet, cfg.Site.BaseURL, logger)
	registrationHandler := registrations.NewHandler(registrationSvc, logger)

	// Public content reads
	contentHandler := content.NewHandler(store, contentCache, logger)

	// Content store change notifications
	webhookHandler := webhook.NewHandler(sheet, cfg.Webhook.Secret, cfg.Webhook.MaxBodyBytes, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/contact", contactHandler.Submit)

		api.POST("/register", registrationHandler.Register)
		api.POST("/register/lookup", registrationHandler.Lookup)
		api.GET("/register/participant", registrationHandler.Participant)

		api.GET("/programs", contentHandler.ListPrograms)
		api.GET("/content/:name", contentHandler.Get)

		// Signature checked in the handler against the raw body.
		api.POST("/sanity-webhook", webhookHandler.Receive)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
