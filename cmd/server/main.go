package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/resume-parser/api/handlers"
	"github.com/feichai0017/resume-parser/api/routes"
	"github.com/feichai0017/resume-parser/config"
	"github.com/feichai0017/resume-parser/internal/agent"
	"github.com/feichai0017/resume-parser/internal/service/document"
	"github.com/feichai0017/resume-parser/internal/utils/validator"
	"github.com/feichai0017/resume-parser/pkg/cache"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

func main() {
	serverCfg := config.GetServerConfig()
	logCfg := config.GetLogConfig()

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(logCfg.Level),
		logger.WithEncoding(logCfg.Encoding),
		logger.WithOutputPaths(logCfg.OutputPaths),
		logger.WithDevelopment(logCfg.Development),
		logger.WithService("resume-parser"),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	// init extractors
	factory, err := agent.NewProcessorFactory(ctx, log, config.GetTextractConfig())
	if err != nil {
		log.Fatal("Failed to create processor factory", logger.Error(err))
	}
	defer factory.Close()

	// optional text cache
	var textCache document.Cache
	if cacheCfg := config.GetCacheConfig(); cacheCfg.Enabled() {
		redisCache, err := cache.NewRedisCache(ctx, &cache.Config{
			Addr:     cacheCfg.RedisAddr,
			Password: cacheCfg.RedisPassword,
			DB:       cacheCfg.RedisDB,
			TTL:      cacheCfg.TTL,
		})
		if err != nil {
			log.Warn("Redis cache unavailable, continuing without it", logger.Error(err))
		} else {
			defer redisCache.Close()
			textCache = redisCache
			log.Info("Redis cache enabled", logger.String("addr", cacheCfg.RedisAddr))
		}
	}

	docService := document.NewService(factory, textCache, log)

	// init handlers
	gin.SetMode(gin.ReleaseMode)
	h := handlers.NewHandlers(docService, log)
	r := gin.New()
	routes.SetupRoutes(r, h, log, routes.Options{
		AllowedOrigins: serverCfg.AllowedOrigins,
		Validator:      validator.NewDocumentValidator(nil),
	})

	srv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, quit, serverCfg.ShutdownTimeout, log); err != nil {
		log.Error("Server error", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

// serve runs srv until a signal arrives on quit, then shuts it down within
// timeout. A listener failure returns immediately.
func serve(srv *http.Server, quit <-chan os.Signal, timeout time.Duration, log logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
