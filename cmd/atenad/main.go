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

	"go.uber.org/zap"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/handlers"
	"github.com/cardbridge/atena/internal/kana"
	"github.com/cardbridge/atena/internal/platform/config"
	"github.com/cardbridge/atena/internal/platform/observability"
	"github.com/cardbridge/atena/internal/services"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("atenad")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store, err := dict.NewStore(dict.Paths{Dir: cfg.Dictionaries.Dir}, logger.Named("dict"))
	if err != nil {
		var loadErr *dict.LoadError
		if errors.As(err, &loadErr) {
			logger.Fatal("failed to load dictionaries", zap.String("file", loadErr.File), zap.Error(loadErr.Err))
		}
		logger.Fatal("failed to load dictionaries", zap.Error(err))
	}
	logger.Info("dictionaries ready", zap.String("summary", dict.Describe(store.Current())))

	var converter kana.HeuristicConverter
	if cfg.Conversion.HeuristicKana {
		kagome, err := kana.NewKagomeConverter()
		if err != nil {
			logger.Fatal("failed to initialise kana converter", zap.Error(err))
		}
		converter = kagome
	} else {
		logger.Info("heuristic kana derivation disabled")
		converter = kana.DisabledConverter{}
	}

	convertService, err := services.NewConvertService(services.ConvertServiceDeps{
		Dictionaries: store,
		Converter:    converter,
		Logger:       logger.Named("convert"),
	})
	if err != nil {
		logger.Fatal("failed to initialise convert service", zap.Error(err))
	}

	conversionHandlers := handlers.NewConversionHandlers(convertService, cfg.Conversion.MaxUploadBytes).
		WithRateLimit(cfg.Conversion.RatePerMinute, time.Minute)
	dictionaryHandlers := handlers.NewDictionaryHandlers(store)
	healthHandlers := handlers.NewHealthHandlers(store)

	httpLogger := logger.Named("http")
	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(httpLogger),
		observability.RequestIDMiddleware(),
		observability.RecoveryMiddleware(httpLogger),
		observability.RequestLoggerMiddleware(),
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithConversionRoutes(conversionHandlers.Routes),
		handlers.WithDictionaryRoutes(dictionaryHandlers.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := httpLogger.With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("atena conversion api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
