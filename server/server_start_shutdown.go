package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"

	"intentrouter/server/handlers"
	"intentrouter/server/middleware"
)

// Handler возвращает HTTP обработчик со всеми маршрутами. Строится один раз.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})
	return s.httpHandler
}

func (s *Server) buildHTTPHandler() http.Handler {
	// Режим можно переопределить через GIN_MODE
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *rate.Limiter
	if s.config.RateLimitRPS > 0 {
		burst := max(s.config.RateLimitBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(s.config.RateLimitRPS), burst)
	}

	engine := gin.New()
	engine.Use(middleware.GinRequestIDMiddleware())
	engine.Use(middleware.GinErrorMetricsMiddleware(s.errorMetrics))
	engine.Use(middleware.GinLoggerMiddleware(s.logger))
	engine.Use(middleware.GinRecoveryMiddleware())
	engine.Use(middleware.GinCORSMiddleware())
	engine.Use(middleware.GinGzipMiddleware())

	handlers.RegisterSwaggerRoutes(engine, "localhost:"+s.config.Port)

	base := handlers.NewBaseHandler(s.config.MaxTextLength, s.logger)
	health := handlers.NewHealthHandler(s.holder, s.journal)
	routing := handlers.NewRoutingHandler(base, s.holder, s.journal)
	resolve := handlers.NewResolveHandler(base, s.resolver)
	journal := handlers.NewJournalHandler(base, s.journal)
	errorMetrics := handlers.NewErrorMetricsHandler(base, s.errorMetrics)

	engine.GET("/health", health.HandleHealth)

	api := engine.Group("/api")
	api.Use(middleware.GinRateLimitMiddleware(limiter))
	{
		api.GET("/intents", routing.HandleIntents)
		api.POST("/classify", routing.HandleClassify)
		api.POST("/extract", routing.HandleExtract)
		api.POST("/route", routing.HandleRoute)
		api.POST("/resolve", resolve.HandleResolve)
		api.GET("/journal/recent", journal.HandleRecent)
		api.GET("/journal/stats", journal.HandleStats)
		api.GET("/errors/stats", errorMetrics.HandleErrorMetrics)
	}

	return engine
}

// Start слушает порт из конфигурации и блокируется до остановки сервера
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.config.Port, err)
	}
	return s.Serve(listener)
}

// Serve обслуживает запросы на готовом listener. Возвращает nil после Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	if s.config.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.config.MaxConnections)
	}

	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info("HTTP server started", "addr", listener.Addr().String())
	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь завершения активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	s.logger.Info("Initiating graceful shutdown...")
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	s.logger.Info("Graceful shutdown completed")
	return nil
}
