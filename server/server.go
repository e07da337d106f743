package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"intentrouter/database"
	"intentrouter/resolver"
	"intentrouter/router"
	apperrors "intentrouter/server/errors"
	"intentrouter/server/handlers"
)

// Config настройки HTTP сервера
type Config struct {
	Port string
	// MaxTextLength ограничение длины текста сообщения в символах
	MaxTextLength  int
	RateLimitRPS   float64
	RateLimitBurst int
	// MaxConnections ограничение одновременных соединений, 0 без ограничения
	MaxConnections int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		Port:            "9999",
		MaxTextLength:   handlers.DefaultMaxTextLength,
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server HTTP API маршрутизатора намерений.
// Журнал принадлежит вызывающему: сервер только пишет в него и не закрывает.
type Server struct {
	config       Config
	holder       *router.Holder
	journal      handlers.JournalStore
	resolver     *resolver.Resolver
	errorMetrics *apperrors.ErrorMetricsCollector
	logger       *slog.Logger

	handlerOnce sync.Once
	httpHandler http.Handler
	httpServer  *http.Server
	mu          sync.Mutex
}

// New создает сервер. journal может быть nil, если журнал отключен.
func New(config Config, holder *router.Holder, journal *database.JournalDB, res *resolver.Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if res == nil {
		res = resolver.New(logger)
	}

	s := &Server{
		config:       config,
		holder:       holder,
		resolver:     res,
		errorMetrics: apperrors.NewErrorMetricsCollector(100),
		logger:       logger.With("component", "server"),
	}
	// Интерфейс с nil указателем внутри не равен nil
	if journal != nil {
		s.journal = journal
	}
	return s
}

// ErrorMetrics сборщик метрик ошибок API
func (s *Server) ErrorMetrics() *apperrors.ErrorMetricsCollector {
	return s.errorMetrics
}
