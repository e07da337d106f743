// @title Intent Router API
// @version 1.0
// @description Маршрутизация сообщений чата по намерениям и извлечение сущностей.

// @license.name Internal Use Only

// @host localhost:9999
// @BasePath /api
// @schemes http

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"intentrouter/database"
	"intentrouter/internal/config"
	"intentrouter/internal/logging"
	"intentrouter/internal/reload"
	"intentrouter/resolver"
	"intentrouter/router"
	"intentrouter/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("ошибка настройки логирования: %w", err)
	}
	defer logCloser.Close()

	logger.Info("═══════════════════════════════════════════════════════")
	logger.Info("Запуск Intent Router...")

	r, err := router.Load(cfg.RulesPath, cfg.MaxReferences, logger)
	if err != nil {
		return fmt.Errorf("ошибка загрузки правил: %w", err)
	}
	holder := router.NewHolder(r)
	logger.Info("rules loaded",
		"path", rulesSource(cfg.RulesPath),
		"version", r.Table().Version(),
		"rules", len(r.Table().Rules()))

	// Журнал создается здесь и закрывается здесь же, после остановки сервера
	var journal *database.JournalDB
	if cfg.JournalEnabled {
		journal, err = database.NewJournalDBWithConfig(cfg.JournalDatabasePath, cfg.DBConfig())
		if err != nil {
			return fmt.Errorf("ошибка открытия журнала: %w", err)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				logger.Error("failed to close journal", "error", err)
			}
		}()
		logger.Info("journal opened", "path", cfg.JournalDatabasePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RulesWatch {
		watcher, err := reload.New(cfg.RulesPath, cfg.MaxReferences, holder, logger)
		if err != nil {
			return fmt.Errorf("ошибка создания наблюдателя правил: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("ошибка запуска наблюдателя правил: %w", err)
		}
		defer watcher.Stop()
	}

	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Port
	serverConfig.MaxTextLength = cfg.RequestMaxTextLength
	serverConfig.RateLimitRPS = cfg.RateLimitRPS
	serverConfig.RateLimitBurst = cfg.RateLimitBurst
	serverConfig.MaxConnections = cfg.MaxConnections
	serverConfig.ShutdownTimeout = cfg.ShutdownTimeout

	srv := server.New(serverConfig, holder, journal, resolver.New(logger), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("═══════════════════════════════════════════════════════")
	logger.Info(fmt.Sprintf("✓ API доступно: http://localhost:%s/api", cfg.Port))
	logger.Info(fmt.Sprintf("✓ Swagger: http://localhost:%s/swagger/index.html", cfg.Port))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("⏹  Получен сигнал завершения, останавливаю сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	} else if err != nil {
		slog.Warn("shutdown timed out", "timeout", cfg.ShutdownTimeout)
	}

	if err := <-errCh; err != nil {
		return fmt.Errorf("ошибка сервера: %w", err)
	}
	logger.Info("✓ Сервер успешно остановлен")
	return nil
}

func rulesSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}
