package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	validLogLevels  = []string{"DEBUG", "INFO", "WARN", "ERROR"}
	validLogFormats = []string{"text", "json"}
)

// Validate проверяет корректность конфигурации и сообщает обо всех ошибках сразу
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}
	if c.MaxConnections < 0 {
		errors = append(errors, "max connections cannot be negative")
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, "shutdown timeout must be at least 1 second")
	}

	// Валидация логирования
	if c.LogLevel != "" && !slices.Contains(validLogLevels, strings.ToUpper(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if c.LogFormat != "" && !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format: %s (valid: %s)",
			c.LogFormat, strings.Join(validLogFormats, ", ")))
	}
	if c.LogFile != "" {
		if c.LogMaxSizeMB < 1 {
			errors = append(errors, "log max size must be at least 1 MB")
		}
		if c.LogMaxBackups < 0 {
			errors = append(errors, "log max backups cannot be negative")
		}
	}

	// Валидация правил
	if c.MaxReferences < 0 {
		errors = append(errors, "max references cannot be negative")
	}
	if c.RulesWatch && c.RulesPath == "" {
		errors = append(errors, "rules watch requires rules path")
	}

	// Валидация журнала и connection pooling
	if c.JournalEnabled {
		if c.JournalDatabasePath == "" {
			errors = append(errors, "journal database path is required when journal is enabled")
		}
		if c.MaxOpenConns < 1 {
			errors = append(errors, "max open connections must be at least 1")
		}
		if c.MaxIdleConns < 1 {
			errors = append(errors, "max idle connections must be at least 1")
		}
		if c.MaxIdleConns > c.MaxOpenConns {
			errors = append(errors, "max idle connections cannot be greater than max open connections")
		}
		if c.ConnMaxLifetime < time.Second {
			errors = append(errors, "connection max lifetime must be at least 1 second")
		}
	}

	// Валидация ограничений запросов
	if c.RateLimitRPS < 0 {
		errors = append(errors, "rate limit rps cannot be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errors = append(errors, "rate limit burst must be at least 1")
	}
	if c.RequestMaxTextLength < 1 {
		errors = append(errors, "request max text length must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                 "9999",
		ShutdownTimeout:      10 * time.Second,
		LogLevel:             "INFO",
		LogFormat:            "text",
		LogMaxSizeMB:         100,
		LogMaxBackups:        3,
		MaxReferences:        3,
		JournalEnabled:       true,
		JournalDatabasePath:  "journal.db",
		MaxOpenConns:         10,
		MaxIdleConns:         3,
		ConnMaxLifetime:      5 * time.Minute,
		RateLimitRPS:         50,
		RateLimitBurst:       100,
		RequestMaxTextLength: 4096,
	}
}
