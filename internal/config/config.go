package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"intentrouter/database"
)

// Config конфигурация процесса
type Config struct {
	// Сервер
	Port            string        `json:"port"`
	MaxConnections  int           `json:"max_connections"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Логирование
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`

	// Правила
	RulesPath     string `json:"rules_path"`
	RulesWatch    bool   `json:"rules_watch"`
	MaxReferences int    `json:"max_references"`

	// Журнал решений
	JournalEnabled      bool   `json:"journal_enabled"`
	JournalDatabasePath string `json:"journal_database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Ограничения запросов
	RateLimitRPS         float64 `json:"rate_limit_rps"`
	RateLimitBurst       int     `json:"rate_limit_burst"`
	RequestMaxTextLength int     `json:"request_max_text_length"`
}

// Ключи конфигурации совпадают с именами переменных окружения в нижнем регистре
const (
	keyServerPort           = "server_port"
	keyServerMaxConnections = "server_max_connections"
	keyShutdownTimeout      = "shutdown_timeout"
	keyLogLevel             = "log_level"
	keyLogFormat            = "log_format"
	keyLogFile              = "log_file"
	keyLogMaxSizeMB         = "log_max_size_mb"
	keyLogMaxBackups        = "log_max_backups"
	keyRulesPath            = "rules_path"
	keyRulesWatch           = "rules_watch"
	keyMaxReferences        = "max_references"
	keyJournalEnabled       = "journal_enabled"
	keyJournalDatabasePath  = "journal_database_path"
	keyDBMaxOpenConns       = "db_max_open_conns"
	keyDBMaxIdleConns       = "db_max_idle_conns"
	keyDBConnMaxLifetime    = "db_conn_max_lifetime"
	keyRateLimitRPS         = "rate_limit_rps"
	keyRateLimitBurst       = "rate_limit_burst"
	keyRequestMaxTextLength = "request_max_text_length"
)

func setDefaults(v *viper.Viper) {
	d := GetDefaults()

	v.SetDefault(keyServerPort, d.Port)
	v.SetDefault(keyServerMaxConnections, d.MaxConnections)
	v.SetDefault(keyShutdownTimeout, d.ShutdownTimeout)
	v.SetDefault(keyLogLevel, d.LogLevel)
	v.SetDefault(keyLogFormat, d.LogFormat)
	v.SetDefault(keyLogFile, d.LogFile)
	v.SetDefault(keyLogMaxSizeMB, d.LogMaxSizeMB)
	v.SetDefault(keyLogMaxBackups, d.LogMaxBackups)
	v.SetDefault(keyRulesPath, d.RulesPath)
	v.SetDefault(keyRulesWatch, d.RulesWatch)
	v.SetDefault(keyMaxReferences, d.MaxReferences)
	v.SetDefault(keyJournalEnabled, d.JournalEnabled)
	v.SetDefault(keyJournalDatabasePath, d.JournalDatabasePath)
	v.SetDefault(keyDBMaxOpenConns, d.MaxOpenConns)
	v.SetDefault(keyDBMaxIdleConns, d.MaxIdleConns)
	v.SetDefault(keyDBConnMaxLifetime, d.ConnMaxLifetime)
	v.SetDefault(keyRateLimitRPS, d.RateLimitRPS)
	v.SetDefault(keyRateLimitBurst, d.RateLimitBurst)
	v.SetDefault(keyRequestMaxTextLength, d.RequestMaxTextLength)
}

// LoadConfig загружает конфигурацию из переменных окружения и необязательного файла.
// Переменные окружения имеют приоритет над файлом. Формат файла определяется по расширению.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config := &Config{
		Port:            v.GetString(keyServerPort),
		MaxConnections:  v.GetInt(keyServerMaxConnections),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),

		LogLevel:      strings.ToUpper(v.GetString(keyLogLevel)),
		LogFormat:     strings.ToLower(v.GetString(keyLogFormat)),
		LogFile:       v.GetString(keyLogFile),
		LogMaxSizeMB:  v.GetInt(keyLogMaxSizeMB),
		LogMaxBackups: v.GetInt(keyLogMaxBackups),

		RulesPath:     v.GetString(keyRulesPath),
		RulesWatch:    v.GetBool(keyRulesWatch),
		MaxReferences: v.GetInt(keyMaxReferences),

		JournalEnabled:      v.GetBool(keyJournalEnabled),
		JournalDatabasePath: v.GetString(keyJournalDatabasePath),

		MaxOpenConns:    v.GetInt(keyDBMaxOpenConns),
		MaxIdleConns:    v.GetInt(keyDBMaxIdleConns),
		ConnMaxLifetime: v.GetDuration(keyDBConnMaxLifetime),

		RateLimitRPS:         v.GetFloat64(keyRateLimitRPS),
		RateLimitBurst:       v.GetInt(keyRateLimitBurst),
		RequestMaxTextLength: v.GetInt(keyRequestMaxTextLength),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// DBConfig настройки пула соединений журнала
func (c *Config) DBConfig() database.DBConfig {
	return database.DBConfig{
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}
