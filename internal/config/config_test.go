package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLogLevelValidation(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantError bool
	}{
		{"Valid DEBUG", "DEBUG", false},
		{"Valid INFO", "INFO", false},
		{"Valid WARN", "WARN", false},
		{"Valid ERROR", "ERROR", false},
		{"Valid lowercase debug", "debug", false},
		{"Invalid value", "INVALID", true},
		{"Empty string", "", false},
		{"Mixed case", "DeBuG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			cfg.LogLevel = tt.logLevel

			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"port not a number", func(c *Config) { c.Port = "http" }, "invalid port: http"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "port must be between 1 and 65535"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
		{"log file without size", func(c *Config) { c.LogFile = "router.log"; c.LogMaxSizeMB = 0 }, "log max size"},
		{"negative references", func(c *Config) { c.MaxReferences = -1 }, "max references cannot be negative"},
		{"watch without path", func(c *Config) { c.RulesWatch = true }, "rules watch requires rules path"},
		{"journal without path", func(c *Config) { c.JournalDatabasePath = "" }, "journal database path is required"},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 20 }, "max idle connections cannot be greater"},
		{"burst with limit", func(c *Config) { c.RateLimitBurst = 0 }, "rate limit burst"},
		{"text length", func(c *Config) { c.RequestMaxTextLength = 0 }, "request max text length"},
		{"shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "shutdown timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_JournalDisabledSkipsPool(t *testing.T) {
	cfg := GetDefaults()
	cfg.JournalEnabled = false
	cfg.JournalDatabasePath = ""
	cfg.MaxOpenConns = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := GetDefaults()
	cfg.Port = ""
	cfg.LogLevel = "LOUD"
	cfg.RequestMaxTextLength = -5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is required")
	assert.Contains(t, err.Error(), "invalid log level: LOUD")
	assert.Contains(t, err.Error(), "request max text length")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaults(), cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("MAX_REFERENCES", "5")
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REQUEST_MAX_TEXT_LENGTH", "512")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.MaxReferences)
	assert.False(t, cfg.JournalEnabled)
	assert.Equal(t, 90*time.Second, cfg.ConnMaxLifetime)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 512, cfg.RequestMaxTextLength)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router.yaml")
	content := "server_port: \"7070\"\n" +
		"rules_path: rules.yaml\n" +
		"rules_watch: true\n" +
		"journal_database_path: /var/lib/router/journal.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Переменные окружения имеют приоритет над файлом
	t.Setenv("SERVER_PORT", "6060")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Port)
	assert.Equal(t, "rules.yaml", cfg.RulesPath)
	assert.True(t, cfg.RulesWatch)
	assert.Equal(t, "/var/lib/router/journal.db", cfg.JournalDatabasePath)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	t.Setenv("SERVER_PORT", "0")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "invalid config")
}

func TestDBConfig(t *testing.T) {
	cfg := GetDefaults()
	db := cfg.DBConfig()
	assert.Equal(t, 10, db.MaxOpenConns)
	assert.Equal(t, 3, db.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, db.ConnMaxLifetime)
}
