package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Ограничения выборки последних записей
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// DBConfig конфигурация пула соединений
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JournalEntry одна запись журнала классификации
type JournalEntry struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id,omitempty"`
	Text             string    `json:"text"`
	Intent           string    `json:"intent"`
	Rule             int       `json:"rule"`
	MatchKind        string    `json:"match_kind,omitempty"`
	PrimaryReference string    `json:"primary_reference,omitempty"`
	Numbers          []int     `json:"numbers"`
	Category         string    `json:"category,omitempty"`
	Passed           bool      `json:"passed"`
	Reason           string    `json:"reason,omitempty"`
	Generation       uint64    `json:"generation"`
	CreatedAt        time.Time `json:"created_at"`
}

// IntentCount количество записей с намерением
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// JournalDB журнал решений маршрутизатора в SQLite.
// Создается в main, передается потребителям и закрывается владельцем через Close.
type JournalDB struct {
	conn *sql.DB
}

// NewJournalDB открывает журнал с настройками пула по умолчанию
func NewJournalDB(dbPath string) (*JournalDB, error) {
	config := DBConfig{}

	// Для in-memory SQLite требуется ровно одно соединение,
	// иначе каждое новое соединение получит пустую БД без таблиц
	if isInMemory(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewJournalDBWithConfig(dbPath, config)
}

// isInMemory определяет, что путь относится к in-memory SQLite
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}

	// Формат file:memdb?mode=memory&cache=shared также хранит БД в памяти
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewJournalDBWithConfig открывает журнал с заданной конфигурацией пула
func NewJournalDBWithConfig(dbPath string, config DBConfig) (*JournalDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if isInMemory(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	// SQLite плохо справляется с большим количеством одновременных соединений
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	// WAL позволяет читать журнал, не блокируя запись
	if !isInMemory(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			slog.Warn("failed to enable WAL mode for journal", "error", err)
		}
	}

	if err := initJournalSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &JournalDB{conn: conn}, nil
}

// Close закрывает подключение к журналу
func (db *JournalDB) Close() error {
	return db.conn.Close()
}

// Ping проверяет подключение к журналу
func (db *JournalDB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Record сохраняет запись. Пустые ID и CreatedAt заполняются автоматически.
func (db *JournalDB) Record(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Numbers == nil {
		entry.Numbers = []int{}
	}

	numbers, err := json.Marshal(entry.Numbers)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("failed to encode numbers: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO classification_journal (
			id, request_id, text, intent, rule_index, match_kind,
			primary_reference, numbers, category, passed, reason,
			generation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RequestID, entry.Text, entry.Intent, entry.Rule, entry.MatchKind,
		entry.PrimaryReference, string(numbers), entry.Category, entry.Passed, entry.Reason,
		int64(entry.Generation), entry.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	return entry, nil
}

// Recent возвращает последние записанные записи, новые первыми.
// limit < 1 заменяется значением по умолчанию, слишком большой ограничивается.
func (db *JournalDB) Recent(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, request_id, text, intent, rule_index, match_kind,
			primary_reference, numbers, category, passed, reason,
			generation, created_at
		FROM classification_journal
		ORDER BY seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := []JournalEntry{}
	for rows.Next() {
		var (
			e          JournalEntry
			requestID  sql.NullString
			numbers    string
			generation int64
			createdAt  string
		)
		if err := rows.Scan(
			&e.ID, &requestID, &e.Text, &e.Intent, &e.Rule, &e.MatchKind,
			&e.PrimaryReference, &numbers, &e.Category, &e.Passed, &e.Reason,
			&generation, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.RequestID = nullString(requestID)
		e.Generation = uint64(generation)
		if err := json.Unmarshal([]byte(numbers), &e.Numbers); err != nil {
			return nil, fmt.Errorf("failed to decode numbers of entry %s: %w", e.ID, err)
		}
		if e.Numbers == nil {
			e.Numbers = []int{}
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of entry %s: %w", e.ID, err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal: %w", err)
	}
	return entries, nil
}

// IntentStats количество записей по намерениям, по убыванию
func (db *JournalDB) IntentStats(ctx context.Context) ([]IntentCount, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT intent, COUNT(*) AS cnt
		FROM classification_journal
		GROUP BY intent
		ORDER BY cnt DESC, intent ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intent stats: %w", err)
	}
	defer rows.Close()

	stats := []IntentCount{}
	for rows.Next() {
		var c IntentCount
		if err := rows.Scan(&c.Intent, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan intent stats: %w", err)
		}
		stats = append(stats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intent stats: %w", err)
	}
	return stats, nil
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// timestampLayout фиксированная точность, чтобы строки сортировались как время
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format: %q", raw)
}
