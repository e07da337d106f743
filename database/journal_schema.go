package database

import (
	"database/sql"
	"fmt"
)

// journalSchemaVersion текущая версия схемы журнала
const journalSchemaVersion = 1

// initJournalSchema создает таблицы журнала, если их еще нет
func initJournalSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS classification_journal (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			request_id TEXT,
			text TEXT NOT NULL,
			intent TEXT NOT NULL,
			rule_index INTEGER NOT NULL DEFAULT -1,
			match_kind TEXT NOT NULL DEFAULT '',
			primary_reference TEXT NOT NULL DEFAULT '',
			numbers TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL DEFAULT '',
			passed BOOLEAN NOT NULL DEFAULT 1,
			reason TEXT NOT NULL DEFAULT '',
			generation INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_created_at ON classification_journal(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_intent ON classification_journal(intent)`,
		`CREATE TABLE IF NOT EXISTS journal_schema_version (
			version INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM journal_schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		if _, err := conn.Exec(`INSERT INTO journal_schema_version (version) VALUES (?)`, journalSchemaVersion); err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}
	}

	return nil
}

// SchemaVersion версия схемы, записанная в базе
func (db *JournalDB) SchemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow(`SELECT MAX(version) FROM journal_schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
