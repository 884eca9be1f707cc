package userstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lingobot/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps preference records in a local SQLite database. Used when
// the deployment has no external preference API.
type SQLiteStore struct {
	db              *sql.DB
	defaultLocale   string
	defaultLanguage string
	logger          *slog.Logger
}

type SQLiteConfig struct {
	DBPath          string
	DefaultLocale   string
	DefaultLanguage string
	Logger          *slog.Logger
}

func NewSQLite(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection: SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{
		db:              db,
		defaultLocale:   cfg.DefaultLocale,
		defaultLanguage: cfg.DefaultLanguage,
		logger:          cfg.Logger,
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		locale      TEXT NOT NULL,
		language    TEXT NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.UserRecord, error) {
	var user domain.UserRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, locale, language FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Locale, &user.Language)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

func (s *SQLiteStore) Add(ctx context.Context, id string) (*domain.UserRecord, error) {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, locale, language, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, s.defaultLocale, s.defaultLanguage, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("add user %s: %w", id, err)
	}
	// Re-read so a concurrent insert still yields the stored record.
	return s.Get(ctx, id)
}

func (s *SQLiteStore) Update(ctx context.Context, id string, fields map[string]string) (*domain.UserRecord, error) {
	for column, value := range fields {
		switch column {
		case "locale", "language":
		default:
			return nil, fmt.Errorf("update user %s: unknown field %q", id, column)
		}
		_, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE users SET %s = ?, updated_at = ? WHERE id = ?`, column),
			value, time.Now(), id,
		)
		if err != nil {
			return nil, fmt.Errorf("update user %s: %w", id, err)
		}
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("update user %s: not found", id)
	}
	return user, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
