package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys, a busy timeout and WAL journaling are enabled on every pooled
// connection through the DSN.
func New(path string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
// Timestamps are stored as milliseconds since the Unix epoch.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL,
			target_language TEXT NOT NULL,
			file_path TEXT NOT NULL,
			should_adapt INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL,
			total_chapters INTEGER NOT NULL DEFAULT 0,
			current_processing_chapter INTEGER,
			failed_chapter INTEGER,
			error TEXT NOT NULL DEFAULT '',
			error_kind TEXT NOT NULL DEFAULT '',
			page_count INTEGER NOT NULL DEFAULT 0,
			cancel_requested INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_books_user ON books (user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			original_content TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			is_adapted INTEGER NOT NULL DEFAULT 0,
			reasoning TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE,
			UNIQUE (book_id, number)
		);`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL,
			job_type TEXT NOT NULL,
			payload BLOB,
			status TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			error_kind TEXT NOT NULL DEFAULT '',
			available_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_claim ON jobs (status, available_at, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_book ON jobs (book_id, created_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
