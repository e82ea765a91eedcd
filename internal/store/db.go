package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Cascading deletes (album -> photos -> selections) depend on this.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS albums (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		event_date DATE,
		status TEXT NOT NULL DEFAULT 'draft',
		cover_image_url TEXT NOT NULL DEFAULT '',
		client_enabled INTEGER NOT NULL DEFAULT 0,
		client_pin_hash TEXT NOT NULL DEFAULT '',
		selection_limit INTEGER,
		client_submitted_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS photos (
		id TEXT PRIMARY KEY,
		album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
		category TEXT NOT NULL,
		image_url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		is_featured INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_photos_album ON photos(album_id, display_order);

	CREATE TABLE IF NOT EXISTS selections (
		id TEXT PRIMARY KEY,
		album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
		photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (album_id, photo_id)
	);

	CREATE TABLE IF NOT EXISTS site_images (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		image_url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}

	return nil
}
