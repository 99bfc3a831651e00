package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn   *sql.DB
	dbType string
}

type Config struct {
	Type       string
	SQLitePath string
	DSN        string
}

func NewDB(config Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.SQLitePath)
	case "postgres":
		conn, err = sql.Open("pgx", config.DSN)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, dbType: config.Type}

	if err := db.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func (db *DB) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			original_title TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL,
			genres TEXT NOT NULL DEFAULT '',
			director TEXT NOT NULL DEFAULT '',
			directors TEXT NOT NULL DEFAULT '',
			cast_members TEXT NOT NULL DEFAULT '',
			plot TEXT NOT NULL,
			plot_embedding TEXT NOT NULL DEFAULT '',
			runtime INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			imdb_rating REAL NOT NULL DEFAULT 0,
			poster_url TEXT NOT NULL DEFAULT '',
			backdrop_url TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'English',
			country TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '',
			mood TEXT NOT NULL DEFAULT '',
			popularity INTEGER NOT NULL DEFAULT 0,
			watch_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_year_rating ON movies (year, rating)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies (popularity)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			preferences TEXT NOT NULL DEFAULT '{}',
			watchlist TEXT NOT NULL DEFAULT '[]',
			watch_history TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind rewrites ? placeholders to $N for postgres, so both drivers
// share one query-building path.
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
