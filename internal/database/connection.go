package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// backend: "postgres" connects to DATABASE_URL, anything else opens a
// local sqlite file under the data directory.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")

	if dbType == "postgres" {
		db, err := sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "hanbot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Create words table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			hanzi TEXT NOT NULL,
			pinyin TEXT NOT NULL,
			translation TEXT NOT NULL,
			example TEXT,
			language TEXT NOT NULL DEFAULT 'zh-CN',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(hanzi, language)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	// Create review_records table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS review_records (
			item_id TEXT PRIMARY KEY,
			ease_factor REAL DEFAULT 2.5,
			interval INTEGER DEFAULT 1,
			repetitions INTEGER DEFAULT 0,
			due_date TIMESTAMP NOT NULL,
			last_reviewed TIMESTAMP,
			total_reviews INTEGER DEFAULT 0,
			correct_reviews INTEGER DEFAULT 0,
			streak INTEGER DEFAULT 0,
			difficulty TEXT DEFAULT 'hard',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (item_id) REFERENCES words(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_records table: %v", err)
	}

	return nil
}
