// Package sqlite implements the storage gateway on a SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the relational backend. All access goes through database/sql;
// multi-table writes run inside a single transaction.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dbPath, verifies the connection and runs
// migrations. Use ":memory:" for a throwaway database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS containers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			container TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			expiry TEXT NOT NULL,
			food_group TEXT,
			freshness TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(container, name)
		)`,
		`CREATE TABLE IF NOT EXISTS grocery (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			setting_type TEXT PRIMARY KEY,
			font_size INTEGER NOT NULL,
			notifications_enabled BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS storage_tips (
			name TEXT PRIMARY KEY,
			info TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			unit TEXT,
			image TEXT,
			original TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			is_used BOOLEAN NOT NULL,
			UNIQUE(recipe_id, ingredient_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_instructions (
			recipe_id INTEGER NOT NULL,
			step_number INTEGER NOT NULL,
			instruction TEXT NOT NULL,
			UNIQUE(recipe_id, step_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_container ON items(container)`,
		`CREATE INDEX IF NOT EXISTS idx_items_freshness ON items(freshness)`,
		`CREATE INDEX IF NOT EXISTS idx_grocery_name ON grocery(name)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe_id ON recipe_ingredients(recipe_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_instructions_recipe_id ON recipe_instructions(recipe_id)`,
		`INSERT OR IGNORE INTO settings (setting_type, font_size, notifications_enabled) VALUES ('User', 12, 1)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	if err := seedStorageTips(db); err != nil {
		return fmt.Errorf("failed to seed storage tips: %w", err)
	}

	return nil
}

func seedStorageTips(db *sql.DB) error {
	tips := map[string]string{
		"milk":     "Keep on a middle shelf, not in the door, where temperature swings are largest.",
		"bread":    "Store at room temperature in a sealed bag; refrigeration makes it stale faster.",
		"eggs":     "Keep in the original carton to limit moisture loss and odour absorption.",
		"tomatoes": "Store at room temperature away from direct sunlight until fully ripe.",
		"cheese":   "Wrap in wax paper, then loosely in plastic, so it can breathe without drying out.",
	}

	for name, info := range tips {
		if _, err := db.Exec(`INSERT OR IGNORE INTO storage_tips (name, info) VALUES (?, ?)`, name, info); err != nil {
			return err
		}
	}

	return nil
}
