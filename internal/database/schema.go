package database

import (
	"database/sql"
	"fmt"
)

// Schema notes:
//   - usernames get an exact-match UNIQUE index; the case-insensitive
//     uniqueness rule is enforced in the registration handler.
//   - cart_items has no FK on gear_item_id: deleting a gear item may leave
//     dangling cart rows, which cart reads skip.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS gear_items (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(50) NOT NULL,
		brand VARCHAR(100) NOT NULL,
		price DOUBLE NOT NULL,
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		rating DOUBLE NULL,
		description TEXT NULL,
		image_url VARCHAR(512) NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_gear_items_name (name),
		INDEX idx_gear_items_category (category)
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		user_id BIGINT NOT NULL,
		gear_item_id BIGINT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		INDEX idx_cart_items_user (user_id)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS gear_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		brand TEXT NOT NULL,
		price REAL NOT NULL,
		in_stock BOOLEAN NOT NULL DEFAULT 1,
		rating REAL NULL,
		description TEXT NULL,
		image_url TEXT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		gear_item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items (user_id)`,
}

// Migrate creates the schema for the given driver if it does not exist.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "mysql":
		stmts = mysqlSchema
	case "sqlite3":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
