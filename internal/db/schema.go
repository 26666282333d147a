package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    employee_id   TEXT NOT NULL UNIQUE,
    team          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    approved      INTEGER NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory (
    id            INTEGER PRIMARY KEY,
    warehouse     TEXT NOT NULL,
    category      TEXT NOT NULL,
    part_name     TEXT NOT NULL,
    quantity      INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    last_modifier TEXT,
    last_modified DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_warehouse_category
    ON inventory(warehouse, category);

CREATE TABLE IF NOT EXISTS inventory_history (
    id              INTEGER PRIMARY KEY,
    inventory_id    INTEGER NOT NULL REFERENCES inventory(id),
    change_type     TEXT NOT NULL CHECK (change_type IN ('in', 'out', 'edit')),
    quantity_change INTEGER NOT NULL,
    modifier_name   TEXT NOT NULL,
    modified_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_inventory
    ON inventory_history(inventory_id, modified_at);

CREATE TABLE IF NOT EXISTS stock_snapshots (
    id           INTEGER PRIMARY KEY,
    inventory_id INTEGER NOT NULL REFERENCES inventory(id),
    quantity     INTEGER NOT NULL,
    taken_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS photos (
    id            INTEGER PRIMARY KEY,
    inventory_id  INTEGER NOT NULL REFERENCES inventory(id),
    filename      TEXT NOT NULL,
    original_name TEXT NOT NULL,
    mime          TEXT NOT NULL,
    size_kb       INTEGER NOT NULL,
    data          BLOB NOT NULL,
    uploaded_by   TEXT NOT NULL,
    uploaded_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS delivery_receipts (
    id          INTEGER PRIMARY KEY,
    warehouse   TEXT NOT NULL,
    supplier    TEXT NOT NULL,
    part_name   TEXT NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    note        TEXT,
    received_by TEXT NOT NULL,
    received_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// Migrate creates all tables and indexes if they don't already exist.
// Safe to run on every startup.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
