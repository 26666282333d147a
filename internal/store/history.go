package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// GetHistory returns an item's audit trail, newest first. Repeated calls
// with no intervening writes return identical results: the ordering is
// fully determined by (modified_at, id).
func GetHistory(ctx context.Context, db *sql.DB, itemID int64) ([]model.HistoryEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, inventory_id, change_type, quantity_change, modifier_name, modified_at
		 FROM inventory_history
		 WHERE inventory_id = ?
		 ORDER BY modified_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.InventoryID, &e.ChangeType, &e.QuantityChange, &e.ModifierName, &e.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SnapshotAll records the current quantity of every item into
// stock_snapshots with a single timestamp.
func SnapshotAll(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO stock_snapshots (inventory_id, quantity, taken_at)
		 SELECT id, quantity, ? FROM inventory`, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("taking stock snapshot: %w", err)
	}
	return nil
}

// PurgeHistory deletes history entries older than the cutoff. Before
// deleting, every item that would lose entries gets a fresh quantity
// snapshot in the same transaction, so audit replay for live items stays
// anchored even after old deltas are gone. Meant for a periodic batch
// sweep, never the request path.
func PurgeHistory(ctx context.Context, db *sql.DB, olderThan time.Time) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stock_snapshots (inventory_id, quantity, taken_at)
		 SELECT id, quantity, ? FROM inventory
		 WHERE id IN (SELECT DISTINCT inventory_id FROM inventory_history WHERE modified_at < ?)`,
		time.Now().UTC(), olderThan,
	)
	if err != nil {
		return 0, fmt.Errorf("snapshotting before purge: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM inventory_history WHERE modified_at < ?`, olderThan,
	)
	if err != nil {
		return 0, fmt.Errorf("purging history: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing purge: %w", err)
	}
	return purged, nil
}

// GetSnapshots returns an item's quantity snapshots, newest first.
func GetSnapshots(ctx context.Context, db *sql.DB, itemID int64) ([]model.Snapshot, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, inventory_id, quantity, taken_at
		 FROM stock_snapshots WHERE inventory_id = ?
		 ORDER BY taken_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var s model.Snapshot
		if err := rows.Scan(&s.ID, &s.InventoryID, &s.Quantity, &s.TakenAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
