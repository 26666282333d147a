package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// Adjust applies a signed quantity change to one item and records the
// matching history entry. Both writes happen in a single transaction:
// either the quantity moves and the audit row exists, or neither does.
// The read-compute-write sequence runs inside the same transaction, so
// two concurrent adjustments on the same item serialize instead of
// racing to a lost update.
func Adjust(ctx context.Context, db *sql.DB, itemID int64, direction string, amount int, modifier string) (int, error) {
	if direction != model.ChangeIn && direction != model.ChangeOut {
		return 0, fmt.Errorf("%w: direction must be %q or %q", ErrValidation, model.ChangeIn, model.ChangeOut)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	delta := amount
	if direction == model.ChangeOut {
		delta = -amount
	}

	now := time.Now().UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE id = ?`, itemID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("reading current quantity: %w", err)
	}

	newQty := current + delta
	if newQty < 0 {
		// Rejected outright, never clamped to zero.
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, current, amount)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory SET quantity = ?, last_modifier = ?, last_modified = ? WHERE id = ?`,
		newQty, modifier, now, itemID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating quantity: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inventory_history (inventory_id, change_type, quantity_change, modifier_name, modified_at)
		 VALUES (?, ?, ?, ?, ?)`,
		itemID, direction, delta, modifier, now,
	)
	if err != nil {
		return 0, fmt.Errorf("recording history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing adjustment: %w", err)
	}

	return newQty, nil
}

// EditItem overwrites an item's part name and quantity. The history entry
// records a zero delta: edits are absolute overwrites, not movements.
func EditItem(ctx context.Context, db *sql.DB, itemID int64, partName string, quantity int, modifier string) error {
	if partName == "" {
		return fmt.Errorf("%w: part_name required", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	now := time.Now().UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE inventory SET part_name = ?, quantity = ?, last_modifier = ?, last_modified = ? WHERE id = ?`,
		partName, quantity, modifier, now, itemID,
	)
	if err != nil {
		return fmt.Errorf("editing item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inventory_history (inventory_id, change_type, quantity_change, modifier_name, modified_at)
		 VALUES (?, ?, 0, ?, ?)`,
		itemID, model.ChangeEdit, modifier, now,
	)
	if err != nil {
		return fmt.Errorf("recording edit history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing edit: %w", err)
	}
	return nil
}
