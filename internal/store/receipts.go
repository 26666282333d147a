package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// CreateReceipt records a delivery receipt.
func CreateReceipt(ctx context.Context, db *sql.DB, warehouse, supplier, partName string, quantity int, note, receivedBy string) (*model.DeliveryReceipt, error) {
	if warehouse == "" || supplier == "" || partName == "" {
		return nil, fmt.Errorf("%w: warehouse, supplier, and part_name required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO delivery_receipts (warehouse, supplier, part_name, quantity, note, received_by, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		warehouse, supplier, partName, quantity, note, receivedBy, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating receipt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting receipt id: %w", err)
	}

	return GetReceipt(ctx, db, id)
}

// GetReceipt returns a delivery receipt by ID.
func GetReceipt(ctx context.Context, db *sql.DB, id int64) (*model.DeliveryReceipt, error) {
	rec := &model.DeliveryReceipt{}
	var note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, warehouse, supplier, part_name, quantity, note, received_by, received_at
		 FROM delivery_receipts WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Warehouse, &rec.Supplier, &rec.PartName, &rec.Quantity, &note, &rec.ReceivedBy, &rec.ReceivedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	rec.Note = note.String
	return rec, nil
}

// ListReceipts returns delivery receipts, newest first, optionally
// filtered by warehouse.
func ListReceipts(ctx context.Context, db *sql.DB, warehouse string) ([]model.DeliveryReceipt, error) {
	query := `SELECT id, warehouse, supplier, part_name, quantity, note, received_by, received_at
	          FROM delivery_receipts`
	var args []any

	if warehouse != "" {
		query += ` WHERE warehouse = ?`
		args = append(args, warehouse)
	}
	query += ` ORDER BY received_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var receipts []model.DeliveryReceipt
	for rows.Next() {
		var rec model.DeliveryReceipt
		var note sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Warehouse, &rec.Supplier, &rec.PartName, &rec.Quantity, &note, &rec.ReceivedBy, &rec.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}
		rec.Note = note.String
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}
