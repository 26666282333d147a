package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// CreateItem creates a new inventory item. An initial "in" history entry
// is recorded for a non-zero starting quantity so that replaying the
// item's history from zero reproduces its current quantity.
func CreateItem(ctx context.Context, db *sql.DB, warehouse, category, partName string, quantity int, creator string) (*model.Item, error) {
	if warehouse == "" || category == "" || partName == "" {
		return nil, fmt.Errorf("%w: warehouse, category, and part_name required", ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	now := time.Now().UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO inventory (warehouse, category, part_name, quantity, last_modifier, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		warehouse, category, partName, quantity, creator, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if quantity > 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory_history (inventory_id, change_type, quantity_change, modifier_name, modified_at)
			 VALUES (?, ?, ?, ?, ?)`,
			id, model.ChangeIn, quantity, creator, now,
		)
		if err != nil {
			return nil, fmt.Errorf("recording initial stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item creation: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var modifier sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, warehouse, category, part_name, quantity, last_modifier, last_modified
		 FROM inventory WHERE id = ?`, id,
	).Scan(&item.ID, &item.Warehouse, &item.Category, &item.PartName, &item.Quantity, &modifier, &item.LastModified)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.LastModifier = modifier.String
	return item, nil
}

// ListItems returns items with photo counts, optionally filtered by
// warehouse and category, ordered by id ascending.
func ListItems(ctx context.Context, db *sql.DB, warehouse, category string) ([]model.Item, error) {
	query := `SELECT i.id, i.warehouse, i.category, i.part_name, i.quantity,
	                 i.last_modifier, i.last_modified, COUNT(p.id) AS photo_count
	          FROM inventory i
	          LEFT JOIN photos p ON p.inventory_id = i.id
	          WHERE 1=1`
	var args []any

	if warehouse != "" {
		query += ` AND i.warehouse = ?`
		args = append(args, warehouse)
	}
	if category != "" {
		query += ` AND i.category = ?`
		args = append(args, category)
	}

	query += ` GROUP BY i.id ORDER BY i.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItems returns items whose part name contains query, further
// narrowed by warehouse and category when given. All-empty input returns
// no results rather than the whole inventory.
func SearchItems(ctx context.Context, db *sql.DB, query, warehouse, category string) ([]model.Item, error) {
	if query == "" && warehouse == "" && category == "" {
		return nil, nil
	}

	sqlQuery := `SELECT i.id, i.warehouse, i.category, i.part_name, i.quantity,
	                    i.last_modifier, i.last_modified, COUNT(p.id) AS photo_count
	             FROM inventory i
	             LEFT JOIN photos p ON p.inventory_id = i.id
	             WHERE 1=1`
	var args []any

	if query != "" {
		sqlQuery += ` AND i.part_name LIKE ?`
		args = append(args, "%"+query+"%")
	}
	if warehouse != "" {
		sqlQuery += ` AND i.warehouse = ?`
		args = append(args, warehouse)
	}
	if category != "" {
		sqlQuery += ` AND i.category = ?`
		args = append(args, category)
	}

	sqlQuery += ` GROUP BY i.id ORDER BY i.warehouse, i.category, i.part_name`

	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// DeleteItem removes an item together with its photos, history entries,
// and snapshots in a single transaction, so no orphaned rows remain.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM inventory WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking item: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM photos WHERE inventory_id = ?`,
		`DELETE FROM inventory_history WHERE inventory_id = ?`,
		`DELETE FROM stock_snapshots WHERE inventory_id = ?`,
		`DELETE FROM inventory WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("cascading item delete: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item delete: %w", err)
	}
	return nil
}

// GetStats returns inventory totals grouped by warehouse and category.
func GetStats(ctx context.Context, db *sql.DB) (*model.Stats, error) {
	stats := &model.Stats{
		WarehouseStats: map[string]int{},
		CategoryStats:  map[string]int{},
	}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM inventory`,
	).Scan(&stats.TotalItems, &stats.TotalQuantity)
	if err != nil {
		return nil, fmt.Errorf("getting inventory totals: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT warehouse, COUNT(*) FROM inventory GROUP BY warehouse`)
	if err != nil {
		return nil, fmt.Errorf("getting warehouse stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scanning warehouse stats: %w", err)
		}
		stats.WarehouseStats[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading warehouse stats: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT category, COUNT(*) FROM inventory GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("getting category stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scanning category stats: %w", err)
		}
		stats.CategoryStats[name] = count
	}
	return stats, rows.Err()
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var modifier sql.NullString
		if err := rows.Scan(&item.ID, &item.Warehouse, &item.Category, &item.PartName,
			&item.Quantity, &modifier, &item.LastModified, &item.PhotoCount); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.LastModifier = modifier.String
		items = append(items, item)
	}
	return items, rows.Err()
}
