package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skons/warehouse/internal/model"
)

// CreatePhoto attaches a processed image to an item. The blob lives in
// the row, so cascading deletes remove the bytes with the metadata.
func CreatePhoto(ctx context.Context, db *sql.DB, itemID int64, filename, originalName, mime string, data []byte, uploadedBy string) (*model.Photo, error) {
	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}

	sizeKB := len(data) / 1024

	result, err := db.ExecContext(ctx,
		`INSERT INTO photos (inventory_id, filename, original_name, mime, size_kb, data, uploaded_by, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID, filename, originalName, mime, sizeKB, data, uploadedBy, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting photo id: %w", err)
	}

	return GetPhoto(ctx, db, id)
}

// GetPhoto returns photo metadata by ID (without the image bytes).
func GetPhoto(ctx context.Context, db *sql.DB, id int64) (*model.Photo, error) {
	p := &model.Photo{}
	err := db.QueryRowContext(ctx,
		`SELECT id, inventory_id, filename, original_name, mime, size_kb, uploaded_by, uploaded_at
		 FROM photos WHERE id = ?`, id,
	).Scan(&p.ID, &p.InventoryID, &p.Filename, &p.OriginalName, &p.MIME, &p.SizeKB, &p.UploadedBy, &p.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}
	return p, nil
}

// GetPhotoData returns a photo's image bytes and MIME type.
func GetPhotoData(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var data []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT data, mime FROM photos WHERE id = ?`, id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting photo data: %w", err)
	}
	return data, mime, nil
}

// ListPhotos returns an item's photo metadata, newest first.
func ListPhotos(ctx context.Context, db *sql.DB, itemID int64) ([]model.Photo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, inventory_id, filename, original_name, mime, size_kb, uploaded_by, uploaded_at
		 FROM photos WHERE inventory_id = ?
		 ORDER BY uploaded_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.InventoryID, &p.Filename, &p.OriginalName, &p.MIME, &p.SizeKB, &p.UploadedBy, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// DeletePhoto removes a photo row (and with it the stored image bytes).
func DeletePhoto(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}
	return nil
}
