package model

import "time"

// Photo is an image attached to an inventory item. The processed image
// bytes live in the photo row itself, so deleting the row deletes the blob.
type Photo struct {
	ID           int64     `json:"id"`
	InventoryID  int64     `json:"inventory_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MIME         string    `json:"mime"`
	SizeKB       int       `json:"size_kb"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
