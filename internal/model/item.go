package model

import "time"

// Item represents one inventory line: a part held at a warehouse under a
// category. Warehouse and category are fixed at creation; quantity changes
// through adjustments and admin edits and is never negative.
type Item struct {
	ID           int64     `json:"id"`
	Warehouse    string    `json:"warehouse"`
	Category     string    `json:"category"`
	PartName     string    `json:"part_name"`
	Quantity     int       `json:"quantity"`
	LastModifier string    `json:"last_modifier,omitempty"`
	LastModified time.Time `json:"last_modified"`

	// Joined field (not always populated).
	PhotoCount int `json:"photo_count,omitempty"`
}

// Stats summarizes the inventory across warehouses and categories.
type Stats struct {
	TotalItems     int            `json:"total_items"`
	TotalQuantity  int            `json:"total_quantity"`
	WarehouseStats map[string]int `json:"warehouse_stats"`
	CategoryStats  map[string]int `json:"category_stats"`
}
