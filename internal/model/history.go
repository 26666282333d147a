package model

import "time"

// HistoryEntry is one append-only audit record for an item. Adjustments
// record the signed delta; edits record a zero delta.
type HistoryEntry struct {
	ID             int64     `json:"id"`
	InventoryID    int64     `json:"inventory_id"`
	ChangeType     string    `json:"change_type"`
	QuantityChange int       `json:"quantity_change"`
	ModifierName   string    `json:"modifier_name"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// Change types.
const (
	ChangeIn   = "in"
	ChangeOut  = "out"
	ChangeEdit = "edit"
)

// Snapshot is an immutable record of an item's quantity at a point in
// time, taken so retention purges cannot break audit replay.
type Snapshot struct {
	ID          int64     `json:"id"`
	InventoryID int64     `json:"inventory_id"`
	Quantity    int       `json:"quantity"`
	TakenAt     time.Time `json:"taken_at"`
}
