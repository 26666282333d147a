package model

import "time"

// DeliveryReceipt records a delivery arriving at a warehouse. It is a
// standalone paper-trail record, not tied to an inventory row.
type DeliveryReceipt struct {
	ID         int64     `json:"id"`
	Warehouse  string    `json:"warehouse"`
	Supplier   string    `json:"supplier"`
	PartName   string    `json:"part_name"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note,omitempty"`
	ReceivedBy string    `json:"received_by"`
	ReceivedAt time.Time `json:"received_at"`
}
