package store

import (
	"context"
	"errors"
	"testing"

	"github.com/skons/warehouse/internal/db"
)

func TestCreateAndListReceipts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rec, err := CreateReceipt(ctx, database, "Borame", "Acme Parts", "Charging cable", 50, "pallet 3", "alice")
	if err != nil {
		t.Fatalf("CreateReceipt: %v", err)
	}
	if rec.Supplier != "Acme Parts" || rec.Quantity != 50 {
		t.Errorf("unexpected receipt: %+v", rec)
	}
	if rec.Note != "pallet 3" {
		t.Errorf("expected note kept, got %q", rec.Note)
	}

	CreateReceipt(ctx, database, "Pangyo", "Acme Parts", "Fuse", 10, "", "bob")

	all, err := ListReceipts(ctx, database, "")
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 receipts, got %d", len(all))
	}

	borame, _ := ListReceipts(ctx, database, "Borame")
	if len(borame) != 1 {
		t.Errorf("expected 1 Borame receipt, got %d", len(borame))
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateReceipt(ctx, database, "", "Acme", "Cable", 1, "", "alice"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty warehouse, got %v", err)
	}
	if _, err := CreateReceipt(ctx, database, "Borame", "Acme", "Cable", 0, "", "alice"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero quantity, got %v", err)
	}
}
