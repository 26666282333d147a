package store

import (
	"context"
	"errors"
	"testing"

	"github.com/skons/warehouse/internal/db"
	"github.com/skons/warehouse/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Borame", "EV", "Charging cable", 10, "admin")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Warehouse != "Borame" || item.Category != "EV" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", item.Quantity)
	}
	if item.LastModifier != "admin" {
		t.Errorf("expected last modifier admin, got %q", item.LastModifier)
	}

	missing, err := GetItem(ctx, database, 9999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing item")
	}
}

func TestCreateItemRecordsInitialStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "Borame", "EV", "Cable", 10, "admin")
	history, _ := GetHistory(ctx, database, item.ID)
	if len(history) != 1 {
		t.Fatalf("expected 1 initial history entry, got %d", len(history))
	}
	if history[0].ChangeType != model.ChangeIn || history[0].QuantityChange != 10 {
		t.Errorf("unexpected initial entry: %+v", history[0])
	}

	// A zero-quantity item starts with an empty trail.
	empty, _ := CreateItem(ctx, database, "Borame", "EV", "Empty", 0, "admin")
	history, _ = GetHistory(ctx, database, empty.ID)
	if len(history) != 0 {
		t.Errorf("expected no history for zero-quantity item, got %d entries", len(history))
	}
}

func TestCreateItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, "", "EV", "Cable", 1, "admin"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty warehouse, got %v", err)
	}
	if _, err := CreateItem(ctx, database, "Borame", "EV", "Cable", -1, "admin"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative quantity, got %v", err)
	}
}

func TestListItemsFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, "Borame", "EV", "Cable", 1, "admin")
	CreateItem(ctx, database, "Borame", "Access", "Badge reader", 2, "admin")
	CreateItem(ctx, database, "Pangyo", "EV", "Cable", 3, "admin")

	all, err := ListItems(ctx, database, "", "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items, got %d", len(all))
	}
	// Stable ordering by id ascending.
	for i := 1; i < len(all); i++ {
		if all[i].ID < all[i-1].ID {
			t.Errorf("items not ordered by id: %v", all)
		}
	}

	borame, _ := ListItems(ctx, database, "Borame", "")
	if len(borame) != 2 {
		t.Errorf("expected 2 Borame items, got %d", len(borame))
	}

	ev, _ := ListItems(ctx, database, "Borame", "EV")
	if len(ev) != 1 {
		t.Errorf("expected 1 Borame EV item, got %d", len(ev))
	}
}

func TestSearchItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, "Borame", "EV", "Charging cable", 1, "admin")
	CreateItem(ctx, database, "Borame", "EV", "Control board", 2, "admin")
	CreateItem(ctx, database, "Pangyo", "EV", "Charging cable", 3, "admin")

	// All-empty input returns nothing, not everything.
	none, err := SearchItems(ctx, database, "", "", "")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results for empty search, got %d", len(none))
	}

	cables, _ := SearchItems(ctx, database, "cable", "", "")
	if len(cables) != 2 {
		t.Errorf("expected 2 cable matches, got %d", len(cables))
	}

	borameCables, _ := SearchItems(ctx, database, "cable", "Borame", "")
	if len(borameCables) != 1 {
		t.Errorf("expected 1 Borame cable, got %d", len(borameCables))
	}

	byWarehouse, _ := SearchItems(ctx, database, "", "Pangyo", "")
	if len(byWarehouse) != 1 {
		t.Errorf("expected 1 Pangyo item, got %d", len(byWarehouse))
	}
}

func TestDeleteItemCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "Borame", "EV", "Cable", 10, "admin")
	Adjust(ctx, database, item.ID, model.ChangeOut, 2, "alice")
	CreatePhoto(ctx, database, item.ID, "abc.jpg", "cable.jpg", "image/jpeg", []byte("fake"), "alice")
	SnapshotAll(ctx, database)

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item gone after delete")
	}

	// No rows may still reference the item.
	for _, table := range []string{"inventory_history", "photos", "stock_snapshots"} {
		var count int
		if err := database.QueryRow(
			`SELECT COUNT(*) FROM `+table+` WHERE inventory_id = ?`, item.ID,
		).Scan(&count); err != nil {
			t.Fatalf("counting %s rows: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected 0 %s rows after cascade, got %d", table, count)
		}
	}
}

func TestDeleteItemMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := DeleteItem(ctx, database, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, "Borame", "EV", "Cable", 10, "admin")
	CreateItem(ctx, database, "Borame", "Access", "Badge reader", 5, "admin")
	CreateItem(ctx, database, "Pangyo", "EV", "Fuse", 1, "admin")

	stats, err := GetStats(ctx, database)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", stats.TotalItems)
	}
	if stats.TotalQuantity != 16 {
		t.Errorf("expected total quantity 16, got %d", stats.TotalQuantity)
	}
	if stats.WarehouseStats["Borame"] != 2 {
		t.Errorf("expected 2 Borame items, got %d", stats.WarehouseStats["Borame"])
	}
	if stats.CategoryStats["EV"] != 2 {
		t.Errorf("expected 2 EV items, got %d", stats.CategoryStats["EV"])
	}
}
