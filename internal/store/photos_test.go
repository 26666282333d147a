package store

import (
	"context"
	"errors"
	"testing"

	"github.com/skons/warehouse/internal/db"
)

func TestCreateAndListPhotos(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "Borame", "EV", "Cable", 1, "admin")

	photo, err := CreatePhoto(ctx, database, item.ID, "abc.jpg", "my cable.jpg", "image/jpeg", make([]byte, 2048), "alice")
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}
	if photo.SizeKB != 2 {
		t.Errorf("expected size 2 KB, got %d", photo.SizeKB)
	}
	if photo.UploadedBy != "alice" {
		t.Errorf("expected uploader alice, got %q", photo.UploadedBy)
	}

	CreatePhoto(ctx, database, item.ID, "def.jpg", "other.jpg", "image/jpeg", []byte("x"), "bob")

	photos, err := ListPhotos(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if len(photos) != 2 {
		t.Errorf("expected 2 photos, got %d", len(photos))
	}
}

func TestCreatePhotoMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreatePhoto(context.Background(), database, 9999, "abc.jpg", "x.jpg", "image/jpeg", []byte("x"), "alice")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPhotoData(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "Borame", "EV", "Cable", 1, "admin")
	photo, _ := CreatePhoto(ctx, database, item.ID, "abc.jpg", "x.jpg", "image/jpeg", []byte("image bytes"), "alice")

	data, mime, err := GetPhotoData(ctx, database, photo.ID)
	if err != nil {
		t.Fatalf("GetPhotoData: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("unexpected data %q", data)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mime)
	}

	data, _, err = GetPhotoData(ctx, database, 9999)
	if err != nil {
		t.Fatalf("GetPhotoData missing: %v", err)
	}
	if data != nil {
		t.Error("expected nil data for missing photo")
	}
}

func TestDeletePhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "Borame", "EV", "Cable", 1, "admin")
	photo, _ := CreatePhoto(ctx, database, item.ID, "abc.jpg", "x.jpg", "image/jpeg", []byte("x"), "alice")

	if err := DeletePhoto(ctx, database, photo.ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}

	got, _ := GetPhoto(ctx, database, photo.ID)
	if got != nil {
		t.Error("expected photo gone")
	}

	if err := DeletePhoto(ctx, database, photo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
