package store

import (
	"context"
	"testing"
	"time"

	"github.com/skons/warehouse/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatal(err)
	}
	if revoked {
		t.Error("fresh token should not be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatal(err)
	}
	if !revoked {
		t.Error("expected token revoked")
	}

	// Revoking twice is a no-op.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}
}

func TestRevokeTokenCleansExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// An already-expired revocation gets swept on the next revoke.
	RevokeToken(ctx, database, "old-jti", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "new-jti", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "old-jti")
	if revoked {
		t.Error("expected expired revocation cleaned up")
	}
}
