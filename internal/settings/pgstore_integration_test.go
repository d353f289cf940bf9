package settings

import (
	"context"
	"os"
	"testing"

	"deliverydates/internal/db"
)

func TestPGStoreUpsertIntegration(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
		return
	}

	pool, err := db.NewPool(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	defer pool.Close()

	store := NewPGStore(pool)
	shop := "integration-test.example.com"
	defer pool.Exec(context.Background(), `DELETE FROM merchant_settings WHERE shop = $1`, shop)

	in := Defaults(shop)
	in.WarehouseCity = "Kansas City"
	in.WarehouseState = "MO"
	in.WarehouseZip = "64106"
	created, err := store.Upsert(context.Background(), in)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created == nil || created.CreatedAt.IsZero() {
		t.Fatalf("expected created record with timestamp, got %+v", created)
	}

	created.HandlingTimeDays = 4
	updated, err := store.Upsert(context.Background(), *created)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.HandlingTimeDays != 4 {
		t.Fatalf("expected handling 4, got %d", updated.HandlingTimeDays)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed on update: %s vs %s", updated.CreatedAt, created.CreatedAt)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updated_at went backwards")
	}

	got, err := store.Get(context.Background(), shop)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.WarehouseZip != "64106" || got.HandlingTimeDays != 4 {
		t.Fatalf("unexpected record: %+v", got)
	}

	absent, err := store.Get(context.Background(), "nope.example.com")
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for absent shop, got %+v", absent)
	}
}
