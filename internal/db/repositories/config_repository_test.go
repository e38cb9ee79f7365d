package repositories

import (
	"context"
	"testing"
)

func TestConfigRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "chat_display_limit", "50"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	row, err := repo.Get(ctx, "chat_display_limit")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row == nil {
		t.Fatal("Expected a stored value, got nil")
	}
	if row.ConfigValue != "50" {
		t.Errorf("Expected 50, got %s", row.ConfigValue)
	}
}

func TestConfigRepository_UpsertReplacesValue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "broad_freighter_heuristic", "false"); err != nil {
		t.Fatalf("initial Upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, "broad_freighter_heuristic", "true"); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected a single row after upsert, got %d", len(all))
	}
	if all[0].ConfigValue != "true" {
		t.Errorf("Expected replaced value true, got %s", all[0].ConfigValue)
	}
}

func TestConfigRepository_GetMissingKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigRepository(db)
	ctx := context.Background()

	row, err := repo.Get(ctx, "never_set")
	if err != nil {
		t.Fatalf("Get for a missing key errored: %v", err)
	}
	if row != nil {
		t.Errorf("Expected nil for an unset key, got %+v", row)
	}
}
