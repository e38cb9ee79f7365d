package repositories

import (
	"context"
	"testing"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	gormModels "cargo-charter/charterdesk/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&gormModels.AirportGeography{},
		&gormModels.AppConfig{},
		&gormModels.GeographySyncLog{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestGeographyRepository_BatchUpsertAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGeographyRepository(db)
	ctx := context.Background()

	rows := []gormModels.AirportGeography{
		{IATACode: "JFK", AirportName: "John F Kennedy Intl", CountryCode: "US", CountryName: "United States", Continent: "NA"},
		{IATACode: "FRA", AirportName: "Frankfurt am Main", CountryCode: "DE", CountryName: "Germany", Continent: "EU"},
	}

	if err := repo.BatchUpsert(ctx, rows); err != nil {
		t.Fatalf("BatchUpsert failed: %v", err)
	}

	found, err := repo.FindByIATA(ctx, "jfk")
	if err != nil {
		t.Fatalf("FindByIATA failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected a row for jfk (case-insensitive), got nil")
	}
	if found.CountryName != "United States" {
		t.Errorf("Expected United States, got %s", found.CountryName)
	}

	missing, err := repo.FindByIATA(ctx, "ZZZ")
	if err != nil {
		t.Fatalf("FindByIATA for missing code errored: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for a missing code, got %+v", missing)
	}
}

func TestGeographyRepository_BatchUpsertRefreshesExistingRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGeographyRepository(db)
	ctx := context.Background()

	initial := []gormModels.AirportGeography{
		{IATACode: "TLV", AirportName: "Ben Gurion", CountryCode: "IL", CountryName: "Israel", Continent: "AS"},
	}
	if err := repo.BatchUpsert(ctx, initial); err != nil {
		t.Fatalf("BatchUpsert failed: %v", err)
	}

	refreshed := []gormModels.AirportGeography{
		{IATACode: "TLV", AirportName: "Ben Gurion International Airport", CountryCode: "IL", CountryName: "Israel", Continent: "AS"},
	}
	if err := repo.BatchUpsert(ctx, refreshed); err != nil {
		t.Fatalf("Second BatchUpsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected the conflict to update in place, got %d rows", count)
	}

	found, err := repo.FindByIATA(ctx, "TLV")
	if err != nil {
		t.Fatalf("FindByIATA failed: %v", err)
	}
	if found == nil || found.AirportName != "Ben Gurion International Airport" {
		t.Errorf("Expected the refreshed airport name, got %+v", found)
	}
}

func TestGeographyRepository_DeleteAllAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGeographyRepository(db)
	ctx := context.Background()

	rows := []gormModels.AirportGeography{
		{IATACode: "CAI", AirportName: "Cairo Intl", CountryName: "Egypt", Continent: "AF"},
		{IATACode: "HKG", AirportName: "Hong Kong Intl", CountryName: "Hong Kong", Continent: "AS"},
	}
	if err := repo.BatchUpsert(ctx, rows); err != nil {
		t.Fatalf("BatchUpsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows, got %d", count)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count after delete failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty table, got %d rows", count)
	}
}

func TestGeographyRepository_SyncLogLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGeographyRepository(db)
	ctx := context.Background()

	none, err := repo.LatestSuccessfulSync(ctx)
	if err != nil {
		t.Fatalf("LatestSuccessfulSync on empty table errored: %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil before any sync, got %+v", none)
	}

	entry := &gormModels.GeographySyncLog{
		EventType: constants.SyncEventGeographyManual,
		Status:    constants.SyncStatusRunning,
		StartedAt: time.Now().Add(-time.Minute),
	}
	if err := repo.CreateSyncLog(ctx, entry); err != nil {
		t.Fatalf("CreateSyncLog failed: %v", err)
	}

	finished := time.Now()
	entry.Status = constants.SyncStatusSuccess
	entry.AirportsSynced = 4321
	entry.FinishedAt = &finished
	if err := repo.UpdateSyncLog(ctx, entry); err != nil {
		t.Fatalf("UpdateSyncLog failed: %v", err)
	}

	latest, err := repo.LatestSuccessfulSync(ctx)
	if err != nil {
		t.Fatalf("LatestSuccessfulSync failed: %v", err)
	}
	if latest == nil {
		t.Fatal("Expected the completed sync, got nil")
	}
	if latest.AirportsSynced != 4321 {
		t.Errorf("Expected 4321 airports synced, got %d", latest.AirportsSynced)
	}
	if latest.FinishedAt == nil {
		t.Error("Expected a finish timestamp")
	}
}
