package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func createTestSeason() model.SeasonData {
	number := 1
	return model.SeasonData{
		Season: 2025,
		Messages: []model.EventMessage{
			{SessionID: "R1", RawText: "CAR 1 (VER) CAUSING A COLLISION PENALTY", DriverNumber: &number},
			{SessionID: "R1", RawText: "SAFETY CAR DEPLOYED"},
		},
		Laps: []model.LapRecord{
			{DriverID: "VER", SessionID: "R1", LapNumber: 1, LapTime: 80.1, TyreCompound: "SOFT"},
			{DriverID: "VER", SessionID: "R1", LapNumber: 2, LapTime: 80.3, TyreCompound: "SOFT", IsOutlier: true},
		},
		Results: []model.SessionResult{
			{SessionID: "R1", DriverID: "VER", RacingNumber: 1, Points: 25, GridPosition: 1, FinishPosition: 1, QualifyingTime: 79.5},
			{SessionID: "R1", DriverID: "TSU", RacingNumber: 22, Points: 10, GridPosition: 6, FinishPosition: 5},
		},
	}
}

func TestSQLiteStorage_SaveSeasonRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	data := createTestSeason()
	if err := store.SaveSeason(ctx, data); err != nil {
		t.Fatalf("Failed to save season: %v", err)
	}

	loaded, err := store.LoadSeason(ctx, 2025)
	if err != nil {
		t.Fatalf("Failed to load season: %v", err)
	}

	if len(loaded.Messages) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[0].DriverNumber == nil || *loaded.Messages[0].DriverNumber != 1 {
		t.Errorf("Driver number not preserved: %v", loaded.Messages[0].DriverNumber)
	}
	if loaded.Messages[1].DriverNumber != nil {
		t.Errorf("Expected nil driver number, got %d", *loaded.Messages[1].DriverNumber)
	}
	if len(loaded.Laps) != 2 {
		t.Errorf("Expected 2 laps, got %d", len(loaded.Laps))
	}
	if !loaded.Laps[1].IsOutlier {
		t.Error("Outlier flag not preserved")
	}
	if len(loaded.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(loaded.Results))
	}
	// TSU set no qualifying time; the zero must round-trip as missing.
	for _, res := range loaded.Results {
		if res.DriverID == "TSU" && res.HasQualifyingTime() {
			t.Errorf("Expected missing qualifying time for TSU, got %f", res.QualifyingTime)
		}
		if res.DriverID == "VER" && res.QualifyingTime != 79.5 {
			t.Errorf("Expected qualifying time 79.5 for VER, got %f", res.QualifyingTime)
		}
	}
}

func TestSQLiteStorage_SaveSeasonIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	data := createTestSeason()
	if err := store.SaveSeason(ctx, data); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := store.SaveSeason(ctx, data); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, err := store.LoadSeason(ctx, 2025)
	if err != nil {
		t.Fatalf("Failed to load season: %v", err)
	}
	if len(loaded.Messages) != 2 || len(loaded.Laps) != 2 || len(loaded.Results) != 2 {
		t.Errorf("Re-ingest duplicated rows: %d messages, %d laps, %d results",
			len(loaded.Messages), len(loaded.Laps), len(loaded.Results))
	}
}

func TestSQLiteStorage_SeasonsAreIsolated(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := createTestSeason()
	second := createTestSeason()
	second.Season = 2026

	if err := store.SaveSeason(ctx, first); err != nil {
		t.Fatalf("Failed to save 2025: %v", err)
	}
	if err := store.SaveSeason(ctx, second); err != nil {
		t.Fatalf("Failed to save 2026: %v", err)
	}

	seasons, err := store.GetSeasons(ctx)
	if err != nil {
		t.Fatalf("Failed to list seasons: %v", err)
	}
	if len(seasons) != 2 || seasons[0] != 2025 || seasons[1] != 2026 {
		t.Errorf("Expected [2025 2026], got %v", seasons)
	}

	loaded, err := store.LoadSeason(ctx, 2026)
	if err != nil {
		t.Fatalf("Failed to load 2026: %v", err)
	}
	if loaded.Season != 2026 || len(loaded.Results) != 2 {
		t.Errorf("Season 2026 not isolated: %+v", loaded)
	}
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := NewSQLiteStorage(""); err == nil {
		t.Error("Expected error for empty db path")
	}

	bad := createTestSeason()
	bad.Season = 0
	if err := store.SaveSeason(ctx, bad); err == nil {
		t.Error("Expected error for invalid season")
	}

	bad = createTestSeason()
	bad.Laps[0].LapTime = -1
	if err := store.SaveSeason(ctx, bad); err == nil {
		t.Error("Expected error for invalid lap")
	}

	if _, err := store.LoadSeason(ctx, 12); err == nil {
		t.Error("Expected error for invalid season on load")
	}
}
