package storage

import (
	"context"
	"testing"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func createTestIncidents() []model.Incident {
	return []model.Incident{
		{DriverID: "VER", SessionID: "R1", Kind: model.KindCausedCollision, Severity: 10},
		{DriverID: "TSU", SessionID: "R1", Kind: model.KindPenalty10s, Severity: 8},
		{DriverID: "TSU", SessionID: "R3", Kind: model.KindCrashBarrier, Severity: 8},
	}
}

func TestSQLiteStorage_SaveIncidentsRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveIncidents(ctx, 2025, createTestIncidents()); err != nil {
		t.Fatalf("Failed to save incidents: %v", err)
	}

	incidents, err := store.GetIncidents(ctx, 2025)
	if err != nil {
		t.Fatalf("Failed to get incidents: %v", err)
	}
	if len(incidents) != 3 {
		t.Fatalf("Expected 3 incidents, got %d", len(incidents))
	}
	if incidents[0].Kind != model.KindCausedCollision || incidents[0].Severity != 10 {
		t.Errorf("First incident not preserved: %+v", incidents[0])
	}

	tsu, err := store.GetIncidentsByDriver(ctx, 2025, "TSU")
	if err != nil {
		t.Fatalf("Failed to get incidents by driver: %v", err)
	}
	if len(tsu) != 2 {
		t.Errorf("Expected 2 TSU incidents, got %d", len(tsu))
	}
}

func TestSQLiteStorage_SaveIncidentsReplacesPrior(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveIncidents(ctx, 2025, createTestIncidents()); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	rerun := []model.Incident{
		{DriverID: "NOR", SessionID: "R2", Kind: model.KindPenalty5s, Severity: 5},
	}
	if err := store.SaveIncidents(ctx, 2025, rerun); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	incidents, err := store.GetIncidents(ctx, 2025)
	if err != nil {
		t.Fatalf("Failed to get incidents: %v", err)
	}
	if len(incidents) != 1 || incidents[0].DriverID != "NOR" {
		t.Errorf("Rerun did not replace prior incidents: %+v", incidents)
	}
}

func TestSQLiteStorage_GetIncidentsEmptySeason(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	incidents, err := store.GetIncidents(context.Background(), 2030)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(incidents) != 0 {
		t.Errorf("Expected no incidents, got %d", len(incidents))
	}
}
