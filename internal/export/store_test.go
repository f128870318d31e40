package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates an in-memory SQLite store for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestNewStore(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store := createTestStore(t)
		if store.db == nil {
			t.Error("store database is nil")
		}
	})

	t.Run("file-based database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.db")

		store, err := NewStore(path)
		if err != nil {
			t.Fatalf("failed to create file-based store: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("failed to close store: %v", err)
		}

		// Reopening an existing database keeps the schema
		store, err = NewStore(path)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		_ = store.Close()
	})
}

func TestStoreReplaceSource(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := []TrackRecord{
		{TrackID: "t1", Name: "One", Artist: "A", Album: "X", Duration: 3 * time.Minute},
		{TrackID: "t2", Name: "Two", Artist: "B"},
		{TrackID: "t1", Name: "One again", Artist: "A"},
	}

	stored, err := store.ReplaceSource(ctx, SourceLibrary, first)
	if err != nil {
		t.Fatalf("ReplaceSource() error = %v", err)
	}
	if stored != 2 {
		t.Errorf("stored = %d, want 2 (duplicate skipped)", stored)
	}

	records, err := store.List(ctx, SourceLibrary, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 || records[0].Name != "One" || records[1].TrackID != "t2" {
		t.Fatalf("unexpected records %+v", records)
	}
	if records[0].Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m", records[0].Duration)
	}

	// A second export replaces the first one
	stored, err = store.ReplaceSource(ctx, SourceLibrary, []TrackRecord{{TrackID: "t3", Name: "Three", Artist: "C"}})
	if err != nil {
		t.Fatalf("ReplaceSource() error = %v", err)
	}
	if stored != 1 {
		t.Errorf("stored = %d, want 1", stored)
	}

	count, err := store.Count(ctx, SourceLibrary)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestStoreSourcesAreIndependent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if _, err := store.ReplaceSource(ctx, SourceLibrary, []TrackRecord{{TrackID: "t1", Name: "One", Artist: "A"}}); err != nil {
		t.Fatal(err)
	}
	playlist := PlaylistSource("pl1")
	if _, err := store.ReplaceSource(ctx, playlist, []TrackRecord{
		{TrackID: "t1", Name: "One", Artist: "A"},
		{TrackID: "t2", Name: "Two", Artist: "B"},
	}); err != nil {
		t.Fatal(err)
	}

	total, err := store.Count(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("Count(all) = %d, want 3", total)
	}

	sources, err := store.Sources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 || sources[0] != SourceLibrary || sources[1] != playlist {
		t.Errorf("Sources() = %v", sources)
	}

	limited, err := store.List(ctx, playlist, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].TrackID != "t1" {
		t.Errorf("List(limit 1) = %+v", limited)
	}
}

func TestStoreEmptyReplace(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if _, err := store.ReplaceSource(ctx, SourceLibrary, []TrackRecord{{TrackID: "t1", Name: "One", Artist: "A"}}); err != nil {
		t.Fatal(err)
	}
	stored, err := store.ReplaceSource(ctx, SourceLibrary, nil)
	if err != nil {
		t.Fatalf("ReplaceSource(nil) error = %v", err)
	}
	if stored != 0 {
		t.Errorf("stored = %d, want 0", stored)
	}

	count, _ := store.Count(ctx, SourceLibrary)
	if count != 0 {
		t.Errorf("Count() = %d after emptying, want 0", count)
	}
}
