package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func addHabit(t *testing.T, store *Store, name, unit string) models.Habit {
	t.Helper()
	h := models.Habit{Name: name, Unit: unit}
	if err := store.AddHabit(&h); err != nil {
		t.Fatalf("failed to add habit %q: %v", name, err)
	}
	return h
}

func addEntry(t *testing.T, store *Store, habitID, day, qty string) {
	t.Helper()
	e := models.HabitEntry{HabitID: habitID, Date: mustDate(t, day), Quantity: decimal.RequireFromString(qty)}
	if err := store.AddHabitEntry(&e); err != nil {
		t.Fatalf("failed to add entry %s=%s: %v", day, qty, err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
		if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
			t.Errorf("Load() error = %v, want ErrNotInitialized", err)
		}
	})

	t.Run("file without schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.db")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}
		store := NewStore(path)
		if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
			t.Fatalf("Load() error = %v, want ErrNotInitialized", err)
		}
		if store.db != nil {
			t.Error("Load() left the database handle open")
		}
		if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
			t.Errorf("second Load() error = %v, want ErrNotInitialized", err)
		}
	})

	t.Run("after init", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "habits.db")
		first := NewStore(path)
		if err := first.Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}
		first.Close()

		second := NewStore(path)
		defer second.Close()
		if err := second.Load(); err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if _, err := second.GetAllHabits(); err != nil {
			t.Errorf("GetAllHabits() after Load failed: %v", err)
		}
	})
}

func TestTableExists(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"habits", "HABIT_ENTRIES"} {
		exists, err := store.tableExists(table)
		if err != nil {
			t.Fatalf("tableExists(%s) error: %v", table, err)
		}
		if !exists {
			t.Errorf("tableExists(%s) = false, want true", table)
		}
	}

	exists, err := store.tableExists("drinking_water")
	if err != nil {
		t.Fatalf("tableExists error: %v", err)
	}
	if exists {
		t.Error("tableExists(drinking_water) = true, want false")
	}
}

func addHabitErr(store *Store, name, unit string) error {
	h := models.Habit{Name: name, Unit: unit}
	return store.AddHabit(&h)
}
