package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, habits ...string) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "habitlog.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer store.Close()

	for _, name := range habits {
		if err := store.AddHabit(&models.Habit{Name: name, Unit: "times"}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}
	return dbPath
}

func habitNames(t *testing.T, dbPath string) []string {
	t.Helper()

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load database: %v", err)
	}
	defer store.Close()

	habits, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	names := make([]string, len(habits))
	for i, h := range habits {
		names[i] = h.Name
	}
	return names
}

// clock returns a now func that advances one second per call.
func clock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, "Reading")
	mgr := NewManager(dbPath)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if info.Size == 0 {
		t.Error("Expected non-empty backup")
	}
	if filepath.Dir(info.Path) != mgr.Dir() {
		t.Errorf("Expected backup in %s, got %s", mgr.Dir(), info.Path)
	}
	if err := Verify(info.Path); err != nil {
		t.Errorf("Backup failed verification: %v", err)
	}
	if names := habitNames(t, info.Path); len(names) != 1 || names[0] != "Reading" {
		t.Errorf("Expected backup to contain Reading, got %v", names)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Expected error for missing database")
	}
}

func TestCreateSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Fatal("Expected distinct backup paths")
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("Expected 2 backups, got %d", len(backups))
	}

	latest, ok, err := mgr.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest failed: ok=%v err=%v", ok, err)
	}
	if latest.Path != second.Path {
		t.Errorf("Expected latest %s, got %s", second.Name(), latest.Name())
	}
}

func TestListOrdersCountersNumerically(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	var last Info
	for i := 0; i < 11; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatal(err)
		}
		last = info
	}
	if filepath.Base(last.Path) != "habitlog-20240601-120000-10.db" {
		t.Fatalf("Unexpected backup name %s", last.Name())
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if backups[0].Path != last.Path {
		t.Errorf("Expected %s first, got %s", last.Name(), backups[0].Name())
	}
	if backups[len(backups)-1].Name() != "habitlog-20240601-120000.db" {
		t.Errorf("Expected unsuffixed backup last, got %s", backups[len(backups)-1].Name())
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = clock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))

	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", constants.BackupFilePrefix + "garbage.db", constants.BackupFilePrefix + "20240601-120000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("Expected 1 backup, got %d", len(backups))
	}
}

func TestListWithoutDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitlog.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected no backups, got %d", len(backups))
	}
	if _, ok, err := mgr.Latest(); ok || err != nil {
		t.Errorf("Expected no latest backup, got ok=%v err=%v", ok, err)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	mgr.now = clock(start)

	var last Info
	for i := 0; i < constants.MaxBackups+3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		last = info
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("Expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	latest, ok, err := mgr.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest failed: ok=%v err=%v", ok, err)
	}
	if latest.Path != last.Path {
		t.Errorf("Expected latest %s, got %s", last.Path, latest.Path)
	}
	oldest := backups[len(backups)-1]
	if !oldest.Timestamp.Equal(start.Add(4 * time.Second)) {
		t.Errorf("Expected oldest kept backup at +4s, got %s", oldest.Timestamp)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t, "Reading")
	mgr := NewManager(dbPath)
	mgr.now = clock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.AddHabit(&models.Habit{Name: "Running", Unit: "km"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	previous, err := mgr.Restore(snapshot.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if previous == nil {
		t.Fatal("Expected pre-restore backup")
	}

	if names := habitNames(t, dbPath); len(names) != 1 || names[0] != "Reading" {
		t.Errorf("Expected restored database to hold only Reading, got %v", names)
	}
	if names := habitNames(t, previous.Path); len(names) != 2 {
		t.Errorf("Expected pre-restore backup to hold 2 habits, got %v", names)
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("Expected error for missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("Expected error for invalid backup")
	}
}
