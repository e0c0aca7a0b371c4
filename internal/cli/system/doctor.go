package system

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/validation"
)

type DoctorCmd struct{}

// check is one diagnostic. warnOnly checks never fail the run; a failed gate
// check skips every later check that needs the database.
type check struct {
	name     string
	gate     bool
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) (string, error)
}

var checks = []check{
	{name: "Database reachable", gate: true, run: checkDBReachable},
	{name: "Schema", needsDB: true, run: checkSchema},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Habit integrity", needsDB: true, run: checkHabitsIntegrity},
	{name: "Entry integrity", needsDB: true, run: checkEntriesIntegrity},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		detail, err := c.run(ctx)
		switch {
		case err != nil && c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		case err != nil:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gate {
				dbReachable = false
			}
		case detail != "":
			ctx.Printf("✓ %s: OK (%s)\n", c.name, detail)
		default:
			ctx.Printf("✓ %s: OK\n", c.name)
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return "", fmt.Errorf("database connection is nil")
		}
		var one int
		if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
			return "", fmt.Errorf("failed to query database: %w", err)
		}
	}

	fi, err := os.Stat(ctx.Store.GetConfigPath())
	if err != nil {
		return "", nil
	}
	return humanize.Bytes(uint64(fi.Size())), nil
}

func checkSchema(ctx *cli.Context) (string, error) {
	return "", backup.Verify(ctx.Store.GetConfigPath())
}

func checkBackupsPresent(ctx *cli.Context) (string, error) {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	latest, ok, err := mgr.Latest()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no backups found in %s (run 'habitlog backup create')", mgr.Dir())
	}
	return "latest " + humanize.Time(latest.Timestamp), nil
}

func checkHabitsIntegrity(ctx *cli.Context) (string, error) {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return "", err
	}
	result := validation.New(ctx.Today()).ValidateHabits(habits)
	if result.HasConflicts() {
		return "", fmt.Errorf("%s", result.FormatReport())
	}
	return fmt.Sprintf("%d habits", len(habits)), nil
}

// allTime spans every date an entry could carry.
var allTime = [2]models.Date{{Year: 1, Month: 1, Day: 1}, {Year: 9999, Month: 12, Day: 31}}

func checkEntriesIntegrity(ctx *cli.Context) (string, error) {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return "", err
	}

	v := validation.New(ctx.Today())
	var all validation.ValidationResult
	total := 0
	for _, h := range habits {
		entries, err := ctx.Store.GetHabitEntriesForHabit(h.ID, allTime[0], allTime[1])
		if err != nil {
			return "", err
		}
		total += len(entries)
		r := v.ValidateEntries(h, entries)
		all.Conflicts = append(all.Conflicts, r.Conflicts...)
	}

	if all.HasConflicts() {
		return "", fmt.Errorf("%s", all.FormatReport())
	}
	return fmt.Sprintf("%d entries", total), nil
}
