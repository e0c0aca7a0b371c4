package seed

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

const (
	// Months of history generated before today.
	Months = 3
	// FillRate is the chance, in percent, that a habit has an entry on a given day.
	FillRate = 80
)

// Template is a demo habit with its inclusive quantity range.
type Template struct {
	Name string
	Unit string
	Min  int
	Max  int
}

var Templates = []Template{
	{Name: "Drinking Water", Unit: "glasses", Min: 4, Max: 11},
	{Name: "Running", Unit: "km", Min: 2, Max: 9},
	{Name: "Reading", Unit: "pages", Min: 10, Max: 49},
	{Name: "Meditation", Unit: "minutes", Min: 5, Max: 29},
	{Name: "Exercise", Unit: "minutes", Min: 15, Max: 89},
	{Name: "Sleep", Unit: "hours", Min: 5, Max: 8},
	{Name: "Fruits", Unit: "portions", Min: 1, Max: 4},
}

// Summary reports what Run wrote.
type Summary struct {
	Skipped bool
	Habits  int
	Entries int
}

// Seeder fills an empty store with demo habits and entries.
type Seeder struct {
	store storage.Provider
	rng   *rand.Rand
}

// New returns a seeder drawing from rng. A nil rng uses a time-seeded source.
func New(store storage.Provider, rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Seeder{store: store, rng: rng}
}

// Run creates the demo habits and their entries from Months months before
// today up to today. It does nothing when the store already holds habits.
func (s *Seeder) Run(today models.Date) (Summary, error) {
	existing, err := s.store.GetAllHabits()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to check existing habits: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("skipping seed, store already has habits", "habits", len(existing))
		return Summary{Skipped: true}, nil
	}

	var sum Summary
	start := today.AddMonths(-Months)

	for _, tmpl := range Templates {
		habit := models.Habit{Name: tmpl.Name, Unit: tmpl.Unit}
		if err := s.store.AddHabit(&habit); err != nil {
			return sum, fmt.Errorf("failed to seed habit %q: %w", tmpl.Name, err)
		}
		sum.Habits++

		for d := start; !d.After(today); d = d.AddDays(1) {
			if s.rng.IntN(100) >= FillRate {
				continue
			}
			entry := models.HabitEntry{
				HabitID:  habit.ID,
				Date:     d,
				Quantity: decimal.NewFromInt(int64(tmpl.Min + s.rng.IntN(tmpl.Max-tmpl.Min+1))),
			}
			if err := s.store.AddHabitEntry(&entry); err != nil {
				return sum, fmt.Errorf("failed to seed %s entry for %s: %w", tmpl.Name, d, err)
			}
			sum.Entries++
		}
	}

	logger.Info("seeded demo data", "habits", sum.Habits, "entries", sum.Entries)
	return sum, nil
}
