package storage

import "github.com/julianstephens/habitlog/internal/models"

// AggregateReader is the read side the analytics engine depends on.
type AggregateReader interface {
	// GetHabitAggregates summarizes a habit's entries between start and end, inclusive.
	// Worst day only considers quantities greater than zero.
	GetHabitAggregates(habitID string, start, end models.Date) (models.HabitAggregates, error)
}

type Provider interface {
	AggregateReader

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	// AddHabit assigns the habit's ID and CreatedAt. It returns ErrHabitExists
	// when another habit already uses the name.
	AddHabit(habit *models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	HabitExists(name string) (bool, error)
	UpdateHabit(id, name, unit string) error
	// DeleteHabit removes the habit together with all of its entries.
	DeleteHabit(id string) error

	// Habit Entries
	// AddHabitEntry assigns the entry's ID. It returns ErrEntryExists when the
	// habit already has an entry for that date.
	AddHabitEntry(entry *models.HabitEntry) error
	HabitEntryExists(habitID string, day models.Date) (bool, error)
	GetHabitEntriesForHabit(habitID string, start, end models.Date) ([]models.HabitEntry, error)
	GetHabitEntriesForDate(day models.Date, habitIDs []string) ([]models.HabitEntry, error)
	GetEntryCounts() ([]models.HabitEntryCount, error)

	// Utils
	GetConfigPath() string
}
