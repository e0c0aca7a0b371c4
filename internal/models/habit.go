package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Habit is a user-defined activity measured in Unit.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`

	// TotalEntries is derived by list queries and never stored.
	TotalEntries int `json:"total_entries"`
}

// HabitEntry is the quantity logged for one habit on one day.
type HabitEntry struct {
	ID       string          `json:"id"`
	HabitID  string          `json:"habit_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Date     Date            `json:"date"`
}

// HabitEntryCount pairs a habit name with its number of entries.
type HabitEntryCount struct {
	HabitID   string
	HabitName string
	Count     int
}
