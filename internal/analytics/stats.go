package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/models"
)

// HabitStat holds one habit's statistics over a window. It is built fresh per
// query and never persisted. Nil best/worst dates mean no entry qualified.
type HabitStat struct {
	Habit            models.Habit
	TotalEntries     int
	TotalQuantity    decimal.Decimal
	AveragePerDay    decimal.Decimal
	AveragePerEntry  decimal.Decimal
	DaysTracked      int
	ConsistencyRate  decimal.Decimal
	BestDayQuantity  decimal.Decimal
	BestDayDate      *models.Date
	WorstDayQuantity decimal.Decimal
	WorstDayDate     *models.Date
}

// Result is the cross-habit analytics report for one window.
type Result struct {
	DateRange  string
	TotalDays  int
	HabitStats []HabitStat

	// Summary picks are copies of entries in HabitStats, nil when it is empty.
	MostConsistentHabit *HabitStat
	MostActiveHabit     *HabitStat
}
