package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// Engine derives per-habit statistics from store aggregates.
type Engine struct {
	store storage.AggregateReader
}

func NewEngine(store storage.AggregateReader) *Engine {
	return &Engine{store: store}
}

// ComputeHabitStatistics returns the habit's statistics between start and end,
// inclusive. A nil habit, or one without an ID, yields (nil, nil). Store errors
// are returned wrapped. A window with no days yields zero rate and averages.
func (e *Engine) ComputeHabitStatistics(habit *models.Habit, start, end models.Date) (*HabitStat, error) {
	if habit == nil || habit.ID == "" {
		return nil, nil
	}

	agg, err := e.store.GetHabitAggregates(habit.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics for habit %q: %w", habit.Name, err)
	}

	days := totalDays(start, end)
	stat := &HabitStat{
		Habit:            *habit,
		TotalEntries:     agg.TotalEntries,
		TotalQuantity:    agg.TotalQuantity,
		DaysTracked:      agg.DaysTracked,
		ConsistencyRate:  decimal.Zero,
		AveragePerDay:    decimal.Zero,
		AveragePerEntry:  decimal.Zero,
		BestDayQuantity:  agg.BestDayQuantity,
		BestDayDate:      agg.BestDayDate,
		WorstDayQuantity: agg.WorstDayQuantity,
		WorstDayDate:     agg.WorstDayDate,
	}

	if days > 0 {
		n := decimal.NewFromInt(int64(days))
		stat.ConsistencyRate = decimal.NewFromInt(int64(agg.DaysTracked)).Mul(hundred).DivRound(n, constants.ConsistencyDecimals)
		stat.AveragePerDay = agg.TotalQuantity.DivRound(n, constants.AverageDecimals)
	}
	if agg.TotalEntries > 0 {
		stat.AveragePerEntry = agg.TotalQuantity.DivRound(decimal.NewFromInt(int64(agg.TotalEntries)), constants.AverageDecimals)
	}

	logger.With("habit", habit.Name).Debug("computed habit statistics",
		"window", Label(start, end),
		"entries", stat.TotalEntries,
		"consistency", stat.ConsistencyRate.String(),
	)

	return stat, nil
}
