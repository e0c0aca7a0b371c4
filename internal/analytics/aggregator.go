package analytics

import (
	"sync"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
)

// Aggregator runs the engine over a habit list and picks cross-habit summaries.
type Aggregator struct {
	engine *Engine

	// Workers bounds how many habits are computed at once. Values below 2
	// compute sequentially on the calling goroutine.
	Workers int
}

func NewAggregator(engine *Engine) *Aggregator {
	return &Aggregator{engine: engine, Workers: constants.DefaultWorkers}
}

// GetHabitAnalytics computes statistics for each habit between start and end,
// keeping input order. Habits the engine reports as absent are skipped. The
// first store error, in input order, aborts the report.
func (a *Aggregator) GetHabitAnalytics(start, end models.Date, habits []models.Habit) (Result, error) {
	result := Result{
		DateRange:  Label(start, end),
		TotalDays:  totalDays(start, end),
		HabitStats: []HabitStat{},
	}

	stats, err := a.computeAll(start, end, habits)
	if err != nil {
		return Result{}, err
	}

	for _, s := range stats {
		if s != nil {
			result.HabitStats = append(result.HabitStats, *s)
		}
	}

	summarize(&result)

	logger.Debug("computed habit analytics",
		"range", result.DateRange,
		"habits", len(habits),
		"stats", len(result.HabitStats),
	)

	return result, nil
}

// computeAll returns one slot per input habit; slots for absent habits are nil.
func (a *Aggregator) computeAll(start, end models.Date, habits []models.Habit) ([]*HabitStat, error) {
	stats := make([]*HabitStat, len(habits))
	errs := make([]error, len(habits))

	workers := a.Workers
	if workers > constants.MaxWorkers {
		workers = constants.MaxWorkers
	}

	if workers < 2 || len(habits) < 2 {
		for i := range habits {
			s, err := a.engine.ComputeHabitStatistics(&habits[i], start, end)
			if err != nil {
				return nil, err
			}
			stats[i] = s
		}
		return stats, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				stats[i], errs[i] = a.engine.ComputeHabitStatistics(&habits[i], start, end)
			}
		}()
	}
	for i := range habits {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// summarize fills the summary picks. Each is a stable argmax: the first stat
// with the maximal value wins, and HabitStats is left untouched.
func summarize(result *Result) {
	if len(result.HabitStats) == 0 {
		return
	}

	consistent, active := 0, 0
	for i := 1; i < len(result.HabitStats); i++ {
		s := result.HabitStats[i]
		if s.ConsistencyRate.GreaterThan(result.HabitStats[consistent].ConsistencyRate) {
			consistent = i
		}
		if s.TotalQuantity.GreaterThan(result.HabitStats[active].TotalQuantity) {
			active = i
		}
	}

	mc := result.HabitStats[consistent]
	ma := result.HabitStats[active]
	result.MostConsistentHabit = &mc
	result.MostActiveHabit = &ma
}
