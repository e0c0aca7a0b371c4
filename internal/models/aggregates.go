package models

import "github.com/shopspring/decimal"

// HabitAggregates is the raw per-habit summary of a date window.
// A nil BestDayDate or WorstDayDate means no entry qualified.
type HabitAggregates struct {
	TotalEntries     int
	TotalQuantity    decimal.Decimal
	DaysTracked      int
	BestDayQuantity  decimal.Decimal
	BestDayDate      *Date
	WorstDayQuantity decimal.Decimal
	WorstDayDate     *Date
}

// SummarizeEntries folds entries into HabitAggregates in a single pass.
// On equal quantities the earliest date wins both best and worst day.
// Worst day only considers quantities > 0.
func SummarizeEntries(entries []HabitEntry) HabitAggregates {
	agg := HabitAggregates{
		TotalQuantity:    decimal.Zero,
		BestDayQuantity:  decimal.Zero,
		WorstDayQuantity: decimal.Zero,
	}
	seen := make(map[Date]struct{}, len(entries))

	for i := range entries {
		e := entries[i]
		agg.TotalEntries++
		agg.TotalQuantity = agg.TotalQuantity.Add(e.Quantity)
		seen[e.Date] = struct{}{}

		if agg.BestDayDate == nil || beats(e, agg.BestDayQuantity, *agg.BestDayDate, 1) {
			d := e.Date
			agg.BestDayQuantity = e.Quantity
			agg.BestDayDate = &d
		}
		if e.Quantity.IsPositive() && (agg.WorstDayDate == nil || beats(e, agg.WorstDayQuantity, *agg.WorstDayDate, -1)) {
			d := e.Date
			agg.WorstDayQuantity = e.Quantity
			agg.WorstDayDate = &d
		}
	}

	agg.DaysTracked = len(seen)
	return agg
}

// beats reports whether e should replace the current pick. dir is 1 for max, -1 for min.
func beats(e HabitEntry, q decimal.Decimal, d Date, dir int) bool {
	if c := e.Quantity.Cmp(q); c != 0 {
		return c == dir
	}
	return e.Date.Before(d)
}
