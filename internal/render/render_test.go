package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/models"
)

func ptr(d models.Date) *models.Date {
	return &d
}

func sampleResult() analytics.Result {
	running := analytics.HabitStat{
		Habit:            models.Habit{ID: "run", Name: "Running", Unit: "km"},
		TotalEntries:     3,
		TotalQuantity:    decimal.NewFromInt(15),
		AveragePerDay:    decimal.NewFromInt(3),
		DaysTracked:      3,
		ConsistencyRate:  decimal.NewFromInt(60),
		BestDayQuantity:  decimal.NewFromInt(7),
		BestDayDate:      ptr(models.Date{Year: 2024, Month: 6, Day: 2}),
		WorstDayQuantity: decimal.NewFromInt(3),
		WorstDayDate:     ptr(models.Date{Year: 2024, Month: 6, Day: 1}),
	}
	idle := analytics.HabitStat{
		Habit:           models.Habit{ID: "idle", Name: "Stretching", Unit: "minutes"},
		TotalQuantity:   decimal.Zero,
		AveragePerDay:   decimal.Zero,
		ConsistencyRate: decimal.Zero,
	}
	return analytics.Result{
		DateRange:           "01-06-2024 to 05-06-2024",
		TotalDays:           5,
		HabitStats:          []analytics.HabitStat{running, idle},
		MostConsistentHabit: &running,
		MostActiveHabit:     &running,
	}
}

func TestAnalyticsTable(t *testing.T) {
	out := AnalyticsTable(sampleResult())

	for _, want := range []string{
		"Habit", "Daily average", "Worst day",
		"Running", "15 km", "3.00 km", "3/5 (60.0%)",
		"7 km (02-06-2024)", "3 km (01-06-2024)",
		"Stretching", "0/5 (0.0%)", "N/A",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestSummaryPanel(t *testing.T) {
	out := SummaryPanel(sampleResult())
	for _, want := range []string{"Most Consistent: Running (60.0%)", "Most Active: Running (15 km)", "Total Habits Analyzed: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected panel to contain %q:\n%s", want, out)
		}
	}

	empty := SummaryPanel(analytics.Result{HabitStats: []analytics.HabitStat{}})
	if !strings.Contains(empty, "No habits to analyze.") {
		t.Errorf("Expected empty message, got:\n%s", empty)
	}
}

func TestAnalyticsReport(t *testing.T) {
	out := AnalyticsReport(sampleResult(), "Last 7 Days")
	if !strings.Contains(out, "Habit Analytics: Last 7 Days (01-06-2024 to 05-06-2024)") {
		t.Errorf("Expected heading, got:\n%s", out)
	}

	out = AnalyticsReport(analytics.Result{DateRange: "01-06-2024 to 01-06-2024", HabitStats: []analytics.HabitStat{}}, "")
	if strings.Contains(out, "Daily average") {
		t.Errorf("Expected no table for empty result:\n%s", out)
	}
}

func TestBarChart(t *testing.T) {
	out := BarChart("Counts", []Bar{
		{Label: "Water", Value: decimal.NewFromInt(10), Unit: "glasses"},
		{Label: "Run", Value: decimal.NewFromInt(5), Unit: "km"},
		{Label: "Zero", Value: decimal.Zero},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var water, run, zero string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "Water"):
			water = l
		case strings.HasPrefix(l, "Run"):
			run = l
		case strings.HasPrefix(l, "Zero"):
			zero = l
		}
	}
	if got := strings.Count(water, "█"); got != BarWidth {
		t.Errorf("Expected longest bar of %d, got %d", BarWidth, got)
	}
	if got := strings.Count(run, "█"); got != BarWidth/2 {
		t.Errorf("Expected half bar of %d, got %d", BarWidth/2, got)
	}
	if strings.Contains(zero, "█") {
		t.Errorf("Expected no bar for zero value: %q", zero)
	}
	if !strings.HasSuffix(water, "10 glasses") {
		t.Errorf("Expected value suffix, got %q", water)
	}

	if !strings.Contains(BarChart("", nil), "Nothing to show.") {
		t.Error("Expected empty chart message")
	}
}

func TestDailyResume(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Name: "Water", Unit: "glasses"},
		{ID: "b", Name: "Reading", Unit: "pages"},
	}
	entries := []models.HabitEntry{
		{HabitID: "b", Quantity: decimal.RequireFromString("12.5")},
	}

	out := DailyResume(models.Date{Year: 2024, Month: 6, Day: 1}, habits, entries)
	if !strings.Contains(out, "Daily resume: 01-06-2024") {
		t.Errorf("Expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "12.5 pages") {
		t.Errorf("Expected Reading bar, got:\n%s", out)
	}
	if strings.Contains(out, "Water") {
		t.Errorf("Expected habit without entry to be omitted:\n%s", out)
	}
}

func TestHabitTable(t *testing.T) {
	if !strings.Contains(HabitTable(nil), "No habits yet") {
		t.Error("Expected empty message")
	}
	out := HabitTable([]models.Habit{{Name: "Reading", Unit: "pages", TotalEntries: 4}})
	for _, want := range []string{"Reading", "pages", "4"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}
