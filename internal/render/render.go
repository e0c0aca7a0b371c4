// Package render turns habits, entries and analytics results into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// BarWidth is the width of the longest bar in a chart.
const BarWidth = 40

// Bar is one labelled value in a bar chart.
type Bar struct {
	Label string
	Value decimal.Decimal
	Unit  string
}

func Title(s string) string {
	return titleStyle.Render(s)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Quantity renders q with its unit, trimming trailing zeros.
func Quantity(q decimal.Decimal, unit string) string {
	if unit == "" {
		return q.String()
	}
	return q.String() + " " + unit
}

func dayValue(q decimal.Decimal, unit string, d *models.Date) string {
	if d == nil {
		return constants.NotApplicable
	}
	return fmt.Sprintf("%s (%s)", Quantity(q, unit), d.Display())
}

// AnalyticsTable renders one row per habit statistic.
func AnalyticsTable(result analytics.Result) string {
	t := newTable("Habit", "Total", "Daily average", "Tracked days", "Best day", "Worst day")
	for _, s := range result.HabitStats {
		unit := s.Habit.Unit
		t.Row(
			s.Habit.Name,
			Quantity(s.TotalQuantity, unit),
			s.AveragePerDay.StringFixed(constants.AverageDecimals)+" "+unit,
			fmt.Sprintf("%d/%d (%s%%)", s.DaysTracked, result.TotalDays, s.ConsistencyRate.StringFixed(constants.ConsistencyDecimals)),
			dayValue(s.BestDayQuantity, unit, s.BestDayDate),
			dayValue(s.WorstDayQuantity, unit, s.WorstDayDate),
		)
	}
	return t.String()
}

// SummaryPanel renders the cross-habit picks in a bordered panel.
func SummaryPanel(result analytics.Result) string {
	if len(result.HabitStats) == 0 {
		return panelStyle.Render(mutedStyle.Render("No habits to analyze."))
	}

	mc, ma := result.MostConsistentHabit, result.MostActiveHabit
	lines := []string{
		fmt.Sprintf("Most Consistent: %s (%s%%)",
			highlightStyle.Render(mc.Habit.Name), mc.ConsistencyRate.StringFixed(constants.ConsistencyDecimals)),
		fmt.Sprintf("Most Active: %s (%s)",
			highlightStyle.Render(ma.Habit.Name), Quantity(ma.TotalQuantity, ma.Habit.Unit)),
		fmt.Sprintf("Total Habits Analyzed: %d", len(result.HabitStats)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// AnalyticsReport renders the full report: heading, table and summary.
func AnalyticsReport(result analytics.Result, description string) string {
	heading := "Habit Analytics: " + result.DateRange
	if description != "" {
		heading = fmt.Sprintf("Habit Analytics: %s (%s)", description, result.DateRange)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if len(result.HabitStats) > 0 {
		b.WriteString(AnalyticsTable(result))
		b.WriteString("\n")
	}
	b.WriteString(SummaryPanel(result))
	b.WriteString("\n")
	return b.String()
}

// BarChart renders horizontal bars scaled to the largest value.
func BarChart(title string, bars []Bar) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	if len(bars) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to show."))
		b.WriteString("\n")
		return b.String()
	}

	labelWidth := 0
	top := decimal.Zero
	for _, bar := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
		if bar.Value.GreaterThan(top) {
			top = bar.Value
		}
	}

	width := decimal.NewFromInt(BarWidth)
	for _, bar := range bars {
		n := 0
		if top.IsPositive() && bar.Value.IsPositive() {
			n = int(bar.Value.Mul(width).DivRound(top, 0).IntPart())
			if n == 0 {
				n = 1
			}
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(bar.Label))
		fmt.Fprintf(&b, "%s%s %s %s\n",
			bar.Label, pad,
			barStyle.Render(strings.Repeat("█", n)),
			Quantity(bar.Value, bar.Unit),
		)
	}
	return b.String()
}

// EntryCounts charts how many entries each habit has.
func EntryCounts(counts []models.HabitEntryCount) string {
	bars := make([]Bar, len(counts))
	for i, c := range counts {
		bars[i] = Bar{Label: c.HabitName, Value: decimal.NewFromInt(int64(c.Count)), Unit: "entries"}
	}
	return BarChart("Entries per habit", bars)
}

// DailyResume charts one day's entries. habits supplies names and units in
// display order; habits without an entry that day are omitted.
func DailyResume(day models.Date, habits []models.Habit, entries []models.HabitEntry) string {
	byHabit := make(map[string]models.HabitEntry, len(entries))
	for _, e := range entries {
		byHabit[e.HabitID] = e
	}

	var bars []Bar
	for _, h := range habits {
		if e, ok := byHabit[h.ID]; ok {
			bars = append(bars, Bar{Label: h.Name, Value: e.Quantity, Unit: h.Unit})
		}
	}
	return BarChart("Daily resume: "+day.Display(), bars)
}

// HabitTable lists habits with their entry counts.
func HabitTable(habits []models.Habit) string {
	if len(habits) == 0 {
		return mutedStyle.Render("No habits yet. Add one with 'habitlog habit add'.") + "\n"
	}

	t := newTable("Name", "Unit", "Entries", "Created")
	for _, h := range habits {
		t.Row(h.Name, h.Unit, fmt.Sprintf("%d", h.TotalEntries), h.CreatedAt.Local().Format(constants.DisplayDateFormat))
	}
	return t.String() + "\n"
}
