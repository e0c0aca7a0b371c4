package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/models"
)

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New("end date cannot be before start date")

// DateRange is an inclusive window of calendar days.
type DateRange struct {
	Start       models.Date
	End         models.Date
	Description string
}

// NewDateRange validates that end is not before start.
func NewDateRange(start, end models.Date, description string) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: %s to %s", ErrInvalidRange, start.Display(), end.Display())
	}
	if description == "" {
		description = Label(start, end)
	}
	return DateRange{Start: start, End: end, Description: description}, nil
}

// TotalDays counts both endpoints.
func (r DateRange) TotalDays() int {
	return totalDays(r.Start, r.End)
}

func totalDays(start, end models.Date) int {
	return end.DaysSince(start) + 1
}

// Label renders "DD-MM-YYYY to DD-MM-YYYY".
func Label(start, end models.Date) string {
	return start.Display() + " to " + end.Display()
}

// Preset names a commonly used window relative to today.
type Preset string

const (
	PresetLast7Days  Preset = "last-7-days"
	PresetLast14Days Preset = "last-14-days"
	PresetLast30Days Preset = "last-30-days"
	PresetThisMonth  Preset = "this-month"
	PresetLastMonth  Preset = "last-month"
	PresetCustom     Preset = "custom"
)

// Presets lists the relative presets in menu order.
var Presets = []Preset{
	PresetLast7Days,
	PresetLast14Days,
	PresetLast30Days,
	PresetThisMonth,
	PresetLastMonth,
}

var presetDescriptions = map[Preset]string{
	PresetLast7Days:  "Last 7 Days",
	PresetLast14Days: "Last 14 Days",
	PresetLast30Days: "Last 30 Days",
	PresetThisMonth:  "This Month",
	PresetLastMonth:  "Last Month",
	PresetCustom:     "Custom Date Range",
}

func (p Preset) Description() string {
	if d, ok := presetDescriptions[p]; ok {
		return d
	}
	return string(p)
}

// ParsePreset accepts a preset name case-insensitively, with '_' or '-' separators.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := presetDescriptions[p]; !ok {
		return "", fmt.Errorf("unknown date range %q", s)
	}
	return p, nil
}

// PresetRange resolves a relative preset against today. The "last N days"
// presets start N days before today and include today.
func PresetRange(p Preset, today models.Date) (DateRange, error) {
	var start, end models.Date

	switch p {
	case PresetLast7Days:
		start, end = today.AddDays(-7), today
	case PresetLast14Days:
		start, end = today.AddDays(-14), today
	case PresetLast30Days:
		start, end = today.AddDays(-30), today
	case PresetThisMonth:
		start, end = today.FirstOfMonth(), today
	case PresetLastMonth:
		first := today.FirstOfMonth()
		start, end = first.AddMonths(-1), first.AddDays(-1)
	case PresetCustom:
		return DateRange{}, fmt.Errorf("custom range requires explicit start and end dates")
	default:
		return DateRange{}, fmt.Errorf("unknown date range %q", p)
	}

	return NewDateRange(start, end, p.Description())
}
