package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/validation"
)

type ReportCmd struct {
	Counts    CountsCmd    `cmd:"" help:"Chart the number of entries per habit."`
	Resume    ResumeCmd    `cmd:"" help:"Chart one day's entries."`
	Analytics AnalyticsCmd `cmd:"" help:"Show habit statistics over a date range." default:"1"`
}

type CountsCmd struct{}

func (c *CountsCmd) Run(ctx *cli.Context) error {
	counts, err := ctx.Store.GetEntryCounts()
	if err != nil {
		return err
	}
	ctx.Printf("%s", render.EntryCounts(counts))
	return nil
}

// Day shortcuts accepted wherever a single day is asked for.
const (
	DayToday      = "today"
	DayYesterday  = "yesterday"
	DayTwoDaysAgo = "two-days-ago"
)

// ParseDay resolves a shortcut or a user-entered date against today.
func ParseDay(s string, today models.Date) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", DayToday:
		return today, nil
	case DayYesterday:
		return today.AddDays(-1), nil
	case DayTwoDaysAgo:
		return today.AddDays(-2), nil
	}
	return validation.UserDate(s, today)
}

type ResumeCmd struct {
	Date  string   `help:"Day to show: today, yesterday, two-days-ago or a date." default:"today" short:"d"`
	Habit []string `help:"Limit to these habits (repeatable). Default: all." short:"H"`
}

func (c *ResumeCmd) Run(ctx *cli.Context) error {
	day, err := ParseDay(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	habits, err := ctx.ResolveHabits(c.Habit)
	if err != nil {
		return err
	}
	return Resume(ctx, day, habits)
}

// Resume charts the entries of habits on day.
func Resume(ctx *cli.Context, day models.Date, habits []models.Habit) error {
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}

	entries, err := ctx.Store.GetHabitEntriesForDate(day, ids)
	if err != nil {
		return err
	}
	ctx.Printf("%s", render.DailyResume(day, habits, entries))
	return nil
}

type AnalyticsCmd struct {
	Range   string   `help:"Preset range: last-7-days, last-14-days, last-30-days, this-month, last-month." short:"r"`
	From    string   `help:"Custom range start (DD-MM-YYYY or YYYY-MM-DD)."`
	To      string   `help:"Custom range end (DD-MM-YYYY or YYYY-MM-DD)."`
	Habit   []string `help:"Limit to these habits (repeatable). Default: all." short:"H"`
	Workers int      `help:"Compute up to N habits concurrently." default:"0"`
}

func (c *AnalyticsCmd) Run(ctx *cli.Context) error {
	if c.Workers < 0 || c.Workers > constants.MaxWorkers {
		return fmt.Errorf("--workers must be between 1 and %d", constants.MaxWorkers)
	}

	rng, err := ResolveRange(ctx, c.Range, c.From, c.To)
	if err != nil {
		return err
	}
	habits, err := ctx.ResolveHabits(c.Habit)
	if err != nil {
		return err
	}
	return Analytics(ctx, rng, habits, c.Workers)
}

// ResolveRange builds the report window from a preset name or explicit
// from/to dates. With neither, the configured default preset is used.
func ResolveRange(ctx *cli.Context, preset, from, to string) (analytics.DateRange, error) {
	if from != "" || to != "" {
		if preset != "" && preset != string(analytics.PresetCustom) {
			return analytics.DateRange{}, fmt.Errorf("--range cannot be combined with --from/--to")
		}
		if from == "" || to == "" {
			return analytics.DateRange{}, fmt.Errorf("custom range needs both --from and --to")
		}
		start, err := validation.UserDate(from, ctx.Today())
		if err != nil {
			return analytics.DateRange{}, err
		}
		end, err := validation.UserDate(to, ctx.Today())
		if err != nil {
			return analytics.DateRange{}, err
		}
		return analytics.NewDateRange(start, end, analytics.PresetCustom.Description())
	}

	p := ctx.DefaultRange()
	if preset != "" {
		var err error
		if p, err = analytics.ParsePreset(preset); err != nil {
			return analytics.DateRange{}, err
		}
	}
	return analytics.PresetRange(p, ctx.Today())
}

// Analytics computes and prints the report for habits over rng.
func Analytics(ctx *cli.Context, rng analytics.DateRange, habits []models.Habit, workers int) error {
	result, err := ctx.Aggregator(workers).GetHabitAnalytics(rng.Start, rng.End, habits)
	if err != nil {
		logger.Error("failed to compute analytics", "range", rng.Description, "error", err)
		return err
	}
	ctx.Printf("%s", render.AnalyticsReport(result, rng.Description))
	return nil
}
