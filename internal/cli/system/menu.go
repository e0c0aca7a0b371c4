package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/entries"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/reports"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// MenuCmd runs the interactive menu until the user exits.
type MenuCmd struct{}

const (
	actionLog     = "log"
	actionManage  = "manage"
	actionReports = "reports"
	actionExit    = "exit"
	actionBack    = "back"

	actionAdd    = "add"
	actionUpdate = "update"
	actionDelete = "delete"

	actionCounts    = "counts"
	actionResume    = "resume"
	actionAnalytics = "analytics"

	selectAll      = "all"
	selectMultiple = "multiple"
	selectSingle   = "single"

	dayCustom = "custom"
)

// errBack unwinds to the enclosing menu.
var errBack = errors.New("back")

func (c *MenuCmd) Run(ctx *cli.Context) error {
	for {
		action := actionExit
		err := huh.NewSelect[string]().
			Title("What would you like to do?").
			Options(
				huh.NewOption("Log New Entry", actionLog),
				huh.NewOption("Manage Habits", actionManage),
				huh.NewOption("View Reports", actionReports),
				huh.NewOption("Exit", actionExit),
			).
			Value(&action).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		switch action {
		case actionLog:
			err = logEntry(ctx)
		case actionManage:
			err = manageHabits(ctx)
		case actionReports:
			err = viewReports(ctx)
		case actionExit:
			return nil
		}
		report(ctx, err)
	}
}

// report prints a menu action failure and keeps the menu running.
func report(ctx *cli.Context, err error) {
	if err == nil || errors.Is(err, errBack) || errors.Is(err, huh.ErrUserAborted) {
		return
	}
	ctx.Printf("Error: %v\n\n", err)
}

func logEntry(ctx *cli.Context) error {
	habit, err := pickHabit(ctx, "Which habit?")
	if err != nil {
		return err
	}

	var qty string
	day := ctx.Today().Display()
	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Quantity (%s)", habit.Unit)).
			Validate(func(s string) error {
				_, err := validation.Quantity(s)
				return err
			}).
			Value(&qty),
		huh.NewInput().
			Title("Date").
			Description("DD-MM-YYYY, D-MM-YY or YYYY-MM-DD").
			Validate(func(s string) error {
				_, err := validation.UserDate(s, ctx.Today())
				return err
			}).
			Value(&day),
	)).Run()
	if err != nil {
		return err
	}

	q, err := validation.Quantity(qty)
	if err != nil {
		return err
	}
	d, err := validation.UserDate(day, ctx.Today())
	if err != nil {
		return err
	}

	entry, err := entries.Log(ctx, habit, q, d)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged %s %s of %s on %s\n\n", entry.Quantity, habit.Unit, habit.Name, d.Display())
	return nil
}

func manageHabits(ctx *cli.Context) error {
	for {
		action := actionBack
		err := huh.NewSelect[string]().
			Title("Manage habits").
			Options(
				huh.NewOption("Add Habit", actionAdd),
				huh.NewOption("Update Habit", actionUpdate),
				huh.NewOption("Delete Habit", actionDelete),
				huh.NewOption("Back", actionBack),
			).
			Value(&action).
			Run()
		if err != nil {
			return err
		}

		switch action {
		case actionAdd:
			err = addHabit(ctx)
		case actionUpdate:
			err = updateHabit(ctx)
		case actionDelete:
			err = deleteHabit(ctx)
		case actionBack:
			return nil
		}
		report(ctx, err)
	}
}

// habitForm asks for a name and unit. The name must be unique unless it is
// current, the habit's existing name.
func habitForm(ctx *cli.Context, name, unit *string, current string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Habit name").
			Validate(func(s string) error {
				n, err := validation.HabitName(s)
				if err != nil {
					return err
				}
				if current != "" && n == current {
					return nil
				}
				exists, err := ctx.Store.HabitExists(n)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("a habit named %q already exists", n)
				}
				return nil
			}).
			Value(name),
		huh.NewInput().
			Title("Unit of measurement").
			Validate(func(s string) error {
				_, err := validation.Unit(s)
				return err
			}).
			Value(unit),
	)).Run()
}

func addHabit(ctx *cli.Context) error {
	var name, unit string
	if err := habitForm(ctx, &name, &unit, ""); err != nil {
		return err
	}
	habit, err := habits.Add(ctx, name, unit)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added habit: %s (%s)\n\n", habit.Name, habit.Unit)
	return nil
}

func updateHabit(ctx *cli.Context) error {
	habit, err := pickHabit(ctx, "Which habit do you want to update?")
	if err != nil {
		return err
	}

	name, unit := habit.Name, habit.Unit
	if err := habitForm(ctx, &name, &unit, habit.Name); err != nil {
		return err
	}
	updated, err := habits.Update(ctx, habit, name, unit)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Updated habit: %s (%s)\n\n", updated.Name, updated.Unit)
	return nil
}

func deleteHabit(ctx *cli.Context) error {
	habit, err := pickHabit(ctx, "Which habit do you want to delete?")
	if err != nil {
		return err
	}
	deleted, err := habits.Delete(ctx, habit, false)
	if err != nil {
		return err
	}
	if deleted {
		ctx.Printf("✓ Deleted habit %s and %d entries\n\n", habit.Name, habit.TotalEntries)
	}
	return nil
}

func viewReports(ctx *cli.Context) error {
	for {
		action := actionBack
		err := huh.NewSelect[string]().
			Title("Reports").
			Options(
				huh.NewOption("Entries per Habit", actionCounts),
				huh.NewOption("Daily Resume", actionResume),
				huh.NewOption("Habit Analytics", actionAnalytics),
				huh.NewOption("Back", actionBack),
			).
			Value(&action).
			Run()
		if err != nil {
			return err
		}

		switch action {
		case actionCounts:
			err = (&reports.CountsCmd{}).Run(ctx)
		case actionResume:
			err = dailyResume(ctx)
		case actionAnalytics:
			err = habitAnalytics(ctx)
		case actionBack:
			return nil
		}
		report(ctx, err)
	}
}

func dailyResume(ctx *cli.Context) error {
	choice := reports.DayToday
	err := huh.NewSelect[string]().
		Title("Which day?").
		Options(
			huh.NewOption("Today", reports.DayToday),
			huh.NewOption("Yesterday", reports.DayYesterday),
			huh.NewOption("Two days ago", reports.DayTwoDaysAgo),
			huh.NewOption("Select a day", dayCustom),
		).
		Value(&choice).
		Run()
	if err != nil {
		return err
	}

	if choice == dayCustom {
		choice = ""
		err := huh.NewInput().
			Title("Date").
			Description("DD-MM-YYYY, D-MM-YY or YYYY-MM-DD").
			Validate(func(s string) error {
				_, err := validation.UserDate(s, ctx.Today())
				return err
			}).
			Value(&choice).
			Run()
		if err != nil {
			return err
		}
	}

	day, err := reports.ParseDay(choice, ctx.Today())
	if err != nil {
		return err
	}
	selected, err := pickHabits(ctx)
	if err != nil {
		return err
	}
	return reports.Resume(ctx, day, selected)
}

func habitAnalytics(ctx *cli.Context) error {
	choice := string(ctx.DefaultRange())
	opts := make([]huh.Option[string], 0, len(analytics.Presets)+1)
	for _, p := range analytics.Presets {
		opts = append(opts, huh.NewOption(p.Description(), string(p)))
	}
	opts = append(opts, huh.NewOption(analytics.PresetCustom.Description(), string(analytics.PresetCustom)))

	err := huh.NewSelect[string]().
		Title("Date range").
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return err
	}

	var rng analytics.DateRange
	if choice == string(analytics.PresetCustom) {
		rng, err = customRange(ctx)
	} else {
		rng, err = reports.ResolveRange(ctx, choice, "", "")
	}
	if err != nil {
		return err
	}

	selected, err := pickHabits(ctx)
	if err != nil {
		return err
	}
	return reports.Analytics(ctx, rng, selected, 0)
}

// customRange asks for start and end dates until the end is not before the start.
func customRange(ctx *cli.Context) (analytics.DateRange, error) {
	dateInput := func(title string, value *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Description("DD-MM-YYYY, D-MM-YY or YYYY-MM-DD").
			Validate(func(s string) error {
				_, err := validation.UserDate(s, ctx.Today())
				return err
			}).
			Value(value)
	}

	for {
		var from, to string
		if err := huh.NewForm(huh.NewGroup(dateInput("Start date", &from), dateInput("End date", &to))).Run(); err != nil {
			return analytics.DateRange{}, err
		}

		rng, err := reports.ResolveRange(ctx, "", from, to)
		if errors.Is(err, analytics.ErrInvalidRange) {
			ctx.Println("End date cannot be before start date. Please try again.")
			continue
		}
		return rng, err
	}
}

func habitOptions(list []models.Habit) []huh.Option[string] {
	opts := make([]huh.Option[string], len(list))
	for i, h := range list {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", h.Name, h.Unit), h.ID)
	}
	return opts
}

func allHabits(ctx *cli.Context) ([]models.Habit, error) {
	list, err := ctx.Store.GetAllHabits()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no habits yet, add one first")
	}
	return list, nil
}

func pickHabit(ctx *cli.Context, title string) (models.Habit, error) {
	list, err := allHabits(ctx)
	if err != nil {
		return models.Habit{}, err
	}

	var id string
	err = huh.NewSelect[string]().
		Title(title).
		Options(habitOptions(list)...).
		Value(&id).
		Run()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range list {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, errBack
}

// pickHabits asks for all, several, or one habit, keeping store order.
func pickHabits(ctx *cli.Context) ([]models.Habit, error) {
	list, err := allHabits(ctx)
	if err != nil {
		return nil, err
	}

	mode := selectAll
	err = huh.NewSelect[string]().
		Title("Which habits?").
		Options(
			huh.NewOption("All habits", selectAll),
			huh.NewOption("Select multiple", selectMultiple),
			huh.NewOption("Select one", selectSingle),
			huh.NewOption("Back", actionBack),
		).
		Value(&mode).
		Run()
	if err != nil {
		return nil, err
	}

	var ids []string
	switch mode {
	case selectAll:
		return list, nil
	case actionBack:
		return nil, errBack
	case selectSingle:
		h, err := pickHabit(ctx, "Which habit?")
		if err != nil {
			return nil, err
		}
		return []models.Habit{h}, nil
	case selectMultiple:
		err = huh.NewMultiSelect[string]().
			Title("Select habits").
			Options(habitOptions(list)...).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("select at least one habit")
				}
				return nil
			}).
			Value(&ids).
			Run()
		if err != nil {
			return nil, err
		}
	}

	picked := make(map[string]bool, len(ids))
	for _, id := range ids {
		picked[id] = true
	}
	out := make([]models.Habit, 0, len(ids))
	for _, h := range list {
		if picked[h.ID] {
			out = append(out, h)
		}
	}
	return out, nil
}
