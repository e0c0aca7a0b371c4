package entries

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type LogCmd struct {
	Habit    string `arg:"" help:"Habit name."`
	Quantity string `arg:"" help:"Quantity to record (non-negative, decimals allowed)."`
	Date     string `help:"Day to log (DD-MM-YYYY or YYYY-MM-DD, default: today)." short:"d"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	habit, err := habits.Lookup(ctx, c.Habit)
	if err != nil {
		return err
	}

	qty, err := validation.Quantity(c.Quantity)
	if err != nil {
		return err
	}

	day := ctx.Today()
	if c.Date != "" {
		day, err = validation.UserDate(c.Date, ctx.Today())
		if err != nil {
			return err
		}
	}

	entry, err := Log(ctx, habit, qty, day)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged %s %s of %s on %s\n", entry.Quantity, habit.Unit, habit.Name, day.Display())
	return nil
}

// Log records qty for habit on day. Only one entry per habit and day is allowed.
func Log(ctx *cli.Context, habit models.Habit, qty decimal.Decimal, day models.Date) (models.HabitEntry, error) {
	if err := validation.NotFuture(day, ctx.Today()); err != nil {
		return models.HabitEntry{}, err
	}

	entry := models.HabitEntry{HabitID: habit.ID, Quantity: qty, Date: day}
	if err := ctx.Store.AddHabitEntry(&entry); err != nil {
		if errors.Is(err, storage.ErrEntryExists) {
			return models.HabitEntry{}, fmt.Errorf("%s already has an entry on %s", habit.Name, day.Display())
		}
		logger.Error("failed to log entry", "habit", habit.Name, "day", day, "error", err)
		return models.HabitEntry{}, err
	}

	logger.Debug("logged entry", "habit", habit.Name, "day", day, "quantity", qty.String())
	return entry, nil
}
