package habits

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Update HabitUpdateCmd `cmd:"" help:"Rename a habit or change its unit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its entries."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
	Unit string `help:"Unit of measurement (e.g. km, pages)." required:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := Add(ctx, c.Name, c.Unit)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added habit: %s (%s)\n", habit.Name, habit.Unit)
	return nil
}

// Add validates name and unit and stores a new habit.
func Add(ctx *cli.Context, name, unit string) (models.Habit, error) {
	name, err := validation.HabitName(name)
	if err != nil {
		return models.Habit{}, err
	}
	unit, err = validation.Unit(unit)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{Name: name, Unit: unit}
	if err := ctx.Store.AddHabit(&habit); err != nil {
		if errors.Is(err, storage.ErrHabitExists) {
			return models.Habit{}, fmt.Errorf("habit with name %q already exists", name)
		}
		logger.Error("failed to add habit", "name", name, "error", err)
		return models.Habit{}, err
	}
	return habit, nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	ctx.Printf("%s", render.HabitTable(habits))
	return nil
}

type HabitUpdateCmd struct {
	Name    string `arg:"" help:"Current habit name."`
	NewName string `name:"name" help:"New habit name."`
	Unit    string `help:"New unit of measurement."`
}

func (c *HabitUpdateCmd) Run(ctx *cli.Context) error {
	if c.NewName == "" && c.Unit == "" {
		return fmt.Errorf("nothing to update: pass --name and/or --unit")
	}

	habit, err := Lookup(ctx, c.Name)
	if err != nil {
		return err
	}

	name, unit := habit.Name, habit.Unit
	if c.NewName != "" {
		name = c.NewName
	}
	if c.Unit != "" {
		unit = c.Unit
	}

	updated, err := Update(ctx, habit, name, unit)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Updated habit: %s (%s)\n", updated.Name, updated.Unit)
	return nil
}

// Update validates and applies a new name and unit to habit.
func Update(ctx *cli.Context, habit models.Habit, name, unit string) (models.Habit, error) {
	name, err := validation.HabitName(name)
	if err != nil {
		return habit, err
	}
	unit, err = validation.Unit(unit)
	if err != nil {
		return habit, err
	}

	if err := ctx.Store.UpdateHabit(habit.ID, name, unit); err != nil {
		if errors.Is(err, storage.ErrHabitExists) {
			return habit, fmt.Errorf("habit with name %q already exists", name)
		}
		return habit, err
	}
	habit.Name, habit.Unit = name, unit
	return habit, nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := Lookup(ctx, c.Name)
	if err != nil {
		return err
	}

	deleted, err := Delete(ctx, habit, c.Yes)
	if err != nil {
		return err
	}
	if !deleted {
		ctx.Println("Delete cancelled.")
		return nil
	}
	ctx.Printf("✓ Deleted habit %s and %d entries\n", habit.Name, habit.TotalEntries)
	return nil
}

// Delete removes habit after confirmation unless skipConfirm is set. A backup
// is taken first. It reports whether the habit was deleted.
func Delete(ctx *cli.Context, habit models.Habit, skipConfirm bool) (bool, error) {
	if !skipConfirm {
		ok, err := ctx.Ask(
			fmt.Sprintf("Delete habit %q?", habit.Name),
			fmt.Sprintf("This will also delete its %d entries.", habit.TotalEntries),
		)
		if err != nil || !ok {
			return false, err
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return false, err
	}
	logger.Info("deleted habit", "name", habit.Name, "entries", habit.TotalEntries)
	return true, nil
}

// Lookup finds a habit by name with a user-facing not-found error.
func Lookup(ctx *cli.Context, name string) (models.Habit, error) {
	habit, err := ctx.Store.GetHabitByName(name)
	if errors.Is(err, storage.ErrHabitNotFound) {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return habit, err
}
