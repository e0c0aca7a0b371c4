package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// ConfigPath is where Config was loaded from.
	ConfigPath string

	// Out receives command output. Nil means os.Stdout.
	Out io.Writer
	// Confirm asks a yes/no question. Nil uses an interactive prompt.
	Confirm func(title, description string) (bool, error)
	// Clock returns today's date. Nil means models.Today.
	Clock func() models.Date
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

func (c *Context) Today() models.Date {
	if c.Clock == nil {
		return models.Today()
	}
	return c.Clock()
}

// Ask runs Confirm, falling back to a huh confirmation prompt.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// Aggregator returns an analytics aggregator over the store. workers overrides
// the configured worker count when positive.
func (c *Context) Aggregator(workers int) *analytics.Aggregator {
	agg := analytics.NewAggregator(analytics.NewEngine(c.Store))
	if c.Config != nil && c.Config.Workers > 0 {
		agg.Workers = c.Config.Workers
	}
	if workers > 0 {
		agg.Workers = workers
	}
	return agg
}

// DefaultRange returns the configured dashboard and report preset.
func (c *Context) DefaultRange() analytics.Preset {
	if c.Config == nil {
		return analytics.PresetLast7Days
	}
	return c.Config.Range()
}

// ResolveHabits looks up habits by name, in the order given. No names means
// every habit.
func (c *Context) ResolveHabits(names []string) ([]models.Habit, error) {
	if len(names) == 0 {
		return c.Store.GetAllHabits()
	}

	habits := make([]models.Habit, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		h, err := c.Store.GetHabitByName(strings.TrimSpace(name))
		if err != nil {
			if errors.Is(err, storage.ErrHabitNotFound) {
				return nil, fmt.Errorf("habit %q not found", name)
			}
			return nil, err
		}
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		habits = append(habits, h)
	}
	return habits, nil
}

// PerformAutomaticBackup backs up the database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
