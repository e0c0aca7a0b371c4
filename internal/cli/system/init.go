package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/seed"
)

type InitCmd struct {
	Force bool `help:"Back up and delete the existing database before initialization."`
	Seed  bool `help:"Fill an empty database with demo habits and entries."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force {
		if _, err := os.Stat(dbPath); err == nil {
			ctx.PerformAutomaticBackup()
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitlog storage at: %s\n", dbPath)

	if err := c.writeConfig(ctx); err != nil {
		logger.Warn("failed to write default config", "error", err)
	}

	if c.Seed {
		sum, err := seed.New(ctx.Store, nil).Run(ctx.Today())
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		if sum.Skipped {
			ctx.Println("Database already has habits; skipped demo data.")
		} else {
			ctx.Printf("Seeded %d habits with %d entries.\n", sum.Habits, sum.Entries)
		}
	}

	return nil
}

// writeConfig saves a default config file pointing at this database when none exists.
func (c *InitCmd) writeConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" {
		return nil
	}
	path, err := config.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return err
	}

	cfg := config.DefaultConfig()
	if ctx.Config != nil {
		*cfg = *ctx.Config
	}
	cfg.DBPath = ctx.Store.GetConfigPath()
	if err := config.NewManager(path).Save(cfg); err != nil {
		return err
	}
	ctx.Printf("Wrote config file: %s\n", path)
	return nil
}
