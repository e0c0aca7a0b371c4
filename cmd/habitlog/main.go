package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/entries"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/reports"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

type CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path. Defaults to db_path from the config file." env:"HABITLOG_DB" type:"path"`
	Config  string `help:"Config file path." env:"HABITLOG_CONFIG" type:"path" default:"~/.config/habitlog/config.toml"`
	Debug   bool   `help:"Mirror debug logs to stderr." env:"HABITLOG_DEBUG"`

	Init      system.InitCmd      `cmd:"" help:"Initialize habitlog storage."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Menu      system.MenuCmd      `cmd:"" help:"Launch the interactive menu." default:"1"`
	Dashboard system.DashboardCmd `cmd:"" help:"Launch the analytics dashboard."`
	Habit     habits.HabitCmd     `cmd:"" help:"Manage habits."`
	Log       entries.LogCmd      `cmd:"" help:"Log a habit entry."`
	Report    reports.ReportCmd   `cmd:"" help:"Show entry charts and habit analytics."`
	Backup    backups.BackupCmd   `cmd:"" help:"Manage database backups."`
}

// commands that open the store themselves
var selfLoading = map[string]bool{
	"init":   true,
	"doctor": true,
}

// setup parses args, loads configuration and logging, and prepares the store.
func setup(args []string, out io.Writer) (*kong.Context, *cli.Context, error) {
	var c CLI
	parser, err := kong.New(&c,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with consistency and activity analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return nil, nil, err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.NewManager(c.Config).Load()
	if err != nil {
		return nil, nil, err
	}

	dbPath := c.DB
	if dbPath == "" {
		if dbPath, err = config.ExpandPath(cfg.DBPath); err != nil {
			return nil, nil, err
		}
	}

	if err := logger.Init(logger.Config{
		Debug:     c.Debug || cfg.Debug,
		Level:     cfg.LogLevel,
		ConfigDir: filepath.Dir(dbPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(dbPath)
	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: c.Config,
		Out:        out,
	}

	command := strings.Fields(kctx.Command())
	if len(command) > 0 && !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			return nil, nil, err
		}
	}

	logger.Debug("starting", "command", kctx.Command(), "db", dbPath)
	return kctx, appCtx, nil
}

func main() {
	kctx, appCtx, err := setup(os.Args[1:], os.Stdout)
	errors.Fatal(err)

	err = kctx.Run(appCtx)
	if closeErr := appCtx.Store.Close(); closeErr != nil {
		logger.Warn("failed to close database", "error", closeErr)
	}
	errors.Fatal(err)
}
