package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/timeplan/internal/cli"
	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/persist"
	"github.com/akyairhashvil/timeplan/internal/store"
	"github.com/akyairhashvil/timeplan/internal/tui"
	"github.com/akyairhashvil/timeplan/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", util.ConfigDir(config.AppName), "directory holding "+config.ConfigFileName+".yaml")
	storage := fs.String("storage", "", "storage backend override (sqlite, json, memory)")
	fs.Usage = func() {
		cli.PrintHelp(stderr)
		fmt.Fprintln(stderr, "\nGlobal flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// 1. Configuration
	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	if *storage != "" {
		cfg.Storage.Type = *storage
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
			return 2
		}
	}

	rest := fs.Args()
	interactive := len(rest) == 0
	if !interactive && !cli.IsCommand(rest[0]) {
		return cli.Run(rest, cli.Env{Out: stdout, Err: stderr})
	}

	// 2. Logging: the TUI owns the terminal, so it logs to a file.
	logger, closeLog, err := openLogger(cfg, interactive, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	defer closeLog()

	// 3. Storage
	ctx := context.Background()
	backend, err := persist.Open(ctx, cfg.Storage, cfg.DefaultSettings(), logger)
	if err != nil {
		logger.Error().Err(err).Str("storage", cfg.Storage.Type).Msg("cannot open storage")
		fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	defer func() {
		util.LogError(logger, "closing storage", backend.Close())
	}()
	logger.Debug().Str("storage", backend.Kind).Str("location", backend.Location).Msg("storage opened")

	st := store.New(ctx, backend, logger)

	if !interactive {
		return cli.Run(rest, cli.Env{
			Ctx:        ctx,
			Store:      st,
			Out:        stdout,
			Err:        stderr,
			ExportDir:  cfg.Export.Dir,
			BackupDir:  filepath.Join(util.DataDir(config.AppName), "backups"),
			Passphrase: cli.TermPassphrase(os.Stdin, stderr),
			Log:        logger,
		})
	}

	// 4. Interactive timeline
	model := tui.NewModel(ctx, st, tui.Options{
		ExportDir:  cfg.Export.Dir,
		MonthCells: cfg.UI.MonthCells,
		Theme:      cfg.UI.Theme,
		Logger:     logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	return 0
}

// openLogger returns a file logger for the TUI and a console logger
// otherwise.
func openLogger(cfg config.Config, interactive bool, stderr io.Writer) (zerolog.Logger, func(), error) {
	if !interactive {
		return util.NewConsoleLogger(stderr, cfg.LogLevel), func() {}, nil
	}
	dir := util.DataDir(config.AppName)
	if err := util.EnsureDir(dir); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, config.LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	return util.NewLogger(f, cfg.LogLevel), func() { _ = f.Close() }, nil
}
