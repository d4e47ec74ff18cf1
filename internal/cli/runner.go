// Package cli implements the non-interactive subcommands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/akyairhashvil/timeplan/internal/backup"
	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/export"
	"github.com/akyairhashvil/timeplan/internal/importer"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/store"
	"github.com/akyairhashvil/timeplan/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

// PassphraseFunc returns a passphrase, prompting with prompt if needed.
type PassphraseFunc func(prompt string) (string, error)

// Env is everything a subcommand needs.
type Env struct {
	Ctx        context.Context
	Store      *store.Store
	Out        io.Writer
	Err        io.Writer
	ExportDir  string
	BackupDir  string
	Now        func() time.Time
	Passphrase PassphraseFunc
	Log        zerolog.Logger
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func (e Env) ok(msg string)   { fmt.Fprintln(e.Out, okStyle.Render("✔")+" "+msg) }
func (e Env) fail(msg string) { fmt.Fprintln(e.Err, failStyle.Render("✖")+" "+msg) }

// IsCommand reports whether name is a known subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "-h", "--help", "list", "ls", "add", "move", "rm", "export", "backup", "restore", "import":
		return true
	}
	return false
}

// listNameWidth caps the name column of `list`, in terminal cells.
const listNameWidth = 40

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, env Env) int {
	if env.Ctx == nil {
		env.Ctx = context.Background()
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if len(args) == 0 {
		PrintHelp(env.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(env.Out)
		return 0
	case "list", "ls":
		return doList(env, a)
	case "add":
		return doAdd(env, a)
	case "move":
		return doMove(env, a)
	case "rm":
		return doRemove(env, a)
	case "export":
		return doExport(env, a)
	case "backup":
		return doBackup(env, a)
	case "restore":
		return doRestore(env, a)
	case "import":
		return doImport(env, a)
	}

	env.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(env.Err)
	PrintHelp(env.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `%[1]s - milestone timeline planner

Usage:
  %[1]s                      Start the interactive timeline
  %[1]s <subcommand> [args]

Subcommands:
  list [query...]                 List milestones chronologically
                                  (filters: year:2026 marker:dot delta:+2w text)
  add [-date YYYY-MM] [-delta s] [-marker m] <name...>
                                  Add a milestone (marker: label or 1-10)
  move <id> <YYYY-MM>             Change a milestone's date
  rm <id>                         Remove a milestone
  export [-o file] xlsx|pdf       Export the timeline
  backup [-o file] [-encrypt]     Write a JSON backup
  restore <file>                  Replace everything with a backup
  import <plan.yaml>              Add milestones from a YAML plan

Environment:
  %[2]s   Passphrase for encrypted backups
`, config.AppName, config.BackupKeyEnv)
}

func newFlagSet(env Env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Err)
	return fs
}

// -------------- subcommand impls ----------------

func doList(env Env, args []string) int {
	settings := env.Store.Settings()
	sorted := env.Store.Sorted()
	q := util.ParseSearchQuery(strings.Join(args, " "))
	if !q.IsEmpty() {
		filtered := sorted[:0:0]
		for _, m := range sorted {
			if matchesQuery(m, q) {
				filtered = append(filtered, m)
			}
		}
		sorted = filtered
	}

	fmt.Fprintln(env.Out, titleStyle.Render("Milestones")+mutedStyle.Render(
		fmt.Sprintf("  window %d-%d  total %d", settings.StartYear, settings.EndYear(), len(sorted))))
	if len(sorted) == 0 && !q.IsEmpty() {
		fmt.Fprintln(env.Out, mutedStyle.Render("No milestones match the filter."))
		return 0
	}
	if len(sorted) == 0 {
		fmt.Fprintln(env.Out, mutedStyle.Render("No milestones yet. Add one with `"+config.AppName+" add -date 2025-06 Kickoff`"))
		return 0
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("#", "Date", "Name", "Delta", "Marker", "ID")
	for i, m := range sorted {
		t.Row(
			fmt.Sprintf("%d", i+1),
			m.Date.String(),
			ansi.Truncate(m.Name, listNameWidth, config.TruncationSuffix),
			m.WeeksDelta,
			m.Marker.Label,
			m.ID,
		)
	}
	fmt.Fprintln(env.Out, t.String())
	return 0
}

func doAdd(env Env, args []string) int {
	fs := newFlagSet(env, "add")
	dateFlag := fs.String("date", env.Now().Format("2006-01"), "milestone month (YYYY-MM or YYYY-MM-DD)")
	delta := fs.String("delta", "", "weeks-delta annotation")
	marker := fs.String("marker", "", "marker label or 1-based catalog index")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		env.fail("usage: " + config.AppName + " add [-date YYYY-MM] [-delta s] [-marker m] <name...>")
		return 2
	}

	entry := importer.Entry{Name: name, Date: *dateFlag, WeeksDelta: *delta, Marker: importer.MarkerRef(*marker)}
	m, err := entry.Milestone()
	if err != nil {
		env.fail("add: " + err.Error())
		return 2
	}
	created, err := env.Store.Create(env.Ctx, m)
	if err != nil {
		env.fail("add: " + err.Error())
		return 1
	}
	env.Log.Debug().Str("id", created.ID).Str("date", created.Date.String()).Msg("milestone added")
	env.ok(fmt.Sprintf("added %s (%s) %s", created.Name, created.Date, mutedStyle.Render(created.ID)))
	return 0
}

func doMove(env Env, args []string) int {
	if len(args) != 2 {
		env.fail("usage: " + config.AppName + " move <id> <YYYY-MM>")
		return 2
	}
	date, err := models.ParseDate(args[1])
	if err != nil {
		env.fail("move: " + err.Error())
		return 2
	}
	if err := env.Store.Move(env.Ctx, args[0], date); err != nil {
		env.fail("move: " + err.Error())
		return 1
	}
	env.ok(fmt.Sprintf("moved %s to %s", args[0], date))
	return 0
}

func doRemove(env Env, args []string) int {
	if len(args) != 1 {
		env.fail("usage: " + config.AppName + " rm <id>")
		return 2
	}
	if !env.Store.Delete(env.Ctx, args[0]) {
		env.fail("rm: no milestone with id " + args[0])
		return 1
	}
	env.ok("removed " + args[0])
	return 0
}

func doExport(env Env, args []string) int {
	fs := newFlagSet(env, "export")
	out := fs.String("o", "", "output file (default: timestamped file in the export directory)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		env.fail("usage: " + config.AppName + " export [-o file] xlsx|pdf")
		return 2
	}
	format, err := export.ParseFormat(fs.Arg(0))
	if err != nil {
		env.fail("export: " + err.Error())
		return 2
	}

	ms, settings := env.Store.Milestones(), env.Store.Settings()
	path := *out
	if path != "" {
		err = export.WriteFile(path, format, ms, settings)
	} else {
		path, err = export.Save(env.ExportDir, format, ms, settings, env.Now())
	}
	if err != nil {
		env.fail("export: " + err.Error())
		return 1
	}
	env.Log.Info().Str("format", string(format)).Str("path", path).Msg("export written")
	env.ok("exported " + path)
	return 0
}

func doBackup(env Env, args []string) int {
	fs := newFlagSet(env, "backup")
	out := fs.String("o", "", "output file (default: timestamped file in the backup directory)")
	encrypt := fs.Bool("encrypt", false, "encrypt with a passphrase")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		env.fail("usage: " + config.AppName + " backup [-o file] [-encrypt]")
		return 2
	}

	var pass string
	if *encrypt {
		var err error
		if pass, err = newPassphrase(env); err != nil {
			env.fail("backup: " + err.Error())
			return 1
		}
	}

	now := env.Now()
	snap := backup.Take(env.Store, now)
	path := *out
	if path == "" {
		var err error
		if path, err = backup.Save(env.BackupDir, snap, pass, now); err != nil {
			env.fail("backup: " + err.Error())
			return 1
		}
	} else {
		data, err := backup.Encode(snap, pass)
		if err == nil {
			err = os.WriteFile(path, data, 0o600)
		}
		if err != nil {
			env.fail("backup: " + err.Error())
			return 1
		}
	}
	env.ok(fmt.Sprintf("backed up %d milestones to %s", len(snap.Milestones), path))
	return 0
}

func newPassphrase(env Env) (string, error) {
	if env.Passphrase == nil {
		return "", errors.New("no passphrase source")
	}
	pass, err := env.Passphrase("Backup passphrase: ")
	if err != nil {
		return "", err
	}
	if err := util.ValidatePassphrase(pass); err != nil {
		return "", err
	}
	confirm, err := env.Passphrase("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm != pass {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}

func doRestore(env Env, args []string) int {
	if len(args) != 1 {
		env.fail("usage: " + config.AppName + " restore <file>")
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		env.fail("restore: " + err.Error())
		return 1
	}
	var pass string
	if backup.IsEncrypted(data) {
		if env.Passphrase == nil {
			env.fail("restore: " + backup.ErrPassphraseRequired.Error())
			return 1
		}
		if pass, err = env.Passphrase("Backup passphrase: "); err != nil {
			env.fail("restore: " + err.Error())
			return 1
		}
	}
	snap, err := backup.Decode(data, pass)
	if err != nil {
		env.fail("restore: " + err.Error())
		return 1
	}
	if err := backup.Restore(env.Ctx, env.Store, snap); err != nil {
		env.fail("restore: " + err.Error())
		return 1
	}
	env.Log.Info().Str("file", args[0]).Int("milestones", len(snap.Milestones)).Msg("backup restored")
	env.ok(fmt.Sprintf("restored %d milestones (exported %s)", len(snap.Milestones), snap.ExportedAt))
	return 0
}

func doImport(env Env, args []string) int {
	if len(args) != 1 {
		env.fail("usage: " + config.AppName + " import <plan.yaml>")
		return 2
	}
	plan, err := importer.LoadPlan(args[0])
	if err != nil {
		env.fail("import: " + err.Error())
		return 1
	}
	res, err := importer.Apply(env.Ctx, env.Store, plan)
	if err != nil {
		env.fail("import: " + err.Error())
		return 1
	}
	for _, skip := range res.Skipped {
		fmt.Fprintln(env.Err, mutedStyle.Render("skipped "+skip.Error()))
	}
	env.Log.Info().Int("created", len(res.Created)).Int("skipped", len(res.Skipped)).Msg("plan imported")
	env.ok(fmt.Sprintf("imported %d milestones, skipped %d", len(res.Created), len(res.Skipped)))
	return 0
}
