// Package cmd implements the command line entry point for daycal.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/daycal/internal/config"
	"github.com/nibzard/daycal/internal/datenav"
	"github.com/nibzard/daycal/internal/logging"
	"github.com/nibzard/daycal/internal/render"
	"github.com/nibzard/daycal/internal/session"
	"github.com/nibzard/daycal/internal/taskstore"
	"github.com/nibzard/daycal/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the daycal CLI on the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("daycal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	showConfig := fs.Bool("show-config", false, "Print the resolved configuration and exit")
	check := fs.Bool("check", false, "Validate the task file and exit")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		fmt.Fprintf(stdout, "daycal version %s\n", Version)
		return nil
	}

	if *showConfig {
		return showConfigCommand(cws, stdout)
	}

	logger, runLog, err := logging.Setup(cfg.LogDir, cfg.WorkDir, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "daycal",
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer runLog.Close()

	store, err := taskstore.Open(cfg.TasksFile, taskstore.Options{
		CreateIfMissing: cfg.CreateIfMissing,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("opening task file: %w", err)
	}

	if *check {
		return checkCommand(store, stdout)
	}

	logger.Info("starting", "version", Version, "tasks_file", store.Path(), "format", store.Format())
	cal := session.NewCalendarSession(store, datenav.SystemClock{}, session.WithLogger(logger))
	renderer := render.New(render.Options{Color: cfg.Color && ui.IsTTY(stdout)})

	if !cfg.Plain && ui.IsTTY(stdin) && ui.IsTTY(stdout) {
		err = ui.Run(ctx, cal, renderer,
			ui.WithWatch(store.Path()),
			ui.WithLogger(logger),
			ui.WithIO(stdin, stdout),
		)
	} else {
		err = ui.RunPlain(ctx, cal, renderer, stdin, stdout, ui.PlainOptions{
			ClearScreen: ui.IsTTY(stdout),
		})
	}
	if err != nil {
		if errors.Is(err, ui.ErrInterrupted) || ctx.Err() != nil {
			logger.Info("interrupted")
		} else {
			logger.Error("session ended", "err", err)
		}
		return err
	}

	logger.Info("quit")
	return nil
}

// showConfigCommand prints every setting with where it came from.
func showConfigCommand(cws *config.ConfigWithSources, w io.Writer) error {
	fmt.Fprintln(w, "Configuration")
	fmt.Fprintln(w)
	for _, e := range cws.Entries() {
		fmt.Fprintf(w, "  %-18s %-40s (%s)\n", e.Name, e.Value, e.Source)
	}
	fmt.Fprintln(w)
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "No config files found.")
		return nil
	}
	fmt.Fprintln(w, "Config files:")
	for _, f := range cws.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

// checkCommand loads and validates the task file and prints a summary.
func checkCommand(store *taskstore.Store, w io.Writer) error {
	fmt.Fprintf(w, "Task file: %s (%s)\n", store.Path(), store.Format())

	doc, err := store.Load()
	if err != nil {
		fmt.Fprintln(w, "  ❌ Invalid")
		var verrs taskstore.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				fmt.Fprintf(w, "     - %v\n", e)
			}
		}
		return err
	}

	var pending, completed int
	for _, tasks := range doc {
		for _, task := range tasks {
			if task.Done() {
				completed++
			} else {
				pending++
			}
		}
	}
	fmt.Fprintln(w, "  ✅ OK")
	fmt.Fprintf(w, "  Days: %d  Pending: %d  Completed: %d\n", len(doc), pending, completed)

	for _, date := range doc.Dates() {
		if p := taskstore.ProgressOf(doc[date]); p == taskstore.ProgressPending {
			fmt.Fprintf(w, "  %s has pending tasks\n", date)
		}
	}
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "daycal - A terminal calendar with a checklist for every day")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  daycal [options] [task-file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Month view: a day number opens that day, n/p move between months,")
	fmt.Fprintln(w, "c returns to the current month and q quits.")
	fmt.Fprintln(w, "Day view: c creates a task, d deletes one, t toggles one,")
	fmt.Fprintln(w, "b goes back and q quits.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
