// Package main is the entry point for the reldiff application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chmouel/reldiff/internal/config"
	"github.com/chmouel/reldiff/internal/git"
	"github.com/chmouel/reldiff/internal/log"
	"github.com/chmouel/reldiff/internal/session"
	"github.com/chmouel/reldiff/internal/theme"
	"golang.org/x/term"

	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cliApp := &urfavecli.App{
		Name:    "reldiff",
		Usage:   "Review git changes and compare release trees interactively",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			initCommand(),
			checkCommand(),
			compareCommand(),
		},

		// No subcommand: print the top-level help and exit zero.
		Action: func(c *urfavecli.Context) error {
			return urfavecli.ShowAppHelp(c)
		},
	}

	// An interrupt at any blocking prompt is a clean termination path.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setup applies the global flags and builds the pieces shared by the
// interactive subcommands.
func setup(c *urfavecli.Context) (*theme.Theme, *git.Service) {
	if debugLog := c.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}

	noColor := c.Bool("no-color") || !term.IsTerminal(int(os.Stdout.Fd()))
	th := theme.Default()
	if noColor {
		th = theme.Plain()
	}

	svc := git.NewService(func(message, severity string) {
		if severity == "error" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
			return
		}
		fmt.Fprintf(os.Stderr, "%s\n", message)
	})
	svc.SetNoColor(noColor)
	return th, svc
}

func initCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "init",
		Usage: "Write a " + config.FileName + " template (refuses to overwrite an existing file)",
		Action: func(_ *urfavecli.Context) error {
			if err := config.WriteTemplate(config.FileName); err != nil {
				return err
			}
			fmt.Printf("Wrote %s. Edit pro_dir and dev_dir before running compare.\n", config.FileName)
			return nil
		},
	}
}

func checkCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "check",
		Usage: "Review uncommitted changes in the current repository",
		Action: func(c *urfavecli.Context) error {
			th, svc := setup(c)
			defer func() { _ = log.Close() }()
			return session.RunStatus(c.Context, svc, th, os.Stdin, os.Stdout)
		},
	}
}

func compareCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "compare",
		Usage: "Compare a stable (PRO) tree against a development (DEV) tree",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "pro",
				Usage: "Path of the PRO (stable) tree",
			},
			&urfavecli.StringFlag{
				Name:  "dev",
				Usage: "Path of the DEV (development) tree",
			},
		},
		Action: func(c *urfavecli.Context) error {
			th, svc := setup(c)
			defer func() { _ = log.Close() }()

			cfg, err := config.Load(c.String("config-file"))
			if err != nil {
				return err
			}

			opts := session.CompareOptions{
				ProDir:      cfg.Compare.ProDir,
				DevDir:      cfg.Compare.DevDir,
				IgnoreNames: cfg.Compare.IgnoreNames,
			}
			if pro := c.String("pro"); pro != "" {
				opts.ProDir = pro
			}
			if dev := c.String("dev"); dev != "" {
				opts.DevDir = dev
			}

			if opts.ProDir == "" || opts.DevDir == "" {
				fmt.Println("Both trees are required: pass --pro and --dev, or set")
				fmt.Printf("compare.pro_dir and compare.dev_dir in %s (see `reldiff init`).\n", config.FileName)
				return nil
			}

			return session.RunCompare(c.Context, svc, th, opts, os.Stdin, os.Stdout)
		},
	}
}
