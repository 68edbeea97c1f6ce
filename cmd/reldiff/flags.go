// Package main provides CLI flag definitions for reldiff.
package main

import (
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file (overrides the default lookup)",
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output (implied when stdout is not a terminal)",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
	}
}
