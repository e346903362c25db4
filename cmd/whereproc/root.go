// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"io"
	"os"

	"github.com/jongio/whereproc/cliout"
	"github.com/jongio/whereproc/config"
	"github.com/jongio/whereproc/logutil"
	"github.com/jongio/whereproc/procutil"
	"github.com/jongio/whereproc/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit statuses.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// app carries everything a run touches outside the process itself.
type app struct {
	source procutil.Source
	stdout io.Writer
	stderr io.Writer
	// environ is the KEY=VALUE environment handed to config.Load.
	environ []string
	// defaultConfig overrides config.DefaultPath(); "" uses the real default.
	defaultConfig string
}

func newApp() *app {
	return &app{
		source:  procutil.NewSystemSource(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
	}
}

// flagValues holds the raw command-line flags.
type flagValues struct {
	exact      bool
	regex      bool
	cmd        bool
	first      bool
	cmdline    bool
	json       bool
	quiet      bool
	debug      bool
	noColor    bool
	configPath string
}

// run executes the command line and returns the process exit status.
func (a *app) run(ctx context.Context, args []string) int {
	code := exitMatch
	cmd := a.newRootCommand(&code)
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	logutil.Setup(a.stderr, false, false)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if logutil.IsDebugEnabled() {
			logutil.Error("command failed", "error", err, "exit", exitError)
		}
		cliout.Notice(a.stderr, "Error: %v", err)
		return exitError
	}
	return code
}

func (a *app) newRootCommand(code *int) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "whereproc [flags] QUERY",
		Short: "Show the executable path for matching processes",
		Long: `whereproc lists running processes that match QUERY and shows where their
executables live on disk.

QUERY is a PID when it is an integer. Otherwise it is matched against the
process name (or the full command line with --cmd) as a case-insensitive
substring, an exact name with --exact, or a regular expression with --regex.

Exit status is 0 when something matched, 1 when nothing did, and 2 on errors.
Use "--" before a QUERY that starts with a dash.`,
		Example: `  whereproc python
  whereproc --exact --quiet node
  whereproc --cmd --regex 'manage\.py\s+runserver'
  whereproc --json 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.find(cmd.Context(), cmd.Flags(), fv, args[0])
			*code = c
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&fv.exact, "exact", false, "Require exact (case-insensitive) match")
	flags.BoolVar(&fv.regex, "regex", false, "Treat query as a regular expression (applied to name or cmdline)")
	flags.BoolVar(&fv.cmd, "cmd", false, "Match against full command line instead of process name")
	flags.BoolVar(&fv.first, "first", false, "Print a single line for the first match only")
	flags.BoolVar(&fv.cmdline, "cmdline", false, "Include full command line in output")
	flags.BoolVar(&fv.json, "json", false, "Output results as JSON instead of a table")
	flags.BoolVar(&fv.quiet, "quiet", false, "Print only the executable path of the first match")
	flags.BoolVar(&fv.debug, "debug", false, "Enable debug logging to stderr")
	flags.BoolVar(&fv.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&fv.configPath, "config", "", "Path to a config file (default <user config dir>/whereproc/config.yaml)")

	version.Attach(cmd, version.New("whereproc"))

	return cmd
}

// settings are the effective options after config, environment and flags
// have been layered.
type settings struct {
	format  cliout.Format
	match   procutil.Options
	first   bool
	cmdline bool
	noColor bool
	debug   bool
	logJSON bool
}

// resolveSettings applies explicitly set flags on top of cfg.
// --quiet beats --json, and either beats the configured output format.
func resolveSettings(cfg *config.Config, flags *pflag.FlagSet, fv flagValues) settings {
	s := settings{
		format: cfg.Output,
		match: procutil.Options{
			Exact: cfg.Exact,
			Regex: cfg.Regex,
			Cmd:   cfg.Cmd,
		},
		first:   cfg.First,
		cmdline: cfg.Cmdline,
		noColor: cfg.NoColor,
		debug:   cfg.Debug,
		logJSON: cfg.LogJSON,
	}

	override := func(name string, dst *bool, v bool) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("exact", &s.match.Exact, fv.exact)
	override("regex", &s.match.Regex, fv.regex)
	override("cmd", &s.match.Cmd, fv.cmd)
	override("first", &s.first, fv.first)
	override("cmdline", &s.cmdline, fv.cmdline)
	override("no-color", &s.noColor, fv.noColor)
	override("debug", &s.debug, fv.debug)

	switch {
	case fv.quiet:
		s.format = cliout.FormatQuiet
	case fv.json:
		s.format = cliout.FormatJSON
	}

	return s
}

// find runs one query and presents the result.
func (a *app) find(ctx context.Context, flags *pflag.FlagSet, fv flagValues, raw string) (int, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path:        fv.configPath,
		Environ:     a.environ,
		DefaultPath: a.defaultConfig,
	})
	if err != nil {
		return exitError, err
	}

	s := resolveSettings(cfg, flags, fv)

	logutil.Setup(a.stderr, s.debug, s.logJSON)
	if s.noColor {
		cliout.NoColor()
	}
	for _, w := range cfg.Warnings {
		logutil.Warn(w)
	}
	logutil.Debug("configuration resolved", "path", cfg.Path, "format", s.format)

	if s.match.Regex && s.match.Exact {
		cliout.Notice(a.stderr, "Note: --regex specified; ignoring --exact.")
		s.match.Exact = false
	}

	q, err := procutil.NewQuery(raw, s.match)
	if err != nil {
		return exitError, err
	}

	if pid, ok := q.PID(); ok {
		if s.match.Regex || s.match.Exact || s.match.Cmd {
			logutil.Debug("numeric query selects PID mode; pattern flags ignored", "pid", pid)
		}
		logutil.Debug("query parsed", "pid", pid)
	} else {
		logutil.Debug("query parsed", "mode", q.Mode(), "field", q.Field())
	}

	matches, err := procutil.Find(ctx, a.source, q)
	if err != nil {
		return exitError, err
	}

	p := presenter{
		stdout:  a.stdout,
		stderr:  a.stderr,
		format:  s.format,
		first:   s.first,
		cmdline: s.cmdline,
	}
	return p.present(matches)
}
