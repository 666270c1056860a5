// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the vaulter command tree and its process-level
// entry point.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/vaulter-dev/vaulter/cmd/vaulter/cli"
	"github.com/vaulter-dev/vaulter/lib/clock"
	"github.com/vaulter-dev/vaulter/lib/config"
	"github.com/vaulter-dev/vaulter/lib/version"
)

// globalOptions are the flags accepted before the command name.
type globalOptions struct {
	ConfigPath string
	Verbose    bool
}

func (g *globalOptions) flagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("vaulter", pflag.ContinueOnError)
	flagSet.StringVar(&g.ConfigPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	flagSet.BoolVarP(&g.Verbose, "verbose", "v", false, "enable debug logging")
	return flagSet
}

// Run is the process entry point: it parses global flags, loads the
// configuration, builds the logger, and dispatches args to the command
// tree.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var globals globalOptions
	flagSet := globals.flagSet()
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			return fmt.Errorf("%s\n\nRun 'vaulter --help' for usage.", err)
		}
		Root(&Environment{Stdout: stdout, Stderr: stderr}).PrintHelp(stderr)
		return nil
	}
	rest := flagSet.Args()

	cfg, err := config.Load(globals.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	if globals.Verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(stderr, level)

	env := &Environment{
		Config: cfg,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Clock:  clock.Real(),
	}
	return Root(env).Execute(ctx, rest, logger)
}

// Root builds and returns the vaulter command tree bound to env.
func Root(env *Environment) *cli.Command {
	var globals globalOptions
	return &cli.Command{
		Name: "vaulter",
		Description: `vaulter: a CLI vault for key-value pairs.

Secrets are encrypted with a key derived from your passphrase and kept
in a local SQLite database. The passphrase is read from
VAULTER_PASSPHRASE, or prompted for when stdin is a terminal.

Global flags must precede the command name.`,
		Usage:      "vaulter [--config <file>] [--verbose] <command> [flags]",
		Flags:      globals.flagSet,
		HelpOutput: env.Stderr,
		Subcommands: []*cli.Command{
			setCommand(env),
			getCommand(env),
			allCommand(env),
			delCommand(env),
			locationCommand(env),
			exportCommand(env),
			importCommand(env),
			keygenCommand(env),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Fprintf(env.Stdout, "vaulter %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Store (or replace) a secret",
				Command:     "vaulter set api-token sk-abcd1234",
			},
			{
				Description: "Copy a secret to the clipboard",
				Command:     "vaulter get api-token",
			},
			{
				Description: "List stored keys",
				Command:     "vaulter all",
			},
			{
				Description: "Back up the store, sealed to an age recipient",
				Command:     "vaulter export vault.bak --recipient age1...",
			},
		},
	}
}
