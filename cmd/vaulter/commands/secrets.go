// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/vaulter-dev/vaulter/cmd/vaulter/cli"
	"github.com/vaulter-dev/vaulter/lib/clipboard"
	"github.com/vaulter-dev/vaulter/lib/record"
)

func setCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "set",
		Aliases: []string{"s"},
		Summary: "Set (or update) a key-value pair",
		Description: `Encrypt a value and store it under a key, replacing any existing value.

Keys and values must each be between 2 and 128 bytes.`,
		Usage: "vaulter set <key> <value>",
		Examples: []cli.Example{
			{
				Description: "Store an API token",
				Command:     "vaulter set api-token sk-abcd1234",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("set requires <key> and <value> arguments (got %d)", len(args))
			}
			secret, err := record.New(args[0], args[1])
			if err != nil {
				return err
			}

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			cipher, err := env.deriveCipher(logger)
			if err != nil {
				return err
			}
			defer cipher.Close()

			replaced, err := secrets.Exists(ctx, secret.Key())
			if err != nil {
				return err
			}
			if err := secrets.WithCrypto(cipher).Save(ctx, secret); err != nil {
				return err
			}
			logger.Debug("secret saved", "key", secret.Key(), "replaced", replaced)
			fmt.Fprintln(env.Stdout, "Secret saved successfully")
			return nil
		},
	}
}

func getCommand(env *Environment) *cli.Command {
	var toStdout bool

	return &cli.Command{
		Name:    "get",
		Aliases: []string{"g"},
		Summary: "Copy a value to the clipboard",
		Description: `Decrypt the value stored under a key and copy it to the clipboard.

The clipboard helper is the first of wl-copy, xsel, or xclip found in
PATH (pbcopy on macOS), unless the config file lists clipboard tools.`,
		Usage: "vaulter get <key> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("get", pflag.ContinueOnError)
			flagSet.BoolVar(&toStdout, "stdout", false, "print the value to stdout instead of copying it")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Copy a token to the clipboard",
				Command:     "vaulter get api-token",
			},
			{
				Description: "Use a secret in a pipeline",
				Command:     "vaulter get db-password --stdout | psql-login",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("get requires a <key> argument (got %d arguments)", len(args))
			}

			// Resolve the clipboard before prompting so a missing helper
			// fails without asking for the passphrase.
			var target clipboard.Clipboard
			if !toStdout {
				clip, err := env.detectClipboard()
				if err != nil {
					return err
				}
				target = clip
			}

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			cipher, err := env.deriveCipher(logger)
			if err != nil {
				return err
			}
			defer cipher.Close()

			secret, err := secrets.WithCrypto(cipher).Get(ctx, args[0])
			if err != nil {
				return err
			}

			if toStdout {
				fmt.Fprintln(env.Stdout, secret.Value())
				return nil
			}
			if err := target.Copy(secret.Value()); err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, "Secret copied to clipboard")
			return nil
		},
	}
}

func allCommand(env *Environment) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "all",
		Aliases: []string{"a", "list"},
		Summary: "List all keys",
		Description: `Print every stored key, one per line. Values are not decrypted, so no
passphrase is needed. Order is unspecified.`,
		Usage: "vaulter all [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("all", pflag.ContinueOnError)
			flagSet.BoolVar(&outputJSON, "json", false, "print keys as a JSON array")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return fmt.Errorf("all takes no arguments (got %d)", len(args))
			}

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			keys, err := secrets.ListKeys(ctx)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(env.Stdout, keys)
			}
			for _, key := range keys {
				fmt.Fprintln(env.Stdout, key)
			}
			return nil
		},
	}
}

func delCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "del",
		Aliases: []string{"d"},
		Summary: "Delete a key",
		Description: `Remove a key and its value. Deleting a key that does not exist
succeeds. No passphrase is needed.`,
		Usage: "vaulter del <key>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("del requires a <key> argument (got %d arguments)", len(args))
			}

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			if err := secrets.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, "Secret deleted successfully")
			return nil
		},
	}
}

func locationCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "location",
		Aliases: []string{"l"},
		Summary: "Show location of database file",
		Description: `Print the database path: VAULTER_DB_PATH if set, else database.path
from the config file, else the platform data directory.`,
		Usage: "vaulter location",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 0 {
				return fmt.Errorf("location takes no arguments (got %d)", len(args))
			}
			fmt.Fprintf(env.Stdout, "Database location: %s\n", env.Config.Database.Path)
			return nil
		},
	}
}
