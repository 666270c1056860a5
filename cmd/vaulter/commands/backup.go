// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/vaulter-dev/vaulter/cmd/vaulter/cli"
	"github.com/vaulter-dev/vaulter/lib/backup"
	"github.com/vaulter-dev/vaulter/lib/fault"
	"github.com/vaulter-dev/vaulter/lib/secret"
	"github.com/vaulter-dev/vaulter/lib/store"
)

func exportCommand(env *Environment) *cli.Command {
	var (
		recipients []string
		force      bool
	)

	return &cli.Command{
		Name:    "export",
		Summary: "Write a backup of every secret",
		Description: `Write every stored row to a backup file. Values stay encrypted under
the store passphrase, so no passphrase is needed and restoring the
backup requires the same one.

With --recipient, the backup is additionally encrypted to age public
keys, which also hides key names. Use "-" to write to stdout.`,
		Usage: "vaulter export <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.StringArrayVar(&recipients, "recipient", nil, "age public key (age1...) to seal the backup to (repeatable)")
			flagSet.BoolVar(&force, "force", false, "overwrite an existing file")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Back up to a file",
				Command:     "vaulter export vault.bak",
			},
			{
				Description: "Back up sealed to an age key",
				Command:     "vaulter export vault.bak --recipient age1ql3z7hjy54pw3hyww5ayyfg7zqgvc7w3j2elw8zmrj2kg5sfn9aqmcac8p",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("export requires a <file> argument (got %d arguments)", len(args))
			}
			path := args[0]

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			rows, err := secrets.Rows(ctx)
			if err != nil {
				return err
			}

			options := backup.WriteOptions{Recipients: recipients, Clock: env.clockOrReal()}
			if path == "-" {
				if err := backup.Write(env.Stdout, rows, options); err != nil {
					return err
				}
				fmt.Fprintf(env.Stderr, "Exported %d secrets\n", len(rows))
				return nil
			}

			if err := writeBackupFile(path, force, rows, options); err != nil {
				return err
			}
			logger.Debug("backup written", "path", path, "rows", len(rows), "sealed", len(recipients) > 0)
			fmt.Fprintf(env.Stdout, "Exported %d secrets to %s\n", len(rows), path)
			return nil
		},
	}
}

// writeBackupFile writes the archive to path, readable only by the
// owner. Without force an existing file is an error. A failed write
// removes the partial file.
func writeBackupFile(path string, force bool, rows []store.Row, options backup.WriteOptions) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fault.Backup("creating backup file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fault.Backup("closing backup file: %w", closeErr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	writer := bufio.NewWriter(file)
	if err := backup.Write(writer, rows, options); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fault.Backup("writing backup file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fault.Backup("syncing backup file: %w", err)
	}
	return nil
}

func importCommand(env *Environment) *cli.Command {
	var (
		identityFile string
		verify       bool
	)

	return &cli.Command{
		Name:    "import",
		Summary: "Restore secrets from a backup",
		Description: `Read a backup written by "vaulter export" and upsert its rows. Rows are
written in one transaction: on any error nothing is imported.

Keys in the backup replace existing keys of the same name; other keys
are left alone. With --verify, every value is decrypted with the
passphrase before anything is written, so a backup made under a
different passphrase is rejected.`,
		Usage: "vaulter import <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flagSet.StringVar(&identityFile, "identity-file", "", "age identity file for a sealed backup (- for stdin)")
			flagSet.BoolVar(&verify, "verify", false, "decrypt every value with the passphrase before importing")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Restore a sealed backup",
				Command:     "vaulter import vault.bak --identity-file ~/.config/vaulter/identity.txt",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("import requires a <file> argument (got %d arguments)", len(args))
			}
			path := args[0]
			if path == "-" && identityFile == "-" {
				return fmt.Errorf("stdin cannot carry both the backup and the identity")
			}
			if path == "-" && verify && os.Getenv(cli.PassphraseEnv) == "" {
				return fmt.Errorf("--verify with a backup on stdin needs the passphrase in %s", cli.PassphraseEnv)
			}

			var options backup.ReadOptions
			if identityFile != "" {
				identity, err := secret.ReadFromPath(identityFile)
				if err != nil {
					return fault.Backup("reading identity file: %w", err)
				}
				defer identity.Close()
				options.Identity = identity
			}

			archive, err := readBackup(path, env.Stdin, options)
			if err != nil {
				return err
			}
			logger.Debug("backup read", "path", path, "rows", len(archive.Rows), "created_at", archive.CreatedAt)

			secrets, err := env.openStore(logger)
			if err != nil {
				return err
			}
			defer secrets.Close()

			if verify {
				cipher, err := env.deriveCipher(logger)
				if err != nil {
					return err
				}
				defer cipher.Close()

				for _, row := range archive.Rows {
					if _, err := cipher.Decrypt(row.Val); err != nil {
						return fmt.Errorf("verifying %s: %w", row.Key, err)
					}
				}
			}

			if err := secrets.PutRows(ctx, archive.Rows); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "Imported %d secrets\n", len(archive.Rows))
			return nil
		},
	}
}

func readBackup(path string, stdin io.Reader, options backup.ReadOptions) (*backup.Archive, error) {
	if path == "-" {
		return backup.Read(stdin, options)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fault.Backup("opening backup file: %w", err)
	}
	defer file.Close()
	return backup.Read(bufio.NewReader(file), options)
}

func keygenCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity for sealed backups",
		Description: `Create an age X25519 identity file, readable only by you, and print
its public key. Pass the public key to "vaulter export --recipient" and
the file to "vaulter import --identity-file". An existing file is never
overwritten.`,
		Usage: "vaulter keygen <identity-file>",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("keygen requires an <identity-file> argument (got %d arguments)", len(args))
			}

			identity, err := backup.GenerateIdentity(env.clockOrReal())
			if err != nil {
				return err
			}
			defer identity.Close()

			if err := identity.WriteFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "Public key: %s\n", identity.PublicKey)
			return nil
		},
	}
}
