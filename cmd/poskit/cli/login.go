// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/poskit/poskit/lib/session"
)

// LoginCommand returns the "login" command for authenticating against
// the POS backend. On success the session is saved to the well-known
// path (~/.config/poskit/session.json); subsequent commands and the
// console load it transparently.
func LoginCommand() *Command {
	var configPath string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate against the POS backend",
		Description: `Log in to the POS backend and save the session locally.

After login, "poskit console" and the other commands use the saved
session transparently — no flags needed.

The session file is stored at ~/.config/poskit/session.json (or
$POSKIT_SESSION_FILE if set, or $XDG_CONFIG_HOME/poskit/session.json).
The file is written with mode 0600 (owner-only read/write) since it
contains an access token.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.

System owners are not bound to a tenant by login alone: run
"poskit company select <id>" afterwards, or pick one inside the
console.`,
		Usage: "poskit login <username> [flags]",
		Examples: []Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "poskit login dara",
			},
			{
				Description: "Log in with password from file",
				Command:     "poskit login dara --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $POSKIT_CONFIG)")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("username is required\n\nUsage: poskit login <username> [flags]")
			}
			username := strings.TrimSpace(args[0])
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			password, err := readLoginPassword(passwordFile)
			if err != nil {
				return err
			}

			// Empty credentials never reach the backend.
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			env, err := setup(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := env.sessions.Login(ctx, username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			current := env.sessions.Session()
			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", response.User.Username, response.User.RoleName)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", session.FilePath())

			if current.IsSystemOwner() && current.CurrentCompany().ID == 0 {
				fmt.Fprintf(os.Stderr, "\nNo company selected. Available:\n")
				for _, company := range response.Companies {
					fmt.Fprintf(os.Stderr, "  %4d  %-8s %s\n", company.CompanyID, company.CompanyCode, company.CompanyName)
				}
				fmt.Fprintf(os.Stderr, "\nRun 'poskit company select <id>' to pick one.\n")
			}
			return nil
		},
	}
}

// readLoginPassword reads the password for the login command. If
// passwordFile is empty or "-", prompts interactively on the terminal
// with echo disabled. Otherwise reads from the file path, stripping
// trailing newlines (common with echo/printf pipelines).
func readLoginPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", passwordFile, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}
