// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/poskit/poskit/lib/notify"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/posui"
	"github.com/poskit/poskit/lib/settings"
)

// ConsoleCommand returns the "console" command: the interactive admin
// console, opened with "poskit console".
func ConsoleCommand() *Command {
	var configPath string

	return &Command{
		Name:    "console",
		Summary: "Open the interactive admin console",
		Description: `Open the POS admin console.

A restored session skips the login form; a system-owner session
without a selected company lands on the company picker. Everything
else — which modules appear, which actions work — follows the
permission matrix the backend answers for the signed-in role.`,
		Usage: "poskit console [flags]",
		Examples: []Example{
			{
				Description: "Open the console with an explicit config",
				Command:     "poskit console --config ./poskit.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $POSKIT_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runConsole(configPath)
		},
	}
}

func runConsole(configPath string) error {
	env, err := setup(configPath)
	if err != nil {
		return err
	}

	prefs, err := settings.Load(settings.FilePath())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	logger := NewCommandLogger().With("command", "console")
	logger.Info("starting console",
		"backend", env.config.Backend.BaseURL,
		"environment", string(env.config.Environment))

	model := posui.New(posui.Options{
		Sessions: env.sessions,
		Perms:    permission.NewStore(),
		Backend:  env.client,
		Bus:      notify.NewBus(),
		Settings: prefs,
	})
	env.loading = model.LoaderSink()

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
