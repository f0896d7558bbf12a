// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete poskit CLI command tree.
package commands

import (
	"fmt"

	"github.com/poskit/poskit/cmd/poskit/cli"
	"github.com/poskit/poskit/lib/version"
)

// Root builds and returns the complete poskit CLI command tree.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "poskit",
		Description: `Poskit: terminal admin console for the POS backend.

Authenticate once with "poskit login", then open the console. Which
modules and actions are available follows the permission matrix the
backend answers for the signed-in role and company.`,
		Subcommands: []*cli.Command{
			cli.ConsoleCommand(),
			cli.LoginCommand(),
			cli.LogoutCommand(),
			cli.WhoAmICommand(),
			cli.CompanyCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("poskit %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate (saves the session locally)",
				Command:     "poskit login dara",
			},
			{
				Description: "Open the admin console",
				Command:     "poskit console",
			},
			{
				Description: "Switch the operating company (system owners)",
				Command:     "poskit company select 2",
			},
		},
	}
	return root
}
