// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// CompanyCommand returns the "company" command group for system
// owners: list the operable tenants and bind the session to one.
func CompanyCommand() *Command {
	return &Command{
		Name:    "company",
		Summary: "List and select the operating company",
		Subcommands: []*Command{
			companyListCommand(),
			companySelectCommand(),
		},
	}
}

func companyListCommand() *Command {
	return &Command{
		Name:    "list",
		Summary: "List the companies this session may operate",
		Usage:   "poskit company list",
		Run: func(args []string) error {
			env, err := setup("")
			if err != nil {
				return err
			}
			current := env.sessions.Session()
			if !current.IsAuthenticated() {
				return fmt.Errorf("not logged in (run 'poskit login <username>' first)")
			}
			if len(current.Companies) == 0 {
				fmt.Fprintln(os.Stderr, "This account operates a single company; nothing to select.")
				return nil
			}

			selected := current.CurrentCompany().ID
			for _, company := range current.Companies {
				marker := " "
				if company.CompanyID == selected {
					marker = "*"
				}
				fmt.Printf("%s %4d  %-8s %s\n", marker, company.CompanyID, company.CompanyCode, company.CompanyName)
			}
			return nil
		},
	}
}

func companySelectCommand() *Command {
	var configPath string

	return &Command{
		Name:    "select",
		Summary: "Bind the session to a company",
		Description: `Select the operating company for a system-owner session.

The backend issues a tenant-bound replacement token; every later
request (and the console) operates on the selected company until the
next select or logout.`,
		Usage: "poskit company select <id> [flags]",
		Examples: []Example{
			{
				Description: "Switch to company 2",
				Command:     "poskit company select 2",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("select", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (default: $POSKIT_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("company id is required\n\nUsage: poskit company select <id>")
			}
			companyID, err := strconv.Atoi(args[0])
			if err != nil || companyID <= 0 {
				return fmt.Errorf("invalid company id %q", args[0])
			}

			env, err := setup(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := env.sessions.SelectCompany(ctx, companyID); err != nil {
				return fmt.Errorf("select company: %w", err)
			}

			company := env.sessions.Session().CurrentCompany()
			fmt.Fprintf(os.Stderr, "Operating company: %s [%s]\n", company.Name, company.Code)
			return nil
		},
	}
}
