// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/poskit/poskit/lib/session"
)

// WhoAmICommand returns the "whoami" command: print the saved
// session's identity and operating company. Exits 1 when no session
// is held, so scripts can probe authentication state.
func WhoAmICommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "Print the saved session's identity",
		Usage:   "poskit whoami",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			store := session.NewStore(nil, session.FilePath())
			if err := store.Load(); err != nil {
				return err
			}
			current := store.Session()
			if !current.IsAuthenticated() {
				fmt.Fprintln(os.Stderr, "Not logged in.")
				return &ExitError{Code: 1}
			}

			fmt.Printf("user:    %s\n", current.User.Username)
			fmt.Printf("role:    %s\n", current.User.RoleName)
			company := current.CurrentCompany()
			if company.ID == 0 {
				fmt.Printf("company: (none selected)\n")
			} else {
				fmt.Printf("company: %s [%s]\n", company.Name, company.Code)
			}
			return nil
		},
	}
}
