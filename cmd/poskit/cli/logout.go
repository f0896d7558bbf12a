// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/poskit/poskit/lib/session"
)

// LogoutCommand returns the "logout" command: discard the local
// session. No backend call is made; the token simply stops being used.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Usage:   "poskit logout",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			// No backend wiring needed: the store only touches the
			// session file for a logout.
			store := session.NewStore(nil, session.FilePath())
			if err := store.Load(); err != nil {
				return err
			}
			if store.Session() == nil {
				fmt.Fprintln(os.Stderr, "Not logged in.")
				return nil
			}
			store.Logout()
			fmt.Fprintln(os.Stderr, "Logged out.")
			return nil
		},
	}
}
