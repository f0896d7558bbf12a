// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poskit/poskit/lib/api"
)

// Session is the authenticated identity. Exactly one token is held at
// a time; a tenant-bound token from selectCompany supersedes the
// identity token from login.
type Session struct {
	// Token is the current bearer token.
	Token string `json:"token"`

	// User is the authenticated user record. A session has a token
	// iff it has a user.
	User *api.User `json:"user"`

	// Companies is the list a system owner may operate. Empty for
	// ordinary users, whose single company arrives on the user
	// record itself.
	Companies []api.Company `json:"companies,omitempty"`
}

// IsAuthenticated reports whether the session holds an identity.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// IsSystemOwner reports whether the user may operate any tenant.
// Role id 1 is the system owner role.
func (s *Session) IsSystemOwner() bool {
	return s != nil && s.User != nil && s.User.RoleID == 1
}

// CurrentCompany is the resolved operating tenant. ID zero means no
// tenant is selected (possible only for system owners).
type CurrentCompany struct {
	ID   int
	Name string
	Code string
}

// CurrentCompany resolves the operating tenant: the user record's own
// company fields when present, else a lookup of the user's company id
// in the companies list, else unselected.
func (s *Session) CurrentCompany() CurrentCompany {
	if s == nil || s.User == nil || s.User.CompanyID == 0 {
		return CurrentCompany{}
	}
	if s.User.CompanyName != "" || s.User.CompanyCode != "" {
		return CurrentCompany{
			ID:   s.User.CompanyID,
			Name: s.User.CompanyName,
			Code: s.User.CompanyCode,
		}
	}
	for _, company := range s.Companies {
		if company.CompanyID == s.User.CompanyID {
			return CurrentCompany{
				ID:   company.CompanyID,
				Name: company.CompanyName,
				Code: company.CompanyCode,
			}
		}
	}
	return CurrentCompany{ID: s.User.CompanyID}
}

// FilePath returns the path of the persisted session. Checks the
// POSKIT_SESSION_FILE environment variable first, then falls back to
// ~/.config/poskit/session.json.
func FilePath() string {
	if envPath := os.Getenv("POSKIT_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "poskit-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "poskit", "session.json")
}

// loadFrom reads a persisted session. A missing file is not an error:
// it returns (nil, nil), meaning unauthenticated. A file holding a
// token without a user (or the reverse) is treated the same way — a
// half-written session must never be trusted.
func loadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if !session.IsAuthenticated() {
		return nil, nil
	}
	return &session, nil
}

// saveTo writes the session with mode 0600 (it contains an access
// token), creating the parent directory with 0700 if needed.
func saveTo(session *Session, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// removeFile deletes the persisted session. Missing is fine.
func removeFile(path string) {
	os.Remove(path)
}
