// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/poskit/poskit/lib/api"
)

// Backend is the slice of the API client the store needs. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	Login(ctx context.Context, request api.LoginRequest) (*api.LoginResponse, error)
	SelectCompany(ctx context.Context, request api.SelectCompanyRequest) (*api.SelectCompanyResponse, error)
}

// ErrNotAuthenticated is returned by operations that need a session
// when none is held.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Store owns the current session and its persistence. All mutations
// go through Login, SelectCompany, Logout, and HandleUnauthorized;
// subscribers observe them in a single linear order.
type Store struct {
	mu          sync.Mutex
	backend     Backend
	path        string
	session     *Session
	subscribers []func(*Session)
}

// NewStore creates a store persisting to path. The store starts
// empty; call Load to restore a previous session.
func NewStore(backend Backend, path string) *Store {
	return &Store{backend: backend, path: path}
}

// Load restores the persisted session, if any. A corrupt session file
// is an error; a missing or half-written one silently yields the
// unauthenticated state.
func (s *Store) Load() error {
	session, err := loadFrom(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

// Subscribe registers a listener invoked synchronously after every
// session change, with the new session (nil after logout).
func (s *Store) Subscribe(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Session returns the current session, or nil. Callers must treat the
// result as read-only.
func (s *Store) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token returns the current bearer token, or "". This is the api
// client's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Login authenticates and, on success, replaces the session. A
// backend refusal (non-success envelope) is returned as an error
// carrying the backend's message; the store is not mutated. The
// response is returned so the caller can branch on whether a tenant
// still has to be selected.
func (s *Store) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	response, err := s.backend.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if err := response.Err(); err != nil {
		return nil, err
	}

	session := &Session{
		Token:     response.Token,
		User:      response.User,
		Companies: response.Companies,
	}
	s.replace(session)
	return response, nil
}

// SelectCompany binds the session to a tenant: the token is replaced
// with the tenant-bound token and the user record is patched with the
// company fields, falling back to the companies list when the backend
// omits the names. Callers must refresh the permission store after
// this returns.
func (s *Store) SelectCompany(ctx context.Context, companyID int) (*api.SelectCompanyResponse, error) {
	s.mu.Lock()
	current := s.session
	s.mu.Unlock()
	if !current.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	response, err := s.backend.SelectCompany(ctx, api.SelectCompanyRequest{CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	if err := response.Err(); err != nil {
		return nil, err
	}

	boundID := response.CompanyID
	if boundID == 0 {
		boundID = companyID
	}

	user := *current.User
	user.CompanyID = boundID
	user.CompanyName = response.CompanyName
	user.CompanyCode = response.CompanyCode
	if user.CompanyName == "" || user.CompanyCode == "" {
		for _, company := range current.Companies {
			if company.CompanyID == boundID {
				if user.CompanyName == "" {
					user.CompanyName = company.CompanyName
				}
				if user.CompanyCode == "" {
					user.CompanyCode = company.CompanyCode
				}
				break
			}
		}
	}

	session := &Session{
		Token:     response.Token,
		User:      &user,
		Companies: current.Companies,
	}
	s.replace(session)
	return response, nil
}

// Logout clears all state and the persisted file. No backend call is
// made; the token simply stops being used.
func (s *Store) Logout() {
	s.purge()
}

// HandleUnauthorized is the 401 hook: the same purge as Logout. The
// api client invokes it before surfacing ErrUnauthorized.
func (s *Store) HandleUnauthorized() {
	s.purge()
}

func (s *Store) purge() {
	s.mu.Lock()
	s.session = nil
	removeFile(s.path)
	subscribers := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(nil)
	}
}

func (s *Store) replace(session *Session) {
	s.mu.Lock()
	s.session = session
	// Persistence failure must not roll back a successful login; the
	// session just won't survive the process.
	_ = saveTo(session, s.path)
	subscribers := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}
}

// snapshot copies the subscriber list; callers hold the lock.
func (s *Store) snapshot() []func(*Session) {
	subscribers := make([]func(*Session), len(s.subscribers))
	copy(subscribers, s.subscribers)
	return subscribers
}
