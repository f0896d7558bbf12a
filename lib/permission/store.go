// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import "sync"

// Store holds the current permission matrix. It does not call the
// backend itself: the console fetches menu access whenever the
// session's tenant changes and hands the normalized result in via
// SetMatrix.
//
// The store records which tenant the matrix belongs to so that a
// stale fetch (dispatched for a tenant the user has since left) can
// be detected and discarded by the caller.
type Store struct {
	mu          sync.Mutex
	matrix      Matrix
	companyID   int
	subscribers []func(Matrix)
}

// NewStore returns an empty store: every lookup answers all-false
// until the first SetMatrix.
func NewStore() *Store { return &Store{} }

// Subscribe registers a listener invoked synchronously after every
// SetMatrix and Clear, with the new matrix.
func (s *Store) Subscribe(fn func(Matrix)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// SetMatrix atomically replaces the matrix and records the tenant it
// was fetched for.
func (s *Store) SetMatrix(matrix Matrix, companyID int) {
	s.mu.Lock()
	s.matrix = matrix
	s.companyID = companyID
	subscribers := make([]func(Matrix), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(matrix)
	}
}

// Clear drops the matrix (logout).
func (s *Store) Clear() {
	s.SetMatrix(nil, 0)
}

// CompanyID returns the tenant the current matrix was fetched for,
// or 0 when no matrix is held.
func (s *Store) CompanyID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companyID
}

// Matrix returns the current matrix in canonical order.
func (s *Store) Matrix() Matrix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matrix
}

// PermsFor returns the flags for the named module, or all-false when
// the module is not present. Never panics.
func (s *Store) PermsFor(moduleName string) Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, module := range s.matrix {
		if module.Name == moduleName {
			return module.Perms
		}
	}
	return Flags{}
}

// PermsForRoute returns the flags for the module whose route matches,
// leading slashes ignored on both sides. All-false when unknown.
func (s *Store) PermsForRoute(route string) Flags {
	normalized := NormalizeRoute(route)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, module := range s.matrix {
		if module.Route == normalized {
			return module.Perms
		}
	}
	return Flags{}
}
