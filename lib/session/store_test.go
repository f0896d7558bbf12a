// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poskit/poskit/lib/api"
)

// fakeBackend scripts the two auth endpoints.
type fakeBackend struct {
	loginResponse  *api.LoginResponse
	loginErr       error
	selectResponse *api.SelectCompanyResponse
	selectErr      error
}

func (f *fakeBackend) Login(ctx context.Context, request api.LoginRequest) (*api.LoginResponse, error) {
	return f.loginResponse, f.loginErr
}

func (f *fakeBackend) SelectCompany(ctx context.Context, request api.SelectCompanyRequest) (*api.SelectCompanyResponse, error) {
	return f.selectResponse, f.selectErr
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func ordinaryLogin() *api.LoginResponse {
	return &api.LoginResponse{
		Envelope: api.Envelope{Code: 200},
		Token:    "T1",
		User: &api.User{
			UserID: 7, Username: "dara", RoleID: 3,
			CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001",
		},
	}
}

func ownerLogin() *api.LoginResponse {
	return &api.LoginResponse{
		Envelope: api.Envelope{Code: 200},
		Token:    "T0",
		User:     &api.User{UserID: 1, Username: "root", RoleID: 1},
		Companies: []api.Company{
			{CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001"},
			{CompanyID: 2, CompanyName: "Piisiit", CompanyCode: "PII001"},
		},
	}
}

func TestOrdinaryLoginPopulatesSessionAndPersists(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(&fakeBackend{loginResponse: ordinaryLogin()}, path)

	response, err := store.Login(context.Background(), "dara", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token != "T1" {
		t.Fatalf("response token = %q", response.Token)
	}

	session := store.Session()
	if !session.IsAuthenticated() {
		t.Fatal("not authenticated after login")
	}
	if session.IsSystemOwner() {
		t.Fatal("role 3 treated as system owner")
	}
	company := session.CurrentCompany()
	if company.ID != 1 || company.Name != "OTOKHI" || company.Code != "OT001" {
		t.Fatalf("CurrentCompany = %+v", company)
	}

	// The session survives a fresh store (page-reload equivalent).
	reloaded := NewStore(&fakeBackend{}, path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Token() != "T1" {
		t.Fatalf("reloaded token = %q", reloaded.Token())
	}
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(&fakeBackend{loginResponse: &api.LoginResponse{
		Envelope: api.Envelope{Code: 401, Message: "bad credentials"},
	}}, path)

	_, err := store.Login(context.Background(), "dara", "wrong")
	if err == nil || err.Error() != "bad credentials" {
		t.Fatalf("err = %v, want backend message verbatim", err)
	}
	if store.Session() != nil {
		t.Fatal("failed login mutated the store")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("failed login persisted a session file")
	}
}

func TestOwnerLoginThenSelectCompany(t *testing.T) {
	backend := &fakeBackend{
		loginResponse: ownerLogin(),
		selectResponse: &api.SelectCompanyResponse{
			Envelope:  api.Envelope{Code: 200},
			Token:     "T2",
			CompanyID: 2, CompanyName: "Piisiit", CompanyCode: "PII001",
		},
	}
	store := NewStore(backend, sessionPath(t))

	if _, err := store.Login(context.Background(), "root", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	session := store.Session()
	if !session.IsSystemOwner() {
		t.Fatal("role 1 not recognized as system owner")
	}
	if company := session.CurrentCompany(); company.ID != 0 {
		t.Fatalf("owner before selection has CurrentCompany %+v", company)
	}

	if _, err := store.SelectCompany(context.Background(), 2); err != nil {
		t.Fatalf("SelectCompany: %v", err)
	}
	if store.Token() != "T2" {
		t.Fatalf("token = %q, want tenant-bound T2", store.Token())
	}
	company := store.Session().CurrentCompany()
	if company.ID != 2 || company.Name != "Piisiit" || company.Code != "PII001" {
		t.Fatalf("CurrentCompany = %+v", company)
	}
}

// Older backend builds omit the names; the companies list from login
// fills them in.
func TestSelectCompanyFallsBackToCompaniesList(t *testing.T) {
	backend := &fakeBackend{
		loginResponse: ownerLogin(),
		selectResponse: &api.SelectCompanyResponse{
			Envelope: api.Envelope{Code: 200},
			Token:    "T2",
		},
	}
	store := NewStore(backend, sessionPath(t))
	store.Login(context.Background(), "root", "x")

	if _, err := store.SelectCompany(context.Background(), 2); err != nil {
		t.Fatalf("SelectCompany: %v", err)
	}
	company := store.Session().CurrentCompany()
	if company.ID != 2 || company.Name != "Piisiit" || company.Code != "PII001" {
		t.Fatalf("CurrentCompany = %+v, want fallback from companies list", company)
	}
}

func TestSelectCompanyFailureKeepsPriorState(t *testing.T) {
	backend := &fakeBackend{
		loginResponse: ownerLogin(),
		selectResponse: &api.SelectCompanyResponse{
			Envelope: api.Envelope{Code: 500, Message: "company not assigned"},
		},
	}
	store := NewStore(backend, sessionPath(t))
	store.Login(context.Background(), "root", "x")

	_, err := store.SelectCompany(context.Background(), 99)
	if err == nil || err.Error() != "company not assigned" {
		t.Fatalf("err = %v, want backend message verbatim", err)
	}
	if store.Token() != "T0" {
		t.Fatalf("token = %q, want untouched T0", store.Token())
	}
	if company := store.Session().CurrentCompany(); company.ID != 0 {
		t.Fatalf("CurrentCompany = %+v, want still unselected", company)
	}
}

func TestSelectCompanyWithoutSession(t *testing.T) {
	store := NewStore(&fakeBackend{}, sessionPath(t))
	if _, err := store.SelectCompany(context.Background(), 1); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestLogoutClearsStateAndFile(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(&fakeBackend{loginResponse: ordinaryLogin()}, path)
	store.Login(context.Background(), "dara", "x")

	var observed []*Session
	store.Subscribe(func(session *Session) { observed = append(observed, session) })

	store.Logout()

	if store.Session() != nil {
		t.Fatal("session survived logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("session file survived logout")
	}
	if len(observed) != 1 || observed[0] != nil {
		t.Fatalf("subscribers saw %v, want one nil session", observed)
	}
}

func TestHandleUnauthorizedPurgesLikeLogout(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(&fakeBackend{loginResponse: ordinaryLogin()}, path)
	store.Login(context.Background(), "dara", "x")

	store.HandleUnauthorized()

	if store.Session() != nil || store.Token() != "" {
		t.Fatal("401 purge left session state behind")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("401 purge left the session file behind")
	}
}

// A persisted token without a user must cold-load as unauthenticated.
func TestLoadRejectsHalfWrittenSession(t *testing.T) {
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte(`{"token":"T1"}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(&fakeBackend{}, path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Session() != nil {
		t.Fatal("token-only session file treated as authenticated")
	}
}

func TestLoadMissingFileIsUnauthenticated(t *testing.T) {
	store := NewStore(&fakeBackend{}, sessionPath(t))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Session().IsAuthenticated() {
		t.Fatal("missing file treated as authenticated")
	}
}
