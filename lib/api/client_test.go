// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	client := New(Options{
		BaseURL:     server.URL,
		TokenSource: func() string { return "T1" },
	})

	if _, err := client.Products(context.Background(), ProductsRequest{CompanyID: 1}); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if gotAuth != "Bearer T1" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer T1")
	}
}

func TestPostOmitsAuthorizationWithoutToken(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	client := New(Options{
		BaseURL:     server.URL,
		TokenSource: func() string { return "" },
	})

	if _, err := client.Login(context.Background(), LoginRequest{Username: "dara", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if hadAuth {
		t.Fatal("Authorization header sent with an empty token")
	}
}

func TestUnauthorizedRunsHookAndReturnsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	purged := 0
	client := New(Options{
		BaseURL:        server.URL,
		OnUnauthorized: func() { purged++ },
	})

	_, err := client.MenuAccess(context.Background(), MenuAccessRequest{CompanyID: 1})
	if err != ErrUnauthorized {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if purged != 1 {
		t.Fatalf("unauthorized hook ran %d times, want 1", purged)
	}
}

func TestServerErrorPropagatesWithStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stored procedure exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL})

	_, err := client.Products(context.Background(), ProductsRequest{CompanyID: 1})
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "HTTP 500") || !strings.Contains(err.Error(), "stored procedure exploded") {
		t.Fatalf("err = %v, want status and body excerpt", err)
	}
}

func TestDomainFailureIsNotATransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": 403, "message": "invalid company"})
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL})

	response, err := client.SelectCompany(context.Background(), SelectCompanyRequest{CompanyID: 99})
	if err != nil {
		t.Fatalf("SelectCompany: %v", err)
	}
	if response.Success() {
		t.Fatal("code 403 reported as success")
	}
	domainErr := response.Err()
	if domainErr == nil || domainErr.Error() != "invalid company" {
		t.Fatalf("Err() = %v, want backend message verbatim", domainErr)
	}
}

func TestEndpointPaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL})
	ctx := context.Background()

	client.Login(ctx, LoginRequest{})
	client.SelectCompany(ctx, SelectCompanyRequest{})
	client.MenuAccess(ctx, MenuAccessRequest{})
	client.RolePermissions(ctx, RolePermissionsRequest{})
	client.SaveRolePermission(ctx, SaveRolePermissionRequest{})

	want := []string{
		"/api/v1/user/login",
		"/api/v1/user/select-company",
		"/api/v1/user/menu-access",
		"/api/v1/user/permissions-on-role",
		"/api/v1/user/permissions-role/save-module",
	}
	if len(paths) != len(want) {
		t.Fatalf("saw %d requests, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("request %d hit %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestMasterSuccessAcceptsZeroCode(t *testing.T) {
	zero := Envelope{Code: 0}
	twoHundred := Envelope{Code: 200}
	failed := Envelope{Code: 500, Message: "duplicate name"}

	if !zero.MasterSuccess() || !twoHundred.MasterSuccess() {
		t.Fatal("master success codes rejected")
	}
	if zero.Success() {
		t.Fatal("code 0 accepted as domain success")
	}
	if failed.MasterErr() == nil {
		t.Fatal("failed master save reported as success")
	}
}
