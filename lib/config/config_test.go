// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseMinimal(t *testing.T) {
	cfg, err := Parse([]byte(`
environment: development
backend:
  base_url: http://localhost:9080
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:9080" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout.Std() != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Backend.Timeout, DefaultTimeout)
	}
}

func TestParseAppliesEnvironmentOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
environment: production
backend:
  base_url: http://localhost:9080
  timeout: 10s
production:
  backend:
    base_url: https://pos.example.com
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Backend.BaseURL != "https://pos.example.com" {
		t.Errorf("BaseURL = %q, want production override", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout.Std() != 10*time.Second {
		t.Errorf("Timeout = %v, want base value to survive", cfg.Backend.Timeout)
	}
}

func TestParseRejectsMissingEnvironment(t *testing.T) {
	_, err := Parse([]byte("backend:\n  base_url: http://x\n"))
	if err == nil || !strings.Contains(err.Error(), "environment is required") {
		t.Fatalf("err = %v, want missing-environment error", err)
	}
}

func TestParseRejectsBadBaseURL(t *testing.T) {
	_, err := Parse([]byte(`
environment: development
backend:
  base_url: localhost:9080
`))
	if err == nil || !strings.Contains(err.Error(), "http(s)") {
		t.Fatalf("err = %v, want URL scheme error", err)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
environment: development
backend:
  base_url: http://x
  retries: 3
`))
	if err == nil {
		t.Fatal("unknown field accepted")
	}
}
