// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCommentsAndTrailingCommas(t *testing.T) {
	input := `{
		// operator prefers the narrow printer
		"receipt_template": "compact",
		"receipt_width": 32,
	}`

	result, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.ReceiptTemplate != "compact" || result.ReceiptWidth != 32 {
		t.Fatalf("result = %+v", result)
	}
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	result, err := Parse([]byte(`{"receipt_template": "compact"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.ReceiptWidth != Default().ReceiptWidth {
		t.Fatalf("width = %d, want default %d", result.ReceiptWidth, Default().ReceiptWidth)
	}
}

func TestParseRejectsUnknownTemplate(t *testing.T) {
	_, err := Parse([]byte(`{"receipt_template": "fancy"}`))
	if err == nil || !strings.Contains(err.Error(), "fancy") {
		t.Fatalf("err = %v, want unknown template rejection", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "absent.jsonc"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result != Default() {
		t.Fatalf("result = %+v, want defaults", result)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.jsonc")
	want := Settings{ReceiptTemplate: "compact", ReceiptWidth: 32, ShowImages: true}

	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.jsonc")
	err := Save(Settings{ReceiptTemplate: "standard", ReceiptWidth: 4}, path)
	if err == nil {
		t.Fatal("Save accepted out-of-range width")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("invalid settings were written anyway")
	}
}
