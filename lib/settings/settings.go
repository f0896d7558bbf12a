// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings holds the operator's local display preferences.
// Settings are authored on disk as JSONC (JSON extended with comments
// and trailing commas) so a hand-edited file can carry notes; they
// never travel to the backend.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Settings are the local preferences of one operator workstation.
type Settings struct {
	// ReceiptTemplate selects the layout used by the checkout
	// receipt preview: "standard" or "compact".
	ReceiptTemplate string `json:"receipt_template"`

	// ReceiptWidth is the printable width in characters. Thermal
	// printers are commonly 32 or 48 columns.
	ReceiptWidth int `json:"receipt_width"`

	// ShowImages toggles product image placeholders in lists. Off
	// by default; most terminals cannot render them usefully.
	ShowImages bool `json:"show_images"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		ReceiptTemplate: "standard",
		ReceiptWidth:    48,
	}
}

// FilePath returns the settings file path. POSKIT_SETTINGS_FILE
// overrides the default of settings.jsonc next to the session file
// directory.
func FilePath() string {
	if envPath := os.Getenv("POSKIT_SETTINGS_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "poskit-settings.jsonc")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "poskit", "settings.jsonc")
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result over the defaults, so a partial file only
// overrides the fields it names.
func Parse(data []byte) (Settings, error) {
	stripped := jsonc.ToJSON(data)

	result := Default()
	if err := json.Unmarshal(stripped, &result); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	if err := result.validate(); err != nil {
		return Settings{}, err
	}
	return result, nil
}

// Load reads the settings file at path. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Save writes the settings as plain JSON (comments in a hand-edited
// file are lost on the first programmatic save).
func Save(s Settings, path string) error {
	if err := s.validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}

func (s Settings) validate() error {
	switch s.ReceiptTemplate {
	case "standard", "compact":
	default:
		return fmt.Errorf("unknown receipt template %q (want standard or compact)", s.ReceiptTemplate)
	}
	if s.ReceiptWidth < 20 || s.ReceiptWidth > 120 {
		return fmt.Errorf("receipt width %d out of range (20..120)", s.ReceiptWidth)
	}
	return nil
}
