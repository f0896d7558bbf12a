// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"sort"
	"strings"
)

// Flag names a single permission bit on a module.
type Flag string

const (
	FlagList   Flag = "list"
	FlagAdd    Flag = "add"
	FlagEdit   Flag = "edit"
	FlagDelete Flag = "delete"
	FlagCost   Flag = "cost"
	FlagPrint  Flag = "print"
)

// Flags holds the seven permission booleans for one module.
type Flags struct {
	Full   bool
	List   bool
	Add    bool
	Edit   bool
	Delete bool
	Cost   bool
	Print  bool
}

// Can reports whether the flags allow the named action. Full is a
// capability shortcut: it makes every flag behave as true. Unknown
// flag names are denied.
func Can(flags Flags, need Flag) bool {
	if flags.Full {
		return true
	}
	switch need {
	case FlagList:
		return flags.List
	case FlagAdd:
		return flags.Add
	case FlagEdit:
		return flags.Edit
	case FlagDelete:
		return flags.Delete
	case FlagCost:
		return flags.Cost
	case FlagPrint:
		return flags.Print
	default:
		return false
	}
}

// ModuleRecord is the wire shape of one menu entry as returned by the
// backend's menu-access endpoint. Flags arrive as 0/1 integers.
type ModuleRecord struct {
	ModuleID      int    `json:"module_id"`
	ModuleName    string `json:"module_name"`
	ModuleDisplay string `json:"module_display"`
	ModuleRoute   string `json:"module_route"`
	ModuleIcon    string `json:"module_icon"`
	SortOrder     int    `json:"sort_order"`
	Full          int    `json:"full"`
	List          int    `json:"list"`
	Add           int    `json:"add"`
	Edit          int    `json:"edit"`
	Delete        int    `json:"delete"`
	Cost          int    `json:"cost"`
	Print         int    `json:"print"`
}

// Module is the canonical, normalized form of one navigable unit.
type Module struct {
	// ID is the backend's numeric module id, used only for
	// de-duplication and as a stable list key.
	ID int

	// Name is the module's stable identifier (e.g. "Product"). This
	// is the permission identity.
	Name string

	// Display is the human label shown in the menu.
	Display string

	// Route is the URL-style path segment, leading slash stripped.
	Route string

	// Icon is the backend-chosen icon name.
	Icon string

	// SortOrder positions the module in the menu. Entries without a
	// sort order keep 0 and fall back to name ordering.
	SortOrder int

	// Perms are the module's permission flags.
	Perms Flags
}

// Matrix is the ordered, de-duplicated permission matrix for one
// (user, tenant) pair.
type Matrix []Module

// Normalize converts the backend menu payload into the canonical
// matrix: duplicates filtered by module id (first occurrence wins),
// sorted by sort order then module name, routes stripped of their
// leading slash, flags coerced to booleans.
//
// Normalize is idempotent over its own output when re-projected
// through the wire shape, and never returns nil.
func Normalize(records []ModuleRecord) Matrix {
	seen := make(map[int]bool, len(records))
	matrix := make(Matrix, 0, len(records))

	for _, record := range records {
		if seen[record.ModuleID] {
			continue
		}
		seen[record.ModuleID] = true

		matrix = append(matrix, Module{
			ID:        record.ModuleID,
			Name:      record.ModuleName,
			Display:   record.ModuleDisplay,
			Route:     NormalizeRoute(record.ModuleRoute),
			Icon:      record.ModuleIcon,
			SortOrder: record.SortOrder,
			Perms: Flags{
				Full:   record.Full != 0,
				List:   record.List != 0,
				Add:    record.Add != 0,
				Edit:   record.Edit != 0,
				Delete: record.Delete != 0,
				Cost:   record.Cost != 0,
				Print:  record.Print != 0,
			},
		})
	}

	sort.SliceStable(matrix, func(i, j int) bool {
		if matrix[i].SortOrder != matrix[j].SortOrder {
			return matrix[i].SortOrder < matrix[j].SortOrder
		}
		return matrix[i].Name < matrix[j].Name
	})

	return matrix
}

// NormalizeRoute strips the leading slash from a module route so that
// "/products" and "products" compare equal.
func NormalizeRoute(route string) string {
	return strings.TrimPrefix(route, "/")
}
