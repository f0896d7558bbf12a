// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
)

// rolesScreen is the role/module permission administration grid: one
// row per (role, module) pair, one column per flag. Space toggles the
// flag under the cursor and saves the whole row.
type rolesScreen struct {
	records []api.RolePermissionRecord
	cursor  int
	column  int // 0..6 over full,list,add,edit,delete,cost,print.
	saving  bool
}

// roleFlagColumns is the column order of the grid, full first because
// it dominates the rest.
var roleFlagColumns = []string{"full", "list", "add", "edit", "delete", "cost", "print"}

func newRolesScreen() rolesScreen {
	return rolesScreen{}
}

func (screen *rolesScreen) reset() {
	screen.cursor = 0
	screen.column = 0
	screen.saving = false
}

// setData installs the records sorted by role then module so the grid
// groups visually by role.
func (screen *rolesScreen) setData(records []api.RolePermissionRecord) {
	sort.SliceStable(records, func(a, b int) bool {
		if records[a].RoleID != records[b].RoleID {
			return records[a].RoleID < records[b].RoleID
		}
		return records[a].ModuleName < records[b].ModuleName
	})
	screen.records = records
	screen.saving = false
	if screen.cursor >= len(records) {
		screen.cursor = 0
	}
}

// toggled returns the save request for the record at the cursor with
// the current column's flag inverted.
func (screen *rolesScreen) toggled() (api.SaveRolePermissionRequest, bool) {
	if screen.cursor < 0 || screen.cursor >= len(screen.records) {
		return api.SaveRolePermissionRequest{}, false
	}
	record := screen.records[screen.cursor]
	request := api.SaveRolePermissionRequest{
		RoleID:   record.RoleID,
		ModuleID: record.ModuleID,
		Full:     record.Full,
		List:     record.List,
		Add:      record.Add,
		Edit:     record.Edit,
		Delete:   record.Delete,
		Cost:     record.Cost,
		Print:    record.Print,
	}

	flip := func(value int) int {
		if value == 0 {
			return 1
		}
		return 0
	}
	switch roleFlagColumns[screen.column] {
	case "full":
		request.Full = flip(request.Full)
	case "list":
		request.List = flip(request.List)
	case "add":
		request.Add = flip(request.Add)
	case "edit":
		request.Edit = flip(request.Edit)
	case "delete":
		request.Delete = flip(request.Delete)
	case "cost":
		request.Cost = flip(request.Cost)
	case "print":
		request.Print = flip(request.Print)
	}
	return request, true
}

func (model Model) updateRoles(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.roles

	switch {
	case key.Matches(message, model.keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if screen.cursor < len(screen.records)-1 {
			screen.cursor++
		}

	case message.Type == tea.KeyLeft:
		if screen.column > 0 {
			screen.column--
		}

	case message.Type == tea.KeyRight:
		if screen.column < len(roleFlagColumns)-1 {
			screen.column++
		}

	case key.Matches(message, model.keys.Home):
		screen.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(screen.records) > 0 {
			screen.cursor = len(screen.records) - 1
		}

	case key.Matches(message, model.keys.Toggle), message.Type == tea.KeyEnter:
		if screen.saving {
			return model, nil
		}
		if !model.can(ScreenRoles, permission.FlagEdit) {
			return model, model.deny("editing role permissions")
		}
		request, ok := screen.toggled()
		if !ok {
			return model, nil
		}
		screen.saving = true
		return model, model.saveRolePermissionCmd(model.currentCompanyID(), request)
	}

	return model, nil
}
