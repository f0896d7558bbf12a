// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
)

type usersMode int

const (
	usersList usersMode = iota
	usersForm
	usersConfirmDelete
)

// usersScreen is user management: list, create/edit form, delete.
type usersScreen struct {
	mode     usersMode
	accounts []api.AccountRecord
	cursor   int

	// Form state. editingID zero means create.
	editingID int
	inputs    []textinput.Model // username, password, role id
	formFocus int
	formError string
	active    bool
}

const (
	userFieldUsername = iota
	userFieldPassword
	userFieldRoleID
	userFieldCount
)

func newUsersScreen() usersScreen {
	return usersScreen{}
}

func (screen *usersScreen) reset() {
	screen.mode = usersList
	screen.cursor = 0
	screen.accounts = nil
}

func (screen *usersScreen) editing() bool {
	return screen.mode == usersForm
}

func (screen *usersScreen) setData(accounts []api.AccountRecord) {
	screen.accounts = accounts
	if screen.cursor >= len(accounts) {
		screen.cursor = 0
	}
}

func (screen *usersScreen) selected() (api.AccountRecord, bool) {
	if screen.cursor < 0 || screen.cursor >= len(screen.accounts) {
		return api.AccountRecord{}, false
	}
	return screen.accounts[screen.cursor], true
}

func (screen *usersScreen) openForm(account *api.AccountRecord) {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password (blank keeps current)"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	roleID := textinput.New()
	roleID.Placeholder = "role id"
	roleID.CharLimit = 8

	screen.inputs = []textinput.Model{username, password, roleID}
	screen.formFocus = 0
	screen.formError = ""
	screen.active = true

	if account != nil {
		screen.editingID = account.UserID
		screen.inputs[userFieldUsername].SetValue(account.Username)
		screen.inputs[userFieldRoleID].SetValue(strconv.Itoa(account.RoleID))
		screen.active = account.Active != 0
	} else {
		screen.editingID = 0
	}

	screen.inputs[0].Focus()
	screen.mode = usersForm
}

func (screen *usersScreen) buildSaveRequest(companyID int) (api.SaveUserRequest, bool) {
	username := strings.TrimSpace(screen.inputs[userFieldUsername].Value())
	if username == "" {
		screen.formError = "username is required"
		return api.SaveUserRequest{}, false
	}

	password := screen.inputs[userFieldPassword].Value()
	if screen.editingID == 0 && password == "" {
		screen.formError = "new users need a password"
		return api.SaveUserRequest{}, false
	}

	roleID, err := strconv.Atoi(strings.TrimSpace(screen.inputs[userFieldRoleID].Value()))
	if err != nil || roleID <= 0 {
		screen.formError = "role id must be a positive number"
		return api.SaveUserRequest{}, false
	}

	active := 0
	if screen.active {
		active = 1
	}

	screen.formError = ""
	return api.SaveUserRequest{
		CompanyID: companyID,
		UserID:    screen.editingID,
		Username:  username,
		Password:  password,
		RoleID:    roleID,
		Active:    active,
	}, true
}

func (model Model) updateUsers(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.users

	switch screen.mode {
	case usersForm:
		switch message.Type {
		case tea.KeyEscape:
			screen.mode = usersList
			return model, nil

		case tea.KeyTab, tea.KeyDown:
			screen.inputs[screen.formFocus].Blur()
			screen.formFocus = (screen.formFocus + 1) % userFieldCount
			screen.inputs[screen.formFocus].Focus()
			return model, textinput.Blink

		case tea.KeyShiftTab, tea.KeyUp:
			screen.inputs[screen.formFocus].Blur()
			screen.formFocus = (screen.formFocus - 1 + userFieldCount) % userFieldCount
			screen.inputs[screen.formFocus].Focus()
			return model, textinput.Blink

		case tea.KeyCtrlA:
			screen.active = !screen.active
			return model, nil

		case tea.KeyEnter:
			request, ok := screen.buildSaveRequest(model.currentCompanyID())
			if !ok {
				return model, nil
			}
			screen.mode = usersList
			return model, model.saveUserCmd(request)
		}

		screen.formError = ""
		var cmd tea.Cmd
		screen.inputs[screen.formFocus], cmd = screen.inputs[screen.formFocus].Update(message)
		return model, cmd

	case usersConfirmDelete:
		switch {
		case message.Type == tea.KeyEnter:
			account, ok := screen.selected()
			if !ok {
				screen.mode = usersList
				return model, nil
			}
			screen.mode = usersList
			return model, model.deleteUserCmd(api.DeleteUserRequest{
				CompanyID: model.currentCompanyID(),
				UserID:    account.UserID,
			})
		case key.Matches(message, model.keys.Cancel):
			screen.mode = usersList
		}
		return model, nil
	}

	// List mode.
	switch {
	case key.Matches(message, model.keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if screen.cursor < len(screen.accounts)-1 {
			screen.cursor++
		}

	case key.Matches(message, model.keys.Add):
		if !model.can(ScreenUsers, permission.FlagAdd) {
			return model, model.deny("adding users")
		}
		screen.openForm(nil)

	case key.Matches(message, model.keys.Edit):
		if !model.can(ScreenUsers, permission.FlagEdit) {
			return model, model.deny("editing users")
		}
		if account, ok := screen.selected(); ok {
			screen.openForm(&account)
		}

	case key.Matches(message, model.keys.Delete):
		if !model.can(ScreenUsers, permission.FlagDelete) {
			return model, model.deny("deleting users")
		}
		if _, ok := screen.selected(); ok {
			screen.mode = usersConfirmDelete
		}
	}

	return model, nil
}
