// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the credential entry screen state.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focused  int // 0 = username, 1 = password.

	// errorText shows the last refusal inline; cleared on any edit.
	errorText string

	// submitting blocks a second enter while the call is in flight.
	submitting bool
}

func newLoginForm() loginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{username: username, password: password}
}

// focusCmd returns the blink command for the focused input.
func (form loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// fail records a refused login and re-enables the form.
func (form *loginForm) fail(err error) {
	form.errorText = err.Error()
	form.submitting = false
}

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &model.login

	switch message.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if form.focused == 0 {
			form.focused = 1
			form.username.Blur()
			return model, form.password.Focus()
		}
		form.focused = 0
		form.password.Blur()
		return model, form.username.Focus()

	case tea.KeyEnter:
		if form.submitting {
			return model, nil
		}
		username := strings.TrimSpace(form.username.Value())
		password := form.password.Value()

		// Empty credentials never reach the backend.
		if username == "" || password == "" {
			form.errorText = "username and password are required"
			return model, nil
		}

		form.errorText = ""
		form.submitting = true
		return model, model.loginCmd(username, password)
	}

	form.errorText = ""
	var cmd tea.Cmd
	if form.focused == 0 {
		form.username, cmd = form.username.Update(message)
	} else {
		form.password, cmd = form.password.Update(message)
	}
	return model, cmd
}
