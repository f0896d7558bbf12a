// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/poskit/poskit/lib/api"
)

// companyPicker is the tenant selection screen for system owners.
type companyPicker struct {
	companies []api.Company
	cursor    int
}

func newCompanyPicker() companyPicker {
	return companyPicker{}
}

// load resets the picker onto the owner's company list, keeping the
// cursor on the currently bound tenant when there is one.
func (picker *companyPicker) load(companies []api.Company, boundID int) {
	picker.companies = companies
	picker.cursor = 0
	for index, company := range companies {
		if company.CompanyID == boundID {
			picker.cursor = index
			break
		}
	}
}

func (model Model) updateCompanyPicker(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := &model.picker

	switch {
	case key.Matches(message, model.keys.Up):
		if picker.cursor > 0 {
			picker.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if picker.cursor < len(picker.companies)-1 {
			picker.cursor++
		}

	case message.Type == tea.KeyEnter:
		if model.switching || len(picker.companies) == 0 {
			return model, nil
		}
		company := picker.companies[picker.cursor]
		cmd := model.beginTenantSwitch(company.CompanyID)
		return model, cmd

	case key.Matches(message, model.keys.Cancel):
		// An owner already bound to a tenant may back out of the
		// picker; one without a tenant is held here by the gate.
		if model.sessions.Session().CurrentCompany().ID != 0 {
			cmd := model.navigate(ScreenDashboard, "")
			return model, cmd
		}
	}

	return model, nil
}
