// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
)

// masterKinds is the tab order of the master-data screen.
var masterKinds = []string{"category", "uom", "brand"}

type mastersMode int

const (
	mastersList mastersMode = iota
	mastersForm
)

// mastersScreen manages the three master lists behind the product
// form: categories, units of measure, brands. One tabbed screen, one
// save endpoint per kind.
type mastersScreen struct {
	mode mastersMode
	tab  int // Index into masterKinds.

	categories []api.MasterRecord
	uoms       []api.MasterRecord
	brands     []api.MasterRecord
	cursor     int

	// Form state. editingID zero means create.
	editingID int
	nameInput textinput.Model
	formError string
}

func newMastersScreen() mastersScreen {
	return mastersScreen{}
}

func (screen *mastersScreen) reset() {
	screen.mode = mastersList
	screen.tab = 0
	screen.cursor = 0
}

func (screen *mastersScreen) editing() bool {
	return screen.mode == mastersForm
}

func (screen *mastersScreen) setData(response *api.MasterListResponse) {
	screen.categories = response.Categories
	screen.uoms = response.Uoms
	screen.brands = response.Brands
	if screen.cursor >= len(screen.current()) {
		screen.cursor = 0
	}
}

// current returns the list of the active tab.
func (screen *mastersScreen) current() []api.MasterRecord {
	switch masterKinds[screen.tab] {
	case "category":
		return screen.categories
	case "uom":
		return screen.uoms
	default:
		return screen.brands
	}
}

func (screen *mastersScreen) selected() (api.MasterRecord, bool) {
	records := screen.current()
	if screen.cursor < 0 || screen.cursor >= len(records) {
		return api.MasterRecord{}, false
	}
	return records[screen.cursor], true
}

func (screen *mastersScreen) openForm(record *api.MasterRecord) {
	input := textinput.New()
	input.Placeholder = "name"
	input.CharLimit = 64
	input.Focus()

	screen.nameInput = input
	screen.formError = ""
	if record != nil {
		screen.editingID = record.ID
		screen.nameInput.SetValue(record.Name)
	} else {
		screen.editingID = 0
	}
	screen.mode = mastersForm
}

func (model Model) updateMasters(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.masters

	if screen.mode == mastersForm {
		switch message.Type {
		case tea.KeyEscape:
			screen.mode = mastersList
			return model, nil

		case tea.KeyEnter:
			name := strings.TrimSpace(screen.nameInput.Value())
			if name == "" {
				screen.formError = "name is required"
				return model, nil
			}
			kind := masterKinds[screen.tab]
			screen.mode = mastersList
			return model, model.saveMasterCmd(kind, api.SaveMasterRequest{
				CompanyID: model.currentCompanyID(),
				ID:        screen.editingID,
				Name:      name,
			})
		}

		screen.formError = ""
		var cmd tea.Cmd
		screen.nameInput, cmd = screen.nameInput.Update(message)
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if screen.cursor < len(screen.current())-1 {
			screen.cursor++
		}

	case message.Type == tea.KeyLeft:
		if screen.tab > 0 {
			screen.tab--
			screen.cursor = 0
		}

	case message.Type == tea.KeyRight:
		if screen.tab < len(masterKinds)-1 {
			screen.tab++
			screen.cursor = 0
		}

	case key.Matches(message, model.keys.Add):
		if !model.can(ScreenMasters, permission.FlagAdd) {
			return model, model.deny("adding master data")
		}
		screen.openForm(nil)

	case key.Matches(message, model.keys.Edit), message.Type == tea.KeyEnter:
		if !model.can(ScreenMasters, permission.FlagEdit) {
			return model, model.deny("editing master data")
		}
		if record, ok := screen.selected(); ok {
			screen.openForm(&record)
		}
	}

	return model, nil
}
