// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/junegunn/fzf/src/util"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/tui"
)

// productsMode is the catalog screen's state machine.
type productsMode int

const (
	productsList productsMode = iota
	productsFilter
	productsForm
	productsConfirmDelete
	productsDetail
)

// productRow is one filtered row: the product plus its match data.
type productRow struct {
	product   api.Product
	score     int
	positions []int
}

// productsScreen is the catalog: a fuzzy-filterable list with
// add/edit/delete/print actions gated by the Product module flags.
type productsScreen struct {
	mode productsMode

	all    []api.Product
	rows   []productRow
	cursor int

	filterInput []rune
	slab        *util.Slab

	// Master data for the form's category/uom/brand cycling.
	categories []api.MasterRecord
	uoms       []api.MasterRecord
	brands     []api.MasterRecord

	// Form state. editingID zero means create.
	editingID  int
	inputs     []textinput.Model // code, name, price, cost, description
	formFocus  int
	formError  string
	categoryAt int
	uomAt      int
	brandAt    int

	// Rendered markdown of the detail view's description.
	detailBody string
}

const (
	productFieldCode = iota
	productFieldName
	productFieldPrice
	productFieldCost
	productFieldDescription
	productFieldCount

	// Focus stops after the text inputs: the master-data pickers,
	// cycled with left/right.
	productPickCategory = productFieldCount
	productPickUom      = productFieldCount + 1
	productPickBrand    = productFieldCount + 2
	productStopCount    = productFieldCount + 3
)

func newProductsScreen() productsScreen {
	return productsScreen{slab: tui.NewSlab()}
}

func (screen *productsScreen) reset() {
	screen.mode = productsList
	screen.cursor = 0
	screen.filterInput = nil
	screen.rows = nil
	screen.all = nil
}

func (screen *productsScreen) editing() bool {
	return screen.mode == productsFilter || screen.mode == productsForm
}

func (screen *productsScreen) setData(products []api.Product) {
	screen.all = products
	screen.applyFilter()
	if screen.cursor >= len(screen.rows) {
		screen.cursor = 0
	}
}

func (screen *productsScreen) setMasters(response *api.MasterListResponse) {
	screen.categories = response.Categories
	screen.uoms = response.Uoms
	screen.brands = response.Brands
}

// applyFilter recomputes the visible rows. With no filter text every
// product is shown in catalog order; with filter text rows are ranked
// by fuzzy score, best first.
func (screen *productsScreen) applyFilter() {
	if len(screen.filterInput) == 0 {
		screen.rows = make([]productRow, len(screen.all))
		for index, product := range screen.all {
			screen.rows[index] = productRow{product: product}
		}
		return
	}

	screen.rows = screen.rows[:0]
	for _, product := range screen.all {
		haystack := product.ProductName + " " + product.ProductCode
		result := tui.FuzzyMatch(haystack, screen.filterInput, screen.slab)
		if result.Score <= 0 {
			continue
		}
		screen.rows = append(screen.rows, productRow{
			product:   product,
			score:     result.Score,
			positions: result.Positions,
		})
	}
	sort.SliceStable(screen.rows, func(a, b int) bool {
		return screen.rows[a].score > screen.rows[b].score
	})
	if screen.cursor >= len(screen.rows) {
		screen.cursor = 0
	}
}

func (screen *productsScreen) selected() (api.Product, bool) {
	if screen.cursor < 0 || screen.cursor >= len(screen.rows) {
		return api.Product{}, false
	}
	return screen.rows[screen.cursor].product, true
}

// openForm prepares the create/edit form. For edits the inputs are
// seeded from the product; master cursors snap to the product's
// current category/uom/brand.
func (screen *productsScreen) openForm(product *api.Product) {
	makeInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = limit
		return input
	}

	screen.inputs = []textinput.Model{
		makeInput("code", 32),
		makeInput("name", 128),
		makeInput("price", 16),
		makeInput("cost", 16),
		makeInput("description (markdown)", 2000),
	}
	screen.formFocus = 0
	screen.formError = ""
	screen.categoryAt = 0
	screen.uomAt = 0
	screen.brandAt = 0

	if product != nil {
		screen.editingID = product.ProductID
		screen.inputs[productFieldCode].SetValue(product.ProductCode)
		screen.inputs[productFieldName].SetValue(product.ProductName)
		screen.inputs[productFieldPrice].SetValue(strconv.FormatFloat(product.Price, 'f', -1, 64))
		screen.inputs[productFieldCost].SetValue(strconv.FormatFloat(product.Cost, 'f', -1, 64))
		screen.inputs[productFieldDescription].SetValue(product.Description)
		screen.categoryAt = masterIndex(screen.categories, product.CategoryName)
		screen.uomAt = masterIndex(screen.uoms, product.UomName)
		screen.brandAt = masterIndex(screen.brands, product.BrandName)
	} else {
		screen.editingID = 0
	}

	screen.inputs[0].Focus()
	screen.mode = productsForm
}

func masterIndex(records []api.MasterRecord, name string) int {
	for index, record := range records {
		if record.Name == name {
			return index
		}
	}
	return 0
}

func masterID(records []api.MasterRecord, at int) int {
	if at < 0 || at >= len(records) {
		return 0
	}
	return records[at].ID
}

// buildSaveRequest validates the form and assembles the request. The
// cost field is included only when the role holds the cost flag; for
// everyone else the field never leaves zero and the backend keeps the
// stored value.
func (screen *productsScreen) buildSaveRequest(companyID int, includeCost bool) (api.SaveProductRequest, bool) {
	code := strings.TrimSpace(screen.inputs[productFieldCode].Value())
	name := strings.TrimSpace(screen.inputs[productFieldName].Value())
	if code == "" || name == "" {
		screen.formError = "code and name are required"
		return api.SaveProductRequest{}, false
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(screen.inputs[productFieldPrice].Value()), 64)
	if err != nil || price < 0 {
		screen.formError = "price must be a non-negative number"
		return api.SaveProductRequest{}, false
	}

	request := api.SaveProductRequest{
		CompanyID:   companyID,
		ProductID:   screen.editingID,
		ProductCode: code,
		ProductName: name,
		CategoryID:  masterID(screen.categories, screen.categoryAt),
		UomID:       masterID(screen.uoms, screen.uomAt),
		BrandID:     masterID(screen.brands, screen.brandAt),
		Price:       price,
		Description: strings.TrimSpace(screen.inputs[productFieldDescription].Value()),
	}

	if includeCost {
		costText := strings.TrimSpace(screen.inputs[productFieldCost].Value())
		if costText != "" {
			cost, err := strconv.ParseFloat(costText, 64)
			if err != nil || cost < 0 {
				screen.formError = "cost must be a non-negative number"
				return api.SaveProductRequest{}, false
			}
			request.Cost = cost
		}
	}

	screen.formError = ""
	return request, true
}

func (model Model) updateProducts(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.products

	switch screen.mode {
	case productsFilter:
		switch message.Type {
		case tea.KeyEscape:
			if len(screen.filterInput) > 0 {
				screen.filterInput = nil
				screen.applyFilter()
			} else {
				screen.mode = productsList
			}
		case tea.KeyEnter:
			screen.mode = productsList
		case tea.KeyBackspace:
			if len(screen.filterInput) > 0 {
				screen.filterInput = screen.filterInput[:len(screen.filterInput)-1]
				screen.applyFilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			screen.filterInput = append(screen.filterInput, message.Runes...)
			screen.applyFilter()
		}
		return model, nil

	case productsForm:
		return model.updateProductForm(message)

	case productsConfirmDelete:
		switch {
		case message.Type == tea.KeyEnter:
			product, ok := screen.selected()
			if !ok {
				screen.mode = productsList
				return model, nil
			}
			screen.mode = productsList
			return model, model.deleteProductCmd(api.DeleteProductRequest{
				CompanyID: model.currentCompanyID(),
				ProductID: product.ProductID,
			})
		case key.Matches(message, model.keys.Cancel):
			screen.mode = productsList
		}
		return model, nil

	case productsDetail:
		if key.Matches(message, model.keys.Cancel) || message.Type == tea.KeyEnter {
			screen.mode = productsList
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
		if screen.cursor < len(screen.rows)-1 {
			screen.cursor++
		}

	case key.Matches(message, model.keys.Home):
		screen.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(screen.rows) > 0 {
			screen.cursor = len(screen.rows) - 1
		}

	case key.Matches(message, model.keys.FilterActivate):
		screen.mode = productsFilter

	case key.Matches(message, model.keys.FilterClear):
		screen.filterInput = nil
		screen.applyFilter()

	case key.Matches(message, model.keys.Add):
		if !model.can(ScreenProducts, permission.FlagAdd) {
			return model, model.deny("adding products")
		}
		screen.openForm(nil)

	case key.Matches(message, model.keys.Edit):
		if !model.can(ScreenProducts, permission.FlagEdit) {
			return model, model.deny("editing products")
		}
		if product, ok := screen.selected(); ok {
			screen.openForm(&product)
		}

	case key.Matches(message, model.keys.Delete):
		if !model.can(ScreenProducts, permission.FlagDelete) {
			return model, model.deny("deleting products")
		}
		if _, ok := screen.selected(); ok {
			screen.mode = productsConfirmDelete
		}

	case key.Matches(message, model.keys.Print):
		if !model.can(ScreenProducts, permission.FlagPrint) {
			return model, model.deny("printing labels")
		}
		if product, ok := screen.selected(); ok {
			screen.detailBody = renderMarkdown(product.Description, model.theme, contentWidth(model.width))
			screen.mode = productsDetail
		}

	case message.Type == tea.KeyEnter:
		if product, ok := screen.selected(); ok {
			screen.detailBody = renderMarkdown(product.Description, model.theme, contentWidth(model.width))
			screen.mode = productsDetail
		}
	}

	return model, nil
}

func (model Model) updateProductForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := &model.products
	includeCost := model.can(ScreenProducts, permission.FlagCost)

	switch message.Type {
	case tea.KeyEscape:
		screen.mode = productsList
		return model, nil

	case tea.KeyTab, tea.KeyDown:
		screen.moveFormFocus(1, includeCost)
		return model, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		screen.moveFormFocus(-1, includeCost)
		return model, textinput.Blink

	case tea.KeyLeft, tea.KeyRight:
		// On a picker stop, left/right cycles its options. On a text
		// input the arrows fall through to the input below.
		if screen.formFocus >= productFieldCount {
			direction := 1
			if message.Type == tea.KeyLeft {
				direction = -1
			}
			screen.cyclePicker(direction)
			return model, nil
		}

	case tea.KeyEnter:
		request, ok := screen.buildSaveRequest(model.currentCompanyID(), includeCost)
		if !ok {
			return model, nil
		}
		screen.mode = productsList
		return model, model.saveProductCmd(request)
	}

	screen.formError = ""
	if screen.formFocus >= productFieldCount {
		return model, nil
	}
	var cmd tea.Cmd
	screen.inputs[screen.formFocus], cmd = screen.inputs[screen.formFocus].Update(message)
	return model, cmd
}

// moveFormFocus advances the focused stop, skipping the cost field
// for roles without the cost flag so the hidden column cannot be
// edited either. Stops past the text inputs are the master pickers.
func (screen *productsScreen) moveFormFocus(direction int, includeCost bool) {
	if screen.formFocus < productFieldCount {
		screen.inputs[screen.formFocus].Blur()
	}
	for {
		screen.formFocus = (screen.formFocus + direction + productStopCount) % productStopCount
		if screen.formFocus == productFieldCost && !includeCost {
			continue
		}
		break
	}
	if screen.formFocus < productFieldCount {
		screen.inputs[screen.formFocus].Focus()
	}
}

// cyclePicker steps the master picker under focus.
func (screen *productsScreen) cyclePicker(direction int) {
	cycle := func(at, length int) int {
		if length == 0 {
			return 0
		}
		return (at + direction + length) % length
	}
	switch screen.formFocus {
	case productPickCategory:
		screen.categoryAt = cycle(screen.categoryAt, len(screen.categories))
	case productPickUom:
		screen.uomAt = cycle(screen.uomAt, len(screen.uoms))
	case productPickBrand:
		screen.brandAt = cycle(screen.brandAt, len(screen.brands))
	}
}
