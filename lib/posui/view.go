// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/tui"
)

// contentWidth is the usable width inside the screen margins.
func contentWidth(total int) int {
	width := total - 4
	if width < 20 {
		width = 20
	}
	return width
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "starting..."
	}

	var body string
	switch model.screen {
	case ScreenLogin:
		body = model.viewLogin()
	case ScreenSelectCompany:
		body = model.viewCompanyPicker()
	case ScreenDashboard:
		body = model.viewDashboard()
	case ScreenProducts:
		body = model.viewProducts()
	case ScreenRoles:
		body = model.viewRoles()
	case ScreenUsers:
		body = model.viewUsers()
	case ScreenMasters:
		body = model.viewMasters()
	case ScreenCheckout:
		body = model.viewCheckout()
	case ScreenPlaceholder:
		body = model.viewPlaceholder()
	case ScreenNoPermission:
		body = model.viewNoPermission()
	case ScreenUnauthorized:
		body = model.viewUnauthorized()
	}

	sections := []string{model.viewHeader()}
	if model.showsMenuBar() {
		sections = append(sections, model.viewMenuBar())
	}
	sections = append(sections, body, model.viewStatusBar())
	view := strings.Join(sections, "\n")

	view = model.spliceToasts(view)
	if model.switching {
		view = model.spliceSwitchingOverlay(view)
	}
	return view
}

// showsMenuBar reports whether the chrome includes the module menu.
func (model Model) showsMenuBar() bool {
	switch model.screen {
	case ScreenLogin, ScreenSelectCompany, ScreenUnauthorized:
		return false
	}
	return len(model.menu) > 0
}

func (model Model) viewHeader() string {
	theme := model.theme
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("poskit")

	parts := []string{title}
	if current := model.sessions.Session(); current.IsAuthenticated() {
		identity := current.User.Username
		if current.User.RoleName != "" {
			identity += " (" + current.User.RoleName + ")"
		}
		parts = append(parts, identity)

		if company := current.CurrentCompany(); company.ID != 0 {
			label := company.Name
			if company.Code != "" {
				label += " [" + company.Code + "]"
			}
			parts = append(parts, label)
		}
	}
	if model.busy {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.WarningColor).Render("busy..."))
	}

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	return parts[0] + faint.Render("  "+strings.Join(parts[1:], "  ·  "))
}

// viewMenuBar renders the matrix-driven module bar in canonical
// order, highlighting the active entry.
func (model Model) viewMenuBar() string {
	theme := model.theme
	active := lipgloss.NewStyle().
		Background(theme.MenuActiveBackground).
		Foreground(theme.MenuActiveForeground).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1)

	items := make([]string, len(model.menu))
	for index, entry := range model.menu {
		if index == model.menuIndex {
			items[index] = active.Render(entry.display)
		} else {
			items[index] = inactive.Render(entry.display)
		}
	}
	return strings.Join(items, "")
}

func (model Model) viewStatusBar() string {
	help := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	switch model.screen {
	case ScreenLogin:
		return help.Render("Enter login · Tab next field · C-c quit")
	case ScreenSelectCompany:
		return help.Render("j/k select · Enter choose company · C-c quit")
	case ScreenProducts:
		return help.Render("j/k move · / filter · " + model.actionHelp(ScreenProducts) + " · C-t company · C-l logout")
	case ScreenRoles:
		return help.Render("j/k move · ←/→ column · Space toggle · C-l logout")
	case ScreenUsers:
		return help.Render("j/k move · " + model.actionHelp(ScreenUsers) + " · C-l logout")
	case ScreenMasters:
		return help.Render("←/→ tab · j/k move · a add · e edit · C-l logout")
	case ScreenCheckout:
		return help.Render("j/k move · Enter/+ add · - remove · s submit sale · C-l logout")
	default:
		return help.Render("Tab modules · C-t company · C-l logout · C-c quit")
	}
}

// actionHelp lists only the actions the current role may perform, so
// the help line doubles as the permission display.
func (model Model) actionHelp(screen Screen) string {
	var parts []string
	if model.can(screen, permission.FlagAdd) {
		parts = append(parts, "a add")
	}
	if model.can(screen, permission.FlagEdit) {
		parts = append(parts, "e edit")
	}
	if model.can(screen, permission.FlagDelete) {
		parts = append(parts, "d delete")
	}
	if model.can(screen, permission.FlagPrint) {
		parts = append(parts, "p print")
	}
	if len(parts) == 0 {
		return "view only"
	}
	return strings.Join(parts, " · ")
}

func (model Model) viewLogin() string {
	theme := model.theme
	form := model.login

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Sign in") + "\n\n")
	builder.WriteString("  " + form.username.View() + "\n")
	builder.WriteString("  " + form.password.View() + "\n")
	if form.errorText != "" {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorColor).Render(form.errorText) + "\n")
	}
	if form.submitting {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("signing in...") + "\n")
	}
	return builder.String()
}

func (model Model) viewCompanyPicker() string {
	theme := model.theme
	picker := model.picker

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Select company") + "\n\n")
	if len(picker.companies) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no companies assigned") + "\n")
		return builder.String()
	}

	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	for index, company := range picker.companies {
		line := fmt.Sprintf("  %s [%s]", company.CompanyName, company.CompanyCode)
		if index == picker.cursor {
			line = selected.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}

func (model Model) viewDashboard() string {
	theme := model.theme
	current := model.sessions.Session()

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Dashboard") + "\n\n")
	if current.IsAuthenticated() {
		builder.WriteString(fmt.Sprintf("  Signed in as %s\n", current.User.Username))
		if company := current.CurrentCompany(); company.ID != 0 {
			builder.WriteString(fmt.Sprintf("  Operating %s [%s]\n", company.Name, company.Code))
		}
	}
	builder.WriteString(fmt.Sprintf("\n  %d modules available\n", len(model.menu)))
	builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("use Tab to move between modules") + "\n")
	return builder.String()
}

func (model Model) viewProducts() string {
	theme := model.theme
	screen := model.products

	switch screen.mode {
	case productsForm:
		return model.viewProductForm()
	case productsConfirmDelete:
		product, _ := screen.selected()
		return confirmBox(theme, fmt.Sprintf("Delete %q? Enter confirms, Esc cancels.", product.ProductName))
	case productsDetail:
		product, _ := screen.selected()
		var builder strings.Builder
		builder.WriteString(lipgloss.NewStyle().Bold(true).Render(product.ProductName) + "\n\n")
		if screen.detailBody == "" {
			builder.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).Render("no description") + "\n")
		} else {
			builder.WriteString(screen.detailBody + "\n")
		}
		return builder.String()
	}

	showCost := model.can(ScreenProducts, permission.FlagCost)

	var builder strings.Builder
	title := "Products"
	if screen.mode == productsFilter || len(screen.filterInput) > 0 {
		title += "  /" + string(screen.filterInput)
	}
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	header := fmt.Sprintf("  %-10s %-28s %-14s %10s", "CODE", "NAME", "CATEGORY", "PRICE")
	if showCost {
		header += fmt.Sprintf(" %10s", "COST")
	}
	header += fmt.Sprintf(" %7s", "STOCK")
	builder.WriteString(lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render(header) + "\n")

	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	for index, row := range screen.rows {
		product := row.product
		line := fmt.Sprintf("  %-10s %-28s %-14s %10.2f",
			clip(product.ProductCode, 10), clip(product.ProductName, 28),
			clip(product.CategoryName, 14), product.Price)
		if showCost {
			line += fmt.Sprintf(" %10.2f", product.Cost)
		}
		line += fmt.Sprintf(" %7d", product.Stock)
		if index == screen.cursor {
			line = selected.Render(line)
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.StockColor(product.Stock, 0)).
				Render(line)
		}
		builder.WriteString(line + "\n")
	}
	if len(screen.rows) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no products") + "\n")
	}
	return builder.String()
}

func (model Model) viewProductForm() string {
	theme := model.theme
	screen := model.products
	includeCost := model.can(ScreenProducts, permission.FlagCost)

	title := "New product"
	if screen.editingID != 0 {
		title = "Edit product"
	}

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")
	labels := []string{"Code", "Name", "Price", "Cost", "Description"}
	for field := 0; field < productFieldCount; field++ {
		if field == productFieldCost && !includeCost {
			continue
		}
		builder.WriteString(fmt.Sprintf("  %-12s %s\n", labels[field], screen.inputs[field].View()))
	}

	picker := func(label string, records []api.MasterRecord, at, stop int) {
		name := "-"
		if at >= 0 && at < len(records) {
			name = records[at].Name
		}
		line := fmt.Sprintf("  %-12s ◂ %s ▸", label, name)
		if screen.formFocus == stop {
			line = lipgloss.NewStyle().Foreground(theme.SelectedForeground).
				Background(theme.SelectedBackground).Render(line)
		}
		builder.WriteString(line + "\n")
	}
	picker("Category", screen.categories, screen.categoryAt, productPickCategory)
	picker("Unit", screen.uoms, screen.uomAt, productPickUom)
	picker("Brand", screen.brands, screen.brandAt, productPickBrand)

	if screen.formError != "" {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorColor).Render(screen.formError) + "\n")
	}
	builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter save · Esc cancel · Tab next field") + "\n")
	return builder.String()
}

func (model Model) viewRoles() string {
	theme := model.theme
	screen := model.roles

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Role permissions") + "\n\n")

	header := fmt.Sprintf("  %-16s %-18s", "ROLE", "MODULE")
	for _, column := range roleFlagColumns {
		header += fmt.Sprintf(" %-6s", strings.ToUpper(column))
	}
	builder.WriteString(lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render(header) + "\n")

	selectedRow := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	columnMark := lipgloss.NewStyle().Bold(true).Foreground(theme.WarningColor)

	for index, record := range screen.records {
		values := []int{record.Full, record.List, record.Add, record.Edit, record.Delete, record.Cost, record.Print}
		line := fmt.Sprintf("  %-16s %-18s", clip(record.RoleName, 16), clip(record.ModuleName, 18))
		for column, value := range values {
			mark := "·"
			if value != 0 {
				mark = "✓"
			}
			cell := fmt.Sprintf(" %-6s", mark)
			if index == screen.cursor && column == screen.column {
				cell = columnMark.Render(cell)
			}
			line += cell
		}
		if index == screen.cursor {
			line = selectedRow.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	if len(screen.records) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no role data") + "\n")
	}
	if screen.saving {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("saving...") + "\n")
	}
	return builder.String()
}

func (model Model) viewUsers() string {
	theme := model.theme
	screen := model.users

	if screen.mode == usersForm {
		title := "New user"
		if screen.editingID != 0 {
			title = "Edit user"
		}
		var builder strings.Builder
		builder.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")
		labels := []string{"Username", "Password", "Role id"}
		for field := 0; field < userFieldCount; field++ {
			builder.WriteString(fmt.Sprintf("  %-12s %s\n", labels[field], screen.inputs[field].View()))
		}
		state := "inactive"
		if screen.active {
			state = "active"
		}
		builder.WriteString(fmt.Sprintf("  %-12s %s\n", "State", state))
		if screen.formError != "" {
			builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorColor).Render(screen.formError) + "\n")
		}
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter save · Esc cancel · C-a toggle active") + "\n")
		return builder.String()
	}

	if screen.mode == usersConfirmDelete {
		account, _ := screen.selected()
		return confirmBox(theme, fmt.Sprintf("Delete user %q? Enter confirms, Esc cancels.", account.Username))
	}

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Users") + "\n\n")
	header := fmt.Sprintf("  %-20s %-20s %-8s", "USERNAME", "ROLE", "STATE")
	builder.WriteString(lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render(header) + "\n")

	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	for index, account := range screen.accounts {
		state := "inactive"
		if account.Active != 0 {
			state = "active"
		}
		line := fmt.Sprintf("  %-20s %-20s %-8s", clip(account.Username, 20), clip(account.RoleName, 20), state)
		if index == screen.cursor {
			line = selected.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	if len(screen.accounts) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no users") + "\n")
	}
	return builder.String()
}

func (model Model) viewMasters() string {
	theme := model.theme
	screen := model.masters

	if screen.mode == mastersForm {
		title := "New " + masterKinds[screen.tab]
		if screen.editingID != 0 {
			title = "Rename " + masterKinds[screen.tab]
		}
		var builder strings.Builder
		builder.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")
		builder.WriteString("  " + screen.nameInput.View() + "\n")
		if screen.formError != "" {
			builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorColor).Render(screen.formError) + "\n")
		}
		return builder.String()
	}

	var builder strings.Builder
	var tabs []string
	for index, kind := range masterKinds {
		label := " " + kind + " "
		if index == screen.tab {
			label = lipgloss.NewStyle().
				Background(theme.MenuActiveBackground).
				Foreground(theme.MenuActiveForeground).Render(label)
		} else {
			label = lipgloss.NewStyle().Foreground(theme.FaintText).Render(label)
		}
		tabs = append(tabs, label)
	}
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Master data") + "  " + strings.Join(tabs, "") + "\n\n")

	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	records := screen.current()
	for index, record := range records {
		line := fmt.Sprintf("  %s", record.Name)
		if index == screen.cursor {
			line = selected.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	if len(records) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("empty") + "\n")
	}
	return builder.String()
}

func (model Model) viewCheckout() string {
	theme := model.theme
	screen := model.checkout

	if screen.mode == checkoutReceipt {
		var builder strings.Builder
		builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Receipt preview") + "\n\n")
		for _, line := range strings.Split(screen.receiptText, "\n") {
			builder.WriteString("  " + line + "\n")
		}
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter to continue") + "\n")
		return builder.String()
	}

	var builder strings.Builder
	builder.WriteString(lipgloss.NewStyle().Bold(true).Render("Checkout") + "\n\n")

	quantities := make(map[int]int, len(screen.cart))
	for _, line := range screen.cart {
		quantities[line.product.ProductID] = line.quantity
	}

	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	for index, product := range screen.catalog {
		marker := "   "
		if quantity := quantities[product.ProductID]; quantity > 0 {
			marker = fmt.Sprintf("%2dx", quantity)
		}
		line := fmt.Sprintf("  %s %-28s %10.2f", marker, clip(product.ProductName, 28), product.Price)
		if index == screen.cursor {
			line = selected.Render(line)
		}
		builder.WriteString(line + "\n")
	}
	if len(screen.catalog) == 0 {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no products") + "\n")
	}

	builder.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("TOTAL %10.2f", screen.total())) + "\n")
	if screen.submitting {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("submitting...") + "\n")
	}
	return builder.String()
}

func (model Model) viewPlaceholder() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return fmt.Sprintf("\n  %s\n\n  %s\n",
		lipgloss.NewStyle().Bold(true).Render(model.placeholderModule),
		faint.Render("this module has no screen in this build yet · Enter returns to the dashboard"))
}

func (model Model) viewNoPermission() string {
	return "\n  " + lipgloss.NewStyle().Foreground(model.theme.ErrorColor).Render("Your role does not allow this module.") +
		"\n\n  " + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("Enter returns to the dashboard") + "\n"
}

func (model Model) viewUnauthorized() string {
	return "\n  " + lipgloss.NewStyle().Foreground(model.theme.ErrorColor).Render("Session expired or unauthorized.") +
		"\n\n  " + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("press any key to sign in again") + "\n"
}

// spliceToasts overlays the most recent notifications in the top
// right corner.
func (model Model) spliceToasts(view string) string {
	if len(model.toasts) == 0 {
		return view
	}

	theme := model.theme
	var lines []string
	const maxToasts = 3
	start := 0
	if len(model.toasts) > maxToasts {
		start = len(model.toasts) - maxToasts
	}
	width := 0
	for _, item := range model.toasts[start:] {
		text := item.notification.Title
		if item.notification.Detail != "" {
			text += ": " + item.notification.Detail
		}
		text = " " + clip(text, 48) + " "
		if len(text) > width {
			width = len(text)
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.LevelColor(item.notification.Level)).
			Background(theme.OverlayBackground).
			Render(text))
	}

	anchorX := model.width - width - 1
	if anchorX < 0 {
		anchorX = 0
	}
	return tui.SpliceOverlay(view, lines, anchorX, 1)
}

// spliceSwitchingOverlay centers the tenant-switch notice over
// whatever is rendered underneath. It stays up until both the select
// call and the menu refetch settle.
func (model Model) spliceSwitchingOverlay(view string) string {
	theme := model.theme
	background := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)

	content := " switching company... "
	lines := []string{
		background.Render(strings.Repeat(" ", len(content))),
		background.Render(content),
		background.Render(strings.Repeat(" ", len(content))),
	}
	anchorX, anchorY := tui.CenterAnchor(model.width, model.height, len(content), len(lines))
	return tui.SpliceOverlay(view, lines, anchorX, anchorY)
}

// confirmBox renders a destructive-action prompt.
func confirmBox(theme tui.Theme, prompt string) string {
	return "\n  " + lipgloss.NewStyle().Foreground(theme.WarningColor).Render(prompt) + "\n"
}

// clip truncates a string to at most width characters.
func clip(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
