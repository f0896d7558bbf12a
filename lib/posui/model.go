// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/notify"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/session"
	"github.com/poskit/poskit/lib/settings"
	"github.com/poskit/poskit/lib/tui"
)

// Screen identifies which view is active.
type Screen int

const (
	// ScreenLogin is the credential form. The only screen a guest
	// may see.
	ScreenLogin Screen = iota
	// ScreenSelectCompany is the tenant picker for system owners.
	ScreenSelectCompany
	// ScreenDashboard is the landing screen. Always reachable once
	// authenticated and tenant-bound.
	ScreenDashboard
	// ScreenProducts is the catalog.
	ScreenProducts
	// ScreenRoles is the role/module permission administration grid.
	ScreenRoles
	// ScreenUsers is user management.
	ScreenUsers
	// ScreenMasters is master data (categories, units, brands).
	ScreenMasters
	// ScreenCheckout is the sale screen with the receipt preview.
	ScreenCheckout
	// ScreenPlaceholder stands in for a module the backend granted
	// but this build has no screen for.
	ScreenPlaceholder
	// ScreenNoPermission is shown when navigation reaches a module
	// whose list flag is denied.
	ScreenNoPermission
	// ScreenUnauthorized is shown after a 401 purge.
	ScreenUnauthorized
)

// moduleScreens is the closed mapping from backend module names to
// screens. Unknown names get the placeholder; membership here is the
// only thing that distinguishes a real screen from a placeholder.
var moduleScreens = map[string]Screen{
	"Dashboard":      ScreenDashboard,
	"Product":        ScreenProducts,
	"RolePermission": ScreenRoles,
	"UserManagement": ScreenUsers,
	"MasterData":     ScreenMasters,
	"Checkout":       ScreenCheckout,
}

// screenModules is the reverse mapping, used by the permission gate
// and the action dispatchers.
var screenModules = map[Screen]string{
	ScreenDashboard: "Dashboard",
	ScreenProducts:  "Product",
	ScreenRoles:     "RolePermission",
	ScreenUsers:     "UserManagement",
	ScreenMasters:   "MasterData",
	ScreenCheckout:  "Checkout",
}

// toastDisplay is how long a toast stays on screen.
const toastDisplay = 4 * time.Second

// toast is one rendered notification.
type toast struct {
	id           int
	notification notify.Notification
}

// menuEntry is one item of the rendered menu bar.
type menuEntry struct {
	display    string
	moduleName string
	screen     Screen
}

// Model is the top-level bubbletea model for the admin console.
type Model struct {
	sessions *session.Store
	perms    *permission.Store
	backend  Backend
	bus      *notify.Bus
	theme    tui.Theme
	keys     KeyMap
	prefs    settings.Settings

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	screen Screen

	// returnTo remembers where the auth gate bounced from, so a
	// successful login lands the user where they were headed.
	returnTo   Screen
	hasReturn  bool
	loggingOut bool

	// Menu bar state, rebuilt from the permission matrix.
	menu      []menuEntry
	menuIndex int

	// placeholderModule is the display name shown by the
	// placeholder screen.
	placeholderModule string

	// Tenant switch: the overlay stays up until both the select
	// call and the follow-up menu fetch have settled.
	switching          bool
	switchingCompanyID int

	// Loader signal from the api client.
	busy bool

	// Toasts, newest last. nextToastID keys expiry messages.
	toasts      []toast
	nextToastID int

	// external receives bus notifications, loader transitions, and
	// session change events from their source goroutines.
	external chan tea.Msg

	// Per-screen state.
	login    loginForm
	picker   companyPicker
	products productsScreen
	roles    rolesScreen
	users    usersScreen
	masters  mastersScreen
	checkout checkoutScreen
}

// Options bundles the stores the console operates on.
type Options struct {
	Sessions *session.Store
	Perms    *permission.Store
	Backend  Backend
	Bus      *notify.Bus
	Settings settings.Settings
}

// New builds the console model and wires the store subscriptions into
// the event loop. The initial screen is decided by the same gate
// chain as every later navigation, so a restored session skips the
// login form and a restored owner session without a tenant lands on
// the picker.
func New(options Options) Model {
	model := Model{
		sessions: options.Sessions,
		perms:    options.Perms,
		backend:  options.Backend,
		bus:      options.Bus,
		theme:    tui.DefaultTheme,
		keys:     DefaultKeyMap,
		prefs:    options.Settings,
		screen:   ScreenLogin,
		external: make(chan tea.Msg, 64),
		login:    newLoginForm(),
		picker:   newCompanyPicker(),
		products: newProductsScreen(),
		roles:    newRolesScreen(),
		users:    newUsersScreen(),
		masters:  newMastersScreen(),
		checkout: newCheckoutScreen(),
	}

	external := model.external
	options.Bus.Subscribe(func(notification notify.Notification) {
		external <- toastMsg{notification: notification}
	})
	options.Sessions.Subscribe(func(current *session.Session) {
		external <- sessionChangedMsg{session: current}
	})

	return model
}

// LoaderSink returns the function to install as the api client's
// loading callback. Safe to call from any goroutine.
func (model Model) LoaderSink() func(active int) {
	external := model.external
	return func(active int) {
		external <- loaderMsg{active: active}
	}
}

// Init implements tea.Model: arm the external listener and run the
// initial navigation through the gates.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenExternal(model.external),
		func() tea.Msg { return navigateMsg{target: ScreenDashboard} },
	)
}

// gate returns the flags of the named module for the current matrix.
func (model Model) gate(moduleName string) permission.Flags {
	return model.perms.PermsFor(moduleName)
}

// can reports whether the active screen's module allows an action.
// Screens without a module entry (dashboard chrome, login) deny
// nothing themselves; they never call this.
func (model Model) can(screen Screen, need permission.Flag) bool {
	moduleName, ok := screenModules[screen]
	if !ok {
		return false
	}
	return permission.Can(model.gate(moduleName), need)
}

// deny emits the warning toast for a programmatically attempted
// action the role does not hold.
func (model Model) deny(action string) tea.Cmd {
	bus := model.bus
	return func() tea.Msg {
		bus.Warning("Not permitted", "your role does not allow "+action)
		return nil
	}
}

// currentCompanyID is the tenant all fetches are stamped with.
func (model Model) currentCompanyID() int {
	return model.sessions.Session().CurrentCompany().ID
}

// stale reports whether a result stamped with companyID belongs to a
// tenant that is no longer current.
func (model Model) stale(companyID int) bool {
	return companyID != model.currentCompanyID()
}

// navigate applies the gate chain and switches screens. Returns the
// on-entry fetch command for the destination, if any.
//
// Gate order: guest gate (authenticated users skip login), auth gate
// (guests bounce to login and the destination is remembered), tenant
// gate (owners without a tenant are held on the picker), permission
// gate (modules whose list flag is denied show the no-permission
// screen). Unknown destinations fall back to the dashboard.
func (model *Model) navigate(target Screen, moduleName string) tea.Cmd {
	current := model.sessions.Session()

	if target == ScreenLogin {
		if current.IsAuthenticated() {
			target = ScreenDashboard
		} else {
			model.screen = ScreenLogin
			model.login = newLoginForm()
			return model.login.focusCmd()
		}
	}

	if !current.IsAuthenticated() {
		model.returnTo = target
		model.hasReturn = true
		model.screen = ScreenLogin
		model.login = newLoginForm()
		return model.login.focusCmd()
	}

	if current.IsSystemOwner() && current.CurrentCompany().ID == 0 {
		model.screen = ScreenSelectCompany
		model.picker.load(current.Companies, 0)
		return nil
	}

	if target == ScreenSelectCompany {
		model.screen = ScreenSelectCompany
		model.picker.load(current.Companies, current.CurrentCompany().ID)
		return nil
	}

	// A session restored from disk is tenant-bound but carries no
	// matrix yet. Fetch it before gating; the menu result replays the
	// navigation once the matrix is in.
	if companyID := current.CurrentCompany().ID; model.perms.CompanyID() != companyID {
		model.returnTo = target
		model.hasReturn = true
		model.screen = ScreenDashboard
		return model.menuCmd(companyID)
	}

	// Menu-bar navigation to a module without a screen in this
	// build lands on the placeholder.
	if moduleName != "" {
		mapped, known := moduleScreens[moduleName]
		if !known {
			model.placeholderModule = moduleName
			model.screen = ScreenPlaceholder
			return nil
		}
		target = mapped
	}

	if name, needsPerm := screenModules[target]; needsPerm && target != ScreenDashboard {
		if !permission.Can(model.gate(name), permission.FlagList) {
			model.screen = ScreenNoPermission
			return nil
		}
	}

	switch target {
	case ScreenDashboard:
		model.screen = ScreenDashboard
		return nil
	case ScreenProducts:
		model.screen = ScreenProducts
		model.products.reset()
		companyID := model.currentCompanyID()
		return tea.Batch(model.productsCmd(companyID), model.masterListCmd(companyID))
	case ScreenRoles:
		model.screen = ScreenRoles
		model.roles.reset()
		return model.rolePermissionsCmd(model.currentCompanyID())
	case ScreenUsers:
		model.screen = ScreenUsers
		model.users.reset()
		return model.usersCmd(model.currentCompanyID())
	case ScreenMasters:
		model.screen = ScreenMasters
		model.masters.reset()
		return model.masterListCmd(model.currentCompanyID())
	case ScreenCheckout:
		model.screen = ScreenCheckout
		model.checkout.reset()
		return model.productsCmd(model.currentCompanyID())
	case ScreenPlaceholder, ScreenNoPermission, ScreenUnauthorized:
		model.screen = target
		return nil
	default:
		// Anything unrecognized lands on the dashboard.
		model.screen = ScreenDashboard
		return nil
	}
}

// rebuildMenu projects the permission matrix into the menu bar. The
// dashboard entry is always present even when the matrix omits it;
// modules without the list flag (and without full) are kept out of
// the bar entirely, matching what their screens would refuse anyway.
func (model *Model) rebuildMenu() {
	matrix := model.perms.Matrix()
	entries := make([]menuEntry, 0, len(matrix)+1)
	hasDashboard := false

	for _, module := range matrix {
		if module.Name == "Dashboard" {
			hasDashboard = true
		}
		if !permission.Can(module.Perms, permission.FlagList) {
			continue
		}
		screen, known := moduleScreens[module.Name]
		if !known {
			screen = ScreenPlaceholder
		}
		display := module.Display
		if display == "" {
			display = module.Name
		}
		entries = append(entries, menuEntry{
			display:    display,
			moduleName: module.Name,
			screen:     screen,
		})
	}

	if !hasDashboard {
		entries = append([]menuEntry{{display: "Dashboard", moduleName: "Dashboard", screen: ScreenDashboard}}, entries...)
	}

	model.menu = entries
	if model.menuIndex >= len(entries) {
		model.menuIndex = 0
	}
}

// beginTenantSwitch dispatches the select-company call and raises the
// switching overlay. The overlay stays up until selectCompanyResultMsg
// and the follow-up menuResultMsg have both settled.
func (model *Model) beginTenantSwitch(companyID int) tea.Cmd {
	model.switching = true
	model.switchingCompanyID = companyID
	return model.selectCompanyCmd(companyID)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case navigateMsg:
		cmd := model.navigate(message.target, message.moduleName)
		return model, cmd

	case tea.KeyMsg:
		return model.handleKey(message)

	case sessionChangedMsg:
		return model.handleSessionChange(message)

	case toastMsg:
		model.nextToastID++
		id := model.nextToastID
		model.toasts = append(model.toasts, toast{id: id, notification: message.notification})
		expire := tea.Tick(toastDisplay, func(time.Time) tea.Msg {
			return toastExpireMsg{id: id}
		})
		return model, tea.Batch(listenExternal(model.external), expire)

	case toastExpireMsg:
		kept := model.toasts[:0]
		for _, item := range model.toasts {
			if item.id != message.id {
				kept = append(kept, item)
			}
		}
		model.toasts = kept
		return model, nil

	case loaderMsg:
		model.busy = message.active > 0
		return model, listenExternal(model.external)

	case loginResultMsg:
		return model.handleLoginResult(message)

	case selectCompanyResultMsg:
		return model.handleSelectCompanyResult(message)

	case menuResultMsg:
		return model.handleMenuResult(message)

	case productsResultMsg:
		// Results stamped with an abandoned tenant are dropped whole,
		// errors included; a late failure from the previous company
		// must not toast over the new one.
		if model.stale(message.companyID) {
			return model, nil
		}
		if message.err != nil {
			return model, model.errorToast("Load failed", message.err)
		}
		model.products.setData(message.products)
		model.checkout.setCatalog(message.products)
		return model, nil

	case rolePermissionsResultMsg:
		if model.stale(message.companyID) {
			return model, nil
		}
		if message.err != nil {
			return model, model.errorToast("Load failed", message.err)
		}
		model.roles.setData(message.records)
		return model, nil

	case usersResultMsg:
		if model.stale(message.companyID) {
			return model, nil
		}
		if message.err != nil {
			return model, model.errorToast("Load failed", message.err)
		}
		model.users.setData(message.accounts)
		return model, nil

	case masterListResultMsg:
		if model.stale(message.companyID) {
			return model, nil
		}
		if message.err != nil {
			return model, model.errorToast("Load failed", message.err)
		}
		model.masters.setData(message.response)
		model.products.setMasters(message.response)
		return model, nil

	case saveResultMsg:
		return model.handleSaveResult(message)

	case invoiceResultMsg:
		return model.handleInvoiceResult(message)
	}

	return model, nil
}

// errorToast emits an error notification through the bus, which comes
// back around as a toastMsg. Keeping emission on the bus (instead of
// appending directly) preserves one delivery order for UI- and
// CLI-originated notifications alike.
func (model Model) errorToast(title string, err error) tea.Cmd {
	bus := model.bus
	detail := err.Error()
	return func() tea.Msg {
		bus.Error(title, detail)
		return nil
	}
}

func (model Model) successToast(title, detail string) tea.Cmd {
	bus := model.bus
	return func() tea.Msg {
		bus.Success(title, detail)
		return nil
	}
}

// handleSessionChange reacts to the session store notifying: nil
// session means logout or 401 purge.
func (model Model) handleSessionChange(message sessionChangedMsg) (tea.Model, tea.Cmd) {
	rearmed := listenExternal(model.external)

	if message.session == nil {
		model.perms.Clear()
		model.menu = nil
		model.menuIndex = 0
		if model.loggingOut {
			model.loggingOut = false
			cmd := model.navigate(ScreenLogin, "")
			return model, tea.Batch(rearmed, cmd)
		}
		model.screen = ScreenUnauthorized
		return model, rearmed
	}
	return model, rearmed
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.login.fail(message.err)
		return model, nil
	}

	current := model.sessions.Session()
	if current.IsSystemOwner() && current.CurrentCompany().ID == 0 {
		cmd := model.navigate(ScreenSelectCompany, "")
		return model, cmd
	}

	// Ordinary user: the tenant is already bound, fetch the matrix
	// and land on the remembered destination.
	companyID := model.currentCompanyID()
	return model, model.menuCmd(companyID)
}

func (model Model) handleSelectCompanyResult(message selectCompanyResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.switching = false
		return model, model.errorToast("Company switch failed", message.err)
	}
	if model.stale(message.companyID) {
		// The user has already switched again; let the newer flow
		// drive the overlay.
		return model, nil
	}
	return model, model.menuCmd(message.companyID)
}

func (model Model) handleMenuResult(message menuResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.switching = false
		return model, model.errorToast("Menu load failed", message.err)
	}
	if model.stale(message.companyID) {
		return model, nil
	}

	model.perms.SetMatrix(message.matrix, message.companyID)
	model.rebuildMenu()
	model.switching = false

	target := ScreenDashboard
	if model.hasReturn {
		target = model.returnTo
		model.hasReturn = false
	}
	cmd := model.navigate(target, "")
	return model, cmd
}

func (model Model) handleSaveResult(message saveResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.roles.saving = false
		return model, model.errorToast("Save failed", message.err)
	}
	if model.stale(message.companyID) {
		return model, nil
	}

	// Refetch the data behind the screen that owns the mutation.
	var refetch tea.Cmd
	switch message.what {
	case "product":
		refetch = model.productsCmd(message.companyID)
	case "user":
		refetch = model.usersCmd(message.companyID)
	case "role":
		refetch = model.rolePermissionsCmd(message.companyID)
	case "category", "uom", "brand":
		refetch = model.masterListCmd(message.companyID)
	}
	return model, tea.Batch(model.successToast("Saved", ""), refetch)
}

func (model Model) handleInvoiceResult(message invoiceResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.checkout.submitting = false
		return model, model.errorToast("Checkout failed", message.err)
	}
	if model.stale(message.companyID) {
		return model, nil
	}
	if model.can(ScreenCheckout, permission.FlagPrint) {
		model.checkout.completed(message.invoiceNo, model.prefs)
	} else {
		// No print flag: the sale went through but there is no
		// receipt preview to show.
		model.checkout.cart = nil
		model.checkout.submitting = false
	}
	// Stock changed; refresh the catalog behind the cart.
	return model, tea.Batch(
		model.successToast("Invoice saved", message.invoiceNo),
		model.productsCmd(message.companyID),
	)
}

// handleKey routes keyboard input. Screens with an active text entry
// consume everything except ctrl+c.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Quit) {
		return model, tea.Quit
	}

	// Unauthorized screen: any key returns to login.
	if model.screen == ScreenUnauthorized {
		cmd := model.navigate(ScreenLogin, "")
		return model, cmd
	}

	if model.editing() {
		return model.handleScreenKey(message)
	}

	authenticated := model.sessions.Session().IsAuthenticated()

	switch {
	case key.Matches(message, model.keys.Logout):
		if !authenticated {
			return model, nil
		}
		model.loggingOut = true
		model.sessions.Logout()
		return model, nil

	case key.Matches(message, model.keys.SwitchCompany):
		if !authenticated || !model.sessions.Session().IsSystemOwner() {
			return model, nil
		}
		cmd := model.navigate(ScreenSelectCompany, "")
		return model, cmd

	case key.Matches(message, model.keys.MenuNext):
		if model.screen == ScreenLogin || model.screen == ScreenSelectCompany || len(model.menu) == 0 {
			return model.handleScreenKey(message)
		}
		model.menuIndex = (model.menuIndex + 1) % len(model.menu)
		entry := model.menu[model.menuIndex]
		cmd := model.navigate(entry.screen, entry.moduleName)
		return model, cmd

	case key.Matches(message, model.keys.MenuPrevious):
		if model.screen == ScreenLogin || model.screen == ScreenSelectCompany || len(model.menu) == 0 {
			return model.handleScreenKey(message)
		}
		model.menuIndex = (model.menuIndex - 1 + len(model.menu)) % len(model.menu)
		entry := model.menu[model.menuIndex]
		cmd := model.navigate(entry.screen, entry.moduleName)
		return model, cmd
	}

	return model.handleScreenKey(message)
}

// editing reports whether the active screen holds keyboard focus in a
// text input, suppressing the global bindings.
func (model Model) editing() bool {
	switch model.screen {
	case ScreenLogin:
		return true
	case ScreenProducts:
		return model.products.editing()
	case ScreenUsers:
		return model.users.editing()
	case ScreenMasters:
		return model.masters.editing()
	case ScreenCheckout:
		return model.checkout.editing()
	default:
		return false
	}
}

// handleScreenKey dispatches to the active screen's handler.
func (model Model) handleScreenKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.screen {
	case ScreenLogin:
		return model.updateLogin(message)
	case ScreenSelectCompany:
		return model.updateCompanyPicker(message)
	case ScreenProducts:
		return model.updateProducts(message)
	case ScreenRoles:
		return model.updateRoles(message)
	case ScreenUsers:
		return model.updateUsers(message)
	case ScreenMasters:
		return model.updateMasters(message)
	case ScreenCheckout:
		return model.updateCheckout(message)
	case ScreenNoPermission, ScreenPlaceholder:
		// Any screen-local key goes home.
		if message.Type == tea.KeyEnter {
			cmd := model.navigate(ScreenDashboard, "")
			return model, cmd
		}
	}
	return model, nil
}
