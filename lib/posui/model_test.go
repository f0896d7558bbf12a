// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/notify"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/session"
)

// fakeAuth scripts the session store's two endpoints.
type fakeAuth struct {
	loginResponse *api.LoginResponse
	loginCalls    int
}

func (f *fakeAuth) Login(ctx context.Context, request api.LoginRequest) (*api.LoginResponse, error) {
	f.loginCalls++
	return f.loginResponse, nil
}

func (f *fakeAuth) SelectCompany(ctx context.Context, request api.SelectCompanyRequest) (*api.SelectCompanyResponse, error) {
	return &api.SelectCompanyResponse{
		Envelope:  api.Envelope{Code: 200},
		Token:     "T2",
		CompanyID: request.CompanyID,
	}, nil
}

// fakeBackend answers every console endpoint with empty success.
type fakeBackend struct {
	menu     []permission.ModuleRecord
	products []api.Product
}

func okEnvelope() *api.Envelope { return &api.Envelope{Code: 200} }

func (f *fakeBackend) MenuAccess(ctx context.Context, request api.MenuAccessRequest) (*api.MenuAccessResponse, error) {
	return &api.MenuAccessResponse{Envelope: api.Envelope{Code: 200}, Menu: f.menu}, nil
}

func (f *fakeBackend) Products(ctx context.Context, request api.ProductsRequest) (*api.ProductsResponse, error) {
	return &api.ProductsResponse{Envelope: api.Envelope{Code: 200}, Data: f.products}, nil
}

func (f *fakeBackend) SaveProduct(ctx context.Context, request api.SaveProductRequest) (*api.Envelope, error) {
	return okEnvelope(), nil
}

func (f *fakeBackend) DeleteProduct(ctx context.Context, request api.DeleteProductRequest) (*api.Envelope, error) {
	return okEnvelope(), nil
}

func (f *fakeBackend) MasterList(ctx context.Context, request api.MasterListRequest) (*api.MasterListResponse, error) {
	return &api.MasterListResponse{Envelope: api.Envelope{Code: 200}}, nil
}

func (f *fakeBackend) SaveCategory(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error) {
	return &api.Envelope{Code: 0}, nil
}

func (f *fakeBackend) SaveUOM(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error) {
	return &api.Envelope{Code: 0}, nil
}

func (f *fakeBackend) SaveBrand(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error) {
	return &api.Envelope{Code: 0}, nil
}

func (f *fakeBackend) RolePermissions(ctx context.Context, request api.RolePermissionsRequest) (*api.RolePermissionsResponse, error) {
	return &api.RolePermissionsResponse{Envelope: api.Envelope{Code: 200}}, nil
}

func (f *fakeBackend) SaveRolePermission(ctx context.Context, request api.SaveRolePermissionRequest) (*api.Envelope, error) {
	return okEnvelope(), nil
}

func (f *fakeBackend) Users(ctx context.Context, request api.UsersRequest) (*api.UsersResponse, error) {
	return &api.UsersResponse{Envelope: api.Envelope{Code: 200}}, nil
}

func (f *fakeBackend) SaveUser(ctx context.Context, request api.SaveUserRequest) (*api.Envelope, error) {
	return okEnvelope(), nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, request api.DeleteUserRequest) (*api.Envelope, error) {
	return okEnvelope(), nil
}

func (f *fakeBackend) SaveInvoice(ctx context.Context, request api.SaveInvoiceRequest) (*api.SaveInvoiceResponse, error) {
	return &api.SaveInvoiceResponse{Envelope: api.Envelope{Code: 200}, InvoiceNo: "INV-1"}, nil
}

func fullMenu() []permission.ModuleRecord {
	return []permission.ModuleRecord{
		{ModuleID: 1, ModuleName: "Dashboard", ModuleDisplay: "Dashboard", SortOrder: 1, List: 1},
		{ModuleID: 2, ModuleName: "Product", ModuleDisplay: "Products", SortOrder: 2, Full: 1},
		{ModuleID: 3, ModuleName: "UserManagement", ModuleDisplay: "Users", SortOrder: 3, List: 1},
	}
}

// testConsole builds a model with an authenticated ordinary user
// bound to company 1 and the given matrix installed.
func testConsole(t *testing.T, records []permission.ModuleRecord) (Model, *fakeAuth, *fakeBackend) {
	t.Helper()

	auth := &fakeAuth{loginResponse: &api.LoginResponse{
		Envelope: api.Envelope{Code: 200},
		Token:    "T1",
		User: &api.User{
			UserID: 7, Username: "dara", RoleID: 3, RoleName: "Cashier",
			CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001",
		},
	}}
	sessions := session.NewStore(auth, filepath.Join(t.TempDir(), "session.json"))
	if _, err := sessions.Login(context.Background(), "dara", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	backend := &fakeBackend{menu: records}
	perms := permission.NewStore()
	perms.SetMatrix(permission.Normalize(records), 1)

	model := New(Options{
		Sessions: sessions,
		Perms:    perms,
		Backend:  backend,
		Bus:      notify.NewBus(),
	})
	model.rebuildMenu()
	model.width = 100
	model.height = 30
	model.ready = true
	return model, auth, backend
}

// guestConsole builds a model with no session.
func guestConsole(t *testing.T) (Model, *fakeAuth) {
	t.Helper()
	auth := &fakeAuth{}
	sessions := session.NewStore(auth, filepath.Join(t.TempDir(), "session.json"))
	model := New(Options{
		Sessions: sessions,
		Perms:    permission.NewStore(),
		Backend:  &fakeBackend{},
		Bus:      notify.NewBus(),
	})
	model.width = 100
	model.height = 30
	model.ready = true
	return model, auth
}

func TestGuestGateSkipsLoginWhenAuthenticated(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.navigate(ScreenLogin, "")
	if model.screen != ScreenDashboard {
		t.Fatalf("screen = %v, want dashboard for an authenticated user", model.screen)
	}
}

func TestAuthGateRemembersDestination(t *testing.T) {
	model, _ := guestConsole(t)

	model.navigate(ScreenProducts, "")
	if model.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login for a guest", model.screen)
	}
	if !model.hasReturn || model.returnTo != ScreenProducts {
		t.Fatalf("returnTo = %v (has %v), want products remembered", model.returnTo, model.hasReturn)
	}
}

func TestTenantGateHoldsOwnerOnPicker(t *testing.T) {
	model, auth := guestConsole(t)
	auth.loginResponse = &api.LoginResponse{
		Envelope:  api.Envelope{Code: 200},
		Token:     "T0",
		User:      &api.User{UserID: 1, Username: "root", RoleID: 1},
		Companies: []api.Company{{CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001"}},
	}
	if _, err := model.sessions.Login(context.Background(), "root", "x"); err != nil {
		t.Fatal(err)
	}

	model.navigate(ScreenProducts, "")
	if model.screen != ScreenSelectCompany {
		t.Fatalf("screen = %v, want company picker for tenantless owner", model.screen)
	}
}

func TestPermissionGateDeniesUnlistedModule(t *testing.T) {
	records := []permission.ModuleRecord{
		{ModuleID: 1, ModuleName: "Product", SortOrder: 1}, // no list flag
	}
	model, _, _ := testConsole(t, records)

	model.navigate(ScreenProducts, "")
	if model.screen != ScreenNoPermission {
		t.Fatalf("screen = %v, want no-permission", model.screen)
	}
}

func TestFullFlagGrantsEverything(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	for _, need := range []permission.Flag{
		permission.FlagList, permission.FlagAdd, permission.FlagEdit,
		permission.FlagDelete, permission.FlagCost, permission.FlagPrint,
	} {
		if !model.can(ScreenProducts, need) {
			t.Errorf("full module denies %s", need)
		}
	}
}

func TestUnknownModuleLandsOnPlaceholder(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.navigate(ScreenDashboard, "Reports")
	if model.screen != ScreenPlaceholder {
		t.Fatalf("screen = %v, want placeholder for unknown module", model.screen)
	}
	if model.placeholderModule != "Reports" {
		t.Fatalf("placeholder names %q", model.placeholderModule)
	}
}

func TestMenuBarKeepsCanonicalOrderAndDashboard(t *testing.T) {
	records := []permission.ModuleRecord{
		{ModuleID: 2, ModuleName: "Product", ModuleDisplay: "Products", SortOrder: 2, List: 1},
		{ModuleID: 3, ModuleName: "Checkout", ModuleDisplay: "Checkout", SortOrder: 1, List: 1},
		{ModuleID: 4, ModuleName: "UserManagement", SortOrder: 3}, // unlisted, hidden
	}
	model, _, _ := testConsole(t, records)

	var names []string
	for _, entry := range model.menu {
		names = append(names, entry.moduleName)
	}
	want := []string{"Dashboard", "Checkout", "Product"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("menu = %v, want %v", names, want)
	}
}

func TestStaleMenuResultDiscarded(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	stale := permission.Normalize([]permission.ModuleRecord{
		{ModuleID: 9, ModuleName: "OnlyStale", List: 1},
	})
	// The session is bound to company 1; this result is for company 2.
	updated, _ := model.Update(menuResultMsg{companyID: 2, matrix: stale})
	model = updated.(Model)

	if model.perms.PermsFor("OnlyStale").List {
		t.Fatal("stale matrix was applied")
	}
	if model.perms.CompanyID() != 1 {
		t.Fatalf("matrix company = %d, want 1", model.perms.CompanyID())
	}
}

func TestStaleProductsResultDiscarded(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	updated, _ := model.Update(productsResultMsg{
		companyID: 2,
		products:  []api.Product{{ProductID: 1, ProductName: "Ghost"}},
	})
	model = updated.(Model)

	if len(model.products.all) != 0 {
		t.Fatal("stale product list was applied")
	}
}

func TestMatchingProductsResultApplied(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	updated, _ := model.Update(productsResultMsg{
		companyID: 1,
		products:  []api.Product{{ProductID: 1, ProductName: "Cola"}},
	})
	model = updated.(Model)

	if len(model.products.all) != 1 {
		t.Fatalf("products = %d, want 1", len(model.products.all))
	}
}

func TestCostColumnOmittedWithoutCostFlag(t *testing.T) {
	records := []permission.ModuleRecord{
		{ModuleID: 1, ModuleName: "Product", SortOrder: 1, List: 1, Add: 1}, // no cost
	}
	model, _, _ := testConsole(t, records)
	model.screen = ScreenProducts
	model.products.setData([]api.Product{{ProductID: 1, ProductName: "Cola", Price: 1.5, Cost: 0.9}})

	view := model.viewProducts()
	if strings.Contains(view, "COST") {
		t.Fatal("cost column rendered without the cost flag")
	}
	if strings.Contains(view, "0.90") {
		t.Fatal("cost value rendered without the cost flag")
	}
}

func TestCostColumnPresentWithCostFlag(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.screen = ScreenProducts
	model.products.setData([]api.Product{{ProductID: 1, ProductName: "Cola", Price: 1.5, Cost: 0.9}})

	if view := model.viewProducts(); !strings.Contains(view, "COST") {
		t.Fatal("cost column missing despite the cost flag")
	}
}

func TestDeniedActionEmitsWarningToast(t *testing.T) {
	records := []permission.ModuleRecord{
		{ModuleID: 1, ModuleName: "Product", SortOrder: 1, List: 1}, // no add
	}
	model, _, _ := testConsole(t, records)
	model.screen = ScreenProducts

	var got []notify.Notification
	model.bus.Subscribe(func(notification notify.Notification) {
		got = append(got, notification)
	})

	_, cmd := model.updateProducts(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if cmd == nil {
		t.Fatal("denied action produced no command")
	}
	cmd()

	if len(got) != 1 || got[0].Level != notify.LevelWarning {
		t.Fatalf("notifications = %+v, want one warning", got)
	}
	if model.products.mode != productsList {
		t.Fatal("denied add opened the form anyway")
	}
}

func TestEmptyCredentialsNeverReachBackend(t *testing.T) {
	model, auth := guestConsole(t)
	model.navigate(ScreenLogin, "")

	updated, cmd := model.updateLogin(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if cmd != nil {
		t.Fatal("empty credentials dispatched a command")
	}
	if auth.loginCalls != 0 {
		t.Fatalf("backend login called %d times for empty credentials", auth.loginCalls)
	}
	if model.login.errorText == "" {
		t.Fatal("no inline validation message")
	}
}

func TestFilterRanksAndNarrowsProducts(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.products.setData([]api.Product{
		{ProductID: 1, ProductName: "Coca-Cola 330ml"},
		{ProductID: 2, ProductName: "Instant Noodles"},
	})

	model.products.filterInput = []rune("cola")
	model.products.applyFilter()

	if len(model.products.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(model.products.rows))
	}
	if model.products.rows[0].product.ProductID != 1 {
		t.Fatalf("top match = %d, want the cola product", model.products.rows[0].product.ProductID)
	}
}

func TestTenantSwitchOverlayUntilMenuSettles(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	cmd := model.beginTenantSwitch(2)
	if !model.switching {
		t.Fatal("switch did not raise the overlay")
	}

	// The select call succeeds and rebinds the session to company 2.
	message := cmd()
	result, ok := message.(selectCompanyResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("select result = %#v", message)
	}
	updated, menuCmd := model.Update(result)
	model = updated.(Model)
	if !model.switching {
		t.Fatal("overlay dropped before the menu refetch settled")
	}
	if menuCmd == nil {
		t.Fatal("no menu refetch after the tenant switch")
	}

	updated, _ = model.Update(menuCmd())
	model = updated.(Model)
	if model.switching {
		t.Fatal("overlay still up after menu settled")
	}
	if model.perms.CompanyID() != 2 {
		t.Fatalf("matrix company = %d, want 2", model.perms.CompanyID())
	}
}

func TestRestoredSessionFetchesMatrixOnStartup(t *testing.T) {
	// Built the way the command wiring builds it: the session is
	// already bound to a tenant, the permission store starts empty.
	auth := &fakeAuth{loginResponse: &api.LoginResponse{
		Envelope: api.Envelope{Code: 200},
		Token:    "T1",
		User: &api.User{
			UserID: 7, Username: "dara", RoleID: 3, RoleName: "Cashier",
			CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001",
		},
	}}
	sessions := session.NewStore(auth, filepath.Join(t.TempDir(), "session.json"))
	if _, err := sessions.Login(context.Background(), "dara", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	model := New(Options{
		Sessions: sessions,
		Perms:    permission.NewStore(),
		Backend:  &fakeBackend{menu: fullMenu()},
		Bus:      notify.NewBus(),
	})

	// The initial navigation must notice the missing matrix and fetch
	// it instead of gating against nothing.
	updated, cmd := model.Update(navigateMsg{target: ScreenDashboard})
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("startup navigation dispatched no matrix fetch")
	}
	message := cmd()
	result, ok := message.(menuResultMsg)
	if !ok {
		t.Fatalf("startup fetch produced %T, want a menu result", message)
	}
	if result.err != nil {
		t.Fatalf("menu fetch: %v", result.err)
	}

	updated, _ = model.Update(result)
	model = updated.(Model)
	if model.perms.CompanyID() != 1 {
		t.Fatalf("matrix company = %d, want 1", model.perms.CompanyID())
	}
	if len(model.menu) == 0 {
		t.Fatal("menu bar still empty after the matrix arrived")
	}
	if model.screen != ScreenDashboard {
		t.Fatalf("screen = %v, want dashboard", model.screen)
	}
}

func TestArrowKeysReachRolesGridColumns(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.screen = ScreenRoles

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	model = updated.(Model)
	if model.roles.column != 1 {
		t.Fatalf("column = %d after right arrow, want 1", model.roles.column)
	}
	if model.menuIndex != 0 {
		t.Fatal("right arrow moved the menu bar")
	}

	updated, _ = model.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	model = updated.(Model)
	if model.roles.column != 0 {
		t.Fatalf("column = %d after left arrow, want 0", model.roles.column)
	}
}

func TestArrowKeysSwitchMasterTabs(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.screen = ScreenMasters

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	model = updated.(Model)
	if model.masters.tab != 1 {
		t.Fatalf("tab = %d after right arrow, want 1", model.masters.tab)
	}
	if model.menuIndex != 0 {
		t.Fatal("right arrow moved the menu bar")
	}
}

func TestTabStillCyclesMenuBar(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())
	model.screen = ScreenDashboard

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.menuIndex != 1 {
		t.Fatalf("menuIndex = %d after tab, want 1", model.menuIndex)
	}
}

func TestStaleErrorResultEmitsNoToast(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	// A failed fetch stamped with an abandoned tenant is dropped
	// whole; only current-tenant failures may toast.
	_, cmd := model.Update(productsResultMsg{companyID: 2, err: errors.New("boom")})
	if cmd != nil {
		t.Fatal("stale failed fetch produced a command")
	}

	_, cmd = model.Update(usersResultMsg{companyID: 2, err: errors.New("boom")})
	if cmd != nil {
		t.Fatal("stale failed user fetch produced a command")
	}
}

func TestPickerCursorSeeksBoundCompany(t *testing.T) {
	model, auth := guestConsole(t)
	auth.loginResponse = &api.LoginResponse{
		Envelope: api.Envelope{Code: 200},
		Token:    "T0",
		User:     &api.User{UserID: 1, Username: "root", RoleID: 1},
		Companies: []api.Company{
			{CompanyID: 1, CompanyName: "OTOKHI", CompanyCode: "OT001"},
			{CompanyID: 2, CompanyName: "SECOND", CompanyCode: "OT002"},
			{CompanyID: 3, CompanyName: "THIRD", CompanyCode: "OT003"},
		},
	}
	if _, err := model.sessions.Login(context.Background(), "root", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := model.sessions.SelectCompany(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	model.navigate(ScreenSelectCompany, "")
	if model.picker.cursor != 1 {
		t.Fatalf("cursor = %d, want the bound company at index 1", model.picker.cursor)
	}
}

func TestLogoutLandsOnLoginAnd401LandsOnUnauthorized(t *testing.T) {
	model, _, _ := testConsole(t, fullMenu())

	model.loggingOut = true
	model.sessions.Logout()
	updated, _ := model.handleSessionChange(sessionChangedMsg{session: nil})
	model = updated.(Model)
	if model.screen != ScreenLogin {
		t.Fatalf("screen = %v after logout, want login", model.screen)
	}

	model, _, _ = testConsole(t, fullMenu())
	model.sessions.HandleUnauthorized()
	updated, _ = model.handleSessionChange(sessionChangedMsg{session: nil})
	model = updated.(Model)
	if model.screen != ScreenUnauthorized {
		t.Fatalf("screen = %v after purge, want unauthorized", model.screen)
	}
	if len(model.perms.Matrix()) != 0 {
		t.Fatal("matrix survived the purge")
	}
}
