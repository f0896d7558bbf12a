// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/permission"
)

// Backend is the slice of the api client the console dispatches to.
// *api.Client satisfies it; tests substitute a scripted fake.
type Backend interface {
	MenuAccess(ctx context.Context, request api.MenuAccessRequest) (*api.MenuAccessResponse, error)
	Products(ctx context.Context, request api.ProductsRequest) (*api.ProductsResponse, error)
	SaveProduct(ctx context.Context, request api.SaveProductRequest) (*api.Envelope, error)
	DeleteProduct(ctx context.Context, request api.DeleteProductRequest) (*api.Envelope, error)
	MasterList(ctx context.Context, request api.MasterListRequest) (*api.MasterListResponse, error)
	SaveCategory(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error)
	SaveUOM(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error)
	SaveBrand(ctx context.Context, request api.SaveMasterRequest) (*api.Envelope, error)
	RolePermissions(ctx context.Context, request api.RolePermissionsRequest) (*api.RolePermissionsResponse, error)
	SaveRolePermission(ctx context.Context, request api.SaveRolePermissionRequest) (*api.Envelope, error)
	Users(ctx context.Context, request api.UsersRequest) (*api.UsersResponse, error)
	SaveUser(ctx context.Context, request api.SaveUserRequest) (*api.Envelope, error)
	DeleteUser(ctx context.Context, request api.DeleteUserRequest) (*api.Envelope, error)
	SaveInvoice(ctx context.Context, request api.SaveInvoiceRequest) (*api.SaveInvoiceResponse, error)
}

// The command constructors capture the company id at dispatch time.
// The matching result handler compares it against the session's
// current company and discards mismatches, so a slow response from a
// previous tenant can never populate the new tenant's screen.

func (model Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		response, err := model.sessions.Login(context.Background(), username, password)
		return loginResultMsg{response: response, err: err}
	}
}

func (model Model) selectCompanyCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		_, err := model.sessions.SelectCompany(context.Background(), companyID)
		return selectCompanyResultMsg{companyID: companyID, err: err}
	}
}

func (model Model) menuCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.MenuAccess(context.Background(), api.MenuAccessRequest{CompanyID: companyID})
		if err != nil {
			return menuResultMsg{companyID: companyID, err: err}
		}
		if err := response.Err(); err != nil {
			return menuResultMsg{companyID: companyID, err: err}
		}
		return menuResultMsg{companyID: companyID, matrix: permission.Normalize(response.Menu)}
	}
}

func (model Model) productsCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.Products(context.Background(), api.ProductsRequest{CompanyID: companyID})
		if err != nil {
			return productsResultMsg{companyID: companyID, err: err}
		}
		if err := response.Err(); err != nil {
			return productsResultMsg{companyID: companyID, err: err}
		}
		return productsResultMsg{companyID: companyID, products: response.Data}
	}
}

func (model Model) saveProductCmd(request api.SaveProductRequest) tea.Cmd {
	return func() tea.Msg {
		envelope, err := model.backend.SaveProduct(context.Background(), request)
		if err == nil {
			err = envelope.Err()
		}
		return saveResultMsg{companyID: request.CompanyID, what: "product", err: err}
	}
}

func (model Model) deleteProductCmd(request api.DeleteProductRequest) tea.Cmd {
	return func() tea.Msg {
		envelope, err := model.backend.DeleteProduct(context.Background(), request)
		if err == nil {
			err = envelope.Err()
		}
		return saveResultMsg{companyID: request.CompanyID, what: "product", err: err}
	}
}

func (model Model) masterListCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.MasterList(context.Background(), api.MasterListRequest{CompanyID: companyID})
		if err != nil {
			return masterListResultMsg{companyID: companyID, err: err}
		}
		if err := response.Err(); err != nil {
			return masterListResultMsg{companyID: companyID, err: err}
		}
		return masterListResultMsg{companyID: companyID, response: response}
	}
}

// saveMasterCmd dispatches to the right master-save endpoint. These
// endpoints answer envelope code 0 (or 200) on success.
func (model Model) saveMasterCmd(kind string, request api.SaveMasterRequest) tea.Cmd {
	return func() tea.Msg {
		var envelope *api.Envelope
		var err error
		switch kind {
		case "category":
			envelope, err = model.backend.SaveCategory(context.Background(), request)
		case "uom":
			envelope, err = model.backend.SaveUOM(context.Background(), request)
		case "brand":
			envelope, err = model.backend.SaveBrand(context.Background(), request)
		}
		if err == nil && envelope != nil {
			err = envelope.MasterErr()
		}
		return saveResultMsg{companyID: request.CompanyID, what: kind, err: err}
	}
}

func (model Model) rolePermissionsCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.RolePermissions(context.Background(), api.RolePermissionsRequest{CompanyID: companyID})
		if err != nil {
			return rolePermissionsResultMsg{companyID: companyID, err: err}
		}
		if err := response.Err(); err != nil {
			return rolePermissionsResultMsg{companyID: companyID, err: err}
		}
		return rolePermissionsResultMsg{companyID: companyID, records: response.Data}
	}
}

func (model Model) saveRolePermissionCmd(companyID int, request api.SaveRolePermissionRequest) tea.Cmd {
	return func() tea.Msg {
		envelope, err := model.backend.SaveRolePermission(context.Background(), request)
		if err == nil {
			err = envelope.Err()
		}
		return saveResultMsg{companyID: companyID, what: "role", err: err}
	}
}

func (model Model) usersCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.Users(context.Background(), api.UsersRequest{CompanyID: companyID})
		if err != nil {
			return usersResultMsg{companyID: companyID, err: err}
		}
		if err := response.Err(); err != nil {
			return usersResultMsg{companyID: companyID, err: err}
		}
		return usersResultMsg{companyID: companyID, accounts: response.Data}
	}
}

func (model Model) saveUserCmd(request api.SaveUserRequest) tea.Cmd {
	return func() tea.Msg {
		envelope, err := model.backend.SaveUser(context.Background(), request)
		if err == nil {
			err = envelope.Err()
		}
		return saveResultMsg{companyID: request.CompanyID, what: "user", err: err}
	}
}

func (model Model) deleteUserCmd(request api.DeleteUserRequest) tea.Cmd {
	return func() tea.Msg {
		envelope, err := model.backend.DeleteUser(context.Background(), request)
		if err == nil {
			err = envelope.Err()
		}
		return saveResultMsg{companyID: request.CompanyID, what: "user", err: err}
	}
}

func (model Model) saveInvoiceCmd(request api.SaveInvoiceRequest) tea.Cmd {
	return func() tea.Msg {
		response, err := model.backend.SaveInvoice(context.Background(), request)
		if err != nil {
			return invoiceResultMsg{companyID: request.CompanyID, err: err}
		}
		if err := response.Err(); err != nil {
			return invoiceResultMsg{companyID: request.CompanyID, err: err}
		}
		return invoiceResultMsg{companyID: request.CompanyID, invoiceNo: response.InvoiceNo}
	}
}

// listenExternal blocks on the channel that the bus, loader, and
// session subscriptions feed from their own goroutines, delivering
// each event into the bubbletea loop. Re-armed after every delivery.
func listenExternal(channel <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		message, ok := <-channel
		if !ok {
			return nil
		}
		return message
	}
}
