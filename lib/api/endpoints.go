// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// Login authenticates the credentials and returns the identity token.
func (client *Client) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	var response LoginResponse
	if err := client.post(ctx, "/api/v1/user/login", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SelectCompany binds the session to a tenant and returns the
// tenant-bound replacement token.
func (client *Client) SelectCompany(ctx context.Context, request SelectCompanyRequest) (*SelectCompanyResponse, error) {
	var response SelectCompanyResponse
	if err := client.post(ctx, "/api/v1/user/select-company", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// MenuAccess fetches the permission matrix for a tenant.
func (client *Client) MenuAccess(ctx context.Context, request MenuAccessRequest) (*MenuAccessResponse, error) {
	var response MenuAccessResponse
	if err := client.post(ctx, "/api/v1/user/menu-access", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// RolePermissions fetches the role/module matrix for the
// role-administration screen.
func (client *Client) RolePermissions(ctx context.Context, request RolePermissionsRequest) (*RolePermissionsResponse, error) {
	var response RolePermissionsResponse
	if err := client.post(ctx, "/api/v1/user/permissions-on-role", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveRolePermission toggles the flags of one (role, module) pair.
func (client *Client) SaveRolePermission(ctx context.Context, request SaveRolePermissionRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/user/permissions-role/save-module", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Products lists the tenant's catalog.
func (client *Client) Products(ctx context.Context, request ProductsRequest) (*ProductsResponse, error) {
	var response ProductsResponse
	if err := client.post(ctx, "/api/v1/product/list", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveProduct creates or updates a product.
func (client *Client) SaveProduct(ctx context.Context, request SaveProductRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/product/save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteProduct removes a product.
func (client *Client) DeleteProduct(ctx context.Context, request DeleteProductRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/product/delete", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// MasterList fetches the master data used by product forms.
func (client *Client) MasterList(ctx context.Context, request MasterListRequest) (*MasterListResponse, error) {
	var response MasterListResponse
	if err := client.post(ctx, "/api/v1/product/master-list", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveCategory creates or renames a product category. Success is
// Envelope.MasterSuccess, not Success.
func (client *Client) SaveCategory(ctx context.Context, request SaveMasterRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/master/category-save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveUOM creates or renames a unit of measure. Success is
// Envelope.MasterSuccess.
func (client *Client) SaveUOM(ctx context.Context, request SaveMasterRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/master/uom-save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveBrand creates or renames a brand. Success is
// Envelope.MasterSuccess.
func (client *Client) SaveBrand(ctx context.Context, request SaveMasterRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/master/brand-save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Users lists the tenant's managed users.
func (client *Client) Users(ctx context.Context, request UsersRequest) (*UsersResponse, error) {
	var response UsersResponse
	if err := client.post(ctx, "/api/v1/user/list", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveUser creates or updates a managed user.
func (client *Client) SaveUser(ctx context.Context, request SaveUserRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/user/save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteUser removes a managed user.
func (client *Client) DeleteUser(ctx context.Context, request DeleteUserRequest) (*Envelope, error) {
	var response Envelope
	if err := client.post(ctx, "/api/v1/user/delete", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SaveInvoice submits a checkout and returns the invoice number.
func (client *Client) SaveInvoice(ctx context.Context, request SaveInvoiceRequest) (*SaveInvoiceResponse, error) {
	var response SaveInvoiceResponse
	if err := client.post(ctx, "/api/v1/invoice/save", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
