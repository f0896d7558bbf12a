// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "github.com/poskit/poskit/lib/permission"

// User is the backend's user record. For ordinary users the company
// fields are populated at login; for system owners (RoleID == 1) they
// stay empty until a tenant is selected.
type User struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	RoleID      int    `json:"role_id"`
	RoleName    string `json:"role_name"`
	CompanyID   int    `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyCode string `json:"company_code,omitempty"`
}

// Company is one tenant a system owner may operate.
type Company struct {
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name"`
	CompanyCode string `json:"company_code"`
}

// LoginRequest carries the credentials. Never stored.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the identity-authentication result. Companies is
// present only for system owners.
type LoginResponse struct {
	Envelope
	Token         string    `json:"token"`
	User          *User     `json:"user"`
	Companies     []Company `json:"companies,omitempty"`
	IsSystemOwner bool      `json:"is_system_owner,omitempty"`
}

// SelectCompanyRequest binds the session to a tenant.
type SelectCompanyRequest struct {
	CompanyID int `json:"company_id"`
}

// SelectCompanyResponse carries the tenant-bound replacement token.
// The name and code fields may be omitted by older backend builds;
// callers fall back to the companies list from login.
type SelectCompanyResponse struct {
	Envelope
	Token       string `json:"token"`
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyCode string `json:"company_code,omitempty"`
}

// MenuAccessRequest asks for the permission matrix of a tenant.
type MenuAccessRequest struct {
	CompanyID int `json:"company_id"`
}

// MenuAccessResponse is the raw permission matrix. Normalization
// happens in the permission package, not here.
type MenuAccessResponse struct {
	Envelope
	Menu []permission.ModuleRecord `json:"menu"`
}

// RolePermissionRecord is one (role, module) row of the admin matrix.
type RolePermissionRecord struct {
	RoleID     int    `json:"role_id"`
	RoleName   string `json:"role_name"`
	ModuleID   int    `json:"module_id"`
	ModuleName string `json:"module_name"`
	Full       int    `json:"full"`
	List       int    `json:"list"`
	Add        int    `json:"add"`
	Edit       int    `json:"edit"`
	Delete     int    `json:"delete"`
	Cost       int    `json:"cost"`
	Print      int    `json:"print"`
}

// RolePermissionsRequest fetches the role/module matrix for the
// role-administration screen.
type RolePermissionsRequest struct {
	CompanyID int `json:"company_id"`
}

// RolePermissionsResponse lists every (role, module) pair.
type RolePermissionsResponse struct {
	Envelope
	Data []RolePermissionRecord `json:"data"`
}

// SaveRolePermissionRequest toggles the flags of a single (role,
// module) pair. Flags travel as 0/1.
type SaveRolePermissionRequest struct {
	RoleID   int `json:"role_id"`
	ModuleID int `json:"module_id"`
	Full     int `json:"full"`
	List     int `json:"list"`
	Add      int `json:"add"`
	Edit     int `json:"edit"`
	Delete   int `json:"delete"`
	Cost     int `json:"cost"`
	Print    int `json:"print"`
}

// ProductVariant is one sellable variation of a product.
type ProductVariant struct {
	VariantID   int     `json:"variant_id"`
	Sku         string  `json:"sku"`
	VariantName string  `json:"variant_name"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
}

// Product is one catalog entry. Cost is present in the payload even
// when the viewer lacks the cost permission — hiding it is the UI's
// job, the backend remains authoritative for writes only.
type Product struct {
	ProductID    int              `json:"product_id"`
	ProductCode  string           `json:"product_code"`
	ProductName  string           `json:"product_name"`
	CategoryName string           `json:"category_name"`
	BrandName    string           `json:"brand_name"`
	UomName      string           `json:"uom_name"`
	Price        float64          `json:"price"`
	Cost         float64          `json:"cost"`
	Stock        int              `json:"stock"`
	Description  string           `json:"description,omitempty"`
	Variants     []ProductVariant `json:"variants,omitempty"`
}

// ProductsRequest lists the catalog of a tenant.
type ProductsRequest struct {
	CompanyID int `json:"company_id"`
}

// ProductsResponse is the catalog listing.
type ProductsResponse struct {
	Envelope
	Data []Product `json:"data"`
}

// SaveProductRequest creates or updates a product. ProductID zero
// means create.
type SaveProductRequest struct {
	CompanyID   int              `json:"company_id"`
	ProductID   int              `json:"product_id,omitempty"`
	ProductCode string           `json:"product_code"`
	ProductName string           `json:"product_name"`
	CategoryID  int              `json:"category_id,omitempty"`
	BrandID     int              `json:"brand_id,omitempty"`
	UomID       int              `json:"uom_id,omitempty"`
	Price       float64          `json:"price"`
	Cost        float64          `json:"cost,omitempty"`
	Description string           `json:"description,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// DeleteProductRequest removes a product.
type DeleteProductRequest struct {
	CompanyID int `json:"company_id"`
	ProductID int `json:"product_id"`
}

// MasterRecord is one entry of a master-data list (category, unit of
// measure, brand).
type MasterRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MasterListRequest fetches the master data used by product forms.
type MasterListRequest struct {
	CompanyID int `json:"company_id"`
}

// MasterListResponse groups the master lists.
type MasterListResponse struct {
	Envelope
	Categories []MasterRecord `json:"categories"`
	Uoms       []MasterRecord `json:"uoms"`
	Brands     []MasterRecord `json:"brands"`
}

// SaveMasterRequest creates or renames a master record. ID zero means
// create. The same shape serves categories, units, and brands.
type SaveMasterRequest struct {
	CompanyID int    `json:"company_id"`
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
}

// AccountRecord is one managed user on the user-management screen.
type AccountRecord struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
	RoleName string `json:"role_name"`
	Active   int    `json:"active"`
}

// UsersRequest lists a tenant's users.
type UsersRequest struct {
	CompanyID int `json:"company_id"`
}

// UsersResponse is the user listing.
type UsersResponse struct {
	Envelope
	Data []AccountRecord `json:"data"`
}

// SaveUserRequest creates or updates a managed user. Password is sent
// only when set.
type SaveUserRequest struct {
	CompanyID int    `json:"company_id"`
	UserID    int    `json:"user_id,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	RoleID    int    `json:"role_id"`
	Active    int    `json:"active"`
}

// DeleteUserRequest removes a managed user.
type DeleteUserRequest struct {
	CompanyID int `json:"company_id"`
	UserID    int `json:"user_id"`
}

// InvoiceItem is one checkout line.
type InvoiceItem struct {
	ProductID int     `json:"product_id"`
	VariantID int     `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// SaveInvoiceRequest submits a checkout.
type SaveInvoiceRequest struct {
	CompanyID int           `json:"company_id"`
	Items     []InvoiceItem `json:"items"`
	Total     float64       `json:"total"`
}

// SaveInvoiceResponse returns the backend-assigned invoice number.
type SaveInvoiceResponse struct {
	Envelope
	InvoiceNo string `json:"invoice_no"`
}
