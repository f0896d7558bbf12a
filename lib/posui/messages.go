// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/notify"
	"github.com/poskit/poskit/lib/permission"
	"github.com/poskit/poskit/lib/session"
)

// navigateMsg requests a screen change. It goes through the gate
// chain in navigate() rather than setting the screen directly.
type navigateMsg struct {
	target Screen

	// moduleName is set when navigation came from the menu bar, so
	// the permission gate knows which module to check.
	moduleName string
}

// sessionChangedMsg is delivered whenever the session store notifies
// its subscribers. A nil session means logout or a 401 purge.
type sessionChangedMsg struct {
	session *session.Session
}

// toastMsg wraps a bus notification for display.
type toastMsg struct {
	notification notify.Notification
}

// toastExpireMsg removes a toast after its display window.
type toastExpireMsg struct {
	id int
}

// loaderMsg carries the in-flight request count transitions published
// by the api client (already min-display filtered).
type loaderMsg struct {
	active int
}

// Result messages for backend calls. Each carries the company id the
// call was dispatched for; results for a tenant that is no longer
// current are discarded.

type loginResultMsg struct {
	response *api.LoginResponse
	err      error
}

type selectCompanyResultMsg struct {
	companyID int
	err       error
}

type menuResultMsg struct {
	companyID int
	matrix    permission.Matrix
	err       error
}

type productsResultMsg struct {
	companyID int
	products  []api.Product
	err       error
}

type rolePermissionsResultMsg struct {
	companyID int
	records   []api.RolePermissionRecord
	err       error
}

type usersResultMsg struct {
	companyID int
	accounts  []api.AccountRecord
	err       error
}

type masterListResultMsg struct {
	companyID int
	response  *api.MasterListResponse
	err       error
}

// saveResultMsg reports any mutation endpoint finishing. A successful
// save triggers a refetch of the owning screen's data.
type saveResultMsg struct {
	companyID int
	what      string // "product", "user", "role", "category", "uom", "brand"
	err       error
}

type invoiceResultMsg struct {
	companyID int
	invoiceNo string
	err       error
}
