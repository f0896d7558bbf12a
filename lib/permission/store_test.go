// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import "testing"

func storeWithSample() *Store {
	store := NewStore()
	store.SetMatrix(Normalize([]ModuleRecord{
		{ModuleID: 1, ModuleName: "Product", ModuleRoute: "/products", SortOrder: 1, List: 1, Edit: 1, Print: 1},
		{ModuleID: 2, ModuleName: "Role", ModuleRoute: "roles", SortOrder: 2, Full: 1},
	}), 7)
	return store
}

func TestPermsForKnownModule(t *testing.T) {
	store := storeWithSample()

	flags := store.PermsFor("Product")
	if !flags.List || !flags.Edit || !flags.Print {
		t.Fatalf("PermsFor(Product) = %+v", flags)
	}
	if flags.Add || flags.Delete || flags.Cost || flags.Full {
		t.Fatalf("PermsFor(Product) granted flags it should not: %+v", flags)
	}
}

func TestPermsForUnknownModuleIsAllFalse(t *testing.T) {
	store := storeWithSample()
	if flags := store.PermsFor("Warehouse"); flags != (Flags{}) {
		t.Fatalf("PermsFor(unknown) = %+v, want all-false", flags)
	}
	// Empty store: still all-false, never panics.
	if flags := NewStore().PermsFor("Product"); flags != (Flags{}) {
		t.Fatalf("PermsFor on empty store = %+v", flags)
	}
}

func TestPermsForRouteIgnoresLeadingSlash(t *testing.T) {
	store := storeWithSample()

	withSlash := store.PermsForRoute("/products")
	withoutSlash := store.PermsForRoute("products")
	if withSlash != withoutSlash {
		t.Fatalf("route lookup differs by slash: %+v vs %+v", withSlash, withoutSlash)
	}
	if !withSlash.List {
		t.Fatalf("PermsForRoute(/products) = %+v", withSlash)
	}
}

func TestSetMatrixNotifiesSubscribersAndTracksCompany(t *testing.T) {
	store := NewStore()

	var seen []int
	store.Subscribe(func(matrix Matrix) { seen = append(seen, len(matrix)) })

	store.SetMatrix(Normalize([]ModuleRecord{{ModuleID: 1, ModuleName: "Product"}}), 2)
	if store.CompanyID() != 2 {
		t.Fatalf("CompanyID = %d, want 2", store.CompanyID())
	}
	store.Clear()
	if store.CompanyID() != 0 {
		t.Fatalf("CompanyID after Clear = %d", store.CompanyID())
	}

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 0 {
		t.Fatalf("subscriber saw %v, want [1 0]", seen)
	}
}
