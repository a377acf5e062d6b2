package httpserver

import (
	"net/http"
	"testing"

	"grocerystore/internal/domain"
	catalogsvc "grocerystore/internal/service/catalog"
)

func TestListProductsPassesFilters(t *testing.T) {
	deps := testDeps()
	catalog := &stubCatalog{products: []domain.Product{{ID: "p1", Name: "Whole Milk"}}}
	deps.CatalogSvc = catalog
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products?category=Dairy&search=milk", "", nil)
	wantStatus(t, rec, http.StatusOK)

	if catalog.lastCategory != "Dairy" || catalog.lastSearch != "milk" {
		t.Fatalf("filters not forwarded: category=%q search=%q", catalog.lastCategory, catalog.lastSearch)
	}
	body := decodeBody(t, rec)
	products, ok := body["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("unexpected products payload: %v", body["products"])
	}
}

func TestListProductsEmptyIsArray(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	wantStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	if _, ok := body["products"].([]any); !ok {
		t.Fatalf("products must be a JSON array, got %v", body["products"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalog{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products/missing", "", nil)
	wantStatus(t, rec, http.StatusNotFound)
	wantMessage(t, rec, "Product not found")
}

func TestListCategories(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalog{categories: []domain.CategoryCount{{Category: "Dairy", Products: 3}}}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products/categories", "", nil)
	wantStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	categories, ok := body["categories"].([]any)
	if !ok || len(categories) != 1 {
		t.Fatalf("unexpected categories payload: %v", body["categories"])
	}
}

func TestAddProductRequiresAdmin(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products/add", testUserToken, map[string]any{
		"name": "Whole Milk",
	})
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestAddProductSuccess(t *testing.T) {
	deps := testDeps()
	catalog := &stubCatalog{product: &domain.Product{ID: "p1", Name: "Whole Milk"}}
	deps.CatalogSvc = catalog
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products/add", testAdminToken, map[string]any{
		"name":     "Whole Milk",
		"category": "Dairy",
		"price":    250,
		"stock":    40,
	})
	wantStatus(t, rec, http.StatusCreated)

	if catalog.lastCreate.Name != "Whole Milk" || catalog.lastCreate.Category != "Dairy" {
		t.Fatalf("unexpected create input: %+v", catalog.lastCreate)
	}
	if catalog.lastCreate.PriceCents == nil || *catalog.lastCreate.PriceCents != 250 {
		t.Fatalf("unexpected price: %+v", catalog.lastCreate.PriceCents)
	}
}

func TestAddProductInvalidInput(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalog{err: catalogsvc.ErrInvalidInput}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products/add", testAdminToken, map[string]any{
		"name": "Whole Milk",
	})
	wantStatus(t, rec, http.StatusBadRequest)
	wantMessage(t, rec, "Name, category, price, and stock are required")
}

func TestAddProductDuplicate(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalog{err: domain.ErrAlreadyExists}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products/add", testAdminToken, map[string]any{
		"name":     "Whole Milk",
		"category": "Dairy",
		"price":    250,
		"stock":    40,
	})
	wantStatus(t, rec, http.StatusBadRequest)
	wantMessage(t, rec, "Product already exists")
}

func TestUpdateProductPartialPatch(t *testing.T) {
	deps := testDeps()
	catalog := &stubCatalog{product: &domain.Product{ID: "p1", Name: "Whole Milk", Stock: 10}}
	deps.CatalogSvc = catalog
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPut, "/api/admin/products/p1", testAdminToken, map[string]any{
		"stock": 10,
	})
	wantStatus(t, rec, http.StatusOK)

	if catalog.lastUpdateID != "p1" {
		t.Fatalf("expected update of p1, got %q", catalog.lastUpdateID)
	}
	if catalog.lastUpdate.Stock == nil || *catalog.lastUpdate.Stock != 10 {
		t.Fatalf("unexpected stock patch: %+v", catalog.lastUpdate.Stock)
	}
	if catalog.lastUpdate.Name != nil {
		t.Fatal("absent name must decode as nil")
	}
}

func TestDeleteProduct(t *testing.T) {
	deps := testDeps()
	catalog := &stubCatalog{}
	deps.CatalogSvc = catalog
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodDelete, "/api/admin/products/p1", testAdminToken, nil)
	wantStatus(t, rec, http.StatusOK)
	wantMessage(t, rec, "Product deleted successfully")

	if catalog.deletedID != "p1" {
		t.Fatalf("expected delete of p1, got %q", catalog.deletedID)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	deps := testDeps()
	deps.Users = &stubUsers{users: []domain.User{{ID: "u1", Name: "Jane Doe"}}}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/users", "", nil)
	wantStatus(t, rec, http.StatusUnauthorized)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/users", testAdminToken, nil)
	wantStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	users, ok := body["users"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("unexpected users payload: %v", body["users"])
	}
}
