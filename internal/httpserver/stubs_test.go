package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"grocerystore/internal/domain"
	authsvc "grocerystore/internal/service/auth"
	catalogsvc "grocerystore/internal/service/catalog"
	ordersvc "grocerystore/internal/service/order"
	"github.com/gin-gonic/gin"
)

const (
	testUserToken  = "user-token"
	testAdminToken = "admin-token"
)

var (
	testUser  = &domain.User{ID: "u1", Name: "Jane Doe", Email: "jane@example.com"}
	testAdmin = &domain.Admin{ID: "a1", Name: "Admin User", Email: "admin@grocerystore.com"}
)

type stubAuth struct {
	signupUser *domain.User
	signupErr  error
	loginUser  *domain.User
	loginErr   error
	adminErr   error
}

func (s *stubAuth) Signup(_ context.Context, _ authsvc.SignupInput) (*domain.User, string, error) {
	if s.signupErr != nil {
		return nil, "", s.signupErr
	}
	return s.signupUser, "fresh-token", nil
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.loginUser, "fresh-token", nil
}

func (s *stubAuth) AdminLogin(_ context.Context, _, _ string) (*domain.Admin, string, error) {
	if s.adminErr != nil {
		return nil, "", s.adminErr
	}
	return testAdmin, "fresh-admin-token", nil
}

func (s *stubAuth) LookupUser(_ context.Context, token string) (*domain.User, error) {
	if token == testUserToken {
		return testUser, nil
	}
	return nil, authsvc.ErrInvalidToken
}

func (s *stubAuth) LookupAdmin(_ context.Context, token string) (*domain.Admin, error) {
	if token == testAdminToken {
		return testAdmin, nil
	}
	return nil, authsvc.ErrInvalidToken
}

type stubCatalog struct {
	products   []domain.Product
	product    *domain.Product
	categories []domain.CategoryCount
	err        error

	lastCategory string
	lastSearch   string
	lastCreate   catalogsvc.CreateInput
	lastUpdateID string
	lastUpdate   catalogsvc.UpdateInput
	deletedID    string
}

func (s *stubCatalog) List(_ context.Context, category, search string) ([]domain.Product, error) {
	s.lastCategory, s.lastSearch = category, search
	return s.products, s.err
}

func (s *stubCatalog) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalog) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	return s.categories, s.err
}

func (s *stubCatalog) Create(_ context.Context, in catalogsvc.CreateInput) (*domain.Product, error) {
	s.lastCreate = in
	return s.product, s.err
}

func (s *stubCatalog) Update(_ context.Context, id string, in catalogsvc.UpdateInput) (*domain.Product, error) {
	s.lastUpdateID, s.lastUpdate = id, in
	return s.product, s.err
}

func (s *stubCatalog) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

type stubCart struct {
	cart *domain.Cart
	err  error

	lastProductID string
	lastQuantity  int
}

func (s *stubCart) Get(_ context.Context, userID string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCart) Add(_ context.Context, _, productID string, quantity int) (*domain.Cart, error) {
	s.lastProductID, s.lastQuantity = productID, quantity
	return s.cart, s.err
}

func (s *stubCart) Update(_ context.Context, _, productID string, quantity int) (*domain.Cart, error) {
	s.lastProductID, s.lastQuantity = productID, quantity
	return s.cart, s.err
}

func (s *stubCart) Remove(_ context.Context, _, productID string) (*domain.Cart, error) {
	s.lastProductID = productID
	return s.cart, s.err
}

type stubOrders struct {
	order  *domain.Order
	orders []domain.Order
	err    error

	lastUserID   string
	lastPlace    ordersvc.PlaceInput
	lastUpdateID string
	lastUpdate   ordersvc.UpdateInput
}

func (s *stubOrders) Place(_ context.Context, userID string, in ordersvc.PlaceInput) (*domain.Order, error) {
	s.lastUserID, s.lastPlace = userID, in
	return s.order, s.err
}

func (s *stubOrders) History(_ context.Context, userID string) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.orders, s.err
}

func (s *stubOrders) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrders) Update(_ context.Context, id string, in ordersvc.UpdateInput) (*domain.Order, error) {
	s.lastUpdateID, s.lastUpdate = id, in
	return s.order, s.err
}

type stubUsers struct {
	users []domain.User
	err   error
}

func (s *stubUsers) List(_ context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func testDeps() Deps {
	return Deps{
		AuthSvc:    &stubAuth{signupUser: testUser, loginUser: testUser},
		CatalogSvc: &stubCatalog{},
		CartSvc:    &stubCart{cart: &domain.Cart{UserID: "u1", Lines: []domain.CartLine{}}},
		OrderSvc:   &stubOrders{},
		Users:      &stubUsers{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return buildRouter(log.New(io.Discard, "", 0), nil, deps)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected status %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

func wantMessage(t *testing.T, rec *httptest.ResponseRecorder, message string) {
	t.Helper()
	body := decodeBody(t, rec)
	if got, _ := body["message"].(string); got != message {
		t.Fatalf("expected message %q, got %q", message, got)
	}
}
