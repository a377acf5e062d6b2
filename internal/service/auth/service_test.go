package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"grocerystore/internal/domain"
	tokenrepo "grocerystore/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type memoryUsers struct {
	byID    map[string]domain.User
	byEmail map[string]string
	seq     int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]domain.User{}, byEmail: map[string]string{}}
}

func (m *memoryUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, exists := m.byEmail[u.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	u.CreatedAt = time.Now()
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

type memoryAdmins struct {
	admins map[string]domain.Admin
}

func (m *memoryAdmins) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryAdmins) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

type memoryTokens struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{tokens: map[string]tokenrepo.Token{}}
}

func (m *memoryTokens) Create(_ context.Context, t tokenrepo.Token) error {
	if _, exists := m.tokens[t.Token]; exists {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memoryTokens) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memoryTokens) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryUsers, *memoryTokens) {
	t.Helper()
	users := newMemoryUsers()
	tokens := newMemoryTokens()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	admins := &memoryAdmins{admins: map[string]domain.Admin{
		"a1": {ID: "a1", Name: "Admin User", Email: "admin@grocerystore.com", PasswordHash: string(hash)},
	}}
	return New(users, admins, tokens, time.Hour), users, tokens
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Signup(ctx, SignupInput{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "hunter22",
		Address:  "12 Main St",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatal("signup must issue a token")
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email must be lowercased, got %q", u.Email)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password must be hashed")
	}

	got, err := svc.LookupUser(ctx, token)
	if err != nil {
		t.Fatalf("lookup with fresh token: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("token resolved to %q, want %q", got.ID, u.ID)
	}

	if _, _, err := svc.Login(ctx, "jane@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Signup(context.Background(), SignupInput{Name: "Jane", Email: "jane@example.com"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	in := SignupInput{Name: "Jane", Email: "jane@example.com", Password: "hunter22", Address: "12 Main St"}
	if _, _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, _, err := svc.Signup(ctx, in)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "hunter22", Address: "12 Main St",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, _, err := svc.Login(ctx, "jane@example.com", "not-it")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must map to ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLoginAndLookup(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	admin, token, err := svc.AdminLogin(ctx, "admin@grocerystore.com", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.ID != "a1" || token == "" {
		t.Fatalf("unexpected admin login result: %+v token=%q", admin, token)
	}

	got, err := svc.LookupAdmin(ctx, token)
	if err != nil || got.ID != "a1" {
		t.Fatalf("lookup admin: %v %+v", err, got)
	}

	// Admin tokens must not authenticate shopper endpoints.
	if _, err := svc.LookupUser(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("admin token accepted as user token: %v", err)
	}
}

func TestUserTokenRejectedAsAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "hunter22", Address: "12 Main St",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.LookupAdmin(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("user token accepted as admin token: %v", err)
	}
}

func TestExpiredTokenIsRejectedAndDeleted(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "hunter22", Address: "12 Main St",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	stored := tokens.tokens[token]
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	tokens.tokens[token] = stored

	if _, err := svc.LookupUser(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
	if _, exists := tokens.tokens[token]; exists {
		t.Fatal("expired token must be deleted on validation")
	}
}

func TestLookupUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.LookupUser(context.Background(), "bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
