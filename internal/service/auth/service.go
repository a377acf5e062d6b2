package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"grocerystore/internal/domain"
	adminrepo "grocerystore/internal/repository/admin"
	tokenrepo "grocerystore/internal/repository/token"
	userrepo "grocerystore/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login flows for shoppers and admins.
type Service struct {
	users     userrepo.Repository
	admins    adminrepo.Repository
	tokens    *tokenManager
	accessTTL time.Duration
}

// New creates a Service. accessTTL <= 0 falls back to 7 days, matching the
// lifetime the storefront assumes.
func New(users userrepo.Repository, admins adminrepo.Repository, tokens tokenrepo.Repository, accessTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:     users,
		admins:    admins,
		tokens:    newTokenManager(tokens),
		accessTTL: accessTTL,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Signup registers a new shopper and issues an access token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	password := strings.TrimSpace(in.Password)
	address := strings.TrimSpace(in.Address)
	if name == "" || email == "" || password == "" || address == "" {
		return nil, "", errors.New("all fields are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Address:      address,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueUser(ctx, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login validates shopper credentials and returns an issued token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueUser(ctx, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// AdminLogin validates admin credentials and returns an issued token.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*domain.Admin, string, error) {
	a, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAdmin(ctx, a.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// LookupUser returns the shopper bound to a valid access token.
func (s *Service) LookupUser(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.ValidateUser(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// LookupAdmin returns the admin bound to a valid admin access token.
func (s *Service) LookupAdmin(ctx context.Context, token string) (*domain.Admin, error) {
	adminID, ok := s.tokens.ValidateAdmin(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	a, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return a, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
