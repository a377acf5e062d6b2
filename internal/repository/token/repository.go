package token

import (
	"context"
	"time"
)

// Kind values stored alongside tokens.
const (
	KindAccess      = "access"
	KindAdminAccess = "admin-access"
)

type Token struct {
	Token     string
	UserID    *string
	AdminID   *string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
