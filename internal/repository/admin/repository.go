package admin

import (
	"context"

	"grocerystore/internal/domain"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}
