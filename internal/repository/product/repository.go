package product

import (
	"context"

	"grocerystore/internal/domain"
)

// ListFilter narrows the catalog listing. Zero values mean no filtering.
type ListFilter struct {
	Category string
	Search   string
}

// UpdateInput carries a partial product update. Nil fields are left
// untouched; non-nil fields overwrite, including explicit empty strings.
type UpdateInput struct {
	Name        *string
	Category    *string
	PriceCents  *int64
	Stock       *int
	Description *string
	ImageURL    *string
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
