package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grocerystore/internal/domain"
	productrepo "grocerystore/internal/repository/product"
)

const defaultImageURL = "https://via.placeholder.com/300"

// ErrInvalidInput marks admin payloads that fail validation.
var ErrInvalidInput = errors.New("invalid product input")

// Service owns catalog reads and admin product CRUD.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilter{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.repo.Categories(ctx)
}

// CreateInput mirrors the admin add-product payload. Price and stock are
// pointers so that a missing field is distinguishable from zero.
type CreateInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	PriceCents  *int64 `json:"price"`
	Stock       *int   `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" || in.PriceCents == nil || in.Stock == nil {
		return nil, fmt.Errorf("%w: name, category, price, and stock are required", ErrInvalidInput)
	}
	if *in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = defaultImageURL
	}

	return s.repo.Create(ctx, domain.Product{
		Name:        name,
		Category:    category,
		PriceCents:  *in.PriceCents,
		Stock:       *in.Stock,
		Description: in.Description,
		ImageURL:    image,
	})
}

// UpdateInput is a partial product update; nil fields stay untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	PriceCents  *int64  `json:"price"`
	Stock       *int    `json:"stock"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, productrepo.UpdateInput{
		Name:        in.Name,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
