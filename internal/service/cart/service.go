package cart

import (
	"context"
	"errors"
	"strings"

	"grocerystore/internal/domain"
	cartrepo "grocerystore/internal/repository/cart"
)

// Service owns cart mutations for authenticated shoppers.
type Service struct {
	repo cartrepo.Repository
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's cart. A user who never added anything gets an
// empty cart rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{UserID: userID, Lines: []domain.CartLine{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("productId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if err := s.repo.AddLine(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Update overwrites a line's quantity; zero or negative removes the line.
func (s *Service) Update(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("productId required")
	}
	if err := s.repo.SetLineQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("productId required")
	}
	if err := s.repo.RemoveLine(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
