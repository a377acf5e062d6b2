package cart

import (
	"context"

	"grocerystore/internal/domain"
)

type Repository interface {
	// GetByUser returns the user's cart with lines resolved to products.
	// A user without a cart gets domain.ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddLine creates the cart on first use and accumulates quantity for
	// a product already in the cart.
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	// SetLineQuantity overwrites a line's quantity; quantity <= 0 removes
	// the line.
	SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveLine(ctx context.Context, userID, productID string) error
}
