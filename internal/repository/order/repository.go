package order

import (
	"context"
	"time"

	"grocerystore/internal/domain"
)

// CreateFromCartInput drives the order-placement transaction.
type CreateFromCartInput struct {
	UserID           string
	ShippingAddress  string
	Phone            string
	PaymentMethod    string
	DeliveryFeeCents int64
}

// DeliveryPatch is a partial update of the delivery metadata. Nil fields
// are left untouched; non-nil fields overwrite, including explicit empty
// strings. ClearExpectedDelivery removes the stored date.
type DeliveryPatch struct {
	Partner               *string
	TrackingID            *string
	Notes                 *string
	ExpectedDelivery      *time.Time
	ClearExpectedDelivery bool
}

// UpdateInput patches status and/or delivery metadata of an order.
type UpdateInput struct {
	Status   *domain.OrderStatus
	Delivery *DeliveryPatch
}

type Repository interface {
	// CreateFromCart places an order from the user's current cart in a
	// single transaction: stock is conditionally decremented per product,
	// the order is written with unit prices snapshotted, and the cart is
	// cleared. On any failure nothing is written.
	CreateFromCart(ctx context.Context, in CreateFromCartInput) (*domain.Order, error)
	// ListByUser returns the user's orders newest first, items resolved.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// List returns all orders newest first with users and items resolved.
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Update applies a status/delivery patch and returns the order with
	// user and items resolved.
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error)
}
