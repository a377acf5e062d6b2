package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"grocerystore/internal/domain"
	orderrepo "grocerystore/internal/repository/order"
)

const defaultPaymentMethod = "cod"

// ErrInvalidDeliveryDate marks an expectedDelivery value that parses as
// neither RFC 3339 nor YYYY-MM-DD.
var ErrInvalidDeliveryDate = errors.New("invalid expectedDelivery date")

// Service orchestrates order placement, history and admin order updates.
// The placement itself is transactional inside the repository; this layer
// owns request validation and patch parsing.
type Service struct {
	repo             orderrepo.Repository
	deliveryFeeCents int64
}

func New(repo orderrepo.Repository, deliveryFeeCents int64) *Service {
	return &Service{repo: repo, deliveryFeeCents: deliveryFeeCents}
}

// PlaceInput mirrors the order-create payload.
type PlaceInput struct {
	ShippingAddress string `json:"shippingAddress"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"paymentMethod"`
}

// Place creates an order from the user's current cart, or fails without
// mutating any state.
func (s *Service) Place(ctx context.Context, userID string, in PlaceInput) (*domain.Order, error) {
	address := strings.TrimSpace(in.ShippingAddress)
	phone := strings.TrimSpace(in.Phone)
	if address == "" || phone == "" {
		return nil, errors.New("shipping address and phone are required")
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = defaultPaymentMethod
	}

	return s.repo.CreateFromCart(ctx, orderrepo.CreateFromCartInput{
		UserID:           userID,
		ShippingAddress:  address,
		Phone:            phone,
		PaymentMethod:    payment,
		DeliveryFeeCents: s.deliveryFeeCents,
	})
}

// History returns the user's orders newest first with products resolved.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every order for the admin dashboard, newest first, with
// users and products resolved.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// DeliveryInput is the incoming deliveryDetails patch. Nil fields are
// absent; explicit empty strings overwrite. An empty expectedDelivery
// clears the stored date.
type DeliveryInput struct {
	Partner          *string `json:"partner"`
	TrackingID       *string `json:"trackingId"`
	Notes            *string `json:"deliveryNotes"`
	ExpectedDelivery *string `json:"expectedDelivery"`
}

// UpdateInput patches an order's status and/or delivery metadata.
type UpdateInput struct {
	Status   *string        `json:"status"`
	Delivery *DeliveryInput `json:"deliveryDetails"`
}

// Update validates the patch and applies it. Status transitions are not
// restricted: the dashboard may move an order backwards.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error) {
	var patch orderrepo.UpdateInput

	if in.Status != nil {
		status := domain.OrderStatus(strings.TrimSpace(*in.Status))
		if !domain.ValidOrderStatus(status) {
			return nil, domain.ErrInvalidStatus
		}
		patch.Status = &status
	}

	if in.Delivery != nil {
		delivery := &orderrepo.DeliveryPatch{
			Partner:    in.Delivery.Partner,
			TrackingID: in.Delivery.TrackingID,
			Notes:      in.Delivery.Notes,
		}
		if in.Delivery.ExpectedDelivery != nil {
			raw := strings.TrimSpace(*in.Delivery.ExpectedDelivery)
			if raw == "" {
				delivery.ClearExpectedDelivery = true
			} else {
				parsed, err := parseDeliveryDate(raw)
				if err != nil {
					return nil, err
				}
				delivery.ExpectedDelivery = &parsed
			}
		}
		patch.Delivery = delivery
	}

	return s.repo.Update(ctx, id, patch)
}

func parseDeliveryDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDeliveryDate
}
