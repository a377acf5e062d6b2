package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	User            *User            `json:"user,omitempty"`
	Items           []OrderItem      `json:"items"`
	TotalCents      int64            `json:"totalCents"`
	ShippingAddress string           `json:"shippingAddress"`
	Phone           string           `json:"phone"`
	PaymentMethod   string           `json:"paymentMethod"`
	Status          OrderStatus      `json:"status"`
	Delivery        *DeliveryDetails `json:"deliveryDetails,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// OrderItem snapshots quantity and unit price at the time the order was
// placed. Product is resolved for display and may lag the snapshot price.
type OrderItem struct {
	ID             string   `json:"id"`
	OrderID        string   `json:"orderId"`
	ProductID      string   `json:"productId"`
	Quantity       int      `json:"quantity"`
	UnitPriceCents int64    `json:"priceCents"`
	Product        *Product `json:"product,omitempty"`
}

type DeliveryDetails struct {
	Partner          string     `json:"partner,omitempty"`
	TrackingID       string     `json:"trackingId,omitempty"`
	Notes            string     `json:"deliveryNotes,omitempty"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	LastUpdated      *time.Time `json:"lastUpdated,omitempty"`
}

// Empty reports whether no delivery field has ever been set.
func (d *DeliveryDetails) Empty() bool {
	return d == nil || (d.Partner == "" && d.TrackingID == "" && d.Notes == "" &&
		d.ExpectedDelivery == nil && d.LastUpdated == nil)
}
