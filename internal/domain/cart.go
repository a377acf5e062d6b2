package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"items"`
}

type CartLine struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalCents sums line subtotals at the current catalog prices of the
// resolved products. Lines without a resolved product count as zero.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.Lines {
		if line.Product != nil {
			total += line.Product.PriceCents * int64(line.Quantity)
		}
	}
	return total
}
