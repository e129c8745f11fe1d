package domain

import "time"

// Currency for all displayed amounts. The backend quotes prices in the same
// unit, integer-valued in practice.
const Currency = "FCFA"

// DeliveryFee is the flat delivery charge added to every order.
const DeliveryFee float64 = 2500

type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Delivery float64 `json:"delivery"`
	Total    float64 `json:"total"`
}

func Summarize(items []CartItem) OrderSummary {
	subtotal := TotalAmount(items)
	return OrderSummary{
		Subtotal: subtotal,
		Delivery: DeliveryFee,
		Total:    subtotal + DeliveryFee,
	}
}

type OrderSnapshotItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderSnapshot captures the cart contents and totals at the moment the
// shipping step hands off to a payment simulator, so the amount charged
// cannot change under the user mid-payment.
type OrderSnapshot struct {
	Items      []OrderSnapshotItem `json:"items"`
	Summary    OrderSummary        `json:"summary"`
	Currency   string              `json:"currency"`
	CapturedAt time.Time           `json:"captured_at"`
}

func Snapshot(items []CartItem, now time.Time) OrderSnapshot {
	snapshot := OrderSnapshot{
		Items:      make([]OrderSnapshotItem, 0, len(items)),
		Summary:    Summarize(items),
		Currency:   Currency,
		CapturedAt: now,
	}
	for _, item := range items {
		snapshot.Items = append(snapshot.Items, OrderSnapshotItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			Subtotal:    item.Subtotal(),
		})
	}
	return snapshot
}
