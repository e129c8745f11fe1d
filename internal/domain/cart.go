package domain

import "time"

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Shop  string  `json:"shop"`
}

type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

type Cart struct {
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalAmount is recomputed from scratch on every call so it can never
// drift from the item list.
func (c *Cart) TotalAmount() float64 {
	return TotalAmount(c.Items)
}

func TotalAmount(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// MergeDuplicates collapses lines that share a product id into a single line
// with the summed quantity. The backend does not merge duplicate additions,
// so the storefront normalizes on every fetch. Order of first appearance is
// preserved.
func MergeDuplicates(items []CartItem) []CartItem {
	if len(items) < 2 {
		return items
	}
	merged := make([]CartItem, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if pos, ok := index[item.Product.ID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.Product.ID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
