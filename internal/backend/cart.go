package backend

import (
	"context"
	"net/http"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// GetCart reads the authenticated user's cart. The backend answers an empty
// item list for unauthenticated sessions; distinguishing guest from failure
// is the caller's job via the returned error.
func (c *Client) GetCart(ctx context.Context, cookie string) ([]domain.CartItem, error) {
	var resp cartResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/cart/", cookie, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddToCart writes a product/quantity line to the remote cart. Recognized
// business refusals come back as ErrInsufficientStock or ErrProductNotFound.
func (c *Client) AddToCart(ctx context.Context, cookie string, productID int64, quantity int) error {
	body := addToCartRequest{ProductID: productID, Quantity: quantity}
	return c.doJSON(ctx, http.MethodPost, "/api/cart/", cookie, body, nil)
}
