package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

// ListProducts fetches the catalog. The backend returns either a bare array
// or a paginated {results: [...]} envelope depending on the view; both
// shapes are accepted.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/", "", nil, &raw); err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var envelope struct {
		Results []domain.Product `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return envelope.Results, nil
}

type ArtisanStats struct {
	Artisans    int `json:"artisans"`
	Regions     int `json:"regions"`
	Departments int `json:"departments"`
	Products    int `json:"products"`
}

func (c *Client) ArtisanStats(ctx context.Context) (*ArtisanStats, error) {
	var stats ArtisanStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/artisans/stats/", "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type AdminStats struct {
	Artisans        int `json:"artisans"`
	Clients         int `json:"clients"`
	Products        int `json:"products"`
	Orders          int `json:"orders"`
	PendingPayments int `json:"pending_payments"`
	OpenDisputes    int `json:"open_disputes"`
}

func (c *Client) AdminStats(ctx context.Context, cookie string) (*AdminStats, error) {
	var stats AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/stats/", cookie, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
