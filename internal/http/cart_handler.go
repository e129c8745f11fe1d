package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Maeva109/FTHEARTIZONE/internal/backend"
	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type CartHandler struct {
	store   *cart.Store
	timeout time.Duration
}

func NewCartHandler(store *cart.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CartResponseDTO struct {
	Items       []domain.CartItem   `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	Summary     domain.OrderSummary `json:"summary"`
}

func cartResponse(items []domain.CartItem, total float64) CartResponseDTO {
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponseDTO{
		Items:       items,
		TotalAmount: total,
		Summary:     domain.Summarize(items),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	result := h.store.Fetch(ctx, sess)
	if result.Status == cart.FetchFailed {
		respondError(w, http.StatusBadGateway, "cart_fetch_failed", "Erreur de chargement du panier.")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(result.Items, result.Total))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	if !sess.Authenticated {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	result, err := h.store.Add(ctx, sess, req.ProductID, req.Quantity)
	if err != nil {
		if backend.IsBusinessError(err) {
			respondError(w, http.StatusConflict, "rejected", err.Error())
			return
		}
		if backend.IsUnauthorized(err) {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
			return
		}
		respondError(w, http.StatusBadGateway, "cart_add_failed", "Erreur lors de l'ajout au panier.")
		return
	}
	if result.Status == cart.FetchFailed {
		respondError(w, http.StatusBadGateway, "cart_fetch_failed", "Erreur de chargement du panier.")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(result.Items, result.Total))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	h.store.Clear(sess)
	respondJSON(w, http.StatusOK, cartResponse(nil, 0))
}
