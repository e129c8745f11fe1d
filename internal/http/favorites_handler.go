package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Maeva109/FTHEARTIZONE/internal/favorites"
)

type FavoritesHandler struct {
	store   favorites.Store
	timeout time.Duration
}

func NewFavoritesHandler(store favorites.Store, timeout time.Duration) *FavoritesHandler {
	return &FavoritesHandler{
		store:   store,
		timeout: timeout,
	}
}

type ToggleFavoriteDTO struct {
	Kind favorites.Kind `json:"kind"`
	ID   int64          `json:"id"`
}

func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ToggleFavoriteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Kind.Valid() || req.ID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "kind must be product or artisan and id positive")
		return
	}

	sess := getSessionFromContext(r.Context())
	liked, err := h.store.Toggle(ctx, sess.ID, req.Kind, req.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"kind": req.Kind, "id": req.ID, "liked": liked})
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	kind := favorites.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = favorites.KindProduct
	}
	if !kind.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_request", "kind must be product or artisan")
		return
	}

	sess := getSessionFromContext(r.Context())
	ids, err := h.store.List(ctx, sess.ID, kind)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"kind": kind, "ids": ids})
}
