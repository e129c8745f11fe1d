package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Maeva109/FTHEARTIZONE/internal/checkout/repository"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
	"github.com/Maeva109/FTHEARTIZONE/internal/payment"
)

type PaymentHandler struct {
	simulator *payment.Simulator
	timeout   time.Duration
}

func NewPaymentHandler(simulator *payment.Simulator, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		simulator: simulator,
		timeout:   timeout,
	}
}

func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	method, err := domain.ParsePaymentMethod(chi.URLParam(r, "method"))
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown_method", "Aucun moyen de paiement sélectionné.")
		return
	}

	var creds payment.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess := getSessionFromContext(r.Context())
	charge, err := h.simulator.Submit(ctx, sess, chi.URLParam(r, "id"), method, creds)
	if err != nil {
		h.respondPaymentError(w, charge, err)
		return
	}
	respondJSON(w, http.StatusAccepted, charge)
}

func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	charge, err := h.simulator.Status(sess.ID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "no payment in progress for this checkout")
		return
	}
	respondJSON(w, http.StatusOK, charge)
}

func (h *PaymentHandler) respondPaymentError(w http.ResponseWriter, charge payment.Charge, err error) {
	switch {
	case errors.Is(err, payment.ErrProcessing):
		// the UI is already on the processing screen; give it the state
		respondJSON(w, http.StatusConflict, charge)
	case errors.Is(err, payment.ErrMissingCredentials):
		respondError(w, http.StatusBadRequest, "missing_credentials", err.Error())
	case errors.Is(err, payment.ErrNotAwaitingPayment):
		respondError(w, http.StatusConflict, "not_awaiting_payment", "cette commande n'attend pas de paiement")
	case errors.Is(err, payment.ErrOrderChanged):
		respondError(w, http.StatusConflict, "order_changed", err.Error())
	case errors.Is(err, repository.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "checkout session not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
