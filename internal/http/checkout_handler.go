package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Maeva109/FTHEARTIZONE/internal/checkout"
	"github.com/Maeva109/FTHEARTIZONE/internal/checkout/repository"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type CheckoutHandler struct {
	service checkout.Service
	timeout time.Duration
}

func NewCheckoutHandler(service checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type ContactRequestDTO struct {
	Email string `json:"email"`
}

type ShippingRequestDTO struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

type ShippingResponseDTO struct {
	Session *domain.CheckoutSession `json:"session"`
	Route   string                  `json:"route"`
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	session, err := h.service.Start(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to start checkout")
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	session, err := h.service.Get(ctx, sess, chi.URLParam(r, "id"))
	if err != nil {
		h.respondFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess := getSessionFromContext(r.Context())
	session, err := h.service.SubmitContact(ctx, sess, chi.URLParam(r, "id"), req.Email)
	if err != nil {
		h.respondFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ShippingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess := getSessionFromContext(r.Context())
	info := domain.ShippingInfo{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}
	session, route, err := h.service.SubmitShipping(ctx, sess, chi.URLParam(r, "id"), info, req.PaymentMethod)
	if err != nil {
		h.respondFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ShippingResponseDTO{Session: session, Route: route})
}

// respondFlowError maps flow errors to HTTP statuses. Validation messages
// go out verbatim; the UI renders them inline or as a blocking alert.
func (h *CheckoutHandler) respondFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "checkout session not found")
	case errors.Is(err, checkout.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "invalid_email", err.Error())
	case errors.Is(err, checkout.ErrMissingShippingField):
		respondError(w, http.StatusBadRequest, "missing_field", err.Error())
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		respondError(w, http.StatusBadRequest, "no_payment_method", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "Votre panier est vide.")
	case errors.Is(err, checkout.IllegalTransitionError):
		respondError(w, http.StatusConflict, "illegal_transition", "cette étape n'est plus disponible")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
