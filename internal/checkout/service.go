// Package checkout drives the four-step flow: Contact → Shipping → Payment
// → Confirmation. Steps only advance forward; each submit validates its own
// fields before anything is persisted.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	r "github.com/Maeva109/FTHEARTIZONE/internal/checkout/repository"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

// CartProvider is the slice of the cart store the flow needs to price an
// order at the shipping step.
type CartProvider interface {
	Fetch(ctx context.Context, sess domain.Session) cart.FetchResult
}

type Service interface {
	Start(ctx context.Context, sess domain.Session) (*domain.CheckoutSession, error)
	Get(ctx context.Context, sess domain.Session, id string) (*domain.CheckoutSession, error)
	SubmitContact(ctx context.Context, sess domain.Session, id, email string) (*domain.CheckoutSession, error)
	SubmitShipping(ctx context.Context, sess domain.Session, id string, info domain.ShippingInfo, method string) (*domain.CheckoutSession, string, error)
	Complete(ctx context.Context, id string) (*domain.CheckoutSession, error)
}

type ServiceImpl struct {
	repo r.SessionRepository
	cart CartProvider
}

func NewService(repo r.SessionRepository, cart CartProvider) *ServiceImpl {
	return &ServiceImpl{
		repo: repo,
		cart: cart,
	}
}

func (s *ServiceImpl) Start(ctx context.Context, sess domain.Session) (*domain.CheckoutSession, error) {
	now := time.Now()
	session := &domain.CheckoutSession{
		ID:        uuid.NewString(),
		UserID:    sess.ID,
		Step:      domain.StepContact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session, nil
}

// Get returns the checkout session if the caller owns it. Checkout ids are
// guessable in principle, so a session is only visible to the visitor that
// started it; everyone else gets not-found.
func (s *ServiceImpl) Get(ctx context.Context, sess domain.Session, id string) (*domain.CheckoutSession, error) {
	return s.load(ctx, sess, id)
}

// SubmitContact validates the email, persists it for the order confirmation
// and advances to the shipping step. Invalid input leaves the step where it
// was.
func (s *ServiceImpl) SubmitContact(ctx context.Context, sess domain.Session, id, email string) (*domain.CheckoutSession, error) {
	session, err := s.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return session, ErrInvalidEmail
	}

	if !session.Step.CanAdvanceTo(domain.StepShipping) {
		return session, IllegalTransitionError
	}

	session.Email = email
	session.Step = domain.StepShipping
	session.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitShipping validates the delivery fields, resolves the payment method
// (falling back to the persisted one when the caller carries none), prices
// the order from the live cart and advances to the payment step. The
// returned route is the method-specific payment page.
func (s *ServiceImpl) SubmitShipping(ctx context.Context, sess domain.Session, id string, info domain.ShippingInfo, method string) (*domain.CheckoutSession, string, error) {
	session, err := s.load(ctx, sess, id)
	if err != nil {
		return nil, "", err
	}

	if err := validateShipping(info); err != nil {
		return session, "", err
	}

	resolved, err := resolveMethod(method, session.PaymentMethod)
	if err != nil {
		return session, "", err
	}

	if !session.Step.CanAdvanceTo(domain.StepPayment) {
		return session, "", IllegalTransitionError
	}

	result := s.cart.Fetch(ctx, sess)
	if result.Status == cart.FetchFailed {
		return session, "", fmt.Errorf("failed to load cart: %w", result.Err)
	}
	if result.Status == cart.FetchEmpty {
		return session, "", ErrEmptyCart
	}

	session.PaymentMethod = resolved
	session.Shipping = info
	session.Total = domain.Summarize(result.Items).Total
	session.Step = domain.StepPayment
	session.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, "", err
	}

	route := resolved.Route() + "/" + session.ID
	return session, route, nil
}

// Complete moves the session into its terminal state after the simulator
// reports success.
func (s *ServiceImpl) Complete(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Step.CanAdvanceTo(domain.StepConfirmation) {
		return session, IllegalTransitionError
	}

	session.Step = domain.StepConfirmation
	session.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// load fetches a session and enforces ownership. A mismatch is reported as
// not-found so probing ids reveals nothing.
func (s *ServiceImpl) load(ctx context.Context, sess domain.Session, id string) (*domain.CheckoutSession, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != sess.ID {
		return nil, r.ErrSessionNotFound
	}
	return session, nil
}

func validateShipping(info domain.ShippingInfo) error {
	fields := []string{info.Name, info.Address, info.City, info.Phone}
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return ErrMissingShippingField
		}
	}
	return nil
}

// resolveMethod prefers the value carried by the caller, falls back to the
// one persisted earlier in the flow, and rejects everything else.
func resolveMethod(carried string, persisted domain.PaymentMethod) (domain.PaymentMethod, error) {
	if carried == "" {
		if persisted.Valid() {
			return persisted, nil
		}
		return "", ErrNoPaymentMethod
	}
	method, err := domain.ParsePaymentMethod(carried)
	if err != nil {
		return "", ErrNoPaymentMethod
	}
	return method, nil
}
