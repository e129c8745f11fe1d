// Package payment simulates the method-specific payment gateways. A charge
// moves Form → Processing → Success: the form submit starts a timed
// processing delay, success clears the cart exactly once, and after a
// second delay the charge carries the home redirect.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
	"github.com/Maeva109/FTHEARTIZONE/internal/notify"
)

var (
	ErrProcessing         = errors.New("payment is already being processed")
	ErrNotAwaitingPayment = errors.New("checkout session is not at the payment step")
	ErrOrderChanged       = errors.New("Votre commande a été modifiée. Veuillez reprendre la commande.")
	ErrMissingCredentials = errors.New("Tous les champs de paiement sont obligatoires.")
)

// CartAccess is the slice of the cart store the simulator needs: a read of
// the priced items when the charge is created, a clear after success.
type CartAccess interface {
	Items(sessionID string) ([]domain.CartItem, float64)
	Clear(sess domain.Session)
}

// Flow is the slice of the checkout service the simulator needs. Get is the
// visitor-scoped read, so a charge can only be submitted against a checkout
// session the caller owns; Complete runs server-side after success.
type Flow interface {
	Get(ctx context.Context, sess domain.Session, id string) (*domain.CheckoutSession, error)
	Complete(ctx context.Context, id string) (*domain.CheckoutSession, error)
}

// Credentials are the method-specific form fields. Only presence is
// validated; no gateway sees them.
type Credentials struct {
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
}

func (c Credentials) validate(method domain.PaymentMethod) error {
	var required []string
	switch method {
	case domain.PaymentOrangeMoney, domain.PaymentMobileMoney:
		required = []string{c.Phone, c.Password}
	case domain.PaymentCard:
		required = []string{c.CardNumber, c.CardExpiry, c.CardCVV}
	default:
		return domain.ErrUnknownPaymentMethod
	}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrMissingCredentials
		}
	}
	return nil
}

// Charge is a payment attempt. Amount always equals Order.Summary.Total;
// Submit refuses the charge when the live cart no longer prices to the
// total fixed at the shipping step.
type Charge struct {
	CheckoutID    string               `json:"checkout_id"`
	Method        domain.PaymentMethod `json:"method"`
	Amount        float64              `json:"amount"`
	State         domain.PaymentState  `json:"state"`
	Order         domain.OrderSnapshot `json:"order"`
	TransactionID string               `json:"transaction_id,omitempty"`
	FailureReason string               `json:"failure_reason,omitempty"`
	RedirectTo    string               `json:"redirect_to,omitempty"`

	// visitor session that created the charge; status polls are scoped to it
	ownerID string
}

type Simulator struct {
	flow            Flow
	cart            CartAccess
	notifier        notify.Notifier
	outcome         OutcomeProvider
	processingDelay time.Duration
	redirectDelay   time.Duration
	retention       time.Duration

	mu      sync.Mutex
	charges map[string]*Charge

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulator builds a simulator. retention is how long a finished charge
// stays queryable after its terminal state before it is evicted; without
// eviction the charge map would grow for the life of the process.
func NewSimulator(flow Flow, cart CartAccess, notifier notify.Notifier, outcome OutcomeProvider, processingDelay, redirectDelay, retention time.Duration) *Simulator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Simulator{
		flow:            flow,
		cart:            cart,
		notifier:        notifier,
		outcome:         outcome,
		processingDelay: processingDelay,
		redirectDelay:   redirectDelay,
		retention:       retention,
		charges:         make(map[string]*Charge),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Close stops pending charge timers and waits for in-flight work.
func (s *Simulator) Close() {
	s.cancel()
	s.wg.Wait()
}

// Submit starts processing a charge for the checkout session. method must
// match the one chosen at the shipping step. Resubmitting while processing
// is rejected; resubmitting a finished charge returns the cached result, so
// a charge can never run twice.
func (s *Simulator) Submit(ctx context.Context, sess domain.Session, checkoutID string, method domain.PaymentMethod, creds Credentials) (Charge, error) {
	// a charge the caller already owns short-circuits: the checkout session
	// may have moved past the payment step by the time the UI resubmits
	if copied, ok := s.existing(sess.ID, checkoutID); ok {
		if copied.State.IsTerminal() {
			return copied, nil
		}
		return copied, ErrProcessing
	}

	session, err := s.flow.Get(ctx, sess, checkoutID)
	if err != nil {
		return Charge{}, err
	}
	if session.Step != domain.StepPayment || session.PaymentMethod != method {
		return Charge{}, ErrNotAwaitingPayment
	}
	if err := creds.validate(session.PaymentMethod); err != nil {
		return Charge{}, err
	}

	items, _ := s.cart.Items(sess.ID)
	order := domain.Snapshot(items, time.Now())
	if order.Summary.Total != session.Total {
		// the cart drifted since the shipping step priced the order
		return Charge{}, ErrOrderChanged
	}

	s.mu.Lock()
	if existing, ok := s.charges[checkoutID]; ok {
		copied := *existing
		s.mu.Unlock()
		if copied.State.IsTerminal() {
			return copied, nil
		}
		return copied, ErrProcessing
	}

	charge := &Charge{
		CheckoutID: checkoutID,
		Method:     session.PaymentMethod,
		Amount:     session.Total,
		State:      domain.PaymentStateProcessing,
		Order:      order,
		ownerID:    sess.ID,
	}
	s.charges[checkoutID] = charge
	copied := *charge
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(sess, session, charge)

	return copied, nil
}

func (s *Simulator) existing(sessionID, checkoutID string) (Charge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	charge, ok := s.charges[checkoutID]
	if !ok || charge.ownerID != sessionID {
		return Charge{}, false
	}
	return *charge, true
}

// Status reports the current state of a charge for UI polling. Only the
// session that submitted the charge can see it; anyone else gets the same
// answer as for a charge that does not exist.
func (s *Simulator) Status(sessionID, checkoutID string) (Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	charge, ok := s.charges[checkoutID]
	if !ok || charge.ownerID != sessionID {
		return Charge{}, fmt.Errorf("no charge for checkout %s", checkoutID)
	}
	return *charge, nil
}

// run drives the charge through its delays on the simulator's own context,
// so the cart still gets cleared when the submitting request goes away.
// Once the charge is terminal it stays queryable for the retention window,
// then leaves the map.
func (s *Simulator) run(sess domain.Session, session *domain.CheckoutSession, charge *Charge) {
	defer s.wg.Done()

	s.process(sess, session, charge)

	if !s.sleep(s.retention) {
		return
	}
	s.mu.Lock()
	delete(s.charges, charge.CheckoutID)
	s.mu.Unlock()
}

func (s *Simulator) process(sess domain.Session, session *domain.CheckoutSession, charge *Charge) {
	if !s.sleep(s.processingDelay) {
		return
	}

	outcome := s.outcome.Charge(charge.Method, charge.Amount)
	if !outcome.Approved {
		s.transition(charge, domain.PaymentStateFailed, func(c *Charge) {
			c.FailureReason = outcome.Reason
		})
		return
	}

	transitioned := s.transition(charge, domain.PaymentStateSuccess, func(c *Charge) {
		c.TransactionID = fmt.Sprintf("TXN-%d", time.Now().UnixNano())
	})
	if !transitioned {
		return
	}

	// The transition above happens at most once per charge, so the cart is
	// cleared exactly once.
	s.cart.Clear(sess)

	ctx, cancelComplete := context.WithTimeout(s.ctx, 5*time.Second)
	if _, err := s.flow.Complete(ctx, charge.CheckoutID); err != nil {
		log.Printf("failed to complete checkout %s: %v", charge.CheckoutID, err)
	}
	cancelComplete()

	ctx, cancelNotify := context.WithTimeout(s.ctx, 5*time.Second)
	event := notify.OrderCompletedEvent{
		CheckoutID:    charge.CheckoutID,
		UserID:        session.UserID,
		Email:         session.Email,
		PaymentMethod: charge.Method.String(),
		TotalAmount:   charge.Amount,
		Currency:      domain.Currency,
		CompletedAt:   time.Now(),
	}
	if err := s.notifier.OrderCompleted(ctx, event); err != nil {
		log.Printf("failed to publish order event for checkout %s: %v", charge.CheckoutID, err)
	}
	cancelNotify()

	if !s.sleep(s.redirectDelay) {
		return
	}
	s.mu.Lock()
	charge.RedirectTo = "/"
	s.mu.Unlock()
}

// sleep waits for d unless the simulator is closing. Reports whether the
// full delay elapsed.
func (s *Simulator) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Simulator) transition(charge *Charge, to domain.PaymentState, apply func(*Charge)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !domain.CanTransitionTo(charge.State, to) {
		return false
	}
	charge.State = to
	apply(charge)
	return true
}
