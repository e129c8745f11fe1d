package domain

import "time"

// CheckoutStep is the position in the four-step checkout flow. Steps only
// move forward, one at a time.
type CheckoutStep int

const (
	StepContact      CheckoutStep = 1
	StepShipping     CheckoutStep = 2
	StepPayment      CheckoutStep = 3
	StepConfirmation CheckoutStep = 4
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepConfirmation
}

// CanAdvanceTo permits only the immediate successor step.
func (s CheckoutStep) CanAdvanceTo(next CheckoutStep) bool {
	return next == s+1 && next <= StepConfirmation
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	switch s {
	case StepContact:
		return "CONTACT"
	case StepShipping:
		return "SHIPPING"
	case StepPayment:
		return "PAYMENT"
	case StepConfirmation:
		return "CONFIRMATION"
	}
	return "UNKNOWN"
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// CheckoutSession carries everything the flow needs across page
// transitions. Email and payment method are persisted so a reload inside
// the flow does not lose them.
type CheckoutSession struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Email         string        `json:"email"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Step          CheckoutStep  `json:"step"`
	Shipping      ShippingInfo  `json:"shipping"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Session identifies a storefront visitor. Cookie is the backend session
// cookie forwarded on credentialed calls; it is empty for guests.
type Session struct {
	ID            string
	Cookie        string
	Authenticated bool
}
