package domain

import "errors"

type PaymentMethod string

const (
	PaymentOrangeMoney PaymentMethod = "Orange Money"
	PaymentMobileMoney PaymentMethod = "Mobile Money"
	PaymentCard        PaymentMethod = "Carte Bancaire"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// ParsePaymentMethod accepts either the display name or the route slug.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case string(PaymentOrangeMoney), "orange-money":
		return PaymentOrangeMoney, nil
	case string(PaymentMobileMoney), "mobile-money":
		return PaymentMobileMoney, nil
	case string(PaymentCard), "carte-bancaire":
		return PaymentCard, nil
	}
	return "", ErrUnknownPaymentMethod
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentOrangeMoney, PaymentMobileMoney, PaymentCard:
		return true
	}
	return false
}

// Slug is the URL segment of the method-specific payment page.
func (m PaymentMethod) Slug() string {
	switch m {
	case PaymentOrangeMoney:
		return "orange-money"
	case PaymentMobileMoney:
		return "mobile-money"
	case PaymentCard:
		return "carte-bancaire"
	}
	return ""
}

func (m PaymentMethod) Route() string {
	return "/payment/" + m.Slug()
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentState is the simulator state machine. Failed only occurs with an
// outcome provider that refuses charges; the default provider approves
// everything.
type PaymentState string

const (
	PaymentStateForm       PaymentState = "FORM"
	PaymentStateProcessing PaymentState = "PROCESSING"
	PaymentStateSuccess    PaymentState = "SUCCESS"
	PaymentStateFailed     PaymentState = "FAILED"
)

func (s PaymentState) IsTerminal() bool {
	return s == PaymentStateSuccess || s == PaymentStateFailed
}

func CanTransitionTo(from, to PaymentState) bool {
	switch from {
	case PaymentStateForm:
		return to == PaymentStateProcessing
	case PaymentStateProcessing:
		return to == PaymentStateSuccess || to == PaymentStateFailed
	}
	return false
}

func (s PaymentState) String() string {
	return string(s)
}
