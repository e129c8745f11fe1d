package payment

import (
	"math/rand"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type Outcome struct {
	Approved bool
	Reason   string
}

type OutcomeProvider interface {
	Charge(method domain.PaymentMethod, amount float64) Outcome
}

// AlwaysApprove is the wired provider: every submission eventually
// succeeds, matching the storefront's simulated gateways.
type AlwaysApprove struct{}

func (AlwaysApprove) Charge(domain.PaymentMethod, float64) Outcome {
	return Outcome{Approved: true}
}

// RandomOutcome refuses a small share of charges, for exercising the
// failure path.
type RandomOutcome struct{}

func (RandomOutcome) Charge(domain.PaymentMethod, float64) Outcome {
	randomInt := rand.Intn(101) // 101 because Intn is exclusive of the upper bound
	return calcOutcome(randomInt)
}

func calcOutcome(randomInt int) Outcome {
	if randomInt < 95 {
		return Outcome{Approved: true}
	}
	reasons := []string{
		"Solde insuffisant.",
		"Compte bloqué.",
		"Délai de confirmation dépassé.",
		"Carte expirée.",
		"Paiement refusé par l'opérateur.",
		"unknown reason",
	}
	return Outcome{Approved: false, Reason: reasons[(randomInt-95)%len(reasons)]}
}
