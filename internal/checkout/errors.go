package checkout

import "errors"

// User-facing validation messages are kept verbatim in French; handlers
// return them as-is.
var (
	ErrInvalidEmail         = errors.New("Veuillez entrer une adresse e-mail valide.")
	ErrMissingShippingField = errors.New("Tous les champs de livraison sont obligatoires.")
	ErrNoPaymentMethod      = errors.New("Aucun moyen de paiement sélectionné.")
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	IllegalTransitionError  = errors.New("illegal transition of checkout step")
)
