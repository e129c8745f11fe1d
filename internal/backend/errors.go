package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// The two error payloads the backend is known to emit for cart writes.
// Anything else is passed through verbatim.
const (
	msgInsufficientStock = "Insufficient stock"
	msgProductNotFound   = "Product not found or inactive"
)

var (
	ErrInsufficientStock = errors.New("Stock insuffisant pour ce produit.")
	ErrProductNotFound   = errors.New("Produit introuvable ou inactif.")
)

// APIError is a non-2xx response whose error string was not recognized.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

func decodeAPIError(statusCode int, body []byte) error {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = payload.Error
		if message == "" {
			message = payload.Detail
		}
	}

	switch message {
	case msgInsufficientStock:
		return ErrInsufficientStock
	case msgProductNotFound:
		return ErrProductNotFound
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsBusinessError reports whether err is one of the recognized backend
// business refusals, as opposed to a transport or server failure.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrProductNotFound)
}

// IsUnauthorized reports a credentialed call rejected by the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
