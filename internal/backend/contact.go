package backend

import (
	"context"
	"net/http"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact forwards a contact-form message. The backend replies with
// an empty object on success or {error} on refusal.
func (c *Client) SubmitContact(ctx context.Context, name, email, message string) error {
	body := contactRequest{Name: name, Email: email, Message: message}

	var resp struct {
		Error string `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/contact/", "", body, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return &APIError{StatusCode: http.StatusOK, Message: resp.Error}
	}
	return nil
}
