package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

const (
	// storefront visitor cookie, minted on first contact
	sessionCookieName = "artizone_session"
	// backend auth cookie; its presence is what "authenticated" means here
	backendCookieName = "sessionid"
)

// SessionMiddleware resolves the visitor session from cookies and syncs the
// cart store with the observed authentication state, so a login fetches the
// cart exactly once and a logout clears it exactly once.
func SessionMiddleware(store *cart.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := domain.Session{}

			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				sess.ID = cookie.Value
			} else {
				sess.ID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if cookie, err := r.Cookie(backendCookieName); err == nil && cookie.Value != "" {
				sess.Cookie = cookie.Value
				sess.Authenticated = true
			}

			store.SyncAuth(r.Context(), sess)

			ctx := context.WithValue(r.Context(), "session", sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionFromContext(ctx context.Context) domain.Session {
	if sess, ok := ctx.Value("session").(domain.Session); ok {
		return sess
	}
	return domain.Session{}
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
