package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Maeva109/FTHEARTIZONE/internal/backend"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

// Catalog is the slice of the backend client the read-only endpoints use.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ArtisanStats(ctx context.Context) (*backend.ArtisanStats, error)
	AdminStats(ctx context.Context, cookie string) (*backend.AdminStats, error)
	SubmitContact(ctx context.Context, name, email, message string) error
}

type CatalogHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewCatalogHandler(catalog Catalog, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "products_failed", "Erreur de chargement des produits.")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) ArtisanStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stats, err := h.catalog.ArtisanStats(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "stats_failed", "Erreur de chargement des statistiques.")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *CatalogHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	if !sess.Authenticated {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	stats, err := h.catalog.AdminStats(ctx, sess.Cookie)
	if err != nil {
		if backend.IsUnauthorized(err) {
			respondError(w, http.StatusForbidden, "forbidden", "accès refusé")
			return
		}
		respondError(w, http.StatusBadGateway, "stats_failed", "Erreur de chargement des statistiques.")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type ContactFormDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *CatalogHandler) Contact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ContactFormDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" ||
		!strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "invalid_form", "Veuillez remplir tous les champs correctement.")
		return
	}

	if err := h.catalog.SubmitContact(ctx, req.Name, req.Email, req.Message); err != nil {
		respondError(w, http.StatusBadGateway, "contact_failed", "Erreur lors de l'envoi du message.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Votre message a été envoyé avec succès."})
}
