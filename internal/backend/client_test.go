package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestGetCart_ForwardsSessionCookie(t *testing.T) {
	var gotCookie string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("sessionid"); err == nil {
			gotCookie = cookie.Value
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": 1, "product": map[string]interface{}{"id": 10, "name": "Panier", "price": 1000.0}, "quantity": 2},
			},
		})
	})
	defer server.Close()

	items, err := client.GetCart(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotCookie)
	require.Len(t, items, 1)
	assert.Equal(t, int64(10), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestGetCart_EmptyCart(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	})
	defer server.Close()

	items, err := client.GetCart(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Insufficient stock"}`))
	})
	defer server.Close()

	err := client.AddToCart(context.Background(), "abc", 42, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "Stock insuffisant pour ce produit.", err.Error())
	assert.True(t, IsBusinessError(err))
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Product not found or inactive"}`))
	})
	defer server.Close()

	err := client.AddToCart(context.Background(), "abc", 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCart_UnrecognizedErrorPassesThrough(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Quota exceeded for today"}`))
	})
	defer server.Close()

	err := client.AddToCart(context.Background(), "abc", 42, 1)
	require.Error(t, err)
	assert.False(t, IsBusinessError(err))
	assert.Equal(t, "Quota exceeded for today", err.Error())
}

func TestAddToCart_SendsProductAndQuantity(t *testing.T) {
	var got addToCartRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := client.AddToCart(context.Background(), "abc", 42, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ProductID)
	assert.Equal(t, 3, got.Quantity)
}

func TestListProducts_BareArray(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Panier", "price": 1500}]`))
	})
	defer server.Close()

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Panier", products[0].Name)
}

func TestListProducts_ResultsEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": 1, "name": "Panier", "price": 1500}, {"id": 2, "name": "Masque", "price": 8000}]}`))
	})
	defer server.Close()

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestArtisanStats(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/artisans/stats/", r.URL.Path)
		w.Write([]byte(`{"artisans": 12, "regions": 4, "departments": 9, "products": 87}`))
	})
	defer server.Close()

	stats, err := client.ArtisanStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Artisans)
	assert.Equal(t, 87, stats.Products)
}

func TestAdminStats_Unauthorized(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "forbidden"}`))
	})
	defer server.Close()

	_, err := client.AdminStats(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestSubmitContact_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact/", r.URL.Path)
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := client.SubmitContact(context.Background(), "Awa", "awa@example.com", "Bonjour")
	assert.NoError(t, err)
}

func TestSubmitContact_ErrorPayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "invalid email"}`))
	})
	defer server.Close()

	err := client.SubmitContact(context.Background(), "Awa", "bad", "Bonjour")
	require.Error(t, err)
	assert.Equal(t, "invalid email", err.Error())
}
