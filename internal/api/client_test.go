package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"username": "alice"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	user, err := c.Login(context.Background(), "alice", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	be, ok := AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, be.Status)
	assert.Equal(t, "Invalid credentials", be.Error())
}

func TestSessionCookieCarriedAcrossCalls(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login.php":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]string{"username": "alice"},
			})
		case "/get_cart.php":
			if c, err := r.Cookie("session"); err == nil && c.Value == "abc123" {
				sawCookie = true
			}
			json.NewEncoder(w).Encode(map[string]any{"ok": true, "cart": []any{}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	_, err = c.Cart(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "session cookie should ride on subsequent calls")
}

func TestProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api_products.php", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"products": []map[string]any{
				{"id": "1", "name": "Baklava", "category": "Pastry", "price": 599, "stock": 10, "image": "x.jpg"},
				{"id": "2", "name": "Brownie", "category": "Cake", "price": 450, "stock": 0, "image": "y.jpg"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	products, err := c.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 599, products[0].Price)
	assert.True(t, products[1].OutOfStock())
}

func TestProductsNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Products(context.Background())

	assert.ErrorIs(t, err, ErrNotOK)
}

func TestAddToCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/add_to_cart.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "3", r.PostForm.Get("product_id"))
		assert.Equal(t, "2", r.PostForm.Get("qty"))
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NoError(t, c.AddToCart(context.Background(), "3", 2))
}

func TestCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Alice", r.PostForm.Get("name"))
		json.NewEncoder(w).Encode(map[string]any{"order_total": 5000})
	}))
	defer srv.Close()

	c := New(srv.URL)
	total, err := c.Checkout(context.Background(), "Alice")

	require.NoError(t, err)
	assert.Equal(t, 5000, total)
}

func TestCheckoutFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Insufficient stock"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Checkout(context.Background(), "Alice")

	be, ok := AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, "Insufficient stock", be.Message)
}

func TestClientIDHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "01HZXC5M9QWERTY", r.Header.Get("X-Client-ID"))
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "cart": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, WithClientID("01HZXC5M9QWERTY"))
	_, err := c.Cart(context.Background())
	require.NoError(t, err)
}

func TestBaseTrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.Base())
}
