package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/state"
)

func TestLoadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"products": []map[string]any{
				{"id": "3", "name": "Dessert 3", "category": "Cakes", "price": 2500, "stock": 4, "image": "remote.jpg"},
				{"id": "9", "name": "Dessert 9", "category": "Waffles", "price": 850, "stock": 0, "image": "remote9.jpg"},
			},
		})
	}))
	defer srv.Close()

	store := state.NewStore()
	ctrl := New(store, api.New(srv.URL))

	require.NoError(t, ctrl.Load(context.Background()))

	assert.Equal(t, state.CatalogReady, store.CatalogStatus())
	products := store.Products()
	require.Len(t, products, 2)

	// Asset override renames known IDs.
	assert.Equal(t, "Cake", products[0].Name)
	assert.Equal(t, "Waffle", products[1].Name)

	// Out-of-stock derivation.
	assert.False(t, products[0].OutOfStock())
	assert.True(t, products[1].OutOfStock())
}

func TestLoadBackendNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	store := state.NewStore()
	ctrl := New(store, api.New(srv.URL))

	err := ctrl.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, state.CatalogError, store.CatalogStatus(),
		"failure must not leave a stale loading state")
}

func TestLoadNetworkError(t *testing.T) {
	store := state.NewStore()
	// Nothing listens here.
	ctrl := New(store, api.New("http://127.0.0.1:1"))

	var err error
	assert.NotPanics(t, func() { err = ctrl.Load(context.Background()) })
	require.Error(t, err)
	assert.Equal(t, state.CatalogError, store.CatalogStatus())
}

func TestLoadReplacesWholesale(t *testing.T) {
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count++
		if count == 1 {
			json.NewEncoder(w).Encode(map[string]any{
				"ok":       true,
				"products": []map[string]any{{"id": "1", "name": "A", "price": 1, "stock": 1}},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ok":       true,
			"products": []map[string]any{{"id": "2", "name": "B", "price": 2, "stock": 2}},
		})
	}))
	defer srv.Close()

	store := state.NewStore()
	ctrl := New(store, api.New(srv.URL))

	require.NoError(t, ctrl.Load(context.Background()))
	require.NoError(t, ctrl.Load(context.Background()))

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "2", products[0].ID)
}
