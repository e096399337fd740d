package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/sweetshop/internal/shop"
)

func TestSubtotalLaw(t *testing.T) {
	s := NewStore()
	s.SetCart([]shop.CartLine{
		{ID: "1", Price: 500, Qty: 2},
		{ID: "2", Price: 1200, Qty: 1},
	})

	assert.Equal(t, 2200, s.CartSubtotal()) // $22.00
	assert.Equal(t, 3, s.CartCount())
}

func TestEmptyCartLaw(t *testing.T) {
	s := NewStore()

	assert.True(t, s.CartEmpty())
	assert.Equal(t, 0, s.CartCount())
	assert.Equal(t, 0, s.CartSubtotal())
}

func TestRemoveCartLineIsLocalOnly(t *testing.T) {
	s := NewStore()
	server := []shop.CartLine{
		{ID: "1", Price: 500, Qty: 2},
		{ID: "2", Price: 1200, Qty: 1},
	}
	s.SetCart(server)

	s.RemoveCartLine("1")
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, "2", s.Cart()[0].ID)

	// A refresh hands back the server's copy; the removed line returns.
	s.SetCart([]shop.CartLine{
		{ID: "1", Price: 500, Qty: 2},
		{ID: "2", Price: 1200, Qty: 1},
	})
	assert.Len(t, s.Cart(), 2)
}

func TestSingleDialogInvariant(t *testing.T) {
	s := NewStore()

	s.OpenDialog(DialogLogin)
	s.OpenDialog(DialogRegister)

	assert.Equal(t, DialogRegister, s.ActiveDialog())
}

func TestCloseDialogOnlyIfActive(t *testing.T) {
	s := NewStore()

	s.OpenDialog(DialogRegister)
	s.CloseDialog(DialogLogin)
	assert.Equal(t, DialogRegister, s.ActiveDialog())

	s.CloseDialog(DialogRegister)
	assert.Equal(t, DialogNone, s.ActiveDialog())
}

// overlayInvariantHolds checks overlay ⇔ (dialog open ∨ cart open).
func overlayInvariantHolds(s *Store) bool {
	want := s.ActiveDialog() != DialogNone || s.CartOpen()
	return s.OverlayVisible() == want
}

func TestOverlayInvariantAcrossTransitions(t *testing.T) {
	s := NewStore()
	s.SetUser(&shop.User{Username: "alice"})
	s.SetCart([]shop.CartLine{{ID: "1", Price: 100, Qty: 1}})

	steps := []struct {
		name string
		op   func()
	}{
		{"open login", func() { s.OpenDialog(DialogLogin) }},
		{"open cart", func() { require.NoError(t, s.ToggleCart()) }},
		{"close login", func() { s.CloseDialog(DialogLogin) }},
		{"open checkout", func() { s.OpenDialog(DialogCheckout) }},
		{"close cart", func() { s.CloseCart() }},
		{"close checkout", func() { s.CloseDialog(DialogCheckout) }},
		{"reopen cart", func() { s.OpenCart() }},
		{"open confirmation", func() { s.OpenDialog(DialogConfirmation) }},
		{"close confirmation", func() { s.CloseDialog(DialogConfirmation) }},
		{"toggle cart closed", func() { require.NoError(t, s.ToggleCart()) }},
	}

	for _, step := range steps {
		step.op()
		assert.True(t, overlayInvariantHolds(s), "after %s", step.name)
	}
}

func TestOverlayStaysWhileCartOpen(t *testing.T) {
	s := NewStore()
	s.SetCart([]shop.CartLine{{ID: "1", Price: 100, Qty: 1}})

	s.OpenCart()
	s.OpenDialog(DialogCheckout)
	s.CloseDialog(DialogCheckout)

	// Dialog gone, cart still open: backdrop must not disappear.
	assert.True(t, s.OverlayVisible())
	assert.True(t, s.CartOpen())
}

func TestCloseAllDialogsForcesOverlayOff(t *testing.T) {
	s := NewStore()
	s.SetCart([]shop.CartLine{{ID: "1", Price: 100, Qty: 1}})

	s.OpenCart()
	s.OpenDialog(DialogLogin)

	// CloseAllDialogs does not consult the cart drawer. Backdrop-click
	// paths pair it with CloseCart; on its own it force-hides.
	s.CloseAllDialogs()

	assert.Equal(t, DialogNone, s.ActiveDialog())
	assert.False(t, s.OverlayVisible())
	assert.True(t, s.CartOpen())
}

func TestToggleCartGuard(t *testing.T) {
	s := NewStore()

	// Anonymous with empty cart: redirected to login.
	err := s.ToggleCart()
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.False(t, s.CartOpen())

	// Authenticated with empty cart: drawer opens.
	s.SetUser(&shop.User{Username: "alice"})
	require.NoError(t, s.ToggleCart())
	assert.True(t, s.CartOpen())
	assert.True(t, s.OverlayVisible())

	// Anonymous with a non-empty cart: drawer still toggles.
	s.ClearUser()
	s.SetCart([]shop.CartLine{{ID: "1", Price: 100, Qty: 1}})
	require.NoError(t, s.ToggleCart())
	assert.False(t, s.CartOpen())
}

func TestProductLookup(t *testing.T) {
	s := NewStore()
	s.SetProducts([]shop.Product{
		{ID: "3", Name: "Cake", Stock: 4},
	})

	p, ok := s.Product("3")
	require.True(t, ok)
	assert.Equal(t, "Cake", p.Name)

	_, ok = s.Product("99")
	assert.False(t, ok)
}

func TestCatalogStatusLifecycle(t *testing.T) {
	s := NewStore()
	assert.Equal(t, CatalogLoading, s.CatalogStatus())

	s.SetProducts([]shop.Product{{ID: "1"}})
	assert.Equal(t, CatalogReady, s.CatalogStatus())

	s.SetCatalogStatus(CatalogError)
	assert.Equal(t, CatalogError, s.CatalogStatus())
}

func TestDialogString(t *testing.T) {
	assert.Equal(t, "none", DialogNone.String())
	assert.Equal(t, "login", DialogLogin.String())
	assert.Equal(t, "confirmation", DialogConfirmation.String())
}
