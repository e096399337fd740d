// Package state holds the shared storefront state and the rules for
// mutating it.
//
// One Store exists per process. Controllers and the UI never write its
// fields directly; every mutation goes through a named operation so
// the visibility and cart invariants stay in one place. Rendering is a
// pure function of a Snapshot.
package state

import (
	"errors"
	"sync"

	"github.com/joss/sweetshop/internal/shop"
)

// ErrLoginRequired is returned by guarded operations when no session
// is active. Callers surface the login dialog in response.
var ErrLoginRequired = errors.New("Please login first")

// Dialog identifies the single modal panel that may be open.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogLogin
	DialogRegister
	DialogCheckout
	DialogConfirmation
)

// String returns the dialog name for logs.
func (d Dialog) String() string {
	switch d {
	case DialogLogin:
		return "login"
	case DialogRegister:
		return "register"
	case DialogCheckout:
		return "checkout"
	case DialogConfirmation:
		return "confirmation"
	default:
		return "none"
	}
}

// CatalogStatus tracks the catalog load lifecycle so the grid can show
// a loading or error placeholder instead of stale content.
type CatalogStatus int

const (
	CatalogLoading CatalogStatus = iota
	CatalogReady
	CatalogError
)

// Store is the process-wide storefront state.
type Store struct {
	mu sync.Mutex

	user     *shop.User
	cart     []shop.CartLine
	products []shop.Product
	catalog  CatalogStatus

	activeDialog Dialog
	cartOpen     bool
	overlay      bool
}

// NewStore returns an empty anonymous store with the catalog marked
// loading (the grid shows its placeholder until the first load lands).
func NewStore() *Store {
	return &Store{catalog: CatalogLoading}
}

// ── Session ──

// User returns the current session user, or nil when anonymous.
func (s *Store) User() *shop.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser adopts a user record as the current session.
func (s *Store) SetUser(u *shop.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// ClearUser drops the session, leaving the store anonymous.
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// ── Cart ──

// Cart returns a copy of the cached cart lines in server order.
func (s *Store) Cart() []shop.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shop.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// SetCart replaces the cached cart with the server's authoritative copy.
func (s *Store) SetCart(lines []shop.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = lines
}

// RemoveCartLine filters a line out of the cached cart only. The
// server still holds the line; the next SetCart from a refresh will
// bring it back. Addition is server-confirmed, removal is not.
func (s *Store) RemoveCartLine(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, l := range s.cart {
		if l.ID != productID {
			kept = append(kept, l)
		}
	}
	s.cart = kept
}

// ClearCart empties the cached cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// CartCount returns the badge number: total quantity across lines.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shop.CartCount(s.cart)
}

// CartSubtotal returns the cart subtotal in minor units.
func (s *Store) CartSubtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shop.CartSubtotal(s.cart)
}

// CartEmpty reports whether the cached cart has no lines.
func (s *Store) CartEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart) == 0
}

// ── Catalog ──

// Products returns a copy of the loaded catalog.
func (s *Store) Products() []shop.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shop.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks up a catalog entry by ID.
func (s *Store) Product(id string) (shop.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return shop.Product{}, false
}

// SetProducts replaces the catalog and marks it ready.
func (s *Store) SetProducts(products []shop.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.catalog = CatalogReady
}

// SetCatalogStatus marks the catalog loading or failed.
func (s *Store) SetCatalogStatus(st CatalogStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = st
}

// CatalogStatus returns the catalog load lifecycle state.
func (s *Store) CatalogStatus() CatalogStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// ── Dialogs and overlay ──

// ActiveDialog returns the open dialog, or DialogNone.
func (s *Store) ActiveDialog() Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDialog
}

// CartOpen reports whether the cart drawer is visible.
func (s *Store) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// OverlayVisible reports whether the backdrop is shown.
func (s *Store) OverlayVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

// OpenDialog closes whatever dialog is active, activates d, and shows
// the overlay. At most one dialog is ever open.
func (s *Store) OpenDialog(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeDialog = d
	s.overlay = true
}

// CloseDialog deactivates d only if it is the active dialog, then
// recomputes overlay visibility: the backdrop stays up while the cart
// drawer (or another dialog) is still open.
func (s *Store) CloseDialog(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeDialog == d {
		s.activeDialog = DialogNone
	}
	s.recomputeOverlayLocked()
}

// CloseAllDialogs deactivates every dialog and hides the overlay
// unconditionally, without consulting the cart drawer. This matches
// the backdrop-click and cancel paths, which close the drawer in the
// same action; it intentionally differs from CloseDialog's recompute.
func (s *Store) CloseAllDialogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeDialog = DialogNone
	s.overlay = false
}

// OpenCart shows the cart drawer and the overlay.
func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = true
	s.overlay = true
}

// CloseCart hides the cart drawer and recomputes overlay visibility.
func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = false
	s.recomputeOverlayLocked()
}

// ToggleCart flips drawer visibility. An anonymous user with an empty
// cart has nothing to see; they get ErrLoginRequired instead and the
// caller opens the login dialog.
func (s *Store) ToggleCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 && s.user == nil {
		return ErrLoginRequired
	}
	s.cartOpen = !s.cartOpen
	if s.cartOpen {
		s.overlay = true
	} else {
		s.recomputeOverlayLocked()
	}
	return nil
}

// overlay ⇔ (dialog open ∨ cart open)
func (s *Store) recomputeOverlayLocked() {
	s.overlay = s.activeDialog != DialogNone || s.cartOpen
}
