// Package cart drives the server-held shopping cart. The server is
// authoritative: every successful mutation is followed by a full
// re-fetch. The one exception is RemoveLocal, which touches only the
// cached copy.
package cart

import (
	"context"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/logging"
	"github.com/joss/sweetshop/internal/shop"
	"github.com/joss/sweetshop/internal/state"
)

// Controller mutates and refreshes the cart.
type Controller struct {
	store *state.Store
	api   *api.Client
	log   *logging.Logger
}

// New creates a cart controller.
func New(store *state.Store, client *api.Client) *Controller {
	return &Controller{
		store: store,
		api:   client,
		log:   logging.New("cart"),
	}
}

// Add submits a product and quantity to the backend cart. With no
// active session it returns state.ErrLoginRequired before any network
// call; the caller opens the login dialog. On backend success the
// authoritative cart is re-fetched unconditionally. Failures are
// logged and returned; the storefront UI does not surface them.
func (c *Controller) Add(ctx context.Context, productID string, qty int) error {
	if c.store.User() == nil {
		return state.ErrLoginRequired
	}

	if err := c.api.AddToCart(ctx, productID, qty); err != nil {
		c.log.Error("add_failed", map[string]interface{}{"product_id": productID, "qty": qty}, err)
		return err
	}

	// Add succeeded; a failed refresh leaves a stale cached cart that
	// heals on the next refresh.
	_ = c.Refresh(ctx)
	return nil
}

// Refresh replaces the cached cart with the server's copy.
func (c *Controller) Refresh(ctx context.Context) error {
	lines, err := c.api.Cart(ctx)
	if err != nil {
		c.log.Error("refresh_failed", nil, err)
		return err
	}

	shop.ApplyCartAssets(lines)
	c.store.SetCart(lines)
	return nil
}

// RemoveLocal filters a line out of the cached cart and makes no
// backend call. The next Refresh restores the line if the server still
// reports it.
func (c *Controller) RemoveLocal(productID string) {
	c.store.RemoveCartLine(productID)
}
