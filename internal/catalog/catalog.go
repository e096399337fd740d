// Package catalog loads the product list from the backend into the
// shared store.
package catalog

import (
	"context"
	"time"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/logging"
	"github.com/joss/sweetshop/internal/shop"
	"github.com/joss/sweetshop/internal/state"
)

// Controller fetches and installs the catalog.
type Controller struct {
	store *state.Store
	api   *api.Client
	log   *logging.Logger
}

// New creates a catalog controller.
func New(store *state.Store, client *api.Client) *Controller {
	return &Controller{
		store: store,
		api:   client,
		log:   logging.New("catalog"),
	}
}

// Load fetches the full product list. While in flight the store is
// marked loading so the grid shows its placeholder. On success the
// product set is replaced wholesale (with local asset overrides
// applied); on any failure the store is marked errored rather than
// left in the loading state, and Load itself never panics.
func (c *Controller) Load(ctx context.Context) error {
	start := time.Now()
	c.store.SetCatalogStatus(state.CatalogLoading)

	products, err := c.api.Products(ctx)
	if err != nil {
		c.store.SetCatalogStatus(state.CatalogError)
		c.log.Error("load_failed", nil, err)
		return err
	}

	shop.ApplyAssets(products)
	c.store.SetProducts(products)
	c.log.TimedEvent("loaded", start, map[string]interface{}{"count": len(products)})
	return nil
}
