// Package session owns the authenticated-user lifecycle: restore from
// durable storage at startup, login/register against the backend, and
// logout teardown.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/logging"
	"github.com/joss/sweetshop/internal/shop"
	"github.com/joss/sweetshop/internal/state"
	"github.com/joss/sweetshop/internal/storage"
)

// Client-side validation failures. Their messages are shown inline
// next to the form; nothing is sent to the backend.
var (
	ErrMissingFields    = errors.New("Please fill all fields")
	ErrPasswordTooShort = errors.New("Password must be at least 4 characters")
)

const minPasswordLen = 4

// Controller drives session state.
type Controller struct {
	store *state.Store
	api   *api.Client
	kv    *storage.Store
	log   *logging.Logger
}

// New creates a session controller.
func New(store *state.Store, client *api.Client, kv *storage.Store) *Controller {
	return &Controller{
		store: store,
		api:   client,
		kv:    kv,
		log:   logging.New("session"),
	}
}

// Restore adopts the persisted user record from the local store, if
// one exists and parses. Any failure is logged and swallowed; the
// session simply stays anonymous.
func (c *Controller) Restore() {
	raw, err := c.kv.Get(storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.Warn("restore_read_failed", nil, err)
		}
		return
	}

	var user shop.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		c.log.Warn("restore_parse_failed", nil, err)
		return
	}

	c.store.SetUser(&user)
	c.log.Info("session_restored", map[string]interface{}{"username": user.Username})
}

// Login validates, authenticates, and persists the returned user
// record in memory and in durable storage.
func (c *Controller) Login(ctx context.Context, username, password string) (*shop.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := c.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	c.adopt(user)
	return user, nil
}

// Register applies the same contract as Login plus the minimum
// password length rule, checked before any network call.
func (c *Controller) Register(ctx context.Context, username, password string) (*shop.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	user, err := c.api.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}

	c.adopt(user)
	return user, nil
}

func (c *Controller) adopt(user *shop.User) {
	c.store.SetUser(user)

	raw, err := json.Marshal(user)
	if err != nil {
		c.log.Warn("persist_marshal_failed", nil, err)
		return
	}
	if err := c.kv.Put(storage.KeyUser, string(raw)); err != nil {
		c.log.Warn("persist_write_failed", nil, err)
	}
}

// Logout notifies the backend best-effort (failure is logged only),
// then unconditionally clears the session, the cached cart, durable
// storage, and closes the cart drawer. The caller reloads the catalog
// afterwards; stock visibility differs between views.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.log.Warn("logout_backend_failed", nil, err)
	}

	c.store.ClearUser()
	c.store.ClearCart()
	if err := c.kv.Delete(storage.KeyUser); err != nil {
		c.log.Warn("logout_storage_failed", nil, err)
	}
	c.store.CloseCart()
	c.log.Info("logged_out", nil)
}
