// Package checkout implements the order submission flow as a small
// state machine:
//
//	Idle → Preparing → Submitting → Confirmed
//
// Submission failures drop back to Preparing with the cart untouched.
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/logging"
	"github.com/joss/sweetshop/internal/state"
)

// Client-side validation failures, shown inline on the checkout form.
var (
	ErrNameRequired = errors.New("Please enter your name")
	ErrEmptyCart    = errors.New("Your cart is empty")
)

// Phase is the flow's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreparing
	PhaseSubmitting
	PhaseConfirmed
)

// PreviewLine is one order-preview row. Total is price*qty in minor
// units, computed from the cached cart at Begin time.
type PreviewLine struct {
	Name  string
	Qty   int
	Total int
}

// Preview is the order snapshot shown while preparing. Its Total is
// the client's estimate only; the confirmed total comes from the
// server.
type Preview struct {
	Lines []PreviewLine
	Total int
	Name  string // pre-filled customer name
}

// Confirmation carries the server-confirmed order result. Total is
// the backend's figure, which wins over the preview if prices or
// stock changed between preview and submit.
type Confirmation struct {
	Name  string
	Total int
}

// Flow drives a checkout. Submit runs in a background command while
// cancel paths call Reset from the update loop, so phase and preview
// are mutex-guarded like the state store.
type Flow struct {
	store *state.Store
	api   *api.Client
	log   *logging.Logger

	mu      sync.Mutex
	phase   Phase
	preview Preview
}

// New creates an idle checkout flow.
func New(store *state.Store, client *api.Client) *Flow {
	return &Flow{
		store: store,
		api:   client,
		log:   logging.New("checkout"),
	}
}

// Phase returns the flow's current state.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Preview returns the snapshot built by Begin.
func (f *Flow) Preview() Preview {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

func (f *Flow) setPhase(p Phase) {
	f.mu.Lock()
	f.phase = p
	f.mu.Unlock()
}

// Begin moves Idle→Preparing: it snapshots the cached cart into an
// order preview and pre-fills the customer name from the session.
// Without a session it returns state.ErrLoginRequired, mirroring the
// cart-add guard.
func (f *Flow) Begin() (Preview, error) {
	user := f.store.User()
	if user == nil {
		return Preview{}, state.ErrLoginRequired
	}

	p := Preview{Name: user.Username}
	for _, l := range f.store.Cart() {
		p.Lines = append(p.Lines, PreviewLine{
			Name:  l.Name,
			Qty:   l.Qty,
			Total: l.LineTotal(),
		})
		p.Total += l.LineTotal()
	}

	f.mu.Lock()
	f.preview = p
	f.phase = PhasePreparing
	f.mu.Unlock()
	return p, nil
}

// Submit validates and posts the order. On success the flow is
// Confirmed, the cached cart is cleared, and the confirmation dialog
// replaces the checkout dialog; the caller reloads the catalog since
// stock may have changed. On failure the flow stays in Preparing and
// the cart is untouched.
func (f *Flow) Submit(ctx context.Context, name string) (Confirmation, error) {
	if name == "" {
		return Confirmation{}, ErrNameRequired
	}
	if f.store.CartEmpty() {
		return Confirmation{}, ErrEmptyCart
	}

	f.setPhase(PhaseSubmitting)
	total, err := f.api.Checkout(ctx, name)
	if err != nil {
		f.setPhase(PhasePreparing)
		f.log.Error("submit_failed", nil, err)
		return Confirmation{}, err
	}

	f.setPhase(PhaseConfirmed)
	f.store.ClearCart()
	f.store.OpenDialog(state.DialogConfirmation)
	f.log.Info("order_confirmed", map[string]interface{}{"total": total})

	return Confirmation{Name: name, Total: total}, nil
}

// Reset returns the flow to Idle, for cancel paths. A Submit already
// in flight still lands its own transition afterwards; last write
// wins, matching the rest of the storefront's async behavior.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseIdle
	f.preview = Preview{}
}
