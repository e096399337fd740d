// Package tui provides the interactive storefront using Bubble Tea.
//
// The model renders purely from the shared state store; controllers
// mutate the store inside commands and the resulting messages only
// carry completion signals. Commands are fire-and-forget: there is no
// cancellation token, so a slow response still lands its message and
// the last one to resolve wins.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/sweetshop/internal/api"
	"github.com/joss/sweetshop/internal/cart"
	"github.com/joss/sweetshop/internal/catalog"
	"github.com/joss/sweetshop/internal/checkout"
	"github.com/joss/sweetshop/internal/render"
	"github.com/joss/sweetshop/internal/session"
	"github.com/joss/sweetshop/internal/shop"
	"github.com/joss/sweetshop/internal/state"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	soldOutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	backdropStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Faint(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

// Cosmetic timings carried over from the storefront: success messages
// linger before their dialog closes, add feedback clears on its own.
const (
	dialogCloseDelay  = time.Second
	feedbackClearTime = 1600 * time.Millisecond
)

// Deps bundles the shared store and controllers the TUI drives.
type Deps struct {
	Store    *state.Store
	Session  *session.Controller
	Catalog  *catalog.Controller
	Cart     *cart.Controller
	Checkout *checkout.Flow
}

// Model is the storefront TUI model.
type Model struct {
	deps Deps

	width    int
	height   int
	ready    bool
	quitting bool

	spinner spinner.Model

	// Grid state
	selected int
	qty      map[string]int
	addedID  string

	// Drawer state
	drawerIdx int

	// Dialog form state
	focusIdx int
	username textinput.Model
	password textinput.Model
	custName textinput.Model
	formMsg  string
	formErr  bool

	confirmText string
}

// Message types
type catalogMsg struct{ err error }
type cartSyncedMsg struct{ err error }
type loginDoneMsg struct{ err error }
type registerDoneMsg struct{ err error }
type logoutDoneMsg struct{}
type addDoneMsg struct {
	id  string
	err error
}
type checkoutDoneMsg struct {
	conf checkout.Confirmation
	err  error
}
type closeDialogMsg struct{ dialog state.Dialog }
type clearFeedbackMsg struct{ id string }

// New creates the storefront model.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64
	password.Width = 32

	custName := textinput.New()
	custName.Placeholder = "Your name"
	custName.CharLimit = 64
	custName.Width = 32

	return Model{
		deps:     deps,
		spinner:  s,
		qty:      make(map[string]int),
		username: username,
		password: password,
		custName: custName,
	}
}

// Init kicks off the catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// Run starts the interactive storefront and blocks until the user
// quits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Commands ──

func (m Model) loadCatalog() tea.Cmd {
	ctrl := m.deps.Catalog
	return func() tea.Msg {
		return catalogMsg{err: ctrl.Load(context.Background())}
	}
}

func (m Model) doLogin(username, password string) tea.Cmd {
	ctrl := m.deps.Session
	return func() tea.Msg {
		_, err := ctrl.Login(context.Background(), username, password)
		return loginDoneMsg{err: err}
	}
}

func (m Model) doRegister(username, password string) tea.Cmd {
	ctrl := m.deps.Session
	return func() tea.Msg {
		_, err := ctrl.Register(context.Background(), username, password)
		return registerDoneMsg{err: err}
	}
}

func (m Model) doLogout() tea.Cmd {
	ctrl := m.deps.Session
	return func() tea.Msg {
		ctrl.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

func (m Model) doAdd(id string, qty int) tea.Cmd {
	ctrl := m.deps.Cart
	return func() tea.Msg {
		return addDoneMsg{id: id, err: ctrl.Add(context.Background(), id, qty)}
	}
}

func (m Model) doCheckout(name string) tea.Cmd {
	flow := m.deps.Checkout
	return func() tea.Msg {
		conf, err := flow.Submit(context.Background(), name)
		return checkoutDoneMsg{conf: conf, err: err}
	}
}

func closeDialogLater(d state.Dialog) tea.Cmd {
	return tea.Tick(dialogCloseDelay, func(time.Time) tea.Msg {
		return closeDialogMsg{dialog: d}
	})
}

func clearFeedbackLater(id string) tea.Cmd {
	return tea.Tick(feedbackClearTime, func(time.Time) tea.Msg {
		return clearFeedbackMsg{id: id}
	})
}

// formError maps an operation error to its inline form message.
// Client validation sentinels carry user-facing text; backend errors
// surface verbatim; anything else is a transport failure.
func formError(err error) string {
	switch {
	case errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrPasswordTooShort),
		errors.Is(err, checkout.ErrNameRequired),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, state.ErrLoginRequired):
		return err.Error()
	}
	if be, ok := api.AsBackendError(err); ok {
		return be.Error()
	}
	return "Network error. Please try again."
}

// ── Update ──

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case catalogMsg:
		m.clampSelection()

	case cartSyncedMsg:
		m.clampDrawer()

	case loginDoneMsg:
		if msg.err != nil {
			m.formMsg = formError(msg.err)
			m.formErr = true
			return m, nil
		}
		m.formMsg = "Login successful!"
		m.formErr = false
		return m, closeDialogLater(state.DialogLogin)

	case registerDoneMsg:
		if msg.err != nil {
			m.formMsg = formError(msg.err)
			m.formErr = true
			return m, nil
		}
		m.formMsg = "Account created successfully!"
		m.formErr = false
		return m, closeDialogLater(state.DialogRegister)

	case logoutDoneMsg:
		// Stock visibility can differ for anonymous views.
		return m, m.loadCatalog()

	case addDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, state.ErrLoginRequired) {
				m.openDialog(state.DialogLogin)
				m.formMsg = msg.err.Error()
				m.formErr = true
			}
			// Other add failures stay silent here; the controller logs them.
			return m, nil
		}
		m.addedID = msg.id
		return m, clearFeedbackLater(msg.id)

	case checkoutDoneMsg:
		if msg.err != nil {
			m.formMsg = formError(msg.err)
			m.formErr = true
			return m, nil
		}
		// The flow already cleared the cart and switched the dialog to
		// the confirmation panel.
		m.confirmText = fmt.Sprintf("%s ordered the following items, and the total is %s",
			msg.conf.Name, render.Money(msg.conf.Total))
		return m, m.loadCatalog()

	case closeDialogMsg:
		m.deps.Store.CloseDialog(msg.dialog)
		m.resetForms()

	case clearFeedbackMsg:
		if m.addedID == msg.id {
			m.addedID = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Route input updates to the focused dialog field.
	if m.deps.Store.ActiveDialog() != state.DialogNone {
		var cmd tea.Cmd
		switch m.deps.Store.ActiveDialog() {
		case state.DialogLogin, state.DialogRegister:
			m.username, cmd = m.username.Update(msg)
			cmds = append(cmds, cmd)
			m.password, cmd = m.password.Update(msg)
			cmds = append(cmds, cmd)
		case state.DialogCheckout:
			m.custName, cmd = m.custName.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	store := m.deps.Store

	if store.ActiveDialog() != state.DialogNone {
		return m.handleDialogKey(msg)
	}
	if store.CartOpen() {
		return m.handleDrawerKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.deps.Store
	products := store.Products()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(products)-1 {
			m.selected++
		}

	case "+", "right":
		if p, ok := m.selectedProduct(); ok && !p.OutOfStock() {
			m.qty[p.ID] = p.ClampQty(m.currentQty(p) + 1)
		}

	case "-", "left":
		if p, ok := m.selectedProduct(); ok && !p.OutOfStock() {
			m.qty[p.ID] = p.ClampQty(m.currentQty(p) - 1)
		}

	case "enter", "a":
		if p, ok := m.selectedProduct(); ok && !p.OutOfStock() {
			return m, m.doAdd(p.ID, m.currentQty(p))
		}

	case "c":
		if err := store.ToggleCart(); err != nil {
			m.openDialog(state.DialogLogin)
			m.formMsg = err.Error()
			m.formErr = true
		}

	case "l":
		m.openDialog(state.DialogLogin)

	case "s":
		m.openDialog(state.DialogRegister)

	case "o":
		if store.User() != nil {
			return m, m.doLogout()
		}

	case "R":
		return m, m.loadCatalog()
	}

	return m, nil
}

func (m Model) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.deps.Store
	lines := store.Cart()

	switch msg.String() {
	case "esc":
		// Backdrop click: close the drawer and every dialog in one action.
		m.backdropClose()

	case "c", "q":
		store.CloseCart()

	case "up", "k":
		if m.drawerIdx > 0 {
			m.drawerIdx--
		}

	case "down", "j":
		if m.drawerIdx < len(lines)-1 {
			m.drawerIdx++
		}

	case "x", "backspace":
		if m.drawerIdx < len(lines) {
			m.deps.Cart.RemoveLocal(lines[m.drawerIdx].ID)
			if m.drawerIdx > 0 {
				m.drawerIdx--
			}
		}

	case "r":
		ctrl := m.deps.Cart
		return m, func() tea.Msg {
			return cartSyncedMsg{err: ctrl.Refresh(context.Background())}
		}

	case "enter":
		if len(lines) == 0 {
			return m, nil // checkout disabled on empty cart
		}
		preview, err := m.deps.Checkout.Begin()
		if err != nil {
			m.openDialog(state.DialogLogin)
			m.formMsg = err.Error()
			m.formErr = true
			return m, nil
		}
		m.openDialog(state.DialogCheckout)
		m.custName.SetValue(preview.Name)
	}

	return m, nil
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.deps.Store
	dialog := store.ActiveDialog()

	switch msg.String() {
	case "esc":
		m.backdropClose()
		return m, nil

	case "tab", "shift+tab":
		if dialog == state.DialogLogin || dialog == state.DialogRegister {
			m.focusIdx = (m.focusIdx + 1) % 2
			m.applyFocus()
		}
		return m, nil

	case "ctrl+s":
		// Switch between login and register, as the modal footer links do.
		switch dialog {
		case state.DialogLogin:
			m.openDialog(state.DialogRegister)
		case state.DialogRegister:
			m.openDialog(state.DialogLogin)
		}
		return m, nil

	case "enter":
		switch dialog {
		case state.DialogLogin:
			m.formMsg = ""
			return m, m.doLogin(m.username.Value(), m.password.Value())
		case state.DialogRegister:
			m.formMsg = ""
			return m, m.doRegister(m.username.Value(), m.password.Value())
		case state.DialogCheckout:
			m.formMsg = ""
			return m, m.doCheckout(strings.TrimSpace(m.custName.Value()))
		case state.DialogConfirmation:
			// Continue shopping.
			store.CloseDialog(state.DialogConfirmation)
			m.deps.Checkout.Reset()
		}
		return m, nil
	}

	// Everything else is text entry for the focused field.
	var cmd tea.Cmd
	switch dialog {
	case state.DialogLogin, state.DialogRegister:
		if m.focusIdx == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case state.DialogCheckout:
		m.custName, cmd = m.custName.Update(msg)
	}
	return m, cmd
}

// ── Helpers ──

func (m *Model) openDialog(d state.Dialog) {
	m.resetForms()
	m.deps.Store.OpenDialog(d)
	switch d {
	case state.DialogLogin, state.DialogRegister:
		m.focusIdx = 0
		m.applyFocus()
	case state.DialogCheckout:
		m.custName.Focus()
	}
}

// backdropClose mirrors a click on the semi-transparent backdrop:
// the drawer and all dialogs close together.
func (m *Model) backdropClose() {
	m.deps.Store.CloseCart()
	m.deps.Store.CloseAllDialogs()
	m.deps.Checkout.Reset()
	m.resetForms()
}

func (m *Model) resetForms() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.custName.SetValue("")
	m.username.Blur()
	m.password.Blur()
	m.custName.Blur()
	m.formMsg = ""
	m.formErr = false
	m.focusIdx = 0
}

func (m *Model) applyFocus() {
	if m.focusIdx == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

func (m Model) selectedProduct() (shop.Product, bool) {
	products := m.deps.Store.Products()
	if m.selected < 0 || m.selected >= len(products) {
		return shop.Product{}, false
	}
	return products[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.deps.Store.Products())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) clampDrawer() {
	n := len(m.deps.Store.Cart())
	if m.drawerIdx >= n {
		m.drawerIdx = n - 1
	}
	if m.drawerIdx < 0 {
		m.drawerIdx = 0
	}
}

func (m Model) currentQty(p shop.Product) int {
	if q, ok := m.qty[p.ID]; ok {
		return p.ClampQty(q)
	}
	return 1
}
