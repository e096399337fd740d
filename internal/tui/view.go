package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joss/sweetshop/internal/render"
	"github.com/joss/sweetshop/internal/state"
)

// View renders the storefront.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("🍰 Sweet Shop"))
	b.WriteString("\n\n")

	main := m.viewGrid()
	if m.deps.Store.CartOpen() {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", m.viewDrawer())
	}

	// The backdrop dims whatever sits behind an open dialog or drawer.
	if m.deps.Store.ActiveDialog() != state.DialogNone {
		main = backdropStyle.Render(main)
	}
	b.WriteString(main)

	if d := m.deps.Store.ActiveDialog(); d != state.DialogNone {
		b.WriteString("\n\n")
		b.WriteString(m.viewDialog(d))
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m Model) viewGrid() string {
	store := m.deps.Store

	switch store.CatalogStatus() {
	case state.CatalogLoading:
		return fmt.Sprintf("  %s Loading products...", m.spinner.View())
	case state.CatalogError:
		return errorStyle.Render("  Error loading products") +
			infoStyle.Render("  (press R to retry)")
	}

	products := store.Products()
	if len(products) == 0 {
		return infoStyle.Render("  No products available")
	}

	var b strings.Builder
	for i, p := range products {
		cursor := "  "
		if i == m.selected {
			cursor = activeStyle.Render("> ")
		}

		line := fmt.Sprintf("%s %-10s %8s", render.Pad(render.Truncate(p.Name, 18), 18), p.Category, render.Money(p.Price))
		if i == m.selected {
			line = activeStyle.Render(line)
		}

		tail := ""
		switch {
		case p.OutOfStock():
			tail = "  " + soldOutStyle.Render("Sold Out")
		case p.ID == m.addedID:
			tail = "  " + successStyle.Render("✓ Added!")
		default:
			tail = infoStyle.Render(fmt.Sprintf("  qty %d (of %d)", m.currentQty(p), p.Stock))
		}

		b.WriteString(cursor + line + tail + "\n")
	}
	return b.String()
}

func (m Model) viewDrawer() string {
	lines := m.deps.Store.Cart()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Your Cart"))
	b.WriteString("\n\n")

	if len(lines) == 0 {
		b.WriteString(infoStyle.Render("Your cart is empty"))
		b.WriteString("\n")
	} else {
		for i, l := range lines {
			cursor := "  "
			if i == m.drawerIdx {
				cursor = activeStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s %7s × %d\n",
				cursor, render.Pad(render.Truncate(l.Name, 14), 14), render.Money(l.Price), l.Qty))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Subtotal: %s\n", render.Money(m.deps.Store.CartSubtotal())))
	if len(lines) > 0 {
		b.WriteString(infoStyle.Render("enter checkout · x remove"))
	}

	return boxStyle.Render(b.String())
}

func (m Model) viewDialog(d state.Dialog) string {
	var b strings.Builder

	switch d {
	case state.DialogLogin:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Login"))
		b.WriteString("\n\n")
		b.WriteString(m.username.View() + "\n")
		b.WriteString(m.password.View() + "\n")
		b.WriteString(infoStyle.Render("\nctrl+s register instead"))

	case state.DialogRegister:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Create Account"))
		b.WriteString("\n\n")
		b.WriteString(m.username.View() + "\n")
		b.WriteString(m.password.View() + "\n")
		b.WriteString(infoStyle.Render("\nctrl+s login instead"))

	case state.DialogCheckout:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Checkout"))
		b.WriteString("\n\n")
		preview := m.deps.Checkout.Preview()
		for _, l := range preview.Lines {
			b.WriteString(fmt.Sprintf("  %s × %d  %s\n", render.Pad(render.Truncate(l.Name, 14), 14), l.Qty, render.Money(l.Total)))
		}
		b.WriteString(fmt.Sprintf("\n  Total: %s\n\n", render.Money(preview.Total)))
		b.WriteString(m.custName.View() + "\n")

	case state.DialogConfirmation:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Order Confirmed"))
		b.WriteString("\n\n")
		b.WriteString(successStyle.Render(m.confirmText) + "\n")
		b.WriteString(infoStyle.Render("An order confirmation has been sent to your email.") + "\n\n")
		b.WriteString(infoStyle.Render("enter to continue shopping"))
	}

	if m.formMsg != "" {
		style := successStyle
		if m.formErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.formMsg))
	}

	return boxStyle.Render(b.String())
}

func (m Model) viewStatusBar() string {
	store := m.deps.Store

	who := "not logged in"
	if u := store.User(); u != nil {
		who = u.Username
	}
	return statusBarStyle.Render(fmt.Sprintf("%s · cart: %d item(s) · %s",
		who, store.CartCount(), render.Money(store.CartSubtotal())))
}

func (m Model) helpLine() string {
	store := m.deps.Store

	if store.ActiveDialog() != state.DialogNone {
		return "tab field · enter submit · esc close"
	}
	if store.CartOpen() {
		return "j/k move · x remove · enter checkout · esc close"
	}
	help := "j/k move · +/- qty · enter add · c cart · l login · s register"
	if store.User() != nil {
		help = "j/k move · +/- qty · enter add · c cart · o logout"
	}
	return help + " · q quit"
}
