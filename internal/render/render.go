// Package render provides output formatting for CLI commands.
// Separates presentation from controller logic.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/joss/sweetshop/internal/shop"
)

// Money formats minor currency units as dollars to two decimal
// places: Money(5000) == "$50.00".
func Money(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Truncate shortens a string to max runes. Product names carry
// accented characters, so cutting by byte index would split a rune.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Pad left-justifies s in a field of width runes. fmt's %-Ns pads by
// byte count, which misaligns columns holding multi-byte names.
func Pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	errorMark   = color.New(color.FgRed).Sprint("✗")
)

// Writer wraps an io.Writer with formatting utilities.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer that writes to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Stdout returns a Writer that writes to os.Stdout.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Print writes formatted text.
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Line writes a blank line.
func (w *Writer) Line() {
	fmt.Fprintln(w.out)
}

// Header writes a header line.
func (w *Writer) Header(title string) {
	fmt.Fprintln(w.out, strings.ToUpper(title))
	fmt.Fprintln(w.out)
}

// Item writes an indented item line.
func (w *Writer) Item(format string, args ...any) {
	fmt.Fprintf(w.out, "  "+format+"\n", args...)
}

// Success writes a line with a green check mark.
func (w *Writer) Success(format string, args ...any) {
	fmt.Fprintf(w.out, "%s "+format+"\n", append([]any{successMark}, args...)...)
}

// Failure writes a line with a red cross mark.
func (w *Writer) Failure(format string, args ...any) {
	fmt.Fprintf(w.out, "%s "+format+"\n", append([]any{errorMark}, args...)...)
}

// Products writes the catalog table. Out-of-stock products are
// labeled sold out and get no quantity hint.
func (w *Writer) Products(products []shop.Product) {
	if len(products) == 0 {
		w.Println("No products available")
		return
	}

	w.Header("Products")
	for _, p := range products {
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if p.OutOfStock() {
			stock = "Sold Out"
		}
		w.Item("%-4s %s %-12s %8s  %s", p.ID, Pad(Truncate(p.Name, 16), 16), p.Category, Money(p.Price), stock)
	}
}

// Cart writes the cart contents with count and subtotal, or the empty
// placeholder.
func (w *Writer) Cart(lines []shop.CartLine) {
	if len(lines) == 0 {
		w.Println("Your cart is empty")
		w.Println("Subtotal: %s", Money(0))
		return
	}

	w.Header("Cart")
	for _, l := range lines {
		w.Item("%s %8s × %d = %s", Pad(Truncate(l.Name, 16), 16), Money(l.Price), l.Qty, Money(l.LineTotal()))
	}
	w.Line()
	w.Println("Items: %d", shop.CartCount(lines))
	w.Println("Subtotal: %s", Money(shop.CartSubtotal(lines)))
}

// Confirmation writes the order confirmation message with the
// server-reported total.
func (w *Writer) Confirmation(name string, total int) {
	w.Success("%s ordered the following items, and the total is %s", name, Money(total))
	w.Println("An order confirmation has been sent to your email.")
}
