// Package shop defines the storefront domain types shared by the API
// client, the state store, and the UI layers.
package shop

// User is the authenticated user record as returned by the backend.
// A nil *User means anonymous.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Product is a catalog entry. Price is in minor currency units (cents).
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Stock    int    `json:"stock"`
	Image    string `json:"image"`
}

// OutOfStock reports whether the product has no purchasable stock.
func (p Product) OutOfStock() bool {
	return p.Stock <= 0
}

// ClampQty clamps a requested quantity into [1, Stock].
// Out-of-stock products have no valid quantity; callers must not
// offer quantity controls for them.
func (p Product) ClampQty(qty int) int {
	if qty < 1 {
		qty = 1
	}
	if qty > p.Stock {
		qty = p.Stock
	}
	return qty
}

// CartLine is one line of the server-held cart, keyed by product ID.
// Price is in minor currency units; Qty is always >= 1.
type CartLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Qty   int    `json:"qty"`
	Image string `json:"image"`
}

// LineTotal returns price*qty in minor units.
func (l CartLine) LineTotal() int {
	return l.Price * l.Qty
}

// CartCount returns the total item count across lines (the badge number).
func CartCount(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

// CartSubtotal returns the cart subtotal in minor units.
func CartSubtotal(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}
