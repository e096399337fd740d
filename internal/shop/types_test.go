package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutOfStock(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  bool
	}{
		{"in stock", 5, false},
		{"single unit", 1, false},
		{"zero stock", 0, true},
		{"negative stock", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Stock: tt.stock}
			assert.Equal(t, tt.want, p.OutOfStock())
		})
	}
}

func TestClampQty(t *testing.T) {
	p := Product{Stock: 5}

	tests := []struct {
		name string
		qty  int
		want int
	}{
		{"below range", 0, 1},
		{"negative", -3, 1},
		{"in range", 3, 3},
		{"at stock", 5, 5},
		{"above stock", 9, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ClampQty(tt.qty))
		})
	}
}

func TestCartTotals(t *testing.T) {
	lines := []CartLine{
		{ID: "1", Price: 500, Qty: 2},
		{ID: "2", Price: 1200, Qty: 1},
	}

	assert.Equal(t, 3, CartCount(lines))
	assert.Equal(t, 2200, CartSubtotal(lines))
}

func TestCartTotalsEmpty(t *testing.T) {
	assert.Equal(t, 0, CartCount(nil))
	assert.Equal(t, 0, CartSubtotal(nil))
}

func TestApplyAssets(t *testing.T) {
	products := []Product{
		{ID: "3", Name: "Dessert 3", Image: "http://cdn.example.com/3.jpg"},
		{ID: "42", Name: "Mystery", Image: "http://cdn.example.com/42.jpg"},
	}

	ApplyAssets(products)

	assert.Equal(t, "Cake", products[0].Name)
	assert.Equal(t, "assets/images/image-cake-desktop.jpg", products[0].Image)
	// Unknown IDs untouched
	assert.Equal(t, "Mystery", products[1].Name)
	assert.Equal(t, "http://cdn.example.com/42.jpg", products[1].Image)
}

func TestApplyCartAssets(t *testing.T) {
	lines := []CartLine{
		{ID: "8", Name: "Server Tiramisu", Image: "http://cdn.example.com/8.jpg"},
	}

	ApplyCartAssets(lines)

	// Image overridden, server name kept
	assert.Equal(t, "assets/images/image-tiramisu-desktop.jpg", lines[0].Image)
	assert.Equal(t, "Server Tiramisu", lines[0].Name)
}
