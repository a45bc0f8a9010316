package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/pkg/errors"
)

// Cart holds the line items of one in-progress transaction. It is owned by a
// single terminal session and is not safe for concurrent use; the Sessions
// manager hands out one Cart per terminal.
type Cart struct {
	items []domain.CartLineItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add appends a line item for the product, or merges into an existing line
// item when the product, the full addon set and the note all match. Addons
// with a non-positive quantity default to quantity 1. Append order defines
// display order.
func (c *Cart) Add(product domain.Product, quantity int, addons []domain.CartAddon, note string) error {
	if quantity < 1 {
		return &errors.ErrInvalidInput{Field: "quantity", Reason: fmt.Sprintf("must be at least 1, got %d", quantity)}
	}

	normalized := make([]domain.CartAddon, len(addons))
	for i, a := range addons {
		normalized[i] = a
		if normalized[i].Quantity < 1 {
			normalized[i].Quantity = 1
		}
	}

	key := mergeKey(product.ID.String(), normalized, note)
	for i := range c.items {
		if mergeKey(c.items[i].Product.ID.String(), c.items[i].Addons, c.items[i].Note) == key {
			c.items[i].Quantity += quantity
			return nil
		}
	}

	c.items = append(c.items, domain.CartLineItem{
		Product:  product,
		Quantity: quantity,
		Addons:   normalized,
		Note:     note,
	})
	return nil
}

// UpdateItem replaces the quantity of the line item at index, and optionally
// its addons and note. A nil addons or note means "keep the current value".
// The updated item is not re-merged into an equal sibling; if the update makes
// two rows identical they stay separate entries, so a cashier can keep editing
// either row independently.
func (c *Cart) UpdateItem(index int, quantity int, addons []domain.CartAddon, note *string) error {
	if index < 0 || index >= len(c.items) {
		return &errors.ErrOutOfRange{Index: index, Size: len(c.items)}
	}
	if quantity < 1 {
		return &errors.ErrInvalidInput{Field: "quantity", Reason: fmt.Sprintf("must be at least 1, got %d", quantity)}
	}

	c.items[index].Quantity = quantity
	if addons != nil {
		normalized := make([]domain.CartAddon, len(addons))
		for i, a := range addons {
			normalized[i] = a
			if normalized[i].Quantity < 1 {
				normalized[i].Quantity = 1
			}
		}
		c.items[index].Addons = normalized
	}
	if note != nil {
		c.items[index].Note = *note
	}
	return nil
}

// Remove deletes the line item at index, shifting subsequent items left
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return &errors.ErrOutOfRange{Index: index, Size: len(c.items)}
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Clear resets the cart to empty. Clearing an empty cart is not an error.
func (c *Cart) Clear() {
	c.items = nil
}

// Len returns the number of line items
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a shallow copy of the line items in display order
func (c *Cart) Items() []domain.CartLineItem {
	items := make([]domain.CartLineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Snapshot returns a deep copy of the line items, so a completed sale cannot
// be altered by later cart mutation
func (c *Cart) Snapshot() []domain.CartLineItem {
	items := make([]domain.CartLineItem, len(c.items))
	for i, item := range c.items {
		items[i] = item
		if item.Addons != nil {
			items[i].Addons = make([]domain.CartAddon, len(item.Addons))
			copy(items[i].Addons, item.Addons)
		}
	}
	return items
}

// Total recomputes the cart total from current state on every call. Line
// items carry the product price captured at add time.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// mergeKey builds the identity of a cart slot: product, canonical addon set
// and note. Addons are sorted so the key does not depend on selection order.
func mergeKey(productID string, addons []domain.CartAddon, note string) string {
	parts := make([]string, len(addons))
	for i, a := range addons {
		parts[i] = fmt.Sprintf("%s x%d", a.Addon.ID.String(), a.Quantity)
	}
	sort.Strings(parts)

	var b strings.Builder
	b.WriteString(productID)
	b.WriteString("|")
	b.WriteString(strings.Join(parts, ","))
	b.WriteString("|")
	b.WriteString(note)
	return b.String()
}
