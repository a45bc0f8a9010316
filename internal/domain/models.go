package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	CategoryID  uuid.UUID
	Description string
	ImageURL    *string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category groups products and restricts which addons apply to them
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Addon represents a priced extra attachable to a cart line item.
// CategoryID, when set, limits the addon to products of that category.
type Addon struct {
	ID         uuid.UUID
	Name       string
	Price      float64
	CategoryID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartAddon is an addon attached to a line item with its own quantity,
// independent of the line item's quantity.
type CartAddon struct {
	Addon    Addon `json:"addon"`
	Quantity int   `json:"quantity"`
}

// CartLineItem is one slot in the cart. Product is embedded by value so the
// line item keeps the price it had when it was added, regardless of later
// catalog edits.
type CartLineItem struct {
	Product  Product     `json:"product"`
	Quantity int         `json:"quantity"`
	Addons   []CartAddon `json:"addons,omitempty"`
	Note     string      `json:"note,omitempty"`
}

// Subtotal returns the line item's contribution to the cart total:
// product price times quantity plus each addon's price times its own quantity.
func (li CartLineItem) Subtotal() float64 {
	subtotal := li.Product.Price * float64(li.Quantity)
	for _, a := range li.Addons {
		subtotal += a.Addon.Price * float64(a.Quantity)
	}
	return subtotal
}

// PaymentDetails records how a sale was paid. Change is only set for cash
// payments where the tendered amount exceeds the total.
type PaymentDetails struct {
	Method PaymentMethod
	Amount float64
	Change *float64
}

// Sale is an immutable record of a completed transaction
type Sale struct {
	ID           uuid.UUID
	Items        []CartLineItem
	Total        float64
	Payment      PaymentDetails
	CustomerName *string
	CreatedAt    time.Time
}

// Employee represents a staff account
type Employee struct {
	ID           uuid.UUID
	Name         string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
