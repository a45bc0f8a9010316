package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/cart"
	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/pkg/errors"
)

// Store is the persistence collaborator the finalizer writes through
type Store interface {
	CreateSale(ctx context.Context, sale *domain.Sale) error
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Product, error)
}

// Payment is the checkout input: how the customer pays and how much they
// tendered. Change is computed by the finalizer, never by the caller.
type Payment struct {
	Method domain.PaymentMethod
	Amount float64
}

type Finalizer struct {
	store  Store
	logger *zap.Logger
}

// NewFinalizer creates a new sale finalizer
func NewFinalizer(store Store, logger *zap.Logger) *Finalizer {
	return &Finalizer{
		store:  store,
		logger: logger,
	}
}

// Complete turns the cart plus payment into one persisted sale.
//
// The sale record is written first; if that write fails the cart is left
// untouched and no stock is changed. Once the sale is durably stored, stock is
// decremented per distinct product and the cart is cleared. A stock decrement
// failing at that point does not undo the sale: the sale is already committed
// and losing a stock count is preferable to losing a recorded sale or charging
// the customer twice on retry, so the failure is logged and checkout succeeds.
func (f *Finalizer) Complete(ctx context.Context, c *cart.Cart, payment Payment, customerName *string) (*domain.Sale, error) {
	if c.Len() == 0 {
		return nil, &errors.ErrEmptyCart{}
	}
	if !payment.Method.IsValid() {
		return nil, &errors.ErrInvalidInput{Field: "payment method", Reason: string(payment.Method)}
	}
	if payment.Amount < 0 {
		return nil, &errors.ErrInvalidInput{Field: "payment amount", Reason: "must not be negative"}
	}

	total := c.Total()
	if payment.Amount < total {
		return nil, &errors.ErrInsufficientPayment{Total: total, Tendered: payment.Amount}
	}

	// Change only exists for cash overpayment; card and pix settle exactly.
	var change *float64
	if payment.Method == domain.PaymentMethodCash && payment.Amount > total {
		diff := payment.Amount - total
		change = &diff
	}

	sale := &domain.Sale{
		ID:    uuid.New(),
		Items: c.Snapshot(),
		Total: total,
		Payment: domain.PaymentDetails{
			Method: payment.Method,
			Amount: payment.Amount,
			Change: change,
		},
		CustomerName: customerName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := f.store.CreateSale(ctx, sale); err != nil {
		return nil, &errors.ErrPersistence{Op: "create sale", Err: err}
	}

	for _, sold := range soldQuantities(sale.Items) {
		if _, err := f.store.DecrementStock(ctx, sold.productID, sold.quantity); err != nil {
			f.logger.Warn("Stock decrement failed after committed sale",
				zap.String("sale_id", sale.ID.String()),
				zap.String("product_id", sold.productID.String()),
				zap.Int("quantity", sold.quantity),
				zap.Error(err),
			)
		}
	}

	c.Clear()

	return sale, nil
}

type soldQuantity struct {
	productID uuid.UUID
	quantity  int
}

// soldQuantities sums the quantity sold per distinct product, preserving the
// order products first appear in the sale
func soldQuantities(items []domain.CartLineItem) []soldQuantity {
	index := make(map[uuid.UUID]int)
	var sold []soldQuantity
	for _, item := range items {
		if i, ok := index[item.Product.ID]; ok {
			sold[i].quantity += item.Quantity
			continue
		}
		index[item.Product.ID] = len(sold)
		sold = append(sold, soldQuantity{productID: item.Product.ID, quantity: item.Quantity})
	}
	return sold
}
