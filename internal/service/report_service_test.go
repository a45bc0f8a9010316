package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
)

type fakeSaleRepo struct {
	sales []*domain.Sale
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *domain.Sale) error { return nil }

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*domain.Sale, error) {
	return r.sales, nil
}

type fakeProductRepo struct {
	products []*domain.Product
}

func (r *fakeProductRepo) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	return nil, nil
}

func saleOf(method domain.PaymentMethod, items ...domain.CartLineItem) *domain.Sale {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return &domain.Sale{
		ID:        uuid.New(),
		Items:     items,
		Total:     total,
		Payment:   domain.PaymentDetails{Method: method, Amount: total},
		CreatedAt: time.Now().UTC(),
	}
}

func lineItem(product domain.Product, quantity int) domain.CartLineItem {
	return domain.CartLineItem{Product: product, Quantity: quantity}
}

func TestSummaryAggregates(t *testing.T) {
	acai := domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90, Stock: 100}
	agua := domain.Product{ID: uuid.New(), Name: "Água Mineral", Price: 3.00, Stock: 4}

	repos := &repository.Repositories{
		Sale: &fakeSaleRepo{sales: []*domain.Sale{
			saleOf(domain.PaymentMethodCash, lineItem(acai, 2), lineItem(agua, 1)),
			saleOf(domain.PaymentMethodPix, lineItem(acai, 1)),
		}},
		Product: &fakeProductRepo{products: []*domain.Product{&acai, &agua}},
	}

	s := NewReportService(repos, zap.NewNop())
	summary, err := s.Summary(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SaleCount)
	assert.InDelta(t, 14.90*3+3.00, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 32.80, summary.RevenueByMethod[domain.PaymentMethodCash], 1e-9)
	assert.InDelta(t, 14.90, summary.RevenueByMethod[domain.PaymentMethodPix], 1e-9)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "Açaí Tradicional 300ml", summary.TopProducts[0].Name)
	assert.Equal(t, 3, summary.TopProducts[0].Quantity)
	assert.InDelta(t, 14.90*3, summary.TopProducts[0].Revenue, 1e-9)

	assert.Equal(t, []string{"Água Mineral"}, summary.LowStock)
}

func TestSummaryEmpty(t *testing.T) {
	repos := &repository.Repositories{
		Sale:    &fakeSaleRepo{},
		Product: &fakeProductRepo{},
	}

	s := NewReportService(repos, zap.NewNop())
	summary, err := s.Summary(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)

	assert.Zero(t, summary.SaleCount)
	assert.Zero(t, summary.TotalRevenue)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.LowStock)
}
