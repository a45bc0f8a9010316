package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
)

const lowStockThreshold = 10

type reportService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(repos *repository.Repositories, logger *zap.Logger) *reportService {
	return &reportService{
		repos:  repos,
		logger: logger,
	}
}

// ProductSales aggregates how much of one product was sold
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// Summary is the aggregated report over a sale listing
type Summary struct {
	SaleCount       int                              `json:"sale_count"`
	TotalRevenue    float64                          `json:"total_revenue"`
	RevenueByMethod map[domain.PaymentMethod]float64 `json:"revenue_by_method"`
	TopProducts     []ProductSales                   `json:"top_products"`
	LowStock        []string                         `json:"low_stock"`
}

// Summary computes sale count, revenue, revenue per payment method, the top
// sellers by quantity and products running low on stock. Sales and catalog
// are fetched concurrently.
func (s *reportService) Summary(ctx context.Context, filter repository.SaleFilter) (*Summary, error) {
	var sales []*domain.Sale
	var products []*domain.Product

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.repos.Sale.List(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.repos.Product.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		SaleCount:       len(sales),
		RevenueByMethod: make(map[domain.PaymentMethod]float64),
	}

	byProduct := make(map[string]*ProductSales)
	for _, sale := range sales {
		summary.TotalRevenue += sale.Total
		summary.RevenueByMethod[sale.Payment.Method] += sale.Total

		for _, item := range sale.Items {
			id := item.Product.ID.String()
			ps, ok := byProduct[id]
			if !ok {
				ps = &ProductSales{ProductID: id, Name: item.Product.Name}
				byProduct[id] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue += item.Subtotal()
		}
	}

	for _, ps := range byProduct {
		summary.TopProducts = append(summary.TopProducts, *ps)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		if summary.TopProducts[i].Quantity != summary.TopProducts[j].Quantity {
			return summary.TopProducts[i].Quantity > summary.TopProducts[j].Quantity
		}
		return summary.TopProducts[i].Name < summary.TopProducts[j].Name
	})
	if len(summary.TopProducts) > 10 {
		summary.TopProducts = summary.TopProducts[:10]
	}

	for _, product := range products {
		if product.Stock < lowStockThreshold {
			summary.LowStock = append(summary.LowStock, product.Name)
		}
	}

	return summary, nil
}
