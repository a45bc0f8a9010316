package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acaizen/posapi/internal/domain"
)

// ProductRepository manages catalog products
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DecrementStock atomically reduces stock by quantity, floored at zero,
	// and returns the updated product
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
}

// CategoryRepository manages product categories
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddonRepository manages addons
type AddonRepository interface {
	GetAll(ctx context.Context) ([]*domain.Addon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Addon, error)
	Create(ctx context.Context, addon *domain.Addon) error
	Update(ctx context.Context, addon *domain.Addon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleFilter narrows a sale listing. Nil fields mean no filtering.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Method *domain.PaymentMethod
}

// SaleRepository stores completed sales. Sales are write-once; there is no
// update or delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error)
}

// EmployeeRepository manages staff accounts
type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories aggregates all repositories for injection
type Repositories struct {
	Product  ProductRepository
	Category CategoryRepository
	Addon    AddonRepository
	Sale     SaleRepository
	Employee EmployeeRepository
}
