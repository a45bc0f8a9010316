package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
)

// repositoryStore adapts the repository layer to the finalizer's Store
type repositoryStore struct {
	repos *repository.Repositories
}

// NewRepositoryStore wraps the repositories as a checkout Store
func NewRepositoryStore(repos *repository.Repositories) Store {
	return &repositoryStore{repos: repos}
}

func (s *repositoryStore) CreateSale(ctx context.Context, sale *domain.Sale) error {
	return s.repos.Sale.Create(ctx, sale)
}

func (s *repositoryStore) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Product, error) {
	return s.repos.Product.DecrementStock(ctx, productID, quantity)
}
