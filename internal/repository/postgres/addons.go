package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/pkg/errors"
)

type addonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAddonRepository creates a new addon repository
func NewAddonRepository(db *sql.DB, logger *zap.Logger) *addonRepository {
	return &addonRepository{
		db:     db,
		logger: logger,
	}
}

func (r *addonRepository) GetAll(ctx context.Context) ([]*domain.Addon, error) {
	query := `
		SELECT id, name, price, category_id, created_at, updated_at
		FROM addons
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query addons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var addons []*domain.Addon
	for rows.Next() {
		addon, err := scanAddon(rows)
		if err != nil {
			r.logger.Error("Failed to scan addon", zap.Error(err))
			return nil, err
		}
		addons = append(addons, addon)
	}

	return addons, rows.Err()
}

func (r *addonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Addon, error) {
	query := `
		SELECT id, name, price, category_id, created_at, updated_at
		FROM addons
		WHERE id = $1
	`

	addon, err := scanAddon(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "addon", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get addon by ID", zap.Error(err))
		return nil, err
	}

	return addon, nil
}

func (r *addonRepository) Create(ctx context.Context, addon *domain.Addon) error {
	query := `
		INSERT INTO addons (id, name, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	if addon.ID == uuid.Nil {
		addon.ID = uuid.New()
	}
	if addon.CreatedAt.IsZero() {
		addon.CreatedAt = now
	}
	if addon.UpdatedAt.IsZero() {
		addon.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		addon.ID,
		addon.Name,
		addon.Price,
		addon.CategoryID,
		addon.CreatedAt,
		addon.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create addon", zap.Error(err))
		return err
	}

	return nil
}

func (r *addonRepository) Update(ctx context.Context, addon *domain.Addon) error {
	query := `
		UPDATE addons
		SET name = $2, price = $3, category_id = $4, updated_at = $5
		WHERE id = $1
	`

	addon.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		addon.ID,
		addon.Name,
		addon.Price,
		addon.CategoryID,
		addon.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update addon", zap.Error(err))
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "addon", ID: addon.ID.String()}
	}

	return nil
}

func (r *addonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete addon", zap.Error(err))
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "addon", ID: id.String()}
	}

	return nil
}

func scanAddon(row rowScanner) (*domain.Addon, error) {
	var addon domain.Addon
	var categoryID uuid.NullUUID

	err := row.Scan(
		&addon.ID,
		&addon.Name,
		&addon.Price,
		&categoryID,
		&addon.CreatedAt,
		&addon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		addon.CategoryID = &categoryID.UUID
	}

	return &addon, nil
}
