package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

type saleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *sql.DB, logger *zap.Logger) *saleRepository {
	return &saleRepository{
		db:     db,
		logger: logger,
	}
}

// saleItemAddon is the persisted form of a cart addon. The sale keeps its own
// copy of the addon name and price, so later catalog edits do not rewrite
// history.
type saleItemAddon struct {
	AddonID  uuid.UUID `json:"addon_id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin sale transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sales (id, total, payment_method, payment_amount, payment_change, customer_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, query,
		sale.ID,
		sale.Total,
		string(sale.Payment.Method),
		sale.Payment.Amount,
		sale.Payment.Change,
		sale.CustomerName,
		sale.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert sale", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, position, product_id, product_name, unit_price, quantity, addons, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i, item := range sale.Items {
		addons := make([]saleItemAddon, len(item.Addons))
		for j, a := range item.Addons {
			addons[j] = saleItemAddon{
				AddonID:  a.Addon.ID,
				Name:     a.Addon.Name,
				Price:    a.Addon.Price,
				Quantity: a.Quantity,
			}
		}
		addonsJSON, err := json.Marshal(addons)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, itemQuery,
			uuid.New(),
			sale.ID,
			i,
			item.Product.ID,
			item.Product.Name,
			item.Product.Price,
			item.Quantity,
			addonsJSON,
			item.Note,
		)
		if err != nil {
			r.logger.Error("Failed to insert sale item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `
		SELECT id, total, payment_method, payment_amount, payment_change, customer_name, created_at
		FROM sales
		WHERE id = $1
	`

	sale, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "sale", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get sale by ID", zap.Error(err))
		return nil, err
	}

	items, err := r.getItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

func (r *saleRepository) List(ctx context.Context, filter repository.SaleFilter) ([]*domain.Sale, error) {
	query := `
		SELECT id, total, payment_method, payment_amount, payment_change, customer_name, created_at
		FROM sales
		WHERE 1=1
	`

	var args []interface{}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if filter.Method != nil {
		args = append(args, string(*filter.Method))
		query += fmt.Sprintf(" AND payment_method = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query sales", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			r.logger.Error("Failed to scan sale", zap.Error(err))
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, sale := range sales {
		items, err := r.getItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	return sales, nil
}

func (r *saleRepository) getItems(ctx context.Context, saleID uuid.UUID) ([]domain.CartLineItem, error) {
	query := `
		SELECT product_id, product_name, unit_price, quantity, addons, note
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		r.logger.Error("Failed to query sale items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartLineItem
	for rows.Next() {
		var item domain.CartLineItem
		var addonsJSON []byte

		err := rows.Scan(
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Price,
			&item.Quantity,
			&addonsJSON,
			&item.Note,
		)
		if err != nil {
			r.logger.Error("Failed to scan sale item", zap.Error(err))
			return nil, err
		}

		addons, err := decodeAddons(addonsJSON)
		if err != nil {
			return nil, &errors.ErrPersistence{Op: "decode sale item addons", Err: err}
		}
		item.Addons = addons

		items = append(items, item)
	}

	return items, rows.Err()
}

// decodeAddons deserializes and validates the stored addon records. A
// malformed record is a persistence failure, not a silently-defaulted value.
func decodeAddons(data []byte) ([]domain.CartAddon, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stored []saleItemAddon
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	if len(stored) == 0 {
		return nil, nil
	}

	addons := make([]domain.CartAddon, len(stored))
	for i, s := range stored {
		if s.AddonID == uuid.Nil {
			return nil, fmt.Errorf("addon record %d has no id", i)
		}
		if s.Quantity < 1 {
			return nil, fmt.Errorf("addon record %d has non-positive quantity %d", i, s.Quantity)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("addon record %d has negative price %f", i, s.Price)
		}
		addons[i] = domain.CartAddon{
			Addon: domain.Addon{
				ID:    s.AddonID,
				Name:  s.Name,
				Price: s.Price,
			},
			Quantity: s.Quantity,
		}
	}

	return addons, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var sale domain.Sale
	var method string
	var change sql.NullFloat64
	var customerName sql.NullString

	err := row.Scan(
		&sale.ID,
		&sale.Total,
		&method,
		&sale.Payment.Amount,
		&change,
		&customerName,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.Payment.Method = domain.PaymentMethod(method)
	if !sale.Payment.Method.IsValid() {
		return nil, &errors.ErrPersistence{Op: "decode sale", Err: fmt.Errorf("unknown payment method %q", method)}
	}
	if change.Valid {
		sale.Payment.Change = &change.Float64
	}
	if customerName.Valid {
		sale.CustomerName = &customerName.String
	}

	return &sale, nil
}
