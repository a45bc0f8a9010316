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

type employeeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sql.DB, logger *zap.Logger) *employeeRepository {
	return &employeeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, username, password_hash, role, is_active, created_at, updated_at
		FROM employees
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query employees", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var employee domain.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Username,
			&employee.PasswordHash,
			&employee.Role,
			&employee.IsActive,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan employee", zap.Error(err))
			return nil, err
		}
		employees = append(employees, &employee)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `
		SELECT id, name, username, password_hash, role, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var employee domain.Employee
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Username,
		&employee.PasswordHash,
		&employee.Role,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "employee", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get employee by ID", zap.Error(err))
		return nil, err
	}

	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, name, username, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	if employee.UpdatedAt.IsZero() {
		employee.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		employee.ID,
		employee.Name,
		employee.Username,
		employee.PasswordHash,
		employee.Role,
		employee.IsActive,
		employee.CreatedAt,
		employee.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create employee", zap.Error(err))
		return err
	}

	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, username = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	employee.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		employee.ID,
		employee.Name,
		employee.Username,
		employee.PasswordHash,
		employee.Role,
		employee.IsActive,
		employee.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update employee", zap.Error(err))
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "employee", ID: employee.ID.String()}
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete employee", zap.Error(err))
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "employee", ID: id.String()}
	}

	return nil
}
