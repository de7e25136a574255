package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/commtrack/api/internal/entity"
)

// MethodsRepository persists communication methods.
type MethodsRepository interface {
	List(ctx context.Context) ([]entity.CommunicationMethod, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CommunicationMethod, error)
	Create(ctx context.Context, method *entity.CommunicationMethod) error
	Update(ctx context.Context, method *entity.CommunicationMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	ErrMethodNotFound      = errors.New("communication method not found")
	ErrMethodNameDuplicate = errors.New("communication method name already exists")
)

const methodColumns = `id, name, description, sequence, mandatory, created_at, updated_at`

// PGXMethodsRepository implements MethodsRepository with pgx.
type PGXMethodsRepository struct {
	pool pgxPool
}

// NewPGXMethodsRepository instantiates a methods repository.
func NewPGXMethodsRepository(pool *pgxpool.Pool) *PGXMethodsRepository {
	return &PGXMethodsRepository{pool: pool}
}

// List returns methods in display order.
func (r *PGXMethodsRepository) List(ctx context.Context) ([]entity.CommunicationMethod, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+methodColumns+` FROM communication_methods ORDER BY sequence ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list methods: %w", err)
	}
	defer rows.Close()

	methods := []entity.CommunicationMethod{}
	for rows.Next() {
		var m entity.CommunicationMethod
		if err := scanMethod(rows, &m); err != nil {
			return nil, fmt.Errorf("scan method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate methods: %w", err)
	}
	return methods, nil
}

// FindByID fetches one method.
func (r *PGXMethodsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CommunicationMethod, error) {
	var m entity.CommunicationMethod
	if err := scanMethod(r.pool.QueryRow(ctx, `SELECT `+methodColumns+` FROM communication_methods WHERE id = $1`, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("query method: %w", err)
	}
	return &m, nil
}

// Create inserts a method.
func (r *PGXMethodsRepository) Create(ctx context.Context, method *entity.CommunicationMethod) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO communication_methods (name, description, sequence, mandatory)
        VALUES ($1, $2, $3, $4)
        RETURNING `+methodColumns,
		method.Name, method.Description, method.Sequence, method.Mandatory)
	if err := scanMethod(row, method); err != nil {
		if isUniqueViolation(err, "communication_methods_name_key") {
			return fmt.Errorf("%w: %s", ErrMethodNameDuplicate, method.Name)
		}
		return fmt.Errorf("insert method: %w", err)
	}
	return nil
}

// Update replaces a method's editable fields.
func (r *PGXMethodsRepository) Update(ctx context.Context, method *entity.CommunicationMethod) error {
	row := r.pool.QueryRow(ctx, `
        UPDATE communication_methods
        SET name = $2, description = $3, sequence = $4, mandatory = $5, updated_at = NOW()
        WHERE id = $1
        RETURNING `+methodColumns,
		method.ID, method.Name, method.Description, method.Sequence, method.Mandatory)
	if err := scanMethod(row, method); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMethodNotFound
		}
		if isUniqueViolation(err, "communication_methods_name_key") {
			return fmt.Errorf("%w: %s", ErrMethodNameDuplicate, method.Name)
		}
		return fmt.Errorf("update method: %w", err)
	}
	return nil
}

// Delete removes a method; communications logged with it cascade.
func (r *PGXMethodsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM communication_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete method: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrMethodNotFound
	}
	return nil
}

func scanMethod(row pgx.Row, m *entity.CommunicationMethod) error {
	return row.Scan(&m.ID, &m.Name, &m.Description, &m.Sequence, &m.Mandatory, &m.CreatedAt, &m.UpdatedAt)
}
