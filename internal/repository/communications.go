package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
)

// CommunicationsRepository persists logged communications.
type CommunicationsRepository interface {
	List(ctx context.Context, filter dto.CommunicationFilter) ([]entity.Communication, error)
	CreateMany(ctx context.Context, records []entity.Communication) ([]entity.Communication, error)
}

// ErrUnknownReference is returned when a communication points at a missing company or method.
var ErrUnknownReference = errors.New("company or communication method does not exist")

// PGXCommunicationsRepository implements CommunicationsRepository with pgx.
type PGXCommunicationsRepository struct {
	pool pgxPool
}

// NewPGXCommunicationsRepository instantiates a communications repository.
func NewPGXCommunicationsRepository(pool *pgxpool.Pool) *PGXCommunicationsRepository {
	return &PGXCommunicationsRepository{pool: pool}
}

// List returns communications newest first with company and method names
// resolved. Names are empty when the reference no longer resolves.
func (r *PGXCommunicationsRepository) List(ctx context.Context, filter dto.CommunicationFilter) ([]entity.Communication, error) {
	query := strings.Builder{}
	query.WriteString(`
        SELECT
            c.id,
            c.company_id,
            c.method_id,
            c.date,
            COALESCE(c.notes, ''),
            c.created_by,
            c.created_at,
            COALESCE(co.name, ''),
            COALESCE(m.name, '')
        FROM communications c
        LEFT JOIN companies co ON co.id = c.company_id
        LEFT JOIN communication_methods m ON m.id = c.method_id
    `)

	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.CompanyID != nil {
		clauses = append(clauses, fmt.Sprintf("c.company_id = $%d", idx))
		args = append(args, *filter.CompanyID)
		idx++
	}
	if filter.Since != nil {
		clauses = append(clauses, fmt.Sprintf("c.date >= $%d", idx))
		args = append(args, *filter.Since)
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY c.date DESC, c.created_at DESC")

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list communications: %w", err)
	}
	defer rows.Close()

	communications := []entity.Communication{}
	for rows.Next() {
		var c entity.Communication
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.MethodID, &c.Date, &c.Notes, &c.CreatedBy, &c.CreatedAt, &c.CompanyName, &c.MethodName); err != nil {
			return nil, fmt.Errorf("scan communication: %w", err)
		}
		communications = append(communications, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate communications: %w", err)
	}
	return communications, nil
}

const insertCommunicationSQL = `
        INSERT INTO communications (company_id, method_id, date, notes, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `

// CreateMany inserts every record in one transaction; either all are stored or none.
func (r *PGXCommunicationsRepository) CreateMany(ctx context.Context, records []entity.Communication) ([]entity.Communication, error) {
	if len(records) == 0 {
		return []entity.Communication{}, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("start communications tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]entity.Communication, 0, len(records))
	for _, record := range records {
		err := tx.QueryRow(ctx, insertCommunicationSQL,
			record.CompanyID, record.MethodID, record.Date, record.Notes, record.CreatedBy,
		).Scan(&record.ID, &record.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, fmt.Errorf("%w: company %s", ErrUnknownReference, record.CompanyID)
			}
			return nil, fmt.Errorf("insert communication: %w", err)
		}
		created = append(created, record)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit communications tx: %w", err)
	}
	return created, nil
}
