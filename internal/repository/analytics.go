package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/commtrack/api/internal/service/analytics"
)

// AnalyticsRepository runs the grouped queries behind the stats dashboard.
// Windowed queries take the window start and an optional company filter.
type AnalyticsRepository interface {
	MethodCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodCount, error)
	DailyCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.DailyCount, error)
	MethodUsage(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodUsage, error)
	CompanyActivity(ctx context.Context) ([]analytics.CompanyActivity, error)
}

// PGXAnalyticsRepository implements AnalyticsRepository with pgx.
type PGXAnalyticsRepository struct {
	pool pgxPool
}

// NewPGXAnalyticsRepository instantiates an analytics repository.
func NewPGXAnalyticsRepository(pool *pgxpool.Pool) *PGXAnalyticsRepository {
	return &PGXAnalyticsRepository{pool: pool}
}

const windowFilter = `c.date >= $1 AND ($2::uuid IS NULL OR c.company_id = $2)`

// MethodCounts counts communications per method name inside the window.
func (r *PGXAnalyticsRepository) MethodCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodCount, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT m.name, COUNT(*)
        FROM communications c
        JOIN communication_methods m ON m.id = c.method_id
        WHERE `+windowFilter+`
        GROUP BY m.name
    `, since, companyID)
	if err != nil {
		return nil, fmt.Errorf("query method counts: %w", err)
	}
	return collect(rows, "method counts", func(row pgx.Rows) (analytics.MethodCount, error) {
		var mc analytics.MethodCount
		err := row.Scan(&mc.Name, &mc.Value)
		return mc, err
	})
}

// DailyCounts counts communications per UTC calendar day inside the window.
func (r *PGXAnalyticsRepository) DailyCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.DailyCount, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT to_char(c.date AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
        FROM communications c
        WHERE `+windowFilter+`
        GROUP BY day
        ORDER BY day ASC
    `, since, companyID)
	if err != nil {
		return nil, fmt.Errorf("query daily counts: %w", err)
	}
	return collect(rows, "daily counts", func(row pgx.Rows) (analytics.DailyCount, error) {
		var dc analytics.DailyCount
		err := row.Scan(&dc.Date, &dc.Count)
		return dc, err
	})
}

// MethodUsage reports per-method usage and note statistics inside the window.
func (r *PGXAnalyticsRepository) MethodUsage(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodUsage, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT
            m.name,
            COUNT(*),
            COALESCE(SUM(char_length(COALESCE(c.notes, ''))), 0),
            COUNT(*) FILTER (WHERE c.notes IS NOT NULL AND c.notes <> '')
        FROM communications c
        JOIN communication_methods m ON m.id = c.method_id
        WHERE `+windowFilter+`
        GROUP BY m.name
    `, since, companyID)
	if err != nil {
		return nil, fmt.Errorf("query method usage: %w", err)
	}
	return collect(rows, "method usage", func(row pgx.Rows) (analytics.MethodUsage, error) {
		var mu analytics.MethodUsage
		err := row.Scan(&mu.Method, &mu.TotalUsed, &mu.TotalNotesLength, &mu.WithNotes)
		return mu, err
	})
}

// CompanyActivity returns every company with its all-time communication
// count and latest communication date.
func (r *PGXAnalyticsRepository) CompanyActivity(ctx context.Context) ([]analytics.CompanyActivity, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT co.id, co.name, co.periodicity, COUNT(c.id), MAX(c.date)
        FROM companies co
        LEFT JOIN communications c ON c.company_id = co.id
        GROUP BY co.id, co.name, co.periodicity
        ORDER BY co.name ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("query company activity: %w", err)
	}
	return collect(rows, "company activity", func(row pgx.Rows) (analytics.CompanyActivity, error) {
		var ca analytics.CompanyActivity
		err := row.Scan(&ca.ID, &ca.Name, &ca.Periodicity, &ca.TotalCommunications, &ca.LastCommunication)
		return ca, err
	})
}

func collect[T any](rows pgx.Rows, what string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}
