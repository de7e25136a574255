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

// CompaniesRepository describes persistence operations for companies.
type CompaniesRepository interface {
	List(ctx context.Context) ([]entity.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpsert(ctx context.Context, records []entity.Company) (BulkUpsertResult, error)
}

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyNameDuplicate = errors.New("company name already exists")
)

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

const companyColumns = `id, name, location, linkedin_profile, emails, phone_numbers, comments, periodicity, created_at, updated_at`

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

// List returns every company ordered by name.
func (r *PGXCompaniesRepository) List(ctx context.Context) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// FindByID fetches a single company.
func (r *PGXCompaniesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var c entity.Company
	if err := scanCompany(r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("query company: %w", err)
	}
	return &c, nil
}

// Create inserts a company and fills in its generated fields.
func (r *PGXCompaniesRepository) Create(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO companies (name, location, linkedin_profile, emails, phone_numbers, comments, periodicity)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+companyColumns,
		company.Name,
		company.Location,
		company.LinkedInProfile,
		stringSliceOrEmpty(company.Emails),
		stringSliceOrEmpty(company.PhoneNumbers),
		company.Comments,
		company.Periodicity,
	)
	if err := scanCompany(row, company); err != nil {
		if isUniqueViolation(err, "companies_name_key") {
			return fmt.Errorf("%w: %s", ErrCompanyNameDuplicate, company.Name)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update replaces every editable field of an existing company.
func (r *PGXCompaniesRepository) Update(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        UPDATE companies SET
            name = $2,
            location = $3,
            linkedin_profile = $4,
            emails = $5,
            phone_numbers = $6,
            comments = $7,
            periodicity = $8,
            updated_at = NOW()
        WHERE id = $1
        RETURNING `+companyColumns,
		company.ID,
		company.Name,
		company.Location,
		company.LinkedInProfile,
		stringSliceOrEmpty(company.Emails),
		stringSliceOrEmpty(company.PhoneNumbers),
		company.Comments,
		company.Periodicity,
	)
	if err := scanCompany(row, company); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCompanyNotFound
		}
		if isUniqueViolation(err, "companies_name_key") {
			return fmt.Errorf("%w: %s", ErrCompanyNameDuplicate, company.Name)
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company; its communications and notifications cascade.
func (r *PGXCompaniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

const bulkUpsertSQL = `
        INSERT INTO companies (name, location, linkedin_profile, emails, phone_numbers, comments, periodicity)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (name) DO UPDATE SET
            location = EXCLUDED.location,
            linkedin_profile = EXCLUDED.linkedin_profile,
            emails = EXCLUDED.emails,
            phone_numbers = EXCLUDED.phone_numbers,
            comments = EXCLUDED.comments,
            periodicity = EXCLUDED.periodicity,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsert persists a batch of companies keyed by name in one transaction.
func (r *PGXCompaniesRepository) BulkUpsert(ctx context.Context, records []entity.Company) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		var inserted bool
		err := tx.QueryRow(ctx, bulkUpsertSQL,
			record.Name,
			record.Location,
			record.LinkedInProfile,
			stringSliceOrEmpty(record.Emails),
			stringSliceOrEmpty(record.PhoneNumbers),
			record.Comments,
			record.Periodicity,
		).Scan(&inserted)
		if err != nil {
			return BulkUpsertResult{}, fmt.Errorf("bulk upsert company %q: %w", record.Name, err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return BulkUpsertResult{}, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func scanCompany(row pgx.Row, c *entity.Company) error {
	var emails, phones []string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Location,
		&c.LinkedInProfile,
		&emails,
		&phones,
		&c.Comments,
		&c.Periodicity,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	c.Emails = stringSliceOrEmpty(emails)
	c.PhoneNumbers = stringSliceOrEmpty(phones)
	return nil
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	companies := []entity.Company{}
	for rows.Next() {
		var c entity.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}
