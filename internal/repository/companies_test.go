package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/commtrack/api/internal/entity"
)

// stubTx implements the parts of pgx.Tx the repositories use.
type stubTx struct {
	pgx.Tx
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	copyFunc     func(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
	committed    bool
	rolledBack   bool
}

func (s *stubTx) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return s.queryRowFunc(ctx, query, args...)
}

func (s *stubTx) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return s.execFunc(ctx, query, args...)
}

func (s *stubTx) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	return s.copyFunc(ctx, table, columns, src)
}

func (s *stubTx) Commit(ctx context.Context) error {
	s.committed = true
	return nil
}

func (s *stubTx) Rollback(ctx context.Context) error {
	if !s.committed {
		s.rolledBack = true
	}
	return nil
}

func companyScan(name string) func(dest ...any) error {
	return func(dest ...any) error {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		*dest[0].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
		*dest[1].(*string) = name
		*dest[2].(*string) = "Berlin"
		*dest[3].(*string) = "https://www.linkedin.com/company/acme"
		*dest[4].(*[]string) = []string{"info@acme.com"}
		*dest[5].(*[]string) = nil
		*dest[6].(*string) = ""
		*dest[7].(*string) = entity.PeriodicityOneMonth
		*dest[8].(*time.Time) = created
		*dest[9].(*time.Time) = created
		return nil
	}
}

func TestPGXCompaniesRepository_List(t *testing.T) {
	repo := &PGXCompaniesRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{scans: []func(dest ...any) error{companyScan("Acme"), companyScan("Globex")}}, nil
		},
	}}

	companies, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies) != 2 || companies[1].Name != "Globex" {
		t.Fatalf("unexpected companies: %+v", companies)
	}
	if companies[0].PhoneNumbers == nil || len(companies[0].PhoneNumbers) != 0 {
		t.Fatalf("expected empty phone list, got %#v", companies[0].PhoneNumbers)
	}
	if companies[0].Emails[0] != "info@acme.com" {
		t.Fatalf("unexpected emails: %v", companies[0].Emails)
	}
}

func TestPGXCompaniesRepository_FindByID(t *testing.T) {
	repo := &PGXCompaniesRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: companyScan("Acme")}
		},
	}}
	company, err := repo.FindByID(context.Background(), uuid.New())
	if err != nil || company.Name != "Acme" {
		t.Fatalf("unexpected result: %+v, %v", company, err)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.FindByID(context.Background(), uuid.New()); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestPGXCompaniesRepository_Create(t *testing.T) {
	repo := &PGXCompaniesRepository{}
	if err := repo.Create(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil company")
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if len(args) != 7 {
				t.Fatalf("expected 7 args, got %d", len(args))
			}
			if phones, _ := args[4].([]string); phones == nil {
				t.Fatalf("expected non-nil phone slice")
			}
			return &stubRow{scan: companyScan("Acme")}
		},
	}
	company := &entity.Company{Name: "Acme", LinkedInProfile: "https://www.linkedin.com/company/acme", Periodicity: entity.PeriodicityOneMonth}
	if err := repo.Create(context.Background(), company); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if company.ID == uuid.Nil || company.CreatedAt.IsZero() {
		t.Fatalf("expected generated fields, got %+v", company)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "companies_name_key"}
			}}
		},
	}
	if err := repo.Create(context.Background(), &entity.Company{Name: "Acme"}); !errors.Is(err, ErrCompanyNameDuplicate) {
		t.Fatalf("expected ErrCompanyNameDuplicate, got %v", err)
	}
}

func TestPGXCompaniesRepository_UpdateNotFound(t *testing.T) {
	repo := &PGXCompaniesRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}
	if err := repo.Update(context.Background(), &entity.Company{ID: uuid.New(), Name: "Acme"}); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestPGXCompaniesRepository_Delete(t *testing.T) {
	repo := &PGXCompaniesRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}}
	if err := repo.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestPGXCompaniesRepository_BulkUpsertEmpty(t *testing.T) {
	repo := &PGXCompaniesRepository{}
	res, err := repo.BulkUpsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("expected zero summary, got %+v", res)
	}
}

func TestPGXCompaniesRepository_BulkUpsert(t *testing.T) {
	calls := 0
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			calls++
			inserted := calls != 2
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*bool) = inserted
				return nil
			}}
		},
	}
	repo := &PGXCompaniesRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) { return tx, nil },
	}}

	res, err := repo.BulkUpsert(context.Background(), []entity.Company{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Inserted != 2 || res.Updated != 1 || res.Total != 3 {
		t.Fatalf("unexpected summary: %+v", res)
	}
	if !tx.committed {
		t.Fatalf("expected commit")
	}
}

func TestPGXCompaniesRepository_BulkUpsertRollsBack(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return errors.New("boom") }}
		},
	}
	repo := &PGXCompaniesRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) { return tx, nil },
	}}

	if _, err := repo.BulkUpsert(context.Background(), []entity.Company{{Name: "A"}}); err == nil {
		t.Fatalf("expected error")
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("expected rollback without commit")
	}
}
