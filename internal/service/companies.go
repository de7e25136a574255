package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
)

// CompaniesService exposes read/write operations for the company catalogue.
type CompaniesService struct {
	repo     repository.CompaniesRepository
	contacts *ContactNormalizer
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// NewCompaniesService creates a new instance of CompaniesService.
func NewCompaniesService(repo repository.CompaniesRepository, contacts *ContactNormalizer) *CompaniesService {
	if contacts == nil {
		contacts = NewContactNormalizer("")
	}
	return &CompaniesService{repo: repo, contacts: contacts}
}

// ListCompanies returns every company ordered by name.
func (s *CompaniesService) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	return s.repo.List(ctx)
}

// CreateCompany validates and stores a new company.
func (s *CompaniesService) CreateCompany(ctx context.Context, req dto.CompanyRequest) (*entity.Company, error) {
	company, err := s.buildCompany(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany replaces the editable fields of an existing company.
func (s *CompaniesService) UpdateCompany(ctx context.Context, id string, req dto.CompanyRequest) (*entity.Company, error) {
	companyID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, validationErrorf("invalid company id")
	}
	company, err := s.buildCompany(req)
	if err != nil {
		return nil, err
	}
	company.ID = companyID
	if err := s.repo.Update(ctx, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany removes a company and, through the store, its history.
func (s *CompaniesService) DeleteCompany(ctx context.Context, id string) error {
	companyID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return validationErrorf("invalid company id")
	}
	return s.repo.Delete(ctx, companyID)
}

func (s *CompaniesService) buildCompany(req dto.CompanyRequest) (entity.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.Company{}, validationErrorf("name is required")
	}
	linkedIn, err := s.contacts.LinkedIn(req.LinkedInProfile)
	if err != nil {
		return entity.Company{}, err
	}
	emails, err := s.contacts.Emails(req.Emails)
	if err != nil {
		return entity.Company{}, err
	}
	phones, err := s.contacts.Phones(req.PhoneNumbers)
	if err != nil {
		return entity.Company{}, err
	}
	periodicity, err := s.contacts.Periodicity(req.Periodicity)
	if err != nil {
		return entity.Company{}, err
	}

	return entity.Company{
		Name:            name,
		Location:        strings.TrimSpace(req.Location),
		LinkedInProfile: linkedIn,
		Emails:          emails,
		PhoneNumbers:    phones,
		Comments:        strings.TrimSpace(req.Comments),
		Periodicity:     periodicity,
	}, nil
}

var requiredCSVHeaders = []string{"name", "linkedin_profile"}

const csvListSeparator = ";"

// ImportCompaniesCSV ingests companies from a CSV reader, upserting by name.
// Any invalid row rejects the whole file.
func (s *CompaniesService) ImportCompaniesCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, validationErrorf("csv file is empty")
		}
		return UploadSummary{}, validationErrorf("read csv header: %v", err)
	}

	indexMap, err := buildHeaderIndex(header)
	if err != nil {
		return UploadSummary{}, err
	}

	var (
		records []entity.Company
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return UploadSummary{}, validationErrorf("row %d: %v", rowNum, err)
		}
		if blankRow(row) {
			continue
		}

		field := func(name string) string {
			idx, ok := indexMap[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		company, err := s.buildCompany(dto.CompanyRequest{
			Name:            field("name"),
			Location:        field("location"),
			LinkedInProfile: field("linkedin_profile"),
			Emails:          splitList(field("emails")),
			PhoneNumbers:    splitList(field("phone_numbers")),
			Comments:        field("comments"),
			Periodicity:     field("periodicity"),
		})
		if err != nil {
			return UploadSummary{}, validationErrorf("row %d: %v", rowNum, err)
		}
		records = append(records, company)
	}

	if len(records) == 0 {
		return UploadSummary{}, validationErrorf("csv file has no company rows")
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, validationErrorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, csvListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
