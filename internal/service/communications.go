package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
)

// CommunicationsService records and lists interactions with companies.
type CommunicationsService struct {
	repo repository.CommunicationsRepository
	now  func() time.Time
}

// NewCommunicationsService builds a CommunicationsService.
func NewCommunicationsService(repo repository.CommunicationsRepository) *CommunicationsService {
	return &CommunicationsService{repo: repo, now: time.Now}
}

// ListCommunications returns history newest first, optionally for one company.
func (s *CommunicationsService) ListCommunications(ctx context.Context, companyID string) ([]entity.Communication, error) {
	var filter dto.CommunicationFilter
	if companyID = strings.TrimSpace(companyID); companyID != "" {
		id, err := uuid.Parse(companyID)
		if err != nil {
			return nil, validationErrorf("invalid companyId")
		}
		filter.CompanyID = &id
	}
	return s.repo.List(ctx, filter)
}

// LogCommunication stores one communication per selected company. The
// author is recorded when userID parses as a uuid.
func (s *CommunicationsService) LogCommunication(ctx context.Context, req dto.LogCommunicationRequest, userID string) ([]entity.Communication, error) {
	if len(req.CompanyIDs) == 0 {
		return nil, validationErrorf("companyIds must contain at least one company")
	}
	methodID, err := uuid.Parse(strings.TrimSpace(req.MethodID))
	if err != nil {
		return nil, validationErrorf("invalid methodId")
	}

	date := s.now().UTC()
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}

	var author *uuid.UUID
	if id, err := uuid.Parse(userID); err == nil {
		author = &id
	}

	seen := make(map[uuid.UUID]struct{}, len(req.CompanyIDs))
	records := make([]entity.Communication, 0, len(req.CompanyIDs))
	for _, raw := range req.CompanyIDs {
		companyID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, validationErrorf("invalid company id: %s", raw)
		}
		if _, dup := seen[companyID]; dup {
			continue
		}
		seen[companyID] = struct{}{}
		records = append(records, entity.Communication{
			CompanyID: companyID,
			MethodID:  methodID,
			Date:      date,
			Notes:     strings.TrimSpace(req.Notes),
			CreatedBy: author,
		})
	}

	return s.repo.CreateMany(ctx, records)
}
