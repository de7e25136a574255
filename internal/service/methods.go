package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
)

// MethodsService manages the catalogue of communication methods.
type MethodsService struct {
	repo repository.MethodsRepository
}

// NewMethodsService builds a MethodsService.
func NewMethodsService(repo repository.MethodsRepository) *MethodsService {
	return &MethodsService{repo: repo}
}

// ListMethods returns methods in sequence order.
func (s *MethodsService) ListMethods(ctx context.Context) ([]entity.CommunicationMethod, error) {
	return s.repo.List(ctx)
}

// CreateMethod validates and stores a method.
func (s *MethodsService) CreateMethod(ctx context.Context, req dto.MethodRequest) (*entity.CommunicationMethod, error) {
	method, err := buildMethod(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

// UpdateMethod replaces a method's fields.
func (s *MethodsService) UpdateMethod(ctx context.Context, id string, req dto.MethodRequest) (*entity.CommunicationMethod, error) {
	methodID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, validationErrorf("invalid method id")
	}
	method, err := buildMethod(req)
	if err != nil {
		return nil, err
	}
	method.ID = methodID
	if err := s.repo.Update(ctx, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

// DeleteMethod removes a method.
func (s *MethodsService) DeleteMethod(ctx context.Context, id string) error {
	methodID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return validationErrorf("invalid method id")
	}
	return s.repo.Delete(ctx, methodID)
}

func buildMethod(req dto.MethodRequest) (entity.CommunicationMethod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.CommunicationMethod{}, validationErrorf("name is required")
	}
	if req.Sequence < 0 {
		return entity.CommunicationMethod{}, validationErrorf("sequence must not be negative")
	}
	return entity.CommunicationMethod{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Sequence:    req.Sequence,
		Mandatory:   req.Mandatory,
	}, nil
}
