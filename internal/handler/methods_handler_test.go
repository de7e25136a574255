package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
	"github.com/octobees/commtrack/api/internal/service"
)

type stubMethodsRepository struct {
	list   func(ctx context.Context) ([]entity.CommunicationMethod, error)
	create func(ctx context.Context, method *entity.CommunicationMethod) error
	update func(ctx context.Context, method *entity.CommunicationMethod) error
	delete func(ctx context.Context, id uuid.UUID) error
}

func (s *stubMethodsRepository) List(ctx context.Context) ([]entity.CommunicationMethod, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubMethodsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CommunicationMethod, error) {
	return nil, errors.New("not implemented")
}

func (s *stubMethodsRepository) Create(ctx context.Context, method *entity.CommunicationMethod) error {
	if s.create != nil {
		return s.create(ctx, method)
	}
	return nil
}

func (s *stubMethodsRepository) Update(ctx context.Context, method *entity.CommunicationMethod) error {
	if s.update != nil {
		return s.update(ctx, method)
	}
	return nil
}

func (s *stubMethodsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func TestMethodsHandler_List(t *testing.T) {
	e := echo.New()
	handler := NewMethodsHandler(service.NewMethodsService(&stubMethodsRepository{
		list: func(ctx context.Context) ([]entity.CommunicationMethod, error) {
			return []entity.CommunicationMethod{{Name: "LinkedIn Post", Sequence: 1}}, nil
		},
	}))

	rec := httptest.NewRecorder()
	_ = handler.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/communications", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMethodsHandler_Create(t *testing.T) {
	tests := map[string]struct {
		payload    dto.MethodRequest
		createErr  error
		expectCode int
	}{
		"success": {
			payload:    dto.MethodRequest{Name: "Email", Sequence: 2},
			expectCode: http.StatusCreated,
		},
		"missing name": {
			payload:    dto.MethodRequest{Sequence: 2},
			expectCode: http.StatusBadRequest,
		},
		"duplicate name": {
			payload:    dto.MethodRequest{Name: "Email"},
			createErr:  repository.ErrMethodNameDuplicate,
			expectCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			handler := NewMethodsHandler(service.NewMethodsService(&stubMethodsRepository{
				create: func(ctx context.Context, method *entity.CommunicationMethod) error {
					return tt.createErr
				},
			}))

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(t, http.MethodPost, "/api/communications", tt.payload), rec)
			_ = handler.Create(c)
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}

func TestMethodsHandler_UpdateAndDelete(t *testing.T) {
	e := echo.New()
	repo := &stubMethodsRepository{
		update: func(ctx context.Context, method *entity.CommunicationMethod) error {
			return repository.ErrMethodNotFound
		},
		delete: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	handler := NewMethodsHandler(service.NewMethodsService(repo))
	id := uuid.NewString()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPut, "/api/communications/"+id, dto.MethodRequest{Name: "Phone Call"}), rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = handler.Update(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/communications/"+id, nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = handler.Delete(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
