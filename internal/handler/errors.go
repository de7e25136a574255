package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/repository"
	"github.com/octobees/commtrack/api/internal/service"
)

// respondError maps service and repository errors onto the envelope.
// Anything unrecognised becomes a 500 that carries err as details.
func respondError(c echo.Context, err error, fallback string) error {
	var validation service.ValidationError
	switch {
	case errors.As(err, &validation):
		return Error(c, http.StatusBadRequest, validation.Message)
	case errors.Is(err, repository.ErrCompanyNameDuplicate):
		return Error(c, http.StatusBadRequest, "company name already exists")
	case errors.Is(err, repository.ErrMethodNameDuplicate):
		return Error(c, http.StatusBadRequest, "communication method already exists")
	case errors.Is(err, repository.ErrEmailDuplicate), errors.Is(err, service.ErrEmailAlreadyExists):
		return Error(c, http.StatusBadRequest, "email already exists")
	case errors.Is(err, repository.ErrUnknownReference):
		return Error(c, http.StatusBadRequest, "unknown company or communication method")
	case errors.Is(err, repository.ErrCompanyNotFound):
		return Error(c, http.StatusNotFound, "company not found")
	case errors.Is(err, repository.ErrMethodNotFound):
		return Error(c, http.StatusNotFound, "communication method not found")
	case errors.Is(err, repository.ErrUserNotFound):
		return Error(c, http.StatusNotFound, "user not found")
	default:
		return ErrorWithDetails(c, http.StatusInternalServerError, fallback, err.Error())
	}
}
