package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/service"
)

// CompaniesHandler exposes company catalogue endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.CompaniesService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// List handles GET /api/companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	companies, err := h.service.ListCompanies(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to list companies")
	}
	return Success(c, http.StatusOK, "companies retrieved", companies)
}

// Create handles POST /api/companies/add requests.
func (h *CompaniesHandler) Create(c echo.Context) error {
	var req dto.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.CreateCompany(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to add company")
	}
	return Success(c, http.StatusCreated, "Company added successfully", company)
}

// Update handles PUT /api/companies/edit/:id requests.
func (h *CompaniesHandler) Update(c echo.Context) error {
	var req dto.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.UpdateCompany(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update company")
	}
	return Success(c, http.StatusOK, "Company updated successfully", company)
}

// Delete handles DELETE /api/companies/delete/:id requests.
func (h *CompaniesHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCompany(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete company")
	}
	return Success(c, http.StatusOK, "Company deleted successfully", nil)
}
