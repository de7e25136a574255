package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/service"
)

// MethodsHandler exposes communication method endpoints.
type MethodsHandler struct {
	methods *service.MethodsService
}

// NewMethodsHandler creates a new handler instance.
func NewMethodsHandler(methods *service.MethodsService) *MethodsHandler {
	return &MethodsHandler{methods: methods}
}

// List handles GET /api/communications requests.
func (h *MethodsHandler) List(c echo.Context) error {
	methods, err := h.methods.ListMethods(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to list communication methods")
	}
	return Success(c, http.StatusOK, "communication methods retrieved", methods)
}

// Create handles POST /api/communications requests.
func (h *MethodsHandler) Create(c echo.Context) error {
	var req dto.MethodRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	method, err := h.methods.CreateMethod(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create communication method")
	}
	return Success(c, http.StatusCreated, "communication method created", method)
}

// Update handles PUT /api/communications/:id requests.
func (h *MethodsHandler) Update(c echo.Context) error {
	var req dto.MethodRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	method, err := h.methods.UpdateMethod(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update communication method")
	}
	return Success(c, http.StatusOK, "communication method updated", method)
}

// Delete handles DELETE /api/communications/:id requests.
func (h *MethodsHandler) Delete(c echo.Context) error {
	if err := h.methods.DeleteMethod(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete communication method")
	}
	return Success(c, http.StatusOK, "communication method deleted", nil)
}
