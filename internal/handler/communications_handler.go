package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/middleware"
	"github.com/octobees/commtrack/api/internal/service"
)

// CommunicationsHandler exposes the communication log.
type CommunicationsHandler struct {
	communications *service.CommunicationsService
}

// NewCommunicationsHandler creates a new handler instance.
func NewCommunicationsHandler(communications *service.CommunicationsService) *CommunicationsHandler {
	return &CommunicationsHandler{communications: communications}
}

// List handles GET /api/communications-user requests.
func (h *CommunicationsHandler) List(c echo.Context) error {
	records, err := h.communications.ListCommunications(c.Request().Context(), c.QueryParam("companyId"))
	if err != nil {
		return respondError(c, err, "failed to list communications")
	}
	return Success(c, http.StatusOK, "communications retrieved", records)
}

// Log handles POST /api/communications-user requests.
func (h *CommunicationsHandler) Log(c echo.Context) error {
	var req dto.LogCommunicationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	records, err := h.communications.LogCommunication(c.Request().Context(), req, middleware.UserIDFromContext(c))
	if err != nil {
		return respondError(c, err, "failed to log communication")
	}
	return Success(c, http.StatusCreated, "Communication logged successfully", records)
}
