package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/service"
	"github.com/octobees/commtrack/api/internal/service/report"
)

// AnalyticsHandler serves dashboard statistics and report downloads.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler instance.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Stats handles GET /api/analytics/communication-stats requests.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	return h.stats(c, c.QueryParam("companyId"))
}

// CompanyStats handles GET /api/analytics/company/:companyId/stats requests.
func (h *AnalyticsHandler) CompanyStats(c echo.Context) error {
	return h.stats(c, c.Param("companyId"))
}

func (h *AnalyticsHandler) stats(c echo.Context, rawCompanyID string) error {
	companyID, err := parseOptionalUUID(rawCompanyID)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid companyId")
	}

	result, err := h.analytics.Stats(c.Request().Context(), dto.StatsQuery{
		Timeframe: c.QueryParam("timeframe"),
		CompanyID: companyID,
	})
	if err != nil {
		return ErrorWithDetails(c, http.StatusInternalServerError, "Error fetching communication stats", err.Error())
	}

	return Success(c, http.StatusOK, "communication stats retrieved", result)
}

// DownloadReport handles GET /api/analytics/download-report requests. The
// report is rendered fully before any byte is written so a failure can still
// produce a JSON error.
func (h *AnalyticsHandler) DownloadReport(c echo.Context) error {
	companyID, err := parseOptionalUUID(c.QueryParam("companyId"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid companyId")
	}

	var buf bytes.Buffer
	format, err := h.analytics.Report(c.Request().Context(), &buf, dto.ReportQuery{
		Format:    c.QueryParam("format"),
		Timeframe: c.QueryParam("timeframe"),
		CompanyID: companyID,
	})
	if err != nil {
		if errors.Is(err, report.ErrInvalidFormat) {
			return Error(c, http.StatusBadRequest, "Invalid format specified")
		}
		return ErrorWithDetails(c, http.StatusInternalServerError, "Error generating report", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.Filename()))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
