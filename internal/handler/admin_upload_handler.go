package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/service"
)

// AdminUploadHandler handles CSV ingestion for administrators.
type AdminUploadHandler struct {
	companiesService *service.CompaniesService
}

// NewAdminUploadHandler wires a handler backed by the companies service.
func NewAdminUploadHandler(companiesService *service.CompaniesService) *AdminUploadHandler {
	return &AdminUploadHandler{companiesService: companiesService}
}

const maxImportBytes = 5 << 20

// ImportCompanies upserts companies from the multipart "file" field.
func (h *AdminUploadHandler) ImportCompanies(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}
	if fileHeader.Size > maxImportBytes {
		return Error(c, http.StatusBadRequest, "csv file exceeds 5MB")
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != "" && ext != ".csv" {
		return Error(c, http.StatusBadRequest, "only .csv files are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.companiesService.ImportCompaniesCSV(c.Request().Context(), file)
	if err != nil {
		return respondError(c, err, "failed to process csv")
	}

	c.Logger().Infof("company import %s: %d inserted, %d updated", fileHeader.Filename, summary.Inserted, summary.Updated)
	return Success(c, http.StatusOK, "companies CSV processed", summary)
}
