package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/service"
)

// NotificationsHandler exposes generated follow-up notifications.
type NotificationsHandler struct {
	notifications *service.NotificationsService
}

// NewNotificationsHandler creates a new handler instance.
func NewNotificationsHandler(notifications *service.NotificationsService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/notifications requests.
func (h *NotificationsHandler) List(c echo.Context) error {
	records, err := h.notifications.ListNotifications(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return respondError(c, err, "failed to list notifications")
	}
	return Success(c, http.StatusOK, "notifications retrieved", records)
}

// Refresh handles POST /api/admin/notifications/refresh requests.
func (h *NotificationsHandler) Refresh(c echo.Context) error {
	count, err := h.notifications.Refresh(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to refresh notifications")
	}
	return Success(c, http.StatusOK, "notifications refreshed", map[string]int{"count": count})
}
