package middleware

import (
	"github.com/labstack/echo/v4"
)

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyClaims    = "claims"
	ContextKeyRequestID = "request_id"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// abort writes an error envelope matching the handler responses.
func abort(c echo.Context, status int, message string) error {
	return c.JSON(status, errorBody{Status: "error", Message: message})
}
