package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/middleware"
	"github.com/octobees/commtrack/api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "Email and password must not be empty")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			return Error(c, http.StatusBadRequest, "User already exists")
		}
		return respondError(c, err, "unable to register user")
	}

	return Success(c, http.StatusCreated, "User registered successfully", resp)
}

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "Email and password must not be empty")
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusBadRequest, "Invalid email or password")
		}
		return respondError(c, err, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "Login successful", resp)
}

// Protected handles GET /api/protected and echoes the verified token claims.
func (h *AuthHandler) Protected(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return Error(c, http.StatusUnauthorized, "invalid token")
	}

	return Success(c, http.StatusOK, "This is a protected route", map[string]any{
		"id":    claims.UserID(),
		"email": claims.Email,
		"role":  claims.Role,
	})
}
