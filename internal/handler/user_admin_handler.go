package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/middleware"
	"github.com/octobees/commtrack/api/internal/service"
)

// UserAdminHandler exposes administrative user management endpoints.
type UserAdminHandler struct {
	users *service.UserService
}

// NewUserAdminHandler constructs a handler instance.
func NewUserAdminHandler(users *service.UserService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

// List returns all users.
func (h *UserAdminHandler) List(c echo.Context) error {
	records, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to list users")
	}
	return Success(c, http.StatusOK, "users retrieved", records)
}

// Create provisions a new user.
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.CreateUser(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create user")
	}

	return Success(c, http.StatusCreated, "user created", user)
}

// Update modifies an existing user.
func (h *UserAdminHandler) Update(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update user")
	}

	return Success(c, http.StatusOK, "user updated", user)
}

// Delete removes a user. Admins cannot remove their own account.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if id := c.Param("id"); id != "" && id == middleware.UserIDFromContext(c) {
		return Error(c, http.StatusBadRequest, "cannot delete your own account")
	}
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete user")
	}
	return Success(c, http.StatusOK, "user deleted", nil)
}
