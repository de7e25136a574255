package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/repository"
)

// UserService encapsulates administrative operations for users.
type UserService struct {
	repo repository.UsersRepository
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

// CreateUser creates a new user with the supplied role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, validationErrorf("email and password are required")
	}
	role, err := normalizeRole(req.Role)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, email, string(hashed), role)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateUser mutates selected user fields.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, validationErrorf("invalid user id")
	}

	var emailPtr *string
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, validationErrorf("email cannot be empty")
		}
		emailPtr = &email
	}

	var rolePtr *string
	if req.Role != nil {
		if strings.TrimSpace(*req.Role) == "" {
			return nil, validationErrorf("role cannot be empty")
		}
		role, err := normalizeRole(*req.Role)
		if err != nil {
			return nil, err
		}
		rolePtr = &role
	}

	var passwordPtr *string
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, validationErrorf("password cannot be empty")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		pwd := string(hashed)
		passwordPtr = &pwd
	}

	user, err := s.repo.Update(ctx, userID, emailPtr, passwordPtr, rolePtr)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return validationErrorf("invalid user id")
	}
	return s.repo.Delete(ctx, userID)
}

// EnsureAdmin creates an admin account or promotes an existing one.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	created, err := s.CreateUser(ctx, dto.CreateUserRequest{Email: email, Password: password, Role: "admin"})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, repository.ErrEmailDuplicate) {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	role := "admin"
	return s.UpdateUser(ctx, existing.ID.String(), dto.UpdateUserRequest{Role: &role, Password: &password})
}
