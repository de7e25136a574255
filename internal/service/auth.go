package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/commtrack/api/internal/auth"
	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
)

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users repository.UsersRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Register creates an account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, validationErrorf("email and password must not be empty")
	}
	role, err := normalizeRole(req.Role)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hashed), role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login validates credentials and returns a JWT together with the caller's role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationErrorf("email and password must not be empty")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeRole defaults an empty role to user and rejects unknown roles.
func normalizeRole(role string) (string, error) {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case "":
		return entity.RoleUser, nil
	case entity.RoleUser, entity.RoleAdmin:
		return r, nil
	default:
		return "", validationErrorf("role must be %q or %q", entity.RoleAdmin, entity.RoleUser)
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID.String(), Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
