package dto

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse contains the issued access token and the caller's role.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RegisterResponse is returned after self-service registration.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
