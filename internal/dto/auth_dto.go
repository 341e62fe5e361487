package dto

import "github.com/noah-isme/ievms-go-api/internal/models"

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EVALUATOR"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the outward view of a user. It never carries the password hash.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// NewUserResponse converts a User model into its outward view.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Role:  model.Role,
	}
}
