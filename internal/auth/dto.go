package auth

import (
	"github.com/sahanmw/wrenchworks-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and user produced by a
// successful login.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         users.UserDTO `json:"user"`
}

// RegisterRequest onboards a new workshop with its owner account.
type RegisterRequest struct {
	WorkshopName string  `json:"workshop_name" validate:"required"`
	FullName     string  `json:"full_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	Phone        *string `json:"phone,omitempty"`
}

// RefreshRequest rotates a refresh session.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ResetPasswordRequest changes the caller's password.
type ResetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
