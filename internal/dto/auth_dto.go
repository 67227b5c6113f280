package dto

import (
	"time"

	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

// RegisterRequest is the multipart payload used to create an account.
type RegisterRequest struct {
	UserName       string          `json:"user_name" form:"user_name" validate:"required,max=50"`
	Email          string          `json:"email" form:"email" validate:"required,email,max=100"`
	Password       string          `json:"password" form:"password" validate:"required,min=6,max=100"`
	Gender         models.Gender   `json:"gender" form:"gender" validate:"required,oneof=Male Female"`
	Link           string          `json:"link" form:"link" validate:"omitempty,max=50"`
	Name           string          `json:"name" form:"name" validate:"required,max=50"`
	DetailsAboutMe string          `json:"details_about_me" form:"details_about_me" validate:"omitempty,max=500"`
	Image          *storage.Upload `json:"-" form:"-"`
}

// RegisterResponse echoes the created profile. Registration never authenticates.
type RegisterResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserName string `json:"user_name"`
}

// LoginRequest carries credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=100"`
}

// RefreshTokenRequest carries the refresh token presented for rotation or revocation.
type RefreshTokenRequest struct {
	Token string `json:"refresh_token" form:"refresh_token" validate:"required"`
}

// UserLoginResponse is the session pair returned by login and refresh.
type UserLoginResponse struct {
	ID                     string    `json:"id"`
	DisplayName            string    `json:"display_name"`
	Email                  string    `json:"email"`
	Token                  string    `json:"token"`
	RefreshToken           string    `json:"refresh_token"`
	RefreshTokenExpiration time.Time `json:"refresh_token_expiration"`
}
