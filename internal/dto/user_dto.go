package dto

import "github.com/noah-isme/sarhne-api/internal/models"

// UserResponse is the public projection of a profile.
type UserResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	ImageURL       string        `json:"image_url"`
	Gender         models.Gender `json:"gender"`
	DetailsAboutMe string        `json:"details_about_me,omitempty"`
}

// NewUserResponse converts a user model into its public projection.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		ImageURL:       user.ImageURL,
		Gender:         user.Gender,
		DetailsAboutMe: user.DetailsAboutMe,
	}
}

func newUserResponsePtr(user *models.User) *UserResponse {
	if user == nil || user.ID == "" {
		return nil
	}
	out := NewUserResponse(*user)
	return &out
}

// UpdateUserDataRequest updates the editable profile fields.
type UpdateUserDataRequest struct {
	Gender         models.Gender `json:"gender" validate:"required,oneof=Male Female"`
	Name           string        `json:"name" validate:"required,max=50"`
	DetailsAboutMe string        `json:"details_about_me" validate:"omitempty,max=500"`
}

// UpdateEmailRequest requests an email change.
type UpdateEmailRequest struct {
	NewEmail string `json:"new_email" validate:"required,email,max=100"`
}

// UpdatePasswordRequest requests a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=100"`
}

// UpdateLinkRequest requests a new public link.
type UpdateLinkRequest struct {
	Link string `json:"link" validate:"required,max=50"`
}
