package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gender enumerates the profile genders a user can pick.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// RoleUser is granted to every account at registration.
const RoleUser = "user"

// User is a registered account able to receive messages through its public link.
type User struct {
	ID             string                      `gorm:"primaryKey;size:36" json:"id"`
	UserName       string                      `gorm:"size:50;uniqueIndex;not null" json:"user_name"`
	Email          string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Link           string                      `gorm:"size:50;uniqueIndex;not null" json:"link"`
	Name           string                      `gorm:"size:50;not null" json:"name"`
	Gender         Gender                      `gorm:"size:16" json:"gender"`
	ImageURL       string                      `gorm:"size:512" json:"image_url"`
	DetailsAboutMe string                      `gorm:"size:500" json:"details_about_me"`
	PasswordHash   string                      `gorm:"size:255;not null" json:"-"`
	Roles          datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt      time.Time                   `json:"created_at"`
	RefreshTokens  []RefreshToken              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RefreshToken is an opaque, single-use credential exchanged for a new session.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	Token     string     `gorm:"size:128;uniqueIndex;not null" json:"-"`
	CreatedOn time.Time  `gorm:"not null" json:"created_on"`
	ExpiresOn time.Time  `gorm:"index;not null" json:"expires_on"`
	RevokedOn *time.Time `json:"revoked_on,omitempty"`
}

// IsExpired reports whether the token validity window has elapsed at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresOn)
}

// IsActive reports whether the token is unexpired and unrevoked at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedOn == nil && !t.IsExpired(now)
}
