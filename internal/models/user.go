package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model      `json:"-"`
	ID              uint   `json:"id" gorm:"primaryKey"`
	FullName        string `json:"fullname"`
	Email           string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password        string `json:"-"`                        // HMAC-SHA256 of the password with Salt
	Salt            string `json:"-"`
	Bio             string `json:"bio,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	IsPrivate       bool   `json:"is_private" gorm:"default:false"`
}

// UserCompact is the author/liker payload embedded in enriched views.
type UserCompact struct {
	ID              uint   `json:"id"`
	FullName        string `json:"fullname"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:              u.ID,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type SignUpRequest struct {
	FullName string `json:"fullname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName        string `json:"fullname,omitempty" validate:"omitempty,min=2,max=50"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=300"`
	ProfileImageURL string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
}

type UpdatePrivacyRequest struct {
	IsPrivate *bool `json:"is_private" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"fullname"`
	jwt.RegisteredClaims
}
