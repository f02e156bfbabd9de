package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account. Only ID and IsAdmin matter to the
// ranking engine; the rest is profile data.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Login        string `json:"login" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty" gorm:"size:256"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local sign-in
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	ProfileImage string `json:"profile_image,omitempty" validate:"omitempty,max=256"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Login   string `json:"login"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
