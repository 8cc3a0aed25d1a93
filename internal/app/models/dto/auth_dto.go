package dto

import (
	"github.com/yigit/clubhub/internal/app/models"
)

// RegisterRequest is the sign-up form. Leader fields are ignored for members.
type RegisterRequest struct {
	Username        string      `json:"username" form:"username" binding:"required,min=3,max=150,alphanum" example:"jdoe"`
	Email           string      `json:"email" form:"email" binding:"required,email,max=254" example:"jdoe@example.com"`
	Password        string      `json:"password" form:"password" binding:"required,min=8,max=128" example:"Password123"`
	PasswordConfirm string      `json:"passwordConfirm" form:"passwordConfirm" binding:"required" example:"Password123"`
	Role            models.Role `json:"role" form:"role" binding:"required" example:"member" enums:"leader,member"`

	PhoneNumber  *string `json:"phoneNumber,omitempty" form:"phoneNumber" binding:"omitempty,max=20"`
	Experience   *string `json:"experience,omitempty" form:"experience"`
	Achievements *string `json:"achievements,omitempty" form:"achievements"`
	Certificates *string `json:"certificates,omitempty" form:"certificates"`
	Education    *string `json:"education,omitempty" form:"education" binding:"omitempty,max=200"`

	// Filled by the HTTP layer after storing uploaded files
	Documents LeaderDocuments `json:"-" form:"-"`
}

// LeaderDocuments holds stored references of leader credential documents
type LeaderDocuments struct {
	Experience   *string
	Achievements *string
	Certificates *string
	Education    *string
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"Password123"`
}

// RefreshTokenRequest carries a refresh token to rotate or revoke
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned after a successful sign-up, login or refresh
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	TokenType        string        `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64         `json:"expiresIn" example:"900"`
	RefreshExpiresIn int64         `json:"refreshExpiresIn" example:"604800"`
	User             *UserResponse `json:"user,omitempty"`
}
