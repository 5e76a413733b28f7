package auth

import "strings"

// RegisterRequest defines the structure for a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30" example:"newuser"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"strongpassword123"`
}

// Normalize trims the username and lower-cases the email. Passwords are left as typed.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Login    string `json:"login" validate:"required" example:"user@example.com"` // Can be username or email
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// UserSummary is the part of a user other services see.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenResponse defines the structure for the response containing authentication tokens.
type TokenResponse struct {
	AccessToken  string       `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string       `json:"tokenType" example:"Bearer"`
	ExpiresIn    int64        `json:"expiresIn" example:"900"` // Lifetime of the access token in seconds.
	User         *UserSummary `json:"user,omitempty"`
}

// RefreshTokenRequest defines the structure for a token refresh request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
