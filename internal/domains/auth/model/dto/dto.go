package dto

import (
	"locally/infras/jwt"
	userDto "locally/internal/domains/user/model/dto"
)

type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email,max=254"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Role     string `json:"role"      validate:"required,oneof=owner tenant"`
}

// Normalize lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Email = userDto.NormalizeEmail(r.Email)
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally names the refresh token to revoke along with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.TokenType = tokenPair.TokenType
	t.ExpiresIn = tokenPair.ExpiresIn
}
