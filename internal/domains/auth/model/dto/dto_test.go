package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"locally/infras/jwt"
	"locally/internal/domains/auth/model/dto"
	"locally/shared/validator"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.TokenResponse
	res.FromTokenPair(&jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	})

	assert.Equal(t, dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, res)
}

func TestRegisterRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr bool
	}{
		{
			name: "owner",
			req:  dto.RegisterRequest{Email: "ana@locally.cl", Password: "secret123", FullName: "Ana Rojas", Role: "owner"},
		},
		{
			name: "tenant",
			req:  dto.RegisterRequest{Email: "ben@locally.cl", Password: "secret123", FullName: "Ben", Role: "tenant"},
		},
		{
			name:    "unknown role",
			req:     dto.RegisterRequest{Email: "ana@locally.cl", Password: "secret123", FullName: "Ana Rojas", Role: "admin"},
			wantErr: true,
		},
		{
			name:    "missing role",
			req:     dto.RegisterRequest{Email: "ana@locally.cl", Password: "secret123", FullName: "Ana Rojas"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Email: "ana@locally.cl", Password: "short", FullName: "Ana Rojas", Role: "owner"},
			wantErr: true,
		},
		{
			name:    "missing full name",
			req:     dto.RegisterRequest{Email: "ana@locally.cl", Password: "secret123", Role: "owner"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRegisterRequest_Normalize(t *testing.T) {
	req := dto.RegisterRequest{Email: "  Ana@Locally.CL "}
	req.Normalize()

	assert.Equal(t, "ana@locally.cl", req.Email)
}
