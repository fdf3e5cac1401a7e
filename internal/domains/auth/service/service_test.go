package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"locally/config"
	"locally/infras/jwt"
	jwtMocks "locally/infras/jwt/mocks"
	otelMocks "locally/infras/otel/mocks"
	pgMocks "locally/infras/postgres/mocks"
	"locally/internal/domains/auth/model/dto"
	"locally/internal/domains/auth/service"
	profileMocks "locally/internal/domains/profile/mocks"
	profileModel "locally/internal/domains/profile/model"
	roleMocks "locally/internal/domains/role/mocks"
	roleModel "locally/internal/domains/role/model"
	userMocks "locally/internal/domains/user/mocks"
	userModel "locally/internal/domains/user/model"
	"locally/internal/session"
	"locally/shared/cache"
	cacheMocks "locally/shared/cache/mocks"
	"locally/shared/constant"
	"locally/shared/failure"
	"locally/shared/password"
)

type fixture struct {
	users      *userMocks.MockUser
	profiles   *profileMocks.MockProfile
	roles      *roleMocks.MockRole
	resolver   *roleMocks.MockResolver
	transactor *pgMocks.MockTransactor
	cache      *cacheMocks.MockRedisCache
	jwt        *jwtMocks.MockJWT
	svc        service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15

	f := fixture{
		users:      userMocks.NewMockUser(ctrl),
		profiles:   profileMocks.NewMockProfile(ctrl),
		roles:      roleMocks.NewMockRole(ctrl),
		resolver:   roleMocks.NewMockResolver(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		jwt:        jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, f.profiles, f.roles, f.resolver, f.transactor, cfg, f.cache, otelMocks.NewOtel(), f.jwt)

	return f
}

func runTx(f fixture) {
	f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestRegister(t *testing.T) {
	req := dto.RegisterRequest{Email: " Ana@Locally.cl", Password: "secret123", FullName: "Ana Rojas", Role: constant.RoleOwner}

	tests := []struct {
		name     string
		req      dto.RegisterRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "writes user profile and role together",
			req:  req,
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				runTx(f)

				var userID string

				f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, u userModel.User) error {
						userID = u.ID

						assert.Equal(t, "ana@locally.cl", u.Email)
						assert.True(t, u.Active)
						assert.NoError(t, password.Verify("secret123", u.Password))

						return nil
					})
				f.profiles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p profileModel.Profile) error {
						assert.Equal(t, userID, p.ID)
						assert.Equal(t, "Ana Rojas", p.FullName)

						return nil
					})
				f.roles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r roleModel.UserRole) error {
						assert.Equal(t, userID, r.UserID)
						assert.Equal(t, constant.RoleOwner, r.Role)

						return nil
					})
			},
		},
		{
			name: "email taken",
			req:  req,
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "role write fails and nothing is kept",
			req:  req,
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				runTx(f)
				f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.profiles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.roles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "unknown role",
			req:      dto.RegisterRequest{Email: "ana@locally.cl", Password: "secret123", FullName: "Ana", Role: "admin"},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Register(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "ana@locally.cl", res.Email)
			assert.Equal(t, constant.RoleOwner, res.Role)
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	user := userModel.User{ID: "user-1", Email: "ana@locally.cl", Password: hashed, Active: true}
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name     string
		req      dto.LoginRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Email: "ANA@locally.cl", Password: "secret123"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not fail the login",
			req:  dto.LoginRequest{Email: "ana@locally.cl", Password: "secret123"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@locally.cl", Password: "secret123"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "ana@locally.cl", Password: "wrong-pass"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "ana@locally.cl", Password: "secret123"},
			setup: func(f fixture) {
				inactive := user
				inactive.Active = false

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: "ana@locally.cl", Password: "secret123"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
		})
	}
}

func refreshClaims(userID, tokenID string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  userID,
		Email:   "ana@locally.cl",
		TokenID: tokenID,
		Type:    jwt.RefreshToken,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestRefreshToken(t *testing.T) {
	user := userModel.User{ID: "user-1", Email: "ana@locally.cl", Active: true}
	pair := &jwt.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "rotates and revokes the old token",
			setup: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(refreshClaims("user-1", "rt-1"), nil)
				f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:rt-1", gomock.Any()).Return(cache.Nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email).Return(pair, nil)
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:rt-1", gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "invalid token",
			setup: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "revoked token",
			setup: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(refreshClaims("user-1", "rt-1"), nil)
				f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:rt-1", gomock.Any()).Return(nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deleted user",
			setup: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(refreshClaims("user-1", "rt-1"), nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-1"})
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-2", res.AccessToken)
		})
	}
}

func TestLogout(t *testing.T) {
	sess := session.Session{UserID: "user-1", Email: "ana@locally.cl", Role: constant.RoleTenant, TokenID: "at-1"}

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.LogoutRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "revokes the access token and drops the cached role",
			ctx:  session.WithSession(context.Background(), sess),
			setup: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:at-1", gomock.Any(), 15*60).Return(nil)
				f.resolver.EXPECT().Invalidate(gomock.Any(), "user-1")
			},
		},
		{
			name: "revokes the refresh token too",
			ctx:  session.WithSession(context.Background(), sess),
			req:  dto.LogoutRequest{RefreshToken: "refresh-1"},
			setup: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:at-1", gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(refreshClaims("user-1", "rt-1"), nil)
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:rt-1", gomock.Any(), gomock.Any()).Return(nil)
				f.resolver.EXPECT().Invalidate(gomock.Any(), "user-1")
			},
		},
		{
			name: "refresh token of another user",
			ctx:  session.WithSession(context.Background(), sess),
			req:  dto.LogoutRequest{RefreshToken: "refresh-1"},
			setup: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:at-1", gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().ValidateToken("refresh-1", jwt.RefreshToken).Return(refreshClaims("user-2", "rt-9"), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "revocation store down",
			ctx:  session.WithSession(context.Background(), sess),
			setup: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "no session",
			ctx:      context.Background(),
			setup:    func(fixture) {},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Logout(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestIsRevoked(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:t-1", gomock.Any()).Return(nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:t-2", gomock.Any()).Return(cache.Nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:t-3", gomock.Any()).Return(errors.New("redis down"))

	revoked, err := f.svc.IsRevoked(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = f.svc.IsRevoked(context.Background(), "t-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = f.svc.IsRevoked(context.Background(), "t-3")
	assert.Error(t, err)
}
