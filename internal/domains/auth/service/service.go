package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/jwt"
	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/internal/domains/auth/model/dto"
	profileDto "locally/internal/domains/profile/model/dto"
	profileRepo "locally/internal/domains/profile/repository"
	roleDto "locally/internal/domains/role/model/dto"
	roleRepo "locally/internal/domains/role/repository"
	roleService "locally/internal/domains/role/service"
	userModel "locally/internal/domains/user/model"
	userDto "locally/internal/domains/user/model/dto"
	userRepo "locally/internal/domains/user/repository"
	"locally/internal/session"
	"locally/shared"
	"locally/shared/cache"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
	"locally/shared/password"
	"locally/shared/timezone"
)

const (
	cacheRevokedToken = "auth:revoked"

	msgInvalidCredentials = "invalid email or password"
	msgInvalidRefresh     = "invalid refresh token"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type serviceImpl struct {
	userRepo    userRepo.User
	profileRepo profileRepo.Profile
	roleRepo    roleRepo.Role
	resolver    roleService.Resolver
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(
	userRepo userRepo.User,
	profileRepo profileRepo.Profile,
	roleRepo roleRepo.Role,
	resolver roleService.Resolver,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
		resolver:    resolver,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		jwtService:  jwt,
	}
}

// Register creates the credential, profile and role rows of a new user in one transaction.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if !roleService.IsValid(req.Role) {
		return res, failure.BadRequestFromString("role must be one of owner tenant") //nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := userDto.NewUser(req.Email, hashedPassword, constant.ContextGuest)
	profile := profileDto.NewProfile(user.ID, req.FullName, user.ID)
	role := roleDto.NewUserRole(user.ID, req.Role, user.ID)

	err = s.transactor.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if err := s.profileRepo.InsertTx(ctx, tx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		if err := s.roleRepo.InsertTx(ctx, tx, role); err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register user")

		return res, fmt.Errorf("failed to register user: %w", err)
	}

	return dto.RegisterResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: profile.FullName,
		Role:     role.Role,
	}, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	email := userDto.NormalizeEmail(req.Email)

	user, err := s.userRepo.Get(ctx, byEmail(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Unauthorized("user account is deactivated") //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := userDto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), byID(user.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken rotates a refresh token. The presented token is revoked once the new pair exists.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(msgInvalidRefresh) //nolint:wrapcheck
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized(msgInvalidRefresh) //nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, byID(claims.UserID), userModel.FieldID, userModel.FieldEmail, userModel.FieldActive)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized(msgInvalidRefresh) //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err = s.revoke(ctx, claims); err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout revokes the access token of the session and, when given, the caller's refresh token.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return failure.SignInRequired("Sign in required") //nolint:wrapcheck
	}

	if err = s.revokeID(ctx, sess.TokenID, s.cfg.JWT.AccessExpireMin*constant.MinutesToSeconds); err != nil {
		return err
	}

	if req.RefreshToken != constant.Empty {
		claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)

		switch {
		case err != nil:
			log.Warn().Err(err).Str("user_id", sess.UserID).Msg("ignoring invalid refresh token on logout")
		case claims.UserID != sess.UserID:
			return failure.Forbidden("refresh token belongs to another user") //nolint:wrapcheck
		default:
			if err := s.revoke(ctx, claims); err != nil {
				return err
			}
		}
	}

	s.resolver.Invalidate(ctx, sess.UserID)

	return nil
}

// IsRevoked reports whether tokenID was signed out or rotated.
func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (revoked bool, err error) {
	var marker string

	err = s.cache.Get(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), &marker)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cache.Nil):
		return false, nil
	default:
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to check token revocation")

		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
}

func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) error {
	ttl := int(claims.TTL(timezone.Now()).Seconds()) + 1
	if ttl <= 1 {
		return nil
	}

	return s.revokeID(ctx, claims.TokenID, ttl)
}

// revokeID marks tokenID as revoked for ttl seconds, past which the token expires anyway.
func (s *serviceImpl) revokeID(ctx context.Context, tokenID string, ttl int) error {
	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), strconv.Itoa(ttl), ttl); err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(userModel.TableName, userModel.FieldEmail, email))
}

func byID(id string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(userModel.TableName, userModel.FieldID, id))
}
