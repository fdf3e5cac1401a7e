package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"locally/config"
	"locally/infras/jwt"
	"locally/infras/otel"
	authService "locally/internal/domains/auth/service"
	roleService "locally/internal/domains/role/service"
	"locally/internal/session"
	"locally/permissions"
	"locally/shared/constant"
	"locally/shared/failure"
	"locally/transport/http/response"
)

type SkipAuthKey string

const (
	noticeSignIn       = "Sign in required"
	noticeNoRole       = "Access denied"
	noticeSessionEnded = "Session has ended"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	auth       authService.Auth
	resolver   roleService.Resolver
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	auth authService.Auth,
	resolver roleService.Resolver,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		auth:       auth,
		resolver:   resolver,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth turns a bearer token into a session. The role is resolved on every request so a role
// change takes effect without signing in again.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.route(request)
		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" && permission.Optional {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		sess, err := m.authenticate(ctx, authHeader)
		if err != nil {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("user.role", sess.Role)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(session.WithSession(request.Context(), sess)))
	})
}

func (m *authRoleImpl) authenticate(ctx context.Context, authHeader string) (session.Session, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingHeader) {
			return session.Session{}, failure.SignInRequired("Missing authorization header") //nolint:wrapcheck
		}

		return session.Session{}, failure.SignInRequired("Invalid authorization header format") //nolint:wrapcheck
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "Invalid token"
		default:
			message = "Token validation failed"
		}

		return session.Session{}, failure.SignInRequired(message) //nolint:wrapcheck
	}

	revoked, err := m.auth.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return session.Session{}, failure.InternalError(err) //nolint:wrapcheck
	}

	if revoked {
		return session.Session{}, failure.SignInRequired(noticeSessionEnded) //nolint:wrapcheck
	}

	role, err := m.resolver.Resolve(ctx, claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to resolve role for session")

		return session.Session{}, failure.InternalError(err) //nolint:wrapcheck
	}

	return session.Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    role,
		TokenID: claims.TokenID,
	}, nil
}

// RBAC lets a session through only when its role is listed for the route.
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		_, permission := m.route(request)
		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		sess, ok := session.FromContext(ctx)
		if !ok {
			if permission.Optional {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			err := failure.SignInRequired(noticeSignIn)
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if !permission.Allows(sess.Role) {
			notice := permission.RejectionNotice()
			reason := "role_not_allowed"

			if !sess.Provisioned() {
				notice = noticeNoRole
				reason = "role_missing"
			}

			err := failure.AccessDenied(notice)
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     sess.Role,
				"allowed_roles": permission.Permissions,
				"reason":        reason,
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" || m.cfg.App.APIKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// route finds the pattern chi will dispatch the request to and its permission entry.
func (m *authRoleImpl) route(request *http.Request) (string, permissions.Permission) {
	path := request.URL.Path

	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
			path = pattern
		}
	}

	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}
