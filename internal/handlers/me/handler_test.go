package me_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "locally/infras/otel/mocks"
	profileMocks "locally/internal/domains/profile/mocks"
	profileDto "locally/internal/domains/profile/model/dto"
	roleMocks "locally/internal/domains/role/mocks"
	roleService "locally/internal/domains/role/service"
	"locally/internal/handlers/me"
	"locally/internal/session"
	"locally/shared/constant"
	"locally/shared/failure"
)

type fixture struct {
	profile  *profileMocks.MockReader
	resolver *roleMocks.MockResolver
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		profile:  profileMocks.NewMockReader(ctrl),
		resolver: roleMocks.NewMockResolver(ctrl),
	}

	handler := me.New(f.profile, f.resolver, otelMocks.NewOtel())

	r := chi.NewRouter()
	handler.Router(r)
	f.router = r

	return f
}

func request(ctx context.Context, method, path, body string) *http.Request {
	return httptest.NewRequest(method, path, strings.NewReader(body)).WithContext(ctx)
}

func signedIn(role string) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: "user-1", Email: "ana@example.com", Role: role})
}

func TestGetMe(t *testing.T) {
	f := newFixture(t)

	f.profile.EXPECT().Me(gomock.Any()).Return(profileDto.MeResponse{ID: "user-1", FullName: "User", Role: constant.RoleNone}, nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, request(signedIn(constant.RoleNone), http.MethodGet, "/me", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provisioned":false`)
}

func TestAssignRole(t *testing.T) {
	t.Run("roleless user picks a role", func(t *testing.T) {
		f := newFixture(t)

		f.resolver.EXPECT().Assign(gomock.Any(), "user-1", constant.RoleTenant).Return(nil)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, request(signedIn(constant.RoleNone), http.MethodPut, "/me/role", `{"role":"tenant"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"tenant"`)
	})

	t.Run("second assignment", func(t *testing.T) {
		f := newFixture(t)

		f.resolver.EXPECT().Assign(gomock.Any(), "user-1", constant.RoleOwner).Return(failure.Conflict(roleService.ErrRoleAssigned.Error()))

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, request(signedIn(constant.RoleTenant), http.MethodPut, "/me/role", `{"role":"owner"}`))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("without a session", func(t *testing.T) {
		f := newFixture(t)

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, request(context.Background(), http.MethodPut, "/me/role", `{"role":"owner"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redirect_to":"/auth"`)
	})
}
