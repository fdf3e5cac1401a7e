// Package me serves the signed-in user's own account.
package me

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"locally/infras/otel"
	profileDto "locally/internal/domains/profile/model/dto"
	profileService "locally/internal/domains/profile/service"
	"locally/internal/domains/role/model/dto"
	roleService "locally/internal/domains/role/service"
	"locally/internal/session"
	"locally/shared/constant"
	"locally/shared/failure"
	"locally/shared/validator"
	"locally/transport/http/response"
)

type Handler struct {
	profile  profileService.Reader
	resolver roleService.Resolver
	otel     otel.Otel
}

func New(profile profileService.Reader, resolver roleService.Resolver, otel otel.Otel) Handler {
	return Handler{
		profile:  profile,
		resolver: resolver,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/", handler.GetMe)
		r.Put("/role", handler.AssignRole)
	})
}

// GetMe returns the signed-in user.
// @Summary Get the signed-in user
// @Description Returns id, email, display name and role. A user without a role has provisioned=false.
// @Tags Me
// @Produce json
// @Success 200 {object} response.Data[profileDto.MeResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	var (
		res profileDto.MeResponse
		err error
	)

	if res, err = handler.profile.Me(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AssignRole lets a user without a role choose one.
// @Summary Choose a role
// @Description Assigns owner or tenant to a user that has none. A second assignment is rejected.
// @Tags Me
// @Accept json
// @Produce json
// @Param request body dto.AssignRoleRequest true "Role"
// @Success 200 {object} response.Data[dto.RoleResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/me/role [put]
// @Security BearerAuth
func (handler *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignRole")
	defer scope.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		response.WithError(w, failure.SignInRequired("Sign in required"))

		return
	}

	req := dto.AssignRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.resolver.Assign(ctx, sess.UserID, req.Role); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to assign role")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Role assigned to user " + sess.UserID)

	response.WithJSON(w, http.StatusOK, dto.RoleResponse{UserID: sess.UserID, Role: req.Role})
}
