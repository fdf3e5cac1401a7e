package dto

import (
	"github.com/google/uuid"

	"locally/internal/domains/role/model"
	gModel "locally/shared/model"
	"locally/shared/timezone"
)

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner tenant"`
}

// NewUserRole builds the role record for userID, authored by actor.
func NewUserRole(userID, role, actor string) model.UserRole {
	return model.UserRole{
		ID:       uuid.NewString(),
		UserID:   userID,
		Role:     role,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type RoleResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
