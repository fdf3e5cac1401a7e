package model

import (
	"locally/shared/model"
)

const (
	TableName  = "user_roles"
	EntityName = "role"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldRole   = "role"
)

// UserRole is the single role record of a user. Its absence means the user is unprovisioned.
type UserRole struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
	model.Metadata
}
