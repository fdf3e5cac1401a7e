package model

import "locally/shared/model"

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID       = "id"
	FieldFullName = "full_name"

	// DefaultDisplayName stands in for a missing or blank full name.
	DefaultDisplayName = "User"
)

// Profile shares its id with the user it describes.
type Profile struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	model.Metadata
}

// DisplayName returns the full name, or DefaultDisplayName when blank.
func DisplayName(fullName *string) string {
	if fullName == nil || *fullName == "" {
		return DefaultDisplayName
	}

	return *fullName
}
