package dto

import (
	"strings"

	"locally/internal/domains/profile/model"
	gModel "locally/shared/model"
	"locally/shared/timezone"
)

func NewProfile(userID, fullName, actor string) model.Profile {
	return model.Profile{
		ID:       userID,
		FullName: strings.TrimSpace(fullName),
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

// MeResponse describes the signed-in user, including a role of "" when none is assigned.
type MeResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Provisioned bool   `json:"provisioned"`
}
