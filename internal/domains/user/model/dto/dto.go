package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"locally/internal/domains/user/model"
	gModel "locally/shared/model"
	"locally/shared/timezone"
)

// NewUser builds an active credential record. Emails are stored lower-cased.
func NewUser(email, hashedPassword, actor string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    NormalizeEmail(email),
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}
