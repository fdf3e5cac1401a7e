package model

import (
	"time"

	"github.com/shopspring/decimal"

	"locally/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldSpaceID    = "space_id"
	FieldTenantID   = "tenant_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldGuestCount = "guest_count"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a tenant's request for a space. TotalPrice is fixed when the booking is created.
type Booking struct {
	ID         string          `db:"id"`
	SpaceID    string          `db:"space_id"`
	TenantID   string          `db:"tenant_id"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	GuestCount int             `db:"guest_count"`
	Message    *string         `db:"message"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     string          `db:"status"`
	model.Metadata
}

// Open reports whether the booking still lies ahead of the tenant.
func Open(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Detail is a booking joined with its space and the tenant's profile, as shown on dashboards.
type Detail struct {
	ID            string          `db:"id"`
	SpaceID       string          `db:"space_id"`
	TenantID      string          `db:"tenant_id"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	GuestCount    int             `db:"guest_count"`
	Message       *string         `db:"message"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	SpaceTitle    string          `db:"space_title"    table:"spaces"   column:"title"`
	SpaceLocation string          `db:"space_location" table:"spaces"   column:"location"`
	SpaceOwnerID  string          `db:"space_owner_id" table:"spaces"   column:"owner_id"`
	TenantName    *string         `db:"tenant_name"    table:"profiles" column:"full_name"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN spaces ON spaces.id = bookings.space_id LEFT JOIN profiles ON profiles.id = bookings.tenant_id"
}
