package model

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"locally/shared/model"
)

const (
	TableName  = "spaces"
	EntityName = "space"

	FieldID           = "id"
	FieldOwnerID      = "owner_id"
	FieldTitle        = "title"
	FieldPricePerHour = "price_per_hour"
	FieldCapacity     = "capacity"
	FieldLocation     = "location"
	FieldSpaceType    = "space_type"
	FieldImageURL     = "image_url"
	FieldStatus       = "status"
	FieldCreatedAt    = "created_at"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	TypeMeetingRoom = "sala_reuniones"
	TypeOffice      = "oficina"
	TypeCoworking   = "coworking"
	TypeStudio      = "estudio"
	TypeEventHall   = "salon_eventos"
)

// Types lists the accepted space_type values in display order.
var Types = []string{TypeMeetingRoom, TypeOffice, TypeCoworking, TypeStudio, TypeEventHall}

type Space struct {
	ID           string          `db:"id"`
	OwnerID      string          `db:"owner_id"`
	Title        string          `db:"title"`
	Description  *string         `db:"description"`
	PricePerHour decimal.Decimal `db:"price_per_hour"`
	Capacity     int             `db:"capacity"`
	Location     string          `db:"location"`
	SpaceType    string          `db:"space_type"`
	ImageURL     string          `db:"image_url"`
	Amenities    pq.StringArray  `db:"amenities"`
	Status       string          `db:"status"`
	model.Metadata
}

func (s Space) Active() bool {
	return s.Status == StatusActive
}
