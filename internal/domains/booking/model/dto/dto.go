package dto

import (
	"github.com/google/uuid"

	"locally/internal/domains/booking/model"
	"locally/internal/domains/booking/pricing"
	profileModel "locally/internal/domains/profile/model"
	"locally/shared/constant"
	gModel "locally/shared/model"
	"locally/shared/timezone"
)

const moneyPlaces = 2

// QuoteRequest is the part of a booking that determines its price.
type QuoteRequest struct {
	SpaceID    string `json:"space_id"    validate:"required,uuid"`
	Date       string `json:"date"        validate:"required,day"`
	StartTime  string `json:"start_time"  validate:"required,clock"`
	EndTime    string `json:"end_time"    validate:"required,clock"`
	GuestCount int    `json:"guest_count" validate:"required,gte=1"`
}

type CreateBookingRequest struct {
	QuoteRequest
	Message string `json:"message" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(tenant string, w pricing.Window, q pricing.Quote) model.Booking {
	var message *string
	if c.Message != constant.Empty {
		message = &c.Message
	}

	return model.Booking{
		ID:         uuid.NewString(),
		SpaceID:    c.SpaceID,
		TenantID:   tenant,
		StartDate:  w.Start,
		EndDate:    w.End,
		GuestCount: c.GuestCount,
		Message:    message,
		TotalPrice: q.Total,
		Status:     model.StatusPending,
		Metadata:   gModel.NewMetadata(tenant, timezone.Now()),
	}
}

// QuoteResponse carries amounts as fixed two-place strings.
type QuoteResponse struct {
	SpaceID      string `json:"space_id"`
	PricePerHour string `json:"price_per_hour"`
	Hours        string `json:"hours"`
	Subtotal     string `json:"subtotal"`
	ServiceFee   string `json:"service_fee"`
	Total        string `json:"total"`
}

func (r *QuoteResponse) FromQuote(spaceID string, pricePerHour string, q pricing.Quote) {
	r.SpaceID = spaceID
	r.PricePerHour = pricePerHour
	r.Hours = q.Hours.StringFixed(moneyPlaces)
	r.Subtotal = q.Subtotal.StringFixed(moneyPlaces)
	r.ServiceFee = q.Fee.StringFixed(moneyPlaces)
	r.Total = q.Total.StringFixed(moneyPlaces)
}

type BookingResponse struct {
	ID         string  `json:"id"`
	SpaceID    string  `json:"space_id"`
	TenantID   string  `json:"tenant_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	GuestCount int     `json:"guest_count"`
	Message    *string `json:"message"`
	TotalPrice string  `json:"total_price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.SpaceID = m.SpaceID
	r.TenantID = m.TenantID
	r.StartDate = timezone.Format(m.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(m.EndDate, constant.DateFormat)
	r.GuestCount = m.GuestCount
	r.Message = m.Message
	r.TotalPrice = m.TotalPrice.StringFixed(moneyPlaces)
	r.Status = m.Status
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

// OwnerBookingResponse is a booking against one of the owner's spaces.
type OwnerBookingResponse struct {
	BookingResponse
	SpaceTitle string `json:"space_title"`
	TenantName string `json:"tenant_name"`
}

func (r *OwnerBookingResponse) FromDetail(d model.Detail) {
	r.BookingResponse.fromDetail(d)
	r.SpaceTitle = d.SpaceTitle
	r.TenantName = profileModel.DisplayName(d.TenantName)
}

// TenantBookingResponse is one of the tenant's own bookings.
type TenantBookingResponse struct {
	BookingResponse
	SpaceTitle    string `json:"space_title"`
	SpaceLocation string `json:"space_location"`
}

func (r *TenantBookingResponse) FromDetail(d model.Detail) {
	r.BookingResponse.fromDetail(d)
	r.SpaceTitle = d.SpaceTitle
	r.SpaceLocation = d.SpaceLocation
}

func (r *BookingResponse) fromDetail(d model.Detail) {
	r.FromModel(model.Booking{
		ID:         d.ID,
		SpaceID:    d.SpaceID,
		TenantID:   d.TenantID,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		GuestCount: d.GuestCount,
		Message:    d.Message,
		TotalPrice: d.TotalPrice,
		Status:     d.Status,
		Metadata:   gModel.Metadata{CreatedAt: d.CreatedAt},
	})
}

func FromOwnerDetails(details []model.Detail) []OwnerBookingResponse {
	res := make([]OwnerBookingResponse, len(details))
	for i, d := range details {
		res[i].FromDetail(d)
	}

	return res
}

// TenantBookingsResponse splits the tenant's bookings into open and finished ones, newest first.
type TenantBookingsResponse struct {
	Active []TenantBookingResponse `json:"active"`
	Past   []TenantBookingResponse `json:"past"`
}

func (r *TenantBookingsResponse) FromDetails(details []model.Detail) {
	r.Active = []TenantBookingResponse{}
	r.Past = []TenantBookingResponse{}

	for _, d := range details {
		var item TenantBookingResponse
		item.FromDetail(d)

		if model.Open(d.Status) {
			r.Active = append(r.Active, item)
		} else {
			r.Past = append(r.Past, item)
		}
	}
}

// BookingEvent is published after a booking request is stored.
type BookingEvent struct {
	BookingID  string `json:"booking_id"`
	SpaceID    string `json:"space_id"`
	OwnerID    string `json:"owner_id"`
	TenantID   string `json:"tenant_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	GuestCount int    `json:"guest_count"`
	TotalPrice string `json:"total_price"`
	Status     string `json:"status"`
}

func NewBookingEvent(m model.Booking, ownerID string) BookingEvent {
	return BookingEvent{
		BookingID:  m.ID,
		SpaceID:    m.SpaceID,
		OwnerID:    ownerID,
		TenantID:   m.TenantID,
		StartDate:  timezone.Format(m.StartDate, constant.DateFormat),
		EndDate:    timezone.Format(m.EndDate, constant.DateFormat),
		GuestCount: m.GuestCount,
		TotalPrice: m.TotalPrice.StringFixed(moneyPlaces),
		Status:     m.Status,
	}
}
