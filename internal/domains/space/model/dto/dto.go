package dto

import (
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"locally/internal/domains/space/model"
	"locally/shared"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	gModel "locally/shared/model"
	"locally/shared/timezone"
)

const (
	MaxImageSize = 5 << 20

	amenitySeparator = ","
	pricePlaces      = 2
)

// ImageContentTypes are the accepted upload types for a space image.
var ImageContentTypes = []string{"image/png", "image/jpeg", "image/jpg", "image/webp"}

// CreateSpaceRequest is read from a multipart form. Amenities arrive as one comma separated string.
type CreateSpaceRequest struct {
	Title        string          `json:"title"          validate:"required,min=3,max=100"`
	Description  string          `json:"description"    validate:"omitempty,max=1000"`
	PricePerHour decimal.Decimal `json:"price_per_hour" validate:"gt=0"`
	Capacity     int             `json:"capacity"       validate:"required,gt=0"`
	Location     string          `json:"location"       validate:"required,min=3,max=200"`
	SpaceType    string          `json:"space_type"     validate:"required,oneof=sala_reuniones oficina coworking estudio salon_eventos"`
	ImageURL     string          `json:"image_url"      validate:"omitempty,url"`
	Amenities    string          `json:"amenities"      validate:"omitempty,max=500"`

	Image     *multipart.FileHeader `json:"-"`
	ImageFile multipart.File        `json:"-"`
}

// Normalize trims the free-text fields and rounds the price to cents, so validation sees the stored value.
func (c *CreateSpaceRequest) Normalize() {
	c.PricePerHour = c.PricePerHour.Round(pricePlaces)
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Location = strings.TrimSpace(c.Location)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
}

// ParseAmenities splits a comma separated list, trimming entries and dropping blanks. Order is kept.
func ParseAmenities(raw string) []string {
	amenities := []string{}

	for _, item := range strings.Split(raw, amenitySeparator) {
		if item = strings.TrimSpace(item); item != constant.Empty {
			amenities = append(amenities, item)
		}
	}

	return amenities
}

// ToModel builds an active space for owner. imageURL wins over the requested URL, and
// defaultImageURL fills in when both are blank.
func (c *CreateSpaceRequest) ToModel(owner, imageURL, defaultImageURL string) model.Space {
	if imageURL == constant.Empty {
		imageURL = c.ImageURL
	}

	if imageURL == constant.Empty {
		imageURL = defaultImageURL
	}

	var description *string
	if c.Description != constant.Empty {
		description = &c.Description
	}

	return model.Space{
		ID:           uuid.NewString(),
		OwnerID:      owner,
		Title:        c.Title,
		Description:  description,
		PricePerHour: c.PricePerHour.Round(pricePlaces),
		Capacity:     c.Capacity,
		Location:     c.Location,
		SpaceType:    c.SpaceType,
		ImageURL:     imageURL,
		Amenities:    ParseAmenities(c.Amenities),
		Status:       model.StatusActive,
		Metadata:     gModel.NewMetadata(owner, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=active inactive"`
}

type SpaceResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Capacity     int             `json:"capacity"`
	Location     string          `json:"location"`
	SpaceType    string          `json:"space_type"`
	ImageURL     string          `json:"image_url"`
	Amenities    []string        `json:"amenities"`
	Status       string          `json:"status"`
	gDto.Metadata
}

func (r *SpaceResponse) FromModel(m model.Space) {
	r.ID = m.ID
	r.OwnerID = m.OwnerID
	r.Title = m.Title
	r.Description = m.Description
	r.PricePerHour = m.PricePerHour
	r.Capacity = m.Capacity
	r.Location = m.Location
	r.SpaceType = m.SpaceType
	r.ImageURL = m.ImageURL
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)

	r.Amenities = []string(m.Amenities)
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

func FromModels(models []model.Space) []SpaceResponse {
	res := make([]SpaceResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

// SearchResponse is the public listing. Empty marks the no-results state, which is not an error.
type SearchResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
	Total  int             `json:"total"`
	Empty  bool            `json:"empty"`
}

func (r *SearchResponse) FromModels(models []model.Space) {
	r.Spaces = FromModels(models)
	r.Total = len(models)
	r.Empty = r.Total == 0
}

// OwnerSpacesResponse is one page of an owner's spaces.
type OwnerSpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *OwnerSpacesResponse) FromModels(models []model.Space, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Spaces = FromModels(models)
}
