package space

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"locally/infras/otel"
	"locally/internal/domains/space/catalog"
	"locally/internal/domains/space/model/dto"
	"locally/internal/domains/space/service"
	"locally/shared"
	"locally/shared/constant"
	gDto "locally/shared/dto"
	"locally/shared/failure"
	"locally/shared/validator"
	"locally/transport/http/response"
)

const (
	formImage = "image"

	msgInvalidPrice     = "price_per_hour must be a number"
	msgInvalidCapacity  = "capacity must be a whole number"
	msgImageTooLarge    = "image must be 5MB or smaller"
	msgImageContentType = "image must be a png, jpeg or webp file"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/spaces", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchSpaces)
		routerGroup.Post("/", handler.CreateSpace)
		routerGroup.Get("/mine", handler.GetMySpaces)
		routerGroup.Get("/{id}", handler.GetSpaceByID)
		routerGroup.Patch("/{id}/status", handler.UpdateSpaceStatus)
	})
}

// CreateSpace handles the creation of a new space.
// @Summary List a new space
// @Description Owners list a space for rent. An uploaded image takes precedence over image_url.
// @Tags Space
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price_per_hour formData number true "Price per hour"
// @Param capacity formData integer true "Capacity"
// @Param location formData string true "Location"
// @Param space_type formData string true "Space type" Enums(sala_reuniones, oficina, coworking, estudio, salon_eventos)
// @Param image_url formData string false "Image URL"
// @Param amenities formData string false "Comma separated amenities"
// @Param image formData file false "Space image"
// @Success 201 {object} response.Data[dto.SpaceResponse] "Space created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [post]
// @Security BearerAuth
func (handler *Handler) CreateSpace(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpace")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateSpaceRequest{
		Title:       request.FormValue("title"),
		Description: request.FormValue("description"),
		Location:    request.FormValue("location"),
		SpaceType:   request.FormValue("space_type"),
		ImageURL:    request.FormValue("image_url"),
		Amenities:   request.FormValue("amenities"),
	}

	if err := readNumbers(request, &req); err != nil {
		scope.TraceError(err)
		response.WithErrorInput(writer, err, req)

		return
	}

	file, fileHeader, err := request.FormFile(formImage)
	if err == nil {
		defer file.Close()

		if err := checkImage(fileHeader.Size, fileHeader.Header.Get(constant.RequestHeaderContentType)); err != nil {
			scope.TraceError(err)
			response.WithErrorInput(writer, err, req)

			return
		}

		req.Image = fileHeader
		req.ImageFile = file
	}

	req.Normalize()

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithErrorInput(writer, err, req)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create space")

		response.WithErrorInput(writer, err, req)

		return
	}

	scope.AddEvent("Space created successfully by user " + res.OwnerID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// readNumbers parses the numeric form fields. Blank values are left for the validator to reject.
func readNumbers(request *http.Request, req *dto.CreateSpaceRequest) error {
	if price := request.FormValue("price_per_hour"); price != constant.Empty {
		value, err := decimal.NewFromString(price)
		if err != nil {
			return failure.BadRequestFromString(msgInvalidPrice) //nolint:wrapcheck
		}

		req.PricePerHour = value
	}

	if capacity := request.FormValue("capacity"); capacity != constant.Empty {
		value, err := shared.ConvertStringToInt(capacity)
		if err != nil {
			return failure.BadRequestFromString(msgInvalidCapacity) //nolint:wrapcheck
		}

		req.Capacity = value
	}

	return nil
}

func checkImage(size int64, contentType string) error {
	if size > dto.MaxImageSize {
		return failure.BadRequestFromString(msgImageTooLarge) //nolint:wrapcheck
	}

	if !slices.Contains(dto.ImageContentTypes, contentType) {
		return failure.BadRequestFromString(msgImageContentType) //nolint:wrapcheck
	}

	return nil
}

// SearchSpaces lists the active spaces matching every given filter.
// @Summary Search spaces
// @Description Active spaces, newest first. Filters combine with AND; an empty result is not an error.
// @Tags Space
// @Produce json
// @Param location query string false "Case-insensitive substring of the location"
// @Param min_capacity query integer false "Minimum capacity"
// @Param max_price query number false "Maximum price per hour"
// @Param type query string false "Space type"
// @Success 200 {object} response.Data[dto.SearchResponse] "Matching spaces"
// @Failure 500 {object} response.Error
// @Router /v1/spaces [get]
func (handler *Handler) SearchSpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchSpaces")
	defer scope.End()

	filter := catalog.ParseFilter(r.URL.Query())

	spaces, err := handler.service.Search(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search spaces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, spaces)
}

// GetMySpaces lists the signed-in owner's spaces page by page.
// @Summary List my spaces
// @Description Owners page through their own spaces, optionally filtered by status.
// @Tags Space
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.OwnerSpacesResponse] "Owner spaces"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMySpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMySpaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	spaces, err := handler.service.ListMine(ctx, queryParams, active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list owner spaces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, spaces)
}

// GetSpaceByID retrieves a space by its ID.
// @Summary Get a space by ID
// @Description Inactive spaces are visible to their owner only.
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} response.Data[dto.SpaceResponse] "Space details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [get]
func (handler *Handler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	space, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("space_id", id).Msg("failed to get space by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, space)
}

// UpdateSpaceStatus toggles whether a space shows in the catalog.
// @Summary Change the status of a space
// @Description Owners hide or show their own spaces.
// @Tags Space
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Message "Space status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSpaceStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpaceStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("space_id", id).Msg("failed to update space status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Space " + id + " set to " + req.Status)

	response.WithMessage(w, http.StatusOK, "Space status updated successfully")
}
