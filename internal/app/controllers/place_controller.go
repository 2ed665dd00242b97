package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// PlaceController handles map places, their products and map events
type PlaceController struct {
	placeService services.PlaceService
}

// NewPlaceController creates a new PlaceController
func NewPlaceController(placeService services.PlaceService) *PlaceController {
	return &PlaceController{placeService: placeService}
}

// Catalog returns the static place and event taxonomies
// @Summary Get the map catalog
// @Description Returns the valid place kinds, place categories and event categories
// @Tags places
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlaceCatalogResponse} "Catalog retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /places/catalog [get]
func (c *PlaceController) Catalog(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.placeService.Catalog())
}

// CreatePlace handles place creation
// @Summary Create a place
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlaceRequest true "Place data"
// @Success 201 {object} dto.APIResponse{data=dto.PlaceResponse} "Place created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places [post]
func (c *PlaceController) CreatePlace(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreatePlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid place data")
		return
	}

	place, err := c.placeService.CreatePlace(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, place)
}

// ListPlaces lists places
// @Summary List places
// @Description Lists public places. Filters by kind, category and owner are supported.
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind"
// @Param category query string false "Filter by category"
// @Param owner query string false "Filter by owner ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Places retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places [get]
func (c *PlaceController) ListPlaces(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	var filter repositories.PlaceFilter
	if v := ctx.Query("kind"); v != "" {
		filter.Kind = &v
	}
	if v := ctx.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := ctx.Query("owner"); v != "" {
		ownerID, err := uuid.Parse(v)
		if err != nil {
			bindError(ctx, err, "Invalid owner ID")
			return
		}
		filter.OwnerID = &ownerID
	}

	places, total, err := c.placeService.ListPlaces(ctx, userID, role, filter, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, places, total, limit, offset)
}

// GetPlace returns place details
// @Summary Get a place
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Success 200 {object} dto.APIResponse{data=dto.PlaceResponse} "Place retrieved"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/{id} [get]
func (c *PlaceController) GetPlace(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	placeID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	place, err := c.placeService.GetPlace(ctx, userID, role, placeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, place)
}

// UpdatePlace updates place fields
// @Summary Update a place
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Param request body dto.UpdatePlaceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PlaceResponse} "Place updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/{id} [patch]
func (c *PlaceController) UpdatePlace(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	placeID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid place data")
		return
	}

	place, err := c.placeService.UpdatePlace(ctx, userID, role, placeID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, place)
}

// DeletePlace removes a place
// @Summary Delete a place
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Place deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/{id} [delete]
func (c *PlaceController) DeletePlace(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	placeID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.placeService.DeletePlace(ctx, userID, role, placeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Place deleted"})
}

// CreateProduct adds a product to a place
// @Summary Create a place product
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Param request body dto.CreatePlaceProductRequest true "Product data"
// @Success 201 {object} dto.APIResponse{data=dto.PlaceProductResponse} "Product created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/{id}/products [post]
func (c *PlaceController) CreateProduct(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	placeID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePlaceProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid product data")
		return
	}

	product, err := c.placeService.CreateProduct(ctx, userID, role, placeID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, product)
}

// ListProducts lists the products of a place
// @Summary List place products
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PlaceProductResponse} "Products retrieved"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/{id}/products [get]
func (c *PlaceController) ListProducts(ctx *gin.Context) {
	placeID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	products, err := c.placeService.ListProducts(ctx, placeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, products)
}

// UpdateProduct updates a product
// @Summary Update a place product
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param request body dto.UpdatePlaceProductRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PlaceProductResponse} "Product updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/products/{productId} [patch]
func (c *PlaceController) UpdateProduct(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(ctx, "productId")
	if !ok {
		return
	}

	var req dto.UpdatePlaceProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid product data")
		return
	}

	product, err := c.placeService.UpdateProduct(ctx, userID, role, productID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, product)
}

// DeleteProduct removes a product
// @Summary Delete a place product
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Product deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /places/products/{productId} [delete]
func (c *PlaceController) DeleteProduct(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(ctx, "productId")
	if !ok {
		return
	}

	if err := c.placeService.DeleteProduct(ctx, userID, role, productID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Product deleted"})
}

// CreateEvent handles map event creation
// @Summary Create a map event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMapEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.MapEventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Place not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *PlaceController) CreateEvent(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateMapEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid event data")
		return
	}

	event, err := c.placeService.CreateEvent(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, event)
}

// ListEvents lists map events
// @Summary List map events
// @Description Lists upcoming events. Expired events are included only on request.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param featured query bool false "Featured events only"
// @Param include_expired query bool false "Include events that already ended"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *PlaceController) ListEvents(ctx *gin.Context) {
	limit, offset := helpers.ParseLimitOffset(ctx)

	var filter repositories.EventFilter
	if v := ctx.Query("category"); v != "" {
		filter.Category = &v
	}
	filter.FeaturedOnly = ctx.Query("featured") == "true"
	filter.IncludeExpired = ctx.Query("include_expired") == "true"

	events, total, err := c.placeService.ListEvents(ctx, filter, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, events, total, limit, offset)
}

// GetEvent returns event details
// @Summary Get a map event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.MapEventResponse} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *PlaceController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.placeService.GetEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event)
}

// UpdateEvent updates event fields
// @Summary Update a map event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateMapEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MapEventResponse} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [patch]
func (c *PlaceController) UpdateEvent(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMapEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid event data")
		return
	}

	event, err := c.placeService.UpdateEvent(ctx, userID, role, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event)
}

// DeleteEvent removes an event
// @Summary Delete a map event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *PlaceController) DeleteEvent(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.placeService.DeleteEvent(ctx, userID, role, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Event deleted"})
}
