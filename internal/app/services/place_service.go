package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
	"github.com/uisgo/uisgo-backend/internal/app/auth"
)

// PlaceService defines the interface for map places, products and events
type PlaceService interface {
	Catalog() *dto.PlaceCatalogResponse
	CreatePlace(ctx context.Context, userID uuid.UUID, req *dto.CreatePlaceRequest) (*dto.PlaceResponse, error)
	ListPlaces(ctx context.Context, userID uuid.UUID, role models.Role, filter repositories.PlaceFilter, limit, offset int) ([]dto.PlaceResponse, int64, error)
	GetPlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID) (*dto.PlaceResponse, error)
	UpdatePlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID, req *dto.UpdatePlaceRequest) (*dto.PlaceResponse, error)
	DeletePlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID) error

	CreateProduct(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID, req *dto.CreatePlaceProductRequest) (*dto.PlaceProductResponse, error)
	ListProducts(ctx context.Context, placeID uuid.UUID) ([]dto.PlaceProductResponse, error)
	UpdateProduct(ctx context.Context, userID uuid.UUID, role models.Role, productID uuid.UUID, req *dto.UpdatePlaceProductRequest) (*dto.PlaceProductResponse, error)
	DeleteProduct(ctx context.Context, userID uuid.UUID, role models.Role, productID uuid.UUID) error

	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateMapEventRequest) (*dto.MapEventResponse, error)
	ListEvents(ctx context.Context, filter repositories.EventFilter, limit, offset int) ([]dto.MapEventResponse, int64, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.MapEventResponse, error)
	UpdateEvent(ctx context.Context, userID uuid.UUID, role models.Role, eventID uuid.UUID, req *dto.UpdateMapEventRequest) (*dto.MapEventResponse, error)
	DeleteEvent(ctx context.Context, userID uuid.UUID, role models.Role, eventID uuid.UUID) error
}

// placeServiceImpl implements PlaceService
type placeServiceImpl struct {
	placeRepo *repositories.PlaceRepository
	logger    zerolog.Logger
}

// NewPlaceService creates a new PlaceService
func NewPlaceService(placeRepo *repositories.PlaceRepository, logger zerolog.Logger) PlaceService {
	return &placeServiceImpl{placeRepo: placeRepo, logger: logger}
}

// Catalog returns the fixed kind and category vocabularies
func (s *placeServiceImpl) Catalog() *dto.PlaceCatalogResponse {
	return &dto.PlaceCatalogResponse{
		Kinds:           models.PlaceTypes,
		PlaceCategories: models.PlaceCategories,
		EventCategories: models.EventCategories,
	}
}

func validatePlaceKind(kind string) error {
	if !slices.Contains(models.PlaceTypes, kind) {
		return fmt.Errorf("%w: unknown place kind %q", apperrors.ErrValidationFailed, kind)
	}
	return nil
}

func validatePlaceCategory(category string) error {
	if !slices.Contains(models.PlaceCategories, category) {
		return fmt.Errorf("%w: unknown place category %q", apperrors.ErrValidationFailed, category)
	}
	return nil
}

func validateEventCategory(category string) error {
	if !slices.Contains(models.EventCategories, category) {
		return fmt.Errorf("%w: unknown event category %q", apperrors.ErrValidationFailed, category)
	}
	return nil
}

// CreatePlace registers a place owned by the caller
func (s *placeServiceImpl) CreatePlace(ctx context.Context, userID uuid.UUID, req *dto.CreatePlaceRequest) (*dto.PlaceResponse, error) {
	if err := validatePlaceKind(req.Kind); err != nil {
		return nil, err
	}
	if err := validatePlaceCategory(req.Category); err != nil {
		return nil, err
	}

	place := &models.Place{
		OwnerID:      userID,
		Kind:         req.Kind,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		HeroImageURL: req.HeroImageURL,
		Location:     req.Location,
		Contact:      req.Contact,
		Tags:         req.Tags,
		IsPublic:     true,
		Status:       "active",
	}
	if req.IsPublic != nil {
		place.IsPublic = *req.IsPublic
	}

	if _, err := s.placeRepo.CreatePlace(ctx, place); err != nil {
		return nil, err
	}

	return toPlaceResponse(place), nil
}

// ListPlaces returns places matching the filter. Non-privileged callers only
// see public active places unless they filter by their own ownership.
func (s *placeServiceImpl) ListPlaces(ctx context.Context, userID uuid.UUID, role models.Role, filter repositories.PlaceFilter, limit, offset int) ([]dto.PlaceResponse, int64, error) {
	if !auth.IsPrivileged(role) {
		if filter.OwnerID == nil || *filter.OwnerID != userID {
			filter.PublicOnly = true
		}
	}

	places, total, err := s.placeRepo.ListPlaces(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.PlaceResponse, 0, len(places))
	for _, place := range places {
		result = append(result, *toPlaceResponse(place))
	}
	return result, total, nil
}

// GetPlace returns one place. Hidden places are only visible to their owner
// and privileged roles.
func (s *placeServiceImpl) GetPlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID) (*dto.PlaceResponse, error) {
	place, err := s.getPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !place.IsPublic && place.OwnerID != userID && !auth.IsPrivileged(role) {
		return nil, apperrors.ErrPlaceNotFound
	}
	return toPlaceResponse(place), nil
}

func (s *placeServiceImpl) getPlace(ctx context.Context, placeID uuid.UUID) (*models.Place, error) {
	place, err := s.placeRepo.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlaceNotFound) {
			return nil, apperrors.ErrPlaceNotFound
		}
		return nil, err
	}
	return place, nil
}

// requirePlaceOwner loads a place and checks the caller may manage it
func (s *placeServiceImpl) requirePlaceOwner(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID) (*models.Place, error) {
	place, err := s.getPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID != userID && !auth.IsPrivileged(role) {
		return nil, apperrors.ErrPermissionDenied
	}
	return place, nil
}

// UpdatePlace applies partial changes to a place the caller owns
func (s *placeServiceImpl) UpdatePlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID, req *dto.UpdatePlaceRequest) (*dto.PlaceResponse, error) {
	place, err := s.requirePlaceOwner(ctx, userID, role, placeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.Category != nil {
		if err := validatePlaceCategory(*req.Category); err != nil {
			return nil, err
		}
		place.Category = *req.Category
	}
	if req.Description != nil {
		place.Description = req.Description
	}
	if req.ThumbnailURL != nil {
		place.ThumbnailURL = req.ThumbnailURL
	}
	if req.HeroImageURL != nil {
		place.HeroImageURL = req.HeroImageURL
	}
	if req.Location != nil {
		place.Location = req.Location
	}
	if req.Contact != nil {
		place.Contact = req.Contact
	}
	if req.Tags != nil {
		place.Tags = req.Tags
	}
	if req.IsPublic != nil {
		place.IsPublic = *req.IsPublic
	}
	if req.Status != nil {
		place.Status = *req.Status
	}

	if err := s.placeRepo.UpdatePlace(ctx, place); err != nil {
		return nil, err
	}

	return toPlaceResponse(place), nil
}

// DeletePlace removes a place the caller owns
func (s *placeServiceImpl) DeletePlace(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID) error {
	if _, err := s.requirePlaceOwner(ctx, userID, role, placeID); err != nil {
		return err
	}
	return s.placeRepo.DeletePlace(ctx, placeID)
}

// CreateProduct adds a product to a place the caller owns
func (s *placeServiceImpl) CreateProduct(ctx context.Context, userID uuid.UUID, role models.Role, placeID uuid.UUID, req *dto.CreatePlaceProductRequest) (*dto.PlaceProductResponse, error) {
	if _, err := s.requirePlaceOwner(ctx, userID, role, placeID); err != nil {
		return nil, err
	}

	product := &models.PlaceProduct{
		PlaceID:     placeID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CTAURL:      req.CTAURL,
	}
	if req.OrderIndex != nil {
		product.OrderIndex = *req.OrderIndex
	}

	if _, err := s.placeRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// ListProducts returns a place's products ordered for display
func (s *placeServiceImpl) ListProducts(ctx context.Context, placeID uuid.UUID) ([]dto.PlaceProductResponse, error) {
	if _, err := s.getPlace(ctx, placeID); err != nil {
		return nil, err
	}

	products, err := s.placeRepo.ListProducts(ctx, placeID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PlaceProductResponse, 0, len(products))
	for _, product := range products {
		result = append(result, *toProductResponse(product))
	}
	return result, nil
}

func (s *placeServiceImpl) requireProductOwner(ctx context.Context, userID uuid.UUID, role models.Role, productID uuid.UUID) (*models.PlaceProduct, error) {
	product, err := s.placeRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlaceProductNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	if _, err := s.requirePlaceOwner(ctx, userID, role, product.PlaceID); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies partial changes to a product
func (s *placeServiceImpl) UpdateProduct(ctx context.Context, userID uuid.UUID, role models.Role, productID uuid.UUID, req *dto.UpdatePlaceProductRequest) (*dto.PlaceProductResponse, error) {
	product, err := s.requireProductOwner(ctx, userID, role, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.CTAURL != nil {
		product.CTAURL = req.CTAURL
	}
	if req.OrderIndex != nil {
		product.OrderIndex = *req.OrderIndex
	}

	if err := s.placeRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// DeleteProduct removes a product
func (s *placeServiceImpl) DeleteProduct(ctx context.Context, userID uuid.UUID, role models.Role, productID uuid.UUID) error {
	if _, err := s.requireProductOwner(ctx, userID, role, productID); err != nil {
		return err
	}
	return s.placeRepo.DeleteProduct(ctx, productID)
}

// CreateEvent publishes an event owned by the caller
func (s *placeServiceImpl) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateMapEventRequest) (*dto.MapEventResponse, error) {
	if err := validateEventCategory(req.Category); err != nil {
		return nil, err
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, fmt.Errorf("%w: endAt must be after startAt", apperrors.ErrValidationFailed)
	}
	if req.PlaceID != nil {
		if _, err := s.getPlace(ctx, *req.PlaceID); err != nil {
			return nil, err
		}
	}

	event := &models.MapEvent{
		OwnerID:     userID,
		PlaceID:     req.PlaceID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Location:    req.Location,
		Contact:     req.Contact,
		BannerURL:   req.BannerURL,
		Visibility:  "public",
	}
	if req.Visibility != nil {
		event.Visibility = *req.Visibility
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}

	if _, err := s.placeRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	return toEventResponse(event), nil
}

// ListEvents returns events matching the filter
func (s *placeServiceImpl) ListEvents(ctx context.Context, filter repositories.EventFilter, limit, offset int) ([]dto.MapEventResponse, int64, error) {
	events, total, err := s.placeRepo.ListEvents(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.MapEventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, *toEventResponse(event))
	}
	return result, total, nil
}

// GetEvent returns one event by id
func (s *placeServiceImpl) GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.MapEventResponse, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *placeServiceImpl) getEvent(ctx context.Context, eventID uuid.UUID) (*models.MapEvent, error) {
	event, err := s.placeRepo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrMapEventNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *placeServiceImpl) requireEventOwner(ctx context.Context, userID uuid.UUID, role models.Role, eventID uuid.UUID) (*models.MapEvent, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != userID && !auth.IsPrivileged(role) {
		return nil, apperrors.ErrPermissionDenied
	}
	return event, nil
}

// UpdateEvent applies partial changes to an event the caller owns
func (s *placeServiceImpl) UpdateEvent(ctx context.Context, userID uuid.UUID, role models.Role, eventID uuid.UUID, req *dto.UpdateMapEventRequest) (*dto.MapEventResponse, error) {
	event, err := s.requireEventOwner(ctx, userID, role, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Subtitle != nil {
		event.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Category != nil {
		if err := validateEventCategory(*req.Category); err != nil {
			return nil, err
		}
		event.Category = *req.Category
	}
	if req.StartAt != nil {
		event.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		event.EndAt = *req.EndAt
	}
	if !event.EndAt.After(event.StartAt) {
		return nil, fmt.Errorf("%w: endAt must be after startAt", apperrors.ErrValidationFailed)
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.Contact != nil {
		event.Contact = req.Contact
	}
	if req.BannerURL != nil {
		event.BannerURL = req.BannerURL
	}
	if req.Visibility != nil {
		event.Visibility = *req.Visibility
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}

	if err := s.placeRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	return toEventResponse(event), nil
}

// DeleteEvent removes an event the caller owns
func (s *placeServiceImpl) DeleteEvent(ctx context.Context, userID uuid.UUID, role models.Role, eventID uuid.UUID) error {
	if _, err := s.requireEventOwner(ctx, userID, role, eventID); err != nil {
		return err
	}
	return s.placeRepo.DeleteEvent(ctx, eventID)
}

func toPlaceResponse(place *models.Place) *dto.PlaceResponse {
	return &dto.PlaceResponse{
		ID:           place.ID,
		OwnerID:      place.OwnerID,
		Kind:         place.Kind,
		Name:         place.Name,
		Category:     place.Category,
		Description:  place.Description,
		ThumbnailURL: place.ThumbnailURL,
		HeroImageURL: place.HeroImageURL,
		Location:     place.Location,
		Contact:      place.Contact,
		Tags:         place.Tags,
		IsPublic:     place.IsPublic,
		IsVerified:   place.IsVerified,
		Status:       place.Status,
		CreatedAt:    place.CreatedAt,
	}
}

func toProductResponse(product *models.PlaceProduct) *dto.PlaceProductResponse {
	return &dto.PlaceProductResponse{
		ID:          product.ID,
		PlaceID:     product.PlaceID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		CTAURL:      product.CTAURL,
		OrderIndex:  product.OrderIndex,
	}
}

func toEventResponse(event *models.MapEvent) *dto.MapEventResponse {
	return &dto.MapEventResponse{
		ID:          event.ID,
		OwnerID:     event.OwnerID,
		PlaceID:     event.PlaceID,
		Title:       event.Title,
		Subtitle:    event.Subtitle,
		Description: event.Description,
		Category:    event.Category,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		Location:    event.Location,
		Contact:     event.Contact,
		BannerURL:   event.BannerURL,
		IsFeatured:  event.IsFeatured,
		Visibility:  event.Visibility,
		CreatedAt:   event.CreatedAt,
	}
}
