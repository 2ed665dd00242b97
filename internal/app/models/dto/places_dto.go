package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreatePlaceRequest registers a place on the campus map
type CreatePlaceRequest struct {
	Name         string          `json:"name" binding:"required,min=2,max=150"`
	Kind         string          `json:"kind" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Description  *string         `json:"description"`
	ThumbnailURL *string         `json:"thumbnailUrl" binding:"omitempty,url"`
	HeroImageURL *string         `json:"heroImageUrl" binding:"omitempty,url"`
	Location     json.RawMessage `json:"location"`
	Contact      json.RawMessage `json:"contact"`
	Tags         []string        `json:"tags"`
	IsPublic     *bool           `json:"isPublic"`
}

// UpdatePlaceRequest updates place fields; nil fields are left unchanged
type UpdatePlaceRequest struct {
	Name         *string         `json:"name"`
	Category     *string         `json:"category"`
	Description  *string         `json:"description"`
	ThumbnailURL *string         `json:"thumbnailUrl" binding:"omitempty,url"`
	HeroImageURL *string         `json:"heroImageUrl" binding:"omitempty,url"`
	Location     json.RawMessage `json:"location"`
	Contact      json.RawMessage `json:"contact"`
	Tags         []string        `json:"tags"`
	IsPublic     *bool           `json:"isPublic"`
	Status       *string         `json:"status" binding:"omitempty,oneof=active inactive"`
}

// PlaceResponse is a place in list and detail views
type PlaceResponse struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"ownerId"`
	Kind         string          `json:"kind"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  *string         `json:"description"`
	ThumbnailURL *string         `json:"thumbnailUrl"`
	HeroImageURL *string         `json:"heroImageUrl"`
	Location     json.RawMessage `json:"location"`
	Contact      json.RawMessage `json:"contact"`
	Tags         []string        `json:"tags"`
	IsPublic     bool            `json:"isPublic"`
	IsVerified   bool            `json:"isVerified"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreatePlaceProductRequest adds a product to a place
type CreatePlaceProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=150"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	CTAURL      *string  `json:"ctaUrl" binding:"omitempty,url"`
	OrderIndex  *float64 `json:"orderIndex"`
}

// UpdatePlaceProductRequest updates product fields
type UpdatePlaceProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	CTAURL      *string  `json:"ctaUrl" binding:"omitempty,url"`
	OrderIndex  *float64 `json:"orderIndex"`
}

// PlaceProductResponse is one product of a place
type PlaceProductResponse struct {
	ID          uuid.UUID `json:"id"`
	PlaceID     uuid.UUID `json:"placeId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
	CTAURL      *string   `json:"ctaUrl"`
	OrderIndex  float64   `json:"orderIndex"`
}

// CreateMapEventRequest publishes an event on the map
type CreateMapEventRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=200"`
	Subtitle    *string         `json:"subtitle"`
	Description *string         `json:"description"`
	Category    string          `json:"category" binding:"required"`
	PlaceID     *uuid.UUID      `json:"placeId"`
	StartAt     time.Time       `json:"startAt" binding:"required"`
	EndAt       time.Time       `json:"endAt" binding:"required"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
	BannerURL   *string         `json:"bannerUrl" binding:"omitempty,url"`
	Visibility  *string         `json:"visibility" binding:"omitempty,oneof=public private"`
	IsFeatured  *bool           `json:"isFeatured"`
}

// UpdateMapEventRequest updates event fields
type UpdateMapEventRequest struct {
	Title       *string         `json:"title"`
	Subtitle    *string         `json:"subtitle"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	StartAt     *time.Time      `json:"startAt"`
	EndAt       *time.Time      `json:"endAt"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
	BannerURL   *string         `json:"bannerUrl" binding:"omitempty,url"`
	Visibility  *string         `json:"visibility" binding:"omitempty,oneof=public private"`
	IsFeatured  *bool           `json:"isFeatured"`
}

// MapEventResponse is one event as shown on the map
type MapEventResponse struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	PlaceID     *uuid.UUID      `json:"placeId"`
	Title       string          `json:"title"`
	Subtitle    *string         `json:"subtitle"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	StartAt     time.Time       `json:"startAt"`
	EndAt       time.Time       `json:"endAt"`
	Location    json.RawMessage `json:"location"`
	Contact     json.RawMessage `json:"contact"`
	BannerURL   *string         `json:"bannerUrl"`
	IsFeatured  bool            `json:"isFeatured"`
	Visibility  string          `json:"visibility"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PlaceCatalogResponse lists the fixed kind and category vocabularies
type PlaceCatalogResponse struct {
	Kinds           []string `json:"kinds"`
	PlaceCategories []string `json:"placeCategories"`
	EventCategories []string `json:"eventCategories"`
}
