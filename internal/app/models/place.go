package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Catalog constants for the map/marketplace feature
var (
	PlaceTypes      = []string{"store", "service", "spot"}
	PlaceCategories = []string{"Comida", "Accesorios", "Hogar", "Papelería", "Café", "Tecnología", "Bienestar"}
	EventCategories = []string{"Cultural", "Académico", "Deportivo", "Wellness", "Promoción"}
)

// Place is an owned marketplace listing
type Place struct {
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
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// PlaceProduct is an item offered by a place
type PlaceProduct struct {
	ID          uuid.UUID `json:"id"`
	PlaceID     uuid.UUID `json:"placeId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
	CTAURL      *string   `json:"ctaUrl"`
	OrderIndex  float64   `json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MapEvent is a time-bounded event shown on the campus map
type MapEvent struct {
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
	UpdatedAt   time.Time       `json:"updatedAt"`
}
