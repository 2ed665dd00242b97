package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsArticle is an editorial item; starts unpublished
type NewsArticle struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Subtitle     *string    `json:"subtitle"`
	Body         string     `json:"body"`
	Category     string     `json:"category"`
	Tag          *string    `json:"tag"`
	ImageURL     *string    `json:"imageUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	HeroImageURL *string    `json:"heroImageUrl"`
	CTAURL       *string    `json:"ctaUrl"`
	Published    bool       `json:"published"`
	PublishAt    *time.Time `json:"publishAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
