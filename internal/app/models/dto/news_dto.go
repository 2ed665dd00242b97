package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNewsRequest creates an unpublished news article
type CreateNewsRequest struct {
	Title        string  `json:"title" binding:"required,min=2,max=200"`
	Subtitle     *string `json:"subtitle"`
	Body         string  `json:"body" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Tag          *string `json:"tag"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,url"`
	ThumbnailURL *string `json:"thumbnailUrl" binding:"omitempty,url"`
	HeroImageURL *string `json:"heroImageUrl" binding:"omitempty,url"`
	CTAURL       *string `json:"ctaUrl" binding:"omitempty,url"`
}

// UpdateNewsRequest updates article fields; nil fields are left unchanged
type UpdateNewsRequest struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	Body         *string `json:"body"`
	Category     *string `json:"category"`
	Tag          *string `json:"tag"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,url"`
	ThumbnailURL *string `json:"thumbnailUrl" binding:"omitempty,url"`
	HeroImageURL *string `json:"heroImageUrl" binding:"omitempty,url"`
	CTAURL       *string `json:"ctaUrl" binding:"omitempty,url"`
}

// PublishNewsRequest publishes or unpublishes an article
type PublishNewsRequest struct {
	Published bool       `json:"published"`
	PublishAt *time.Time `json:"publishAt"`
}

// NewsResponse is an article in list and detail views
type NewsResponse struct {
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
}
