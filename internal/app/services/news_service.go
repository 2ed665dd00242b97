package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

// NewsService defines the interface for editorial news articles
type NewsService interface {
	Create(ctx context.Context, req *dto.CreateNewsRequest) (*dto.NewsResponse, error)
	List(ctx context.Context, publishedOnly bool, category *string, limit, offset int) ([]dto.NewsResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NewsResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error)
	Publish(ctx context.Context, id uuid.UUID, req *dto.PublishNewsRequest) (*dto.NewsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// newsServiceImpl implements NewsService
type newsServiceImpl struct {
	newsRepo *repositories.NewsRepository
	logger   zerolog.Logger
}

// NewNewsService creates a new NewsService
func NewNewsService(newsRepo *repositories.NewsRepository, logger zerolog.Logger) NewsService {
	return &newsServiceImpl{newsRepo: newsRepo, logger: logger}
}

// Create stores a new article. Articles always start unpublished.
func (s *newsServiceImpl) Create(ctx context.Context, req *dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	article := &models.NewsArticle{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Body:         req.Body,
		Category:     req.Category,
		Tag:          req.Tag,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		HeroImageURL: req.HeroImageURL,
		CTAURL:       req.CTAURL,
		Published:    false,
	}

	id, err := s.newsRepo.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	article.ID = id

	return toNewsResponse(article), nil
}

// List returns articles, newest publish date first
func (s *newsServiceImpl) List(ctx context.Context, publishedOnly bool, category *string, limit, offset int) ([]dto.NewsResponse, int64, error) {
	articles, total, err := s.newsRepo.List(ctx, publishedOnly, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.NewsResponse, 0, len(articles))
	for _, article := range articles {
		result = append(result, *toNewsResponse(article))
	}
	return result, total, nil
}

// Get returns one article by id
func (s *newsServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.NewsResponse, error) {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNewsResponse(article), nil
}

func (s *newsServiceImpl) getArticle(ctx context.Context, id uuid.UUID) (*models.NewsArticle, error) {
	article, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, apperrors.ErrNewsNotFound
		}
		return nil, err
	}
	return article, nil
}

// Update applies partial changes to an article
func (s *newsServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Subtitle != nil {
		article.Subtitle = req.Subtitle
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Tag != nil {
		article.Tag = req.Tag
	}
	if req.ImageURL != nil {
		article.ImageURL = req.ImageURL
	}
	if req.ThumbnailURL != nil {
		article.ThumbnailURL = req.ThumbnailURL
	}
	if req.HeroImageURL != nil {
		article.HeroImageURL = req.HeroImageURL
	}
	if req.CTAURL != nil {
		article.CTAURL = req.CTAURL
	}

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return toNewsResponse(article), nil
}

// Publish toggles visibility. Publishing without an explicit publish date
// stamps the current time.
func (s *newsServiceImpl) Publish(ctx context.Context, id uuid.UUID, req *dto.PublishNewsRequest) (*dto.NewsResponse, error) {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	article.Published = req.Published
	if req.Published {
		if req.PublishAt != nil {
			article.PublishAt = req.PublishAt
		} else if article.PublishAt == nil {
			now := time.Now().UTC()
			article.PublishAt = &now
		}
	}

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("articleID", article.ID.String()).
		Bool("published", article.Published).
		Msg("News article publish state changed")

	return toNewsResponse(article), nil
}

// Delete removes an article
func (s *newsServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getArticle(ctx, id); err != nil {
		return err
	}
	return s.newsRepo.Delete(ctx, id)
}

func toNewsResponse(article *models.NewsArticle) *dto.NewsResponse {
	return &dto.NewsResponse{
		ID:           article.ID,
		Title:        article.Title,
		Subtitle:     article.Subtitle,
		Body:         article.Body,
		Category:     article.Category,
		Tag:          article.Tag,
		ImageURL:     article.ImageURL,
		ThumbnailURL: article.ThumbnailURL,
		HeroImageURL: article.HeroImageURL,
		CTAURL:       article.CTAURL,
		Published:    article.Published,
		PublishAt:    article.PublishAt,
		CreatedAt:    article.CreatedAt,
	}
}
