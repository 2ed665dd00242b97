package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/pkg/logger"
)

// ErrNewsNotFound is returned when a news article is not found.
var ErrNewsNotFound = ErrNotFound

// NewsRepository handles news article database operations
type NewsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const newsColumns = `id, title, subtitle, body, category, tag, image_url, thumbnail_url,
	hero_image_url, cta_url, published, publish_at, created_at, updated_at`

func scanNews(row pgx.Row) (*models.NewsArticle, error) {
	n := &models.NewsArticle{}
	err := row.Scan(
		&n.ID, &n.Title, &n.Subtitle, &n.Body, &n.Category, &n.Tag,
		&n.ImageURL, &n.ThumbnailURL, &n.HeroImageURL, &n.CTAURL,
		&n.Published, &n.PublishAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a news article
func (r *NewsRepository) Create(ctx context.Context, article *models.NewsArticle) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("news_articles").
		Columns("title", "subtitle", "body", "category", "tag", "image_url", "thumbnail_url",
			"hero_image_url", "cta_url", "published", "publish_at").
		Values(article.Title, article.Subtitle, article.Body, article.Category, article.Tag,
			article.ImageURL, article.ThumbnailURL, article.HeroImageURL, article.CTAURL,
			article.Published, article.PublishAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create news query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create news query")
		return uuid.Nil, fmt.Errorf("error creating news article: %w", err)
	}

	return article.ID, nil
}

// GetByID retrieves a news article by ID
func (r *NewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.NewsArticle, error) {
	sql, args, err := r.sb.Select(newsColumns).
		From("news_articles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get news query: %w", err)
	}

	article, err := scanNews(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		logger.Error().Err(err).Str("newsID", id.String()).Msg("Error scanning news row")
		return nil, fmt.Errorf("error getting news article by ID: %w", err)
	}

	return article, nil
}

// List retrieves articles, optionally filtered by published flag and category.
// Published articles come first by publish date, unpublished ones last.
func (r *NewsRepository) List(ctx context.Context, publishedOnly bool, category *string, limit, offset int) ([]*models.NewsArticle, int64, error) {
	builder := r.sb.Select(newsColumns).From("news_articles")
	countBuilder := r.sb.Select("COUNT(*)").From("news_articles")
	if publishedOnly {
		builder = builder.Where(squirrel.Eq{"published": true})
		countBuilder = countBuilder.Where(squirrel.Eq{"published": true})
	}
	if category != nil {
		builder = builder.Where(squirrel.Eq{"category": *category})
		countBuilder = countBuilder.Where(squirrel.Eq{"category": *category})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count news query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting news articles: %w", err)
	}

	sql, args, err := builder.
		OrderBy("publish_at DESC NULLS LAST", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list news query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list news query")
		return nil, 0, fmt.Errorf("error querying news articles: %w", err)
	}
	defer rows.Close()

	articles := []*models.NewsArticle{}
	for rows.Next() {
		article, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning news row: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating news rows: %w", err)
	}

	return articles, total, nil
}

// Update persists mutable article fields
func (r *NewsRepository) Update(ctx context.Context, article *models.NewsArticle) error {
	sql, args, err := r.sb.Update("news_articles").
		SetMap(map[string]interface{}{
			"title":          article.Title,
			"subtitle":       article.Subtitle,
			"body":           article.Body,
			"category":       article.Category,
			"tag":            article.Tag,
			"image_url":      article.ImageURL,
			"thumbnail_url":  article.ThumbnailURL,
			"hero_image_url": article.HeroImageURL,
			"cta_url":        article.CTAURL,
			"published":      article.Published,
			"publish_at":     article.PublishAt,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": article.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update news query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("newsID", article.ID.String()).Msg("Error executing update news query")
		return fmt.Errorf("error updating news article: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}

	return nil
}

// Delete removes a news article
func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("newsID", id.String()).Msg("Error executing delete news query")
		return fmt.Errorf("error deleting news article: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}

	return nil
}
