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

// Place error types
var (
	// ErrPlaceNotFound is returned when a place is not found.
	ErrPlaceNotFound = ErrNotFound
	// ErrPlaceProductNotFound is returned when a product is not found.
	ErrPlaceProductNotFound = ErrNotFound
	// ErrMapEventNotFound is returned when a map event is not found.
	ErrMapEventNotFound = ErrNotFound
)

// PlaceFilter narrows place listings
type PlaceFilter struct {
	Kind       *string
	Category   *string
	PublicOnly bool
	OwnerID    *uuid.UUID
}

// EventFilter narrows map event listings
type EventFilter struct {
	Category       *string
	IncludeExpired bool
	FeaturedOnly   bool
	OwnerID        *uuid.UUID
}

// PlaceRepository handles place, product and map event database operations
type PlaceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlaceRepository creates a new PlaceRepository
func NewPlaceRepository(db *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const placeColumns = `id, owner_id, kind, name, category, description, thumbnail_url, hero_image_url,
	location, contact, tags, is_public, is_verified, status, created_at, updated_at`

func scanPlace(row pgx.Row) (*models.Place, error) {
	p := &models.Place{}
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Kind, &p.Name, &p.Category, &p.Description,
		&p.ThumbnailURL, &p.HeroImageURL, &p.Location, &p.Contact, &p.Tags,
		&p.IsPublic, &p.IsVerified, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePlace inserts a place
func (r *PlaceRepository) CreatePlace(ctx context.Context, place *models.Place) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("places").
		Columns("owner_id", "kind", "name", "category", "description", "thumbnail_url", "hero_image_url",
			"location", "contact", "tags", "is_public", "is_verified", "status").
		Values(place.OwnerID, place.Kind, place.Name, place.Category, place.Description,
			place.ThumbnailURL, place.HeroImageURL, place.Location, place.Contact, place.Tags,
			place.IsPublic, place.IsVerified, place.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create place query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("ownerID", place.OwnerID.String()).Msg("Error executing create place query")
		return uuid.Nil, fmt.Errorf("error creating place: %w", err)
	}

	return place.ID, nil
}

// GetPlaceByID retrieves a place by ID
func (r *PlaceRepository) GetPlaceByID(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	sql, args, err := r.sb.Select(placeColumns).
		From("places").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get place query: %w", err)
	}

	place, err := scanPlace(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		logger.Error().Err(err).Str("placeID", id.String()).Msg("Error scanning place row")
		return nil, fmt.Errorf("error getting place by ID: %w", err)
	}

	return place, nil
}

// ListPlaces retrieves places matching the filter
func (r *PlaceRepository) ListPlaces(ctx context.Context, filter PlaceFilter, limit, offset int) ([]*models.Place, int64, error) {
	builder := r.sb.Select(placeColumns).From("places")
	countBuilder := r.sb.Select("COUNT(*)").From("places")

	apply := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Kind != nil {
			b = b.Where(squirrel.Eq{"kind": *filter.Kind})
		}
		if filter.Category != nil {
			b = b.Where(squirrel.Eq{"category": *filter.Category})
		}
		if filter.PublicOnly {
			b = b.Where(squirrel.Eq{"is_public": true, "status": "active"})
		}
		if filter.OwnerID != nil {
			b = b.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
		}
		return b
	}
	builder = apply(builder)
	countBuilder = apply(countBuilder)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count places query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting places: %w", err)
	}

	sql, args, err := builder.
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list places query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list places query")
		return nil, 0, fmt.Errorf("error querying places: %w", err)
	}
	defer rows.Close()

	places := []*models.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning place row: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating place rows: %w", err)
	}

	return places, total, nil
}

// UpdatePlace persists mutable place fields
func (r *PlaceRepository) UpdatePlace(ctx context.Context, place *models.Place) error {
	sql, args, err := r.sb.Update("places").
		SetMap(map[string]interface{}{
			"name":           place.Name,
			"category":       place.Category,
			"description":    place.Description,
			"thumbnail_url":  place.ThumbnailURL,
			"hero_image_url": place.HeroImageURL,
			"location":       place.Location,
			"contact":        place.Contact,
			"tags":           place.Tags,
			"is_public":      place.IsPublic,
			"is_verified":    place.IsVerified,
			"status":         place.Status,
			"updated_at":     squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": place.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update place query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("placeID", place.ID.String()).Msg("Error executing update place query")
		return fmt.Errorf("error updating place: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// DeletePlace removes a place; products cascade
func (r *PlaceRepository) DeletePlace(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("placeID", id.String()).Msg("Error executing delete place query")
		return fmt.Errorf("error deleting place: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

const productColumns = "id, place_id, name, description, price, image_url, cta_url, order_index, created_at"

func scanProduct(row pgx.Row) (*models.PlaceProduct, error) {
	p := &models.PlaceProduct{}
	err := row.Scan(&p.ID, &p.PlaceID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CTAURL, &p.OrderIndex, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct inserts a product under a place
func (r *PlaceRepository) CreateProduct(ctx context.Context, product *models.PlaceProduct) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("place_products").
		Columns("place_id", "name", "description", "price", "image_url", "cta_url", "order_index").
		Values(product.PlaceID, product.Name, product.Description, product.Price, product.ImageURL, product.CTAURL, product.OrderIndex).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create product query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("placeID", product.PlaceID.String()).Msg("Error executing create product query")
		return uuid.Nil, fmt.Errorf("error creating place product: %w", err)
	}

	return product.ID, nil
}

// GetProductByID retrieves a product by ID
func (r *PlaceRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.PlaceProduct, error) {
	sql, args, err := r.sb.Select(productColumns).
		From("place_products").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get product query: %w", err)
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceProductNotFound
		}
		return nil, fmt.Errorf("error getting place product by ID: %w", err)
	}

	return product, nil
}

// ListProducts retrieves a place's products in display order
func (r *PlaceRepository) ListProducts(ctx context.Context, placeID uuid.UUID) ([]*models.PlaceProduct, error) {
	sql, args, err := r.sb.Select(productColumns).
		From("place_products").
		Where(squirrel.Eq{"place_id": placeID}).
		OrderBy("order_index ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list products query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("placeID", placeID.String()).Msg("Error executing list products query")
		return nil, fmt.Errorf("error querying place products: %w", err)
	}
	defer rows.Close()

	products := []*models.PlaceProduct{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// UpdateProduct persists mutable product fields
func (r *PlaceRepository) UpdateProduct(ctx context.Context, product *models.PlaceProduct) error {
	sql, args, err := r.sb.Update("place_products").
		SetMap(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"cta_url":     product.CTAURL,
			"order_index": product.OrderIndex,
		}).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update product query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating place product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPlaceProductNotFound
	}

	return nil
}

// DeleteProduct removes a product
func (r *PlaceRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM place_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting place product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPlaceProductNotFound
	}

	return nil
}

const eventColumns = `id, owner_id, place_id, title, subtitle, description, category, start_at, end_at,
	location, contact, banner_url, is_featured, visibility, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.MapEvent, error) {
	e := &models.MapEvent{}
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.PlaceID, &e.Title, &e.Subtitle, &e.Description, &e.Category,
		&e.StartAt, &e.EndAt, &e.Location, &e.Contact, &e.BannerURL, &e.IsFeatured,
		&e.Visibility, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent inserts a map event
func (r *PlaceRepository) CreateEvent(ctx context.Context, event *models.MapEvent) (uuid.UUID, error) {
	sql, args, err := r.sb.Insert("map_events").
		Columns("owner_id", "place_id", "title", "subtitle", "description", "category", "start_at", "end_at",
			"location", "contact", "banner_url", "is_featured", "visibility").
		Values(event.OwnerID, event.PlaceID, event.Title, event.Subtitle, event.Description, event.Category,
			event.StartAt, event.EndAt, event.Location, event.Contact, event.BannerURL, event.IsFeatured, event.Visibility).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build create event query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("ownerID", event.OwnerID.String()).Msg("Error executing create event query")
		return uuid.Nil, fmt.Errorf("error creating map event: %w", err)
	}

	return event.ID, nil
}

// GetEventByID retrieves a map event by ID
func (r *PlaceRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*models.MapEvent, error) {
	sql, args, err := r.sb.Select(eventColumns).
		From("map_events").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMapEventNotFound
		}
		logger.Error().Err(err).Str("eventID", id.String()).Msg("Error scanning event row")
		return nil, fmt.Errorf("error getting map event by ID: %w", err)
	}

	return event, nil
}

// ListEvents retrieves map events matching the filter, soonest first
func (r *PlaceRepository) ListEvents(ctx context.Context, filter EventFilter, limit, offset int) ([]*models.MapEvent, int64, error) {
	builder := r.sb.Select(eventColumns).From("map_events")
	countBuilder := r.sb.Select("COUNT(*)").From("map_events")

	apply := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Category != nil {
			b = b.Where(squirrel.Eq{"category": *filter.Category})
		}
		if !filter.IncludeExpired {
			b = b.Where(squirrel.Expr("end_at > now()"))
		}
		if filter.FeaturedOnly {
			b = b.Where(squirrel.Eq{"is_featured": true})
		}
		if filter.OwnerID != nil {
			b = b.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
		} else {
			b = b.Where(squirrel.Eq{"visibility": "public"})
		}
		return b
	}
	builder = apply(builder)
	countBuilder = apply(countBuilder)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting map events: %w", err)
	}

	sql, args, err := builder.
		OrderBy("start_at ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list events query")
		return nil, 0, fmt.Errorf("error querying map events: %w", err)
	}
	defer rows.Close()

	events := []*models.MapEvent{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}

// UpdateEvent persists mutable event fields
func (r *PlaceRepository) UpdateEvent(ctx context.Context, event *models.MapEvent) error {
	sql, args, err := r.sb.Update("map_events").
		SetMap(map[string]interface{}{
			"title":       event.Title,
			"subtitle":    event.Subtitle,
			"description": event.Description,
			"category":    event.Category,
			"start_at":    event.StartAt,
			"end_at":      event.EndAt,
			"location":    event.Location,
			"contact":     event.Contact,
			"banner_url":  event.BannerURL,
			"is_featured": event.IsFeatured,
			"visibility":  event.Visibility,
			"updated_at":  squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", event.ID.String()).Msg("Error executing update event query")
		return fmt.Errorf("error updating map event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrMapEventNotFound
	}

	return nil
}

// DeleteEvent removes a map event
func (r *PlaceRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM map_events WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("eventID", id.String()).Msg("Error executing delete event query")
		return fmt.Errorf("error deleting map event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrMapEventNotFound
	}

	return nil
}
