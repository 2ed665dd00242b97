package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/auth"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// NewsController handles news articles
type NewsController struct {
	newsService services.NewsService
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// Create handles article creation
// @Summary Create a news article
// @Description Creates a draft article. Articles are created unpublished.
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNewsRequest true "Article data"
// @Success 201 {object} dto.APIResponse{data=dto.NewsResponse} "Article created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news [post]
func (c *NewsController) Create(ctx *gin.Context) {
	var req dto.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid article data")
		return
	}

	article, err := c.newsService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, article)
}

// List lists news articles
// @Summary List news articles
// @Description Lists published articles. Editors may pass published=false to include drafts.
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param published query bool false "Filter to published articles only"
// @Param category query string false "Filter by category"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Articles retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news [get]
func (c *NewsController) List(ctx *gin.Context) {
	_, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	publishedOnly := true
	if ctx.Query("published") == "false" && auth.RoleAllowed(role, auth.NewsEditors) {
		publishedOnly = false
	}

	var category *string
	if v := ctx.Query("category"); v != "" {
		category = &v
	}

	articles, total, err := c.newsService.List(ctx, publishedOnly, category, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, articles, total, limit, offset)
}

// Get returns one article
// @Summary Get a news article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.NewsResponse} "Article retrieved"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id} [get]
func (c *NewsController) Get(ctx *gin.Context) {
	articleID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	article, err := c.newsService.Get(ctx, articleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, article)
}

// Update updates article fields
// @Summary Update a news article
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.UpdateNewsRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.NewsResponse} "Article updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id} [patch]
func (c *NewsController) Update(ctx *gin.Context) {
	articleID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid article data")
		return
	}

	article, err := c.newsService.Update(ctx, articleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, article)
}

// Publish toggles an article's published state
// @Summary Publish or unpublish an article
// @Description Publishing stamps the publish time if the article never had one
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.PublishNewsRequest true "Publish state"
// @Success 200 {object} dto.APIResponse{data=dto.NewsResponse} "Article updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id}/publish [post]
func (c *NewsController) Publish(ctx *gin.Context) {
	articleID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PublishNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid publish data")
		return
	}

	article, err := c.newsService.Publish(ctx, articleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, article)
}

// Delete removes an article
// @Summary Delete a news article
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Article deleted"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id} [delete]
func (c *NewsController) Delete(ctx *gin.Context) {
	articleID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.newsService.Delete(ctx, articleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Article deleted"})
}
