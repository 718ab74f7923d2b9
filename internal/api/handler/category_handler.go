package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	redisdb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/redis"
)

// CategoryHandler handles HTTP requests for the category collection.
type CategoryHandler struct {
	categories ports.CategoryRepository
	posts      ports.PostRepository
	cache      *redisdb.ListCache
	log        zerolog.Logger
}

func NewCategoryHandler(categories ports.CategoryRepository, posts ports.PostRepository, cache *redisdb.ListCache, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, posts: posts, cache: cache, log: log}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c echo.Context) error {
	return listCached(c, h.cache, CollectionCategories, func() (any, error) {
		return h.categories.ListDtos(c.Request().Context())
	})
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	var category domain.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.categories.Create(ctx, &category); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCategoryWrite...)

	h.log.Info().Int("category_id", category.ID).Str("name", category.Name).Msg("category created")
	return c.JSON(http.StatusOK, category)
}

// Update handles PUT /categories.
func (h *CategoryHandler) Update(c echo.Context) error {
	var category domain.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.categories.Update(ctx, &category); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCategoryWrite...)

	h.log.Info().Int("category_id", category.ID).Msg("category updated")
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /categories/:id. Categories with posts cannot be
// deleted.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if n, err := h.posts.CountByCategory(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("category has %d posts: %w", n, domain.ErrHasDependents)
	}

	category, err := h.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCategoryWrite...)

	h.log.Info().Int("category_id", id).Msg("category deleted")
	return c.JSON(http.StatusOK, category)
}
