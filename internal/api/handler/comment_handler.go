package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	redisdb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/redis"
)

// CommentHandler handles HTTP requests for the comment collection.
type CommentHandler struct {
	comments ports.CommentRepository
	cache    *redisdb.ListCache
	log      zerolog.Logger
}

func NewCommentHandler(comments ports.CommentRepository, cache *redisdb.ListCache, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, cache: cache, log: log}
}

// List handles GET /comments.
func (h *CommentHandler) List(c echo.Context) error {
	return listCached(c, h.cache, CollectionComments, func() (any, error) {
		return h.comments.ListDtos(c.Request().Context())
	})
}

// Create handles POST /comments.
func (h *CommentHandler) Create(c echo.Context) error {
	var comment domain.Comment
	if err := c.Bind(&comment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&comment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.comments.Create(ctx, &comment); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCommentWrite...)

	h.log.Info().Int("comment_id", comment.ID).Msg("comment created")
	return c.JSON(http.StatusOK, comment)
}

// Update handles PUT /comments.
func (h *CommentHandler) Update(c echo.Context) error {
	var comment domain.Comment
	if err := c.Bind(&comment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&comment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.comments.Update(ctx, &comment); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCommentWrite...)

	h.log.Info().Int("comment_id", comment.ID).Msg("comment updated")
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /comments/:id. Comments have no dependents, so no
// guard applies.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	comment, err := h.comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByCommentWrite...)

	h.log.Info().Int("comment_id", id).Msg("comment deleted")
	return c.JSON(http.StatusOK, comment)
}
