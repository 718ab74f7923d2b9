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

// PostHandler handles HTTP requests for the post collection.
type PostHandler struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	cache    *redisdb.ListCache
	log      zerolog.Logger
}

func NewPostHandler(posts ports.PostRepository, comments ports.CommentRepository, cache *redisdb.ListCache, log zerolog.Logger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, cache: cache, log: log}
}

// List handles GET /posts.
func (h *PostHandler) List(c echo.Context) error {
	return listCached(c, h.cache, CollectionPosts, func() (any, error) {
		return h.posts.ListDtos(c.Request().Context())
	})
}

// Create handles POST /posts.
func (h *PostHandler) Create(c echo.Context) error {
	var post domain.Post
	if err := c.Bind(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.posts.Create(ctx, &post); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByPostWrite...)

	h.log.Info().Int("post_id", post.ID).Str("title", post.Title).Msg("post created")
	return c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts.
func (h *PostHandler) Update(c echo.Context) error {
	var post domain.Post
	if err := c.Bind(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.posts.Update(ctx, &post); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByPostWrite...)

	h.log.Info().Int("post_id", post.ID).Msg("post updated")
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id. Posts with comments cannot be deleted.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if n, err := h.comments.CountByPost(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("post has %d comments: %w", n, domain.ErrHasDependents)
	}

	post, err := h.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByPostWrite...)

	h.log.Info().Int("post_id", id).Msg("post deleted")
	return c.JSON(http.StatusOK, post)
}
