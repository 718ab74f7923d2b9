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

// UserHandler handles HTTP requests for the user collection.
type UserHandler struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	cache    *redisdb.ListCache
	log      zerolog.Logger
}

func NewUserHandler(users ports.UserRepository, posts ports.PostRepository, comments ports.CommentRepository, cache *redisdb.ListCache, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, posts: posts, comments: comments, cache: cache, log: log}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	return listCached(c, h.cache, CollectionUsers, func() (any, error) {
		return h.users.ListDtos(c.Request().Context())
	})
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var user domain.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.users.Create(ctx, &user); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByUserWrite...)

	h.log.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users. The target id travels in the body, matching the
// panel's update call.
func (h *UserHandler) Update(c echo.Context) error {
	var user domain.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.users.Update(ctx, &user); err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByUserWrite...)

	h.log.Info().Int("user_id", user.ID).Msg("user updated")
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id. The business rules the panel checks
// locally are enforced here too: the last user and users with dependent
// posts or comments cannot be deleted.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	total, err := h.users.Count(ctx)
	if err != nil {
		return err
	}
	if total == 1 {
		return domain.ErrLastUser
	}
	if n, err := h.posts.CountByUser(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("user has %d posts: %w", n, domain.ErrHasDependents)
	}
	if n, err := h.comments.CountByUser(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("user has %d comments: %w", n, domain.ErrHasDependents)
	}

	user, err := h.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	h.cache.Invalidate(ctx, affectedByUserWrite...)

	h.log.Info().Int("user_id", id).Msg("user deleted")
	return c.JSON(http.StatusOK, user)
}
