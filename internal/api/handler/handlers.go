// Package handler implements the blog API's HTTP handlers: one CRUD set per
// entity collection, all exchanging the canonical-record JSON shape, with
// list reads returning the denormalized Dto shape the panel caches.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yamacbayin/blog-admin-panel/internal/api/metrics"
	redisdb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/redis"
)

// Collection names, shared by routes and the list cache.
const (
	CollectionUsers      = "users"
	CollectionCategories = "categories"
	CollectionPosts      = "posts"
	CollectionComments   = "comments"
)

// Cache invalidation sets. These mirror the cross-entity dependency graph
// the panel's mediator refetches: a write to one collection stales the
// denormalized list reads of every collection named here.
var (
	affectedByUserWrite     = []string{CollectionUsers, CollectionPosts, CollectionComments}
	affectedByCategoryWrite = []string{CollectionCategories, CollectionPosts}
	affectedByPostWrite     = []string{CollectionUsers, CollectionCategories, CollectionPosts, CollectionComments}
	affectedByCommentWrite  = []string{CollectionUsers, CollectionPosts, CollectionComments}
)

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// listCached serves a collection's Dto list through the cache. fetch runs
// the aggregation on a miss; its result is stored and returned verbatim.
func listCached(c echo.Context, cache *redisdb.ListCache, collection string, fetch func() (any, error)) error {
	ctx := c.Request().Context()
	if payload, ok := cache.Get(ctx, collection); ok {
		return c.JSONBlob(http.StatusOK, payload)
	}

	start := time.Now()
	dtos, err := fetch()
	if err != nil {
		return err
	}
	metrics.ListQueryDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())

	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}
	cache.Set(ctx, collection, payload)
	return c.JSONBlob(http.StatusOK, payload)
}
