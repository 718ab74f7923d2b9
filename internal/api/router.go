package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yamacbayin/blog-admin-panel/internal/api/handler"
	"github.com/yamacbayin/blog-admin-panel/internal/api/metrics"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	redisdb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs to wire its handlers.
type Dependencies struct {
	Users      ports.UserRepository
	Categories ports.CategoryRepository
	Posts      ports.PostRepository
	Comments   ports.CommentRepository
	Cache      *redisdb.ListCache
	Mongo      *mongo.Database
	Redis      *redis.Client
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(requestMetrics)

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Users, deps.Posts, deps.Comments, deps.Cache, deps.Log)
	categoryHandler := handler.NewCategoryHandler(deps.Categories, deps.Posts, deps.Cache, deps.Log)
	postHandler := handler.NewPostHandler(deps.Posts, deps.Comments, deps.Cache, deps.Log)
	commentHandler := handler.NewCommentHandler(deps.Comments, deps.Cache, deps.Log)

	// --- Entity routes ---
	e.GET("/users", userHandler.List)
	e.POST("/users", userHandler.Create)
	e.PUT("/users", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	e.GET("/categories", categoryHandler.List)
	e.POST("/categories", categoryHandler.Create)
	e.PUT("/categories", categoryHandler.Update)
	e.DELETE("/categories/:id", categoryHandler.Delete)

	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create)
	e.PUT("/posts", postHandler.Update)
	e.DELETE("/posts/:id", postHandler.Delete)

	e.GET("/comments", commentHandler.List)
	e.POST("/comments", commentHandler.Create)
	e.PUT("/comments", commentHandler.Update)
	e.DELETE("/comments/:id", commentHandler.Delete)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// requestMetrics records per-route request counts. The route template is used
// as the path label so ids do not explode cardinality.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			c.Path(),
			strconv.Itoa(c.Response().Status),
		).Inc()
		return err
	}
}
