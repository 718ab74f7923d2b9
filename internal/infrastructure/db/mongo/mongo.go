// Package mongo persists the four blog collections and computes the
// denormalized Dto list reads with aggregation pipelines.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Repositories bundles the four entity repositories over one database.
type Repositories struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Posts      *PostRepository
	Comments   *CommentRepository
}

// NewRepositories wires the repositories and their shared id counters.
func NewRepositories(db *mongo.Database) *Repositories {
	counters := NewCounters(db)
	return &Repositories{
		Users:      NewUserRepository(db, counters),
		Categories: NewCategoryRepository(db, counters),
		Posts:      NewPostRepository(db, counters),
		Comments:   NewCommentRepository(db, counters),
	}
}

// EnsureIndexes creates the indexes for every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	if err := r.Users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := r.Categories.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := r.Posts.EnsureIndexes(ctx); err != nil {
		return err
	}
	return r.Comments.EnsureIndexes(ctx)
}
