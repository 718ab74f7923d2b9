// Package mediator encodes the cross-entity dependency graph and replays it
// as cascade refetches whenever a mutation could have changed a denormalized
// counter somewhere else.
//
// The mediator exists so the stores never reference each other. It holds a
// reference to all four, subscribes to their mutation-result streams, and for
// each mutation kind refetches the fixed set of stores whose view records
// could now be stale. No deltas are computed: a post update may have moved
// the post between two authors and two categories, so every possibly-affected
// collection is re-read in full. Refetch failures are handled inside the
// target store; the mediator never retries.
package mediator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/api/metrics"
	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/store"
)

// target is one store the mediator can refetch.
type target struct {
	name  string
	fetch func(context.Context)
}

// Mediator wires the stores' mutation streams to cascade refetches and
// exposes the cross-entity selection providers.
type Mediator struct {
	users      *store.UserStore
	categories *store.CategoryStore
	posts      *store.PostStore
	comments   *store.CommentStore
	log        zerolog.Logger
	cancels    []func()
}

// New subscribes to every mutation stream. ctx bounds the refetch calls the
// mediator issues; cancel the subscriptions themselves with Close.
func New(ctx context.Context, users *store.UserStore, categories *store.CategoryStore, posts *store.PostStore, comments *store.CommentStore, log zerolog.Logger) *Mediator {
	m := &Mediator{
		users:      users,
		categories: categories,
		posts:      posts,
		comments:   comments,
		log:        log.With().Str("component", "mediator").Logger(),
	}

	tUsers := target{"user", users.Fetch}
	tCategories := target{"category", categories.Fetch}
	tPosts := target{"post", posts.Fetch}
	tComments := target{"comment", comments.Fetch}

	// The dependency table. Creating a user or category needs no cascade:
	// a brand-new entity starts with zero dependents, which the zero-valued
	// placeholders already represent. Deleting one is only possible when it
	// has no dependents, so nothing else can be stale.
	watch(m, ctx, "user_updated", m.users.Updated, tPosts, tComments)
	watch(m, ctx, "category_updated", m.categories.Updated, tPosts)
	watch(m, ctx, "post_created", m.posts.Created, tUsers, tCategories, tPosts, tComments)
	watch(m, ctx, "post_updated", m.posts.Updated, tUsers, tCategories, tPosts, tComments)
	watch(m, ctx, "post_deleted", m.posts.Deleted, tPosts, tUsers, tCategories)
	watch(m, ctx, "comment_created", m.comments.Created, tComments, tUsers, tPosts)
	watch(m, ctx, "comment_updated", m.comments.Updated, tComments, tUsers, tPosts)
	watch(m, ctx, "comment_deleted", m.comments.Deleted, tComments, tUsers, tPosts)

	return m
}

// watch subscribes to one mutation stream and dispatches the cascade for
// every event until Close unsubscribes.
func watch[T any](m *Mediator, ctx context.Context, trigger string, subscribe func() (<-chan T, func()), targets ...target) {
	events, cancel := subscribe()
	m.cancels = append(m.cancels, cancel)

	go func() {
		for range events {
			m.cascade(ctx, trigger, targets)
		}
	}()
}

// cascade dispatches one refetch per target store. The refetches run in
// independent goroutines and race freely: each store only ever needs its own
// latest snapshot, so no ordering between them is required.
func (m *Mediator) cascade(ctx context.Context, trigger string, targets []target) {
	for _, t := range targets {
		metrics.CascadeRefetchesTotal.WithLabelValues(trigger, t.name).Inc()
		go t.fetch(ctx)
	}
	m.log.Debug().Str("trigger", trigger).Int("stores", len(targets)).Msg("cascade refetch dispatched")
}

// Close unsubscribes from all mutation streams and stops the watchers.
func (m *Mediator) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
}

// UserOptions returns author picker options from the user store's snapshot.
func (m *Mediator) UserOptions() []domain.SelectOption {
	return m.users.SelectOptions()
}

// CategoryOptions returns category picker options.
func (m *Mediator) CategoryOptions() []domain.SelectOption {
	return m.categories.SelectOptions()
}

// PostOptions returns post picker options.
func (m *Mediator) PostOptions() []domain.SelectOption {
	return m.posts.SelectOptions()
}
