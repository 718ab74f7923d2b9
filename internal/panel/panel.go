// Package panel assembles the client-side core: the four entity stores, the
// mediator, and the alert stream, held by one explicitly constructed
// container instead of process-global singletons.
package panel

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/mediator"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/store"
)

// Panel is the application-scoped container for the entity cache.
type Panel struct {
	Users      *store.UserStore
	Categories *store.CategoryStore
	Posts      *store.PostStore
	Comments   *store.CommentStore
	Mediator   *mediator.Mediator
	Alerts     *alert.Notifier
}

// New builds the stores against the given backend and wires the mediator.
// ctx bounds every cascade refetch the mediator will issue.
func New(ctx context.Context, backend ports.Backend, log zerolog.Logger) *Panel {
	alerts := alert.NewNotifier(log)

	users := store.NewUserStore(backend.Users(), alerts, log)
	categories := store.NewCategoryStore(backend.Categories(), alerts, log)
	posts := store.NewPostStore(backend.Posts(), alerts, log)
	comments := store.NewCommentStore(backend.Comments(), alerts, log)

	return &Panel{
		Users:      users,
		Categories: categories,
		Posts:      posts,
		Comments:   comments,
		Mediator:   mediator.New(ctx, users, categories, posts, comments, log),
		Alerts:     alerts,
	}
}

// Start issues the initial fetch for every store. The fetches run
// concurrently; each store emits its list as soon as its own read lands.
func (p *Panel) Start(ctx context.Context) {
	go p.Users.Fetch(ctx)
	go p.Categories.Fetch(ctx)
	go p.Posts.Fetch(ctx)
	go p.Comments.Fetch(ctx)
}

// Close stops the mediator's subscriptions.
func (p *Panel) Close() {
	p.Mediator.Close()
}
