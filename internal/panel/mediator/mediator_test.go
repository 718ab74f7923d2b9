package mediator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/store"
)

// ---------------------------------------------------------------------------
// Stub collections
// ---------------------------------------------------------------------------

type stubCollection[C, D any] struct {
	mu        sync.Mutex
	list      []D
	listCalls int
	deleteFn  func(int) (*C, error)
}

func (s *stubCollection[C, D]) List(context.Context) ([]D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]D, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *stubCollection[C, D]) Create(_ context.Context, record C) (*C, error) {
	return &record, nil
}

func (s *stubCollection[C, D]) Update(_ context.Context, record C) (*C, error) {
	return &record, nil
}

func (s *stubCollection[C, D]) Delete(_ context.Context, id int) (*C, error) {
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	var zero C
	return &zero, nil
}

func (s *stubCollection[C, D]) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	users      *stubCollection[domain.User, domain.UserDto]
	categories *stubCollection[domain.Category, domain.CategoryDto]
	posts      *stubCollection[domain.Post, domain.PostDto]
	comments   *stubCollection[domain.Comment, domain.CommentDto]

	panel struct {
		users      *store.UserStore
		categories *store.CategoryStore
		posts      *store.PostStore
		comments   *store.CommentStore
	}

	mediator *Mediator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()
	alerts := alert.NewNotifier(log)

	f := &fixture{
		users: &stubCollection[domain.User, domain.UserDto]{list: []domain.UserDto{
			{User: domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}},
		}},
		categories: &stubCollection[domain.Category, domain.CategoryDto]{list: []domain.CategoryDto{
			{Category: domain.Category{ID: 1, Name: "go"}},
		}},
		posts: &stubCollection[domain.Post, domain.PostDto]{list: []domain.PostDto{
			{Post: domain.Post{ID: 1, UserID: 1, CategoryID: 1, Title: "hello", Content: "world"}},
		}},
		comments: &stubCollection[domain.Comment, domain.CommentDto]{list: []domain.CommentDto{
			{Comment: domain.Comment{ID: 1, UserID: 1, PostID: 1, Text: "nice"}},
		}},
	}
	f.comments.deleteFn = func(id int) (*domain.Comment, error) {
		return &domain.Comment{ID: id, UserID: 1, PostID: 1, Text: "nice"}, nil
	}

	f.panel.users = store.NewUserStore(f.users, alerts, log)
	f.panel.categories = store.NewCategoryStore(f.categories, alerts, log)
	f.panel.posts = store.NewPostStore(f.posts, alerts, log)
	f.panel.comments = store.NewCommentStore(f.comments, alerts, log)

	ctx := context.Background()
	f.panel.users.Fetch(ctx)
	f.panel.categories.Fetch(ctx)
	f.panel.posts.Fetch(ctx)
	f.panel.comments.Fetch(ctx)

	f.mediator = New(ctx, f.panel.users, f.panel.categories, f.panel.posts, f.panel.comments, log)
	t.Cleanup(f.mediator.Close)
	return f
}

// waitFor polls until cond holds. Cascade refetches run in their own
// goroutines, so assertions on list call counts have to wait for them.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// settle gives in-flight cascades a moment to land before negative checks.
func settle() { time.Sleep(50 * time.Millisecond) }

// ---------------------------------------------------------------------------
// Cascade tests
// ---------------------------------------------------------------------------

func TestMediator_PostUpdateRefetchesEverything(t *testing.T) {
	f := newFixture(t)

	draft := f.panel.posts.Snapshot()[0]
	draft.Title = "hello again"
	f.panel.posts.Update(context.Background(), draft)

	// Each store starts at 1 from the initial fetch.
	waitFor(t, func() bool { return f.users.calls() == 2 })
	waitFor(t, func() bool { return f.categories.calls() == 2 })
	waitFor(t, func() bool { return f.posts.calls() == 2 })
	waitFor(t, func() bool { return f.comments.calls() == 2 })
}

func TestMediator_UserUpdateRefetchesPostsAndComments(t *testing.T) {
	f := newFixture(t)

	draft := f.panel.users.Snapshot()[0]
	draft.Email = "alice@new.example.com"
	f.panel.users.Update(context.Background(), draft)

	waitFor(t, func() bool { return f.posts.calls() == 2 })
	waitFor(t, func() bool { return f.comments.calls() == 2 })

	settle()
	if f.users.calls() != 1 {
		t.Errorf("user update must not refetch users, got %d calls", f.users.calls())
	}
	if f.categories.calls() != 1 {
		t.Errorf("user update must not refetch categories, got %d calls", f.categories.calls())
	}
}

func TestMediator_CategoryUpdateRefetchesPostsOnly(t *testing.T) {
	f := newFixture(t)

	draft := f.panel.categories.Snapshot()[0]
	draft.Name = "golang"
	f.panel.categories.Update(context.Background(), draft)

	waitFor(t, func() bool { return f.posts.calls() == 2 })

	settle()
	if f.users.calls() != 1 || f.categories.calls() != 1 || f.comments.calls() != 1 {
		t.Error("category update must only refetch posts")
	}
}

func TestMediator_UserCreateTriggersNoCascade(t *testing.T) {
	f := newFixture(t)

	f.panel.users.Create(context.Background(), domain.UserDto{
		User: domain.User{Username: "brand-new", Email: "new@example.com"},
	})

	settle()
	if f.posts.calls() != 1 || f.comments.calls() != 1 || f.categories.calls() != 1 {
		t.Error("a new user has no dependents, nothing should refetch")
	}
}

func TestMediator_CommentDeleteRefetchesCountHolders(t *testing.T) {
	f := newFixture(t)

	f.panel.comments.Delete(context.Background(), f.panel.comments.Snapshot()[0])

	waitFor(t, func() bool { return f.comments.calls() == 2 })
	waitFor(t, func() bool { return f.users.calls() == 2 })
	waitFor(t, func() bool { return f.posts.calls() == 2 })

	settle()
	if f.categories.calls() != 1 {
		t.Errorf("comment delete must not refetch categories, got %d calls", f.categories.calls())
	}
}

func TestMediator_CloseStopsCascades(t *testing.T) {
	f := newFixture(t)
	f.mediator.Close()

	draft := f.panel.posts.Snapshot()[0]
	draft.Title = "after close"
	f.panel.posts.Update(context.Background(), draft)

	settle()
	if f.users.calls() != 1 {
		t.Errorf("closed mediator must not cascade, got %d user fetches", f.users.calls())
	}
}

// ---------------------------------------------------------------------------
// Selection providers
// ---------------------------------------------------------------------------

func TestMediator_SelectionProviders(t *testing.T) {
	f := newFixture(t)

	if opts := f.mediator.UserOptions(); len(opts) != 1 || opts[0].Label != "alice" {
		t.Errorf("UserOptions = %+v", opts)
	}
	if opts := f.mediator.CategoryOptions(); len(opts) != 1 || opts[0].Label != "go" {
		t.Errorf("CategoryOptions = %+v", opts)
	}
	if opts := f.mediator.PostOptions(); len(opts) != 1 || opts[0].Label != "hello" {
		t.Errorf("PostOptions = %+v", opts)
	}
}
