package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
)

// ---------------------------------------------------------------------------
// In-memory stub collection
// ---------------------------------------------------------------------------

type stubCollection[C, D any] struct {
	mu        sync.Mutex
	list      []D
	listErr   error
	listCalls int

	createFn func(C) (*C, error)
	updateFn func(C) (*C, error)
	deleteFn func(int) (*C, error)

	createCalls int
	updateCalls int
	deleteCalls int
	lastCreate  C
}

var _ ports.Collection[domain.User, domain.UserDto] = (*stubCollection[domain.User, domain.UserDto])(nil)

func (s *stubCollection[C, D]) List(context.Context) ([]D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]D, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *stubCollection[C, D]) Create(_ context.Context, record C) (*C, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	s.lastCreate = record
	return s.createFn(record)
}

func (s *stubCollection[C, D]) Update(_ context.Context, record C) (*C, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	return s.updateFn(record)
}

func (s *stubCollection[C, D]) Delete(_ context.Context, id int) (*C, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	return s.deleteFn(id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func userDto(id int, name string, posts, comments int) domain.UserDto {
	return domain.UserDto{
		User: domain.User{
			ID:           id,
			Username:     name,
			Email:        name + "@example.com",
			CreationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:     true,
		},
		PostCount:    posts,
		CommentCount: comments,
	}
}

func newUserFixture(initial ...domain.UserDto) (*UserStore, *stubCollection[domain.User, domain.UserDto], *alert.Notifier) {
	api := &stubCollection[domain.User, domain.UserDto]{list: initial}
	alerts := alert.NewNotifier(discardLogger)
	return NewUserStore(api, alerts, discardLogger), api, alerts
}

// ---------------------------------------------------------------------------
// Fetch
// ---------------------------------------------------------------------------

func TestUserStore_Fetch_PublishesSnapshot(t *testing.T) {
	s, _, _ := newUserFixture(userDto(1, "alice", 0, 0), userDto(2, "bob", 1, 0))

	lists, unsub := s.List()
	defer unsub()

	// Replay-last delivers the current (empty) snapshot immediately.
	if got := recv(t, lists); len(got) != 0 {
		t.Fatalf("expected empty initial snapshot, got %d entries", len(got))
	}

	s.Fetch(context.Background())

	got := recv(t, lists)
	if len(got) != 2 {
		t.Fatalf("expected 2 users after fetch, got %d", len(got))
	}
	if got[0].Username != "alice" || got[1].Username != "bob" {
		t.Errorf("server order not preserved: %q, %q", got[0].Username, got[1].Username)
	}
	if _, ok := s.FindByID(2); !ok {
		t.Error("FindByID(2) should hit after fetch")
	}
}

func TestUserStore_Fetch_RemoteFailureKeepsSnapshot(t *testing.T) {
	s, api, alerts := newUserFixture(userDto(1, "alice", 0, 0))
	s.Fetch(context.Background())

	events, unsub := alerts.Subscribe()
	defer unsub()

	api.mu.Lock()
	api.listErr = &ports.RemoteError{StatusCode: 500, Message: "boom"}
	api.mu.Unlock()

	s.Fetch(context.Background())

	a := recv(t, events)
	if a.Kind != alert.KindRemote {
		t.Errorf("expected remote alert, got %q", a.Kind)
	}
	if a.Message != "boom" {
		t.Errorf("expected server detail, got %q", a.Message)
	}
	if len(s.Snapshot()) != 1 {
		t.Error("failed fetch must not touch the snapshot")
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestUserStore_Create_AppendsAndAlerts(t *testing.T) {
	s, api, alerts := newUserFixture()
	api.createFn = func(u domain.User) (*domain.User, error) {
		u.ID = 7
		u.CreationDate = time.Now().UTC()
		return &u, nil
	}

	events, unsub := alerts.Subscribe()
	defer unsub()
	created, unsubCreated := s.Created()
	defer unsubCreated()

	draft := userDto(0, "frank", 0, 0)
	draft.Username = "  frank  "
	s.Create(context.Background(), draft)

	if api.lastCreate.Username != "frank" {
		t.Errorf("draft not trimmed before post: %q", api.lastCreate.Username)
	}

	snapshot := s.Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != 7 {
		t.Fatalf("expected server row appended, got %+v", snapshot)
	}
	if snapshot[0].PostCount != 0 || snapshot[0].CommentCount != 0 {
		t.Error("new user must start with zero counters")
	}

	if got := recv(t, created); got.ID != 7 {
		t.Errorf("created event carries id %d, want 7", got.ID)
	}

	a := recv(t, events)
	if a.Kind != alert.KindSuccess {
		t.Fatalf("expected success alert, got %q", a.Kind)
	}
	if want := `The user "frank" has been added successfully.`; a.Message != want {
		t.Errorf("alert message = %q, want %q", a.Message, want)
	}
}

func TestUserStore_Create_ValidationRejectsLocally(t *testing.T) {
	s, api, alerts := newUserFixture()

	events, unsub := alerts.Subscribe()
	defer unsub()

	draft := userDto(0, "abc", 0, 0) // too short
	s.Create(context.Background(), draft)

	a := recv(t, events)
	if a.Kind != alert.KindValidation {
		t.Fatalf("expected validation alert, got %q", a.Kind)
	}
	if want := "Username must be between 4 and 30 characters."; a.Message != want {
		t.Errorf("alert message = %q, want %q", a.Message, want)
	}
	if api.createCalls != 0 {
		t.Error("rejected draft must not reach the network")
	}
	if len(s.Snapshot()) != 0 {
		t.Error("rejected draft must not touch the snapshot")
	}
}

func TestPostStore_Create_FirstViolationWins(t *testing.T) {
	api := &stubCollection[domain.Post, domain.PostDto]{}
	alerts := alert.NewNotifier(discardLogger)
	s := NewPostStore(api, alerts, discardLogger)

	events, unsub := alerts.Subscribe()
	defer unsub()

	// Both the author and the title are missing; the author is reported.
	s.Create(context.Background(), domain.PostDto{Post: domain.Post{CategoryID: 1, Content: "hello"}})

	a := recv(t, events)
	if want := "User ID cannot be null."; a.Message != want {
		t.Errorf("alert message = %q, want %q", a.Message, want)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUserStore_Update_PatchesInPlaceWithCarryOver(t *testing.T) {
	s, api, _ := newUserFixture(userDto(1, "alice", 3, 5), userDto(2, "bob", 0, 0))
	s.Fetch(context.Background())

	api.updateFn = func(u domain.User) (*domain.User, error) {
		return &u, nil // server echoes the canonical record, counters unknown
	}

	draft := userDto(1, "alice", 3, 5)
	draft.Email = "new@example.com"
	s.Update(context.Background(), draft)

	snapshot := s.Snapshot()
	if snapshot[0].Email != "new@example.com" {
		t.Errorf("row not patched: %q", snapshot[0].Email)
	}
	if snapshot[0].PostCount != 3 || snapshot[0].CommentCount != 5 {
		t.Error("denormalized counters must be carried over from the draft")
	}
	if snapshot[1].ID != 2 {
		t.Error("other rows must keep their positions")
	}
	if api.listCalls != 1 {
		t.Errorf("in-place patch must not refetch, got %d list calls", api.listCalls)
	}
}

func TestUserStore_Update_MissingIDFallsBackToFetch(t *testing.T) {
	s, api, _ := newUserFixture(userDto(9, "ghost", 0, 0))
	api.updateFn = func(u domain.User) (*domain.User, error) {
		return &u, nil
	}

	// Snapshot never fetched, so id 9 is unknown locally.
	s.Update(context.Background(), userDto(9, "ghost", 0, 0))

	if api.listCalls != 1 {
		t.Fatalf("expected reconciliation fetch, got %d list calls", api.listCalls)
	}
	if _, ok := s.FindByID(9); !ok {
		t.Error("snapshot should contain the row after the fallback fetch")
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestUserStore_Delete_LastUserGuard(t *testing.T) {
	s, api, alerts := newUserFixture(userDto(1, "alice", 0, 0))
	s.Fetch(context.Background())

	events, unsub := alerts.Subscribe()
	defer unsub()

	s.Delete(context.Background(), s.Snapshot()[0])

	a := recv(t, events)
	if a.Kind != alert.KindBusinessRule {
		t.Fatalf("expected business rule alert, got %q", a.Kind)
	}
	if want := "The last user cannot be deleted."; a.Message != want {
		t.Errorf("alert message = %q, want %q", a.Message, want)
	}
	if api.deleteCalls != 0 {
		t.Error("guarded delete must not reach the network")
	}
}

func TestUserStore_Delete_DependentGuards(t *testing.T) {
	tests := []struct {
		name   string
		target domain.UserDto
		want   string
	}{
		{"posts", userDto(1, "alice", 2, 0), "Users with posts cannot be deleted."},
		{"comments", userDto(1, "alice", 0, 4), "Users with comments cannot be deleted."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, api, alerts := newUserFixture(tt.target, userDto(2, "bob", 0, 0))
			s.Fetch(context.Background())

			events, unsub := alerts.Subscribe()
			defer unsub()

			s.Delete(context.Background(), tt.target)

			a := recv(t, events)
			if a.Message != tt.want {
				t.Errorf("alert message = %q, want %q", a.Message, tt.want)
			}
			if api.deleteCalls != 0 {
				t.Error("guarded delete must not reach the network")
			}
		})
	}
}

func TestUserStore_Delete_RemovesRow(t *testing.T) {
	s, api, alerts := newUserFixture(userDto(1, "alice", 0, 0), userDto(2, "bob", 0, 0))
	s.Fetch(context.Background())

	api.deleteFn = func(id int) (*domain.User, error) {
		u := userDto(id, "alice", 0, 0).User
		return &u, nil
	}

	events, unsub := alerts.Subscribe()
	defer unsub()
	deleted, unsubDeleted := s.Deleted()
	defer unsubDeleted()

	s.Delete(context.Background(), s.Snapshot()[0])

	snapshot := s.Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != 2 {
		t.Fatalf("expected only bob to remain, got %+v", snapshot)
	}
	if _, ok := s.FindByID(1); ok {
		t.Error("deleted id must leave the index")
	}
	if got := recv(t, deleted); got.ID != 1 {
		t.Errorf("deleted event carries id %d, want 1", got.ID)
	}
	if a := recv(t, events); a.Kind != alert.KindSuccess {
		t.Errorf("expected success alert, got %q", a.Kind)
	}
}

// ---------------------------------------------------------------------------
// Lookups and projections
// ---------------------------------------------------------------------------

func TestPostStore_FindAllByUserID(t *testing.T) {
	api := &stubCollection[domain.Post, domain.PostDto]{list: []domain.PostDto{
		{Post: domain.Post{ID: 1, UserID: 1, CategoryID: 1, Title: "a", Content: "x"}},
		{Post: domain.Post{ID: 2, UserID: 2, CategoryID: 1, Title: "b", Content: "y"}},
		{Post: domain.Post{ID: 3, UserID: 1, CategoryID: 2, Title: "c", Content: "z"}},
	}}
	s := NewPostStore(api, alert.NewNotifier(discardLogger), discardLogger)
	s.Fetch(context.Background())

	got := s.FindAllByUserID(1)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FindAllByUserID(1) = %+v", got)
	}
	if got := s.FindAllByCategoryID(2); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("FindAllByCategoryID(2) = %+v", got)
	}
	if got := s.FindAllByForeignKey("nope", 1); got != nil {
		t.Errorf("unknown foreign key should yield nil, got %+v", got)
	}
}

func TestUserStore_SelectOptions(t *testing.T) {
	s, _, _ := newUserFixture(userDto(1, "alice", 0, 0), userDto(2, "bob", 0, 0))
	s.Fetch(context.Background())

	opts := s.SelectOptions()
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[0].ID != 1 || opts[0].Label != "alice" {
		t.Errorf("option projection wrong: %+v", opts[0])
	}
}
