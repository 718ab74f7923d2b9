// Package store implements the client-side entity cache: one store per
// entity type, each the single source of truth for that type's current list
// and the only component allowed to issue writes for it.
//
// A store exposes the current snapshot as a replay-last stream, performs
// mutations against the remote API, patches its own list on success, and
// publishes mutation-result events that the mediator turns into cascade
// refetches on related stores. Failures of any kind are reported exactly once
// on the alert stream and never returned to the caller.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/api/metrics"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/stream"
)

// hooks carries the per-entity behavior of the generic store core: mapping,
// trimming, delete guards, and accessors the core cannot derive itself.
type hooks[C, D any] struct {
	// entity is the log/metric label ("user", "post", ...), also used as the
	// noun in alert messages.
	entity string

	id    func(D) int
	label func(D) string

	fromDto func(D) C
	toDto   func(C) D
	trim    func(C) C

	// carryOver re-applies the draft's denormalized fields to the mapped
	// server response after an update, so the patched row does not flash
	// zeroed counters while the cascade refetch is in flight.
	carryOver func(draft, returned D) D

	// deleteGuard returns a business-rule message when target must not be
	// deleted, or "" to proceed. listLen is the current snapshot length.
	// nil means the entity has no delete restrictions.
	deleteGuard func(target D, listLen int) string

	// foreignKeys maps fk field names to accessors, for FindAllByForeignKey.
	foreignKeys map[string]func(D) int
}

// Store is the generic entity store core, parametrized over the canonical
// record C and the view record D. Construct the typed wrappers (NewUserStore
// and friends) rather than using Store directly.
type Store[C, D any] struct {
	api    ports.Collection[C, D]
	alerts *alert.Notifier
	log    zerolog.Logger
	hooks  hooks[C, D]

	mu    sync.Mutex
	list  []D
	index map[int]int // id → position in list

	listStream *stream.Stream[[]D]
	created    *stream.Stream[D]
	updated    *stream.Stream[D]
	deleted    *stream.Stream[D]
}

func newStore[C, D any](api ports.Collection[C, D], alerts *alert.Notifier, log zerolog.Logger, h hooks[C, D]) *Store[C, D] {
	return &Store[C, D]{
		api:        api,
		alerts:     alerts,
		log:        log.With().Str("store", h.entity).Logger(),
		hooks:      h,
		index:      make(map[int]int),
		listStream: stream.NewReplay([]D{}),
		created:    stream.New[D](),
		updated:    stream.New[D](),
		deleted:    stream.New[D](),
	}
}

// List subscribes to the snapshot stream. The current snapshot is delivered
// immediately, then again after every change. Ordering is server order; the
// store never sorts.
func (s *Store[C, D]) List() (<-chan []D, func()) {
	return s.listStream.Subscribe()
}

// Created, Updated, and Deleted are the mutation-result streams consumed by
// the mediator. They do not replay.
func (s *Store[C, D]) Created() (<-chan D, func()) { return s.created.Subscribe() }
func (s *Store[C, D]) Updated() (<-chan D, func()) { return s.updated.Subscribe() }
func (s *Store[C, D]) Deleted() (<-chan D, func()) { return s.deleted.Subscribe() }

// Snapshot returns a copy of the current list.
func (s *Store[C, D]) Snapshot() []D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Fetch reads the whole collection and replaces the snapshot. On failure the
// snapshot is left untouched and the error is reported on the alert stream.
//
// Overlapping fetches are not sequenced: whichever response arrives last wins
// the snapshot. This is a known, accepted race.
func (s *Store[C, D]) Fetch(ctx context.Context) {
	list, err := s.api.List(ctx)
	if err != nil {
		s.reportRemote(err)
		return
	}

	s.mu.Lock()
	s.list = list
	s.rebuildIndexLocked()
	s.publishLocked()
	s.mu.Unlock()

	s.log.Debug().Int("count", len(list)).Msg("list refreshed")
}

// Create validates and trims the draft, posts the canonical record, appends
// the server's response to the snapshot, and emits a created event.
func (s *Store[C, D]) Create(ctx context.Context, draft D) {
	record := s.hooks.trim(s.hooks.fromDto(draft))
	if !s.runValidation(record) {
		return
	}

	returned, err := s.api.Create(ctx, record)
	if err != nil {
		s.reportRemote(err)
		return
	}
	dto := s.hooks.toDto(*returned)

	s.mu.Lock()
	s.index[s.hooks.id(dto)] = len(s.list)
	s.list = append(s.list, dto)
	s.publishLocked()
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues(s.hooks.entity, "create").Inc()
	s.log.Info().Int("id", s.hooks.id(dto)).Msg("created")
	s.created.Publish(dto)
	s.alerts.Success(fmt.Sprintf("The %s %q has been added successfully.", s.hooks.entity, s.hooks.label(dto)))
}

// Update validates and trims the draft, puts the canonical record, and
// replaces the matching row in place. When the id is no longer present
// locally (removed by a concurrent cascade refetch), the store silently falls
// back to a full fetch instead of raising an error.
func (s *Store[C, D]) Update(ctx context.Context, draft D) {
	record := s.hooks.trim(s.hooks.fromDto(draft))
	if !s.runValidation(record) {
		return
	}

	returned, err := s.api.Update(ctx, record)
	if err != nil {
		s.reportRemote(err)
		return
	}
	dto := s.hooks.toDto(*returned)
	if s.hooks.carryOver != nil {
		dto = s.hooks.carryOver(draft, dto)
	}

	id := s.hooks.id(dto)
	s.mu.Lock()
	if idx, ok := s.index[id]; ok {
		s.list[idx] = dto
		s.publishLocked()
		s.mu.Unlock()
	} else {
		s.mu.Unlock()
		s.log.Debug().Int("id", id).Msg("updated id missing locally, refetching")
		s.Fetch(ctx)
	}

	metrics.MutationsTotal.WithLabelValues(s.hooks.entity, "update").Inc()
	s.log.Info().Int("id", id).Msg("updated")
	s.updated.Publish(dto)
	s.alerts.Success(fmt.Sprintf("The %s %q has been updated successfully.", s.hooks.entity, s.hooks.label(dto)))
}

// Delete checks the entity's business rules against locally-known dependent
// counts, issues the remote delete, and removes the row from the snapshot.
func (s *Store[C, D]) Delete(ctx context.Context, target D) {
	if s.hooks.deleteGuard != nil {
		s.mu.Lock()
		listLen := len(s.list)
		s.mu.Unlock()
		if msg := s.hooks.deleteGuard(target, listLen); msg != "" {
			metrics.RejectionsTotal.WithLabelValues(s.hooks.entity, "business_rule").Inc()
			s.alerts.BusinessRule(msg)
			return
		}
	}

	returned, err := s.api.Delete(ctx, s.hooks.id(target))
	if err != nil {
		s.reportRemote(err)
		return
	}
	dto := s.hooks.toDto(*returned)

	id := s.hooks.id(dto)
	s.mu.Lock()
	if idx, ok := s.index[id]; ok {
		s.list = append(s.list[:idx], s.list[idx+1:]...)
		s.rebuildIndexLocked()
		s.publishLocked()
		s.mu.Unlock()
	} else {
		s.mu.Unlock()
		s.log.Debug().Int("id", id).Msg("deleted id missing locally, refetching")
		s.Fetch(ctx)
	}

	metrics.MutationsTotal.WithLabelValues(s.hooks.entity, "delete").Inc()
	s.log.Info().Int("id", id).Msg("deleted")
	s.deleted.Publish(dto)
	s.alerts.Success(fmt.Sprintf("The %s %q has been deleted successfully.", s.hooks.entity, s.hooks.label(dto)))
}

// FindByID looks up an entity by id in the current snapshot.
func (s *Store[C, D]) FindByID(id int) (D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.index[id]; ok {
		return s.list[idx], true
	}
	var zero D
	return zero, false
}

// FindAllByForeignKey returns every entity whose named foreign key equals id.
// Unknown foreign key names yield nil.
func (s *Store[C, D]) FindAllByForeignKey(name string, id int) []D {
	fk, ok := s.hooks.foreignKeys[name]
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []D
	for _, dto := range s.list {
		if fk(dto) == id {
			out = append(out, dto)
		}
	}
	return out
}

func (s *Store[C, D]) runValidation(record C) bool {
	msg := validateRecord(record)
	if msg == "" {
		return true
	}
	metrics.RejectionsTotal.WithLabelValues(s.hooks.entity, "validation").Inc()
	s.alerts.Validation(msg)
	return false
}

func (s *Store[C, D]) reportRemote(err error) {
	metrics.RemoteErrorsTotal.WithLabelValues(s.hooks.entity).Inc()
	s.log.Error().Err(err).Msg("backend call failed")
	s.alerts.Remote(err.Error())
}

func (s *Store[C, D]) snapshotLocked() []D {
	out := make([]D, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Store[C, D]) publishLocked() {
	s.listStream.Publish(s.snapshotLocked())
}

func (s *Store[C, D]) rebuildIndexLocked() {
	s.index = make(map[int]int, len(s.list))
	for i, dto := range s.list {
		s.index[s.hooks.id(dto)] = i
	}
}
