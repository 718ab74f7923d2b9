// Package stream provides a small multicast publish/subscribe channel.
//
// Two flavors exist: New gives a plain event stream that only delivers values
// published after Subscribe, while NewReplay also hands every new subscriber
// the most recently published value (or the initial one) immediately. The
// entity stores use the replay flavor for list snapshots and the plain flavor
// for mutation-result events.
package stream

import "sync"

// subscriberBuffer bounds how far a slow subscriber may lag. When the buffer
// is full the oldest pending value is dropped, so a subscriber always ends up
// observing the latest published value.
const subscriberBuffer = 16

// Stream is a multicast channel of T. The zero value is not usable; construct
// with New or NewReplay. All methods are safe for concurrent use.
type Stream[T any] struct {
	mu      sync.Mutex
	subs    map[int]chan T
	nextID  int
	replay  bool
	last    T
	hasLast bool
}

// New returns a stream that delivers only values published after Subscribe.
func New[T any]() *Stream[T] {
	return &Stream[T]{subs: make(map[int]chan T)}
}

// NewReplay returns a stream that immediately delivers the latest value to
// each new subscriber, seeded with initial.
func NewReplay[T any](initial T) *Stream[T] {
	return &Stream[T]{
		subs:    make(map[int]chan T),
		replay:  true,
		last:    initial,
		hasLast: true,
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe function. Unsubscribing closes the channel; it is safe to
// call the returned function more than once.
func (s *Stream[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan T, subscriberBuffer)
	s.subs[id] = ch

	if s.replay && s.hasLast {
		ch <- s.last
	}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, unsubscribe
}

// Publish delivers v to every current subscriber. Delivery never blocks: if a
// subscriber's buffer is full its oldest pending value is discarded first.
func (s *Stream[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replay {
		s.last = v
		s.hasLast = true
	}

	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// Latest returns the most recently published value of a replay stream.
func (s *Stream[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}
