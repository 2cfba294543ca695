// Package util holds small concurrency helpers shared across layers.
package util

import (
	"sync"
)

// Broadcaster fans values out to subscribers. Each subscriber has its own mailbox
// drained by one goroutine, so a subscriber sees values one at a time and in publish order,
// and a slow subscriber never blocks Publish or other subscribers.
type Broadcaster[T any] struct {
	mu      sync.Mutex
	subs    map[uint64]*subscriber[T]
	nextID  uint64
	replay  bool
	last    T
	hasLast bool
	closed  bool
}

// NewBroadcaster creates a broadcaster. With replay set, a new subscriber first
// receives the most recently published value.
func NewBroadcaster[T any](replay bool) *Broadcaster[T] {
	return &Broadcaster[T]{
		subs:   make(map[uint64]*subscriber[T]),
		replay: replay,
	}
}

// NewBroadcasterWith creates a replaying broadcaster seeded with an initial value.
func NewBroadcasterWith[T any](initial T) *Broadcaster[T] {
	b := NewBroadcaster[T](true)
	b.last = initial
	b.hasLast = true

	return b
}

// Publish enqueues v for every current subscriber.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.last = v
	b.hasLast = true
	for _, s := range b.subs {
		s.push(v)
	}
}

// Last returns the most recently published value.
func (b *Broadcaster[T]) Last() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.last, b.hasLast
}

// Subscribe registers fn. The returned function unregisters it; once that returns,
// fn is not running and will not be called again. It must not be called from inside fn.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s := newSubscriber(fn)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()

		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = s
	if b.replay && b.hasLast {
		s.push(b.last)
	}
	b.mu.Unlock()

	go s.run()

	var once sync.Once

	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			s.stop()
		})
	}
}

// Len returns the number of live subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// Close stops every subscriber and rejects further publishes and subscriptions.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*subscriber[T])
	b.closed = true
	b.mu.Unlock()

	for _, s := range subs {
		s.stop()
	}
}

type subscriber[T any] struct {
	fn func(T)

	mu      sync.Mutex // guards queue and stopped
	queue   []T
	stopped bool

	delivering sync.Mutex // held while fn runs
	wake       chan struct{}
	quit       chan struct{}
}

func newSubscriber[T any](fn func(T)) *subscriber[T] {
	return &subscriber[T]{
		fn:   fn,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

func (s *subscriber[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber[T]) next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.stopped || len(s.queue) == 0 {
		return zero, false
	}
	v := s.queue[0]
	s.queue[0] = zero
	s.queue = s.queue[1:]

	return v, true
}

func (s *subscriber[T]) run() {
	for {
		select {
		case <-s.quit:
			return
		case <-s.wake:
		}

		for {
			s.delivering.Lock()
			v, ok := s.next()
			if !ok {
				s.delivering.Unlock()

				break
			}
			s.fn(v)
			s.delivering.Unlock()
		}
	}
}

func (s *subscriber[T]) stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()

		return
	}
	s.stopped = true
	s.queue = nil
	s.mu.Unlock()
	close(s.quit)

	// wait out an in-flight delivery
	s.delivering.Lock()
	s.delivering.Unlock() //nolint:staticcheck
}
