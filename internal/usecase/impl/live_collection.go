package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/repository"
	"medapp/internal/usecase"
	"medapp/internal/util"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
)

// WatchFunc opens a live query on one user's collection.
type WatchFunc[T any] func(ctx context.Context, uid string, onSnapshot repository.SnapshotFunc[T], onError repository.ErrorFunc) (repository.Subscription, error)

type collectionEventKind int

const (
	identityChanged collectionEventKind = iota
	refreshRequested
	retryDue
)

type collectionEvent struct {
	kind collectionEventKind
	uid  string
	gen  uint64
	done chan error
}

// liveCollection implements usecase.CollectionUsecase for any per-user collection.
//
// Identity changes, refreshes and retries are serialized on one event loop, which is the
// only place subscriptions are opened or stopped. Snapshot and error callbacks carry the
// generation of the subscription that produced them and are dropped once it is superseded.
type liveCollection[T any] struct {
	name     string
	identity usecase.IdentityUsecase
	watch    WatchFunc[T]
	logger   *slog.Logger

	events chan collectionEvent
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu              sync.Mutex
	state           usecase.CollectionState[T]
	gen             uint64
	uid             string
	sub             repository.Subscription
	retryBackOff    *backoff.ExponentialBackOff
	retryTimer      *time.Timer
	started         bool
	closed          bool
	unwatchIdentity func()

	states *util.Broadcaster[usecase.CollectionState[T]]
}

func newLiveCollection[T any](name string, identity usecase.IdentityUsecase, watch WatchFunc[T], cfg *config.Config, logger *slog.Logger) *liveCollection[T] {
	initial := usecase.CollectionState[T]{Items: []T{}, Phase: usecase.CollectionIdle}
	ctx, cancel := context.WithCancel(context.Background())

	return &liveCollection[T]{
		name:         name,
		identity:     identity,
		watch:        watch,
		logger:       logger.With(slog.String("collection", name)),
		events:       make(chan collectionEvent, 8),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		state:        initial,
		retryBackOff: newRetryBackOff(cfg),
		states:       util.NewBroadcasterWith(initial),
	}
}

// newRetryBackOff doubles the resubscribe delay up to the configured cap, with jitter.
func newRetryBackOff(cfg *config.Config) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.Collections.Retry.InitialBackoff
	b.MaxInterval = cfg.Collections.Retry.MaxBackoff
	b.Multiplier = 2
	b.Reset()

	return b
}

// NewCartProvider is the constructor for the live cart of the signed-in customer.
func NewCartProvider(identity usecase.IdentityUsecase, carts repository.CartRepository, cfg *config.Config, logger *slog.Logger) usecase.CartUsecase {
	return newLiveCollection[entity.CartItem]("cart", identity, carts.WatchCart, cfg, logger)
}

// NewWishlistProvider is the constructor for the live wishlist of the signed-in customer.
func NewWishlistProvider(identity usecase.IdentityUsecase, wishlists repository.WishlistRepository, cfg *config.Config, logger *slog.Logger) usecase.WishlistUsecase {
	return newLiveCollection[entity.WishlistItem]("wishlist", identity, wishlists.WatchWishlist, cfg, logger)
}

// Start implements usecase.CollectionUsecase.
func (l *liveCollection[T]) Start(_ context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()

		return domainerrors.ErrProviderClosed
	}
	if l.started {
		l.mu.Unlock()

		return domainerrors.ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()

	go l.run()

	unwatch := l.identity.Watch(func(state usecase.IdentityState) {
		uid := ""
		if state.User != nil {
			uid = state.User.UID
		}
		l.send(collectionEvent{kind: identityChanged, uid: uid})
	})

	l.mu.Lock()
	l.unwatchIdentity = unwatch
	l.mu.Unlock()

	return nil
}

// Current implements usecase.CollectionUsecase.
func (l *liveCollection[T]) Current() usecase.CollectionState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// Watch implements usecase.CollectionUsecase.
func (l *liveCollection[T]) Watch(fn func(usecase.CollectionState[T])) func() {
	return l.states.Subscribe(fn)
}

// Refresh implements usecase.CollectionUsecase.
func (l *liveCollection[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	started, closed := l.started, l.closed
	l.mu.Unlock()
	if closed || !started {
		return domainerrors.ErrProviderClosed
	}

	done := make(chan error, 1)
	select {
	case l.events <- collectionEvent{kind: refreshRequested, done: done}:
	case <-l.ctx.Done():
		return domainerrors.ErrProviderClosed
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}

	select {
	case err := <-done:
		return err
	case <-l.ctx.Done():
		return domainerrors.ErrProviderClosed
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// Close implements usecase.CollectionUsecase.
func (l *liveCollection[T]) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()

		return
	}
	l.closed = true
	started := l.started
	unwatch := l.unwatchIdentity
	if l.retryTimer != nil {
		l.retryTimer.Stop()
	}
	l.mu.Unlock()

	l.cancel()
	if unwatch != nil {
		unwatch()
	}
	if started {
		<-l.done
	}
	l.states.Close()
}

func (l *liveCollection[T]) send(ev collectionEvent) {
	select {
	case l.events <- ev:
	case <-l.ctx.Done():
	}
}

func (l *liveCollection[T]) run() {
	defer close(l.done)
	defer l.detach()

	for {
		select {
		case <-l.ctx.Done():
			return
		case ev := <-l.events:
			switch ev.kind {
			case identityChanged:
				l.follow(ev.uid)
			case refreshRequested:
				ev.done <- l.refresh()
			case retryDue:
				l.retry(ev.gen)
			}
		}
	}
}

// follow switches the projection to uid, tearing the old subscription down first.
func (l *liveCollection[T]) follow(uid string) {
	l.mu.Lock()
	if uid == l.uid && (uid == "" || l.sub != nil || l.retryTimer != nil) {
		l.mu.Unlock()

		return
	}
	old := l.detachLocked()
	l.uid = uid
	l.retryBackOff.Reset()
	if uid == "" {
		l.setStateLocked(usecase.CollectionState[T]{Items: []T{}, Phase: usecase.CollectionIdle})
	} else {
		l.setStateLocked(usecase.CollectionState[T]{UID: uid, Items: []T{}, Phase: usecase.CollectionLoading})
	}
	l.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	if uid != "" {
		l.subscribe()
	}
}

func (l *liveCollection[T]) refresh() error {
	l.mu.Lock()
	if l.uid == "" {
		l.mu.Unlock()

		return domainerrors.ErrNotSignedIn
	}
	l.retryBackOff.Reset()
	old := l.detachLocked()
	l.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	l.subscribe()

	return nil
}

func (l *liveCollection[T]) retry(gen uint64) {
	l.mu.Lock()
	if gen != l.gen || l.uid == "" {
		l.mu.Unlock()

		return
	}
	l.retryTimer = nil
	old := l.detachLocked()
	l.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	l.logger.Info("Resubscribing", slog.String("uid", l.currentUID()))
	l.subscribe()
}

// detachLocked supersedes the current subscription and returns it for stopping outside the lock.
func (l *liveCollection[T]) detachLocked() repository.Subscription {
	l.gen++
	old := l.sub
	l.sub = nil
	if l.retryTimer != nil {
		l.retryTimer.Stop()
		l.retryTimer = nil
	}

	return old
}

func (l *liveCollection[T]) detach() {
	l.mu.Lock()
	old := l.detachLocked()
	l.mu.Unlock()

	if old != nil {
		old.Stop()
	}
}

func (l *liveCollection[T]) subscribe() {
	l.mu.Lock()
	gen, uid := l.gen, l.uid
	l.mu.Unlock()

	sub, err := l.watch(l.ctx, uid,
		func(snapshot repository.Snapshot[T]) { l.applySnapshot(gen, snapshot) },
		func(err error) { l.fail(gen, err) },
	)
	if err != nil {
		l.fail(gen, err)

		return
	}

	l.mu.Lock()
	l.sub = sub
	l.mu.Unlock()

	l.logger.Debug("Subscribed", slog.String("uid", uid))
}

func (l *liveCollection[T]) applySnapshot(gen uint64, snapshot repository.Snapshot[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.closed {
		return
	}

	var invalid []string
	for _, doc := range snapshot.Invalid {
		l.logger.Warn("Skipping invalid document",
			slog.String("uid", l.uid),
			slog.String("id", doc.ID),
			slog.Any("error", doc.Err),
		)
		invalid = append(invalid, doc.ID)
	}

	items := snapshot.Items
	if items == nil {
		items = []T{}
	}
	l.retryBackOff.Reset()
	l.setStateLocked(usecase.CollectionState[T]{
		UID:        l.uid,
		Items:      items,
		Count:      len(items),
		Phase:      usecase.CollectionReady,
		InvalidIDs: invalid,
	})
}

// fail keeps the last items, flags them stale and schedules a resubscribe.
func (l *liveCollection[T]) fail(gen uint64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.closed {
		return
	}

	state := l.state
	state.Stale = true
	state.Err = errors.Wrap(domainerrors.ErrSubscriptionFailed, err.Error()).Error()
	l.setStateLocked(state)

	delay := l.retryBackOff.NextBackOff()
	l.logger.Warn("Subscription failed, retrying",
		slog.String("uid", l.uid),
		slog.Duration("delay", delay),
		slog.Any("error", err),
	)

	if l.retryTimer != nil {
		l.retryTimer.Stop()
	}
	l.retryTimer = time.AfterFunc(delay, func() {
		l.send(collectionEvent{kind: retryDue, gen: gen})
	})
}

func (l *liveCollection[T]) currentUID() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.uid
}

func (l *liveCollection[T]) setStateLocked(state usecase.CollectionState[T]) {
	l.state = state
	l.states.Publish(state)
}
