// Package memory is an in-process backend with the same observable contract as the hosted one:
// a session-state stream, password accounts and live collections. It serves local runs and tests.
package memory

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/repository"
	"medapp/internal/domain/service"
	"medapp/internal/infra/document"
	"medapp/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Account is a password account known to the backend.
type Account struct {
	UID         string `koanf:"uid"`
	Email       string `koanf:"email"`
	Password    string `koanf:"password"`
	DisplayName string `koanf:"displayName"`
	Disabled    bool   `koanf:"disabled"`
}

// collectionEvent is what a live query on one collection path receives.
type collectionEvent struct {
	ids  []string
	data []map[string]any
	err  error
}

// Backend implements the auth, account and document ports in memory.
type Backend struct {
	collections config.CollectionsConfig
	logger      *slog.Logger

	mu        sync.Mutex
	accounts  map[string]*Account // uid -> account
	byEmail   map[string]string
	documents map[string]map[string]map[string]any // path -> id -> fields
	watchers  map[string]*util.Broadcaster[collectionEvent]
	active    map[string]int
	current   *entity.Principal

	// fault injection
	signOutErr error
	watchErr   map[string]error
	readErr    map[string]error

	session *util.Broadcaster[*entity.Principal]
}

var (
	_ service.AuthService           = (*Backend)(nil)
	_ service.AccountService        = (*Backend)(nil)
	_ repository.ProfileRepository  = (*Backend)(nil)
	_ repository.SellerRepository   = (*Backend)(nil)
	_ repository.CartRepository     = (*Backend)(nil)
	_ repository.WishlistRepository = (*Backend)(nil)
)

// New creates an empty backend using the collection layout of collections.
func New(collections config.CollectionsConfig, logger *slog.Logger) *Backend {
	return &Backend{
		collections: collections,
		logger:      logger,
		accounts:    make(map[string]*Account),
		byEmail:     make(map[string]string),
		documents:   make(map[string]map[string]map[string]any),
		watchers:    make(map[string]*util.Broadcaster[collectionEvent]),
		active:      make(map[string]int),
		watchErr:    make(map[string]error),
		readErr:     make(map[string]error),
		session:     util.NewBroadcasterWith[*entity.Principal](nil),
	}
}

// AddAccount registers an account. An empty UID gets a generated one.
func (b *Backend) AddAccount(account Account) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addAccountLocked(account)
}

func (b *Backend) addAccountLocked(account Account) (string, error) {
	if _, taken := b.byEmail[account.Email]; taken {
		return "", errors.Wrap(domainerrors.ErrAccountAlreadyExists, account.Email)
	}
	if account.UID == "" {
		account.UID = uuid.NewString()
	}
	if _, taken := b.accounts[account.UID]; taken {
		return "", errors.Wrap(domainerrors.ErrAccountAlreadyExists, account.UID)
	}

	b.accounts[account.UID] = &account
	b.byEmail[account.Email] = account.UID

	return account.UID, nil
}

// OnAuthStateChanged implements service.AuthService.
func (b *Backend) OnAuthStateChanged(fn service.AuthStateFunc) func() {
	return b.session.Subscribe(func(p *entity.Principal) {
		fn(p)
	})
}

// SignInWithPassword implements service.AuthService.
func (b *Backend) SignInWithPassword(ctx context.Context, email, password string) (*entity.Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	uid, ok := b.byEmail[email]
	if !ok || b.accounts[uid].Password != password {
		return nil, domainerrors.ErrInvalidCredentials
	}
	account := b.accounts[uid]
	if account.Disabled {
		return nil, domainerrors.ErrAccountDisabled
	}

	principal := &entity.Principal{UID: account.UID, Email: account.Email, DisplayName: account.DisplayName}
	b.current = principal
	b.session.Publish(clonePrincipal(principal))
	b.logger.Debug("memory backend signed in", slog.String("uid", uid))

	return clonePrincipal(principal), nil
}

// SignOut implements service.AuthService.
func (b *Backend) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.signOutErr != nil {
		return b.signOutErr
	}
	b.current = nil
	b.session.Publish(nil)

	return nil
}

// CurrentPrincipal returns the signed-in principal, if any.
func (b *Backend) CurrentPrincipal() *entity.Principal {
	b.mu.Lock()
	defer b.mu.Unlock()

	return clonePrincipal(b.current)
}

// EmitAuthState pushes a raw session-state notification, as a token refresh would.
func (b *Backend) EmitAuthState(p *entity.Principal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = clonePrincipal(p)
	b.session.Publish(clonePrincipal(p))
}

// CreateAccount implements service.AccountService.
func (b *Backend) CreateAccount(ctx context.Context, account service.NewAccount) (*entity.Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	uid, err := b.addAccountLocked(Account{
		Email:       account.Email,
		Password:    account.Password,
		DisplayName: account.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	return &entity.Principal{UID: uid, Email: account.Email, DisplayName: account.DisplayName}, nil
}

// DeleteAccount implements service.AccountService. Deleting the signed-in account ends the session.
func (b *Backend) DeleteAccount(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	account, ok := b.accounts[uid]
	if !ok {
		return errors.Wrapf(domainerrors.ErrNotFound, "account %s", uid)
	}
	delete(b.byEmail, account.Email)
	delete(b.accounts, uid)

	if b.current != nil && b.current.UID == uid {
		b.current = nil
		b.session.Publish(nil)
	}

	return nil
}

// HasAccount reports whether uid is registered.
func (b *Backend) HasAccount(uid string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.accounts[uid]

	return ok
}

// SetDocument writes a document and notifies live queries on its collection.
func (b *Backend) SetDocument(path, id string, fields map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs, ok := b.documents[path]
	if !ok {
		docs = make(map[string]map[string]any)
		b.documents[path] = docs
	}
	docs[id] = maps.Clone(fields)
	b.notifyLocked(path)
}

// createDocument stores a document unless one already exists under id.
func (b *Backend) createDocument(path, id string, fields map[string]any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.documents[path][id]; exists {
		return false
	}
	docs, ok := b.documents[path]
	if !ok {
		docs = make(map[string]map[string]any)
		b.documents[path] = docs
	}
	docs[id] = maps.Clone(fields)
	b.notifyLocked(path)

	return true
}

// DeleteDocument removes a document and notifies live queries on its collection.
func (b *Backend) DeleteDocument(path, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if docs, ok := b.documents[path]; ok {
		delete(docs, id)
	}
	b.notifyLocked(path)
}

// Document returns a copy of a stored document.
func (b *Backend) Document(path, id string) (map[string]any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fields, ok := b.documents[path][id]

	return maps.Clone(fields), ok
}

// BreakWatches fails every live query currently open on path with err.
func (b *Backend) BreakWatches(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.watchers[path]
	if !ok {
		return
	}
	// Current watchers get the error; later ones start from a fresh snapshot.
	old.Publish(collectionEvent{err: err})
	b.watchers[path] = util.NewBroadcasterWith(b.snapshotLocked(path))
}

// SetWatchError makes new live queries on path fail with err until it is cleared with nil.
func (b *Backend) SetWatchError(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		delete(b.watchErr, path)

		return
	}
	b.watchErr[path] = err
}

// SetReadError makes single-document reads on path fail with err until it is cleared with nil.
func (b *Backend) SetReadError(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		delete(b.readErr, path)

		return
	}
	b.readErr[path] = err
}

// SetSignOutError makes SignOut fail with err until it is cleared with nil.
func (b *Backend) SetSignOutError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.signOutErr = err
}

// ActiveWatches returns the number of live queries open on path.
func (b *Backend) ActiveWatches(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.active[path]
}

// FindProfile implements repository.ProfileRepository.
func (b *Backend) FindProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	fields, err := b.read(ctx, b.collections.Profiles, uid)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, repository.ErrProfileNotFound
	}

	result := document.Decode[entity.UserProfile](uid, fields)
	if !result.OK() {
		return nil, result.Err
	}

	return &result.Value, nil
}

// FindSeller implements repository.SellerRepository.
func (b *Backend) FindSeller(ctx context.Context, uid string) (*entity.Seller, error) {
	fields, err := b.read(ctx, b.collections.Sellers, uid)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, repository.ErrSellerNotFound
	}

	result := document.Decode[entity.Seller](uid, fields)
	if !result.OK() {
		return nil, result.Err
	}

	return &result.Value, nil
}

// CreateSeller implements repository.SellerRepository. It fails if the document already exists.
func (b *Backend) CreateSeller(ctx context.Context, seller *entity.Seller) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	fields, err := document.Encode(seller)
	if err != nil {
		return err
	}
	if !b.createDocument(b.collections.Sellers, seller.ID, fields) {
		return errors.Wrap(domainerrors.ErrAccountAlreadyExists, seller.ID)
	}

	return nil
}

// DeleteSeller implements repository.SellerRepository.
func (b *Backend) DeleteSeller(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	b.DeleteDocument(b.collections.Sellers, uid)

	return nil
}

// WatchCart implements repository.CartRepository.
func (b *Backend) WatchCart(ctx context.Context, uid string, onSnapshot repository.SnapshotFunc[entity.CartItem], onError repository.ErrorFunc) (repository.Subscription, error) {
	return watch(ctx, b, config.CollectionPath(b.collections.Cart, uid), onSnapshot, onError)
}

// WatchWishlist implements repository.WishlistRepository.
func (b *Backend) WatchWishlist(ctx context.Context, uid string, onSnapshot repository.SnapshotFunc[entity.WishlistItem], onError repository.ErrorFunc) (repository.Subscription, error) {
	return watch(ctx, b, config.CollectionPath(b.collections.Wishlist, uid), onSnapshot, onError)
}

// Close stops every stream and live query.
func (b *Backend) Close() {
	b.mu.Lock()
	watchers := b.watchers
	b.watchers = make(map[string]*util.Broadcaster[collectionEvent])
	b.mu.Unlock()

	for _, w := range watchers {
		w.Close()
	}
	b.session.Close()
}

func (b *Backend) read(ctx context.Context, path, id string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.readErr[path]; err != nil {
		return nil, err
	}
	fields, ok := b.documents[path][id]
	if !ok {
		return nil, nil
	}

	return maps.Clone(fields), nil
}

func (b *Backend) notifyLocked(path string) {
	if w, ok := b.watchers[path]; ok {
		w.Publish(b.snapshotLocked(path))
	}
}

func (b *Backend) snapshotLocked(path string) collectionEvent {
	docs := b.documents[path]
	ids := slices.Sorted(maps.Keys(docs))
	data := make([]map[string]any, len(ids))
	for i, id := range ids {
		data[i] = docs[id]
	}

	return collectionEvent{ids: ids, data: data}
}

type subscription struct {
	once        sync.Once
	unsubscribe func()
	release     func()
}

func (s *subscription) Stop() {
	s.once.Do(func() {
		s.unsubscribe()
		s.release()
	})
}

func watch[T any](ctx context.Context, b *Backend, path string, onSnapshot repository.SnapshotFunc[T], onError repository.ErrorFunc) (repository.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.watchErr[path]; err != nil {
		return nil, errors.Wrapf(err, "watch %s", path)
	}

	w, ok := b.watchers[path]
	if !ok {
		w = util.NewBroadcasterWith(b.snapshotLocked(path))
		b.watchers[path] = w
	}

	// only touched from the subscriber's delivery goroutine
	failed := false
	unsubscribe := w.Subscribe(func(ev collectionEvent) {
		if failed {
			return
		}
		if ev.err != nil {
			failed = true
			onError(ev.err)

			return
		}
		onSnapshot(document.DecodeSnapshot[T](ev.ids, ev.data))
	})
	b.active[path]++

	return &subscription{
		unsubscribe: unsubscribe,
		release: func() {
			b.mu.Lock()
			b.active[path]--
			if b.active[path] <= 0 {
				delete(b.active, path)
			}
			b.mu.Unlock()
		},
	}, nil
}

func clonePrincipal(p *entity.Principal) *entity.Principal {
	if p == nil {
		return nil
	}
	clone := *p

	return &clone
}
