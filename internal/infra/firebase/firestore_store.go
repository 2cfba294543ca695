package firebase

import (
	"context"
	"log/slog"
	"sync"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/repository"
	"medapp/internal/infra/document"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store implements the document repositories on Firestore.
type Store struct {
	client      *firestore.Client
	collections config.CollectionsConfig
	logger      *slog.Logger
}

var (
	_ repository.ProfileRepository  = (*Store)(nil)
	_ repository.SellerRepository   = (*Store)(nil)
	_ repository.CartRepository     = (*Store)(nil)
	_ repository.WishlistRepository = (*Store)(nil)
)

// NewStore creates a Firestore-backed store using the collection layout of collections.
func NewStore(client *firestore.Client, collections config.CollectionsConfig, logger *slog.Logger) *Store {
	return &Store{
		client:      client,
		collections: collections,
		logger:      logger,
	}
}

// FindProfile implements repository.ProfileRepository.
func (s *Store) FindProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	snap, err := s.client.Collection(s.collections.Profiles).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrProfileNotFound
	}
	if err != nil {
		return nil, domainerrors.NewBackendError(errors.Wrap(err, "get profile"), uid)
	}

	result := document.Decode[entity.UserProfile](uid, snap.Data())
	if !result.OK() {
		return nil, result.Err
	}

	return &result.Value, nil
}

// FindSeller implements repository.SellerRepository.
func (s *Store) FindSeller(ctx context.Context, uid string) (*entity.Seller, error) {
	snap, err := s.client.Collection(s.collections.Sellers).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrSellerNotFound
	}
	if err != nil {
		return nil, domainerrors.NewBackendError(errors.Wrap(err, "get seller"), uid)
	}

	result := document.Decode[entity.Seller](uid, snap.Data())
	if !result.OK() {
		return nil, result.Err
	}

	return &result.Value, nil
}

// CreateSeller implements repository.SellerRepository. It fails if the document already exists.
func (s *Store) CreateSeller(ctx context.Context, seller *entity.Seller) error {
	fields, err := document.Encode(seller)
	if err != nil {
		return err
	}

	_, err = s.client.Collection(s.collections.Sellers).Doc(seller.ID).Create(ctx, fields)
	if status.Code(err) == codes.AlreadyExists {
		return errors.Wrap(domainerrors.ErrAccountAlreadyExists, seller.ID)
	}
	if err != nil {
		return domainerrors.NewBackendError(errors.Wrap(err, "create seller"), seller.ID)
	}

	return nil
}

// DeleteSeller implements repository.SellerRepository.
func (s *Store) DeleteSeller(ctx context.Context, uid string) error {
	if _, err := s.client.Collection(s.collections.Sellers).Doc(uid).Delete(ctx); err != nil {
		return domainerrors.NewBackendError(errors.Wrap(err, "delete seller"), uid)
	}

	return nil
}

// WatchCart implements repository.CartRepository.
func (s *Store) WatchCart(ctx context.Context, uid string, onSnapshot repository.SnapshotFunc[entity.CartItem], onError repository.ErrorFunc) (repository.Subscription, error) {
	return watchCollection(ctx, s, config.CollectionPath(s.collections.Cart, uid), onSnapshot, onError)
}

// WatchWishlist implements repository.WishlistRepository.
func (s *Store) WatchWishlist(ctx context.Context, uid string, onSnapshot repository.SnapshotFunc[entity.WishlistItem], onError repository.ErrorFunc) (repository.Subscription, error) {
	return watchCollection(ctx, s, config.CollectionPath(s.collections.Wishlist, uid), onSnapshot, onError)
}

type snapshotSubscription struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the listener and waits for its goroutine to exit.
func (s *snapshotSubscription) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

func watchCollection[T any](ctx context.Context, s *Store, path string, onSnapshot repository.SnapshotFunc[T], onError repository.ErrorFunc) (repository.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	it := s.client.Collection(path).Snapshots(watchCtx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if watchCtx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
					return
				}
				s.logger.Warn("Collection listener failed", slog.String("path", path), slog.Any("error", err))
				onError(domainerrors.NewBackendError(errors.Wrapf(err, "listen %s", path), path))

				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				if watchCtx.Err() != nil {
					return
				}
				onError(domainerrors.NewBackendError(errors.Wrapf(err, "read snapshot %s", path), path))

				return
			}

			ids := make([]string, len(docs))
			data := make([]map[string]any, len(docs))
			for i, doc := range docs {
				ids[i] = doc.Ref.ID
				data[i] = doc.Data()
			}

			if watchCtx.Err() != nil {
				return
			}
			onSnapshot(document.DecodeSnapshot[T](ids, data))
		}
	}()

	return &snapshotSubscription{cancel: cancel, done: done}, nil
}
