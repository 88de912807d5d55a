// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/mutation"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
)

// snapshot is one inbound remote state of the business.
type snapshot struct {
	business *entity.Business
	version  time.Time
}

// businessStore implements the BusinessStore interface.
//
// Lock order: writeMu before stateMu. stateMu is never held across a call into
// the repository, because snapshot callbacks take it and may run on the writing
// goroutine.
type businessStore struct {
	id      string
	repo    repository.BusinessRepository
	metrics service.SyncMetrics
	logger  *slog.Logger
	now     func() time.Time

	startOnce sync.Once
	startErr  error
	state     atomic.Int32
	view      atomic.Pointer[usecase.View]
	synced    chan struct{}
	done      chan struct{}

	writeMu sync.Mutex

	stateMu     sync.Mutex
	revision    uint64
	writing     bool
	deferred    *snapshot
	closed      bool
	unsubscribe func()
	cancel      context.CancelFunc
	watchers    map[chan *usecase.View]struct{}
}

func newBusinessStore(
	id string,
	repo repository.BusinessRepository,
	metrics service.SyncMetrics,
	logger *slog.Logger,
	now func() time.Time,
) *businessStore {
	return &businessStore{
		id:       id,
		repo:     repo,
		metrics:  metrics,
		logger:   logger.With(slog.String("business_id", id)),
		now:      now,
		synced:   make(chan struct{}),
		done:     make(chan struct{}),
		watchers: make(map[chan *usecase.View]struct{}),
	}
}

// start opens the subscription once. The first snapshot may arrive before
// Subscribe returns.
func (s *businessStore) start() error {
	s.startOnce.Do(func() {
		s.state.Store(int32(usecase.SyncStateLoading))

		ctx, cancel := context.WithCancel(context.Background())
		unsubscribe, err := s.repo.Subscribe(ctx, s.id, s.onSnapshot)
		if err != nil {
			cancel()
			s.state.Store(int32(usecase.SyncStateUninitialized))
			s.logger.Error("Failed to subscribe to business", slog.Any("error", err))
			s.startErr = errors.Wrapf(err, "failed to subscribe to business %s", s.id)

			return
		}

		s.stateMu.Lock()
		closed := s.closed
		s.unsubscribe, s.cancel = unsubscribe, cancel
		s.stateMu.Unlock()

		if closed {
			unsubscribe()
			cancel()
		}
	})

	return s.startErr
}

func (s *businessStore) ID() string {
	return s.id
}

func (s *businessStore) State() usecase.SyncState {
	return usecase.SyncState(s.state.Load())
}

func (s *businessStore) View() *usecase.View {
	if view := s.view.Load(); view != nil {
		return view
	}

	return &usecase.View{}
}

func (s *businessStore) Business() (*entity.Business, error) {
	view := s.view.Load()
	if view == nil || view.Business == nil {
		return nil, errors.WithStack(domainerrors.ErrNotFound)
	}

	return view.Business, nil
}

func (s *businessStore) WaitSynced(ctx context.Context) error {
	select {
	case <-s.synced:
		return nil
	case <-s.done:
		return errors.WithStack(domainerrors.ErrStoreClosed)
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

func (s *businessStore) Watch(ctx context.Context) <-chan *usecase.View {
	ch := make(chan *usecase.View, 1)

	s.stateMu.Lock()
	if s.closed {
		s.stateMu.Unlock()
		close(ch)

		return ch
	}
	s.watchers[ch] = struct{}{}
	if view := s.view.Load(); view != nil {
		ch <- view
	}
	s.stateMu.Unlock()

	context.AfterFunc(ctx, func() {
		s.stateMu.Lock()
		defer s.stateMu.Unlock()

		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	})

	return ch
}

func (s *businessStore) Close() {
	s.stateMu.Lock()
	if s.closed {
		s.stateMu.Unlock()

		return
	}
	s.closed = true
	unsubscribe, cancel := s.unsubscribe, s.cancel
	for ch := range s.watchers {
		close(ch)
	}
	s.watchers = make(map[chan *usecase.View]struct{})
	close(s.done)
	s.stateMu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
}

// onSnapshot receives remote states. While a write is in flight only the
// latest one is kept and reconciled when the write settles.
func (s *businessStore) onSnapshot(business *entity.Business, version time.Time) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.closed {
		return
	}

	snap := &snapshot{business: business, version: version}
	if s.writing {
		s.deferred = snap
		s.metrics.ObserveSnapshot(service.SnapshotDeferred)
		s.logger.Debug("Deferred snapshot during write", slog.Time("version", version))

		return
	}

	s.applySnapshotLocked(snap)
}

// applySnapshotLocked installs snap unless it is older than the current view.
// A missing document carries no version and always applies.
func (s *businessStore) applySnapshotLocked(snap *snapshot) {
	if current := s.view.Load(); current != nil && snap.business != nil && snap.version.Before(current.Version) {
		s.metrics.ObserveSnapshot(service.SnapshotStale)
		s.logger.Debug("Dropped stale snapshot",
			slog.Time("version", snap.version),
			slog.Time("current", current.Version),
		)

		return
	}

	s.publishLocked(snap.business, snap.version)
	s.metrics.ObserveSnapshot(service.SnapshotApplied)
	s.logger.Debug("Applied snapshot", slog.Time("version", snap.version))

	if s.state.Swap(int32(usecase.SyncStateSynced)) != int32(usecase.SyncStateSynced) {
		close(s.synced)
	}
}

// publishLocked swaps the view and hands it to every watcher, replacing any
// view a watcher has not read yet.
func (s *businessStore) publishLocked(business *entity.Business, version time.Time) {
	s.revision++
	view := &usecase.View{Business: business, Revision: s.revision, Version: version}
	s.view.Store(view)

	for ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- view:
		default:
		}
	}
}

// Apply runs cmd through the write protocol. Mutations are serialised, so
// each one starts from the settled result of the previous one.
func (s *businessStore) Apply(ctx context.Context, cmd mutation.Command) (*entity.Business, error) {
	started := time.Now()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.stateMu.Lock()
	if s.closed {
		s.stateMu.Unlock()

		return nil, errors.WithStack(domainerrors.ErrStoreClosed)
	}
	before := s.view.Load()
	if before == nil || before.Business == nil {
		s.stateMu.Unlock()
		s.metrics.ObserveMutation(cmd.Name(), service.MutationRejected, time.Since(started))

		return nil, errors.WithStack(domainerrors.ErrNotFound)
	}
	next, err := cmd.Apply(before.Business, s.now())
	if err != nil {
		s.stateMu.Unlock()
		s.metrics.ObserveMutation(cmd.Name(), service.MutationRejected, time.Since(started))

		return nil, errors.Wrap(err, cmd.Name())
	}
	s.writing = true
	s.deferred = nil
	s.publishLocked(next, before.Version)
	s.stateMu.Unlock()

	fields := document.Pick(document.CleanMap(next.Document()), cmd.Fields()...)
	version, writeErr := s.repo.Update(ctx, s.id, fields)

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.writing = false
	deferred := s.deferred
	s.deferred = nil

	if writeErr != nil {
		s.publishLocked(before.Business, before.Version)
		if deferred != nil && deferred.version.After(before.Version) {
			s.applySnapshotLocked(deferred)
		}
		s.metrics.ObserveMutation(cmd.Name(), service.MutationRolledBack, time.Since(started))
		s.logger.Warn("Rolled back mutation after failed write",
			slog.String("command", cmd.Name()),
			slog.Any("error", writeErr),
		)
		if !domainerrors.IsWriteError(writeErr) {
			writeErr = domainerrors.NewWriteError(writeErr, "business "+s.id)
		}

		return nil, errors.Wrap(writeErr, cmd.Name())
	}

	if deferred != nil && !deferred.version.Before(version) {
		s.applySnapshotLocked(deferred)
	} else {
		s.publishLocked(next, version)
	}
	s.metrics.ObserveMutation(cmd.Name(), service.MutationCommitted, time.Since(started))

	if committed := s.view.Load().Business; committed != nil {
		return committed, nil
	}

	return next, nil
}

// observed remembers the aggregate a command was applied to.
type observed struct {
	mutation.Command

	before *entity.Business
}

func (o *observed) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	o.before = current

	return o.Command.Apply(current, now)
}

func (s *businessStore) AddMenuItem(ctx context.Context, item entity.MenuItem) (entity.MenuItem, error) {
	if item.ID == "" {
		item.ID = mutation.GenerateID(mutation.PrefixMenuItem)
	}
	business, err := s.Apply(ctx, mutation.AddMenuItem{Item: item})
	if err != nil {
		return entity.MenuItem{}, err
	}

	return findByID(business.Menu, item.ID, func(m entity.MenuItem) string { return m.ID }), nil
}

func (s *businessStore) UpdateMenuItem(ctx context.Context, id string, patch mutation.MenuItemPatch) (entity.MenuItem, error) {
	business, err := s.Apply(ctx, mutation.UpdateMenuItem{ID: id, Patch: patch})
	if err != nil {
		return entity.MenuItem{}, err
	}

	return findByID(business.Menu, id, func(m entity.MenuItem) string { return m.ID }), nil
}

func (s *businessStore) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := s.Apply(ctx, mutation.DeleteMenuItem{ID: id})

	return err
}

func (s *businessStore) AddOrder(ctx context.Context, order entity.Order) (entity.Order, error) {
	if order.ID == "" {
		order.ID = mutation.GenerateID(mutation.PrefixOrder)
	}
	business, err := s.Apply(ctx, mutation.AddOrder{Order: order})
	if err != nil {
		return entity.Order{}, err
	}

	return findByID(business.Orders, order.ID, func(o entity.Order) string { return o.ID }), nil
}

func (s *businessStore) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	_, err := s.Apply(ctx, mutation.UpdateOrderStatus{OrderID: orderID, Status: status})

	return err
}

func (s *businessStore) UpdateBusinessHours(ctx context.Context, hours []entity.BusinessHours) error {
	_, err := s.Apply(ctx, mutation.UpdateBusinessHours{Hours: hours})

	return err
}

func (s *businessStore) UpdateProfile(ctx context.Context, profile mutation.UpdateProfile) (*entity.Business, error) {
	return s.Apply(ctx, profile)
}

func (s *businessStore) AddNotification(ctx context.Context, notification entity.Notification) (entity.Notification, error) {
	if notification.ID == "" {
		notification.ID = mutation.GenerateID(mutation.PrefixNotification)
	}
	business, err := s.Apply(ctx, mutation.AddNotification{Notification: notification})
	if err != nil {
		return entity.Notification{}, err
	}

	return findByID(business.Notifications, notification.ID, func(n entity.Notification) string { return n.ID }), nil
}

func (s *businessStore) MarkNotificationAsRead(ctx context.Context, id string) error {
	_, err := s.Apply(ctx, mutation.MarkNotificationRead{ID: id})

	return err
}

func (s *businessStore) AddMediaItem(ctx context.Context, item entity.MediaItem) (entity.MediaItem, error) {
	if item.ID == "" {
		item.ID = mutation.GenerateID(mutation.PrefixMedia)
	}
	business, err := s.Apply(ctx, mutation.AddMediaItem{Item: item})
	if err != nil {
		return entity.MediaItem{}, err
	}

	return findByID(business.Media, item.ID, func(m entity.MediaItem) string { return m.ID }), nil
}

// DeleteMediaItem returns the removed item so that its blobs can be released.
func (s *businessStore) DeleteMediaItem(ctx context.Context, id string) (entity.MediaItem, error) {
	cmd := &observed{Command: mutation.DeleteMediaItem{ID: id}}
	if _, err := s.Apply(ctx, cmd); err != nil {
		return entity.MediaItem{}, err
	}

	return findByID(cmd.before.Media, id, func(m entity.MediaItem) string { return m.ID }), nil
}

func (s *businessStore) AddBlogPost(ctx context.Context, post entity.BlogPost) (entity.BlogPost, error) {
	if post.ID == "" {
		post.ID = mutation.GenerateID(mutation.PrefixBlogPost)
	}
	business, err := s.Apply(ctx, mutation.AddBlogPost{Post: post})
	if err != nil {
		return entity.BlogPost{}, err
	}

	return findByID(business.Blog, post.ID, func(p entity.BlogPost) string { return p.ID }), nil
}

func (s *businessStore) UpdateBlogPost(ctx context.Context, id string, patch mutation.BlogPostPatch) (entity.BlogPost, error) {
	business, err := s.Apply(ctx, mutation.UpdateBlogPost{ID: id, Patch: patch})
	if err != nil {
		return entity.BlogPost{}, err
	}

	return findByID(business.Blog, id, func(p entity.BlogPost) string { return p.ID }), nil
}

func (s *businessStore) DeleteBlogPost(ctx context.Context, id string) error {
	_, err := s.Apply(ctx, mutation.DeleteBlogPost{ID: id})

	return err
}

func findByID[T any](items []T, id string, key func(T) string) T {
	for _, item := range items {
		if key(item) == id {
			return item
		}
	}

	var zero T

	return zero
}
