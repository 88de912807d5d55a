package usecase

import (
	"context"
	"time"

	"tastelocal/internal/domain/entity"
	"tastelocal/internal/domain/mutation"
)

// SyncState is the position of a BusinessStore in its subscription lifecycle.
type SyncState int32

const (
	// SyncStateUninitialized means no subscription has been opened yet.
	SyncStateUninitialized SyncState = iota
	// SyncStateLoading means the subscription is open and the first snapshot
	// has not arrived.
	SyncStateLoading
	// SyncStateSynced means the local view mirrors the last known remote state.
	SyncStateSynced
)

// String returns the string representation of the SyncState.
func (s SyncState) String() string {
	switch s {
	case SyncStateUninitialized:
		return "uninitialized"
	case SyncStateLoading:
		return "loading"
	case SyncStateSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// View is an immutable snapshot of a business as held by its store.
// Business is nil when the document does not exist. Revision increases on
// every local swap; Version is the remote update time the view is based on.
type View struct {
	Business *entity.Business
	Revision uint64
	Version  time.Time
}

// BusinessStore owns the in-memory copy of one business, keeps it in step with
// the document store and runs every mutation through the optimistic write
// protocol: apply locally, persist the touched fields, roll back on failure.
type BusinessStore interface {
	ID() string
	State() SyncState
	// View returns the current snapshot without blocking.
	View() *View
	// Business returns the current aggregate or ErrNotFound when none is loaded.
	Business() (*entity.Business, error)
	WaitSynced(ctx context.Context) error
	// Watch streams views until ctx ends. Slow readers only see the latest one.
	Watch(ctx context.Context) <-chan *View
	// Apply runs one command and returns the committed aggregate.
	Apply(ctx context.Context, cmd mutation.Command) (*entity.Business, error)

	AddMenuItem(ctx context.Context, item entity.MenuItem) (entity.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch mutation.MenuItemPatch) (entity.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	AddOrder(ctx context.Context, order entity.Order) (entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error
	UpdateBusinessHours(ctx context.Context, hours []entity.BusinessHours) error
	UpdateProfile(ctx context.Context, profile mutation.UpdateProfile) (*entity.Business, error)
	AddNotification(ctx context.Context, notification entity.Notification) (entity.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id string) error
	AddMediaItem(ctx context.Context, item entity.MediaItem) (entity.MediaItem, error)
	DeleteMediaItem(ctx context.Context, id string) (entity.MediaItem, error)
	AddBlogPost(ctx context.Context, post entity.BlogPost) (entity.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch mutation.BlogPostPatch) (entity.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error

	// Close ends the subscription and every watch.
	Close()
}

// StoreRegistry binds one BusinessStore per business and hands the same
// instance to every caller.
type StoreRegistry interface {
	// Get returns the synced store of a business, binding it on first use.
	Get(ctx context.Context, businessID string) (BusinessStore, error)
	Close()
}
