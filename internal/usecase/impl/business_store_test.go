package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/mutation"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/infra/persistence/docstore"
	"tastelocal/internal/infra/persistence/memory"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBusinessID = "business_1"

var testEpoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// stepClock advances by one minute on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: testEpoch}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(time.Minute)

	return c.t
}

// hookedRepo lets a test act in the middle of a write and make it fail.
type hookedRepo struct {
	repository.BusinessRepository

	mu       sync.Mutex
	updates  int
	fail     error
	onUpdate func()
}

func (r *hookedRepo) Update(ctx context.Context, id string, fields document.Map) (time.Time, error) {
	r.mu.Lock()
	r.updates++
	hook, fail := r.onUpdate, r.fail
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fail != nil {
		return time.Time{}, domainerrors.NewWriteError(fail, "business "+id)
	}

	return r.BusinessRepository.Update(ctx, id, fields)
}

func (r *hookedRepo) set(fail error, hook func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fail, r.onUpdate = fail, hook
}

func (r *hookedRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updates
}

type storeFixture struct {
	docs  *memory.Store
	repo  *hookedRepo
	store *businessStore
}

func newStoreFixture(t *testing.T, seed func(b *entity.Business)) *storeFixture {
	t.Helper()

	docs := memory.New()
	base := docstore.NewBusinessRepository(docs, testLogger())
	if seed != nil {
		business := entity.NewBusiness(testBusinessID, "owner_1", testEpoch)
		business.Name = "Kota Corner"
		seed(business)
		require.NoError(t, base.Create(context.Background(), business))
	}

	repo := &hookedRepo{BusinessRepository: base}
	clock := newStepClock()
	store := newBusinessStore(testBusinessID, repo, service.NopSyncMetrics{}, testLogger(), clock.Now)
	require.NoError(t, store.start())
	require.NoError(t, store.WaitSynced(context.Background()))
	t.Cleanup(store.Close)

	return &storeFixture{docs: docs, repo: repo, store: store}
}

func (f *storeFixture) remote(t *testing.T) *entity.Business {
	t.Helper()

	business, _, err := f.repo.FindByID(context.Background(), testBusinessID)
	require.NoError(t, err)

	return business
}

func TestBusinessStore_SyncsOnStart(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) { b.TotalOrders = 2 })

	assert.Equal(t, usecase.SyncStateSynced, f.store.State())
	business, err := f.store.Business()
	require.NoError(t, err)
	assert.Equal(t, "Kota Corner", business.Name)
	assert.Equal(t, 2, business.TotalOrders)
	assert.Len(t, business.Hours, 7)
	assert.False(t, f.store.View().Version.IsZero())
}

func TestBusinessStore_MissingDocument(t *testing.T) {
	f := newStoreFixture(t, nil)

	assert.Equal(t, usecase.SyncStateSynced, f.store.State())
	_, err := f.store.Business()
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = f.store.AddMenuItem(context.Background(), entity.MenuItem{Name: "Kota"})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, "no business found", errors.Cause(err).Error())
	assert.Zero(t, f.repo.updateCount())
}

func TestBusinessStore_AddOrderRollsBackOnWriteFailure(t *testing.T) {
	existing := entity.Order{
		ID: "order_0", CustomerName: "Thabo", CustomerPhone: "0820000000",
		Items: []string{"Kota"}, TotalPrice: "55", Status: entity.OrderStatusCompleted, Timestamp: testEpoch,
	}
	f := newStoreFixture(t, func(b *entity.Business) {
		b.TotalOrders = 5
		b.Orders = []entity.Order{existing}
	})

	var during *entity.Business
	f.repo.set(errors.New("permission denied"), func() {
		during, _ = f.store.Business()
	})

	_, err := f.store.AddOrder(context.Background(), entity.Order{
		CustomerName: "Lerato", CustomerPhone: "0831111111", Items: []string{"Bunny chow"}, TotalPrice: "70",
	})

	require.Error(t, err)
	assert.True(t, domainerrors.IsWriteError(err))

	require.NotNil(t, during, "optimistic state is visible while the write is in flight")
	assert.Equal(t, 6, during.TotalOrders)
	assert.Len(t, during.Orders, 2)

	business, err := f.store.Business()
	require.NoError(t, err)
	assert.Equal(t, 5, business.TotalOrders)
	assert.Equal(t, []entity.Order{existing}, business.Orders)

	remote := f.remote(t)
	assert.Equal(t, 5, remote.TotalOrders)
	assert.Len(t, remote.Orders, 1)
}

func TestBusinessStore_MonotonicOrderCounting(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) { b.TotalOrders = 3 })
	ctx := context.Background()

	var ids []string
	for i := range 5 {
		order, err := f.store.AddOrder(ctx, entity.Order{
			CustomerName: fmt.Sprintf("Customer %d", i), CustomerPhone: "0820000000",
			Items: []string{"Kota"}, TotalPrice: "55",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPending, order.Status)
		ids = append(ids, order.ID)
	}

	for _, business := range []*entity.Business{mustBusiness(t, f.store), f.remote(t)} {
		assert.Equal(t, 8, business.TotalOrders)
		require.Len(t, business.Orders, 5)
		for i, order := range business.Orders {
			assert.Equal(t, ids[len(ids)-1-i], order.ID, "newest first")
		}
	}
}

func TestBusinessStore_ConcurrentMutatorsAreSerialised(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) { b.TotalOrders = 1 })
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.store.AddOrder(ctx, entity.Order{
				CustomerName: fmt.Sprintf("Customer %d", i), CustomerPhone: "0820000000", Items: []string{"Kota"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	business := mustBusiness(t, f.store)
	assert.Equal(t, 1+n, business.TotalOrders)
	assert.Len(t, business.Orders, n)
	assert.Equal(t, 1+n, f.remote(t).TotalOrders)
}

func TestBusinessStore_MenuEndToEnd(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	item := entity.MenuItem{ID: "item_1", Name: "Kota", Price: "55", Category: "Snacks", Available: true}

	var during []entity.MenuItem
	f.repo.set(nil, func() { during = mustBusiness(t, f.store).Menu })

	added, err := f.store.AddMenuItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, item, added)
	assert.Equal(t, []entity.MenuItem{item}, during, "visible before the write resolves")
	assert.Equal(t, []entity.MenuItem{item}, mustBusiness(t, f.store).Menu)
	assert.Equal(t, []entity.MenuItem{item}, f.remote(t).Menu)

	raw, err := f.docs.Get(ctx, repository.CollectionBusinesses, testBusinessID)
	require.NoError(t, err)
	assert.NotContains(t, raw.Data[entity.FieldMenu].([]any)[0], "image")

	f.repo.set(nil, nil)
	require.NoError(t, f.store.DeleteMenuItem(ctx, "item_1"))
	assert.Empty(t, mustBusiness(t, f.store).Menu)
	assert.Empty(t, f.remote(t).Menu)
}

func TestBusinessStore_UpdateMenuItem(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) {
		b.Menu = []entity.MenuItem{{ID: "item_1", Name: "Kota", Price: "55", Available: true}}
	})
	ctx := context.Background()

	price, available := "60", false
	updated, err := f.store.UpdateMenuItem(ctx, "item_1", mutation.MenuItemPatch{Price: &price, Available: &available})
	require.NoError(t, err)
	assert.Equal(t, "60", updated.Price)
	assert.False(t, updated.Available)
	assert.Equal(t, "Kota", updated.Name)

	_, err = f.store.UpdateMenuItem(ctx, "item_9", mutation.MenuItemPatch{Price: &price})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = f.store.AddMenuItem(ctx, entity.MenuItem{ID: "item_1", Name: "Again"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBusinessStore_BlogOrderingAndTimestamps(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	p1, err := f.store.AddBlogPost(ctx, entity.BlogPost{Title: "Opening day", Content: "We are open", Author: "Sipho"})
	require.NoError(t, err)
	p2, err := f.store.AddBlogPost(ctx, entity.BlogPost{Title: "New menu", Content: "Try the kota", Author: "Sipho"})
	require.NoError(t, err)

	assert.Equal(t, p1.CreatedAt, p1.UpdatedAt)
	assert.Equal(t, p2.CreatedAt, p2.UpdatedAt)

	blog := mustBusiness(t, f.store).Blog
	require.Len(t, blog, 2)
	assert.Equal(t, p2.ID, blog[0].ID)
	assert.Equal(t, p1.ID, blog[1].ID)

	title := "Opening day, updated"
	edited, err := f.store.UpdateBlogPost(ctx, p1.ID, mutation.BlogPostPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, p1.CreatedAt, edited.CreatedAt)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))
	assert.Equal(t, title, edited.Title)

	remote := f.remote(t).Blog
	require.Len(t, remote, 2)
	assert.Equal(t, p2.ID, remote[0].ID)
	assert.Equal(t, title, remote[1].Title)
	assert.True(t, remote[1].CreatedAt.Equal(p1.CreatedAt))

	require.NoError(t, f.store.DeleteBlogPost(ctx, p2.ID))
	assert.Len(t, mustBusiness(t, f.store).Blog, 1)
}

func TestBusinessStore_HoursValidatedBeforeWrite(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	sixDays := entity.DefaultHours()[:6]
	duplicated := entity.DefaultHours()
	duplicated[6].Day = "Monday"

	for name, hours := range map[string][]entity.BusinessHours{"missing day": sixDays, "duplicated day": duplicated} {
		t.Run(name, func(t *testing.T) {
			err := f.store.UpdateBusinessHours(ctx, hours)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Equal(t, entity.DefaultHours(), mustBusiness(t, f.store).Hours)
		})
	}
	assert.Zero(t, f.repo.updateCount())

	week := entity.DefaultHours()
	week[6] = entity.BusinessHours{Day: "Sunday", Closed: true}
	require.NoError(t, f.store.UpdateBusinessHours(ctx, week))
	assert.True(t, f.remote(t).Hours[6].Closed)
}

func TestBusinessStore_OrderStatusIsPermissive(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) {
		b.Orders = []entity.Order{{ID: "order_1", Items: []string{"Kota"}, Status: entity.OrderStatusCompleted, Timestamp: testEpoch}}
	})
	ctx := context.Background()

	require.NoError(t, f.store.UpdateOrderStatus(ctx, "order_1", entity.OrderStatusPending))
	assert.Equal(t, entity.OrderStatusPending, f.remote(t).Orders[0].Status)

	err := f.store.UpdateOrderStatus(ctx, "order_1", "shipped")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestNotificationIndex_Unread(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) {
		b.Notifications = []entity.Notification{
			{ID: "notif_3", Type: entity.NotificationTypeOrder, Title: "New order", Timestamp: testEpoch},
			{ID: "notif_2", Type: entity.NotificationTypeReview, Title: "New review", Timestamp: testEpoch, Read: true},
			{ID: "notif_1", Type: entity.NotificationTypeMessage, Title: "Message", Timestamp: testEpoch},
		}
	})
	index := NewNotificationIndex(f.store)

	unread, err := index.Unread()
	require.NoError(t, err)
	assert.Len(t, unread, 2)
	count, err := index.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, index.MarkAsRead(context.Background(), "notif_3"))

	unread, err = index.Unread()
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "notif_1", unread[0].ID)

	all := mustBusiness(t, f.store).Notifications
	assert.Equal(t, "notif_3", all[0].ID)
	assert.True(t, all[0].Read)
	assert.True(t, f.remote(t).Notifications[0].Read)

	err = index.MarkAsRead(context.Background(), "notif_9")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestBusinessStore_AppliesRemoteChanges(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	watchCtx, cancel := context.WithCancel(ctx)
	views := f.store.Watch(watchCtx)
	first := <-views
	assert.Equal(t, "Kota Corner", first.Business.Name)

	// Another session renames the business.
	_, err := f.docs.Update(ctx, repository.CollectionBusinesses, testBusinessID, document.Map{entity.FieldName: "Kota King"})
	require.NoError(t, err)

	assert.Equal(t, "Kota King", mustBusiness(t, f.store).Name)
	latest := <-views
	assert.Equal(t, "Kota King", latest.Business.Name)
	assert.Greater(t, latest.Revision, first.Revision)

	cancel()
	_, open := <-views
	assert.False(t, open)
}

func TestBusinessStore_DropsStaleSnapshot(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})

	current := f.store.View()
	old := current.Business.Copy()
	old.Name = "Old name"
	f.store.onSnapshot(old, current.Version.Add(-time.Second))

	assert.Equal(t, current, f.store.View())
	assert.Equal(t, "Kota Corner", mustBusiness(t, f.store).Name)
}

func TestBusinessStore_ConcurrentWriterDuringWrite(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	f.repo.set(nil, func() {
		_, err := f.docs.Update(ctx, repository.CollectionBusinesses, testBusinessID, document.Map{entity.FieldName: "Renamed elsewhere"})
		require.NoError(t, err)
		assert.Equal(t, "Kota Corner", mustBusiness(t, f.store).Name, "snapshot is deferred while writing")
		assert.Len(t, mustBusiness(t, f.store).Menu, 1)
	})

	_, err := f.store.AddMenuItem(ctx, entity.MenuItem{ID: "item_1", Name: "Kota", Price: "55"})
	require.NoError(t, err)

	business := mustBusiness(t, f.store)
	assert.Equal(t, "Renamed elsewhere", business.Name, "other writer's field survives the partial write")
	assert.Len(t, business.Menu, 1)

	remote := f.remote(t)
	assert.Equal(t, "Renamed elsewhere", remote.Name)
	assert.Len(t, remote.Menu, 1)
}

func TestBusinessStore_RollbackKeepsNewerRemoteState(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})
	ctx := context.Background()

	f.repo.set(errors.New("unavailable"), func() {
		_, err := f.docs.Update(ctx, repository.CollectionBusinesses, testBusinessID, document.Map{entity.FieldName: "Renamed elsewhere"})
		require.NoError(t, err)
	})

	_, err := f.store.AddMenuItem(ctx, entity.MenuItem{ID: "item_1", Name: "Kota", Price: "55"})
	require.Error(t, err)
	assert.True(t, domainerrors.IsWriteError(err))

	business := mustBusiness(t, f.store)
	assert.Equal(t, "Renamed elsewhere", business.Name)
	assert.Empty(t, business.Menu)
}

func TestBusinessStore_DeleteMediaItemReturnsRemoved(t *testing.T) {
	thumb := "https://cdn.example.com/t.jpg"
	f := newStoreFixture(t, func(b *entity.Business) {
		b.Media = []entity.MediaItem{{ID: "media_1", Type: entity.MediaTypePhoto, URL: "https://cdn.example.com/p.jpg", Thumbnail: &thumb, UploadedAt: testEpoch}}
	})

	removed, err := f.store.DeleteMediaItem(context.Background(), "media_1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p.jpg", removed.URL)
	assert.Equal(t, &thumb, removed.Thumbnail)
	assert.Empty(t, mustBusiness(t, f.store).Media)
}

func TestBusinessStore_UpdateProfileTouchesOnlyProfileFields(t *testing.T) {
	f := newStoreFixture(t, func(b *entity.Business) { b.TotalOrders = 4 })
	ctx := context.Background()

	_, err := f.docs.Update(ctx, repository.CollectionBusinesses, testBusinessID, document.Map{entity.FieldTotalOrders: 9})
	require.NoError(t, err)

	business, err := f.store.UpdateProfile(ctx, mutation.UpdateProfile{
		BusinessName: "Kota Corner", Phone: "011 555 0000", Location: "Soweto", Cuisine: "Street food",
		Coordinates: &entity.Coordinates{Lat: -26.2485, Lng: 27.854},
	})
	require.NoError(t, err)
	assert.Equal(t, "Soweto", business.Location)
	assert.Equal(t, 9, f.remote(t).TotalOrders)

	_, err = f.store.UpdateProfile(ctx, mutation.UpdateProfile{BusinessName: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBusinessStore_Close(t *testing.T) {
	f := newStoreFixture(t, func(*entity.Business) {})

	views := f.store.Watch(context.Background())
	<-views
	f.store.Close()

	_, open := <-views
	assert.False(t, open)

	_, err := f.store.AddMenuItem(context.Background(), entity.MenuItem{Name: "Kota"})
	assert.True(t, errors.Is(err, domainerrors.ErrStoreClosed))
}

func mustBusiness(t *testing.T, store usecase.BusinessStore) *entity.Business {
	t.Helper()

	business, err := store.Business()
	require.NoError(t, err)

	return business
}

func TestBusinessStore_DeletedIDIsNeverReused(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t, func(b *entity.Business) {
		b.Menu = []entity.MenuItem{{ID: "item_1", Name: "Kota", Available: true}}
	})

	require.NoError(t, f.store.DeleteMenuItem(ctx, "item_1"))
	assert.True(t, f.remote(t).IsDeleted(entity.FieldMenu, "item_1"))

	_, err := f.store.AddMenuItem(ctx, entity.MenuItem{ID: "item_1", Name: "Kota again"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Empty(t, mustBusiness(t, f.store).Menu)

	// A store bound later sees the same tombstone.
	reloaded := newBusinessStore(testBusinessID, f.repo, service.NopSyncMetrics{}, testLogger(), newStepClock().Now)
	require.NoError(t, reloaded.start())
	t.Cleanup(reloaded.Close)
	require.NoError(t, reloaded.WaitSynced(ctx))

	_, err = reloaded.AddMenuItem(ctx, entity.MenuItem{ID: "item_1", Name: "Kota again"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBusinessStore_CompletesHoursOfStoredDocument(t *testing.T) {
	ctx := context.Background()
	docs := memory.New()
	_, err := docs.Create(ctx, repository.CollectionBusinesses, testBusinessID, document.Map{
		entity.FieldName:    "Kota Corner",
		entity.FieldOwnerID: "owner_1",
		entity.FieldHours: []any{
			document.Map{"day": "Sunday", "closed": true},
		},
	})
	require.NoError(t, err)

	store := newBusinessStore(testBusinessID, docstore.NewBusinessRepository(docs, testLogger()),
		service.NopSyncMetrics{}, testLogger(), newStepClock().Now)
	require.NoError(t, store.start())
	t.Cleanup(store.Close)
	require.NoError(t, store.WaitSynced(ctx))

	hours := mustBusiness(t, store).Hours
	require.Len(t, hours, 7)
	require.NoError(t, entity.ValidateWeek(hours))
	assert.Equal(t, entity.DefaultHours()[:6], hours[:6])
	assert.True(t, hours[6].Closed, "stored entry is kept")
}
