// Package memory is an in-process DocumentStore. Snapshots are delivered
// synchronously on the writer's goroutine, which keeps tests deterministic.
package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/repository"

	"github.com/pkg/errors"
)

type entry struct {
	data       document.Map
	updateTime time.Time
}

type subscription struct {
	collection string
	id         string
	onChange   repository.SnapshotFunc

	mu            sync.Mutex // serialises deliveries
	lastDelivered time.Time
	delivered     bool
	closed        bool
}

// Store keeps documents in maps guarded by one mutex.
type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]*entry
	subs        map[*subscription]struct{}
	now         func() time.Time
	last        time.Time
}

var _ repository.DocumentStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of update times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]*entry),
		subs:        make(map[*subscription]struct{}),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns a copy of the document.
func (s *Store) Get(_ context.Context, collection, id string) (*repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return nil, errors.WithStack(repository.ErrDocumentNotFound)
	}

	return e.document(id), nil
}

// Create stores a new document.
func (s *Store) Create(_ context.Context, collection, id string, data document.Map) (time.Time, error) {
	if err := checkValue(data); err != nil {
		return time.Time{}, err
	}

	s.mu.Lock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*entry)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; exists {
		s.mu.Unlock()

		return time.Time{}, errors.WithStack(repository.ErrDocumentExists)
	}
	e := &entry{data: document.CopyMap(data), updateTime: s.tick()}
	docs[id] = e
	snapshot, targets := e.document(id), s.subscribersLocked(collection, id)
	s.mu.Unlock()

	deliver(targets, snapshot, snapshot.UpdateTime)

	return snapshot.UpdateTime, nil
}

// Update replaces the given top-level fields.
func (s *Store) Update(_ context.Context, collection, id string, fields document.Map) (time.Time, error) {
	if err := checkValue(fields); err != nil {
		return time.Time{}, err
	}

	s.mu.Lock()
	e, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()

		return time.Time{}, errors.WithStack(repository.ErrDocumentNotFound)
	}
	data := document.CopyMap(e.data)
	for k, v := range fields {
		data[k] = document.Copy(v)
	}
	e.data = data
	e.updateTime = s.tick()
	snapshot, targets := e.document(id), s.subscribersLocked(collection, id)
	s.mu.Unlock()

	deliver(targets, snapshot, snapshot.UpdateTime)

	return snapshot.UpdateTime, nil
}

// Delete removes a document. Subscribers receive nil.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	if _, ok := s.collections[collection][id]; !ok {
		s.mu.Unlock()

		return errors.WithStack(repository.ErrDocumentNotFound)
	}
	delete(s.collections[collection], id)
	at, targets := s.tick(), s.subscribersLocked(collection, id)
	s.mu.Unlock()

	deliver(targets, nil, at)

	return nil
}

// Subscribe delivers the current state before returning, then every change.
// onChange must not call the returned unsubscribe function.
func (s *Store) Subscribe(ctx context.Context, collection, id string, onChange repository.SnapshotFunc) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	sub := &subscription{collection: collection, id: id, onChange: onChange}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	var snapshot *repository.Document
	at := s.last
	if e, ok := s.collections[collection][id]; ok {
		snapshot = e.document(id)
		at = e.updateTime
	}
	s.mu.Unlock()

	sub.deliver(snapshot, at)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()

			sub.mu.Lock()
			sub.closed = true
			sub.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, unsubscribe)

	return func() {
		stop()
		unsubscribe()
	}, nil
}

// QueryAll returns every document of the collection ordered by id.
func (s *Store) QueryAll(_ context.Context, collection string) ([]*repository.Document, error) {
	return s.query(collection, func(document.Map) bool { return true }), nil
}

// QueryByField returns the documents whose field equals value.
func (s *Store) QueryByField(_ context.Context, collection, field string, value any) ([]*repository.Document, error) {
	return s.query(collection, func(data document.Map) bool {
		v, ok := data[field]

		return ok && reflect.DeepEqual(v, value)
	}), nil
}

// Close drops every subscription.
func (s *Store) Close() error {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[*subscription]struct{})
	s.mu.Unlock()

	for sub := range subs {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
	}

	return nil
}

func (s *Store) query(collection string, match func(document.Map) bool) []*repository.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]*repository.Document, 0, len(s.collections[collection]))
	for id, e := range s.collections[collection] {
		if match(e.data) {
			docs = append(docs, e.document(id))
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	return docs
}

// tick returns a strictly increasing update time. Callers hold mu.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t

	return t
}

func (s *Store) subscribersLocked(collection, id string) []*subscription {
	var targets []*subscription
	for sub := range s.subs {
		if sub.collection == collection && sub.id == id {
			targets = append(targets, sub)
		}
	}

	return targets
}

func (e *entry) document(id string) *repository.Document {
	return &repository.Document{ID: id, Data: document.CopyMap(e.data), UpdateTime: e.updateTime}
}

func deliver(targets []*subscription, snapshot *repository.Document, at time.Time) {
	for _, sub := range targets {
		var doc *repository.Document
		if snapshot != nil {
			doc = &repository.Document{ID: snapshot.ID, Data: document.CopyMap(snapshot.Data), UpdateTime: snapshot.UpdateTime}
		}
		sub.deliver(doc, at)
	}
}

// deliver hands one snapshot to the subscriber unless a newer one already went out.
func (sub *subscription) deliver(doc *repository.Document, at time.Time) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if sub.closed || (sub.delivered && at.Before(sub.lastDelivered)) {
		return
	}
	sub.delivered = true
	sub.lastDelivered = at
	sub.onChange(doc)
}

// checkValue rejects the Absent marker at any depth, as the remote store does.
func checkValue(v any) error {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if err := checkValue(item); err != nil {
				return errors.Wrapf(err, "field %s", k)
			}
		}
	case []any:
		for i, item := range val {
			if err := checkValue(item); err != nil {
				return errors.Wrapf(err, "element %d", i)
			}
		}
	default:
		if document.IsAbsent(v) {
			return errors.New("unsupported value: absent field")
		}
	}

	return nil
}
