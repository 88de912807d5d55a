// Package firestore implements the DocumentStore on Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store is a DocumentStore backed by a Firestore client.
type Store struct {
	client *firestore.Client
	logger *slog.Logger
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore wraps a Firestore client.
func NewStore(client *firestore.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrDocumentNotFound)
		}

		return nil, errors.Wrapf(err, "failed to get %s/%s", collection, id)
	}

	return toDocument(snap), nil
}

// Create writes a new document and fails if the id is taken.
func (s *Store) Create(ctx context.Context, collection, id string, data document.Map) (time.Time, error) {
	result, err := s.client.Collection(collection).Doc(id).Create(ctx, data)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return time.Time{}, errors.WithStack(repository.ErrDocumentExists)
		}

		return time.Time{}, errors.Wrapf(err, "failed to create %s/%s", collection, id)
	}

	return result.UpdateTime, nil
}

// Update replaces the given top-level fields of an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, fields document.Map) (time.Time, error) {
	if len(fields) == 0 {
		return time.Time{}, errors.New("update without fields")
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, key := range keys {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{key}, Value: fields[key]})
	}

	result, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return time.Time{}, errors.WithStack(repository.ErrDocumentNotFound)
		}

		return time.Time{}, errors.Wrapf(err, "failed to update %s/%s", collection, id)
	}

	return result.UpdateTime, nil
}

// Subscribe listens to one document. Snapshots arrive on a dedicated goroutine.
func (s *Store) Subscribe(ctx context.Context, collection, id string, onChange repository.SnapshotFunc) (func(), error) {
	listenCtx, cancel := context.WithCancel(ctx)
	iter := s.client.Collection(collection).Doc(id).Snapshots(listenCtx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if listenCtx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				s.logger.Error("Document listener stopped",
					slog.String("collection", collection),
					slog.String("id", id),
					slog.Any("error", err),
				)

				return
			}

			if !snap.Exists() {
				onChange(nil)

				continue
			}
			onChange(toDocument(snap))
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

// QueryAll reads every document of a collection.
func (s *Store) QueryAll(ctx context.Context, collection string) ([]*repository.Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", collection)
	}

	return toDocuments(snaps), nil
}

// QueryByField reads the documents whose field equals value.
func (s *Store) QueryByField(ctx context.Context, collection, field string, value any) ([]*repository.Document, error) {
	query := s.client.Collection(collection).WhereEntity(firestore.PropertyFilter{
		Path:     field,
		Operator: "==",
		Value:    value,
	})

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s by %s", collection, field)
	}

	return toDocuments(snaps), nil
}

// Close releases the client.
func (s *Store) Close() error {
	return errors.WithStack(s.client.Close())
}

func toDocument(snap *firestore.DocumentSnapshot) *repository.Document {
	return &repository.Document{
		ID:         snap.Ref.ID,
		Data:       snap.Data(),
		UpdateTime: snap.UpdateTime,
	}
}

func toDocuments(snaps []*firestore.DocumentSnapshot) []*repository.Document {
	docs := make([]*repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, toDocument(snap))
	}

	return docs
}
