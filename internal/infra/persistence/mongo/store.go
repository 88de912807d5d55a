// Package mongo implements the DocumentStore on MongoDB. Subscriptions use
// change streams, which need a replica set or sharded cluster.
package mongo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved keys stored next to the document data.
const (
	keyID        = "_id"
	keyUpdatedAt = "_updatedAt"
)

// Store is a DocumentStore backed by one MongoDB database; each collection
// maps to a MongoDB collection of the same name.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore wraps a connected client.
func NewStore(client *mongo.Client, database string, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	var raw bson.M
	if err := s.db.Collection(collection).FindOne(ctx, bson.M{keyID: id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrDocumentNotFound)
		}

		return nil, errors.Wrapf(err, "failed to get %s/%s", collection, id)
	}

	return toDocument(raw), nil
}

// Create inserts a new document.
func (s *Store) Create(ctx context.Context, collection, id string, data document.Map) (time.Time, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := make(bson.M, len(data)+2)
	for k, v := range data {
		doc[k] = v
	}
	doc[keyID] = id
	doc[keyUpdatedAt] = now

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return time.Time{}, errors.WithStack(repository.ErrDocumentExists)
		}

		return time.Time{}, errors.Wrapf(err, "failed to create %s/%s", collection, id)
	}

	return now, nil
}

// Update sets the given top-level fields and stamps the server time.
func (s *Store) Update(ctx context.Context, collection, id string, fields document.Map) (time.Time, error) {
	if len(fields) == 0 {
		return time.Time{}, errors.New("update without fields")
	}

	update := bson.M{
		"$set":         bson.M(fields),
		"$currentDate": bson.M{keyUpdatedAt: true},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{keyUpdatedAt: 1})

	var stamped struct {
		UpdatedAt time.Time `bson:"_updatedAt"`
	}
	err := s.db.Collection(collection).FindOneAndUpdate(ctx, bson.M{keyID: id}, update, opts).Decode(&stamped)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, errors.WithStack(repository.ErrDocumentNotFound)
		}

		return time.Time{}, errors.Wrapf(err, "failed to update %s/%s", collection, id)
	}

	return stamped.UpdatedAt.UTC(), nil
}

// changeEvent is the part of a change stream event the store reads.
type changeEvent struct {
	OperationType string `bson:"operationType"`
	FullDocument  bson.M `bson:"fullDocument"`
}

// Subscribe opens a change stream on one document, then reports the current
// state and every later change.
func (s *Store) Subscribe(ctx context.Context, collection, id string, onChange repository.SnapshotFunc) (func(), error) {
	listenCtx, cancel := context.WithCancel(ctx)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: id}}}},
	}
	stream, err := s.db.Collection(collection).Watch(listenCtx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()

		return nil, errors.Wrapf(err, "failed to watch %s/%s", collection, id)
	}

	// The stream is open before the read, so no change falls between the two.
	current, err := s.Get(listenCtx, collection, id)
	if err != nil && !errors.Is(err, repository.ErrDocumentNotFound) {
		cancel()
		_ = stream.Close(context.Background())

		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stream.Close(context.Background())

		onChange(current)

		for stream.Next(listenCtx) {
			var event changeEvent
			if err := stream.Decode(&event); err != nil {
				s.logger.Warn("Skipping undecodable change event", slog.String("id", id), slog.Any("error", err))

				continue
			}

			switch {
			case event.OperationType == "delete" || event.FullDocument == nil:
				onChange(nil)
			default:
				onChange(toDocument(event.FullDocument))
			}
		}

		if err := stream.Err(); err != nil && listenCtx.Err() == nil {
			s.logger.Error("Change stream stopped",
				slog.String("collection", collection),
				slog.String("id", id),
				slog.Any("error", err),
			)
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
	return s.find(ctx, collection, bson.M{})
}

// QueryByField reads the documents whose field equals value.
func (s *Store) QueryByField(ctx context.Context, collection, field string, value any) ([]*repository.Document, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return errors.WithStack(s.client.Disconnect(ctx))
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M) ([]*repository.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: keyID, Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", collection)
	}

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", collection)
	}

	docs := make([]*repository.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}

	return docs, nil
}

func toDocument(raw bson.M) *repository.Document {
	doc := &repository.Document{Data: make(document.Map, len(raw))}
	for k, v := range raw {
		switch k {
		case keyID:
			doc.ID, _ = v.(string)
		case keyUpdatedAt:
			if ts, ok := v.(primitive.DateTime); ok {
				doc.UpdateTime = ts.Time().UTC()
			}
		default:
			doc.Data[k] = normalize(v)
		}
	}

	return doc
}

// normalize turns driver types into the plain values the rest of the code expects.
func normalize(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}

		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}

		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}

		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case int32:
		return int64(val)
	default:
		return v
	}
}
