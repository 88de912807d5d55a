// Package persistence selects and wires the document store backend.
package persistence

import (
	"context"
	"log/slog"
	"time"

	"tastelocal/config"
	"tastelocal/internal/domain/constants"
	"tastelocal/internal/domain/lifecycle"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/infra/persistence/docstore"
	firestorestore "tastelocal/internal/infra/persistence/firestore"
	"tastelocal/internal/infra/persistence/memory"
	mongostore "tastelocal/internal/infra/persistence/mongo"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const defaultMongoConnectTimeout = 10 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App
}

// NewDocumentStore opens the configured backend and closes it on stop.
func NewDocumentStore(params Params) (repository.DocumentStore, error) {
	provider := constants.DocStoreProviderFirestore
	if params.Config.DocStore != nil && params.Config.DocStore.Provider != "" {
		provider = params.Config.DocStore.Provider
	}

	var (
		store repository.DocumentStore
		err   error
	)

	switch provider {
	case constants.DocStoreProviderFirestore:
		store, err = newFirestore(params)
	case constants.DocStoreProviderMongo:
		store, err = newMongo(params)
	case constants.DocStoreProviderMemory:
		params.Logger.Warn("Using in-memory document store, data is lost on restart")
		store = memory.New()
	default:
		return nil, errors.Errorf("unknown document store provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Document store ready", slog.String("provider", provider))

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing document store")

			return store.Close()
		},
	})

	return store, nil
}

func newFirestore(params Params) (repository.DocumentStore, error) {
	client, err := params.App.Firestore(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	return firestorestore.NewStore(client, params.Logger), nil
}

func newMongo(params Params) (repository.DocumentStore, error) {
	cfg := params.Config.DocStore.Mongo
	if cfg == nil || cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongo uri and database are required for the mongo provider")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultMongoConnectTimeout
	}

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(client.Ping(ctx, readpref.Primary()), "failed to ping MongoDB")
		},
	})

	return mongostore.NewStore(client, cfg.Database, params.Logger), nil
}

// Module provides the document store and the typed repositories
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewDocumentStore,
		docstore.NewBusinessRepository,
		docstore.NewUserRepository,
	),
)
