// Package docstore contains the typed repositories built on a DocumentStore.
package docstore

import (
	"context"
	"log/slog"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"

	"github.com/pkg/errors"
)

// businessRepository implements the repository.BusinessRepository interface.
type businessRepository struct {
	store  repository.DocumentStore
	logger *slog.Logger
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(store repository.DocumentStore, logger *slog.Logger) repository.BusinessRepository {
	return &businessRepository{
		store:  store,
		logger: logger,
	}
}

// FindByID reads and decodes one business together with its version.
func (repo *businessRepository) FindByID(ctx context.Context, id string) (*entity.Business, time.Time, error) {
	doc, err := repo.store.Get(ctx, repository.CollectionBusinesses, id)
	if err != nil {
		return nil, time.Time{}, err
	}

	business, err := entity.DecodeBusiness(doc.ID, doc.Data)
	if err != nil {
		return nil, time.Time{}, errors.Wrapf(err, "business %s", id)
	}

	return business, doc.UpdateTime, nil
}

// FindByOwnerID returns the business bound to an owner.
func (repo *businessRepository) FindByOwnerID(ctx context.Context, ownerID string) (*entity.Business, error) {
	docs, err := repo.store.QueryByField(ctx, repository.CollectionBusinesses, entity.FieldOwnerID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.WithStack(repository.ErrDocumentNotFound)
	}
	if len(docs) > 1 {
		repo.logger.WarnContext(ctx, "Owner has more than one business, using the first",
			slog.String("owner_id", ownerID),
			slog.Int("count", len(docs)),
		)
	}

	business, err := entity.DecodeBusiness(docs[0].ID, docs[0].Data)
	if err != nil {
		return nil, errors.Wrapf(err, "business of owner %s", ownerID)
	}

	return business, nil
}

// FindAll decodes every business document. Documents that fail to decode are
// logged and left out.
func (repo *businessRepository) FindAll(ctx context.Context) ([]*entity.Business, error) {
	docs, err := repo.store.QueryAll(ctx, repository.CollectionBusinesses)
	if err != nil {
		return nil, err
	}

	businesses := make([]*entity.Business, 0, len(docs))
	for _, doc := range docs {
		business, err := entity.DecodeBusiness(doc.ID, doc.Data)
		if err != nil {
			repo.logger.WarnContext(ctx, "Skipping malformed business document",
				slog.String("id", doc.ID),
				slog.Any("error", err),
			)

			continue
		}
		businesses = append(businesses, business)
	}

	return businesses, nil
}

// Create stores a new business document.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	data := document.CleanMap(business.Document())
	if _, err := repo.store.Create(ctx, repository.CollectionBusinesses, business.ID, data); err != nil {
		return err
	}

	return nil
}

// Update writes top-level fields. Any failure is reported as a WriteError.
func (repo *businessRepository) Update(ctx context.Context, id string, fields document.Map) (time.Time, error) {
	version, err := repo.store.Update(ctx, repository.CollectionBusinesses, id, fields)
	if err != nil {
		return time.Time{}, domainerrors.NewWriteError(err, "business "+id)
	}

	return version, nil
}

// Subscribe decodes every snapshot of one business. Snapshots that fail to
// decode are logged and dropped.
func (repo *businessRepository) Subscribe(ctx context.Context, id string, onChange repository.BusinessSnapshotFunc) (func(), error) {
	return repo.store.Subscribe(ctx, repository.CollectionBusinesses, id, func(doc *repository.Document) {
		if doc == nil {
			onChange(nil, time.Time{})

			return
		}

		business, err := entity.DecodeBusiness(doc.ID, doc.Data)
		if err != nil {
			repo.logger.Error("Dropping undecodable business snapshot",
				slog.String("id", id),
				slog.Any("error", err),
			)

			return
		}
		onChange(business, doc.UpdateTime)
	})
}
