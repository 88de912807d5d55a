package repository

import (
	"context"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
)

// BusinessSnapshotFunc receives each decoded snapshot of a business with its
// version. business is nil when the document does not exist.
type BusinessSnapshotFunc func(business *entity.Business, version time.Time)

// BusinessRepository stores business aggregates, one document each.
type BusinessRepository interface {
	// FindByID returns the business, or ErrDocumentNotFound.
	FindByID(ctx context.Context, id string) (*entity.Business, time.Time, error)

	// FindByOwnerID returns the business bound to an owner, or ErrDocumentNotFound.
	FindByOwnerID(ctx context.Context, ownerID string) (*entity.Business, error)

	// FindAll returns every stored business. Documents that cannot be decoded are skipped.
	FindAll(ctx context.Context) ([]*entity.Business, error)

	// Create persists a new business.
	Create(ctx context.Context, business *entity.Business) error

	// Update writes the given top-level fields and returns the new version.
	Update(ctx context.Context, id string, fields document.Map) (time.Time, error)

	// Subscribe streams snapshots of one business.
	Subscribe(ctx context.Context, id string, onChange BusinessSnapshotFunc) (unsubscribe func(), err error)
}
