package repository

import (
	"context"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
)

// UserRepository defines the standard operations for user profile persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a profile by the identity provider's user id.
	FindByID(ctx context.Context, id string) (*entity.UserProfile, error)

	// Create persists a new profile. It fails with ErrDocumentExists when the id is taken.
	Create(ctx context.Context, user *entity.UserProfile) error

	// Update writes the given top-level fields of an existing profile.
	Update(ctx context.Context, id string, fields document.Map) error
}
