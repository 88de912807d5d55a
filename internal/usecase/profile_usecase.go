// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"tastelocal/internal/domain/entity"
	"tastelocal/internal/domain/service"
)

// ProfileUsecase defines the interface for user profile operations.
type ProfileUsecase interface {
	// Register creates the profile of an identity. A business owner also gets a
	// freshly initialised business.
	Register(ctx context.Context, identity *service.Identity, input *RegisterInput) (*entity.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*entity.UserProfile, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*entity.UserProfile, error)
	SyncEmailVerification(ctx context.Context, userID string, verified bool) (*entity.UserProfile, error)
}

// DashboardUsecase resolves the business an authenticated owner manages.
type DashboardUsecase interface {
	// StoreForUser returns the store of the user's business, ErrForbidden when
	// the user does not own one.
	StoreForUser(ctx context.Context, userID string) (BusinessStore, error)

	// Notifications returns the unread index over the store's feed.
	Notifications(store BusinessStore) NotificationIndex
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a profile.
type RegisterInput struct {
	Name  string
	Phone *string
	Role  entity.Role
}

// UpdateProfileInput lists the user fields a profile edit may change. Nil
// fields are left as they are.
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Location *string
}
