package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/mutation"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *profileService) loggerFrom(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the profile of a newly signed up identity. Business owners
// get their business first so that businessId always names an existing
// document.
func (srv *profileService) Register(ctx context.Context, identity *service.Identity, input *usecase.RegisterInput) (*entity.UserProfile, error) {
	if identity == nil || identity.UserID == "" {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.WithStack(domainerrors.Validation("name is required"))
	}
	if !input.Role.IsValid() {
		return nil, errors.WithStack(domainerrors.Validation("unknown role " + string(input.Role)))
	}

	if _, err := srv.userRepo.FindByID(ctx, identity.UserID); err == nil {
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	} else if !errors.Is(err, repository.ErrDocumentNotFound) {
		return nil, errors.Wrap(err, "failed to look up user")
	}

	now := srv.now().UTC()
	profile := &entity.UserProfile{
		ID:            identity.UserID,
		Name:          name,
		Email:         identity.Email,
		Phone:         trimmedOrNil(input.Phone),
		JoinedDate:    now,
		Role:          input.Role,
		EmailVerified: identity.EmailVerified,
	}

	if input.Role == entity.RoleBusinessOwner {
		business := entity.NewBusiness(mutation.GenerateID(mutation.PrefixBusiness), identity.UserID, now)
		if profile.Phone != nil {
			business.Phone = *profile.Phone
		}
		if err := srv.businessRepo.Create(ctx, business); err != nil {
			return nil, errors.Wrap(err, "failed to create business")
		}
		profile.BusinessID = &business.ID
	}

	if err := srv.userRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDocumentExists) {
			return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.loggerFrom(ctx).Info("Registered user",
		slog.String("user_id", profile.ID),
		slog.String("role", profile.Role.String()),
	)

	return profile, nil
}

// GetProfile retrieves the profile of one identity.
func (srv *profileService) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	profile, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return profile, nil
}

// UpdateProfile changes name, phone or location. An empty phone or location
// clears the field.
func (srv *profileService) UpdateProfile(ctx context.Context, userID string, input *usecase.UpdateProfileInput) (*entity.UserProfile, error) {
	fields := document.Map{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.WithStack(domainerrors.Validation("name cannot be empty"))
		}
		fields[entity.UserFieldName] = name
	}
	if input.Phone != nil {
		fields[entity.UserFieldPhone] = nullable(input.Phone)
	}
	if input.Location != nil {
		fields[entity.UserFieldLocation] = nullable(input.Location)
	}
	if len(fields) == 0 {
		return nil, errors.WithStack(domainerrors.Validation("nothing to update"))
	}

	return srv.update(ctx, userID, fields)
}

func (srv *profileService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*entity.UserProfile, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return nil, errors.WithStack(domainerrors.Validation("avatar url is required"))
	}

	return srv.update(ctx, userID, document.Map{entity.UserFieldAvatar: avatarURL})
}

// SyncEmailVerification copies the verification flag reported by the identity
// provider.
func (srv *profileService) SyncEmailVerification(ctx context.Context, userID string, verified bool) (*entity.UserProfile, error) {
	return srv.update(ctx, userID, document.Map{entity.UserFieldEmailVerified: verified})
}

func (srv *profileService) update(ctx context.Context, userID string, fields document.Map) (*entity.UserProfile, error) {
	if err := srv.userRepo.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.WithStack(domainerrors.NewWriteError(err, "user "+userID))
	}

	return srv.GetProfile(ctx, userID)
}

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	userRepo repository.UserRepository
	registry usecase.StoreRegistry
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(userRepo repository.UserRepository, registry usecase.StoreRegistry) usecase.DashboardUsecase {
	return &dashboardService{
		userRepo: userRepo,
		registry: registry,
	}
}

func (srv *dashboardService) StoreForUser(ctx context.Context, userID string) (usecase.BusinessStore, error) {
	profile, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !profile.IsBusinessOwner() {
		return nil, errors.WithStack(domainerrors.ErrForbidden.WithDetails("only business owners have a dashboard"))
	}

	return srv.registry.Get(ctx, *profile.BusinessID)
}

func (srv *dashboardService) Notifications(store usecase.BusinessStore) usecase.NotificationIndex {
	return NewNotificationIndex(store)
}

// trimmedOrNil returns nil for a missing or blank value.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// nullable maps a blank value to an explicit null so that the field is cleared.
func nullable(s *string) any {
	if v := trimmedOrNil(s); v != nil {
		return *v
	}

	return nil
}
