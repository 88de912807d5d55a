package impl

import (
	"context"
	"testing"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	mockRepo "tastelocal/internal/mocks/repository"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestProfileService(t *testing.T) (*profileService, *mockRepo.MockUserRepository, *mockRepo.MockBusinessRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)
	businessRepo := mockRepo.NewMockBusinessRepository(t)

	srv := NewProfileService(userRepo, businessRepo, testLogger()).(*profileService)
	srv.now = func() time.Time { return testEpoch }

	return srv, userRepo, businessRepo
}

func strPtr(s string) *string { return &s }

func TestProfileService_RegisterCustomer(t *testing.T) {
	srv, userRepo, _ := createTestProfileService(t)
	ctx := context.Background()
	identity := &service.Identity{UserID: "uid-1", Email: "lerato@example.com", EmailVerified: true}

	userRepo.EXPECT().FindByID(ctx, "uid-1").Return(nil, errors.WithStack(repository.ErrDocumentNotFound))
	userRepo.EXPECT().Create(ctx, mock.MatchedBy(func(u *entity.UserProfile) bool {
		return u.ID == "uid-1" && u.Role == entity.RoleCustomer && u.BusinessID == nil && u.EmailVerified
	})).Return(nil)

	profile, err := srv.Register(ctx, identity, &usecase.RegisterInput{Name: " Lerato ", Phone: strPtr("  "), Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "Lerato", profile.Name)
	assert.Equal(t, "lerato@example.com", profile.Email)
	assert.Nil(t, profile.Phone)
	assert.Equal(t, testEpoch, profile.JoinedDate)
}

func TestProfileService_RegisterBusinessOwnerCreatesBusiness(t *testing.T) {
	srv, userRepo, businessRepo := createTestProfileService(t)
	ctx := context.Background()
	identity := &service.Identity{UserID: "uid-2", Email: "sipho@example.com"}

	var created *entity.Business
	userRepo.EXPECT().FindByID(ctx, "uid-2").Return(nil, errors.WithStack(repository.ErrDocumentNotFound))
	businessRepo.EXPECT().Create(ctx, mock.Anything).
		Run(func(_ context.Context, business *entity.Business) { created = business }).
		Return(nil)
	userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)

	profile, err := srv.Register(ctx, identity, &usecase.RegisterInput{
		Name: "Sipho", Phone: strPtr("082 000 0000"), Role: entity.RoleBusinessOwner,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Regexp(t, `^business_[0-9a-f-]{36}$`, created.ID)
	assert.Equal(t, "uid-2", created.OwnerID)
	assert.Equal(t, entity.DefaultHours(), created.Hours)
	assert.Equal(t, entity.DefaultRating, created.Rating)
	assert.Zero(t, created.TotalOrders)
	assert.Empty(t, created.Menu)
	assert.Equal(t, "082 000 0000", created.Phone)

	require.NotNil(t, profile.BusinessID)
	assert.Equal(t, created.ID, *profile.BusinessID)
	assert.True(t, profile.IsBusinessOwner())
}

func TestProfileService_RegisterRejects(t *testing.T) {
	srv, userRepo, _ := createTestProfileService(t)
	ctx := context.Background()
	identity := &service.Identity{UserID: "uid-3"}

	_, err := srv.Register(ctx, identity, &usecase.RegisterInput{Name: "", Role: entity.RoleCustomer})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.Register(ctx, identity, &usecase.RegisterInput{Name: "X", Role: "admin"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.Register(ctx, nil, &usecase.RegisterInput{Name: "X", Role: entity.RoleCustomer})
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	userRepo.EXPECT().FindByID(ctx, "uid-3").Return(&entity.UserProfile{ID: "uid-3"}, nil).Once()
	_, err = srv.Register(ctx, identity, &usecase.RegisterInput{Name: "X", Role: entity.RoleCustomer})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestProfileService_UpdateProfile(t *testing.T) {
	srv, userRepo, _ := createTestProfileService(t)
	ctx := context.Background()

	userRepo.EXPECT().Update(ctx, "uid-1", document.Map{
		entity.UserFieldName:     "Lerato M",
		entity.UserFieldPhone:    nil,
		entity.UserFieldLocation: "Soweto",
	}).Return(nil)
	userRepo.EXPECT().FindByID(ctx, "uid-1").Return(&entity.UserProfile{ID: "uid-1", Name: "Lerato M"}, nil)

	profile, err := srv.UpdateProfile(ctx, "uid-1", &usecase.UpdateProfileInput{
		Name: strPtr("Lerato M"), Phone: strPtr(""), Location: strPtr(" Soweto "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lerato M", profile.Name)

	_, err = srv.UpdateProfile(ctx, "uid-1", &usecase.UpdateProfileInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.UpdateProfile(ctx, "uid-1", &usecase.UpdateProfileInput{Name: strPtr(" ")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_UpdateErrors(t *testing.T) {
	srv, userRepo, _ := createTestProfileService(t)
	ctx := context.Background()

	userRepo.EXPECT().Update(ctx, "uid-9", document.Map{entity.UserFieldEmailVerified: true}).
		Return(errors.WithStack(repository.ErrDocumentNotFound))
	_, err := srv.SyncEmailVerification(ctx, "uid-9", true)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	userRepo.EXPECT().Update(ctx, "uid-1", document.Map{entity.UserFieldAvatar: "https://cdn.example.com/a.png"}).
		Return(errors.New("deadline exceeded"))
	_, err = srv.UpdateAvatar(ctx, "uid-1", "https://cdn.example.com/a.png")
	assert.True(t, domainerrors.IsWriteError(err))

	_, err = srv.UpdateAvatar(ctx, "uid-1", "")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestDashboardService_StoreForUser(t *testing.T) {
	registry, businessRepo, _ := newTestRegistry(t)
	seedRegistryBusiness(t, businessRepo, "business_a")
	userRepo := mockRepo.NewMockUserRepository(t)
	srv := NewDashboardService(userRepo, registry)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, "owner").Return(&entity.UserProfile{
		ID: "owner", Role: entity.RoleBusinessOwner, BusinessID: strPtr("business_a"),
	}, nil)
	userRepo.EXPECT().FindByID(ctx, "customer").Return(&entity.UserProfile{ID: "customer", Role: entity.RoleCustomer}, nil)
	userRepo.EXPECT().FindByID(ctx, "nobody").Return(nil, errors.WithStack(repository.ErrDocumentNotFound))

	store, err := srv.StoreForUser(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "business_a", store.ID())

	_, err = srv.StoreForUser(ctx, "customer")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = srv.StoreForUser(ctx, "nobody")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
