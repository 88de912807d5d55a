package impl

import (
	"context"
	"testing"

	"tastelocal/config"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/infra/geo"
	"tastelocal/internal/infra/persistence/docstore"
	"tastelocal/internal/infra/persistence/memory"
	mockSvc "tastelocal/internal/mocks/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	capeTown      = entity.Coordinates{Lat: -33.9249, Lng: 18.4241}
	stellenbosch  = entity.Coordinates{Lat: -33.9321, Lng: 18.8602}
	johannesburg  = entity.Coordinates{Lat: -26.2041, Lng: 28.0473}
	discoverySeed = []*entity.Business{
		{ID: "business_kota", Name: "Kota Corner", Location: "Soweto", Cuisine: "Street Food", Coordinates: &johannesburg},
		{ID: "business_bunny", Name: "Bunny Chow Bar", Location: "Cape Town", Description: "Durban curry", Cuisine: "Indian", Coordinates: &capeTown},
		{ID: "business_wine", Name: "Vine & Braai", Location: "Stellenbosch", Cuisine: "street food", Coordinates: &stellenbosch},
		{ID: "business_pap", Name: "Pap Palace", Location: "Unknown", Cuisine: "Traditional"},
		{ID: "business_draft", Name: "   "},
		{ID: "placeholder", Name: "Placeholder Business"},
	}
)

func createTestDiscoveryService(t *testing.T) (usecase.DiscoveryUsecase, *mockSvc.MockQRCodeService) {
	t.Helper()

	repo := docstore.NewBusinessRepository(memory.New(), testLogger())
	seedBusinesses(t, repo, discoverySeed...)
	qrCode := mockSvc.NewMockQRCodeService(t)
	cfg := &config.Config{Discovery: &config.DiscoveryConfig{
		ReservedIDs: []string{"placeholder"},
		MaxRadiusKm: 100,
	}}

	return NewDiscoveryService(cfg, repo, geo.NewDistanceCalculator(), qrCode), qrCode
}

func seedBusinesses(t *testing.T, repo repository.BusinessRepository, businesses ...*entity.Business) {
	t.Helper()

	for _, seed := range businesses {
		business := entity.NewBusiness(seed.ID, "owner_"+seed.ID, testEpoch)
		business.Name = seed.Name
		business.Location = seed.Location
		business.Description = seed.Description
		business.Cuisine = seed.Cuisine
		business.Coordinates = seed.Coordinates
		require.NoError(t, repo.Create(context.Background(), business))
	}
}

func summaryIDs(summaries []entity.BusinessSummary) []string {
	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		ids = append(ids, summary.ID)
	}

	return ids
}

func TestDiscoveryService_ListAllSkipsUnlisted(t *testing.T) {
	srv, _ := createTestDiscoveryService(t)

	summaries, err := srv.ListAll(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"business_kota", "business_bunny", "business_wine", "business_pap"},
		summaryIDs(summaries),
	)
}

func TestDiscoveryService_Search(t *testing.T) {
	srv, _ := createTestDiscoveryService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter *usecase.DiscoveryFilter
		want   []string
	}{
		{
			name:   "query matches description case-insensitively",
			filter: &usecase.DiscoveryFilter{Query: "DURBAN"},
			want:   []string{"business_bunny"},
		},
		{
			name:   "query matches location",
			filter: &usecase.DiscoveryFilter{Query: "soweto"},
			want:   []string{"business_kota"},
		},
		{
			name:   "query matches cuisine",
			filter: &usecase.DiscoveryFilter{Query: "tradition"},
			want:   []string{"business_pap"},
		},
		{
			name:   "cuisine ignores case",
			filter: &usecase.DiscoveryFilter{Cuisine: "Street Food"},
			want:   []string{"business_kota", "business_wine"},
		},
		{
			name:   "radius is clamped to the configured maximum",
			filter: &usecase.DiscoveryFilter{Near: &capeTown, RadiusKm: 5000},
			want:   []string{"business_bunny", "business_wine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := srv.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, summaryIDs(summaries))
		})
	}
}

func TestFilterSummaries_DistanceOrdering(t *testing.T) {
	summaries := []entity.BusinessSummary{
		{ID: "far", Name: "Far", Coordinates: &johannesburg},
		{ID: "none", Name: "Nowhere"},
		{ID: "near", Name: "Near", Coordinates: &stellenbosch},
		{ID: "here", Name: "Here", Coordinates: &capeTown},
	}
	distance := geo.NewDistanceCalculator()

	out := FilterSummaries(summaries, &usecase.DiscoveryFilter{Cuisine: "All", Near: &capeTown}, distance)
	assert.Equal(t, []string{"here", "near", "far", "none"}, summaryIDs(out))
	require.NotNil(t, out[0].DistanceKm)
	assert.InDelta(t, 0, *out[0].DistanceKm, 0.001)
	require.NotNil(t, out[1].DistanceKm)
	assert.InDelta(t, 40, *out[1].DistanceKm, 3)
	assert.Nil(t, out[3].DistanceKm)

	out = FilterSummaries(summaries, &usecase.DiscoveryFilter{Near: &capeTown, RadiusKm: 50}, distance)
	assert.Equal(t, []string{"here", "near"}, summaryIDs(out))

	assert.Nil(t, summaries[0].DistanceKm, "input must not be modified")
}

func TestDiscoveryService_GetBusiness(t *testing.T) {
	srv, _ := createTestDiscoveryService(t)
	ctx := context.Background()

	public, err := srv.GetBusiness(ctx, "business_kota")
	require.NoError(t, err)
	assert.Equal(t, "Kota Corner", public.Name)

	_, err = srv.GetBusiness(ctx, "business_missing")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = srv.GetBusiness(ctx, "placeholder")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestDiscoveryService_ProfileQRCode(t *testing.T) {
	srv, qrCode := createTestDiscoveryService(t)
	ctx := context.Background()

	png := []byte{0x89, 'P', 'N', 'G'}
	qrCode.EXPECT().GenerateProfileQR("business_pap").Return(png, nil).Once()

	got, err := srv.ProfileQRCode(ctx, "business_pap")
	require.NoError(t, err)
	assert.Equal(t, png, got)

	_, err = srv.ProfileQRCode(ctx, "business_missing")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
