package impl

import (
	"context"
	"slices"
	"sort"
	"strings"

	"tastelocal/config"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
)

// cuisineAll is the cuisine filter value that matches every business.
const cuisineAll = "all"

// discoveryService implements the DiscoveryUsecase interface.
type discoveryService struct {
	businessRepo repository.BusinessRepository
	distance     service.DistanceCalculator
	qrCode       service.QRCodeService
	reservedIDs  []string
	maxRadiusKm  float64
}

// NewDiscoveryService is the constructor for discoveryService.
func NewDiscoveryService(
	cfg *config.Config,
	businessRepo repository.BusinessRepository,
	distance service.DistanceCalculator,
	qrCode service.QRCodeService,
) usecase.DiscoveryUsecase {
	srv := &discoveryService{
		businessRepo: businessRepo,
		distance:     distance,
		qrCode:       qrCode,
	}
	if cfg.Discovery != nil {
		srv.reservedIDs = cfg.Discovery.ReservedIDs
		srv.maxRadiusKm = cfg.Discovery.MaxRadiusKm
	}

	return srv
}

// ListAll returns every business with a name, skipping placeholder documents.
func (srv *discoveryService) ListAll(ctx context.Context) ([]entity.BusinessSummary, error) {
	businesses, err := srv.businessRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	summaries := make([]entity.BusinessSummary, 0, len(businesses))
	for _, business := range businesses {
		if !srv.listable(business) {
			continue
		}
		summaries = append(summaries, business.Summary())
	}

	return summaries, nil
}

func (srv *discoveryService) Search(ctx context.Context, filter *usecase.DiscoveryFilter) ([]entity.BusinessSummary, error) {
	all, err := srv.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return all, nil
	}

	f := *filter
	if f.Near != nil && srv.maxRadiusKm > 0 && (f.RadiusKm <= 0 || f.RadiusKm > srv.maxRadiusKm) {
		f.RadiusKm = srv.maxRadiusKm
	}

	return FilterSummaries(all, &f, srv.distance), nil
}

func (srv *discoveryService) GetBusiness(ctx context.Context, businessID string) (*entity.PublicBusiness, error) {
	business, err := srv.find(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return business.Public(), nil
}

func (srv *discoveryService) ProfileQRCode(ctx context.Context, businessID string) ([]byte, error) {
	if _, err := srv.find(ctx, businessID); err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateProfileQR(businessID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

func (srv *discoveryService) find(ctx context.Context, businessID string) (*entity.Business, error) {
	if slices.Contains(srv.reservedIDs, businessID) {
		return nil, errors.WithStack(domainerrors.NotFound("business " + businessID + " not found"))
	}

	business, _, err := srv.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.WithStack(domainerrors.NotFound("business " + businessID + " not found"))
		}

		return nil, errors.Wrap(err, "failed to find business")
	}

	return business, nil
}

func (srv *discoveryService) listable(business *entity.Business) bool {
	return strings.TrimSpace(business.Name) != "" && !slices.Contains(srv.reservedIDs, business.ID)
}

// FilterSummaries applies a discovery filter to a listing. It does not modify
// its input. With a centre point, results carry their distance and are sorted
// nearest first; businesses without coordinates go last, or are dropped when a
// radius is set.
func FilterSummaries(
	summaries []entity.BusinessSummary,
	filter *usecase.DiscoveryFilter,
	distance service.DistanceCalculator,
) []entity.BusinessSummary {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	cuisine := strings.TrimSpace(filter.Cuisine)
	if strings.EqualFold(cuisine, cuisineAll) {
		cuisine = ""
	}

	out := make([]entity.BusinessSummary, 0, len(summaries))
	for _, summary := range summaries {
		if query != "" && !matchesQuery(summary, query) {
			continue
		}
		if cuisine != "" && !strings.EqualFold(strings.TrimSpace(summary.Cuisine), cuisine) {
			continue
		}
		if filter.Near != nil {
			if summary.Coordinates == nil {
				if filter.RadiusKm > 0 {
					continue
				}
			} else {
				km := distance.DistanceKm(*filter.Near, *summary.Coordinates)
				if filter.RadiusKm > 0 && km > filter.RadiusKm {
					continue
				}
				summary.DistanceKm = &km
			}
		}
		out = append(out, summary)
	}

	if filter.Near != nil {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DistanceKm, out[j].DistanceKm
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return *a < *b
			}
		})
	}

	return out
}

func matchesQuery(summary entity.BusinessSummary, query string) bool {
	return strings.Contains(strings.ToLower(summary.Name), query) ||
		strings.Contains(strings.ToLower(summary.Location), query) ||
		strings.Contains(strings.ToLower(summary.Description), query) ||
		strings.Contains(strings.ToLower(summary.Cuisine), query)
}
