package usecase

import (
	"context"

	"tastelocal/internal/domain/entity"
)

// DiscoveryUsecase is the read-only path consumers use to find businesses.
type DiscoveryUsecase interface {
	// ListAll returns every listable business.
	ListAll(ctx context.Context) ([]entity.BusinessSummary, error)
	// Search narrows ListAll with the filter.
	Search(ctx context.Context, filter *DiscoveryFilter) ([]entity.BusinessSummary, error)
	// GetBusiness returns the public profile of one business.
	GetBusiness(ctx context.Context, businessID string) (*entity.PublicBusiness, error)
	// ProfileQRCode renders a QR code pointing at the public profile.
	ProfileQRCode(ctx context.Context, businessID string) ([]byte, error)
}

// DiscoveryFilter narrows a listing. Zero values do not filter.
type DiscoveryFilter struct {
	// Query matches a case-insensitive substring of name, location, description
	// or cuisine.
	Query string
	// Cuisine matches the cuisine tag exactly, ignoring case. "all" does not filter.
	Cuisine string
	// Near sorts by distance and, with RadiusKm, drops businesses further away.
	Near     *entity.Coordinates
	RadiusKm float64
}

// MediaUsecase handles image uploads and gallery entries backed by blobs.
type MediaUsecase interface {
	UploadImage(ctx context.Context, businessID string, upload *ImageUpload) (string, error)
	// AddMedia uploads the file and records it at the top of the gallery.
	AddMedia(ctx context.Context, store BusinessStore, input *AddMediaInput) (entity.MediaItem, error)
	// DeleteMedia removes the gallery entry and then its blobs, best effort.
	DeleteMedia(ctx context.Context, store BusinessStore, mediaID string) error
}

// OrderUsecase places customer orders.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, businessID string, input *PlaceOrderInput) (*PlacedOrder, error)
}

// ImageUpload is an image received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AddMediaInput describes a gallery upload.
type AddMediaInput struct {
	Type        entity.MediaType
	Title       string
	Description string
	File        *ImageUpload
	// URL is used instead of File for media hosted elsewhere, such as videos.
	URL string
}

// PlaceOrderInput is a customer order as submitted.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []string
	TotalPrice    string
	Notes         *string
}

// PlacedOrder is the stored order plus the link that opens the conversation
// with the business on WhatsApp.
type PlacedOrder struct {
	Order       entity.Order `json:"order"`
	WhatsAppURL string       `json:"whatsappUrl,omitempty"`
}
