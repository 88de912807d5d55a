// Package entity contains the core business objects of the project: the
// business aggregate persisted as one document, its collections, and the user
// profile bound to it.
package entity

import (
	"slices"
	"time"

	"tastelocal/internal/document"
)

// Top-level fields of a business document. Mutations name the fields they touch
// so that a partial update leaves every other field alone.
const (
	FieldID            = "id"
	FieldOwnerID       = "ownerId"
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldLocation      = "location"
	FieldDescription   = "description"
	FieldCuisine       = "cuisine"
	FieldCoordinates   = "coordinates"
	FieldRating        = "rating"
	FieldTotalOrders   = "totalOrders"
	FieldCreatedAt     = "createdAt"
	FieldMenu          = "menu"
	FieldOrders        = "orders"
	FieldHours         = "hours"
	FieldNotifications = "notifications"
	FieldMedia         = "media"
	FieldBlog          = "blog"
	FieldDeletedIDs    = "deletedIds"
)

// DefaultRating is the rating a business starts with.
const DefaultRating = 4.5

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Business is the aggregate root: the complete state of one business, stored
// and fetched as a single document. Values are treated as immutable once
// published; mutations build a new Business instead of editing one in place.
type Business struct {
	ID          string       `json:"id" firestore:"id"`
	OwnerID     string       `json:"ownerId" firestore:"ownerId"`
	Name        string       `json:"name" firestore:"name"`
	Phone       string       `json:"phone" firestore:"phone"`
	Location    string       `json:"location" firestore:"location"`
	Description string       `json:"description" firestore:"description"`
	Cuisine     string       `json:"cuisine,omitempty" firestore:"cuisine"`
	Coordinates *Coordinates `json:"coordinates,omitempty" firestore:"coordinates,omitempty"`
	Rating      float64      `json:"rating" firestore:"rating"`
	TotalOrders int          `json:"totalOrders" firestore:"totalOrders"`
	CreatedAt   time.Time    `json:"createdAt" firestore:"createdAt"`

	Menu          []MenuItem      `json:"menu" firestore:"menu"`
	Orders        []Order         `json:"orders" firestore:"orders"`
	Hours         []BusinessHours `json:"hours" firestore:"hours"`
	Notifications []Notification  `json:"notifications" firestore:"notifications"`
	Media         []MediaItem     `json:"media" firestore:"media"`
	Blog          []BlogPost      `json:"blog" firestore:"blog"`

	// DeletedIDs holds, per collection field, the ids removed from it. They
	// are never handed out again.
	DeletedIDs map[string][]string `json:"-" firestore:"deletedIds"`
}

// NewBusiness returns a freshly registered business: empty collections, the
// default weekly hours and the default rating.
func NewBusiness(id, ownerID string, createdAt time.Time) *Business {
	return &Business{
		ID:            id,
		OwnerID:       ownerID,
		Rating:        DefaultRating,
		CreatedAt:     createdAt,
		Menu:          []MenuItem{},
		Orders:        []Order{},
		Hours:         DefaultHours(),
		Notifications: []Notification{},
		Media:         []MediaItem{},
		Blog:          []BlogPost{},
		DeletedIDs:    map[string][]string{},
	}
}

// Copy returns a shallow copy. Collections are shared until a mutation replaces
// them with new slices.
func (b *Business) Copy() *Business {
	out := *b

	return &out
}

// Document encodes the aggregate for the document store. Unset optional fields
// are Absent and must be cleaned before writing.
func (b *Business) Document() document.Map {
	doc := document.Map{
		FieldID:            b.ID,
		FieldOwnerID:       b.OwnerID,
		FieldName:          b.Name,
		FieldPhone:         b.Phone,
		FieldLocation:      b.Location,
		FieldDescription:   b.Description,
		FieldCuisine:       b.Cuisine,
		FieldCoordinates:   document.Absent,
		FieldRating:        b.Rating,
		FieldTotalOrders:   b.TotalOrders,
		FieldCreatedAt:     b.CreatedAt,
		FieldMenu:          encodeAll(b.Menu, MenuItem.Document),
		FieldOrders:        encodeAll(b.Orders, Order.Document),
		FieldHours:         encodeAll(b.Hours, BusinessHours.Document),
		FieldNotifications: encodeAll(b.Notifications, Notification.Document),
		FieldMedia:         encodeAll(b.Media, MediaItem.Document),
		FieldBlog:          encodeAll(b.Blog, BlogPost.Document),
		FieldDeletedIDs:    encodeDeleted(b.DeletedIDs),
	}
	if b.Coordinates != nil {
		doc[FieldCoordinates] = document.Map{"lat": b.Coordinates.Lat, "lng": b.Coordinates.Lng}
	}

	return doc
}

// DecodeBusiness builds a Business from a stored document. The document id is
// authoritative for the ID field.
func DecodeBusiness(id string, data document.Map) (*Business, error) {
	var b Business
	if err := document.Decode(data, &b); err != nil {
		return nil, err
	}
	if id != "" {
		b.ID = id
	}
	b.normalize()

	return &b, nil
}

// IsDeleted reports whether id was once removed from the collection field.
func (b *Business) IsDeleted(collection, id string) bool {
	return slices.Contains(b.DeletedIDs[collection], id)
}

// WithDeleted returns the deleted ids with id recorded under collection. The
// receiver's map is left untouched.
func (b *Business) WithDeleted(collection, id string) map[string][]string {
	out := make(map[string][]string, len(b.DeletedIDs)+1)
	for k, ids := range b.DeletedIDs {
		out[k] = ids
	}
	if !slices.Contains(out[collection], id) {
		out[collection] = append(slices.Clone(out[collection]), id)
	}

	return out
}

// normalize replaces nil collections so that encoded documents always carry
// arrays rather than nulls, and completes a partial hours table.
func (b *Business) normalize() {
	if b.Menu == nil {
		b.Menu = []MenuItem{}
	}
	if b.Orders == nil {
		b.Orders = []Order{}
	}
	b.Hours = CompleteWeek(b.Hours)
	if b.Notifications == nil {
		b.Notifications = []Notification{}
	}
	if b.Media == nil {
		b.Media = []MediaItem{}
	}
	if b.Blog == nil {
		b.Blog = []BlogPost{}
	}
	if b.DeletedIDs == nil {
		b.DeletedIDs = map[string][]string{}
	}
}

func encodeAll[T any](items []T, encode func(T) document.Map) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = encode(item)
	}

	return out
}

func encodeDeleted(deleted map[string][]string) document.Map {
	out := make(document.Map, len(deleted))
	for collection, ids := range deleted {
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		out[collection] = values
	}

	return out
}
