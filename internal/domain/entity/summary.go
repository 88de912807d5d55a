package entity

// BusinessSummary is the public card shown in discovery listings.
type BusinessSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Cuisine     string       `json:"cuisine,omitempty"`
	Phone       string       `json:"phone"`
	Rating      float64      `json:"rating"`
	TotalOrders int          `json:"totalOrders"`
	CoverImage  string       `json:"coverImage,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	DistanceKm  *float64     `json:"distanceKm,omitempty"`
}

// Summary projects the aggregate onto its public card. The cover image is the
// newest photo in the gallery.
func (b *Business) Summary() BusinessSummary {
	summary := BusinessSummary{
		ID:          b.ID,
		Name:        b.Name,
		Location:    b.Location,
		Description: b.Description,
		Cuisine:     b.Cuisine,
		Phone:       b.Phone,
		Rating:      b.Rating,
		TotalOrders: b.TotalOrders,
		Coordinates: b.Coordinates,
	}
	for _, m := range b.Media {
		if m.Type == MediaTypePhoto && m.URL != "" {
			summary.CoverImage = m.URL

			break
		}
	}

	return summary
}

// PublicBusiness is what a consumer sees on a business profile page: no
// orders, no notifications, only available menu items and published posts.
type PublicBusiness struct {
	BusinessSummary

	Menu  []MenuItem      `json:"menu"`
	Hours []BusinessHours `json:"hours"`
	Media []MediaItem     `json:"media"`
	Blog  []BlogPost      `json:"blog"`
}

// Public projects the aggregate onto its public profile.
func (b *Business) Public() *PublicBusiness {
	public := &PublicBusiness{
		BusinessSummary: b.Summary(),
		Menu:            make([]MenuItem, 0, len(b.Menu)),
		Hours:           b.Hours,
		Media:           b.Media,
		Blog:            make([]BlogPost, 0, len(b.Blog)),
	}
	for _, item := range b.Menu {
		if item.Available {
			public.Menu = append(public.Menu, item)
		}
	}
	for _, post := range b.Blog {
		if post.Published {
			public.Blog = append(public.Blog, post)
		}
	}

	return public
}
