package entity

import (
	"testing"
	"time"

	"tastelocal/internal/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWeek(t *testing.T) {
	valid := DefaultHours()
	require.NoError(t, ValidateWeek(valid))

	closedSunday := DefaultHours()
	closedSunday[6] = BusinessHours{Day: "Sunday", Closed: true}
	assert.NoError(t, ValidateWeek(closedSunday))

	tests := []struct {
		name  string
		hours func() []BusinessHours
	}{
		{"six days", func() []BusinessHours { return DefaultHours()[:6] }},
		{"duplicate day", func() []BusinessHours {
			h := DefaultHours()
			h[1].Day = "Monday"
			return h
		}},
		{"unknown day", func() []BusinessHours {
			h := DefaultHours()
			h[0].Day = "Funday"
			return h
		}},
		{"bad time", func() []BusinessHours {
			h := DefaultHours()
			h[2].Close = "24:00"
			return h
		}},
		{"missing open time", func() []BusinessHours {
			h := DefaultHours()
			h[3].Open = ""
			return h
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateWeek(tt.hours()))
		})
	}
}

func TestBusiness_Public(t *testing.T) {
	b := NewBusiness("business_1", "owner_1", time.Now())
	b.Name = "Kota Corner"
	b.Menu = []MenuItem{
		{ID: "item_1", Name: "Kota", Available: true},
		{ID: "item_2", Name: "Sold out", Available: false},
	}
	b.Blog = []BlogPost{
		{ID: "post_1", Title: "Draft"},
		{ID: "post_2", Title: "Opening day", Published: true},
	}
	b.Orders = []Order{{ID: "order_1"}}
	b.Notifications = []Notification{{ID: "notif_1"}}
	b.Media = []MediaItem{
		{ID: "media_1", Type: MediaTypeVideo, URL: "https://video.example.com/1"},
		{ID: "media_2", Type: MediaTypePhoto, URL: "https://img.example.com/2.jpg"},
		{ID: "media_3", Type: MediaTypePhoto, URL: "https://img.example.com/3.jpg"},
	}

	public := b.Public()
	assert.Equal(t, "Kota Corner", public.Name)
	require.Len(t, public.Menu, 1)
	assert.Equal(t, "item_1", public.Menu[0].ID)
	require.Len(t, public.Blog, 1)
	assert.Equal(t, "post_2", public.Blog[0].ID)
	assert.Equal(t, "https://img.example.com/2.jpg", public.CoverImage)
	assert.Len(t, public.Hours, 7)
}

func TestBusiness_DocumentOmitsUnsetCoordinates(t *testing.T) {
	b := NewBusiness("business_1", "owner_1", time.Now())

	doc := document.CleanMap(b.Document())
	assert.NotContains(t, doc, FieldCoordinates)
	assert.Equal(t, []any{}, doc[FieldMenu])

	b.Coordinates = &Coordinates{Lat: -26.2, Lng: 28.04}
	doc = document.CleanMap(b.Document())
	assert.Equal(t, document.Map{"lat": -26.2, "lng": 28.04}, doc[FieldCoordinates])
}

func TestBusiness_CopyIsShallow(t *testing.T) {
	b := NewBusiness("business_1", "owner_1", time.Now())
	c := b.Copy()
	c.Name = "Changed"

	assert.Empty(t, b.Name)
	assert.Equal(t, "business_1", c.ID)
}

func TestUnreadNotifications(t *testing.T) {
	unread := UnreadNotifications([]Notification{
		{ID: "notif_1", Read: true},
		{ID: "notif_2"},
		{ID: "notif_3"},
	})
	require.Len(t, unread, 2)
	assert.Equal(t, "notif_2", unread[0].ID)
}

func TestDecodeBusiness_CompletesHours(t *testing.T) {
	b, err := DecodeBusiness("business_1", document.Map{"name": "Kota Corner", "ownerId": "owner_1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultHours(), b.Hours)

	b, err = DecodeBusiness("business_1", document.Map{
		"name": "Kota Corner",
		"hours": []any{
			document.Map{"day": "Friday", "open": "09:00", "close": "02:00"},
			document.Map{"day": "Funday", "open": "01:00", "close": "02:00"},
			document.Map{"day": "Friday", "open": "11:00", "close": "12:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, b.Hours, 7)
	require.NoError(t, ValidateWeek(b.Hours))
	assert.Equal(t, "Monday", b.Hours[0].Day)
	assert.Equal(t, BusinessHours{Day: "Friday", Open: "09:00", Close: "02:00"}, b.Hours[4])
}

func TestCompleteWeek_KeepsFullWeek(t *testing.T) {
	week := DefaultHours()
	week[0], week[6] = week[6], week[0]

	assert.Equal(t, week, CompleteWeek(week))
}

func TestBusiness_DeletedIDs(t *testing.T) {
	b := NewBusiness("business_1", "owner_1", time.Now())
	deleted := b.WithDeleted(FieldMenu, "item_1")

	assert.False(t, b.IsDeleted(FieldMenu, "item_1"))
	b.DeletedIDs = deleted
	assert.True(t, b.IsDeleted(FieldMenu, "item_1"))
	assert.False(t, b.IsDeleted(FieldBlog, "item_1"))

	doc := document.CleanMap(b.Document())
	assert.Equal(t, document.Map{FieldMenu: []any{"item_1"}}, doc[FieldDeletedIDs])

	decoded, err := DecodeBusiness("business_1", doc)
	require.NoError(t, err)
	assert.True(t, decoded.IsDeleted(FieldMenu, "item_1"))
}
