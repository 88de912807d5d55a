package entity

import (
	"time"

	"tastelocal/internal/document"
)

// MediaType distinguishes photos from videos in a business gallery.
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

// IsValid checks if the MediaType is a valid value.
func (t MediaType) IsValid() bool {
	return t == MediaTypePhoto || t == MediaTypeVideo
}

// MediaItem is a photo or video in a business gallery.
type MediaItem struct {
	ID          string    `json:"id" firestore:"id"`
	Type        MediaType `json:"type" firestore:"type"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	URL         string    `json:"url" firestore:"url"`
	Thumbnail   *string   `json:"thumbnail,omitempty" firestore:"thumbnail,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt" firestore:"uploadedAt"`
}

// Document encodes the media item.
func (m MediaItem) Document() document.Map {
	return document.Map{
		"id":          m.ID,
		"type":        string(m.Type),
		"title":       m.Title,
		"description": m.Description,
		"url":         m.URL,
		"thumbnail":   document.Optional(m.Thumbnail),
		"uploadedAt":  m.UploadedAt,
	}
}
