package entity

import (
	"time"

	"tastelocal/internal/document"
)

// BlogPost is an article published on a business profile.
// UpdatedAt is never earlier than CreatedAt.
type BlogPost struct {
	ID        string    `json:"id" firestore:"id"`
	Title     string    `json:"title" firestore:"title"`
	Content   string    `json:"content" firestore:"content"`
	Excerpt   string    `json:"excerpt" firestore:"excerpt"`
	Image     *string   `json:"image,omitempty" firestore:"image,omitempty"`
	Author    string    `json:"author" firestore:"author"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	Published bool      `json:"published" firestore:"published"`
}

// Document encodes the post.
func (p BlogPost) Document() document.Map {
	return document.Map{
		"id":        p.ID,
		"title":     p.Title,
		"content":   p.Content,
		"excerpt":   p.Excerpt,
		"image":     document.Optional(p.Image),
		"author":    p.Author,
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
		"published": p.Published,
	}
}
