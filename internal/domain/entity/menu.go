package entity

import "tastelocal/internal/document"

// MenuItem is one dish or product on a business menu.
type MenuItem struct {
	ID          string  `json:"id" firestore:"id"`
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description" firestore:"description"`
	Price       string  `json:"price" firestore:"price"` // decimal kept as entered, e.g. "55" or "12.50"
	Category    string  `json:"category" firestore:"category"`
	Available   bool    `json:"available" firestore:"available"`
	Image       *string `json:"image,omitempty" firestore:"image,omitempty"`
}

// Document encodes the item.
func (m MenuItem) Document() document.Map {
	return document.Map{
		"id":          m.ID,
		"name":        m.Name,
		"description": m.Description,
		"price":       m.Price,
		"category":    m.Category,
		"available":   m.Available,
		"image":       document.Optional(m.Image),
	}
}
