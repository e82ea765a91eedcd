package models

import (
	"time"
)

// Category is one of the fixed service types the studio offers.
// Categories are not stored as rows; they only partition albums.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Categories = []Category{
	{ID: "casamentos", Label: "Casamentos"},
	{ID: "gestantes", Label: "Gestantes"},
	{ID: "15-anos", Label: "15 Anos"},
	{ID: "pre-wedding", Label: "Pré-Wedding"},
	{ID: "externo", Label: "Externo"},
	{ID: "eventos", Label: "Eventos"},
}

// ValidCategory reports whether id names one of the fixed categories.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label for a category id, or the id
// itself if it is unknown (legacy rows).
func CategoryLabel(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

const (
	AlbumStatusDraft     = "draft"
	AlbumStatusPublished = "published"
)

type Album struct {
	ID            string     `json:"id"`
	Category      string     `json:"category"`
	Title         string     `json:"title"`
	EventDate     *time.Time `json:"event_date"`
	Status        string     `json:"status"` // "draft", "published"
	CoverImageURL string     `json:"cover_image_url"`

	// Client proofing configuration. The PIN itself is stored only as a
	// bcrypt hash and never leaves the store.
	ClientEnabled     bool       `json:"client_enabled"`
	ClientPINHash     string     `json:"-"`
	SelectionLimit    *int       `json:"selection_limit"`
	ClientSubmittedAt *time.Time `json:"client_submitted_at"`

	CreatedAt time.Time `json:"created_at"`
}

// Submitted reports whether the client has finalized their selection.
// Once set the album is read-only for the proofing flow until an admin
// reopens it.
func (a *Album) Submitted() bool {
	return a.ClientSubmittedAt != nil
}

type Photo struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	Category     string    `json:"category"` // denormalized from the album
	ImageURL     string    `json:"image_url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
}

// Selection marks one photo as a client favorite within one album.
type Selection struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"album_id"`
	PhotoID   string    `json:"photo_id"`
	CreatedAt time.Time `json:"created_at"`

	// Joined for admin display convenience
	ImageURL string `json:"image_url,omitempty"`
	Title    string `json:"title,omitempty"`
}

// SiteImage is a managed image for a fixed page section of the home page.
type SiteImage struct {
	ID           string    `json:"id"`
	Section      string    `json:"section"` // "hero", "about", "gallery"
	ImageURL     string    `json:"image_url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash
}
