package store

import (
	"testing"
	"time"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

// newTestStore opens a fresh in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	s.DB.SetMaxOpenConns(1)

	if err := s.InitSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { s.DB.Close() })
	return s
}

func mustCreateAlbum(t *testing.T, s *Store, category, title, status string) *models.Album {
	t.Helper()
	album, err := s.CreateAlbum(category, title, nil, status)
	if err != nil {
		t.Fatalf("Failed to create album: %v", err)
	}
	return album
}

func mustAddPhoto(t *testing.T, s *Store, albumID, imageURL string) *models.Photo {
	t.Helper()
	photo, err := s.AddPhoto(albumID, imageURL, "", "")
	if err != nil {
		t.Fatalf("Failed to add photo: %v", err)
	}
	return photo
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", value, err)
	}
	return &d
}
