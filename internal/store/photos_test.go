package store

import (
	"errors"
	"testing"
)

func TestAddPhotoAppendsToEnd(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "externo", "Trilha", "")

	first := mustAddPhoto(t, s, album.ID, "/static/uploads/1.jpg")
	second := mustAddPhoto(t, s, album.ID, "/static/uploads/2.jpg")
	third := mustAddPhoto(t, s, album.ID, "/static/uploads/3.jpg")

	if first.DisplayOrder != 0 || second.DisplayOrder != 1 || third.DisplayOrder != 2 {
		t.Errorf("Expected orders 0,1,2, got %d,%d,%d",
			first.DisplayOrder, second.DisplayOrder, third.DisplayOrder)
	}
	if first.Category != "externo" {
		t.Errorf("Expected denormalized category, got %q", first.Category)
	}

	if _, err := s.AddPhoto("missing", "/x.jpg", "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing album, got %v", err)
	}
	if _, err := s.AddPhoto(album.ID, "", "", ""); !IsValidation(err) {
		t.Errorf("Expected ValidationError for empty url, got %v", err)
	}
}

func TestDisplayOrderContinuesAfterFailure(t *testing.T) {
	// When a mid-batch upload fails no row is written for it, and the
	// next success simply takes the next slot.
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "externo", "Trilha", "")

	mustAddPhoto(t, s, album.ID, "/static/uploads/1.jpg")
	// File 2 failed at the file store: no AddPhoto call is made.
	third := mustAddPhoto(t, s, album.ID, "/static/uploads/3.jpg")

	if third.DisplayOrder != 1 {
		t.Errorf("Expected order to continue at 1, got %d", third.DisplayOrder)
	}
	photos, _ := s.ListPhotos(album.ID)
	if len(photos) != 2 {
		t.Errorf("Expected 2 photo rows, got %d", len(photos))
	}
}

func TestReorderPhotos(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "eventos", "Formatura", "")

	a := mustAddPhoto(t, s, album.ID, "/a.jpg")
	b := mustAddPhoto(t, s, album.ID, "/b.jpg")
	c := mustAddPhoto(t, s, album.ID, "/c.jpg")

	order := []string{c.ID, a.ID, b.ID}
	if err := s.ReorderPhotos(album.ID, order); err != nil {
		t.Fatalf("ReorderPhotos failed: %v", err)
	}

	got, _ := s.ListPhotos(album.ID)
	if got[0].ID != c.ID || got[1].ID != a.ID || got[2].ID != b.ID {
		t.Errorf("Wrong order after reorder: %v, %v, %v", got[0].ID, got[1].ID, got[2].ID)
	}

	// Applying the same order again changes nothing.
	if err := s.ReorderPhotos(album.ID, order); err != nil {
		t.Fatalf("Repeated ReorderPhotos failed: %v", err)
	}
	again, _ := s.ListPhotos(album.ID)
	for i := range got {
		if got[i].ID != again[i].ID || got[i].DisplayOrder != again[i].DisplayOrder {
			t.Errorf("Reorder not idempotent at %d: %+v vs %+v", i, got[i], again[i])
		}
	}
}

func TestReorderPhotosRejectsForeignIDs(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "eventos", "Formatura", "")
	other := mustCreateAlbum(t, s, "eventos", "Outro", "")

	a := mustAddPhoto(t, s, album.ID, "/a.jpg")
	b := mustAddPhoto(t, s, album.ID, "/b.jpg")
	foreign := mustAddPhoto(t, s, other.ID, "/f.jpg")

	err := s.ReorderPhotos(album.ID, []string{b.ID, foreign.ID, a.ID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for foreign photo, got %v", err)
	}

	// The transaction rolled back: original order intact.
	got, _ := s.ListPhotos(album.ID)
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("Order changed despite failed reorder: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestFeaturedPhotos(t *testing.T) {
	s := newTestStore(t)
	published := mustCreateAlbum(t, s, "casamentos", "Published", "published")
	draft := mustCreateAlbum(t, s, "casamentos", "Draft", "")

	p1 := mustAddPhoto(t, s, published.ID, "/p1.jpg")
	p2 := mustAddPhoto(t, s, draft.ID, "/p2.jpg")

	if err := s.SetPhotoFeatured(p1.ID, true); err != nil {
		t.Fatalf("SetPhotoFeatured failed: %v", err)
	}
	if err := s.SetPhotoFeatured(p2.ID, true); err != nil {
		t.Fatalf("SetPhotoFeatured failed: %v", err)
	}

	featured, err := s.ListFeaturedPhotos(10)
	if err != nil {
		t.Fatalf("ListFeaturedPhotos failed: %v", err)
	}
	// Only the photo in the published album is exposed.
	if len(featured) != 1 || featured[0].ID != p1.ID {
		t.Errorf("Expected only the published album's photo, got %+v", featured)
	}
}

func TestDeletePhoto(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "gestantes", "Ensaio", "")
	photo := mustAddPhoto(t, s, album.ID, "/x.jpg")

	if err := s.DeletePhoto(photo.ID); err != nil {
		t.Fatalf("DeletePhoto failed: %v", err)
	}
	if err := s.DeletePhoto(photo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on repeated delete, got %v", err)
	}
}
