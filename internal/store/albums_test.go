package store

import (
	"errors"
	"testing"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

func TestCreateAlbumDefaultsToDraft(t *testing.T) {
	s := newTestStore(t)

	album, err := s.CreateAlbum("casamentos", "Ana & Pedro", nil, "")
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	if album.Status != models.AlbumStatusDraft {
		t.Errorf("Expected draft status, got %q", album.Status)
	}
	if album.ID == "" {
		t.Error("Expected a generated id")
	}
}

func TestCreateAlbumValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateAlbum("casamentos", "", nil, ""); !IsValidation(err) {
		t.Errorf("Expected ValidationError for empty title, got %v", err)
	}
	if _, err := s.CreateAlbum("nope", "Title", nil, ""); !IsValidation(err) {
		t.Errorf("Expected ValidationError for unknown category, got %v", err)
	}
	if _, err := s.CreateAlbum("eventos", "Title", nil, "archived"); !IsValidation(err) {
		t.Errorf("Expected ValidationError for bad status, got %v", err)
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetAlbum("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAlbum(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "gestantes", "Ensaio Clara", "")

	title := "Ensaio Clara e Família"
	status := models.AlbumStatusPublished
	date := datePtr(t, "2026-03-14")
	if err := s.UpdateAlbum(album.ID, AlbumPatch{Title: &title, Status: &status, EventDate: date}); err != nil {
		t.Fatalf("UpdateAlbum failed: %v", err)
	}

	got, err := s.GetAlbum(album.ID)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if got.Title != title || got.Status != status {
		t.Errorf("Patch not applied: %+v", got)
	}
	if got.EventDate == nil || !got.EventDate.Equal(*date) {
		t.Errorf("Expected event date %v, got %v", date, got.EventDate)
	}

	empty := ""
	if err := s.UpdateAlbum(album.ID, AlbumPatch{Title: &empty}); !IsValidation(err) {
		t.Errorf("Expected ValidationError for empty title, got %v", err)
	}
	if err := s.UpdateAlbum("missing", AlbumPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListAlbumsOrderingAndFilters(t *testing.T) {
	s := newTestStore(t)

	older, err := s.CreateAlbum("casamentos", "Older", datePtr(t, "2025-05-01"), models.AlbumStatusPublished)
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	newer, err := s.CreateAlbum("casamentos", "Newer", datePtr(t, "2026-01-20"), models.AlbumStatusPublished)
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	undated := mustCreateAlbum(t, s, "casamentos", "Undated", models.AlbumStatusPublished)
	mustCreateAlbum(t, s, "casamentos", "Draft", models.AlbumStatusDraft)
	mustCreateAlbum(t, s, "eventos", "Other category", models.AlbumStatusPublished)

	albums, err := s.ListAlbums(AlbumFilter{Category: "casamentos", Status: models.AlbumStatusPublished})
	if err != nil {
		t.Fatalf("ListAlbums failed: %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("Expected 3 albums, got %d", len(albums))
	}
	// Most recent event first, undated last.
	if albums[0].ID != newer.ID || albums[1].ID != older.ID || albums[2].ID != undated.ID {
		t.Errorf("Wrong order: %q, %q, %q", albums[0].Title, albums[1].Title, albums[2].Title)
	}

	empty, err := s.ListAlbums(AlbumFilter{Category: "externo"})
	if err != nil {
		t.Fatalf("ListAlbums on empty category failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no albums, got %d", len(empty))
	}
}

func TestDeleteAlbumCascades(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "eventos", "Festa", "")
	photo := mustAddPhoto(t, s, album.ID, "/static/uploads/a.jpg")

	if err := s.UpdateClientConfig(album.ID, ClientConfig{Enabled: true, PIN: "1234"}); err != nil {
		t.Fatalf("UpdateClientConfig failed: %v", err)
	}
	if _, err := s.ToggleSelection(album.ID, photo.ID); err != nil {
		t.Fatalf("ToggleSelection failed: %v", err)
	}

	if err := s.DeleteAlbum(album.ID); err != nil {
		t.Fatalf("DeleteAlbum failed: %v", err)
	}

	var photos, selections int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM photos WHERE album_id = ?`, album.ID).Scan(&photos); err != nil {
		t.Fatalf("count photos: %v", err)
	}
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM selections WHERE album_id = ?`, album.ID).Scan(&selections); err != nil {
		t.Fatalf("count selections: %v", err)
	}
	if photos != 0 || selections != 0 {
		t.Errorf("Expected cascade delete, found %d photos and %d selections", photos, selections)
	}

	// A repeated delete reports the album as gone, not success.
	if err := s.DeleteAlbum(album.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestSetAlbumCover(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "15-anos", "Beatriz", "")
	photo := mustAddPhoto(t, s, album.ID, "/static/uploads/cover.jpg")

	if err := s.SetAlbumCover(album.ID, photo.ID); err != nil {
		t.Fatalf("SetAlbumCover failed: %v", err)
	}

	got, _ := s.GetAlbum(album.ID)
	if got.CoverImageURL != photo.ImageURL {
		t.Errorf("Expected cover %q, got %q", photo.ImageURL, got.CoverImageURL)
	}

	// The photo row itself is untouched.
	p, _ := s.GetPhoto(photo.ID)
	if p.ImageURL != photo.ImageURL {
		t.Errorf("Photo mutated by cover selection: %+v", p)
	}

	other := mustCreateAlbum(t, s, "15-anos", "Other", "")
	if err := s.SetAlbumCover(other.ID, photo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for photo outside album, got %v", err)
	}
}
