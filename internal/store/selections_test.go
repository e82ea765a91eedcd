package store

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func enableClient(t *testing.T, s *Store, albumID, pin string, limit *int) {
	t.Helper()
	err := s.UpdateClientConfig(albumID, ClientConfig{Enabled: true, PIN: pin, SelectionLimit: limit})
	if err != nil {
		t.Fatalf("UpdateClientConfig failed: %v", err)
	}
}

func TestUpdateClientConfigRequiresPIN(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")

	err := s.UpdateClientConfig(album.ID, ClientConfig{Enabled: true})
	if !IsValidation(err) {
		t.Fatalf("Expected ValidationError when enabling without PIN, got %v", err)
	}

	// Once a PIN is set, re-enabling without a new one keeps the old hash.
	enableClient(t, s, album.ID, "4821", nil)
	if err := s.UpdateClientConfig(album.ID, ClientConfig{Enabled: true}); err != nil {
		t.Fatalf("Re-enable with stored PIN failed: %v", err)
	}
	ok, err := s.VerifyAlbumPIN(album.ID, "4821")
	if err != nil || !ok {
		t.Errorf("Expected stored PIN to still verify, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateClientConfigLimitValidation(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")

	err := s.UpdateClientConfig(album.ID, ClientConfig{Enabled: true, PIN: "4821", SelectionLimit: intPtr(0)})
	if !IsValidation(err) {
		t.Errorf("Expected ValidationError for limit 0, got %v", err)
	}
}

func TestVerifyAlbumPIN(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")
	enableClient(t, s, album.ID, "4821", nil)

	ok, err := s.VerifyAlbumPIN(album.ID, "4821")
	if err != nil || !ok {
		t.Errorf("Expected correct PIN to verify, got ok=%v err=%v", ok, err)
	}
	ok, err = s.VerifyAlbumPIN(album.ID, "0000")
	if err != nil || ok {
		t.Errorf("Expected wrong PIN to fail, got ok=%v err=%v", ok, err)
	}

	// A disabled album never unlocks, even with the right PIN.
	if err := s.UpdateClientConfig(album.ID, ClientConfig{Enabled: false}); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	ok, err = s.VerifyAlbumPIN(album.ID, "4821")
	if err != nil || ok {
		t.Errorf("Expected disabled album to reject PIN, got ok=%v err=%v", ok, err)
	}

	if _, err := s.VerifyAlbumPIN("missing", "4821"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing album, got %v", err)
	}
}

func TestToggleSelectionCap(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")
	enableClient(t, s, album.ID, "4821", intPtr(2))

	p1 := mustAddPhoto(t, s, album.ID, "/1.jpg")
	p2 := mustAddPhoto(t, s, album.ID, "/2.jpg")
	p3 := mustAddPhoto(t, s, album.ID, "/3.jpg")

	for _, p := range []string{p1.ID, p2.ID} {
		selected, err := s.ToggleSelection(album.ID, p)
		if err != nil || !selected {
			t.Fatalf("Toggle on %s: selected=%v err=%v", p, selected, err)
		}
	}

	if _, err := s.ToggleSelection(album.ID, p3.ID); !errors.Is(err, ErrCapReached) {
		t.Fatalf("Expected ErrCapReached at the limit, got %v", err)
	}

	// Removing is always allowed at the cap, and frees a slot.
	selected, err := s.ToggleSelection(album.ID, p1.ID)
	if err != nil || selected {
		t.Fatalf("Toggle off at cap: selected=%v err=%v", selected, err)
	}
	selected, err = s.ToggleSelection(album.ID, p3.ID)
	if err != nil || !selected {
		t.Fatalf("Toggle after freeing slot: selected=%v err=%v", selected, err)
	}

	count, err := s.CountSelections(album.ID)
	if err != nil || count != 2 {
		t.Errorf("Expected 2 selections, got %d (err=%v)", count, err)
	}
}

func TestToggleSelectionUnlimited(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "eventos", "Festa", "published")
	enableClient(t, s, album.ID, "1111", nil)

	for i := 0; i < 5; i++ {
		p := mustAddPhoto(t, s, album.ID, "/x.jpg")
		if selected, err := s.ToggleSelection(album.ID, p.ID); err != nil || !selected {
			t.Fatalf("Toggle %d: selected=%v err=%v", i, selected, err)
		}
	}
	count, _ := s.CountSelections(album.ID)
	if count != 5 {
		t.Errorf("Expected 5 selections with no limit, got %d", count)
	}
}

func TestSubmitSelections(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")
	enableClient(t, s, album.ID, "4821", nil)
	photo := mustAddPhoto(t, s, album.ID, "/1.jpg")

	// Nothing selected yet: submit is rejected.
	if _, err := s.SubmitSelections(album.ID); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("Expected ErrEmptySelection, got %v", err)
	}

	if _, err := s.ToggleSelection(album.ID, photo.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	stamp, err := s.SubmitSelections(album.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if stamp.IsZero() {
		t.Fatal("Expected a submission timestamp")
	}

	// Submitted albums are read only.
	if _, err := s.ToggleSelection(album.ID, photo.ID); !errors.Is(err, ErrAlbumSubmitted) {
		t.Errorf("Expected ErrAlbumSubmitted after submit, got %v", err)
	}

	// A repeated submit returns the same stamp without error.
	again, err := s.SubmitSelections(album.ID)
	if err != nil {
		t.Fatalf("Repeated submit failed: %v", err)
	}
	if !again.Equal(stamp) {
		t.Errorf("Expected same timestamp on repeat, got %v vs %v", again, stamp)
	}

	if _, err := s.SubmitSelections("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing album, got %v", err)
	}
}

func TestReopenAlbumKeepsSelections(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "casamentos", "Ana & Bruno", "published")
	enableClient(t, s, album.ID, "4821", nil)
	p1 := mustAddPhoto(t, s, album.ID, "/1.jpg")
	p2 := mustAddPhoto(t, s, album.ID, "/2.jpg")

	s.ToggleSelection(album.ID, p1.ID)
	if _, err := s.SubmitSelections(album.ID); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := s.ReopenAlbum(album.ID); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}

	got, err := s.GetAlbum(album.ID)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if got.ClientSubmittedAt != nil {
		t.Errorf("Expected cleared submission stamp, got %v", got.ClientSubmittedAt)
	}

	// The earlier selection survived and new toggles are accepted again.
	ids, _ := s.SelectedPhotoIDs(album.ID)
	if !ids[p1.ID] {
		t.Error("Expected existing selection to survive reopen")
	}
	if selected, err := s.ToggleSelection(album.ID, p2.ID); err != nil || !selected {
		t.Errorf("Toggle after reopen: selected=%v err=%v", selected, err)
	}

	if err := s.ReopenAlbum("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing album, got %v", err)
	}
}

func TestListSelectionsJoinsPhotoData(t *testing.T) {
	s := newTestStore(t)
	album := mustCreateAlbum(t, s, "gestantes", "Ensaio", "published")
	enableClient(t, s, album.ID, "9999", nil)
	photo := mustAddPhoto(t, s, album.ID, "/static/uploads/abc.jpg")

	s.ToggleSelection(album.ID, photo.ID)

	selections, err := s.ListSelections(album.ID)
	if err != nil {
		t.Fatalf("ListSelections failed: %v", err)
	}
	if len(selections) != 1 {
		t.Fatalf("Expected 1 selection, got %d", len(selections))
	}
	if selections[0].PhotoID != photo.ID || selections[0].ImageURL != "/static/uploads/abc.jpg" {
		t.Errorf("Unexpected selection row: %+v", selections[0])
	}
}
