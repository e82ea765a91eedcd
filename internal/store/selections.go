package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

// ClientConfig is the proofing configuration an admin sets on an album.
type ClientConfig struct {
	Enabled        bool
	PIN            string // empty = keep the current PIN
	SelectionLimit *int
}

// UpdateClientConfig enables or disables client proofing for an album.
// Enabling requires a PIN: either a new one in cfg.PIN or one already set.
func (s *Store) UpdateClientConfig(albumID string, cfg ClientConfig) error {
	album, err := s.GetAlbum(albumID)
	if err != nil {
		return err
	}

	if cfg.Enabled && cfg.PIN == "" && album.ClientPINHash == "" {
		return &ValidationError{Field: "client_pin", Reason: "required when client access is enabled"}
	}
	if cfg.SelectionLimit != nil && *cfg.SelectionLimit < 1 {
		return &ValidationError{Field: "selection_limit", Reason: "must be a positive number"}
	}

	pinHash := album.ClientPINHash
	if cfg.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.PIN), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		pinHash = string(hash)
	}

	var limit any
	if cfg.SelectionLimit != nil {
		limit = *cfg.SelectionLimit
	}

	_, err = s.DB.Exec(`
		UPDATE albums SET client_enabled = ?, client_pin_hash = ?, selection_limit = ? WHERE id = ?
	`, cfg.Enabled, pinHash, limit, albumID)
	return err
}

// VerifyAlbumPIN checks an unlock attempt against the stored hash. The hash
// never leaves the store; callers only learn a boolean.
func (s *Store) VerifyAlbumPIN(albumID, attempt string) (bool, error) {
	var enabled bool
	var hash string
	err := s.DB.QueryRow(`SELECT client_enabled, client_pin_hash FROM albums WHERE id = ?`, albumID).
		Scan(&enabled, &hash)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	if !enabled || hash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) == nil, nil
}

// ToggleSelection flips a photo's selected state for the client. Removing is
// always permitted; adding is checked against the album's selection limit
// inside the same transaction, so the cap holds even under racing requests.
// Returns whether the photo ended up selected.
func (s *Store) ToggleSelection(albumID, photoID string) (selected bool, err error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var submitted sql.NullTime
	var limit sql.NullInt64
	err = tx.QueryRow(`SELECT client_submitted_at, selection_limit FROM albums WHERE id = ?`, albumID).
		Scan(&submitted, &limit)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	if submitted.Valid {
		return false, ErrAlbumSubmitted
	}

	res, err := tx.Exec(`DELETE FROM selections WHERE album_id = ? AND photo_id = ?`, albumID, photoID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		// Was selected; the delete is the toggle.
		return false, tx.Commit()
	}

	if limit.Valid {
		var count int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM selections WHERE album_id = ?`, albumID).Scan(&count); err != nil {
			return false, err
		}
		if int64(count) >= limit.Int64 {
			return false, ErrCapReached
		}
	}

	// FK on photo_id rejects photos that were deleted meanwhile.
	_, err = tx.Exec(`
		INSERT INTO selections (id, album_id, photo_id, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.New().String(), albumID, photoID)
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// ListSelections returns the album's selections joined with photo data for
// the admin view.
func (s *Store) ListSelections(albumID string) ([]models.Selection, error) {
	rows, err := s.DB.Query(`
		SELECT sel.id, sel.album_id, sel.photo_id, sel.created_at, p.image_url, p.title
		FROM selections sel
		JOIN photos p ON p.id = sel.photo_id
		WHERE sel.album_id = ?
		ORDER BY sel.created_at ASC
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []models.Selection
	for rows.Next() {
		var sel models.Selection
		if err := rows.Scan(&sel.ID, &sel.AlbumID, &sel.PhotoID, &sel.CreatedAt, &sel.ImageURL, &sel.Title); err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	return selections, rows.Err()
}

// SelectedPhotoIDs returns the set of currently selected photo ids.
func (s *Store) SelectedPhotoIDs(albumID string) (map[string]bool, error) {
	rows, err := s.DB.Query(`SELECT photo_id FROM selections WHERE album_id = ?`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (s *Store) CountSelections(albumID string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM selections WHERE album_id = ?`, albumID).Scan(&count)
	return count, err
}

// SubmitSelections finalizes the client's selection, stamping the album.
// Requires at least one selected photo. A second submit on an already
// submitted album is a no-op that returns the existing timestamp, so a
// double-click never produces two different stamps.
func (s *Store) SubmitSelections(albumID string) (time.Time, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return time.Time{}, err
	}
	defer tx.Rollback()

	var submitted sql.NullTime
	err = tx.QueryRow(`SELECT client_submitted_at FROM albums WHERE id = ?`, albumID).Scan(&submitted)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if submitted.Valid {
		return submitted.Time, nil
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM selections WHERE album_id = ?`, albumID).Scan(&count); err != nil {
		return time.Time{}, err
	}
	if count == 0 {
		return time.Time{}, ErrEmptySelection
	}

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := tx.Exec(`UPDATE albums SET client_submitted_at = ? WHERE id = ?`, now, albumID); err != nil {
		return time.Time{}, err
	}
	return now, tx.Commit()
}

// ReopenAlbum clears the submission stamp so the client can select again.
// Existing selections are kept. This is the only way the stamp is cleared;
// no client-facing operation touches it.
func (s *Store) ReopenAlbum(albumID string) error {
	res, err := s.DB.Exec(`UPDATE albums SET client_submitted_at = NULL WHERE id = ?`, albumID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
