package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

const albumColumns = `id, category, title, event_date, status, cover_image_url,
	client_enabled, client_pin_hash, selection_limit, client_submitted_at, created_at`

// AlbumFilter narrows ListAlbums. Zero values mean "no filter".
type AlbumFilter struct {
	Category string
	Status   string
}

func scanAlbum(row interface{ Scan(...any) error }) (*models.Album, error) {
	var a models.Album
	var eventDate, submittedAt sql.NullTime
	var limit sql.NullInt64
	err := row.Scan(&a.ID, &a.Category, &a.Title, &eventDate, &a.Status, &a.CoverImageURL,
		&a.ClientEnabled, &a.ClientPINHash, &limit, &submittedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if eventDate.Valid {
		d := eventDate.Time
		a.EventDate = &d
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		a.ClientSubmittedAt = &t
	}
	if limit.Valid {
		l := int(limit.Int64)
		a.SelectionLimit = &l
	}
	return &a, nil
}

// ListAlbums returns albums matching the filter, most recent event first,
// albums without an event date last. An empty result is not an error.
func (s *Store) ListAlbums(filter AlbumFilter) ([]models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE 1=1`
	var args []any
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY event_date IS NULL, event_date DESC, created_at DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

func (s *Store) GetAlbum(id string) (*models.Album, error) {
	row := s.DB.QueryRow(`SELECT `+albumColumns+` FROM albums WHERE id = ?`, id)
	a, err := scanAlbum(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Store) CreateAlbum(category, title string, eventDate *time.Time, status string) (*models.Album, error) {
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !models.ValidCategory(category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if status == "" {
		status = models.AlbumStatusDraft
	}
	if status != models.AlbumStatusDraft && status != models.AlbumStatusPublished {
		return nil, &ValidationError{Field: "status", Reason: "must be draft or published"}
	}

	id := uuid.New().String()
	_, err := s.DB.Exec(`
		INSERT INTO albums (id, category, title, event_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, category, title, nullTime(eventDate), status)
	if err != nil {
		return nil, err
	}
	return s.GetAlbum(id)
}

// AlbumPatch carries the editable album fields. Nil fields are left untouched.
type AlbumPatch struct {
	Title     *string
	EventDate *time.Time
	ClearDate bool
	Status    *string
}

func (s *Store) UpdateAlbum(id string, patch AlbumPatch) error {
	album, err := s.GetAlbum(id)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		album.Title = *patch.Title
	}
	if patch.ClearDate {
		album.EventDate = nil
	} else if patch.EventDate != nil {
		album.EventDate = patch.EventDate
	}
	if patch.Status != nil {
		if *patch.Status != models.AlbumStatusDraft && *patch.Status != models.AlbumStatusPublished {
			return &ValidationError{Field: "status", Reason: "must be draft or published"}
		}
		album.Status = *patch.Status
	}

	_, err = s.DB.Exec(`
		UPDATE albums SET title = ?, event_date = ?, status = ? WHERE id = ?
	`, album.Title, nullTime(album.EventDate), album.Status, id)
	return err
}

// DeleteAlbum removes the album and, via FK cascade, all its photos and
// selections. Deleting an id that no longer exists reports ErrNotFound.
func (s *Store) DeleteAlbum(id string) error {
	res, err := s.DB.Exec(`DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAlbumCover promotes a photo's image to represent the album in listings.
// The photo itself is not mutated.
func (s *Store) SetAlbumCover(albumID, photoID string) error {
	var imageURL string
	err := s.DB.QueryRow(`SELECT image_url FROM photos WHERE id = ? AND album_id = ?`, photoID, albumID).Scan(&imageURL)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	res, err := s.DB.Exec(`UPDATE albums SET cover_image_url = ? WHERE id = ?`, imageURL, albumID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CategoryCover returns a representative cover image for a category: the
// first published album in the category that has a cover set.
func (s *Store) CategoryCover(category string) (string, error) {
	var url string
	err := s.DB.QueryRow(`
		SELECT cover_image_url FROM albums
		WHERE category = ? AND status = 'published' AND cover_image_url != ''
		ORDER BY event_date IS NULL, event_date DESC
		LIMIT 1
	`, category).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return url, err
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
