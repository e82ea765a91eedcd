package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

const photoColumns = `id, album_id, category, image_url, title, description, display_order, is_featured, created_at`

func scanPhoto(row interface{ Scan(...any) error }) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(&p.ID, &p.AlbumID, &p.Category, &p.ImageURL, &p.Title,
		&p.Description, &p.DisplayOrder, &p.IsFeatured, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPhotos returns the album's photos in display order.
func (s *Store) ListPhotos(albumID string) ([]models.Photo, error) {
	rows, err := s.DB.Query(`
		SELECT `+photoColumns+` FROM photos
		WHERE album_id = ?
		ORDER BY display_order ASC, created_at ASC
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

func (s *Store) GetPhoto(id string) (*models.Photo, error) {
	row := s.DB.QueryRow(`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	p, err := scanPhoto(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// ListFeaturedPhotos returns featured photos from published albums, newest
// first, for the public home page.
func (s *Store) ListFeaturedPhotos(limit int) ([]models.Photo, error) {
	rows, err := s.DB.Query(`
		SELECT p.id, p.album_id, p.category, p.image_url, p.title, p.description,
			p.display_order, p.is_featured, p.created_at
		FROM photos p
		JOIN albums a ON a.id = p.album_id
		WHERE p.is_featured = 1 AND a.status = 'published'
		ORDER BY p.created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// AddPhoto inserts a photo row for an already-uploaded image. The file must
// be stored before this is called so a storage failure never leaves an
// orphan row. The new photo is appended to the end of the album's order.
func (s *Store) AddPhoto(albumID, imageURL, title, description string) (*models.Photo, error) {
	album, err := s.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		return nil, &ValidationError{Field: "image_url", Reason: "must not be empty"}
	}

	id := uuid.New().String()
	_, err = s.DB.Exec(`
		INSERT INTO photos (id, album_id, category, image_url, title, description, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(display_order) + 1, 0) FROM photos WHERE album_id = ?),
			CURRENT_TIMESTAMP)
	`, id, albumID, album.Category, imageURL, title, description, albumID)
	if err != nil {
		return nil, err
	}
	return s.GetPhoto(id)
}

// PhotoPatch carries the editable photo metadata. Nil fields are left untouched.
type PhotoPatch struct {
	Title       *string
	Description *string
}

func (s *Store) UpdatePhoto(id string, patch PhotoPatch) error {
	photo, err := s.GetPhoto(id)
	if err != nil {
		return err
	}
	if patch.Title != nil {
		photo.Title = *patch.Title
	}
	if patch.Description != nil {
		photo.Description = *patch.Description
	}
	_, err = s.DB.Exec(`UPDATE photos SET title = ?, description = ? WHERE id = ?`,
		photo.Title, photo.Description, id)
	return err
}

func (s *Store) DeletePhoto(id string) error {
	res, err := s.DB.Exec(`DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPhotoFeatured toggles the home-page feature flag. Independent of the
// album cover.
func (s *Store) SetPhotoFeatured(id string, featured bool) error {
	res, err := s.DB.Exec(`UPDATE photos SET is_featured = ? WHERE id = ?`, featured, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderPhotos rewrites display_order so each id in orderedIDs gets its
// position index. Applied in one transaction: either the whole new order
// lands or none of it does. Every id must belong to the album.
func (s *Store) ReorderPhotos(albumID string, orderedIDs []string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, photoID := range orderedIDs {
		res, err := tx.Exec(`UPDATE photos SET display_order = ? WHERE id = ? AND album_id = ?`,
			i, photoID, albumID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("photo %s not in album %s: %w", photoID, albumID, ErrNotFound)
		}
	}

	return tx.Commit()
}
