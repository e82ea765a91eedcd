package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/RyanHLA/iasminsantos/internal/models"
)

// Managed page sections of the home page. Hero and about hold a single
// image; gallery is an ordered strip.
const (
	SectionHero    = "hero"
	SectionAbout   = "about"
	SectionGallery = "gallery"
)

// ListSiteImages returns the images for one page section in display order.
func (s *Store) ListSiteImages(section string) ([]models.SiteImage, error) {
	rows, err := s.DB.Query(`
		SELECT id, section, image_url, title, description, display_order, created_at
		FROM site_images
		WHERE section = ?
		ORDER BY display_order ASC, created_at ASC
	`, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.SiteImage
	for rows.Next() {
		var img models.SiteImage
		if err := rows.Scan(&img.ID, &img.Section, &img.ImageURL, &img.Title,
			&img.Description, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetSectionImage returns the first image of a section, or nil if the
// section has none yet.
func (s *Store) GetSectionImage(section string) (*models.SiteImage, error) {
	row := s.DB.QueryRow(`
		SELECT id, section, image_url, title, description, display_order, created_at
		FROM site_images
		WHERE section = ?
		ORDER BY display_order ASC, created_at ASC
		LIMIT 1
	`, section)

	var img models.SiteImage
	err := row.Scan(&img.ID, &img.Section, &img.ImageURL, &img.Title,
		&img.Description, &img.DisplayOrder, &img.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// UpsertSectionImage replaces a section's image (hero and about hold a
// single image each) while keeping its text if none is supplied.
func (s *Store) UpsertSectionImage(section, imageURL, title, description string) error {
	if imageURL == "" {
		return &ValidationError{Field: "image_url", Reason: "must not be empty"}
	}

	existing, err := s.GetSectionImage(section)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err = s.DB.Exec(`
			UPDATE site_images SET image_url = ?, title = ?, description = ? WHERE id = ?
		`, imageURL, title, description, existing.ID)
		return err
	}

	_, err = s.DB.Exec(`
		INSERT INTO site_images (id, section, image_url, title, description, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, 0, CURRENT_TIMESTAMP)
	`, uuid.New().String(), section, imageURL, title, description)
	return err
}

// AddSiteImage appends an image to a section's strip, after the current
// last position.
func (s *Store) AddSiteImage(section, imageURL, title, description string) (*models.SiteImage, error) {
	if imageURL == "" {
		return nil, &ValidationError{Field: "image_url", Reason: "must not be empty"}
	}

	id := uuid.New().String()
	_, err := s.DB.Exec(`
		INSERT INTO site_images (id, section, image_url, title, description, display_order, created_at)
		VALUES (?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(display_order) + 1, 0) FROM site_images WHERE section = ?),
			CURRENT_TIMESTAMP)
	`, id, section, imageURL, title, description, section)
	if err != nil {
		return nil, err
	}

	row := s.DB.QueryRow(`
		SELECT id, section, image_url, title, description, display_order, created_at
		FROM site_images WHERE id = ?
	`, id)
	var img models.SiteImage
	if err := row.Scan(&img.ID, &img.Section, &img.ImageURL, &img.Title,
		&img.Description, &img.DisplayOrder, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *Store) DeleteSiteImage(id string) error {
	res, err := s.DB.Exec(`DELETE FROM site_images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
