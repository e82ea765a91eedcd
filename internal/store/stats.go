package store

import "database/sql"

type DashboardStats struct {
	TotalAlbums     int
	TotalPhotos     int
	AlbumsByStatus  map[string]int
	ClientAlbums    int // proofing enabled
	PendingProofs   int // enabled, not yet submitted
	SubmittedProofs int
	CategoryCounts  []CategoryAlbumCount
}

type CategoryAlbumCount struct {
	Category   string
	AlbumCount int
	PhotoCount int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		AlbumsByStatus: make(map[string]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM albums").Scan(&stats.TotalAlbums)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM photos").Scan(&stats.TotalPhotos)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM albums GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.AlbumsByStatus[status] = count
	}

	err = s.DB.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN client_submitted_at IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN client_submitted_at IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM albums WHERE client_enabled = 1
	`).Scan(&stats.ClientAlbums, &stats.PendingProofs, &stats.SubmittedProofs)
	if err != nil {
		return nil, err
	}

	catRows, err := s.DB.Query(`
		SELECT a.category, COUNT(DISTINCT a.id), COUNT(p.id)
		FROM albums a
		LEFT JOIN photos p ON p.album_id = a.id
		GROUP BY a.category
		ORDER BY COUNT(DISTINCT a.id) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var c CategoryAlbumCount
		if err := catRows.Scan(&c.Category, &c.AlbumCount, &c.PhotoCount); err != nil {
			return nil, err
		}
		stats.CategoryCounts = append(stats.CategoryCounts, c)
	}

	return stats, nil
}
