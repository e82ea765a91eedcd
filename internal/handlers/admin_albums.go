package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/RyanHLA/iasminsantos/internal/models"
	"github.com/RyanHLA/iasminsantos/internal/nav"
	"github.com/RyanHLA/iasminsantos/internal/store"
)

// navState rebuilds the gallery navigation state from the request URL, so
// the category/album screens share the transition rules in internal/nav.
// The album route carries no category; it is resolved from the album row
// before descending.
func (h *AdminHandler) navState(r *http.Request) (nav.State, error) {
	s := nav.State{}
	if category := r.URL.Query().Get("category"); category != "" {
		s = s.EnterCategory(category)
	}
	if albumID := r.PathValue("albumID"); albumID != "" {
		album, err := h.Store.GetAlbum(albumID)
		if err != nil {
			return s, err
		}
		s = s.EnterCategory(album.Category).EnterAlbum(album.ID)
	}
	return s, nil
}

// Gallery renders the admin portfolio browser at whichever navigation
// level the URL encodes: category overview, albums of a category, or the
// photos of one album.
func (h *AdminHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	state, err := h.navState(r)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching album", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")

	data := map[string]interface{}{
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
		"Level":      state.Level.String(),
		"Categories": models.Categories,
	}

	var tmplName string
	switch state.Level {
	case nav.LevelCategories:
		tmplName = "admin_gallery.html"
		counts := make(map[string]int)
		for _, c := range models.Categories {
			albums, err := h.Store.ListAlbums(store.AlbumFilter{Category: c.ID})
			if err != nil {
				http.Error(w, "Error fetching albums", http.StatusInternalServerError)
				return
			}
			counts[c.ID] = len(albums)
		}
		data["AlbumCounts"] = counts

	case nav.LevelAlbums:
		tmplName = "admin_albums.html"
		albums, err := h.Store.ListAlbums(store.AlbumFilter{Category: state.Category})
		if err != nil {
			http.Error(w, "Error fetching albums", http.StatusInternalServerError)
			return
		}
		data["Category"] = state.Category
		data["Albums"] = albums

	case nav.LevelPhotos:
		tmplName = "admin_photos.html"
		album, err := h.Store.GetAlbum(state.AlbumID)
		if err != nil {
			http.Error(w, "Error fetching album", http.StatusInternalServerError)
			return
		}
		photos, err := h.Store.ListPhotos(album.ID)
		if err != nil {
			http.Error(w, "Error fetching photos", http.StatusInternalServerError)
			return
		}
		data["Album"] = album
		data["Photos"] = photos
	}

	tmpl := h.Templates.Get(tmplName)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	category := r.FormValue("category")
	title := r.FormValue("title")
	status := r.FormValue("status")
	eventDate := parseEventDate(r.FormValue("event_date"))

	if _, err := h.Store.CreateAlbum(category, title, eventDate, status); err != nil {
		if store.IsValidation(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error creating album."})
		}
		saveAndRedirect(w, r, session, "/admin/gallery?category="+category)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Album created!"})
	saveAndRedirect(w, r, session, "/admin/gallery?category="+category)
}

func (h *AdminHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.PathValue("albumID")
	title := r.FormValue("title")
	status := r.FormValue("status")
	rawDate := r.FormValue("event_date")

	patch := store.AlbumPatch{Title: &title, Status: &status}
	if rawDate == "" {
		patch.ClearDate = true
	} else {
		patch.EventDate = parseEventDate(rawDate)
	}

	redirect := "/admin/gallery?category=" + r.FormValue("category")
	if err := h.Store.UpdateAlbum(albumID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			session.AddFlash(FlashMessage{Type: "error", Message: "Album no longer exists."})
		case store.IsValidation(err):
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		default:
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating album."})
		}
		saveAndRedirect(w, r, session, redirect)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Album updated!"})
	saveAndRedirect(w, r, session, redirect)
}

func (h *AdminHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.FormValue("id")
	redirect := "/admin/gallery?category=" + r.FormValue("category")

	if err := h.Store.DeleteAlbum(albumID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Album no longer exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting album."})
		}
		saveAndRedirect(w, r, session, redirect)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Album and all its photos deleted."})
	saveAndRedirect(w, r, session, redirect)
}

func parseEventDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
