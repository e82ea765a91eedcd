package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/RyanHLA/iasminsantos/internal/models"
	"github.com/RyanHLA/iasminsantos/internal/store"
)

type HomeHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index renders the landing page: hero, category grid, featured photos,
// about section.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	hero, err := h.Store.GetSectionImage(store.SectionHero)
	if err != nil {
		http.Error(w, "Error fetching page content", http.StatusInternalServerError)
		return
	}
	about, err := h.Store.GetSectionImage(store.SectionAbout)
	if err != nil {
		http.Error(w, "Error fetching page content", http.StatusInternalServerError)
		return
	}
	gallery, err := h.Store.ListSiteImages(store.SectionGallery)
	if err != nil {
		http.Error(w, "Error fetching page content", http.StatusInternalServerError)
		return
	}
	featured, err := h.Store.ListFeaturedPhotos(12)
	if err != nil {
		http.Error(w, "Error fetching photos", http.StatusInternalServerError)
		return
	}

	// Category tiles fall back to the newest published cover in each category.
	covers := make(map[string]string)
	for _, c := range models.Categories {
		url, err := h.Store.CategoryCover(c.ID)
		if err != nil {
			http.Error(w, "Error fetching covers", http.StatusInternalServerError)
			return
		}
		covers[c.ID] = url
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	publicSession, _ := h.SessionStore.Get(r, "public-session")
	adminSession, _ := h.SessionStore.Get(r, "admin-session")
	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	data := map[string]interface{}{
		"Hero":           hero,
		"About":          about,
		"Gallery":        gallery,
		"Featured":       featured,
		"Categories":     models.Categories,
		"CategoryCovers": covers,
		"Flashes":        GetFlash(publicSession),
		"IsAdmin":        isAdmin,
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

// CategoryAlbums lists the published albums of one category, most recent
// event first. Draft albums are invisible here.
func (h *HomeHandler) CategoryAlbums(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !models.ValidCategory(category) {
		http.NotFound(w, r)
		return
	}

	albums, err := h.Store.ListAlbums(store.AlbumFilter{
		Category: category,
		Status:   models.AlbumStatusPublished,
	})
	if err != nil {
		http.Error(w, "Error fetching albums", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("category.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Category":      category,
		"CategoryLabel": models.CategoryLabel(category),
		"Albums":        albums,
	}
	tmpl.Execute(w, data)
}

// AlbumPhotos shows one published album's photos in display order.
func (h *HomeHandler) AlbumPhotos(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("albumID")

	album, err := h.Store.GetAlbum(albumID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching album", http.StatusInternalServerError)
		return
	}
	if album.Status != models.AlbumStatusPublished {
		// Drafts are not public, even with a direct link.
		http.NotFound(w, r)
		return
	}

	photos, err := h.Store.ListPhotos(albumID)
	if err != nil {
		http.Error(w, "Error fetching photos", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("album.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Album":  album,
		"Photos": photos,
	}
	tmpl.Execute(w, data)
}
