package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/RyanHLA/iasminsantos/internal/live"
	"github.com/RyanHLA/iasminsantos/internal/store"
)

// ClientAlbums lists every album with its proofing state: enabled or not,
// selection count, submitted badge, share link.
func (h *AdminHandler) ClientAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.Store.ListAlbums(store.AlbumFilter{})
	if err != nil {
		http.Error(w, "Error fetching albums", http.StatusInternalServerError)
		return
	}

	counts := make(map[string]int)
	for _, a := range albums {
		if !a.ClientEnabled {
			continue
		}
		n, err := h.Store.CountSelections(a.ID)
		if err != nil {
			http.Error(w, "Error fetching selections", http.StatusInternalServerError)
			return
		}
		counts[a.ID] = n
	}

	tmpl := h.Templates.Get("admin_client_albums.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Albums":          albums,
		"SelectionCounts": counts,
		"CsrfField":       csrf.TemplateField(r),
		"Flashes":         GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SaveClientConfig updates an album's proofing settings. Enabling without
// a PIN (new or already stored) is rejected at the store boundary.
func (h *AdminHandler) SaveClientConfig(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.PathValue("albumID")
	cfg := store.ClientConfig{
		Enabled: r.FormValue("client_enabled") == "true",
		PIN:     r.FormValue("client_pin"),
	}
	if rawLimit := r.FormValue("selection_limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Selection limit must be a number."})
			saveAndRedirect(w, r, session, "/admin/clients")
			return
		}
		cfg.SelectionLimit = &limit
	}

	if err := h.Store.UpdateClientConfig(albumID, cfg); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			session.AddFlash(FlashMessage{Type: "error", Message: "Album no longer exists."})
		case store.IsValidation(err):
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		default:
			session.AddFlash(FlashMessage{Type: "error", Message: "Error saving configuration."})
		}
		saveAndRedirect(w, r, session, "/admin/clients")
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Client access settings saved!"})
	saveAndRedirect(w, r, session, "/admin/clients")
}

// ViewSelections shows the photos the client picked for one album.
func (h *AdminHandler) ViewSelections(w http.ResponseWriter, r *http.Request) {
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

	selections, err := h.Store.ListSelections(albumID)
	if err != nil {
		http.Error(w, "Error fetching selections", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_selections.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Album":      album,
		"Selections": selections,
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ReopenAlbum clears the submission stamp so the client can pick again.
// Their existing selections are kept.
func (h *AdminHandler) ReopenAlbum(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.PathValue("albumID")
	if err := h.Store.ReopenAlbum(albumID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Album no longer exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error reopening album."})
		}
		saveAndRedirect(w, r, session, "/admin/clients")
		return
	}

	count, _ := h.Store.CountSelections(albumID)
	h.Live.Publish(live.Event{Type: live.EventReopen, AlbumID: albumID, Count: count})

	session.AddFlash(FlashMessage{Type: "success", Message: "Album reopened for selection!"})
	saveAndRedirect(w, r, session, "/admin/clients")
}
