package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/RyanHLA/iasminsantos/internal/live"
	"github.com/RyanHLA/iasminsantos/internal/models"
	"github.com/RyanHLA/iasminsantos/internal/proof"
	"github.com/RyanHLA/iasminsantos/internal/store"
)

// ProofHandler drives the client proofing flow: PIN unlock, favorite
// toggling under the album's cap, one-time submission.
type ProofHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Live         *live.Hub
}

func (h *ProofHandler) unlocked(session *sessions.Session, albumID string) bool {
	ok, _ := session.Values["proof:"+albumID].(bool)
	return ok
}

// loadSession reconstructs the proofing state machine for one request from
// the persisted album and selections.
func (h *ProofHandler) loadSession(r *http.Request, album *models.Album) (*proof.Session, error) {
	limit := 0
	if album.SelectionLimit != nil {
		limit = *album.SelectionLimit
	}
	ps := proof.NewSession(album.ID, limit, album.Submitted())

	cookie, _ := h.SessionStore.Get(r, "proof-session")
	ps.Unlock(h.unlocked(cookie, album.ID))

	if ps.Phase() == proof.PhaseLocked {
		return ps, nil
	}

	selected, err := h.Store.SelectedPhotoIDs(album.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	ps.Restore(ids)
	return ps, nil
}

// View renders the proofing page in whatever phase the session is in.
// While locked, no photo data is fetched at all; the client sees only the
// album title and the PIN form.
func (h *ProofHandler) View(w http.ResponseWriter, r *http.Request) {
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
	if !album.ClientEnabled {
		http.NotFound(w, r)
		return
	}

	ps, err := h.loadSession(r, album)
	if err != nil {
		http.Error(w, "Error loading selections", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "proof-session")

	switch ps.Phase() {
	case proof.PhaseLocked:
		tmpl := h.Templates.Get("proof_locked.html")
		if tmpl == nil {
			http.Error(w, "Template not found", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Album":     album,
			"CsrfField": csrf.TemplateField(r),
			"Flashes":   GetFlash(session),
		}
		session.Save(r, w)
		tmpl.Execute(w, data)

	case proof.PhaseSubmitted:
		// Informational only: album title and how many photos were picked.
		tmpl := h.Templates.Get("proof_submitted.html")
		if tmpl == nil {
			http.Error(w, "Template not found", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Album": album,
			"Count": ps.Count(),
		}
		tmpl.Execute(w, data)

	default:
		photos, err := h.Store.ListPhotos(album.ID)
		if err != nil {
			http.Error(w, "Error fetching photos", http.StatusInternalServerError)
			return
		}
		selected, err := h.Store.SelectedPhotoIDs(album.ID)
		if err != nil {
			http.Error(w, "Error fetching selections", http.StatusInternalServerError)
			return
		}

		tmpl := h.Templates.Get("proof_select.html")
		if tmpl == nil {
			http.Error(w, "Template not found", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Album":     album,
			"Photos":    photos,
			"Selected":  selected,
			"Count":     ps.Count(),
			"Limit":     album.SelectionLimit,
			"CsrfField": csrf.TemplateField(r),
			"Flashes":   GetFlash(session),
		}
		session.Save(r, w)
		tmpl.Execute(w, data)
	}
}

// Unlock checks the submitted PIN server-side. The PIN hash never reaches
// the client; a wrong attempt just re-renders the lock screen. The route
// is rate-limited per IP.
func (h *ProofHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("albumID")
	session, _ := h.SessionStore.Get(r, "proof-session")

	attempt := r.FormValue("pin")
	ok, err := h.Store.VerifyAlbumPIN(albumID, attempt)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong. Try again."})
		saveAndRedirect(w, r, session, "/proof/"+albumID)
		return
	}

	if !ok {
		slog.Warn("Wrong album PIN", "album", albumID, "ip", r.RemoteAddr)
		session.AddFlash(FlashMessage{Type: "error", Message: "Incorrect PIN."})
		saveAndRedirect(w, r, session, "/proof/"+albumID)
		return
	}

	session.Values["proof:"+albumID] = true
	saveAndRedirect(w, r, session, "/proof/"+albumID)
}

// Toggle flips one photo's selected state. The state machine applies the
// change first (optimistic, including the cap check); the store write
// follows, and a write failure reverts the local change instead of
// leaving the two out of sync.
func (h *ProofHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("albumID")

	album, err := h.Store.GetAlbum(albumID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !album.ClientEnabled {
		writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	ps, err := h.loadSession(r, album)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if ps.Phase() == proof.PhaseLocked {
		writeJSONError(w, http.StatusUnauthorized, "Unlock the album first")
		return
	}

	var req struct {
		PhotoID string `json:"photo_id"`
	}
	if err := parseJSONBody(r, &req); err != nil || req.PhotoID == "" {
		writeJSONError(w, http.StatusBadRequest, "photo_id is required")
		return
	}

	wasSelected := ps.Selected(req.PhotoID)
	selected, err := ps.Toggle(req.PhotoID)
	if err != nil {
		switch {
		case errors.Is(err, proof.ErrCapReached):
			writeJSONError(w, http.StatusConflict, "Selection limit reached")
		case errors.Is(err, proof.ErrSubmitted):
			writeJSONError(w, http.StatusConflict, "Selection already submitted")
		default:
			writeJSONError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	persisted, err := h.Store.ToggleSelection(albumID, req.PhotoID)
	if err != nil {
		ps.Revert(req.PhotoID, wasSelected)
		writeStoreError(w, err)
		return
	}
	if persisted != selected {
		// Another session toggled concurrently; the store wins.
		slog.Warn("Selection state diverged, using stored state", "album", albumID, "photo", req.PhotoID)
	}

	count, err := h.Store.CountSelections(albumID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.Live.Publish(live.Event{
		Type:     live.EventSelection,
		AlbumID:  albumID,
		PhotoID:  req.PhotoID,
		Selected: persisted,
		Count:    count,
	})

	resp := map[string]interface{}{
		"selected": persisted,
		"count":    count,
	}
	if album.SelectionLimit != nil {
		resp["limit"] = *album.SelectionLimit
	}
	writeJSON(w, http.StatusOK, resp)
}

// Submit finalizes the selection. The store treats a repeated submit as a
// no-op returning the original timestamp, so double-clicks are harmless.
func (h *ProofHandler) Submit(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("albumID")
	session, _ := h.SessionStore.Get(r, "proof-session")

	album, err := h.Store.GetAlbum(albumID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil || !album.ClientEnabled {
		http.NotFound(w, r)
		return
	}

	if !h.unlocked(session, albumID) {
		saveAndRedirect(w, r, session, "/proof/"+albumID)
		return
	}

	submittedAt, err := h.Store.SubmitSelections(albumID)
	if err != nil {
		if errors.Is(err, store.ErrEmptySelection) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Select at least one photo before submitting."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error submitting your selection. Try again."})
		}
		saveAndRedirect(w, r, session, "/proof/"+albumID)
		return
	}

	count, _ := h.Store.CountSelections(albumID)
	h.Live.Publish(live.Event{Type: live.EventSubmission, AlbumID: albumID, Count: count})
	slog.Info("Client selection submitted", "album", albumID, "count", count, "at", submittedAt)

	saveAndRedirect(w, r, session, "/proof/"+albumID)
}
