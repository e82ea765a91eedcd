package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RyanHLA/iasminsantos/internal/store"
	"github.com/RyanHLA/iasminsantos/internal/uploader"
)

// UploadPhotos takes a multipart batch and runs it through the uploader,
// one file at a time. A failed file is reported and skipped; the rest of
// the batch continues. Photo rows are only created for stored files.
func (h *AdminHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.PathValue("albumID")
	redirect := "/admin/gallery/album/" + albumID

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload too large. Max 64MB per batch."})
		saveAndRedirect(w, r, session, redirect)
		return
	}

	if _, err := h.Store.GetAlbum(albumID); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Album no longer exists."})
		saveAndRedirect(w, r, session, "/admin/gallery")
		return
	}

	fileHeaders := r.MultipartForm.File["photos"]
	if len(fileHeaders) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Select at least one image."})
		saveAndRedirect(w, r, session, redirect)
		return
	}

	var batch []*uploader.File
	var closers []func() error
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			batch = append(batch, &uploader.File{Name: fh.Filename, Status: uploader.StatusError, Err: err})
			continue
		}
		closers = append(closers, f.Close)
		batch = append(batch, &uploader.File{Name: fh.Filename, Reader: f, Status: uploader.StatusPending})
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	stored, failed := 0, 0
	h.Uploads.ProcessBatch(batch, func(f *uploader.File) {
		if f.Status != uploader.StatusComplete {
			failed++
			slog.Warn("Photo upload failed", "file", f.Name, "error", f.Err)
			return
		}
		title := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		if _, err := h.Store.AddPhoto(albumID, f.PublicURL, title, ""); err != nil {
			failed++
			slog.Error("Failed to record uploaded photo", "file", f.Name, "error", err)
			return
		}
		stored++
	})

	// One refresh per batch: the redirect reloads the photo list once.
	if failed > 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: fmt.Sprintf("%d photo(s) uploaded, %d failed.", stored, failed)})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: fmt.Sprintf("%d photo(s) uploaded!", stored)})
	}
	saveAndRedirect(w, r, session, redirect)
}

func (h *AdminHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	photoID := r.PathValue("photoID")
	title := r.FormValue("title")
	description := r.FormValue("description")

	photo, err := h.Store.GetPhoto(photoID)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Photo no longer exists."})
		saveAndRedirect(w, r, session, "/admin/gallery")
		return
	}

	patch := store.PhotoPatch{Title: &title, Description: &description}
	if err := h.Store.UpdatePhoto(photoID, patch); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating photo."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Photo updated!"})
	}
	saveAndRedirect(w, r, session, "/admin/gallery/album/"+photo.AlbumID)
}

func (h *AdminHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	photoID := r.FormValue("id")
	albumID := r.FormValue("album_id")

	if err := h.Store.DeletePhoto(photoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Photo no longer exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting photo."})
		}
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Photo deleted!"})
	}
	saveAndRedirect(w, r, session, "/admin/gallery/album/"+albumID)
}

// BulkDeletePhotos deletes each listed photo independently and reports
// how many were actually removed; there is no all-or-nothing guarantee.
func (h *AdminHandler) BulkDeletePhotos(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhotoIDs []string `json:"photo_ids"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	deleted := 0
	for _, id := range req.PhotoIDs {
		if err := h.Store.DeletePhoto(id); err != nil {
			slog.Warn("Bulk delete skipped photo", "photo", id, "error", err)
			continue
		}
		deleted++
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"requested": len(req.PhotoIDs),
		"deleted":   deleted,
	})
}

// ReorderPhotos persists a drag-and-drop result: the body carries the
// full ordered id list and the store rewrites display_order in one
// transaction, so a failure leaves the stored order untouched rather
// than half-applied.
func (h *AdminHandler) ReorderPhotos(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("albumID")

	var req struct {
		OrderedIDs []string `json:"ordered_ids"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.OrderedIDs) == 0 {
		writeJSONError(w, http.StatusBadRequest, "ordered_ids is required")
		return
	}

	if err := h.Store.ReorderPhotos(albumID, req.OrderedIDs); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) SetAlbumCover(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	albumID := r.PathValue("albumID")
	photoID := r.FormValue("photo_id")

	if err := h.Store.SetAlbumCover(albumID, photoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Photo or album no longer exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error setting cover."})
		}
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Cover updated!"})
	}
	saveAndRedirect(w, r, session, "/admin/gallery/album/"+albumID)
}

func (h *AdminHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	photoID := r.FormValue("photo_id")
	albumID := r.FormValue("album_id")
	featured := r.FormValue("featured") == "true"

	if err := h.Store.SetPhotoFeatured(photoID, featured); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating photo."})
	}
	saveAndRedirect(w, r, session, "/admin/gallery/album/"+albumID)
}
