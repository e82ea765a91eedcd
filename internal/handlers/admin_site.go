package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/RyanHLA/iasminsantos/internal/store"
)

// SiteContent renders the home page content screen: hero and about
// images plus the gallery strip.
func (h *AdminHandler) SiteContent(w http.ResponseWriter, r *http.Request) {
	hero, err := h.Store.GetSectionImage(store.SectionHero)
	if err != nil {
		http.Error(w, "Error fetching site content", http.StatusInternalServerError)
		return
	}
	about, err := h.Store.GetSectionImage(store.SectionAbout)
	if err != nil {
		http.Error(w, "Error fetching site content", http.StatusInternalServerError)
		return
	}
	gallery, err := h.Store.ListSiteImages(store.SectionGallery)
	if err != nil {
		http.Error(w, "Error fetching site content", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_site.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Hero":      hero,
		"About":     about,
		"Gallery":   gallery,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateSiteSection saves a section's image and text. Hero and about hold
// one image each and are replaced; gallery uploads are appended to the
// strip. All uploads go through the same processor as album photos.
func (h *AdminHandler) UpdateSiteSection(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	section := r.PathValue("section")
	if section != store.SectionHero && section != store.SectionAbout && section != store.SectionGallery {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		saveAndRedirect(w, r, session, "/admin/site")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")

	imageURL := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err = h.Uploads.Process(header.Filename, file)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Failed to process image: " + err.Error()})
			saveAndRedirect(w, r, session, "/admin/site")
			return
		}
	} else if section != store.SectionGallery {
		// Text-only edit: keep the current image.
		existing, err := h.Store.GetSectionImage(section)
		if err != nil || existing == nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "An image is required for this section."})
			saveAndRedirect(w, r, session, "/admin/site")
			return
		}
		imageURL = existing.ImageURL
	}

	if section == store.SectionGallery {
		_, err := h.Store.AddSiteImage(section, imageURL, title, description)
		if err != nil {
			if store.IsValidation(err) {
				session.AddFlash(FlashMessage{Type: "error", Message: "Select an image to add."})
			} else {
				session.AddFlash(FlashMessage{Type: "error", Message: "Error saving image."})
			}
		} else {
			session.AddFlash(FlashMessage{Type: "success", Message: "Image added to the gallery strip!"})
		}
		saveAndRedirect(w, r, session, "/admin/site")
		return
	}

	if err := h.Store.UpsertSectionImage(section, imageURL, title, description); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving section."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Section updated!"})
	}
	saveAndRedirect(w, r, session, "/admin/site")
}

// DeleteSiteImage removes one image from the gallery strip.
func (h *AdminHandler) DeleteSiteImage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	if err := h.Store.DeleteSiteImage(r.FormValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Image no longer exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting image."})
		}
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Image removed."})
	}
	saveAndRedirect(w, r, session, "/admin/site")
}
