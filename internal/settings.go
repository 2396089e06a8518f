package internal

import (
	"net/http"
	"strconv"
	"strings"

	"asset-dashboard/internal/models"
	"asset-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
)

type settingsData struct {
	viewData
	Tab        string
	Categories []models.Category
	Statuses   []models.Status
	Error      string
}

// handleSettings renders the category and status managers. Both lookup
// tables are fetched concurrently at mount.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromContext(r.Context())

	tab := r.URL.Query().Get("tab")
	if tab != "statuses" {
		tab = "categories"
	}
	data := settingsData{viewData: s.view(w, r, "Admin Settings"), Tab: tab}

	lookups, err := s.fetchFormLookups(r.Context(), token, false)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load settings")
		s.render(w, http.StatusOK, "settings", data)
		return
	}
	data.Categories = lookups.Categories
	data.Statuses = lookups.Statuses

	s.render(w, http.StatusOK, "settings", data)
}

// Lookup mutations follow one shape: validate the name locally, call the
// backend, flash the outcome, and re-render via redirect so the list is
// re-fetched. The backend owns name uniqueness.

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	s.mutateLookup(w, r, "categories", func(token, name string) error {
		return s.API.CreateCategory(r.Context(), token, name)
	}, "Category created successfully", "Failed to save category")
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := lookupID(w, r)
	if !ok {
		return
	}
	s.mutateLookup(w, r, "categories", func(token, name string) error {
		return s.API.UpdateCategory(r.Context(), token, id, name)
	}, "Category updated successfully", "Failed to save category")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := lookupID(w, r)
	if !ok {
		return
	}
	token := session.TokenFromContext(r.Context())
	if err := s.API.DeleteCategory(r.Context(), token, id); err != nil {
		s.Sessions.SetFlash(w, "error", failureMessage(err, "Failed to delete category"))
	} else {
		s.Sessions.SetFlash(w, "success", "Category deleted successfully")
	}
	http.Redirect(w, r, "/settings?tab=categories", http.StatusSeeOther)
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	s.mutateLookup(w, r, "statuses", func(token, name string) error {
		return s.API.CreateStatus(r.Context(), token, name)
	}, "Status created successfully", "Failed to save status")
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := lookupID(w, r)
	if !ok {
		return
	}
	s.mutateLookup(w, r, "statuses", func(token, name string) error {
		return s.API.UpdateStatus(r.Context(), token, id, name)
	}, "Status updated successfully", "Failed to save status")
}

func (s *Server) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := lookupID(w, r)
	if !ok {
		return
	}
	token := session.TokenFromContext(r.Context())
	if err := s.API.DeleteStatus(r.Context(), token, id); err != nil {
		s.Sessions.SetFlash(w, "error", failureMessage(err, "Failed to delete status"))
	} else {
		s.Sessions.SetFlash(w, "success", "Status deleted successfully")
	}
	http.Redirect(w, r, "/settings?tab=statuses", http.StatusSeeOther)
}

func (s *Server) mutateLookup(w http.ResponseWriter, r *http.Request, tab string, call func(token, name string) error, success, fallback string) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	target := "/settings?tab=" + tab

	if name == "" {
		s.Sessions.SetFlash(w, "error", "Name cannot be empty")
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	token := session.TokenFromContext(r.Context())
	if err := call(token, name); err != nil {
		s.Sessions.SetFlash(w, "error", failureMessage(err, fallback))
	} else {
		s.Sessions.SetFlash(w, "success", success)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func lookupID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
