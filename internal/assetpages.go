package internal

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"asset-dashboard/internal/models"
	"asset-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
)

// formLookups are the independent resources the asset form needs at mount:
// categories and statuses always, the assignee list for admins.
type formLookups struct {
	Categories []models.Category
	Statuses   []models.Status
	Users      []models.UserSummary
}

// fetchFormLookups fans the reads out concurrently and joins them before
// rendering. There is no ordering requirement between them; each observes
// the request context, so navigating away cancels the lot.
func (s *Server) fetchFormLookups(ctx context.Context, token string, includeUsers bool) (formLookups, error) {
	var lookups formLookups
	var catErr, statusErr, userErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		lookups.Categories, catErr = s.API.ListCategories(ctx, token)
	}()
	go func() {
		defer wg.Done()
		lookups.Statuses, statusErr = s.API.ListStatuses(ctx, token)
	}()
	if includeUsers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lookups.Users, userErr = s.API.ListUsers(ctx, token)
		}()
	}
	wg.Wait()

	return lookups, errors.Join(catErr, statusErr, userErr)
}

type assetFormData struct {
	viewData
	IsEdit     bool
	AssetID    int64
	Form       assetForm
	Errors     map[string]string
	Error      string
	Categories []models.Category
	Statuses   []models.Status
	Users      []models.UserSummary
}

func (s *Server) handleNewAsset(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromContext(r.Context())

	data := assetFormData{viewData: s.view(w, r, "Add New Asset")}
	lookups, err := s.fetchFormLookups(r.Context(), token, data.IsAdmin)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load form data")
		s.render(w, http.StatusOK, "asset_form", data)
		return
	}
	data.Categories = lookups.Categories
	data.Statuses = lookups.Statuses
	data.Users = lookups.Users

	s.render(w, http.StatusOK, "asset_form", data)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromContext(r.Context())

	data := assetFormData{viewData: s.view(w, r, "Add New Asset")}
	lookups, err := s.fetchFormLookups(r.Context(), token, data.IsAdmin)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load form data")
		s.render(w, http.StatusOK, "asset_form", data)
		return
	}
	data.Categories = lookups.Categories
	data.Statuses = lookups.Statuses
	data.Users = lookups.Users

	data.Form = parseAssetForm(r)
	req, fieldErrors := data.Form.validate(lookups.Categories, lookups.Statuses, data.IsAdmin)
	if fieldErrors != nil {
		data.Errors = fieldErrors
		s.render(w, http.StatusUnprocessableEntity, "asset_form", data)
		return
	}

	if err := s.API.CreateAsset(r.Context(), token, req); err != nil {
		data.Error = failureMessage(err, "Failed to create asset")
		s.render(w, http.StatusUnprocessableEntity, "asset_form", data)
		return
	}

	s.Sessions.SetFlash(w, "success", "Asset created successfully")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleEditAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	token := session.TokenFromContext(r.Context())

	data := assetFormData{viewData: s.view(w, r, "Edit Asset"), IsEdit: true, AssetID: id}

	lookups, lookupErr := s.fetchFormLookups(r.Context(), token, data.IsAdmin)
	asset, assetErr := s.API.GetAsset(r.Context(), token, id)
	if err := errors.Join(lookupErr, assetErr); err != nil {
		data.Error = failureMessage(err, "Failed to load asset")
		s.render(w, http.StatusOK, "asset_form", data)
		return
	}
	data.Categories = lookups.Categories
	data.Statuses = lookups.Statuses
	data.Users = lookups.Users
	data.Form = assetFormFrom(asset)

	s.render(w, http.StatusOK, "asset_form", data)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	token := session.TokenFromContext(r.Context())

	data := assetFormData{viewData: s.view(w, r, "Edit Asset"), IsEdit: true, AssetID: id}
	lookups, err := s.fetchFormLookups(r.Context(), token, data.IsAdmin)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load form data")
		s.render(w, http.StatusOK, "asset_form", data)
		return
	}
	data.Categories = lookups.Categories
	data.Statuses = lookups.Statuses
	data.Users = lookups.Users

	data.Form = parseAssetForm(r)
	req, fieldErrors := data.Form.validate(lookups.Categories, lookups.Statuses, data.IsAdmin)
	if fieldErrors != nil {
		data.Errors = fieldErrors
		s.render(w, http.StatusUnprocessableEntity, "asset_form", data)
		return
	}

	if err := s.API.UpdateAsset(r.Context(), token, id, req); err != nil {
		data.Error = failureMessage(err, "Failed to update asset")
		s.render(w, http.StatusUnprocessableEntity, "asset_form", data)
		return
	}

	s.Sessions.SetFlash(w, "success", "Asset updated successfully")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
