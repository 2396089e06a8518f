package internal

import (
	"net/http"
	"strconv"
	"strings"

	"asset-dashboard/internal/models"
)

// assetForm holds the raw field values of the reusable create/edit form,
// kept as strings so invalid input re-renders exactly as entered.
type assetForm struct {
	Name           string
	Description    string
	Cost           string
	Category       string
	Status         string
	PurchaseDate   string
	WarrantyExpiry string
	ImageURL       string
	AssignedTo     string
}

func assetFormFrom(a models.Asset) assetForm {
	form := assetForm{
		Name:         a.Name,
		Description:  a.Description,
		Cost:         strconv.FormatFloat(a.Cost, 'f', -1, 64),
		Category:     a.Category,
		Status:       a.Status,
		PurchaseDate: a.PurchaseDate,
	}
	if a.WarrantyExpiry != nil {
		form.WarrantyExpiry = *a.WarrantyExpiry
	}
	if a.ImageURL != nil {
		form.ImageURL = *a.ImageURL
	}
	if a.AssignedTo != nil {
		form.AssignedTo = *a.AssignedTo
	}
	return form
}

func parseAssetForm(r *http.Request) assetForm {
	return assetForm{
		Name:           strings.TrimSpace(r.PostFormValue("name")),
		Description:    strings.TrimSpace(r.PostFormValue("description")),
		Cost:           strings.TrimSpace(r.PostFormValue("cost")),
		Category:       r.PostFormValue("category"),
		Status:         r.PostFormValue("status"),
		PurchaseDate:   r.PostFormValue("purchase_date"),
		WarrantyExpiry: strings.TrimSpace(r.PostFormValue("warranty_expiry")),
		ImageURL:       strings.TrimSpace(r.PostFormValue("image_url")),
		AssignedTo:     r.PostFormValue("assigned_to"),
	}
}

// validate checks the local field constraints and assembles the submit
// payload. Violations block submission: the caller re-renders the errors
// inline and makes no backend call. The assignee is only carried into the
// payload for an admin caller; the backend re-verifies regardless.
func (f assetForm) validate(categories []models.Category, statuses []models.Status, isAdmin bool) (models.AssetRequest, map[string]string) {
	fieldErrors := map[string]string{}

	if f.Name == "" {
		fieldErrors["name"] = "Name is required"
	}

	cost, err := strconv.ParseFloat(f.Cost, 64)
	switch {
	case f.Cost == "":
		fieldErrors["cost"] = "Cost is required"
	case err != nil:
		fieldErrors["cost"] = "Cost must be a number"
	case cost < 0:
		fieldErrors["cost"] = "Cost must not be negative"
	}

	if !lookupHasName(categories, f.Category) {
		fieldErrors["category"] = "Choose a category"
	}
	if !statusHasName(statuses, f.Status) {
		fieldErrors["status"] = "Choose a status"
	}

	if len(fieldErrors) > 0 {
		return models.AssetRequest{}, fieldErrors
	}

	req := models.AssetRequest{
		Name:         f.Name,
		Description:  f.Description,
		Cost:         cost,
		Category:     f.Category,
		Status:       f.Status,
		PurchaseDate: f.PurchaseDate,
	}
	if f.WarrantyExpiry != "" {
		req.WarrantyExpiry = &f.WarrantyExpiry
	}
	if f.ImageURL != "" {
		req.ImageURL = &f.ImageURL
	}
	if isAdmin && f.AssignedTo != "" {
		req.AssignedTo = &f.AssignedTo
	}
	return req, nil
}

func lookupHasName(categories []models.Category, name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func statusHasName(statuses []models.Status, name string) bool {
	for _, s := range statuses {
		if s.Name == name {
			return true
		}
	}
	return false
}
