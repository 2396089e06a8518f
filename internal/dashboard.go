package internal

import (
	"net/http"
	"strconv"

	"asset-dashboard/internal/models"
	"asset-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
)

// columnLink is a sortable table header: the URL promoting that column to
// the primary sort key, plus the direction marker when it already is.
type columnLink struct {
	Key       string
	Label     string
	URL       string
	Direction string
}

type pageLink struct {
	Label   string
	URL     string
	Current bool
}

type dashboardData struct {
	viewData
	Assets          []models.Asset
	Error           string
	Search          string
	CategoryFilter  string
	StatusFilter    string
	CategoryOptions []string
	StatusOptions   []string
	Columns         []columnLink
	Size            int
	TotalElements   int
	PrevURL         string
	NextURL         string
	SizeLinks       []pageLink
	FilterSort      string
}

var dashboardColumns = []struct{ key, label string }{
	{"name", "Name"},
	{"cost", "Cost"},
	{"category", "Category"},
	{"status", "Status"},
	{"purchaseDate", "Purchase Date"},
}

// handleDashboard fetches one page of the caller's assets from the backend
// and applies search, filters, and multi-key sort over that loaded page
// only. The view state lives entirely in the URL.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	token := session.TokenFromContext(r.Context())

	data := dashboardData{
		viewData:       s.view(w, r, "My Assets"),
		Search:         q.q,
		CategoryFilter: q.category,
		StatusFilter:   q.status,
		Size:           q.size,
		FilterSort:     q.sort,
	}

	page, err := s.API.ListAssets(r.Context(), token, q.page, q.size)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load assets")
		s.render(w, http.StatusOK, "dashboard", data)
		return
	}

	// Filter options come from the loaded page, not a separate fetch.
	categories := make([]string, 0, len(page.Content))
	statuses := make([]string, 0, len(page.Content))
	for _, a := range page.Content {
		categories = append(categories, a.Category)
		statuses = append(statuses, a.Status)
	}
	data.CategoryOptions = uniqueValues(categories)
	data.StatusOptions = uniqueValues(statuses)

	assets := filterAssets(page.Content, q.q, q.category, q.status)
	sortAssets(assets, parseSort(q.sort, assetSortKeys))
	data.Assets = assets
	data.TotalElements = page.TotalElements

	primary := parseSort(q.sort, assetSortKeys)
	for _, col := range dashboardColumns {
		link := columnLink{
			Key:   col.key,
			Label: col.label,
			URL:   "/dashboard?" + withSort(q, promoteSort(q.sort, col.key, assetSortKeys)).encode(),
		}
		if len(primary) > 0 && primary[0].key == col.key {
			if primary[0].desc {
				link.Direction = "desc"
			} else {
				link.Direction = "asc"
			}
		}
		data.Columns = append(data.Columns, link)
	}

	if q.page > 0 {
		data.PrevURL = "/dashboard?" + q.withPage(q.page-1).encode()
	}
	if (q.page+1)*q.size < page.TotalElements {
		data.NextURL = "/dashboard?" + q.withPage(q.page+1).encode()
	}
	for _, size := range []int{5, 10, 25} {
		data.SizeLinks = append(data.SizeLinks, pageLink{
			Label:   strconv.Itoa(size),
			URL:     "/dashboard?" + q.withSize(size).encode(),
			Current: size == q.size,
		})
	}

	s.render(w, http.StatusOK, "dashboard", data)
}

func withSort(q listQuery, sort string) listQuery {
	q.sort = sort
	return q
}

// handleDeleteAsset removes one asset and returns to the dashboard. On
// failure the table is left as it was and the error surfaces as a flash.
func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	token := session.TokenFromContext(r.Context())
	if err := s.API.DeleteAsset(r.Context(), token, id); err != nil {
		s.Sessions.SetFlash(w, "error", failureMessage(err, "Failed to delete asset"))
	} else {
		s.Sessions.SetFlash(w, "success", "Asset deleted successfully")
	}

	target := r.PostFormValue("return")
	if target == "" {
		target = "/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
