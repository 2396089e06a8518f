package internal

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"asset-dashboard/internal/models"
)

// listQuery holds the view state a list page carries in its URL: backend
// page window plus the client-side search, filters, and sort order applied
// to the loaded page only.
type listQuery struct {
	page     int
	size     int
	q        string
	category string
	status   string
	sort     string
}

// parseListQuery parses page, size, q, category, status, and sort from the
// request. Defaults: page=0, size=5 (max 100).
func parseListQuery(r *http.Request) listQuery {
	values := r.URL.Query()

	page := 0
	if s := strings.TrimSpace(values.Get("page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			page = v
		}
	}

	size := 5
	if s := strings.TrimSpace(values.Get("size")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			if v > 100 {
				v = 100
			}
			size = v
		}
	}

	return listQuery{
		page:     page,
		size:     size,
		q:        strings.TrimSpace(values.Get("q")),
		category: strings.TrimSpace(values.Get("category")),
		status:   strings.TrimSpace(values.Get("status")),
		sort:     strings.TrimSpace(values.Get("sort")),
	}
}

// encode rebuilds the query string, dropping empty parameters.
func (q listQuery) encode() string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.page))
	values.Set("size", strconv.Itoa(q.size))
	if q.q != "" {
		values.Set("q", q.q)
	}
	if q.category != "" {
		values.Set("category", q.category)
	}
	if q.status != "" {
		values.Set("status", q.status)
	}
	if q.sort != "" {
		values.Set("sort", q.sort)
	}
	return values.Encode()
}

// withPage returns a copy pointing at another page of the same view.
func (q listQuery) withPage(page int) listQuery {
	q.page = page
	return q
}

// withSize returns a copy with a new page size. Changing the size always
// resets the page index to 0.
func (q listQuery) withSize(size int) listQuery {
	q.size = size
	q.page = 0
	return q
}

// sortKey is one element of a multi-key sort order.
type sortKey struct {
	key  string
	desc bool
}

// parseSort parses a comma-separated sort parameter; '-' prefixes mark
// descending keys. Unknown keys are dropped.
func parseSort(sortParam string, allowed map[string]bool) []sortKey {
	if sortParam == "" {
		return nil
	}
	parts := strings.Split(sortParam, ",")
	keys := make([]sortKey, 0, len(parts))
	for _, raw := range parts {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(s, "-") {
			desc = true
			s = strings.TrimPrefix(s, "-")
		}
		if !allowed[s] {
			continue
		}
		keys = append(keys, sortKey{key: s, desc: desc})
	}
	return keys
}

func encodeSort(keys []sortKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.desc {
			parts = append(parts, "-"+k.key)
		} else {
			parts = append(parts, k.key)
		}
	}
	return strings.Join(parts, ",")
}

// promoteSort returns the sort order after a click on the given column:
// the primary key toggles direction, any other key moves to the front
// ascending while the previous keys remain as tie-breakers.
func promoteSort(current, key string, allowed map[string]bool) string {
	keys := parseSort(current, allowed)

	if len(keys) > 0 && keys[0].key == key {
		keys[0].desc = !keys[0].desc
		return encodeSort(keys)
	}

	promoted := []sortKey{{key: key}}
	for _, k := range keys {
		if k.key != key {
			promoted = append(promoted, k)
		}
	}
	return encodeSort(promoted)
}

var assetSortKeys = map[string]bool{
	"name":         true,
	"cost":         true,
	"category":     true,
	"status":       true,
	"purchaseDate": true,
}

func compareAssets(a, b models.Asset, key string) int {
	switch key {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "cost":
		switch {
		case a.Cost < b.Cost:
			return -1
		case a.Cost > b.Cost:
			return 1
		}
		return 0
	case "category":
		return strings.Compare(a.Category, b.Category)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "purchaseDate":
		return strings.Compare(a.PurchaseDate, b.PurchaseDate)
	}
	return 0
}

// sortAssets orders the loaded page by the multi-key comparator. The sort
// is stable, so ties on every key preserve the fetched order.
func sortAssets(assets []models.Asset, keys []sortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(assets, func(i, j int) bool {
		for _, k := range keys {
			c := compareAssets(assets[i], assets[j], k.key)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// containsFold reports a case-insensitive substring match.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// filterAssets applies the text search and equality filters over the
// currently loaded page only; it never requests additional pages.
func filterAssets(assets []models.Asset, q, category, status string) []models.Asset {
	filtered := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if q != "" && !containsFold(a.Name, q) {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// filterUsers matches the search text against username or role.
func filterUsers(users []models.UserSummary, q string) []models.UserSummary {
	if q == "" {
		return users
	}
	filtered := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		if containsFold(u.Username, q) || containsFold(u.Role, q) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// pageSlice cuts one page out of a locally held list.
func pageSlice[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// uniqueValues returns the distinct values in order of first appearance,
// used to derive filter options from the loaded page.
func uniqueValues(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}
