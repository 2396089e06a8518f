package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"asset-dashboard/internal/config"
	"asset-dashboard/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory stand-in for the asset API the dashboard
// talks to. It records the requests it receives so tests can assert which
// calls were (and were not) made.
type fakeBackend struct {
	mu         sync.Mutex
	assets     []models.Asset
	categories []models.Category
	statuses   []models.Status
	users      []models.UserSummary

	listQueries  []url.Values
	assetCreates []models.AssetRequest
	lookupPosts  []string

	listFailure   string // non-empty: asset listing returns 503 with this message
	deleteFailure string // non-empty: asset deletion returns 409 with this message
	loginToken    string
}

func (f *fakeBackend) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/api/assets/my-assets", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listQueries = append(f.listQueries, req.URL.Query())

		if f.listFailure != "" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": f.listFailure})
			return
		}

		page, _ := strconv.Atoi(req.URL.Query().Get("page"))
		size, _ := strconv.Atoi(req.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, models.Page[models.Asset]{
			Content:       pageSlice(f.assets, page, size),
			TotalElements: len(f.assets),
			PageNumber:    page,
			PageSize:      size,
		})
	})
	r.Post("/api/assets", func(w http.ResponseWriter, req *http.Request) {
		var payload models.AssetRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad payload"})
			return
		}
		f.mu.Lock()
		f.assetCreates = append(f.assetCreates, payload)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete("/api/assets/{id}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.deleteFailure != "" {
			writeJSON(w, http.StatusConflict, map[string]string{"message": f.deleteFailure})
			return
		}

		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		kept := f.assets[:0]
		for _, a := range f.assets {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		f.assets = kept
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/api/categories", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, f.categories)
	})
	r.Post("/api/categories", f.recordLookupPost)
	r.Get("/api/statuses", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, f.statuses)
	})
	r.Post("/api/statuses", f.recordLookupPost)
	r.Get("/api/users", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, f.users)
	})

	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds models.LoginRequest
		if err := json.NewDecoder(req.Body).Decode(&creds); err != nil || creds.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: f.loginToken})
	})

	return r
}

func (f *fakeBackend) recordLookupPost(w http.ResponseWriter, req *http.Request) {
	var payload models.LookupRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad payload"})
		return
	}
	f.mu.Lock()
	f.lookupPosts = append(f.lookupPosts, payload.Name)
	f.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestApp(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	ts := httptest.NewServer(backend.router())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		ListenAddr:     ":0",
		BackendURL:     ts.URL,
		RequestTimeout: 2 * time.Second,
	}
	return NewServer(cfg)
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "tester",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func doRequest(s *Server, method, target, token string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "ad_token", Value: token})
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// flashFrom decodes the queued notification cookie, "kind|message".
func flashFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "ad_flash" && c.Value != "" {
			raw, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return raw
		}
	}
	return ""
}

func someAssets() []models.Asset {
	return []models.Asset{
		{ID: 1, Name: "MacBook Pro", Cost: 2500, Category: "Electronics", Status: "In Use", PurchaseDate: "2024-01-15"},
		{ID: 2, Name: "Office Chair", Cost: 350, Category: "Furniture", Status: "In Storage", PurchaseDate: "2023-06-02"},
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	s := newTestApp(t, &fakeBackend{})

	w := doRequest(s, "GET", "/dashboard", "", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestUserRoleCannotOpenAssetForm(t *testing.T) {
	s := newTestApp(t, &fakeBackend{})
	token := signTestToken(t, "ROLE_USER")

	for _, target := range []string{"/assets/new", "/assets/1/edit", "/users", "/settings"} {
		w := doRequest(s, "GET", target, token, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, target)
		assert.Equal(t, "/unauthorized", w.Header().Get("Location"), target)
	}
}

func TestDashboardRendersLoadedPage(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)

	w := doRequest(s, "GET", "/dashboard", signTestToken(t, "ROLE_ADMIN"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "MacBook Pro")
	assert.Contains(t, body, "Office Chair")
	assert.Contains(t, body, "2 total")

	require.Len(t, backend.listQueries, 1)
	assert.Equal(t, "0", backend.listQueries[0].Get("page"))
	assert.Equal(t, "5", backend.listQueries[0].Get("size"))
}

func TestDashboardHidesAdminColumnsFromUsers(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)

	w := doRequest(s, "GET", "/dashboard", signTestToken(t, "ROLE_USER"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "MacBook Pro")
	assert.NotContains(t, body, "Assigned To")
	assert.NotContains(t, body, "/assets/1/delete")
	assert.NotContains(t, body, "/assets/new")
}

func TestDashboardSearchFiltersLoadedPage(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)

	w := doRequest(s, "GET", "/dashboard?q=mac", signTestToken(t, "ROLE_ADMIN"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "MacBook Pro")
	assert.NotContains(t, body, "Office Chair")
	// Filtering narrows the rendered rows, not the fetched window.
	assert.Contains(t, body, "2 total")
}

func TestDashboardSizeChangeResetsPageAndRefetches(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)
	token := signTestToken(t, "ROLE_ADMIN")

	w := doRequest(s, "GET", "/dashboard?page=2&size=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/dashboard?page=0&amp;size=10")

	w = doRequest(s, "GET", "/dashboard?page=0&size=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, backend.listQueries, 2)
	assert.Equal(t, "0", backend.listQueries[1].Get("page"))
	assert.Equal(t, "10", backend.listQueries[1].Get("size"))
}

func TestDashboardBackendFailureShowsMessage(t *testing.T) {
	backend := &fakeBackend{listFailure: "Inventory service unavailable"}
	s := newTestApp(t, backend)

	w := doRequest(s, "GET", "/dashboard", signTestToken(t, "ROLE_ADMIN"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Inventory service unavailable")
}

func TestDeleteAssetRemovesOnlyThatAsset(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)
	token := signTestToken(t, "ROLE_ADMIN")

	w := doRequest(s, "POST", "/assets/1/delete", token, url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.Equal(t, "success|Asset deleted successfully", flashFrom(t, w))

	w = doRequest(s, "GET", "/dashboard", token, nil)
	body := w.Body.String()
	assert.NotContains(t, body, "MacBook Pro")
	assert.Contains(t, body, "Office Chair")
}

func TestDeleteAssetFailureKeepsTable(t *testing.T) {
	backend := &fakeBackend{
		assets:        someAssets(),
		deleteFailure: "Asset is referenced by an open ticket",
	}
	s := newTestApp(t, backend)
	token := signTestToken(t, "ROLE_ADMIN")

	w := doRequest(s, "POST", "/assets/1/delete", token, url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "error|Asset is referenced by an open ticket", flashFrom(t, w))

	w = doRequest(s, "GET", "/dashboard", token, nil)
	body := w.Body.String()
	assert.Contains(t, body, "MacBook Pro")
	assert.Contains(t, body, "Office Chair")
}

func TestCreateAssetValidationMakesNoSubmitCall(t *testing.T) {
	backend := &fakeBackend{
		categories: []models.Category{{ID: 1, Name: "Electronics"}},
		statuses:   []models.Status{{ID: 1, Name: "In Use"}},
	}
	s := newTestApp(t, backend)

	form := url.Values{
		"name":     {""},
		"cost":     {"-5"},
		"category": {"Electronics"},
		"status":   {"In Use"},
	}
	w := doRequest(s, "POST", "/assets/new", signTestToken(t, "ROLE_ADMIN"), form)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, "Cost must not be negative")
	assert.Empty(t, backend.assetCreates)
}

func TestCreateAssetRerendersEnteredValues(t *testing.T) {
	backend := &fakeBackend{
		categories: []models.Category{{ID: 1, Name: "Electronics"}},
		statuses:   []models.Status{{ID: 1, Name: "In Use"}},
	}
	s := newTestApp(t, backend)

	form := url.Values{
		"name":        {"Standing Desk"},
		"cost":        {"not-a-number"},
		"category":    {"Electronics"},
		"status":      {"In Use"},
		"description": {"Adjustable height"},
	}
	w := doRequest(s, "POST", "/assets/new", signTestToken(t, "ROLE_ADMIN"), form)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Cost must be a number")
	assert.Contains(t, body, `value="Standing Desk"`)
	assert.Contains(t, body, "Adjustable height")
}

func TestCreateAssetSubmitsPayload(t *testing.T) {
	backend := &fakeBackend{
		categories: []models.Category{{ID: 1, Name: "Electronics"}},
		statuses:   []models.Status{{ID: 1, Name: "In Use"}},
		users:      []models.UserSummary{{ID: 7, Username: "bob", Role: "ROLE_USER"}},
	}
	s := newTestApp(t, backend)

	form := url.Values{
		"name":          {"Monitor"},
		"cost":          {"199.99"},
		"category":      {"Electronics"},
		"status":        {"In Use"},
		"purchase_date": {"2025-03-01"},
		"assigned_to":   {"bob"},
	}
	w := doRequest(s, "POST", "/assets/new", signTestToken(t, "ROLE_ADMIN"), form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.Equal(t, "success|Asset created successfully", flashFrom(t, w))

	require.Len(t, backend.assetCreates, 1)
	created := backend.assetCreates[0]
	assert.Equal(t, "Monitor", created.Name)
	assert.Equal(t, 199.99, created.Cost)
	assert.Equal(t, "2025-03-01", created.PurchaseDate)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, "bob", *created.AssignedTo)
	assert.Nil(t, created.WarrantyExpiry)
}

func TestLoginStoresTokenAndRedirects(t *testing.T) {
	token := signTestToken(t, "ROLE_USER")
	s := newTestApp(t, &fakeBackend{loginToken: token})

	form := url.Values{"username": {"alice"}, "password": {"secret"}}
	w := doRequest(s, "POST", "/login", "", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "ad_token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	s := newTestApp(t, &fakeBackend{loginToken: signTestToken(t, "ROLE_USER")})

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	w := doRequest(s, "POST", "/login", "", form)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLoginRejectsUndecodableToken(t *testing.T) {
	s := newTestApp(t, &fakeBackend{loginToken: "not.a.jwt"})

	form := url.Values{"username": {"alice"}, "password": {"secret"}}
	w := doRequest(s, "POST", "/login", "", form)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to decode token")
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "ad_token", c.Name)
	}
}

func TestUsersPagePaginatesLocally(t *testing.T) {
	backend := &fakeBackend{}
	for i := 1; i <= 7; i++ {
		backend.users = append(backend.users, models.UserSummary{
			ID:       int64(i),
			Username: "user" + strconv.Itoa(i),
			Role:     "ROLE_USER",
		})
	}
	s := newTestApp(t, backend)
	token := signTestToken(t, "ROLE_ADMIN")

	w := doRequest(s, "GET", "/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "user5")
	assert.NotContains(t, body, "user6")
	assert.Contains(t, body, "7 total")

	w = doRequest(s, "GET", "/users?page=1", token, nil)
	body = w.Body.String()
	assert.Contains(t, body, "user6")
	assert.NotContains(t, body, "user5")
}

func TestUsersPageSearchMatchesUsernameOrRole(t *testing.T) {
	backend := &fakeBackend{users: []models.UserSummary{
		{ID: 1, Username: "alice", Role: "ROLE_ADMIN"},
		{ID: 2, Username: "bob", Role: "ROLE_USER"},
	}}
	s := newTestApp(t, backend)

	w := doRequest(s, "GET", "/users?q=admin", signTestToken(t, "ROLE_ADMIN"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "alice")
	assert.NotContains(t, body, "bob")
}

func TestSettingsCreateCategory(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestApp(t, backend)

	form := url.Values{"name": {"Vehicles"}}
	w := doRequest(s, "POST", "/settings/categories", signTestToken(t, "ROLE_ADMIN"), form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?tab=categories", w.Header().Get("Location"))
	assert.Equal(t, "success|Category created successfully", flashFrom(t, w))
	assert.Equal(t, []string{"Vehicles"}, backend.lookupPosts)
}

func TestSettingsEmptyNameRejectedLocally(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestApp(t, backend)

	form := url.Values{"name": {"   "}}
	w := doRequest(s, "POST", "/settings/statuses", signTestToken(t, "ROLE_ADMIN"), form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "error|Name cannot be empty", flashFrom(t, w))
	assert.Empty(t, backend.lookupPosts)
}

func TestFlashRendersOnceOnNextView(t *testing.T) {
	backend := &fakeBackend{assets: someAssets()}
	s := newTestApp(t, backend)
	token := signTestToken(t, "ROLE_ADMIN")

	w := doRequest(s, "POST", "/assets/1/delete", token, url.Values{})
	flash := w.Result().Cookies()

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ad_token", Value: token})
	for _, c := range flash {
		if c.Name == "ad_flash" {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Asset deleted successfully")
	// The render clears the notification so a reload will not repeat it.
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ad_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
