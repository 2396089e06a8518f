package internal

import (
	"net/http"
	"strconv"

	"asset-dashboard/internal/models"
	"asset-dashboard/internal/session"
)

type usersData struct {
	viewData
	Users     []models.UserSummary
	Error     string
	Search    string
	Total     int
	Size      int
	PrevURL   string
	NextURL   string
	SizeLinks []pageLink
}

// handleUsers renders the admin roster. The whole roster is fetched once;
// search and pagination are applied locally over that snapshot.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	token := session.TokenFromContext(r.Context())

	data := usersData{
		viewData: s.view(w, r, "Registered Users"),
		Search:   q.q,
		Size:     q.size,
	}

	users, err := s.API.ListUsers(r.Context(), token)
	if err != nil {
		data.Error = failureMessage(err, "Failed to load user list")
		s.render(w, http.StatusOK, "users", data)
		return
	}

	filtered := filterUsers(users, q.q)
	data.Total = len(filtered)
	data.Users = pageSlice(filtered, q.page, q.size)

	if q.page > 0 {
		data.PrevURL = "/users?" + q.withPage(q.page-1).encode()
	}
	if (q.page+1)*q.size < len(filtered) {
		data.NextURL = "/users?" + q.withPage(q.page+1).encode()
	}
	for _, size := range []int{5, 10, 25} {
		data.SizeLinks = append(data.SizeLinks, pageLink{
			Label:   strconv.Itoa(size),
			URL:     "/users?" + q.withSize(size).encode(),
			Current: size == q.size,
		})
	}

	s.render(w, http.StatusOK, "users", data)
}
