package internal

import (
	"errors"
	"net/http"
	"strings"

	"asset-dashboard/internal/api"
)

// failureMessage prefers the backend's own error copy and falls back to
// view-specific wording when the server gave none.
func failureMessage(err error, fallback string) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != api.GenericFailure {
		return reqErr.Message
	}
	return fallback
}

type homeData struct {
	viewData
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", homeData{viewData: s.view(w, r, "Personal Asset Management")})
}

type loginData struct {
	viewData
	Username string
	Error    string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.Sessions.Current(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login", loginData{viewData: s.view(w, r, "Login")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	data := loginData{viewData: s.view(w, r, "Login"), Username: username}
	if username == "" || password == "" {
		data.Error = "Username and password are required"
		s.render(w, http.StatusUnprocessableEntity, "login", data)
		return
	}

	token, err := s.API.Login(r.Context(), username, password)
	if err != nil {
		data.Error = failureMessage(err, "Login failed")
		s.render(w, http.StatusUnauthorized, "login", data)
		return
	}

	if _, err := s.Sessions.Login(w, token); err != nil {
		// Token came back but does not decode; session stays empty.
		data.Error = "Failed to decode token"
		s.render(w, http.StatusUnauthorized, "login", data)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type registerData struct {
	viewData
	Username string
	Error    string
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", registerData{viewData: s.view(w, r, "Register")})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	data := registerData{viewData: s.view(w, r, "Register"), Username: username}
	switch {
	case username == "" || password == "":
		data.Error = "Username and password are required"
	case password != confirm:
		data.Error = "Passwords do not match"
	}
	if data.Error != "" {
		s.render(w, http.StatusUnprocessableEntity, "register", data)
		return
	}

	if err := s.API.Register(r.Context(), username, password); err != nil {
		data.Error = failureMessage(err, "Registration failed")
		s.render(w, http.StatusUnprocessableEntity, "register", data)
		return
	}

	s.Sessions.SetFlash(w, "success", "Registration successful, please log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Logout(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type unauthorizedData struct {
	viewData
}

func (s *Server) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "unauthorized", unauthorizedData{viewData: s.view(w, r, "Unauthorized")})
}

// handleDarkMode toggles the persisted display preference and returns to
// the page the toggle lives on.
func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	s.Sessions.SetDarkMode(w, !s.Sessions.DarkMode(r))

	target := r.Header.Get("Referer")
	if target == "" {
		target = "/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
