package session

import (
	"net/http"
	"net/url"
	"strings"
)

// Cookie names are the fixed local keys of the persisted client state: the
// bearer token, the display preference, and the one-shot notification.
const (
	tokenCookie = "ad_token"
	darkCookie  = "ad_dark"
	flashCookie = "ad_flash"
)

// Store owns the lifecycle of the browser-persisted session state. It is
// created once at app start and injected into every guarded handler rather
// than accessed as ambient global state.
type Store struct {
	secure bool
}

func NewStore(secure bool) *Store {
	return &Store{secure: secure}
}

// Login decodes the token and, if it names a known role, persists it. A
// malformed token leaves the session empty.
func (s *Store) Login(w http.ResponseWriter, token string) (*Identity, error) {
	identity, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return identity, nil
}

// Logout clears the persisted token and display preference.
func (s *Store) Logout(w http.ResponseWriter) {
	expire(w, tokenCookie, true)
	expire(w, darkCookie, false)
}

// Token returns the raw persisted bearer token, if any.
func (s *Store) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(tokenCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Current returns the decoded identity for the request, or nil when the
// token is absent, undecodable, or past its exp claim.
func (s *Store) Current(r *http.Request) *Identity {
	token, ok := s.Token(r)
	if !ok {
		return nil
	}
	identity, err := DecodeToken(token)
	if err != nil || identity.Expired() {
		return nil
	}
	return identity
}

// DarkMode reports the persisted display preference.
func (s *Store) DarkMode(r *http.Request) bool {
	c, err := r.Cookie(darkCookie)
	return err == nil && c.Value == "true"
}

// SetDarkMode persists the display preference across reloads.
func (s *Store) SetDarkMode(w http.ResponseWriter, enabled bool) {
	value := "false"
	if enabled {
		value = "true"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     darkCookie,
		Value:    value,
		Path:     "/",
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash is a one-shot notification surfaced on the next rendered view and
// then discarded, backing the auto-dismissing toasts.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// SetFlash queues a notification for the next rendered view.
func (s *Store) SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the queued notification, if any, and clears it.
func (s *Store) PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	expire(w, flashCookie, true)

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

func expire(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: httpOnly,
	})
}
