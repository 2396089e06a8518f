package internal

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"asset-dashboard/internal/session"
)

//go:embed templates
var templateFS embed.FS

// viewData is the common payload every rendered page receives.
type viewData struct {
	Title    string
	Identity *session.Identity
	IsAdmin  bool
	Flash    *session.Flash
	DarkMode bool
}

// parseTemplates parses each page template against the shared layout.
func parseTemplates() map[string]*template.Template {
	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		log.Fatal("Failed to enumerate templates:", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := page[len("templates/pages/") : len(page)-len(".html")]
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			log.Fatalf("Failed to parse template %s: %v", page, err)
		}
		templates[name] = tmpl
	}
	return templates
}

// view assembles the common payload for the request: the decoded identity
// (if any), the popped flash notification, and the display preference.
func (s *Server) view(w http.ResponseWriter, r *http.Request, title string) viewData {
	identity := session.IdentityFromContext(r.Context())
	if identity == nil {
		identity = s.Sessions.Current(r)
	}
	data := viewData{
		Title:    title,
		Identity: identity,
		Flash:    s.Sessions.PopFlash(w, r),
		DarkMode: s.Sessions.DarkMode(r),
	}
	if identity != nil {
		data.IsAdmin = identity.Role == session.RoleAdmin
	}
	return data
}

// render executes the named page into a buffer first so a template error
// never emits a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		log.Printf("Unknown template %q", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
