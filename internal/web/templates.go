package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/Abdinajib123/Online-student-admission/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = []string{
	"home", "programs", "about", "contact", "login",
	"dashboard", "resource", "confirm", "notice", "error",
	"wizard", "done",
}

func parseTemplates() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		parsed[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/_table.tmpl",
			"templates/_modal.tmpl",
			"templates/"+name+".tmpl",
		))
	}
	return parsed
}

type page struct {
	Title string
	User  *model.Identity
	CSRF  template.HTML
	Data  interface{}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	tmpl, ok := s.tmpl[name]
	if !ok {
		log.Printf("missing template %s", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := tmpl.ExecuteTemplate(w, "layout", page{
		Title: title,
		User:  s.sessions.Current(r),
		CSRF:  csrf.TemplateField(r),
		Data:  data,
	})
	if err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
