// Package web composes the portal: public pages, the admission wizard and
// the admin console, all rendered server-side over the external REST API.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abdinajib123/Online-student-admission/internal/api"
	"github.com/Abdinajib123/Online-student-admission/internal/model"
	"github.com/Abdinajib123/Online-student-admission/internal/session"
	"github.com/Abdinajib123/Online-student-admission/internal/wizard"
)

type publicProgramsView struct {
	Programs []model.Program
	Error    string
}

//go:embed static/*
var staticFS embed.FS

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portal_http_requests_total",
	Help: "Portal HTTP requests by method and status.",
}, []string{"method", "status"})

type Server struct {
	api      *api.Client
	sessions *session.Store
	drafts   *wizard.DraftStore
	validate *validator.Validate
	tmpl     map[string]*template.Template
}

func NewServer(apiClient *api.Client, sessions *session.Store, drafts *wizard.DraftStore) *Server {
	return &Server{
		api:      apiClient,
		sessions: sessions,
		drafts:   drafts,
		validate: validator.New(),
		tmpl:     parseTemplates(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/", s.handleHome)
	r.Get("/programs", s.handlePublicPrograms)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContact)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Get("/admission", s.handleWizard)
	r.Post("/admission", s.handleWizardPost)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/", s.handleDashboard)
		r.Get("/students", s.handleStudents)
		r.Get("/programs", s.handleProgramsScreen)
		r.Post("/programs", s.handleCreateProgram)
		r.Get("/faculties", s.handleFacultiesScreen)
		r.Post("/faculties", s.handleCreateFaculty)
		r.Get("/departments", s.handleDepartmentsScreen)
		r.Post("/departments", s.handleCreateDepartment)
		r.Get("/{resource}/{id}/edit", s.handleEditStub)
		r.Get("/{resource}/{id}/delete", s.handleDeleteConfirm)
		r.Post("/{resource}/{id}/delete", s.handleDelete)
	})

	return r
}

// requireAdmin gates the admin console on a logged-in admin identity.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.sessions.Current(r)
		if user == nil || !user.IsAdmin() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(recorder.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// userMessage keeps upstream messages user-visible while hiding transport
// errors behind a generic fallback.
func userMessage(err error, fallback string) string {
	if apiErr, ok := err.(*api.Error); ok {
		return apiErr.Message
	}
	return fallback
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", "Home", nil)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about", "About", nil)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact", "Contact", nil)
}

func (s *Server) handlePublicPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.api.Programs(r.Context())
	if err != nil {
		s.render(w, r, http.StatusOK, "programs", "Programs", publicProgramsView{
			Error: userMessage(err, "Failed to load programs"),
		})
		return
	}
	s.render(w, r, http.StatusOK, "programs", "Programs", publicProgramsView{Programs: programs})
}

type loginView struct {
	Email string
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", "Login", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "login", "Login", loginView{Error: "Invalid form submission"})
		return
	}
	creds := session.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	result := s.sessions.Login(r.Context(), w, creds)
	if !result.OK {
		s.render(w, r, http.StatusUnauthorized, "login", "Login", loginView{
			Email: creds.Email,
			Error: result.Message,
		})
		return
	}
	if result.User.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
