package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/fhsmendes/skycast/screen"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const sessionCookie = "skycast_session"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler serves the search and weather screens.
type Handler struct {
	sessions  *screen.Registry
	newScreen func() *screen.Weather
	now       func() time.Time
}

// New wires handlers to a session registry and a factory for one-off screens
// used by the JSON endpoint.
func New(sessions *screen.Registry, newScreen func() *screen.Weather) *Handler {
	return &Handler{
		sessions:  sessions,
		newScreen: newScreen,
		now:       time.Now,
	}
}

// NewRouter registers every route behind the standard chi middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", h.SearchPage)
	r.Post("/", h.SearchSubmit)
	r.Get("/weather", h.WeatherPage)
	r.Get("/weather/view", h.WeatherView)
	r.Get("/api/weather", h.WeatherAPI)
	r.Get("/health", h.Health)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[%s] template %s: %v", middleware.GetReqID(r.Context()), name, err)
	}
}

// sessionID returns the browser's session id, issuing a new one when the
// cookie is absent or not a UUID.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
