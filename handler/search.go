package handler

import (
	"log"
	"net/http"
	"net/url"

	"github.com/fhsmendes/skycast/models"
	"github.com/fhsmendes/skycast/screen"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type searchPage struct {
	Title  string
	Search *screen.Search
}

func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "search_page", searchPage{Title: "SkyCast", Search: &screen.Search{}})
}

// SearchSubmit validates the form and redirects to the weather screen.
func (h *Handler) SearchSubmit(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("skycast-handler").Start(r.Context(), "search-submit")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Printf("[%s] invalid form: %v", middleware.GetReqID(r.Context()), err)
	}

	s := &screen.Search{}
	ok := s.Submit(r.PostFormValue("city"), func(q models.Query) {
		span.SetAttributes(attribute.String("city", q.City))
		http.Redirect(w, r, WeatherURL(q), http.StatusSeeOther)
	})
	if !ok {
		span.SetAttributes(attribute.String("error", "empty city"))
		h.render(w, r, http.StatusUnprocessableEntity, "search_page", searchPage{Title: "SkyCast", Search: s})
	}
}

// WeatherURL is where a query is sent after a successful search.
func WeatherURL(q models.Query) string {
	return "/weather?" + url.Values{"city": {q.City}}.Encode()
}
