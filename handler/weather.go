package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fhsmendes/skycast/models"
	"github.com/fhsmendes/skycast/screen"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type weatherPage struct {
	Title         string
	Query         models.Query
	View          string
	State         models.ViewState
	FailedMessage string
}

// fragmentHeader is set by the weather page script when it pulls the view.
const fragmentHeader = "X-Requested-With"

type ErrorResponse struct {
	Message string `json:"message"`
}

// queryFrom returns nil when the request carries no usable city.
func queryFrom(r *http.Request) *models.Query {
	q, err := models.NewQuery(r.URL.Query().Get("city"))
	if err != nil {
		return nil
	}
	return &q
}

// WeatherPage renders the loading state; the page then pulls /weather/view.
func (h *Handler) WeatherPage(w http.ResponseWriter, r *http.Request) {
	q := queryFrom(r)
	if q == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, "weather_page", weatherPage{
		Title:         "SkyCast",
		Query:         *q,
		View:          uuid.NewString(),
		State:         models.Loading(),
		FailedMessage: screen.NotFoundMessage,
	})
}

// viewScreen returns the screen owned by one weather page load. Requests
// without a valid view token get a one-off screen.
func (h *Handler) viewScreen(w http.ResponseWriter, r *http.Request) (*screen.Weather, string) {
	view, err := uuid.Parse(r.URL.Query().Get("view"))
	if err != nil {
		return h.newScreen(), ""
	}
	key := h.sessionID(w, r) + "/" + view.String()
	return h.sessions.Get(key, h.now()), key
}

func isFragmentRequest(r *http.Request) bool {
	return r.Header.Get(fragmentHeader) == "fetch"
}

// WeatherView runs the fetch for one weather page load. Script requests get
// the Failed or Ready fragment, anything else the full page. A request
// superseded by a newer fetch for the same page load gets 204.
func (h *Handler) WeatherView(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("skycast-handler").Start(r.Context(), "weather-view")
	defer span.End()

	reqID := middleware.GetReqID(ctx)
	q := queryFrom(r)
	if q == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ws, key := h.viewScreen(w, r)

	state, _, err := ws.Open(ctx, q)
	if errors.Is(err, screen.ErrSuperseded) {
		log.Printf("[%s] view %s: result discarded, newer fetch pending", reqID, key)
		span.SetAttributes(attribute.Bool("superseded", true))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	span.SetAttributes(attribute.String("view.state", string(state.Kind)))
	if isFragmentRequest(r) {
		h.render(w, r, http.StatusOK, "view", state)
		return
	}
	h.render(w, r, http.StatusOK, "weather_page", weatherPage{
		Title:         "SkyCast",
		Query:         *q,
		State:         state,
		FailedMessage: screen.NotFoundMessage,
	})
}

// WeatherAPI returns the resulting view state as JSON.
func (h *Handler) WeatherAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("skycast-handler").Start(r.Context(), "weather-api")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")

	q := queryFrom(r)
	if q == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Message: screen.EmptyCityMessage})
		return
	}

	state, err := h.newScreen().Load(ctx, *q)
	if err != nil {
		log.Printf("[%s] weather api: %v", middleware.GetReqID(ctx), err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "internal server error"})
		return
	}

	status := http.StatusOK
	if state.Kind == models.ViewFailed {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(state)
}
