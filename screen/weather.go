package screen

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/fhsmendes/skycast/models"
	"github.com/fhsmendes/skycast/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const NotFoundMessage = "City not found. Please try again."

// ErrSuperseded is returned by a load whose query was replaced before it finished.
var ErrSuperseded = errors.New("weather load superseded by a newer query")

// Weather is the weather screen state machine. Every Load starts a new
// generation; only the latest generation may publish a result.
type Weather struct {
	client utils.WeatherAPIClient

	mu     sync.Mutex
	apiKey string
	query  *models.Query
	state  models.ViewState
	gen    uint64
	cancel context.CancelFunc
}

func NewWeather(client utils.WeatherAPIClient, apiKey string) *Weather {
	return &Weather{
		client: client,
		apiKey: apiKey,
		state:  models.Loading(),
	}
}

// Open is the screen entry point. A nil or blank query asks the caller to
// redirect to the search screen and nothing is fetched.
func (w *Weather) Open(ctx context.Context, q *models.Query) (state models.ViewState, redirect bool, err error) {
	if q == nil || strings.TrimSpace(q.City) == "" {
		return w.State(), true, nil
	}
	state, err = w.Load(ctx, *q)
	return state, false, err
}

// Load fetches current weather for q, cancelling any fetch still running for
// an older query.
func (w *Weather) Load(ctx context.Context, q models.Query) (models.ViewState, error) {
	ctx, span := otel.Tracer("skycast-screen").Start(ctx, "load-weather")
	defer span.End()

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.gen++
	gen := w.gen
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.query = &q
	w.state = models.Loading()
	apiKey := w.apiKey
	w.mu.Unlock()
	defer cancel()

	span.SetAttributes(
		attribute.String("city", q.City),
		attribute.Int64("generation", int64(gen)),
	)

	report, err := w.client.GetWeather(ctx, q.City, apiKey)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen {
		span.SetAttributes(attribute.Bool("superseded", true))
		return w.state, ErrSuperseded
	}
	w.cancel = nil

	if err != nil {
		log.Printf("weather lookup for %q failed: %v", q.City, err)
		w.state = models.Failed(NotFoundMessage)
		return w.state, nil
	}

	w.state = models.Ready(report, utils.ConvertTemperatures(report.TempKelvin))
	return w.state, nil
}

// SetCredential swaps the provider API key and refetches the active query
// when the key actually changed.
func (w *Weather) SetCredential(ctx context.Context, apiKey string) (models.ViewState, error) {
	w.mu.Lock()
	if apiKey == w.apiKey || w.query == nil {
		w.apiKey = apiKey
		state := w.state
		w.mu.Unlock()
		return state, nil
	}
	w.apiKey = apiKey
	q := *w.query
	w.mu.Unlock()

	return w.Load(ctx, q)
}

func (w *Weather) State() models.ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Query returns the active query, or nil before the first load.
func (w *Weather) Query() *models.Query {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.query == nil {
		return nil
	}
	q := *w.query
	return &q
}
