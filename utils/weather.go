package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fhsmendes/skycast/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultProviderURL = "https://api.openweathermap.org"
	currentWeatherPath = "/data/2.5/weather"
)

var (
	ErrProviderStatus  = errors.New("weather provider returned non-2xx status")
	ErrMalformedReport = errors.New("weather provider returned a malformed report")
)

type WeatherAPIClient interface {
	GetWeather(ctx context.Context, city, apiKey string) (models.WeatherReport, error)
}

// Client calls the OpenWeatherMap current weather endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a provider client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultProviderURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentWeatherURL builds GET {base}/data/2.5/weather?q=<city>&appid=<key>.
func CurrentWeatherURL(baseURL, city, apiKey string) string {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", apiKey)
	return strings.TrimRight(baseURL, "/") + currentWeatherPath + "?" + params.Encode()
}

func (c *Client) GetWeather(ctx context.Context, city, apiKey string) (models.WeatherReport, error) {
	ctx, span := otel.Tracer("skycast-provider").Start(ctx, "get-current-weather")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, CurrentWeatherURL(c.BaseURL, city, apiKey), nil)
	if err != nil {
		return fail(span, "failed to create request", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fail(span, "failed to get weather", fmt.Errorf("failed to get weather: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(span, "weather API returned error status", fmt.Errorf("%w: %d", ErrProviderStatus, resp.StatusCode))
	}

	var body models.OpenWeather
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fail(span, "failed to decode response", fmt.Errorf("%w: %v", ErrMalformedReport, err))
	}

	report, err := ToReport(body)
	if err != nil {
		return fail(span, "incomplete response", err)
	}

	return report, nil
}

// ToReport converts a decoded body, rejecting it if any displayed field is absent.
func ToReport(body models.OpenWeather) (models.WeatherReport, error) {
	switch {
	case body.Name == nil:
		return models.WeatherReport{}, fmt.Errorf("%w: missing name", ErrMalformedReport)
	case len(body.Weather) == 0:
		return models.WeatherReport{}, fmt.Errorf("%w: missing weather", ErrMalformedReport)
	case body.Main == nil || body.Main.Temp == nil || body.Main.Humidity == nil:
		return models.WeatherReport{}, fmt.Errorf("%w: missing main", ErrMalformedReport)
	case body.Wind == nil || body.Wind.Speed == nil:
		return models.WeatherReport{}, fmt.Errorf("%w: missing wind", ErrMalformedReport)
	}

	conditions := make([]models.Condition, 0, len(body.Weather))
	for i, w := range body.Weather {
		if w.Main == nil || w.Description == nil {
			return models.WeatherReport{}, fmt.Errorf("%w: incomplete weather[%d]", ErrMalformedReport, i)
		}
		conditions = append(conditions, models.Condition{Main: *w.Main, Description: *w.Description})
	}

	return models.WeatherReport{
		Name:       *body.Name,
		Conditions: conditions,
		TempKelvin: *body.Main.Temp,
		Humidity:   *body.Main.Humidity,
		WindSpeed:  *body.Wind.Speed,
	}, nil
}

func fail(span trace.Span, status string, err error) (models.WeatherReport, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return models.WeatherReport{}, err
}
