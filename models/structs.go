package models

import (
	"errors"
	"strings"
)

// ErrEmptyCity is returned when a city name is blank after trimming.
var ErrEmptyCity = errors.New("please enter a city name")

// Query is the city handed from the search screen to the weather screen.
type Query struct {
	City string `json:"city"`
}

// NewQuery trims city and rejects blank input.
func NewQuery(city string) (Query, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Query{}, ErrEmptyCity
	}
	return Query{City: city}, nil
}

// Temperature holds display temperatures derived from the provider's kelvin reading.
type Temperature struct {
	Celsius    int `json:"celsius"`
	Fahrenheit int `json:"fahrenheit"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// WeatherReport is a successful current-weather response.
type WeatherReport struct {
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
	TempKelvin float64     `json:"temp_kelvin"`
	Humidity   float64     `json:"humidity"`
	WindSpeed  float64     `json:"wind_speed"`
}

// Primary returns the first reported condition.
func (r WeatherReport) Primary() Condition {
	if len(r.Conditions) == 0 {
		return Condition{}
	}
	return r.Conditions[0]
}

// OpenWeather is the raw body of /data/2.5/weather. Pointers distinguish
// missing fields from zero values.
type OpenWeather struct {
	Name    *string `json:"name"`
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type ViewKind string

const (
	ViewLoading ViewKind = "loading"
	ViewFailed  ViewKind = "failed"
	ViewReady   ViewKind = "ready"
)

// ViewState is what the weather screen currently shows. Message is set only
// for ViewFailed, Report and Temperature only for ViewReady.
type ViewState struct {
	Kind        ViewKind       `json:"state"`
	Message     string         `json:"message,omitempty"`
	Report      *WeatherReport `json:"report,omitempty"`
	Temperature *Temperature   `json:"temperature,omitempty"`
}

func Loading() ViewState {
	return ViewState{Kind: ViewLoading}
}

func Failed(message string) ViewState {
	return ViewState{Kind: ViewFailed, Message: message}
}

func Ready(report WeatherReport, temp Temperature) ViewState {
	return ViewState{Kind: ViewReady, Report: &report, Temperature: &temp}
}
