package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	WeatherAPIKey   string
	ProviderURL     string
	ProviderTimeout time.Duration
	SessionTTL      time.Duration
	ServiceName     string
	OTLPEndpoint    string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found")
	}

	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("VITE_WEATHER_API_KEY")
	}
	if apiKey == "" {
		log.Println("WEATHER_API_KEY is not set; provider requests will be rejected")
	}

	providerTimeout := getDurationOrDefault("PROVIDER_TIMEOUT", 10*time.Second)

	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		WeatherAPIKey:   apiKey,
		ProviderURL:     os.Getenv("PROVIDER_URL"),
		ProviderTimeout: providerTimeout,
		SessionTTL:      getDurationOrDefault("SESSION_TTL", 30*time.Minute),
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "skycast"),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ShutdownTimeout: getDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    writeTimeout(providerTimeout),
		IdleTimeout:     60 * time.Second,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}

// writeTimeout leaves room to render the view after the provider call has
// used its full timeout.
func writeTimeout(providerTimeout time.Duration) time.Duration {
	const base, margin = 15 * time.Second, 5 * time.Second
	if providerTimeout+margin > base {
		return providerTimeout + margin
	}
	return base
}
