// Package config provides configuration loading for fast-trip.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fast-trip/model"
)

// Environment variables that override file configuration.
const (
	EnvAPIBaseURL  = "FASTTRIP_API_BASE_URL"
	EnvMapsAPIKey  = "FASTTRIP_MAPS_API_KEY"
	EnvListenAddr  = "FASTTRIP_ADDR"
	DefaultAddress = ":3000"
)

// Config is read once at startup and handed to constructors; nothing reads
// it from a global.
type Config struct {
	API          APIConfig                 `yaml:"api"`
	Maps         MapsConfig                `yaml:"maps"`
	Server       ServerConfig              `yaml:"server"`
	Views        ViewsConfig               `yaml:"views"`
	Chat         ChatConfig                `yaml:"chat"`
	Itinerary    ItineraryConfig           `yaml:"itinerary"`
	FlightSearch model.FlightSearchRequest `yaml:"flight_search"`
}

type APIConfig struct {
	// BaseURL is the root of the remote travel API (e.g. http://localhost:8000/api)
	BaseURL string `yaml:"base_url"`
}

type MapsConfig struct {
	// APIKey is the Google Maps Embed API key. Empty disables the map.
	APIKey string `yaml:"api_key"`
	Center LatLng `yaml:"center"`
	Zoom   int    `yaml:"zoom"`
}

type LatLng struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type ViewsConfig struct {
	// IdleTTL closes page views nobody touched for this long
	IdleTTL time.Duration `yaml:"idle_ttl"`
}

type ChatConfig struct {
	Greeting string `yaml:"greeting"`
}

type ItineraryConfig struct {
	// Path to an itinerary JSON document. Empty uses the bundled itinerary.
	Path string `yaml:"path"`
	// Watch reloads the document when it changes on disk.
	Watch bool `yaml:"watch"`
}

// DefaultConfig returns a Config with the values the front-end ships with.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
		},
		Maps: MapsConfig{
			Center: LatLng{Lat: 36.1627, Lng: -86.7816}, // Nashville
			Zoom:   13,
		},
		Server: ServerConfig{
			Addr:         DefaultAddress,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		Views: ViewsConfig{
			IdleTTL: 30 * time.Minute,
		},
		Chat: ChatConfig{
			Greeting: "Hi! I'm your accessible travel assistant. Where will your trip start?",
		},
		FlightSearch: model.FlightSearchRequest{
			Origin:                    "Boston",
			Destination:               "Nashville",
			DepartureDate:             "2025-06-22",
			ReturnDate:                "2025-06-22",
			NumTravelers:              4,
			Budget:                    model.BudgetMedium,
			AccessibilityRequirements: true,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Views.IdleTTL <= 0 {
		return fmt.Errorf("views.idle_ttl must be positive")
	}
	if c.FlightSearch.NumTravelers < 1 {
		return fmt.Errorf("flight_search.num_travelers must be at least 1")
	}
	if !c.FlightSearch.Budget.Valid() {
		return fmt.Errorf("flight_search.budget must be one of low, medium, high; got %q", c.FlightSearch.Budget)
	}
	if c.FlightSearch.Origin == "" || c.FlightSearch.Destination == "" {
		return fmt.Errorf("flight_search.origin and flight_search.destination are required")
	}
	if c.Itinerary.Watch && c.Itinerary.Path == "" {
		return fmt.Errorf("itinerary.watch requires itinerary.path")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvMapsAPIKey); v != "" {
		c.Maps.APIKey = v
	}
	if v := getenv(EnvListenAddr); v != "" {
		c.Server.Addr = v
	}
}

// Load resolves the effective configuration: defaults, then the optional
// file, then the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}
