package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"sharklink/internal/config"
	"sharklink/internal/model"
)

const userAgent = "sharklink/1.0"

// ResolverInterface resolves an IP address to a coarse location
type ResolverInterface interface {
	Resolve(ctx context.Context, ip string) (model.Location, error)
}

// Resolver queries an ipapi.co-style JSON endpoint. Lookup failures are
// reported alongside a usable Unknown location so view recording never
// blocks on the provider.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver creates a new geolocation resolver
func NewResolver(cfg *config.GeoConfig) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// apiResponse mirrors the provider's JSON payload
type apiResponse struct {
	CountryName string  `json:"country_name"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
}

// Resolve maps an IP address to a location. Loopback and private
// addresses short-circuit to a local placeholder without a network call.
func (r *Resolver) Resolve(ctx context.Context, ip string) (model.Location, error) {
	if IsLocalAddress(ip) {
		return LocalLocation(), nil
	}

	url := fmt.Sprintf("%s/%s/json/", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return UnknownLocation(), fmt.Errorf("failed to build geo request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return UnknownLocation(), fmt.Errorf("geo lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UnknownLocation(), fmt.Errorf("geo provider returned status %d", resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return UnknownLocation(), fmt.Errorf("failed to decode geo response: %w", err)
	}

	if data.Error {
		return UnknownLocation(), fmt.Errorf("geo provider error: %s", data.Reason)
	}

	loc := model.Location{
		Country:   data.CountryName,
		City:      data.City,
		Region:    data.Region,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
	}
	if loc.Country == "" {
		loc.Country = "Unknown"
	}
	if loc.City == "" {
		loc.City = "Unknown"
	}
	if loc.Region == "" {
		loc.Region = "Unknown"
	}
	return loc, nil
}

// IsLocalAddress reports whether the IP belongs to a development or
// private network where geolocation is meaningless
func IsLocalAddress(ip string) bool {
	if ip == "" || ip == "localhost" || ip == "unknown" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified()
}

// LocalLocation is the placeholder for local/development traffic
func LocalLocation() model.Location {
	return model.Location{
		Country: "Local",
		City:    "Localhost",
		Region:  "Dev",
	}
}

// UnknownLocation is the fallback when the provider cannot be reached
func UnknownLocation() model.Location {
	return model.Location{
		Country: "Unknown",
		City:    "Unknown",
		Region:  "Unknown",
	}
}
