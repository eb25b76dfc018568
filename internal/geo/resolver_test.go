package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharklink/internal/config"
)

func newTestResolver(handler http.HandlerFunc) (*Resolver, *httptest.Server) {
	srv := httptest.NewServer(handler)
	resolver := NewResolver(&config.GeoConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
	return resolver, srv
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("successful lookup", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/203.0.113.10/json/", r.URL.Path)
			assert.Equal(t, "sharklink/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"country_name":"Germany","city":"Berlin","region":"Berlin","latitude":52.52,"longitude":13.405}`))
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		require.NoError(t, err)
		assert.Equal(t, "Germany", loc.Country)
		assert.Equal(t, "Berlin", loc.City)
		assert.Equal(t, "Berlin", loc.Region)
		assert.InDelta(t, 52.52, loc.Latitude, 0.001)
	})

	t.Run("missing fields default to Unknown", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"latitude":1.0,"longitude":2.0}`))
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		require.NoError(t, err)
		assert.Equal(t, "Unknown", loc.Country)
		assert.Equal(t, "Unknown", loc.City)
		assert.Equal(t, "Unknown", loc.Region)
	})

	t.Run("provider error payload falls back to Unknown", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		assert.Error(t, err)
		assert.Equal(t, UnknownLocation(), loc)
	})

	t.Run("non-2xx falls back to Unknown", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		assert.Error(t, err)
		assert.Equal(t, UnknownLocation(), loc)
	})

	t.Run("malformed body falls back to Unknown", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		assert.Error(t, err)
		assert.Equal(t, UnknownLocation(), loc)
	})

	t.Run("unreachable provider falls back to Unknown", func(t *testing.T) {
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {})
		srv.Close() // close before the call

		loc, err := resolver.Resolve(ctx, "203.0.113.10")
		assert.Error(t, err)
		assert.Equal(t, UnknownLocation(), loc)
	})

	t.Run("local address short-circuits without a request", func(t *testing.T) {
		called := false
		resolver, srv := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
		defer srv.Close()

		loc, err := resolver.Resolve(ctx, "127.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, LocalLocation(), loc)
		assert.False(t, called)
	})
}

func TestIsLocalAddress(t *testing.T) {
	tests := []struct {
		ip    string
		local bool
	}{
		{"127.0.0.1", true},
		{"::1", true},
		{"localhost", true},
		{"unknown", true},
		{"", true},
		{"10.0.0.5", true},
		{"192.168.1.1", true},
		{"0.0.0.0", true},
		{"203.0.113.10", false},
		{"2001:db8::1", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.local, IsLocalAddress(tt.ip))
		})
	}
}

func TestLocationPlaceholders(t *testing.T) {
	local := LocalLocation()
	assert.Equal(t, "Local", local.Country)
	assert.Equal(t, "Localhost", local.City)
	assert.Equal(t, "Dev", local.Region)

	unknown := UnknownLocation()
	assert.Equal(t, "Unknown", unknown.Country)
	assert.Equal(t, "Unknown", unknown.City)
	assert.Equal(t, "Unknown", unknown.Region)
}
