package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "40.416800", r.URL.Query().Get("lat"))
		assert.Equal(t, "-3.703800", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Plaza del Ángel, Madrid, España",
			"address": {
				"road": "Plaza del Ángel",
				"city": "Madrid",
				"postcode": "28012",
				"country": "España"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Reverse(context.Background(), 40.4168, -3.7038)
	require.NoError(t, err)

	assert.Equal(t, "Plaza del Ángel, Madrid, España", res.DisplayName)
	assert.Equal(t, "Madrid", res.City)
	assert.Equal(t, "28012", res.Postcode)
}

func TestReverseFallsBackToTown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "x", "address": {"town": "Alcalá de Henares"}}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Reverse(context.Background(), 40.48, -3.36)
	require.NoError(t, err)
	assert.Equal(t, "Alcalá de Henares", res.City)
}

func TestReverseUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Reverse(context.Background(), 40.4168, -3.7038)
	assert.Error(t, err)
}
