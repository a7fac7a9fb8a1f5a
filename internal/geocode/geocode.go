// Package geocode is a thin client for a Nominatim-style reverse
// geocoding endpoint, consumed read-only by the dashboard.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// Result is the subset of the reverse-geocode response the dashboard
// shows next to a dropped pin.
type Result struct {
	DisplayName string `json:"displayName"`
	Road        string `json:"road,omitempty"`
	City        string `json:"city,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Country     string `json:"country,omitempty"`
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

// Reverse looks up the address at a coordinate.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (Result, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "scoutmap/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return Result{}, fmt.Errorf("decoding response: %w", err)
	}

	city := nr.Address.City
	if city == "" {
		city = nr.Address.Town
	}
	return Result{
		DisplayName: nr.DisplayName,
		Road:        nr.Address.Road,
		City:        city,
		Postcode:    nr.Address.Postcode,
		Country:     nr.Address.Country,
	}, nil
}
