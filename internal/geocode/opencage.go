// Package geocode resolves a city/country pair to coordinates through the
// OpenCage forward-geocoding API.
//
// Docs: https://opencagedata.com/api
// Endpoint used: /geocode/v1/json?q=<city>, <country>&key=<KEY>
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnresolved means the upstream answered but could not place the query.
// Callers treat it as a user-facing miss, not a failure.
var ErrUnresolved = errors.New("geocode: location unresolved")

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.opencagedata.com"
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// Resolve looks up "<city>, <country>" and returns the first result's
// coordinates. A non-2xx status or an empty result list yields ErrUnresolved;
// there is no retry.
func (c *Client) Resolve(ctx context.Context, city, country string) (Coordinates, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s, %s", city, country))
	q.Set("key", c.apiKey)

	u := fmt.Sprintf("%s/geocode/v1/json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Coordinates{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Coordinates{}, ErrUnresolved
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("geocode: decoding response: %w", err)
	}
	if len(body.Results) == 0 {
		return Coordinates{}, ErrUnresolved
	}

	return Coordinates{
		Latitude:  body.Results[0].Geometry.Lat,
		Longitude: body.Results[0].Geometry.Lng,
	}, nil
}
