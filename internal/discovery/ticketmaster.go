// Package discovery queries the Ticketmaster Discovery API for upcoming
// events, either near a coordinate or globally.
//
// Docs: https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/
// Endpoint used: /discovery/v2/events.json
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// Window lengths match the two query modes: a week of events around a
	// location, a month of events globally.
	NearbyWindow = 7 * 24 * time.Hour
	GlobalWindow = 30 * 24 * time.Hour

	timeFormat = "2006-01-02T15:04:05Z"
)

// Record is the slice of the provider's event payload the catalog cares
// about. Every field may be absent; the ingestion pipeline supplies defaults.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []Venue `json:"venues"`
	} `json:"_embedded"`
}

type Venue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

type discoveryResponse struct {
	Embedded struct {
		Events []Record `json:"events"`
	} `json:"_embedded"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://app.ticketmaster.com"
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
		now: time.Now,
	}
}

// EventsNearby returns events within a week of now around the given
// coordinate. Whatever the first response page holds is the result; there is
// no pagination.
func (c *Client) EventsNearby(ctx context.Context, lat, lng float64) ([]Record, error) {
	q := c.window(NearbyWindow)
	q.Set("latlong", fmt.Sprintf("%f,%f", lat, lng))
	return c.fetch(ctx, q)
}

// Upcoming returns events within a month of now, unscoped by location.
func (c *Client) Upcoming(ctx context.Context) ([]Record, error) {
	return c.fetch(ctx, c.window(GlobalWindow))
}

func (c *Client) window(length time.Duration) url.Values {
	start := c.now().UTC()
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("startDateTime", start.Format(timeFormat))
	q.Set("endDateTime", start.Add(length).Format(timeFormat))
	return q
}

// fetch performs the query. A non-2xx status degrades to an empty record set
// rather than an error, so a failed upstream turns the ingestion run into a
// no-op.
func (c *Client) fetch(ctx context.Context, q url.Values) ([]Record, error) {
	u := fmt.Sprintf("%s/discovery/v2/events.json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	var body discoveryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("discovery: decoding response: %w", err)
	}
	return body.Embedded.Events, nil
}
