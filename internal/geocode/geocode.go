// Package geocode resolves GPS fixes to human-readable area names through the
// Mapbox reverse-geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
)

// DefaultBaseURL is the public Mapbox API endpoint.
const DefaultBaseURL = "https://api.mapbox.com"

const defaultTimeout = 10 * time.Second

// Client is a Mapbox reverse-geocoding client. Use New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option is a functional option for the geocoding Client.
type Option func(c *Client) error

// WithBaseURL points the client at another API endpoint, typically a test
// server.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base URL %q", base)
		}
		c.baseURL = strings.TrimRight(base, "/")
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.http = hc
		return nil
	}
}

// New creates a Client. An empty token is allowed; such a client answers
// every lookup with domain.ErrUnavailable.
func New(token string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("geocode.New: %w", err)
		}
	}
	return c, nil
}

type placesResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

// AreaName returns the name of the place containing c.
// A response without any place yields domain.ErrNotFound.
func (cl *Client) AreaName(ctx context.Context, c domain.Coordinate) (string, error) {
	if cl.token == "" {
		return "", fmt.Errorf("geocode.Client.AreaName: %w: no access token configured", domain.ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s,%s.json?%s",
		cl.baseURL,
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		url.Values{"types": {"place"}, "access_token": {cl.token}}.Encode(),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("geocode.Client.AreaName: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode.Client.AreaName: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("geocode.Client.AreaName: unexpected status %d", resp.StatusCode)
	}

	var body placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode.Client.AreaName: decode: %w", err)
	}
	if len(body.Features) == 0 {
		return "", fmt.Errorf("geocode.Client.AreaName: %w: no place at %v,%v", domain.ErrNotFound, c.Latitude, c.Longitude)
	}
	return body.Features[0].PlaceName, nil
}
