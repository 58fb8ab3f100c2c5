package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// RequestTimeout bounds every single HTTP call to the hub. There is no
// retry: one failed attempt yields an empty result.
const RequestTimeout = 30 * time.Second

// Client talks to one Home Assistant instance over its REST API, using a
// long-lived access token as bearer credential.
type Client struct {
	baseUrl string
	token   string
	http    *http.Client
	log     logr.Logger
}

func NewClient(log logr.Logger, baseUrl string, token string) *Client {
	return &Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		token:   token,
		http:    &http.Client{Timeout: RequestTimeout},
		log:     log.WithName("homeassistant"),
	}
}

func (c *Client) getE(ctx context.Context, path string) (*http.Response, error) {
	requestURL := c.baseUrl + path
	c.log.V(1).Info("Calling", "method", http.MethodGet, "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ha-shelly-export/1.0")

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error(err, "HTTP GET error", "url", requestURL)
		return nil, err
	}
	c.log.V(1).Info("status code", "code", res.StatusCode)
	return res, nil
}

// CheckAPI probes {base}/api/config to verify the hub is reachable and the
// token is accepted, before asking for the full state dump.
func (c *Client) CheckAPI(ctx context.Context) error {
	res, err := c.getE(ctx, "/api/config")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to access Home Assistant API: status %d", res.StatusCode)
	}
	return nil
}

// States fetches the hub's full state dump from {base}/api/states.
func (c *Client) States(ctx context.Context) ([]Entity, error) {
	res, err := c.getE(ctx, "/api/states")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to get states: status %d", res.StatusCode)
	}

	var entities []Entity
	if err := json.NewDecoder(res.Body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("failed to parse states response: %w", err)
	}
	return entities, nil
}

// Entities returns every entity the hub knows about. Any failure along the
// way (connectivity, authentication, malformed payload) is logged and
// degrades to an empty list: callers never see a partial state dump.
func (c *Client) Entities(ctx context.Context) []Entity {
	if err := c.CheckAPI(ctx); err != nil {
		c.log.Error(err, "Home Assistant API is not accessible, check the URL and token")
		return nil
	}
	c.log.Info("Successfully connected to Home Assistant API")

	entities, err := c.States(ctx)
	if err != nil {
		c.log.Error(err, "Unable to get entities from Home Assistant")
		return nil
	}
	c.log.Info("Retrieved entities from Home Assistant", "count", len(entities))
	return entities
}
