// Package discovery finds the connected warehouse robot. It wraps the
// connected-endpoints enumeration API: given session credentials it
// returns the endpoint ids of the gadgets currently paired with the
// user's device. The dispatcher only cares whether the first one exists.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/warebot/go-warebot/internal/httpc"
)

// endpointsPath is the enumeration API path.
const endpointsPath = "/v1/endpoints"

// Sentinel errors for the discovery package.
var (
	// ErrNoBaseURL indicates a client constructed without an API URL.
	ErrNoBaseURL = errors.New("discovery: API base URL is required")
)

// Endpoint is one connected gadget as reported by the enumeration API.
type Endpoint struct {
	EndpointID   string `json:"endpointId"`
	FriendlyName string `json:"friendlyName,omitempty"`
}

// response is the enumeration API reply envelope.
type response struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// Client calls the enumeration API with a bearer token.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a discovery client for the API at baseURL, authorized
// with the given access token. The oauth2 transport injects the bearer
// header; the base transport keeps the shared httpc timeouts.
func NewClient(baseURL, accessToken string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	authed := &http.Client{
		Timeout: httpc.DefaultTimeout,
		Transport: &oauth2.Transport{
			Source: src,
			Base:   httpc.NewTransport(),
		},
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    authed,
	}, nil
}

// ConnectedEndpoints returns the gadgets currently connected.
func (c *Client) ConnectedEndpoints(ctx context.Context) ([]Endpoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpointsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("discovery: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery: query endpoints: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("discovery: endpoints API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("discovery: decode endpoints: %w", err)
	}
	return out.Endpoints, nil
}

// FirstEndpointID returns the id of the first connected gadget, or ""
// when none are connected.
func (c *Client) FirstEndpointID(ctx context.Context) (string, error) {
	endpoints, err := c.ConnectedEndpoints(ctx)
	if err != nil {
		return "", err
	}
	if len(endpoints) == 0 {
		return "", nil
	}
	return endpoints[0].EndpointID, nil
}
