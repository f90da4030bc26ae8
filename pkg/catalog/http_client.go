package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

// HTTPConfig configures the HTTP catalog client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// SkipValidation disables struct validation of fetched catalogs.
	SkipValidation bool
}

// HTTPClient reads catalog data from a booking system REST API.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	validate bool
}

// NewHTTPClient builds a client for the remote booking API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		client:   httpClient,
		validate: !cfg.SkipValidation,
	}, nil
}

// FetchCatalog implements CatalogClient via GET /catalog.
func (c *HTTPClient) FetchCatalog(ctx context.Context) (analytics.Catalog, error) {
	var resp catalogResponse
	if err := c.do(ctx, "/catalog", &resp); err != nil {
		return analytics.Catalog{}, err
	}
	if c.validate {
		if err := Validate(resp.Data); err != nil {
			return analytics.Catalog{}, err
		}
	}
	return resp.Data, nil
}

// FetchServices implements ServiceClient via GET /services.
func (c *HTTPClient) FetchServices(ctx context.Context) ([]analytics.Service, error) {
	var resp listResponse[analytics.Service]
	if err := c.do(ctx, "/services", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchPatients implements PatientClient via GET /patients.
func (c *HTTPClient) FetchPatients(ctx context.Context, query PatientQuery) ([]analytics.Patient, error) {
	values := url.Values{}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Status != "" {
		values.Set("status", string(query.Status))
	}
	path := "/patients"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp listResponse[analytics.Patient]
	if err := c.do(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) do(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("catalog: remote error %d: %s", resp.StatusCode, strings.TrimSpace(buf.String()))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}

type catalogResponse struct {
	Data        analytics.Catalog `json:"data"`
	GeneratedAt time.Time         `json:"generated_at"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}
