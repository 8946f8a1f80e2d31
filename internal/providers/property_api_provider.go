package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/revenue"
)

const propertiesEndpoint = "/api/properties"

// PropertyAPIProvider reads the property list from a running propdesk server
type PropertyAPIProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewPropertyAPIProvider(baseURL string) *PropertyAPIProvider {
	return &PropertyAPIProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: common.NewLoggingTransport(nil),
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *PropertyAPIProvider) GetProviderType() string {
	return "propdesk_api"
}

// ListProperties fetches GET /api/properties. A request that fails or comes
// back non-2xx is logged and treated as no data. A 2xx response whose data is
// not a list returns revenue.ErrMalformedPayload.
func (p *PropertyAPIProvider) ListProperties(ctx context.Context) ([]dtos.Property, error) {
	url := p.BaseURL + propertiesEndpoint
	log := logging.WithComponent("property_api_provider")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		log.Warnw("Property list fetch failed", "url", url, "error", err)
		return []dtos.Property{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warnw("Property list fetch returned error status",
			"url", url,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return []dtos.Property{}, nil
	}

	props, err := revenue.DecodeListResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Debugw("Property list fetched", "url", url, "count", len(props))
	return props, nil
}

func (p *PropertyAPIProvider) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}
