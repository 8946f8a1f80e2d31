package providers

import (
	"context"

	"ise-marketing/propdesk/internal/models/dtos"
)

// PropertyProvider defines the interface for external property list sources
type PropertyProvider interface {
	// ListProperties returns every property the source knows about
	ListProperties(ctx context.Context) ([]dtos.Property, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

var _ PropertyProvider = (*PropertyAPIProvider)(nil)
