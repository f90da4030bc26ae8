package catalog

import (
	"context"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

// CatalogClient fetches a full catalog snapshot from an upstream booking system.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) (analytics.Catalog, error)
}

// ServiceClient fetches the service menu.
type ServiceClient interface {
	FetchServices(ctx context.Context) ([]analytics.Service, error)
}

// PatientClient fetches patients matching a query.
type PatientClient interface {
	FetchPatients(ctx context.Context, query PatientQuery) ([]analytics.Patient, error)
}

// Client is a convenience union for upstreams that implement every call.
type Client interface {
	CatalogClient
	ServiceClient
	PatientClient
}

// PatientQuery filters patients upstream.
type PatientQuery struct {
	Search string
	Status analytics.PatientStatus
}
