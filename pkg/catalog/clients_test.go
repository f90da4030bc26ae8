package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

type countingClient struct {
	calls int
	err   error
	data  analytics.Catalog
}

func (c *countingClient) FetchCatalog(context.Context) (analytics.Catalog, error) {
	c.calls++
	return c.data, c.err
}

func TestMockClientReturnsCopies(t *testing.T) {
	mock := NewMockClient(analytics.SampleCatalogAt(fixedNow))

	first, err := mock.FetchCatalog(context.Background())
	require.NoError(t, err)
	first.Therapists[0].Specialties[0] = "changed"
	first.Occupancy.Days[0].Slots[0] = -1

	second, err := mock.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Deep Tissue", second.Therapists[0].Specialties[0])
	assert.Equal(t, 45.0, second.Occupancy.Days[0].Slots[0])

	patients, err := mock.FetchPatients(context.Background(), PatientQuery{Status: analytics.PatientInactive})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p8", patients[0].ID)

	mock.SetCatalog(analytics.Catalog{})
	services, err := mock.FetchServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestCachedClientMemoizes(t *testing.T) {
	upstream := &countingClient{data: analytics.SampleCatalogAt(fixedNow)}
	cached := NewCachedClient(upstream, time.Minute)

	_, err := cached.FetchCatalog(context.Background())
	require.NoError(t, err)
	data, err := cached.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)
	assert.Len(t, data.Services, 10)

	cached.Invalidate()
	_, err = cached.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	upstream := &countingClient{err: errors.New("down")}
	cached := NewCachedClient(upstream, 0)

	_, err := cached.FetchCatalog(context.Background())
	require.Error(t, err)
	_, err = cached.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
services:
  - id: s1
    name: Swedish Massage
    category: massage
    duration: 60
    price: 110
    popularity: 62
    productCost: 12
patients:
  - id: p1
    name: Sarah Mitchell
    email: sarah@example.com
    status: active
    totalSpent: 100
`
	data, err := Decode(strings.NewReader(doc), ".yaml")
	require.NoError(t, err)
	require.Len(t, data.Services, 1)
	assert.Equal(t, 6820.0, analytics.MonthlyRevenue(data.Services[0]))
	require.Len(t, data.Patients, 1)
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	doc := `{"patients":[{"id":"p1","name":"X","status":"sleeping","totalSpent":-5}]}`
	_, err := Decode(strings.NewReader(doc), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")
	assert.Contains(t, err.Error(), "TotalSpent")
}

func TestFileClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services: []\n"), 0o600))

	data, err := NewFileClient(path).FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Services)

	_, err = NewFileClient(filepath.Join(t.TempDir(), "missing.yaml")).FetchCatalog(context.Background())
	require.Error(t, err)
}

func TestValidateSampleCatalog(t *testing.T) {
	require.NoError(t, Validate(analytics.SampleCatalogAt(fixedNow)))
}
