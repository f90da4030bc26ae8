package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

// Decode reads a catalog in YAML or JSON. format is a file extension such as
// ".yaml" or ".json"; anything else is treated as YAML.
func Decode(r io.Reader, format string) (analytics.Catalog, error) {
	var data analytics.Catalog
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return analytics.Catalog{}, fmt.Errorf("catalog: decode json: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&data); err != nil {
			return analytics.Catalog{}, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	}
	if err := Validate(data); err != nil {
		return analytics.Catalog{}, err
	}
	return data, nil
}

// LoadFile decodes a catalog file picking the format from its extension.
func LoadFile(path string) (analytics.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return analytics.Catalog{}, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, filepath.Ext(path))
}

// FileClient serves a catalog file, re-reading it on every fetch.
type FileClient struct {
	path string
}

// NewFileClient builds a FileClient for path.
func NewFileClient(path string) *FileClient {
	return &FileClient{path: path}
}

// FetchCatalog implements CatalogClient.
func (c *FileClient) FetchCatalog(ctx context.Context) (analytics.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return analytics.Catalog{}, err
	}
	return LoadFile(c.path)
}
