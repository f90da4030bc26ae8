package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ManifestVersion is the only manifest format spactl writes and the
// dashboard reads.
const ManifestVersion = "1"

// BuiltinEntryPrefix marks a provider entry that reuses a registered
// provider, e.g. "builtin:spa.widget.patient_stats".
const BuiltinEntryPrefix = "builtin:"

// WidgetManifestDocument is a YAML file of extra spa widgets, usually a saved
// filter over a built-in provider or a widget served by the host app.
type WidgetManifestDocument struct {
	Version  string           `json:"version" yaml:"version"`
	Name     string           `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string           `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string           `json:"homepage,omitempty" yaml:"homepage,omitempty" validate:"omitempty,url"`
	Widgets  []ManifestWidget `json:"widgets" yaml:"widgets" validate:"dive"`
	Source   string           `json:"-" yaml:"-"`
}

type ManifestWidget struct {
	Definition  WidgetDefinition `json:"definition" yaml:"definition"`
	Provider    ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty" validate:"dive,required"`
}

// ManifestProvider describes where a widget's data comes from. Entry is
// either BuiltinEntryPrefix plus a registered code, or a Go constructor path
// the host application binds itself.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Entry        string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty" validate:"omitempty,url"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Channel      string   `json:"channel,omitempty" yaml:"channel,omitempty"`
}

var (
	manifestValidatorOnce sync.Once
	manifestValidator     *validator.Validate
)

func manifestRules() *validator.Validate {
	manifestValidatorOnce.Do(func() {
		manifestValidator = validator.New()
		manifestValidator.RegisterStructValidation(func(sl validator.StructLevel) {
			def := sl.Current().Interface().(WidgetDefinition)
			if strings.TrimSpace(def.Code) == "" {
				sl.ReportError(def.Code, "Code", "code", "required", "")
			}
			if strings.TrimSpace(def.Name) == "" {
				sl.ReportError(def.Name, "Name", "name", "required", "")
			}
		}, WidgetDefinition{})
	})
	return manifestValidator
}

// Validate checks the version, the required definition fields and that
// widget codes are unique.
func (doc *WidgetManifestDocument) Validate() error {
	if doc.Version != ManifestVersion {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	if err := manifestRules().Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("dashboard: validate manifest: %w", err)
		}
		errs := make([]error, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, fmt.Errorf("dashboard: manifest %s failed %q", fe.Namespace(), fe.Tag()))
		}
		return errors.Join(errs...)
	}
	codes := make([]string, 0, len(doc.Widgets))
	for _, widget := range doc.Widgets {
		if slices.Contains(codes, widget.Definition.Code) {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s", widget.Definition.Code)
		}
		codes = append(codes, widget.Definition.Code)
	}
	return nil
}

// DecodeManifest parses and validates a manifest. Unknown keys are errors so
// typos in hand-written files surface at boot.
func DecodeManifest(r io.Reader) (*WidgetManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	doc := WidgetManifestDocument{}
	switch err := decoder.Decode(&doc); {
	case errors.Is(err, io.EOF):
		return nil, errors.New("dashboard: manifest is empty")
	case err != nil:
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadManifest decodes the manifest at path without registering it.
func ReadManifest(path string) (*WidgetManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// LoadManifestDocument registers each widget definition and its provider
// metadata. Builtin entries bind the named provider to the new code.
func (r *Registry) LoadManifestDocument(doc *WidgetManifestDocument) error {
	if doc == nil {
		return errors.New("dashboard: manifest document is nil")
	}
	for _, widget := range doc.Widgets {
		code := widget.Definition.Code
		if err := r.RegisterDefinition(widget.Definition); err != nil {
			return fmt.Errorf("dashboard: manifest %s: %w", doc.Source, err)
		}
		r.recordProviderMetadata(code, widget.Provider)
		target, ok := widget.Provider.builtinTarget()
		if !ok {
			continue
		}
		provider, found := r.Provider(target)
		if !found {
			return fmt.Errorf("dashboard: widget %s references unknown builtin provider %s", code, target)
		}
		if err := r.RegisterProvider(code, provider); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifestFile reads and registers the manifest at path.
func (r *Registry) LoadManifestFile(path string) (*WidgetManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, r.LoadManifestDocument(doc)
}

// LoadManifestDir registers every .yaml and .yml file in dir, in name order,
// stopping at the first failure.
func (r *Registry) LoadManifestDir(dir string) ([]*WidgetManifestDocument, error) {
	paths, err := manifestPaths(dir)
	if err != nil {
		return nil, err
	}
	docs := make([]*WidgetManifestDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := r.LoadManifestFile(path)
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func manifestPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read manifest dir %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			if !entry.IsDir() {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (p ManifestProvider) builtinTarget() (string, bool) {
	rest, ok := strings.CutPrefix(p.Entry, BuiltinEntryPrefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" && p.Summary == "" && p.Entry == "" && p.Package == "" &&
		p.DocsURL == "" && p.Channel == "" && len(p.Capabilities) == 0
}
