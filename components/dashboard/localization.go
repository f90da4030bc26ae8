package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// TranslationService resolves widget captions and chart labels for a locale.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue picks the entry of values closest to locale. Region
// tags fall back through their parents (es-MX, es-419, es), then the
// "default" key, then fallback.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeChain(locale) {
		for key, value := range values {
			if value != "" && strings.EqualFold(canonicalLocale(key), candidate) {
				return value
			}
		}
	}
	if value := values["default"]; value != "" {
		return value
	}
	return fallback
}

func (def *WidgetDefinition) normalizeLocalizedFields() {
	def.NameLocalized = normalizeLocaleMap(def.NameLocalized)
	def.DescriptionLocalized = normalizeLocaleMap(def.DescriptionLocalized)
}

// NameForLocale returns the widget name for locale, or Name.
func (def WidgetDefinition) NameForLocale(locale string) string {
	return ResolveLocalizedValue(def.NameLocalized, locale, def.Name)
}

func (def WidgetDefinition) DescriptionForLocale(locale string) string {
	return ResolveLocalizedValue(def.DescriptionLocalized, locale, def.Description)
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		if key = canonicalLocale(key); key != "" && value != "" {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// canonicalLocale lowercases a BCP 47 tag, accepting "es_MX" as well.
func canonicalLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" || strings.EqualFold(locale, "default") {
		return strings.ToLower(locale)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return strings.ToLower(locale)
	}
	return strings.ToLower(tag.String())
}

// localeChain lists locale and its parents, most specific first.
func localeChain(locale string) []string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		chain := []string{strings.ToLower(locale)}
		if base, _, ok := strings.Cut(chain[0], "-"); ok && base != "" {
			chain = append(chain, base)
		}
		return chain
	}
	var chain []string
	for ; !tag.IsRoot(); tag = tag.Parent() {
		chain = append(chain, strings.ToLower(tag.String()))
	}
	return chain
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// Translations is an in-memory TranslationService keyed by locale then
// message key. Locales are matched with a language.Matcher, so a viewer on
// "es-MX" reads the "es" table when no regional table exists. Missing keys
// translate to "" so callers keep their own fallback.
type Translations struct {
	mu      sync.RWMutex
	tables  map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

// NewTranslations builds a translator from locale tables.
func NewTranslations(tables map[string]map[string]string) *Translations {
	t := &Translations{}
	for locale, entries := range tables {
		t.Add(locale, entries)
	}
	return t
}

// LoadTranslations reads a YAML document of locale tables:
//
//	es:
//	  dashboard.widget.spa.widget.gift_cards.total_sold: Vendidas
func LoadTranslations(r io.Reader) (*Translations, error) {
	var tables map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&tables); err != nil && err != io.EOF {
		return nil, fmt.Errorf("dashboard: decode translations: %w", err)
	}
	for locale := range tables {
		if _, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err != nil {
			return nil, fmt.Errorf("dashboard: translations locale %q: %w", locale, err)
		}
	}
	return NewTranslations(tables), nil
}

// Add merges entries into the table for locale.
func (t *Translations) Add(locale string, entries map[string]string) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tables == nil {
		t.tables = make(map[string]map[string]string)
	}
	key := tag.String()
	table, ok := t.tables[key]
	if !ok {
		table = make(map[string]string, len(entries))
		t.tables[key] = table
		t.tags = append(t.tags, tag)
		t.matcher = language.NewMatcher(t.tags)
	}
	for k, v := range entries {
		table[k] = v
	}
}

func (t *Translations) Translate(_ context.Context, key, locale string, _ map[string]any) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.matcher == nil || locale == "" {
		return "", nil
	}
	_, idx, confidence := t.matcher.Match(language.Make(strings.ReplaceAll(locale, "_", "-")))
	if confidence == language.No {
		return "", nil
	}
	return t.tables[t.tags[idx].String()][key], nil
}

var _ TranslationService = (*Translations)(nil)
