// Package i18n maps (language, key) pairs to display strings for the three
// supported site languages. English is the completeness baseline: every key
// used anywhere in the site must have an English entry. Other languages may
// cover only part of the key set and fall back to English, then to the
// literal key — a missing translation surfaces as the raw key on the page
// instead of failing silently.
//
// The recommendation flow keeps a secondary override table that is consulted
// before the main dictionary for non-English languages, because its wording
// was tuned per locale after the main tables were written.
package i18n

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Language is a supported UI language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Kannada Language = "kn"
)

// Default is the fallback language and completeness baseline.
const Default = English

// Languages lists all supported languages in display order.
var Languages = []Language{English, Hindi, Kannada}

// Parse returns the Language for a raw code and whether it is supported.
func Parse(code string) (Language, bool) {
	switch Language(code) {
	case English, Hindi, Kannada:
		return Language(code), true
	}
	return Default, false
}

//go:embed locales/*.yaml
var localeFS embed.FS

// Dictionary holds the immutable string tables. Safe for concurrent use
// after construction.
type Dictionary struct {
	main      map[Language]map[string]string
	overrides map[Language]map[string]string
}

// Load parses the embedded locale files into a Dictionary.
func Load() (*Dictionary, error) {
	d := &Dictionary{
		main:      make(map[Language]map[string]string),
		overrides: make(map[Language]map[string]string),
	}

	for _, lang := range Languages {
		table, err := loadTable(fmt.Sprintf("locales/%s.yaml", lang))
		if err != nil {
			return nil, err
		}
		d.main[lang] = table
	}

	raw, err := localeFS.ReadFile("locales/overrides.yaml")
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	if err := yaml.Unmarshal(raw, &d.overrides); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	return d, nil
}

// MustLoad is Load for program initialization paths where a broken embedded
// table is unrecoverable.
func MustLoad() *Dictionary {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func loadTable(name string) (map[string]string, error) {
	raw, err := localeFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	table := make(map[string]string)
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return table, nil
}

// Resolve returns the display string for key in lang. Resolution order:
// recommendation overrides for non-default languages, then the main table
// for lang, then the default-language table, then the key itself. It never
// returns an empty string for a missing key.
func (d *Dictionary) Resolve(lang Language, key string) string {
	if lang != Default {
		if s, ok := d.overrides[lang][key]; ok && s != "" {
			return s
		}
	}
	if s, ok := d.main[lang][key]; ok && s != "" {
		return s
	}
	if s, ok := d.main[Default][key]; ok && s != "" {
		return s
	}
	return key
}

// Func returns a resolve function bound to one language, for threading
// through render call graphs.
func (d *Dictionary) Func(lang Language) func(string) string {
	return func(key string) string {
		return d.Resolve(lang, key)
	}
}

// Keys returns every key known to any table. Used by tests to verify the
// default-language completeness invariant.
func (d *Dictionary) Keys() []string {
	set := make(map[string]struct{})
	for _, table := range d.main {
		for k := range table {
			set[k] = struct{}{}
		}
	}
	for _, table := range d.overrides {
		for k := range table {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}
