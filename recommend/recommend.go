// Package recommend produces the per-sign lucky recommendations shown on
// the recommendations page. There is no calculation in the astrological
// sense: every answer is a static lookup keyed by moon sign (raashi), with
// name syllables keyed by birth star (nakshatra) and a western-sign mapping
// for visitors who only know their sun sign.
package recommend

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// Attributes are the lucky values associated with one raashi.
type Attributes struct {
	Number   int    `yaml:"number" json:"number"`
	Color    string `yaml:"color" json:"color"`
	ColorHex string `yaml:"colorHex" json:"colorHex"`
	Gemstone string `yaml:"gemstone" json:"gemstone"`
}

type dataset struct {
	Raashis    map[string]Attributes `yaml:"raashis"`
	Nakshatras map[string][]string   `yaml:"nakshatras"`
	Western    map[string]string     `yaml:"western"`
}

// Engine answers recommendation requests from the embedded tables.
// Immutable after construction.
type Engine struct {
	data dataset
}

// New parses the embedded dataset.
func New() (*Engine, error) {
	var d dataset
	if err := yaml.Unmarshal(rawData, &d); err != nil {
		return nil, fmt.Errorf("parse recommendation data: %w", err)
	}
	return &Engine{data: d}, nil
}

// MustNew is New for initialization paths where broken embedded data is
// unrecoverable.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Mode selects which inputs drive the lookup.
const (
	ModeVedic   = "vedic"
	ModeWestern = "western"
)

// Request carries the visitor's selection. Vedic mode uses Nakshatra and
// Raashi; western mode uses Zodiac only.
type Request struct {
	Mode      string `json:"mode"`
	Nakshatra string `json:"nakshatra,omitempty"`
	Raashi    string `json:"raashi,omitempty"`
	Zodiac    string `json:"zodiac,omitempty"`
}

// Result is one set of recommendations. Syllables are only populated in
// vedic mode; the western flow has no birth-star input to derive them from.
type Result struct {
	Raashi    string   `json:"raashi"`
	Syllables []string `json:"syllables,omitempty"`
	Attributes
}

// Generate resolves a request against the lookup tables.
func (e *Engine) Generate(req Request) (Result, error) {
	switch req.Mode {
	case ModeWestern:
		raashi, ok := e.data.Western[req.Zodiac]
		if !ok {
			return Result{}, fmt.Errorf("unknown zodiac sign %q", req.Zodiac)
		}
		attrs, ok := e.data.Raashis[raashi]
		if !ok {
			return Result{}, fmt.Errorf("no attributes for raashi %q", raashi)
		}
		return Result{Raashi: raashi, Attributes: attrs}, nil

	case ModeVedic, "":
		attrs, ok := e.data.Raashis[req.Raashi]
		if !ok {
			return Result{}, fmt.Errorf("unknown raashi %q", req.Raashi)
		}
		result := Result{Raashi: req.Raashi, Attributes: attrs}
		if req.Nakshatra != "" {
			syllables, ok := e.data.Nakshatras[req.Nakshatra]
			if !ok {
				return Result{}, fmt.Errorf("unknown nakshatra %q", req.Nakshatra)
			}
			result.Syllables = syllables
		}
		return result, nil

	default:
		return Result{}, fmt.Errorf("unknown mode %q", req.Mode)
	}
}

// Nakshatras lists the birth stars in alphabetical order, for form options.
func (e *Engine) Nakshatras() []string {
	names := make([]string, 0, len(e.data.Nakshatras))
	for name := range e.data.Nakshatras {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raashis lists the moon signs in alphabetical order, for form options.
func (e *Engine) Raashis() []string {
	names := make([]string, 0, len(e.data.Raashis))
	for name := range e.data.Raashis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WesternSigns lists the sun signs in alphabetical order.
func (e *Engine) WesternSigns() []string {
	names := make([]string, 0, len(e.data.Western))
	for name := range e.data.Western {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
