package report

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
)

// Registry maps format identifiers to generators. Keys are case-insensitive.
// A Registry is not safe for concurrent Register calls.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns a registry holding the pdf, excel and word generators.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.Register("pdf", PDFGenerator{})
	r.Register("excel", ExcelGenerator{})
	r.Register("word", WordGenerator{})
	return r
}

// Create returns the generator registered for formatID.
func (r *Registry) Create(formatID string) (Generator, error) {
	g, ok := r.generators[normalizeKey(formatID)]
	if !ok {
		metrics.IncUnsupported(metrics.LookupFormat)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, formatID)
	}
	return g, nil
}

// Register adds or replaces the generator for formatID. A nil generator
// unregisters the format, so later lookups fail with ErrUnsupportedFormat.
func (r *Registry) Register(formatID string, g Generator) {
	key := normalizeKey(formatID)
	if g == nil {
		delete(r.generators, key)
		logging.Get().Warn().Str("format", key).Msg("report generator removed")
		return
	}
	r.generators[key] = g
	logging.Get().Debug().Str("format", key).Msg("registered report generator")
}

// Formats returns the registered keys in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.generators))
	for k := range r.generators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(id string) string {
	return cases.Lower(language.Und).String(id)
}
