// Package abbrev maps canonical gear set names to short display forms
// and tracks the names it has never seen, so operators can grow the
// known table over time.
package abbrev

import (
	"sort"
	"strings"
	"sync"

	"github.com/brainsnorkel/eso-builds/internal/errors"
)

const perfectedPrefix = "Perfected "

// Config holds the dependencies for the abbreviation registry.
type Config struct {
	// Known maps canonical set name to abbreviation. Copied at
	// construction and immutable afterward.
	Known map[string]string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.Known == nil {
		vb.RequiredField("Known")
	}

	return vb.Build()
}

// Registry resolves set names to abbreviations. The known map is
// read-only and safe for concurrent lookups; the unknown-name counters
// are guarded by a mutex so batch jobs can share one registry.
type Registry struct {
	known map[string]string

	mu       sync.Mutex
	unknowns map[string]int
}

// New creates an abbreviation registry.
func New(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	known := make(map[string]string, len(cfg.Known))
	for name, short := range cfg.Known {
		known[name] = short
	}

	return &Registry{
		known:    known,
		unknowns: make(map[string]int),
	}, nil
}

// Abbreviate returns the short display form for a set name. The
// perfected prefix is stripped before lookup; perfection status is
// rendered separately by callers. A miss records the name in the
// unknown counters and falls back to the stripped name itself.
func (r *Registry) Abbreviate(name string) string {
	stripped := strings.TrimPrefix(name, perfectedPrefix)

	if short, ok := r.known[stripped]; ok {
		return short
	}

	r.mu.Lock()
	r.unknowns[stripped]++
	r.mu.Unlock()

	return stripped
}

// Suggest proposes an abbreviation for an unknown set name. Used only
// by the operator report, never for live output.
func Suggest(name string) string {
	if len(name) <= 8 {
		return name
	}

	words := strings.Fields(name)
	switch {
	case len(words) <= 1:
		return name
	case len(words) == 2:
		// Possessive names keep the owner: "Xylo's Cage" -> "Xylo".
		return strings.TrimSuffix(words[0], "'s")
	default:
		var b strings.Builder
		for _, w := range words {
			b.WriteByte(w[0])
		}
		return b.String()
	}
}

// UnknownSet is one unmapped set name with its observation count.
type UnknownSet struct {
	Name      string
	Count     int
	Suggested string
}

// Report returns the unknown sets sorted by descending count, ties
// broken by name. It does not mutate state.
func (r *Registry) Report() []UnknownSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]UnknownSet, 0, len(r.unknowns))
	for name, count := range r.unknowns {
		out = append(out, UnknownSet{
			Name:      name,
			Count:     count,
			Suggested: Suggest(name),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
