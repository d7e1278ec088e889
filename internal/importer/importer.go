package importer

import (
	"io"
	"sort"
	"strings"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// Parser converts a ledger CSV export into SourceRecords in file order.
type Parser interface {
	Parse(r io.Reader) ([]model.SourceRecord, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&RevolutParser{})
	return r
}

// Load parses r with p and returns the records in chronological order.
func Load(p Parser, r io.Reader) ([]model.SourceRecord, error) {
	recs, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return Chronological(recs), nil
}
