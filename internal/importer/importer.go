package importer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/plbank/internal/config"
	"github.com/cleared-dev/plbank/internal/model"
)

// Importer converts one kind of bank export into transactions.
type Importer interface {
	Name() string
	Identify(path string) bool
	AccountFor(path string) string
	Extract(path string, existing []model.Transaction) ([]model.Transaction, error)
}

// Registry holds named importers in registration order.
type Registry struct {
	importers []Importer
	byName    map[string]Importer
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Importer)}
}

// Register adds an importer. Panics on duplicate name.
func (r *Registry) Register(imp Importer) {
	key := strings.ToLower(imp.Name())
	if _, ok := r.byName[key]; ok {
		panic("duplicate importer name: " + key)
	}
	r.byName[key] = imp
	r.importers = append(r.importers, imp)
}

// Get returns the importer registered under name, or nil.
func (r *Registry) Get(name string) Importer {
	return r.byName[strings.ToLower(name)]
}

// All returns the importers in registration order.
func (r *Registry) All() []Importer {
	return r.importers
}

// Identify returns the importers that claim path.
func (r *Registry) Identify(path string) []Importer {
	var matched []Importer
	for _, imp := range r.importers {
		if imp.Identify(path) {
			matched = append(matched, imp)
		}
	}
	return matched
}

// FromConfig builds a registry with one mBank importer per config entry.
func FromConfig(cfg *config.Config, logger *log.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	r := NewRegistry()
	for _, ic := range cfg.Importers {
		imp, err := NewMBank(ic, logger)
		if err != nil {
			return nil, err
		}
		r.Register(imp)
	}
	return r, nil
}
