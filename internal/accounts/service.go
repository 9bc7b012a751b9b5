package accounts

import (
	"sort"

	"github.com/cleared-dev/plbank/internal/model"
)

// Service provides in-memory lookup over the accounts imports may post to.
type Service struct {
	names []string
	known map[string]model.AccountType
}

// NewService creates a Service from account names. Invalid names are
// skipped; use Validate first to report them. The placeholder account is
// always known.
func NewService(names ...string) *Service {
	s := &Service{known: make(map[string]model.AccountType, len(names)+1)}
	for _, n := range append([]string{model.PlaceholderAccount}, names...) {
		if Validate(n) != nil {
			continue
		}
		if _, dup := s.known[n]; dup {
			continue
		}
		t, _ := TypeOf(n)
		s.known[n] = t
		s.names = append(s.names, n)
	}
	sort.Strings(s.names)
	return s
}

// All returns all known account names, sorted.
func (s *Service) All() []string {
	return s.names
}

// Exists reports whether an account is known.
func (s *Service) Exists(name string) bool {
	_, ok := s.known[name]
	return ok
}

// ByType returns the known accounts of the given type, sorted.
func (s *Service) ByType(accountType model.AccountType) []string {
	var result []string
	for _, n := range s.names {
		if s.known[n] == accountType {
			result = append(result, n)
		}
	}
	return result
}
