package accounts

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cleared-dev/plbank/internal/model"
)

const separator = ":"

// ErrInvalidName is wrapped by every account name validation failure.
var ErrInvalidName = errors.New("invalid account name")

// TypeOf returns the account type named by the first component of name.
func TypeOf(name string) (model.AccountType, error) {
	root, _, _ := strings.Cut(name, separator)
	for _, t := range model.AccountTypes {
		if root == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q: unknown root %q", ErrInvalidName, name, root)
}

// Validate checks that name looks like "Assets:PL:MBank:Checking": a known
// root followed by at least one component, each starting with an upper-case
// letter or digit and containing only letters, digits and dashes.
func Validate(name string) error {
	if _, err := TypeOf(name); err != nil {
		return err
	}
	parts := strings.Split(name, separator)
	if len(parts) < 2 {
		return fmt.Errorf("%w %q: needs at least two components", ErrInvalidName, name)
	}
	for _, p := range parts[1:] {
		if !validComponent(p) {
			return fmt.Errorf("%w %q: bad component %q", ErrInvalidName, name, p)
		}
	}
	return nil
}

func validComponent(p string) bool {
	if p == "" {
		return false
	}
	for i, r := range p {
		if i == 0 && !(unicode.IsUpper(r) || unicode.IsDigit(r)) {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
			return false
		}
	}
	return true
}
