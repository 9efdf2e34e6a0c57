package model

import "errors"

// Error taxonomy of the patch engine. Not-found errors are non-fatal and only
// fail the operation that raised them.
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrMethodNotFound   = errors.New("method not found")
	ErrAnchorNotFound   = errors.New("anchor not found")
	ErrMalformedListing = errors.New("malformed listing")
)

// Scope selects which methods of a class an operation addresses.
type Scope string

const (
	// ScopeFirst addresses the first method with the given name (or the exact
	// signature when parameters are given).
	ScopeFirst Scope = "first"

	// ScopeOverloads addresses every method sharing the given name.
	ScopeOverloads Scope = "overloads"

	// ScopeContaining addresses every method whose body contains a literal line.
	ScopeContaining Scope = "containing"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeFirst, ScopeOverloads, ScopeContaining:
		return true
	}

	return false
}
