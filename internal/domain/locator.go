package domain

import (
	"fmt"
	"strings"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// MethodRef addresses a method by name and, optionally, by its exact
// parameter encoding.
type MethodRef struct {
	Name string
	// Params selects full-signature mode when non-nil. An empty, non-nil
	// slice matches a method taking no parameters.
	Params []string
}

// FullSignature reports whether the reference pins the parameter types.
func (r MethodRef) FullSignature() bool {
	return r.Params != nil
}

func (r MethodRef) String() string {
	if !r.FullSignature() {
		return r.Name
	}

	return r.Name + "(" + strings.Join(r.Params, "") + ")"
}

func (r MethodRef) matches(decl smali.Declaration) bool {
	if decl.Name != r.Name {
		return false
	}

	return !r.FullSignature() || decl.Params == strings.Join(r.Params, "")
}

// Locate returns the boundary of the first method matching ref in file order.
//
// In name-only mode overloaded methods are ambiguous and the first one
// emitted by the disassembler wins.
func Locate(lines []string, ref MethodRef) (m.MethodBoundary, error) {
	for i, line := range lines {
		decl, ok := smali.ParseDeclaration(line)
		if !ok || !ref.matches(decl) {
			continue
		}

		end, err := methodEnd(lines, i)
		if err != nil {
			return m.MethodBoundary{}, err
		}

		return boundary(decl, i, end), nil
	}

	return m.MethodBoundary{}, fmt.Errorf("%w: %s", m.ErrMethodNotFound, ref)
}

// LocateAll returns every method named name, in file order.
func LocateAll(lines []string, name string) ([]m.MethodBoundary, error) {
	ref := MethodRef{Name: name}

	var found []m.MethodBoundary

	for i := 0; i < len(lines); i++ {
		decl, ok := smali.ParseDeclaration(lines[i])
		if !ok || !ref.matches(decl) {
			continue
		}

		end, err := methodEnd(lines, i)
		if err != nil {
			return nil, err
		}

		found = append(found, boundary(decl, i, end))
		i = end
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", m.ErrMethodNotFound, name)
	}

	return found, nil
}

// Methods returns the boundary of every method in the listing.
func Methods(lines []string) ([]m.MethodBoundary, error) {
	var methods []m.MethodBoundary

	for i := 0; i < len(lines); i++ {
		if !smali.IsMethodStart(lines[i]) {
			continue
		}

		decl, ok := smali.ParseDeclaration(lines[i])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: cannot parse declaration %q", m.ErrMalformedListing, i+1, strings.TrimSpace(lines[i]))
		}

		end, err := methodEnd(lines, i)
		if err != nil {
			return nil, err
		}

		methods = append(methods, boundary(decl, i, end))
		i = end
	}

	return methods, nil
}

// methodEnd finds the .end method closing the method opened at start.
func methodEnd(lines []string, start int) (int, error) {
	for j := start + 1; j < len(lines); j++ {
		if smali.IsMethodEnd(lines[j]) {
			return j, nil
		}

		if smali.IsMethodStart(lines[j]) {
			return 0, fmt.Errorf("%w: method at line %d is not closed before line %d", m.ErrMalformedListing, start+1, j+1)
		}
	}

	return 0, fmt.Errorf("%w: method at line %d has no .end method", m.ErrMalformedListing, start+1)
}

func boundary(decl smali.Declaration, start, end int) m.MethodBoundary {
	return m.MethodBoundary{
		Name:      decl.Name,
		Signature: decl.Signature(),
		Start:     start,
		End:       end,
	}
}
