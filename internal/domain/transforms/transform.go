// Package transforms implements the line-range rewrites applied to a single
// method block. A block always starts with the .method declaration and ends
// with its .end method marker.
package transforms

import (
	"fmt"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// Kind names a transform variant.
type Kind string

// Available transform kinds.
const (
	KindForceReturn            Kind = "force_return"
	KindInsertBefore           Kind = "insert_before"
	KindInsertAfter            Kind = "insert_after"
	KindInsertBeforeBranch     Kind = "insert_before_branch"
	KindReplaceResultAfterCall Kind = "replace_result_after_call"
	KindRemoveBranchAndLabel   Kind = "remove_branch_and_label"
)

// Transform is one of the variants declared in this package. The set is
// closed: only types in this package implement it.
type Transform interface {
	Kind() Kind
	Validate() error
	sealed()
}

// Apply runs t against block and returns the replacement block.
//
// Apply never panics on a well formed block. When the transform's anchor is
// absent it returns block unchanged together with an error wrapping
// model.ErrAnchorNotFound; callers log it and carry on.
func Apply(t Transform, block []string) ([]string, error) {
	if len(block) < 2 || !smali.IsMethodStart(block[0]) || !smali.IsMethodEnd(block[len(block)-1]) {
		return block, fmt.Errorf("%w: block is not a complete method", m.ErrMalformedListing)
	}

	switch tt := t.(type) {
	case ForceReturn:
		return forceReturn(tt, block)
	case InsertBefore:
		return insertAtAnchor(block, tt.Anchor, tt.Line, false)
	case InsertAfter:
		return insertAtAnchor(block, tt.Anchor, tt.Line, true)
	case InsertBeforeBranch:
		return insertBeforeBranch(tt, block)
	case ReplaceResultAfterCall:
		return replaceResultAfterCall(tt, block)
	case RemoveBranchAndLabel:
		return removeBranchAndLabel(tt, block)
	default:
		return block, fmt.Errorf("unsupported transform %T", t)
	}
}

func anchorError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", m.ErrAnchorNotFound, fmt.Sprintf(format, args...))
}

func requireField(kind Kind, field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %s must not be empty", kind, field)
	}

	return nil
}

func splice(block []string, at int, line string) []string {
	out := make([]string, 0, len(block)+1)
	out = append(out, block[:at]...)
	out = append(out, line)

	return append(out, block[at:]...)
}
