package transforms

import (
	"strings"

	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// InsertBefore inserts Line before the first line containing Anchor.
type InsertBefore struct {
	Anchor string
	Line   string
}

// Kind implements Transform.
func (InsertBefore) Kind() Kind { return KindInsertBefore }

// Validate implements Transform.
func (t InsertBefore) Validate() error {
	if err := requireField(KindInsertBefore, "anchor", t.Anchor); err != nil {
		return err
	}

	return requireField(KindInsertBefore, "line", t.Line)
}

func (InsertBefore) sealed() {}

// InsertAfter inserts Line after the first line containing Anchor.
type InsertAfter struct {
	Anchor string
	Line   string
}

// Kind implements Transform.
func (InsertAfter) Kind() Kind { return KindInsertAfter }

// Validate implements Transform.
func (t InsertAfter) Validate() error {
	if err := requireField(KindInsertAfter, "anchor", t.Anchor); err != nil {
		return err
	}

	return requireField(KindInsertAfter, "line", t.Line)
}

func (InsertAfter) sealed() {}

// insertAtAnchor inserts once, at the first anchor occurrence in the method
// body. The declaration, the register directive and the closing marker are
// never matched, so the new line always lands between them. Applying it twice
// inserts twice.
func insertAtAnchor(block []string, anchor, line string, after bool) ([]string, error) {
	for i := bodyStart(block); i < len(block)-1; i++ {
		if !strings.Contains(block[i], anchor) {
			continue
		}

		if after {
			return splice(block, i+1, line), nil
		}

		return splice(block, i, line), nil
	}

	return block, anchorError("no body line contains %q", anchor)
}

// bodyStart returns the index of the first line after the declaration and,
// when present, the register directive.
func bodyStart(block []string) int {
	for i := 1; i < len(block)-1; i++ {
		if smali.IsRegisterDirective(block[i]) {
			return i + 1
		}
	}

	return 1
}
