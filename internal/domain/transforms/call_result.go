package transforms

import (
	"strings"

	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// ReplaceResultAfterCall replaces the move-result instruction consuming the
// result of Call with Line, at every occurrence of Call.
type ReplaceResultAfterCall struct {
	Call string
	Line string
}

// Kind implements Transform.
func (ReplaceResultAfterCall) Kind() Kind { return KindReplaceResultAfterCall }

// Validate implements Transform.
func (t ReplaceResultAfterCall) Validate() error {
	if err := requireField(KindReplaceResultAfterCall, "call", t.Call); err != nil {
		return err
	}

	return requireField(KindReplaceResultAfterCall, "line", t.Line)
}

func (ReplaceResultAfterCall) sealed() {}

func replaceResultAfterCall(t ReplaceResultAfterCall, block []string) ([]string, error) {
	out := make([]string, 0, len(block))
	replaced := 0
	callSeen := false

	for i := 0; i < len(block); i++ {
		out = append(out, block[i])

		if !strings.Contains(block[i], t.Call) {
			continue
		}

		callSeen = true

		j := i + 1
		for j < len(block) && smali.IsBlankOrComment(block[j]) {
			out = append(out, block[j])
			j++
		}

		if j < len(block) {
			if in, ok := smali.ParseInstruction(block[j]); ok && in.IsMoveResult() {
				out = append(out, t.Line)
				replaced++
				i = j

				continue
			}
		}

		i = j - 1
	}

	if replaced == 0 {
		if !callSeen {
			return block, anchorError("no line contains %q", t.Call)
		}

		return block, anchorError("no move-result follows %q", t.Call)
	}

	return out, nil
}
