package transforms

import (
	"strings"

	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// InsertBeforeBranch finds the first line containing Marker, then walks back
// to the nearest conditional branch to a label and inserts Line before it.
// When Branch is set the branch opcode must match it (e.g. "if-nez").
type InsertBeforeBranch struct {
	Marker string
	Branch string
	Line   string
}

// Kind implements Transform.
func (InsertBeforeBranch) Kind() Kind { return KindInsertBeforeBranch }

// Validate implements Transform.
func (t InsertBeforeBranch) Validate() error {
	if err := requireField(KindInsertBeforeBranch, "marker", t.Marker); err != nil {
		return err
	}

	return requireField(KindInsertBeforeBranch, "line", t.Line)
}

func (InsertBeforeBranch) sealed() {}

func insertBeforeBranch(t InsertBeforeBranch, block []string) ([]string, error) {
	marker := -1

	for i, line := range block {
		if strings.Contains(line, t.Marker) {
			marker = i
			break
		}
	}

	if marker < 0 {
		return block, anchorError("no line contains %q", t.Marker)
	}

	for i := marker - 1; i >= 0; i-- {
		if isBranch(block[i], t.Branch) {
			return splice(block, i, t.Line), nil
		}
	}

	return block, anchorError("no %s branch precedes %q", branchName(t.Branch), t.Marker)
}

// RemoveBranchAndLabel deletes the conditional branch that follows a call
// (after its move-result, if any) together with every later line that is
// exactly the branch's target label.
type RemoveBranchAndLabel struct {
	Call   string
	Branch string
}

// Kind implements Transform.
func (RemoveBranchAndLabel) Kind() Kind { return KindRemoveBranchAndLabel }

// Validate implements Transform.
func (t RemoveBranchAndLabel) Validate() error {
	return requireField(KindRemoveBranchAndLabel, "call", t.Call)
}

func (RemoveBranchAndLabel) sealed() {}

func removeBranchAndLabel(t RemoveBranchAndLabel, block []string) ([]string, error) {
	out := make([]string, 0, len(block))
	labels := make(map[string]struct{})
	callSeen := false

	for i := 0; i < len(block); i++ {
		line := block[i]

		if _, drop := labels[strings.TrimSpace(line)]; drop {
			continue
		}

		out = append(out, line)

		if !strings.Contains(line, t.Call) {
			continue
		}

		callSeen = true

		j := i + 1
		for j < len(block) && skipBeforeBranch(block[j]) {
			out = append(out, block[j])
			j++
		}

		if j < len(block) && isBranch(block[j], t.Branch) {
			in, _ := smali.ParseInstruction(block[j])
			target, _ := in.BranchTarget()
			labels[target] = struct{}{}
			i = j

			continue
		}

		i = j - 1
	}

	if len(labels) == 0 {
		if !callSeen {
			return block, anchorError("no line contains %q", t.Call)
		}

		return block, anchorError("no %s branch follows %q", branchName(t.Branch), t.Call)
	}

	return out, nil
}

func skipBeforeBranch(line string) bool {
	if smali.IsBlankOrComment(line) || (smali.IsDirective(line) && !smali.IsMethodEnd(line)) {
		return true
	}

	in, ok := smali.ParseInstruction(line)

	return ok && in.IsMoveResult()
}

func isBranch(line, opcode string) bool {
	in, ok := smali.ParseInstruction(line)
	if !ok {
		return false
	}

	if _, ok := in.BranchTarget(); !ok {
		return false
	}

	return opcode == "" || in.Opcode == opcode
}

func branchName(opcode string) string {
	if opcode == "" {
		return "conditional"
	}

	return opcode
}
