package smali

import "strings"

// Instruction is a parsed instruction line: an opcode followed by
// comma separated operands. Register lists ({v0, v1}) and string literals
// are kept as single operands.
type Instruction struct {
	Opcode   string
	Operands []string
}

// ParseInstruction parses line as an instruction. Blank lines, comments,
// directives and labels are not instructions.
func ParseInstruction(line string) (Instruction, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Instruction{}, false
	}

	switch trimmed[0] {
	case '#', '.', ':':
		return Instruction{}, false
	}

	opcode, rest := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		opcode, rest = trimmed[:i], trimmed[i+1:]
	}

	return Instruction{
		Opcode:   opcode,
		Operands: splitOperands(rest),
	}, true
}

// BranchTarget returns the label of a conditional branch (if-* opcodes whose
// last operand is a label).
func (in Instruction) BranchTarget() (string, bool) {
	if !strings.HasPrefix(in.Opcode, "if-") || len(in.Operands) == 0 {
		return "", false
	}

	target := in.Operands[len(in.Operands)-1]
	if !IsLabel(target) {
		return "", false
	}

	return target, true
}

// IsMoveResult reports whether the instruction consumes a call result.
func (in Instruction) IsMoveResult() bool {
	return strings.HasPrefix(in.Opcode, "move-result")
}

// IsBlankOrComment reports whether line carries no code.
func IsBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// IsDirective reports whether line is a dot directive (.line, .local, ...).
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ".")
}

// IsLabel reports whether s is a label such as :cond_0.
func IsLabel(s string) bool {
	trimmed := strings.TrimSpace(s)
	return len(trimmed) > 1 && trimmed[0] == ':' && !strings.ContainsAny(trimmed, " \t,")
}

func splitOperands(s string) []string {
	var (
		operands []string
		current  strings.Builder
		depth    int
		inString bool
		escaped  bool
	)

	flush := func() {
		if op := strings.TrimSpace(current.String()); op != "" {
			operands = append(operands, op)
		}

		current.Reset()
	}

	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '{':
			depth++
		case r == '}':
			depth--
		case r == ',' && depth == 0:
			flush()
			continue
		case r == '#' && depth == 0:
			flush()
			return operands
		}

		current.WriteRune(r)
	}

	flush()

	return operands
}
