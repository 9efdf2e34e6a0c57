package smali

import (
	"strings"
)

const (
	methodDirective    = ".method"
	endMethodDirective = ".end method"
	registersDirective = ".registers"
	localsDirective    = ".locals"
)

// ReturnKind classifies a method's return type by the instruction needed to
// return from it.
type ReturnKind int

const (
	// ReturnVoid is a V return type.
	ReturnVoid ReturnKind = iota
	// ReturnValue is a single-register primitive (Z, B, S, C, I, F).
	ReturnValue
	// ReturnWide is a register-pair primitive (J, D).
	ReturnWide
	// ReturnObject is a reference or array type.
	ReturnObject
)

// Declaration is a parsed .method line:
//
//	.method <access flags...> <name>(<params>)<return>
type Declaration struct {
	Flags  []string
	Name   string
	Params string
	Return string
}

// ParseDeclaration parses a method declaration line. It returns false for any
// line that is not a well formed declaration.
func ParseDeclaration(line string) (Declaration, bool) {
	trimmed := strings.TrimSpace(line)
	if !IsMethodStart(trimmed) {
		return Declaration{}, false
	}

	fields := strings.Fields(trimmed[len(methodDirective):])
	if len(fields) == 0 {
		return Declaration{}, false
	}

	signature := fields[len(fields)-1]

	open := strings.IndexByte(signature, '(')
	closing := strings.IndexByte(signature, ')')

	if open <= 0 || closing < open || closing == len(signature)-1 {
		return Declaration{}, false
	}

	return Declaration{
		Flags:  fields[:len(fields)-1],
		Name:   signature[:open],
		Params: signature[open+1 : closing],
		Return: signature[closing+1:],
	}, true
}

// Signature renders name(params)return.
func (d Declaration) Signature() string {
	return d.Name + "(" + d.Params + ")" + d.Return
}

// ParamTypes splits the parameter encoding into one descriptor per parameter.
func (d Declaration) ParamTypes() []string {
	return SplitTypeDescriptors(d.Params)
}

// ReturnKind classifies the declared return type.
func (d Declaration) ReturnKind() ReturnKind {
	if d.Return == "" {
		return ReturnVoid
	}

	switch d.Return[0] {
	case 'V':
		return ReturnVoid
	case 'J', 'D':
		return ReturnWide
	case 'L', '[':
		return ReturnObject
	default:
		return ReturnValue
	}
}

// SplitTypeDescriptors splits a concatenated descriptor list such as
// "I[BLjava/lang/String;Z" into its elements.
func SplitTypeDescriptors(encoded string) []string {
	var types []string

	for i := 0; i < len(encoded); {
		start := i

		for i < len(encoded) && encoded[i] == '[' {
			i++
		}

		if i >= len(encoded) {
			types = append(types, encoded[start:])
			break
		}

		if encoded[i] == 'L' {
			end := strings.IndexByte(encoded[i:], ';')
			if end < 0 {
				types = append(types, encoded[start:])
				break
			}

			i += end + 1
		} else {
			i++
		}

		types = append(types, encoded[start:i])
	}

	return types
}

// IsMethodStart reports whether line opens a method.
func IsMethodStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, methodDirective) {
		return false
	}

	rest := trimmed[len(methodDirective):]

	return rest != "" && (rest[0] == ' ' || rest[0] == '\t')
}

// IsMethodEnd reports whether line is the closing marker of a method.
func IsMethodEnd(line string) bool {
	return strings.TrimSpace(line) == endMethodDirective
}

// EndMethod is the closing marker line as emitted by baksmali.
func EndMethod() string {
	return endMethodDirective
}

// IsRegisterDirective reports whether line declares the method's register
// count (.registers N or .locals N).
func IsRegisterDirective(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return false
	}

	return fields[0] == registersDirective || fields[0] == localsDirective
}
