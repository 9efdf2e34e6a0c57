package transforms

import (
	"fmt"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// ReturnValue selects the constant a forced method returns.
type ReturnValue string

// Supported return values. Object returning methods always return null and
// void methods always return-void, whatever value is requested.
const (
	ReturnTrue  ReturnValue = "true"
	ReturnFalse ReturnValue = "false"
	ReturnZero  ReturnValue = "zero"
	ReturnVoid  ReturnValue = "void"
	ReturnNull  ReturnValue = "null"
)

const indent = "    "

// ForceReturn strips the method body and returns a constant.
type ForceReturn struct {
	Value ReturnValue
}

// Kind implements Transform.
func (ForceReturn) Kind() Kind { return KindForceReturn }

// Validate implements Transform.
func (t ForceReturn) Validate() error {
	switch t.Value {
	case ReturnTrue, ReturnFalse, ReturnZero, ReturnVoid, ReturnNull:
		return nil
	}

	return fmt.Errorf("%s: unknown return value %q", KindForceReturn, t.Value)
}

func (ForceReturn) sealed() {}

func forceReturn(t ForceReturn, block []string) ([]string, error) {
	decl, ok := smali.ParseDeclaration(block[0])
	if !ok {
		return block, fmt.Errorf("%w: cannot parse declaration %q", m.ErrMalformedListing, block[0])
	}

	out := []string{block[0]}

	if registers, ok := registerDirective(block); ok {
		out = append(out, registers)
	}

	out = append(out, returnBody(decl.ReturnKind(), t.Value)...)

	return append(out, block[len(block)-1]), nil
}

func registerDirective(block []string) (string, bool) {
	for _, line := range block[1 : len(block)-1] {
		if smali.IsRegisterDirective(line) {
			return line, true
		}
	}

	return "", false
}

func returnBody(kind smali.ReturnKind, value ReturnValue) []string {
	constant := "0x0"
	if value == ReturnTrue {
		constant = "0x1"
	}

	switch kind {
	case smali.ReturnVoid:
		return []string{indent + "return-void"}
	case smali.ReturnWide:
		return []string{
			indent + "const-wide/16 v0, " + constant,
			indent + "return-wide v0",
		}
	case smali.ReturnObject:
		return []string{
			indent + "const/4 v0, 0x0",
			indent + "return-object v0",
		}
	default:
		return []string{
			indent + "const/4 v0, " + constant,
			indent + "return v0",
		}
	}
}
