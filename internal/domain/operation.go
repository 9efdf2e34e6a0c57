package domain

import (
	"errors"
	"fmt"

	"smalipatch.dev/pkg/smalipatch/internal/domain/transforms"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// Operation is one compiled patch step: a target and the transform to run.
type Operation struct {
	Name      string
	Class     string
	Method    MethodRef
	Scope     m.Scope
	Contains  string
	Transform transforms.Transform
}

// Label returns the name shown in results and logs.
func (op Operation) Label() string {
	if op.Name != "" {
		return op.Name
	}

	return op.Class + "." + op.Method.String()
}

// Validate checks that the operation addresses something its scope can use.
func (op Operation) Validate() error {
	if op.Class == "" {
		return errors.New("class must not be empty")
	}

	if op.Transform == nil {
		return errors.New("transform must be set")
	}

	switch op.Scope {
	case m.ScopeFirst, m.ScopeOverloads:
		if op.Method.Name == "" {
			return fmt.Errorf("scope %s requires a method", op.Scope)
		}

		if op.Scope == m.ScopeOverloads && op.Method.FullSignature() {
			return fmt.Errorf("scope %s does not take params", op.Scope)
		}
	case m.ScopeContaining:
		if op.Contains == "" {
			return fmt.Errorf("scope %s requires contains", op.Scope)
		}
	default:
		return fmt.Errorf("unknown scope %q", op.Scope)
	}

	return op.Transform.Validate()
}

// CompileOperations turns the declarative operations of a patch set into
// runnable ones. Every invalid operation is reported, prefixed with its
// position in the source file.
func CompileOperations(set m.PatchSetSpec) ([]Operation, error) {
	ops := make([]Operation, 0, len(set.Operations))

	var errs []error

	for i, spec := range set.Operations {
		op, err := CompileOperation(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", operationPosition(spec, i), err))
			continue
		}

		ops = append(ops, op)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return ops, nil
}

// CompileOperation compiles a single declarative operation.
func CompileOperation(spec m.OperationSpec) (Operation, error) {
	t, err := compileTransform(spec.Transform)
	if err != nil {
		return Operation{}, err
	}

	scope := spec.Scope
	if scope == "" {
		scope = m.ScopeFirst
	}

	op := Operation{
		Name:      spec.Name,
		Class:     spec.Class,
		Method:    MethodRef{Name: spec.Method, Params: spec.Params},
		Scope:     scope,
		Contains:  spec.Contains,
		Transform: t,
	}

	if err := op.Validate(); err != nil {
		return Operation{}, err
	}

	return op, nil
}

func compileTransform(spec m.TransformSpec) (transforms.Transform, error) {
	var found []transforms.Transform

	if spec.ForceReturn != "" {
		found = append(found, transforms.ForceReturn{Value: transforms.ReturnValue(spec.ForceReturn)})
	}

	if s := spec.InsertBefore; s != nil {
		found = append(found, transforms.InsertBefore{Anchor: s.Anchor, Line: s.Line})
	}

	if s := spec.InsertAfter; s != nil {
		found = append(found, transforms.InsertAfter{Anchor: s.Anchor, Line: s.Line})
	}

	if s := spec.InsertBeforeBranch; s != nil {
		found = append(found, transforms.InsertBeforeBranch{Marker: s.Marker, Branch: s.Branch, Line: s.Line})
	}

	if s := spec.ReplaceResultAfterCall; s != nil {
		found = append(found, transforms.ReplaceResultAfterCall{Call: s.Call, Line: s.Line})
	}

	if s := spec.RemoveBranchAndLabel; s != nil {
		found = append(found, transforms.RemoveBranchAndLabel{Call: s.Call, Branch: s.Branch})
	}

	switch len(found) {
	case 0:
		return nil, errors.New("no transform given")
	case 1:
		return found[0], nil
	default:
		kinds := make([]transforms.Kind, 0, len(found))
		for _, t := range found {
			kinds = append(kinds, t.Kind())
		}

		return nil, fmt.Errorf("exactly one transform expected, got %v", kinds)
	}
}

func operationPosition(spec m.OperationSpec, i int) string {
	label := fmt.Sprintf("operation %d", i+1)
	if spec.Name != "" {
		label += " (" + spec.Name + ")"
	}

	if spec.Source != "" && spec.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", spec.Source, spec.Line, label)
	}

	return label
}
