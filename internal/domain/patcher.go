package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	"smalipatch.dev/pkg/smalipatch/internal/domain/transforms"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// PatcherOptions tunes a Patcher.
type PatcherOptions struct {
	// Diff attaches a unified diff of every rewritten file to its result.
	Diff bool
}

// Patcher applies operations to the listings of a class index. Each call
// reads the whole listing, rewrites it in memory and writes it back at most
// once.
type Patcher struct {
	fs    adapter.ListingFSAdapter
	index *ClassIndex
	opts  PatcherOptions
}

// NewPatcher constructs a Patcher writing through fs.
func NewPatcher(fs adapter.ListingFSAdapter, index *ClassIndex, opts PatcherOptions) *Patcher {
	return &Patcher{fs: fs, index: index, opts: opts}
}

// Run applies ops strictly in order and returns one result per operation.
// Later operations observe the edits of earlier ones. Once ctx is done the
// remaining operations fail without being attempted.
func (p *Patcher) Run(ctx context.Context, ops []Operation) []m.OperationResult {
	results := make([]m.OperationResult, 0, len(ops))

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			res := p.newResult(op.Label(), op.Class, op.Method.String(), op.Transform)
			res.Scope = op.Scope
			res.Status = m.Failed
			res.Err = err
			results = append(results, res)

			continue
		}

		results = append(results, p.Apply(ctx, op))
	}

	return results
}

// Apply dispatches op on its scope.
func (p *Patcher) Apply(ctx context.Context, op Operation) m.OperationResult {
	switch op.Scope {
	case m.ScopeOverloads:
		return p.applyAllOverloads(ctx, op.Label(), op.Class, op.Method.Name, op.Transform)
	case m.ScopeContaining:
		return p.applyContaining(ctx, op.Label(), op.Class, op.Contains, op.Transform)
	default:
		return p.applyOne(ctx, op.Label(), op.Class, op.Method, op.Transform)
	}
}

// ApplyOne rewrites the first method matching ref.
func (p *Patcher) ApplyOne(ctx context.Context, class string, ref MethodRef, t transforms.Transform) m.OperationResult {
	return p.applyOne(ctx, "", class, ref, t)
}

// ApplyAllOverloads rewrites every method named name.
func (p *Patcher) ApplyAllOverloads(ctx context.Context, class, name string, t transforms.Transform) m.OperationResult {
	return p.applyAllOverloads(ctx, "", class, name, t)
}

// ApplyToAllMethodsContaining rewrites every method whose body has a line
// containing literal.
func (p *Patcher) ApplyToAllMethodsContaining(ctx context.Context, class, literal string, t transforms.Transform) m.OperationResult {
	return p.applyContaining(ctx, "", class, literal, t)
}

func (p *Patcher) applyOne(ctx context.Context, name, class string, ref MethodRef, t transforms.Transform) m.OperationResult {
	res := p.newResult(name, class, ref.String(), t)
	res.Scope = m.ScopeFirst

	return p.patch(ctx, res, func(lines []string) ([]string, int, error) {
		b, err := Locate(lines, ref)
		if err != nil {
			return lines, 0, err
		}

		block, err := transforms.Apply(t, lines[b.Start:b.End+1])
		if err != nil {
			return lines, 0, fmt.Errorf("%s: %w", b.Signature, err)
		}

		if slices.Equal(block, lines[b.Start:b.End+1]) {
			return lines, 0, nil
		}

		return replaceRange(lines, b, block), 1, nil
	})
}

func (p *Patcher) applyAllOverloads(ctx context.Context, name, class, method string, t transforms.Transform) m.OperationResult {
	res := p.newResult(name, class, method, t)
	res.Scope = m.ScopeOverloads

	return p.patch(ctx, res, func(lines []string) ([]string, int, error) {
		out, matched, modified, err := rewriteMatching(lines, func(b m.MethodBoundary, _ []string) transforms.Transform {
			if b.Name != method {
				return nil
			}

			return t
		})
		if err == nil && matched == 0 {
			err = fmt.Errorf("%w: %s", m.ErrMethodNotFound, method)
		}

		return out, modified, err
	})
}

func (p *Patcher) applyContaining(ctx context.Context, name, class, literal string, t transforms.Transform) m.OperationResult {
	res := p.newResult(name, class, "", t)
	res.Scope = m.ScopeContaining

	return p.patch(ctx, res, func(lines []string) ([]string, int, error) {
		out, matched, modified, err := rewriteMatching(lines, func(_ m.MethodBoundary, block []string) transforms.Transform {
			if !blockContains(block, literal) {
				return nil
			}

			return t
		})
		if err == nil && matched == 0 {
			err = fmt.Errorf("%w: no method contains %q", m.ErrAnchorNotFound, literal)
		}

		return out, modified, err
	})
}

type rewriteFunc func(lines []string) (out []string, modified int, err error)

func (p *Patcher) patch(ctx context.Context, res m.OperationResult, rewrite rewriteFunc) m.OperationResult {
	path, err := p.index.Resolve(ctx, res.Class)
	if err != nil {
		return p.finish(res, err)
	}

	res.Path = path

	listing, err := p.fs.ReadListing(ctx, path)
	if err != nil {
		return p.finish(res, err)
	}

	before := listing.Lines

	after, modified, err := rewrite(slices.Clone(before))
	res.Modified = modified

	if modified == 0 {
		if err == nil {
			res.Status = m.Unchanged
			slog.Info("Operation left listing unchanged", "operation", res.Name, "class", res.Class, "method", res.Method)

			return res
		}

		return p.finish(res, err)
	}

	if err != nil && !errors.Is(err, m.ErrAnchorNotFound) {
		return p.finish(res, err)
	}

	listing.Lines = after
	if werr := p.fs.WriteListing(ctx, listing); werr != nil {
		res.Modified = 0
		return p.finish(res, werr)
	}

	if p.opts.Diff {
		res.Diff = UnifiedDiff(path, before, after)
	}

	res.Status = m.Applied
	slog.Info("Applied operation", "operation", res.Name, "class", res.Class, "method", res.Method,
		"transform", res.Transform, "modified", modified, "path", path)

	return res
}

func (p *Patcher) finish(res m.OperationResult, err error) m.OperationResult {
	res.Err = err
	res.Status = m.StatusFor(err)

	switch res.Status {
	case m.NotFound:
		slog.Warn("Operation target not found", "operation", res.Name, "class", res.Class, "method", res.Method, "error", err)
	default:
		slog.Error("Operation failed", "operation", res.Name, "class", res.Class, "method", res.Method, "error", err)
	}

	return res
}

func (p *Patcher) newResult(name, class, method string, t transforms.Transform) m.OperationResult {
	res := m.OperationResult{Name: name, Class: class, Method: method}
	if t != nil {
		res.Transform = string(t.Kind())
	}

	return res
}

// rewriteMatching walks the methods of lines in order and applies the
// transform pick returns for each one; a nil transform skips the method.
// After a rewrite the scan resumes right after the new block, so shifted
// line numbers never skip or revisit a method. It returns the new lines and
// the number of matched and modified methods.
//
// Anchor misses in individual methods are tolerated; the last one is
// returned when no method changed.
func rewriteMatching(lines []string, pick func(m.MethodBoundary, []string) transforms.Transform) ([]string, int, int, error) {
	var matched, modified int

	var anchorErr error

	for cursor := 0; cursor < len(lines); {
		if !smali.IsMethodStart(lines[cursor]) {
			cursor++
			continue
		}

		decl, ok := smali.ParseDeclaration(lines[cursor])
		if !ok {
			return lines, matched, 0, fmt.Errorf("%w: line %d: cannot parse declaration %q",
				m.ErrMalformedListing, cursor+1, strings.TrimSpace(lines[cursor]))
		}

		end, err := methodEnd(lines, cursor)
		if err != nil {
			return lines, matched, 0, err
		}

		b := boundary(decl, cursor, end)
		block := lines[b.Start : b.End+1]

		t := pick(b, block)
		if t == nil {
			cursor = end + 1
			continue
		}

		matched++

		newBlock, err := transforms.Apply(t, block)
		if err != nil {
			if !errors.Is(err, m.ErrAnchorNotFound) {
				return lines, matched, 0, fmt.Errorf("%s: %w", b.Signature, err)
			}

			anchorErr = fmt.Errorf("%s: %w", b.Signature, err)
			cursor = end + 1

			continue
		}

		if !slices.Equal(newBlock, block) {
			lines = replaceRange(lines, b, newBlock)
			modified++
		}

		cursor = b.Start + len(newBlock)
	}

	if modified == 0 && anchorErr != nil {
		return lines, matched, 0, anchorErr
	}

	return lines, matched, modified, nil
}

// replaceRange returns lines with the closed interval b replaced by block.
func replaceRange(lines []string, b m.MethodBoundary, block []string) []string {
	out := make([]string, 0, len(lines)-b.Len()+len(block))
	out = append(out, lines[:b.Start]...)
	out = append(out, block...)

	return append(out, lines[b.End+1:]...)
}

func blockContains(block []string, literal string) bool {
	for _, line := range block[1 : len(block)-1] {
		if strings.Contains(line, literal) {
			return true
		}
	}

	return false
}
