package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	"smalipatch.dev/pkg/smalipatch/internal/domain/transforms"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// DefaultSanitizeMarker is the instruction whose presence marks a listing as
// unsafe to reassemble as is.
const DefaultSanitizeMarker = "invoke-custom"

// SanitizeRule forces every method with an exact signature to return Value.
type SanitizeRule struct {
	Signature string
	Value     transforms.ReturnValue
}

// DefaultSanitizeRules are the compiler generated object methods that carry
// the marker.
var DefaultSanitizeRules = []SanitizeRule{
	{Signature: "equals(Ljava/lang/Object;)Z", Value: transforms.ReturnFalse},
	{Signature: "hashCode()I", Value: transforms.ReturnZero},
	{Signature: "toString()Ljava/lang/String;", Value: transforms.ReturnNull},
}

// SanitizeOptions tunes a Sanitizer.
type SanitizeOptions struct {
	Marker   string
	Rules    []SanitizeRule
	Parallel int
}

// Sanitizer rewrites, in every listing containing the marker, the methods
// matching its rules into constant returns.
type Sanitizer struct {
	fs   adapter.ListingFSAdapter
	opts SanitizeOptions
}

// NewSanitizer constructs a Sanitizer. Zero options fall back to the default
// marker, the default rules and one worker.
func NewSanitizer(fs adapter.ListingFSAdapter, opts SanitizeOptions) *Sanitizer {
	if opts.Marker == "" {
		opts.Marker = DefaultSanitizeMarker
	}

	if len(opts.Rules) == 0 {
		opts.Rules = DefaultSanitizeRules
	}

	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}

	return &Sanitizer{fs: fs, opts: opts}
}

// Sanitize processes every listing under roots. Missing roots are skipped.
// A failing file is recorded in the result and does not stop the others;
// only cancellation of ctx aborts the pass.
func (s *Sanitizer) Sanitize(ctx context.Context, roots []m.Path) (m.SanitizeResult, error) {
	result := m.SanitizeResult{Errors: make(map[m.Path]error)}

	paths, err := s.collect(ctx, roots)
	if err != nil {
		return result, err
	}

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Parallel)

	for _, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			triggered, methods, err := s.sanitizeFile(groupCtx, path)

			mu.Lock()
			defer mu.Unlock()

			result.Scanned++

			if triggered {
				result.Triggered++
			}

			if err != nil {
				slog.Error("Failed to sanitize listing", "path", path, "error", err)
				result.Errors[path] = err

				return nil
			}

			if methods > 0 {
				result.Rewritten++
				result.Methods += methods
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, err
	}

	slog.Info("Sanitize finished", "scanned", result.Scanned, "triggered", result.Triggered,
		"rewritten", result.Rewritten, "methods", result.Methods, "errors", len(result.Errors))

	return result, nil
}

// SanitizeLines rewrites the matching methods of one listing. It returns the
// new lines and the number of rewritten methods; lines is left untouched.
func (s *Sanitizer) SanitizeLines(lines []string) ([]string, int, error) {
	out, _, modified, err := rewriteMatching(append([]string(nil), lines...), func(b m.MethodBoundary, _ []string) transforms.Transform {
		for _, rule := range s.opts.Rules {
			if rule.Signature == b.Signature {
				return transforms.ForceReturn{Value: rule.Value}
			}
		}

		return nil
	})

	return out, modified, err
}

func (s *Sanitizer) sanitizeFile(ctx context.Context, path m.Path) (bool, int, error) {
	listing, err := s.fs.ReadListing(ctx, path)
	if err != nil {
		return false, 0, err
	}

	if !listing.Contains(s.opts.Marker) {
		return false, 0, nil
	}

	lines, modified, err := s.SanitizeLines(listing.Lines)
	if err != nil {
		return true, 0, err
	}

	if modified == 0 {
		slog.Debug("Listing contains marker but no matching method", "path", path, "marker", s.opts.Marker)
		return true, 0, nil
	}

	listing.Lines = lines
	if err := s.fs.WriteListing(ctx, listing); err != nil {
		return true, 0, err
	}

	slog.Debug("Sanitized listing", "path", path, "methods", modified)

	return true, modified, nil
}

func (s *Sanitizer) collect(ctx context.Context, roots []m.Path) ([]m.Path, error) {
	var paths []m.Path

	for _, root := range roots {
		if !s.fs.Exists(ctx, root) {
			slog.Debug("Skipping missing sanitize root", "root", root)
			continue
		}

		err := s.fs.Walk(ctx, root, func(path m.Path) error {
			if adapter.IsListing(path, smali.ListingExtension) {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return paths, nil
}
