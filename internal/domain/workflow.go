// Package domain implements the patch engine: class lookup, method location,
// the patch applier, the bulk sanitizer and the workflows driving them.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	"smalipatch.dev/pkg/smalipatch/internal/controller"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// ErrStrict is returned under strict mode when an operation did not apply.
var ErrStrict = errors.New("operations did not apply")

const dexPattern = "classes*.dex"

// ApplyArgs contains the arguments for applying patch sets to a decompile
// tree.
type ApplyArgs struct {
	Root      m.Path
	PatchSets []m.Path
	// ClassDirs overrides the class sub-trees searched under Root.
	ClassDirs []string
	DryRun    bool
	Diff      bool
	Sanitize  bool
	Strict    bool
	Report    m.Path
	Sanitizer SanitizeOptions
}

// SanitizeArgs contains the arguments for a standalone sanitize pass.
type SanitizeArgs struct {
	Roots     []m.Path
	ClassDirs []string
	Options   SanitizeOptions
}

// LocateArgs contains the arguments for inspecting one class.
type LocateArgs struct {
	Root      m.Path
	ClassDirs []string
	Class     string
	Method    string
}

// BuildArgs contains the arguments for the disassemble, patch, assemble
// round trip.
type BuildArgs struct {
	DexDir    m.Path
	Output    m.Path
	PatchSets []m.Path
	Sanitize  bool
	Strict    bool
	Diff      bool
	Report    m.Path
	KeepWork  bool
	Sanitizer SanitizeOptions
}

// ViewArgs contains the arguments for displaying a saved report.
type ViewArgs struct {
	Report m.Path
}

// Workflow defines the operations exposed to the CLI.
type Workflow interface {
	Apply(ctx context.Context, args ApplyArgs) error
	Sanitize(ctx context.Context, args SanitizeArgs) error
	Locate(ctx context.Context, args LocateArgs) error
	Build(ctx context.Context, args BuildArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ListingFSAdapter
	adapter.PatchSetLoader
	adapter.ReportStore
	adapter.ToolchainAdapter
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.ListingFSAdapter,
	loader adapter.PatchSetLoader,
	reportStore adapter.ReportStore,
	toolchain adapter.ToolchainAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		ListingFSAdapter: fsAdapter,
		PatchSetLoader:   loader,
		ReportStore:      reportStore,
		ToolchainAdapter: toolchain,
		UI:               ui,
	}
}

func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	ops, err := w.loadOperations(ctx, args.PatchSets)
	if err != nil {
		return err
	}

	var (
		fs      adapter.ListingFSAdapter = w.ListingFSAdapter
		overlay *adapter.OverlayFSAdapter
	)

	if args.DryRun {
		overlay = fs.Overlay()
		fs = overlay
	}

	roots := ClassRoots(args.Root, args.ClassDirs...)
	report := m.RunReport{PatchSets: args.PatchSets, DryRun: args.DryRun}

	if args.Sanitize {
		result, err := NewSanitizer(fs, args.Sanitizer).Sanitize(ctx, roots)
		if err != nil {
			return fmt.Errorf("sanitize: %w", err)
		}

		report.Sanitize = &result

		if err := w.DisplaySanitizeResult(ctx, result); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	index, err := BuildClassIndex(ctx, fs, roots)
	if err != nil {
		return fmt.Errorf("build class index: %w", err)
	}

	if index.Len() == 0 {
		slog.Warn("No class listings found", "root", args.Root)
	}

	slog.Info("Applying patch sets", "root", args.Root, "operations", len(ops), "classes", index.Len(), "dry_run", args.DryRun)

	patcher := NewPatcher(fs, index, PatcherOptions{Diff: args.Diff})
	report.Results = patcher.Run(ctx, ops)

	for _, result := range report.Results {
		w.DisplayOperationResult(ctx, result)
	}

	if err := w.DisplaySummary(ctx, report.Results); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Report != "" {
		if err := w.SaveReport(ctx, args.Report, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	if overlay != nil {
		slog.Info("Dry run finished, no listing written", "files", len(overlay.Written()))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if args.Strict {
		tally := m.NewTally(report.Results)
		if missed := tally.NotFound + tally.Failed; missed > 0 {
			return fmt.Errorf("%w: %d not found, %d failed", ErrStrict, tally.NotFound, tally.Failed)
		}
	}

	return nil
}

func (w *workflow) Sanitize(ctx context.Context, args SanitizeArgs) error {
	var roots []m.Path
	for _, root := range args.Roots {
		roots = append(roots, ClassRoots(root, args.ClassDirs...)...)
	}

	result, err := NewSanitizer(w.ListingFSAdapter, args.Options).Sanitize(ctx, roots)
	if err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}

	if err := w.DisplaySanitizeResult(ctx, result); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("sanitize: %d file(s) failed", len(result.Errors))
	}

	return nil
}

func (w *workflow) Locate(ctx context.Context, args LocateArgs) error {
	index, err := BuildClassIndex(ctx, w.ListingFSAdapter, ClassRoots(args.Root, args.ClassDirs...))
	if err != nil {
		return fmt.Errorf("build class index: %w", err)
	}

	path, err := index.Resolve(ctx, args.Class)
	if err != nil {
		return err
	}

	listing, err := w.ReadListing(ctx, path)
	if err != nil {
		return err
	}

	var methods []m.MethodBoundary
	if args.Method != "" {
		methods, err = LocateAll(listing.Lines, args.Method)
	} else {
		methods, err = Methods(listing.Lines)
	}

	if err != nil {
		return err
	}

	return w.DisplayMethods(ctx, path, methods)
}

func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	dexes, err := w.Glob(ctx, args.DexDir, dexPattern)
	if err != nil {
		return fmt.Errorf("find dex files: %w", err)
	}

	if len(dexes) == 0 {
		return fmt.Errorf("no %s in %s", dexPattern, args.DexDir)
	}

	work, err := w.CreateTempDir(ctx, "smalipatch-build-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	if args.KeepWork {
		slog.Info("Keeping work directory", "path", work)
	} else {
		defer w.cleanupWorkDir(ctx, work)
	}

	dirs := make([]string, 0, len(dexes))

	for _, dex := range dexes {
		name := strings.TrimSuffix(filepath.Base(string(dex)), ".dex")
		out := m.Path(filepath.Join(string(work), name))

		w.DisplayBuildStep(ctx, "disassemble", dex)

		if output, err := w.Disassemble(ctx, dex, out); err != nil {
			slog.Error("Disassemble failed", "dex", dex, "output", output, "error", err)
			return fmt.Errorf("disassemble: %w", err)
		}

		dirs = append(dirs, name)
	}

	applyErr := w.Apply(ctx, ApplyArgs{
		Root:      work,
		PatchSets: args.PatchSets,
		ClassDirs: dirs,
		Diff:      args.Diff,
		Sanitize:  args.Sanitize,
		Strict:    args.Strict,
		Report:    args.Report,
		Sanitizer: args.Sanitizer,
	})
	if applyErr != nil {
		return applyErr
	}

	output := args.Output
	if output == "" {
		output = args.DexDir
	}

	for _, name := range dirs {
		dex := m.Path(filepath.Join(string(output), name+".dex"))

		w.DisplayBuildStep(ctx, "assemble", dex)

		if out, err := w.Assemble(ctx, m.Path(filepath.Join(string(work), name)), dex); err != nil {
			slog.Error("Assemble failed", "dex", dex, "output", out, "error", err)
			return fmt.Errorf("assemble: %w", err)
		}
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		return err
	}

	if report.Sanitize != nil {
		if err := w.DisplaySanitizeResult(ctx, *report.Sanitize); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	for _, result := range report.Results {
		w.DisplayOperationResult(ctx, result)
	}

	return w.DisplaySummary(ctx, report.Results)
}

func (w *workflow) loadOperations(ctx context.Context, paths []m.Path) ([]Operation, error) {
	if len(paths) == 0 {
		return nil, errors.New("no patch set given")
	}

	var ops []Operation

	for _, path := range paths {
		set, err := w.LoadPatchSet(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load patch set: %w", err)
		}

		compiled, err := CompileOperations(set)
		if err != nil {
			return nil, fmt.Errorf("load patch set %s: %w", path, err)
		}

		slog.Debug("Loaded patch set", "path", path, "name", set.Name, "operations", len(compiled))
		ops = append(ops, compiled...)
	}

	return ops, nil
}

func (w *workflow) cleanupWorkDir(ctx context.Context, work m.Path) {
	if err := w.RemoveAll(ctx, work); err != nil {
		slog.Warn("Failed to remove work directory", "path", work, "error", err)
	}
}
