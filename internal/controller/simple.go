package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayOperationResult prints one line per operation, followed by its
// diff when one was recorded.
func (s *SimpleUI) DisplayOperationResult(ctx context.Context, result m.OperationResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[%s] %s", result.Status, operationLabel(result))

	switch {
	case result.Err != nil:
		s.printf(": %v\n", result.Err)
	case result.Status == m.Applied:
		s.printf(" (%d method(s))\n", result.Modified)
	default:
		s.printf("\n")
	}

	if result.Diff != "" {
		s.printf("%s\n", result.Diff)
	}
}

// DisplaySummary renders the per-operation table and the status totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, results []m.OperationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(results))

	return nil
}

func renderSummaryTable(results []m.OperationResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Operation", "Transform", "Methods", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, r := range results {
		table.Append([]string{operationLabel(r), r.Transform, fmt.Sprintf("%d", r.Modified), r.Status.String()})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(results)), "", "", ""})
	table.Render()

	tally := m.NewTally(results)
	_, _ = fmt.Fprintf(&tableBuffer, "\nApplied: %d, unchanged: %d, not found: %d, failed: %d\n",
		tally.Applied, tally.Unchanged, tally.NotFound, tally.Failed)

	return tableBuffer.String()
}

// DisplaySanitizeResult prints the sanitize counters and every failed file.
func (s *SimpleUI) DisplaySanitizeResult(ctx context.Context, result m.SanitizeResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Sanitize: scanned %d, triggered %d, rewritten %d file(s), %d method(s)\n",
		result.Scanned, result.Triggered, result.Rewritten, result.Methods)

	paths := make([]m.Path, 0, len(result.Errors))
	for path := range result.Errors {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	for _, path := range paths {
		s.printf("  failed %s: %v\n", path, result.Errors[path])
	}

	return nil
}

// DisplayMethods renders the method boundaries of one listing. Line numbers
// are shown 1-based, as editors do.
func (s *SimpleUI) DisplayMethods(ctx context.Context, path m.Path, methods []m.MethodBoundary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Method", "Start", "End", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, b := range methods {
		table.Append([]string{
			b.Signature,
			fmt.Sprintf("%d", b.Start+1),
			fmt.Sprintf("%d", b.End+1),
			fmt.Sprintf("%d", b.Len()),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(methods)), "", "", ""})
	table.Render()

	s.printf("%s\n%s", path, tableBuffer.String())

	return nil
}

// DisplayBuildStep prints progress of the disassemble/assemble steps.
func (s *SimpleUI) DisplayBuildStep(ctx context.Context, step string, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", step, path)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func operationLabel(r m.OperationResult) string {
	if r.Name != "" {
		return r.Name
	}

	if r.Method == "" {
		return r.Class
	}

	return r.Class + "." + r.Method
}
