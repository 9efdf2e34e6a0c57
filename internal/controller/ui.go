// Package controller provides output adapters for displaying patch run results.
package controller

import (
	"context"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// UI defines how the workflow reports progress and results.
// Implementations can use different output methods.
type UI interface {
	DisplayOperationResult(ctx context.Context, result m.OperationResult)
	DisplaySummary(ctx context.Context, results []m.OperationResult) error
	DisplaySanitizeResult(ctx context.Context, result m.SanitizeResult) error
	DisplayMethods(ctx context.Context, path m.Path, methods []m.MethodBoundary) error
	DisplayBuildStep(ctx context.Context, step string, path m.Path)
}
