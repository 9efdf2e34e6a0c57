package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

func TestApplyCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(args domain.ApplyArgs) bool {
		return args.Root == m.Path("framework_decompile") &&
			len(args.PatchSets) == 1 &&
			args.PatchSets[0] == m.Path("framework.yaml") &&
			len(args.ClassDirs) == 5 &&
			!args.DryRun &&
			!args.Diff &&
			!args.Sanitize &&
			!args.Strict &&
			args.Report == "" &&
			args.Sanitizer.Marker == domain.DefaultSanitizeMarker
	})).Return(nil)

	cmd.SetArgs([]string{"apply", "framework_decompile", "framework.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestApplyCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(args domain.ApplyArgs) bool {
		return len(args.PatchSets) == 2 &&
			args.PatchSets[1] == m.Path("services.yaml") &&
			args.DryRun &&
			args.Diff &&
			args.Sanitize &&
			args.Strict &&
			args.Report == m.Path("report.yaml") &&
			len(args.ClassDirs) == 2 &&
			args.ClassDirs[0] == "classes" &&
			args.ClassDirs[1] == "classes2"
	})).Return(nil)

	cmd.SetArgs([]string{
		"--class-dir", "classes", "--class-dir", "classes2",
		"apply", "--dry-run", "--sanitize", "--strict", "-o", "report.yaml",
		"out", "framework.yaml", "services.yaml",
	})
	require.NoError(t, cmd.Execute())
}

func TestApplyCmd_DiffWithoutDryRun(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(args domain.ApplyArgs) bool {
		return args.Diff && !args.DryRun
	})).Return(nil)

	cmd.SetArgs([]string{"apply", "--diff", "out", "framework.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestApplyCmd_ReturnsWorkflowError(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.Anything).Return(domain.ErrStrict)

	cmd.SetArgs([]string{"apply", "--strict", "out", "framework.yaml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStrict))
}

func TestApplyCmd_RequiresPatchSet(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newApplyCmd())

	cmd.SetArgs([]string{"apply", "out"})
	require.Error(t, cmd.Execute())
}

func TestNewApplyCmd(t *testing.T) {
	cmd := newApplyCmd()

	assert.Equal(t, "apply <decompile-dir> <patchset.yaml>...", cmd.Use)
	assert.Equal(t, applyLongDescription, cmd.Long)

	for _, name := range []string{"dry-run", "sanitize", strictFlagName, diffFlagName, reportFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
