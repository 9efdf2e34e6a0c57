package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

func TestSanitizeCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newSanitizeCmd())

	mockWorkflow.EXPECT().Sanitize(mock.Anything, mock.MatchedBy(func(args domain.SanitizeArgs) bool {
		return len(args.Roots) == 1 &&
			args.Roots[0] == m.Path("framework_decompile") &&
			args.Options.Marker == "invoke-custom" &&
			args.Options.Parallel == 1
	})).Return(nil)

	cmd.SetArgs([]string{"sanitize", "framework_decompile"})
	require.NoError(t, cmd.Execute())
}

func TestSanitizeCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newSanitizeCmd())

	mockWorkflow.EXPECT().Sanitize(mock.Anything, mock.MatchedBy(func(args domain.SanitizeArgs) bool {
		return len(args.Roots) == 2 &&
			args.Roots[1] == m.Path("services_decompile") &&
			args.Options.Marker == "invoke-polymorphic" &&
			args.Options.Parallel == 8
	})).Return(nil)

	cmd.SetArgs([]string{"sanitize", "--marker", "invoke-polymorphic", "-p", "8", "framework_decompile", "services_decompile"})
	require.NoError(t, cmd.Execute())
}

func TestSanitizeCmd_RequiresRoot(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newSanitizeCmd())

	cmd.SetArgs([]string{"sanitize"})
	require.Error(t, cmd.Execute())
}
