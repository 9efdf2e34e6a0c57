package cmd

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

func TestBuildCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newBuildCmd())

	mockWorkflow.EXPECT().Build(mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.DexDir == m.Path("framework") &&
			args.Output == "" &&
			len(args.PatchSets) == 1 &&
			args.PatchSets[0] == m.Path("framework.yaml") &&
			!args.Sanitize &&
			!args.KeepWork &&
			!args.Strict
	})).Return(nil)

	cmd.SetArgs([]string{"build", "framework", "framework.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestBuildCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newBuildCmd())

	var apiLevel int

	mockWorkflow.EXPECT().Build(mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Output == m.Path("patched") &&
			args.Sanitize &&
			args.KeepWork &&
			args.Strict &&
			args.Report == m.Path("build-report.yaml")
	})).Run(func(_ context.Context, _ domain.BuildArgs) {
		apiLevel = viper.GetInt(toolchainAPILevelConfigKey)
	}).Return(nil)

	cmd.SetArgs([]string{
		"build", "--api-level", "34", "--output-dir", "patched", "--sanitize", "--keep-work",
		"--strict", "--report", "build-report.yaml", "framework", "framework.yaml",
	})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 34, apiLevel)
}
