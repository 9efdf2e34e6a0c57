package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmocks "smalipatch.dev/pkg/smalipatch/internal/domain/mocks"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// newTestRootCmd builds a fresh root with sub attached and the package
// workflow swapped for a mock. Config bindings are pointed back at the real
// commands afterwards.
func newTestRootCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(sub)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() {
		workflow = originalWorkflow

		bindFlagToConfig(rootCmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
		bindFlagToConfig(rootCmd.PersistentFlags().Lookup(classDirFlagName), classDirsConfigKey)
		bindFlagToConfig(sanitizeCmd.Flags().Lookup(markerFlagName), sanitizeMarkerConfigKey)
		bindFlagToConfig(sanitizeCmd.Flags().Lookup(parallelFlagName), sanitizeParallelConfigKey)
		bindPatchFlags(applyCmd)
		bindFlagToConfig(buildCmd.Flags().Lookup(apiLevelFlagName), toolchainAPILevelConfigKey)
	})

	return cmd, mockWorkflow, out
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty", []string{}, []m.Path{}},
		{"single", []string{"patches.yaml"}, []m.Path{m.Path("patches.yaml")}},
		{
			"multiple",
			[]string{"framework.yaml", "services.yaml", "extra.yaml"},
			[]m.Path{m.Path("framework.yaml"), m.Path("services.yaml"), m.Path("extra.yaml")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePaths(tt.args)
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "smalipatch", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "Patch sets are YAML files")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	for _, name := range []string{"apply", "sanitize", "locate", "build", "view", "init", "version"} {
		t.Run(name, func(t *testing.T) {
			found, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, found.Name())
		})
	}
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, listingFSAdapter)
	assert.NotNil(t, patchSetLoader)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, toolchain)
	assert.NotNil(t, workflow)
}

func TestConfiguredToolchain_UsesCurrentConfig(t *testing.T) {
	// No jars are configured by default, so both calls fail before running java.
	_, err := configuredToolchain{}.Disassemble(t.Context(), "classes.dex", "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	_, err = configuredToolchain{}.Assemble(t.Context(), "out", "classes.dex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_WithError(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() {
		rootCmd = originalRootCmd
	}()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("command failed")
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute would os.Exit(1); only the command error is checked here.
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
