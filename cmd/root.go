// Package cmd provides the root command and CLI setup for smalipatch.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	"smalipatch.dev/pkg/smalipatch/internal/controller"
	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

var listingFSAdapter adapter.ListingFSAdapter
var patchSetLoader adapter.PatchSetLoader
var reportStore adapter.ReportStore
var toolchain adapter.ToolchainAdapter
var workflow domain.Workflow
var ui controller.UI

// verboseFlag forces debug logging.
var verboseFlag bool

// classDirsFlag overrides the class sub-trees searched under a decompile root.
var classDirsFlag []string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	listingFSAdapter = adapter.NewLocalListingFSAdapter()
	patchSetLoader = adapter.NewYAMLPatchSetLoader()
	reportStore = adapter.NewReportStore()
	toolchain = configuredToolchain{}
	workflow = domain.NewWorkflow(
		listingFSAdapter,
		patchSetLoader,
		reportStore,
		toolchain,
		ui,
	)
}

const rootLongDescription = `Smalipatch applies declarative patch sets to disassembled Android class
listings. Operations locate a class across the classes, classes2 ... classes5
sub-trees, find a method by name or full signature and rewrite its body with
one of a fixed set of transforms.

Patch sets are YAML files; see examples/framework.yaml.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "smalipatch",
		Short:        "Patch engine for disassembled Android class listings",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringSliceVar(
		&classDirsFlag, classDirFlagName,
		viper.GetStringSlice(classDirsConfigKey),
		"class sub-tree searched under the decompile root, in priority order (can be repeated)",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(classDirFlagName), classDirsConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// configuredToolchain builds a LocalToolchainAdapter from the current
// configuration on every call.
type configuredToolchain struct{}

func (configuredToolchain) Disassemble(ctx context.Context, dex, outDir m.Path) (string, error) {
	return adapter.NewLocalToolchainAdapter(toolchainConfig()).Disassemble(ctx, dex, outDir)
}

func (configuredToolchain) Assemble(ctx context.Context, dir, outDex m.Path) (string, error) {
	return adapter.NewLocalToolchainAdapter(toolchainConfig()).Assemble(ctx, dir, outDex)
}
