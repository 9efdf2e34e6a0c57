package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

var buildAPILevelFlag int
var buildOutputDirFlag string
var buildSanitizeFlag bool
var buildKeepWorkFlag bool

const buildLongDescription = `Disassemble every classes*.dex in a directory, apply the patch sets and
assemble the patched listings back into dex files.

The toolchain jars are taken from toolchain.baksmali and toolchain.smali in
smalipatch.yaml (or SMALIPATCH_TOOLCHAIN_BAKSMALI / SMALIPATCH_TOOLCHAIN_SMALI).
Patched dex files replace the originals unless --output-dir is given.`

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <dex-dir> <patchset.yaml>...",
		Short: "Disassemble, patch and reassemble the dex files of a directory",
		Long:  buildLongDescription,
		Args:  cobra.MinimumNArgs(2),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindPatchFlags(cmd)
			bindFlagToConfig(cmd.Flags().Lookup(apiLevelFlagName), toolchainAPILevelConfigKey)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Build(cmd.Context(), domain.BuildArgs{
				DexDir:    m.Path(args[0]),
				Output:    m.Path(buildOutputDirFlag),
				PatchSets: parsePaths(args[1:]),
				Sanitize:  buildSanitizeFlag,
				Strict:    viper.GetBool(applyStrictConfigKey),
				Diff:      viper.GetBool(applyDiffConfigKey),
				Report:    m.Path(viper.GetString(reportOutputConfigKey)),
				KeepWork:  buildKeepWorkFlag,
				Sanitizer: sanitizeOptions(),
			})
		},
	}

	cmd.Flags().IntVar(&buildAPILevelFlag, apiLevelFlagName, viper.GetInt(toolchainAPILevelConfigKey), "API level passed to the disassembler and assembler")
	cmd.Flags().StringVar(&buildOutputDirFlag, "output-dir", "", "directory for the patched dex files (default: the dex directory)")
	cmd.Flags().BoolVar(&buildSanitizeFlag, "sanitize", false, "run the sanitizer over the disassembled listings before patching")
	cmd.Flags().BoolVar(&buildKeepWorkFlag, "keep-work", false, "keep the temporary disassembly directory")
	configurePatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
