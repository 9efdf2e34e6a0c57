package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

var applyDryRunFlag bool
var applySanitizeFlag bool
var strictFlag bool
var diffFlag bool
var reportFlag string

const applyLongDescription = `Apply one or more patch sets to a decompile directory.

Operations run in file order, patch set after patch set, and each one sees
the edits of the operations before it. A missing class, method or anchor is
reported and the run continues; --strict turns those into a non-zero exit.

With --dry-run nothing is written; the unified diff of every applied
operation is printed instead.`

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <decompile-dir> <patchset.yaml>...",
		Short: "Apply patch sets to a decompile directory",
		Long:  applyLongDescription,
		Args:  cobra.MinimumNArgs(2),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindPatchFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Apply(cmd.Context(), domain.ApplyArgs{
				Root:      m.Path(args[0]),
				PatchSets: parsePaths(args[1:]),
				ClassDirs: viper.GetStringSlice(classDirsConfigKey),
				DryRun:    applyDryRunFlag,
				Diff:      applyDryRunFlag || viper.GetBool(applyDiffConfigKey),
				Sanitize:  applySanitizeFlag,
				Strict:    viper.GetBool(applyStrictConfigKey),
				Report:    m.Path(viper.GetString(reportOutputConfigKey)),
				Sanitizer: sanitizeOptions(),
			})
		},
	}

	cmd.Flags().BoolVarP(&applyDryRunFlag, "dry-run", "n", false, "compute every edit in memory without writing")
	cmd.Flags().BoolVar(&applySanitizeFlag, "sanitize", false, "run the sanitizer over the class sub-trees before patching")
	configurePatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

// configurePatchFlags registers the flags shared by apply and build.
func configurePatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&strictFlag, strictFlagName, viper.GetBool(applyStrictConfigKey), "exit non-zero when an operation is not found or fails")
	cmd.Flags().BoolVar(&diffFlag, diffFlagName, viper.GetBool(applyDiffConfigKey), "print a unified diff for every applied operation")
	cmd.Flags().StringVarP(&reportFlag, reportFlagName, "o", viper.GetString(reportOutputConfigKey), "write a YAML run report to this path")
}

// bindPatchFlags binds the shared flags of the command about to run. Apply
// and build register flags under the same keys, so binding happens once the
// command is known rather than at construction.
func bindPatchFlags(cmd *cobra.Command) {
	bindFlagToConfig(cmd.Flags().Lookup(strictFlagName), applyStrictConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(diffFlagName), applyDiffConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(reportFlagName), reportOutputConfigKey)
}
