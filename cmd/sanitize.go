package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
)

var sanitizeMarkerFlag string
var sanitizeParallelFlag int

const sanitizeLongDescription = `Scan the class sub-trees of one or more decompile directories and neutralize
the equals, hashCode and toString methods of every listing that contains the
marker instruction (invoke-custom by default). Those methods are rewritten to
return false, 0 and null respectively.

Files without the marker are never written.`

// sanitizeCmd represents the sanitize command.
var sanitizeCmd = newSanitizeCmd()

func newSanitizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize <decompile-dir>...",
		Short: "Neutralize object methods in listings containing a marker instruction",
		Long:  sanitizeLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Sanitize(cmd.Context(), domain.SanitizeArgs{
				Roots:     parsePaths(args),
				ClassDirs: viper.GetStringSlice(classDirsConfigKey),
				Options:   sanitizeOptions(),
			})
		},
	}

	configureSanitizeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)
}

func configureSanitizeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sanitizeMarkerFlag, markerFlagName, viper.GetString(sanitizeMarkerConfigKey), "instruction whose presence triggers sanitizing a listing")
	bindFlagToConfig(cmd.Flags().Lookup(markerFlagName), sanitizeMarkerConfigKey)

	cmd.Flags().IntVarP(&sanitizeParallelFlag, parallelFlagName, "p", viper.GetInt(sanitizeParallelConfigKey), "number of listings sanitized concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), sanitizeParallelConfigKey)
}
