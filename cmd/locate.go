package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

const locateLongDescription = `Resolve a class in a decompile directory and print its method boundaries.

The class may be spelled with dots (android.os.Build), slashes
(android/os/Build) or as a descriptor (Landroid/os/Build;). With a method
name only the methods of that name are listed, every overload included.`

// locateCmd represents the locate command.
var locateCmd = newLocateCmd()

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <decompile-dir> <class> [method]",
		Short: "Print the methods of a class and their line ranges",
		Long:  locateLongDescription,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			locateArgs := domain.LocateArgs{
				Root:      m.Path(args[0]),
				ClassDirs: viper.GetStringSlice(classDirsConfigKey),
				Class:     args[1],
			}

			if len(args) == 3 {
				locateArgs.Method = args[2]
			}

			return workflow.Locate(cmd.Context(), locateArgs)
		},
	}
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
