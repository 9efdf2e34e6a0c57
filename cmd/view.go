package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [report.yaml]",
		Short: "View a previously written run report",
		Long:  "View a run report written by apply or build with --report. Without an argument report.output from the configuration is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportPath := viper.GetString(reportOutputConfigKey)
			if len(args) == 1 {
				reportPath = args[0]
			}

			if reportPath == "" {
				return errors.New("no report given and report.output is not configured")
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Report: m.Path(reportPath)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
