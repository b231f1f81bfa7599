package main

import (
	"github.com/spf13/cobra"

	"github.com/confsync/confsync/pkg/commands"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what a deploy would do, without writing anything",
		Long: `Status resolves the catalog against the source tree and reports which
entries have a deployable source and which do not. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := commands.RuntimeSettings(root.source)
			format := output
			if format == "" {
				format = settings.Output
			}
			source := root.source
			if source == "" {
				source = settings.SourceRoot
			}

			result, err := commands.Status(commands.StatusOptions{SourceRoot: source})
			if err != nil {
				return err
			}

			return renderReport(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text, json, yaml, or xml")

	return cmd
}
